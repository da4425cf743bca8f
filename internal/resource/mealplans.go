package resource

import (
	"context"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

var mealPlanMessages = collection.Messages{
	"fetch":       {Failure: "Грешка при зареждане на хранителните планове"},
	"byGoal":      {Failure: "Грешка при зареждане на хранителни планове по цел"},
	"get":         {Failure: "Грешка при зареждане на хранителен план"},
	"create":      {Failure: "Грешка при създаване на хранителен план"},
	"update":      {Failure: "Грешка при обновяване на хранителен план"},
	"delete":      {Failure: "Грешка при изтриване на хранителен план"},
	"summary":     {Failure: "Грешка при зареждане на хранителна информация"},
	"dayCalories": {Failure: "Грешка при зареждане на дневни калории"},
	"addMeal":     {Failure: "Грешка при добавяне на хранене към деня"},
	"updateMeal":  {Failure: "Грешка при обновяване на хранене в деня"},
	"removeMeal":  {Failure: "Грешка при премахване на хранене от деня"},
}

// MealPlans holds the signed-in user's meal plans.
type MealPlans struct {
	api   *api.MealPlans
	scope userScope
	Items *collection.Collection[model.MealPlan]
}

func NewMealPlans(client *api.MealPlans, identity Identity, opts ...Option) *MealPlans {
	o := buildOptions(opts)
	return &MealPlans{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.MealPlan]("meal_plans", mealPlanMessages, o.collection()...),
	}
}

func (s *MealPlans) Open(ctx context.Context) { s.scope.start(ctx, s.load) }

func (s *MealPlans) load(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Items)
		return
	}
	s.Items.Fetch(ctx, "fetch", func(ctx context.Context) ([]model.MealPlan, error) {
		return s.api.ByUser(ctx, userID)
	})
}

func (s *MealPlans) Fetch(ctx context.Context) { s.load(ctx, s.scope.current()) }

func (s *MealPlans) ByGoal(ctx context.Context, goal model.Goal) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return
	}
	s.Items.Query(ctx, "byGoal", func(ctx context.Context) ([]model.MealPlan, error) {
		return s.api.ByUserAndGoal(ctx, userID, goal)
	})
}

func (s *MealPlans) Get(ctx context.Context, id int64) (model.MealPlan, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.MealPlan, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *MealPlans) Create(ctx context.Context, plan model.MealPlan) (model.MealPlan, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return model.MealPlan{}, err
	}
	plan.UserID = userID
	if err := plan.Validate(); err != nil {
		return model.MealPlan{}, err
	}
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.MealPlan, error) {
		return s.api.Create(ctx, plan)
	})
}

func (s *MealPlans) Update(ctx context.Context, id int64, plan model.MealPlan) (model.MealPlan, error) {
	if err := plan.Validate(); err != nil {
		return model.MealPlan{}, err
	}
	return s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.MealPlan, error) {
		return s.api.Update(ctx, id, plan)
	})
}

func (s *MealPlans) Delete(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *MealPlans) Summary(ctx context.Context, planID int64) (model.NutritionSummary, error) {
	return collection.Run(s.Items, ctx, "summary", func(ctx context.Context) (model.NutritionSummary, error) {
		return s.api.NutritionSummary(ctx, planID)
	})
}

func (s *MealPlans) DayCalories(ctx context.Context, planID int64, day int) (float64, error) {
	return collection.Run(s.Items, ctx, "dayCalories", func(ctx context.Context) (float64, error) {
		return s.api.DayCalories(ctx, planID, day)
	})
}

// AddMeal adds meal to a day (1-7) of the plan and mirrors it locally.
func (s *MealPlans) AddMeal(ctx context.Context, planID int64, day int, meal model.Meal) (model.Meal, error) {
	var added model.Meal
	err := s.Items.Apply(ctx, "addMeal",
		func(ctx context.Context) (err error) {
			added, err = s.api.AddMeal(ctx, planID, day, meal)
			return err
		},
		func(plans []model.MealPlan) []model.MealPlan {
			return editDay(plans, planID, day, func(meals []model.Meal) []model.Meal {
				return append(meals, added)
			})
		},
	)
	if err != nil {
		return model.Meal{}, err
	}
	return added, nil
}

func (s *MealPlans) UpdateMeal(ctx context.Context, planID int64, day int, mealID int64, meal model.Meal) (model.Meal, error) {
	var updated model.Meal
	err := s.Items.Apply(ctx, "updateMeal",
		func(ctx context.Context) (err error) {
			updated, err = s.api.UpdateMeal(ctx, planID, day, mealID, meal)
			return err
		},
		func(plans []model.MealPlan) []model.MealPlan {
			return editDay(plans, planID, day, func(meals []model.Meal) []model.Meal {
				for i := range meals {
					if meals[i].ID == mealID {
						meals[i] = updated
					}
				}
				return meals
			})
		},
	)
	if err != nil {
		return model.Meal{}, err
	}
	return updated, nil
}

func (s *MealPlans) RemoveMeal(ctx context.Context, planID int64, day int, mealID int64) error {
	return s.Items.Apply(ctx, "removeMeal",
		func(ctx context.Context) error {
			return s.api.RemoveMeal(ctx, planID, day, mealID)
		},
		func(plans []model.MealPlan) []model.MealPlan {
			return editDay(plans, planID, day, func(meals []model.Meal) []model.Meal {
				out := meals[:0]
				for _, m := range meals {
					if m.ID != mealID {
						out = append(out, m)
					}
				}
				return out
			})
		},
	)
}

func (s *MealPlans) Close() {
	s.scope.detach()
	s.Items.Close()
	s.scope.wait()
}

// editDay rewrites the meals of one day of one plan. Days and meals are
// copied first since earlier snapshots share them.
func editDay(plans []model.MealPlan, planID int64, day int, edit func([]model.Meal) []model.Meal) []model.MealPlan {
	for i := range plans {
		if plans[i].ID != planID {
			continue
		}
		days := make([]model.MealPlanDay, len(plans[i].Days))
		copy(days, plans[i].Days)
		found := false
		for j := range days {
			if days[j].DayOfWeek == day {
				meals := make([]model.Meal, len(days[j].Meals))
				copy(meals, days[j].Meals)
				days[j].Meals = edit(meals)
				found = true
			}
		}
		if !found {
			days = append(days, model.MealPlanDay{DayOfWeek: day, Meals: edit(nil)})
		}
		plans[i].Days = days
	}
	return plans
}
