package devserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/model"
)

func TestMealPlans_MealsOfADay(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, user := h.signIn(t, "ivan", "ivan-pass")

	plan, err := svc.MealPlans.Create(ctx, model.MealPlan{Name: "Сушене", Goal: model.GoalLoseWeight, TargetCalories: 1800})
	require.NoError(t, err)
	assert.Equal(t, user.ID, plan.UserID)

	breakfast, err := svc.MealPlans.AddMeal(ctx, plan.ID, 2, model.Meal{
		Type: model.MealBreakfast,
		Items: []model.MealItem{
			{FoodID: 4, Amount: 80, Calories: 311, Protein: 13.5, Fats: 5.5, Carbs: 52.8},
			{FoodID: 1, Amount: 150, Calories: 78, Protein: 0.5, Fats: 0.3, Carbs: 21},
		},
	})
	require.NoError(t, err)
	assert.Positive(t, breakfast.ID)
	assert.InDelta(t, 389, breakfast.TotalCalories, 0.001)

	_, err = svc.MealPlans.AddMeal(ctx, plan.ID, 2, model.Meal{Type: model.MealDinner, TotalCalories: 500})
	require.NoError(t, err)

	kcal, err := svc.MealPlans.DayCalories(ctx, plan.ID, 2)
	require.NoError(t, err)
	assert.InDelta(t, 889, kcal, 0.001)

	_, err = svc.MealPlans.UpdateMeal(ctx, plan.ID, 2, breakfast.ID, model.Meal{Type: model.MealBreakfast, TotalCalories: 300})
	require.NoError(t, err)
	require.NoError(t, svc.MealPlans.RemoveMeal(ctx, plan.ID, 2, breakfast.ID))
	assert.True(t, api.IsNotFound(svc.MealPlans.RemoveMeal(ctx, plan.ID, 2, breakfast.ID)))

	sum, err := svc.MealPlans.NutritionSummary(ctx, plan.ID)
	require.NoError(t, err)
	assert.InDelta(t, 500, sum.TotalCalories, 0.001)

	byGoal, err := svc.MealPlans.ByUserAndGoal(ctx, user.ID, model.GoalLoseWeight)
	require.NoError(t, err)
	assert.Len(t, byGoal, 1)
	byGoal, err = svc.MealPlans.ByUserAndGoal(ctx, user.ID, model.GoalGainWeight)
	require.NoError(t, err)
	assert.Empty(t, byGoal)

	admin, _ := h.signIn(t, "admin", "admin-pass")
	_, err = admin.MealPlans.Get(ctx, plan.ID)
	assert.NoError(t, err)
}

func TestPredefinedPrograms_CopyToUser(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, user := h.signIn(t, "ivan", "ivan-pass")

	all, err := svc.PredefinedPrograms.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	strength, err := svc.PredefinedPrograms.ByGoal(ctx, model.ProgramStrength)
	require.NoError(t, err)
	require.Len(t, strength, 1)
	advanced, err := svc.PredefinedPrograms.ByDifficulty(ctx, model.DifficultyAdvanced)
	require.NoError(t, err)
	assert.Empty(t, advanced)

	copied, err := svc.PredefinedPrograms.CopyToUser(ctx, strength[0].ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, strength[0].Name, copied.Name)
	assert.Equal(t, user.ID, copied.UserID)
	require.Len(t, copied.Exercises, 2)
	assert.InDelta(t, 40, copied.Exercises[0].Weight, 0.001)

	mine, err := svc.TrainingPrograms.ByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = svc.PredefinedPrograms.CopyToUser(ctx, strength[0].ID, user.ID+100)
	assert.True(t, api.IsForbidden(err))
}

func TestTraining_CreateForOwner(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, user := h.signIn(t, "ivan", "ivan-pass")

	program, err := svc.TrainingPrograms.Create(ctx, user.ID, model.TrainingProgram{Name: "Горна част"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, program.UserID)

	session, err := svc.TrainingSessions.Create(ctx, user.ID, model.TrainingSession{Name: "Понеделник", Date: "2024-05-06", DurationMinutes: 45})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.UserID)

	sessions, err := svc.TrainingSessions.ByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)

	_, err = svc.TrainingSessions.Create(ctx, user.ID+100, model.TrainingSession{Name: "Чужда", Date: "2024-05-06"})
	assert.True(t, api.IsForbidden(err))
}

func TestPersonalSettings_SaveReplaces(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, user := h.signIn(t, "ivan", "ivan-pass")

	_, err := svc.PersonalSettings.Get(ctx, user.ID)
	assert.True(t, api.IsNotFound(err))
	exists, err := svc.PersonalSettings.Exists(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	settings := model.PersonalSettings{
		UserID: user.ID, CurrentWeight: 82, TargetWeight: 76, Height: 180, Age: 31,
		Goal: model.GoalLoseWeight, Gender: model.GenderMale, ActivityLevel: model.ActivityModeratelyActive,
	}
	first, err := svc.PersonalSettings.Save(ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Format(dateLayout), first.LastCalculation)

	settings.CurrentWeight = 80
	second, err := svc.PersonalSettings.Save(ctx, settings)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	got, err := svc.PersonalSettings.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 80, got.CurrentWeight, 0.001)

	u, err := svc.PersonalSettings.User(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ivan", u.Username)

	_, err = svc.PersonalSettings.Get(ctx, user.ID+100)
	assert.True(t, api.IsForbidden(err))
}

func TestRecipeIngredients_ByRecipe(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	svc, _ := h.signIn(t, "ivan", "ivan-pass")

	seeded, err := svc.RecipeIngredients.ByRecipe(ctx, 1)
	require.NoError(t, err)
	require.Len(t, seeded, 1)
	assert.Equal(t, "Кисело мляко", seeded[0].FoodName)

	added, err := svc.RecipeIngredients.Create(ctx, model.RecipeIngredient{RecipeID: 1, FoodID: 1, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, "Ябълка", added.FoodName)

	_, err = svc.RecipeIngredients.Create(ctx, model.RecipeIngredient{RecipeID: 99, FoodID: 1, Amount: 50})
	assert.True(t, api.IsNotFound(err))

	all, err := svc.RecipeIngredients.ByRecipe(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
