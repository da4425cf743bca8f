package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/fitnessdump/fitdump/internal/model"
)

type Foods struct {
	Resource[model.Food]
}

func NewFoods(c *Client) *Foods {
	return &Foods{NewResource[model.Food](c, "/foods")}
}

func (f *Foods) Search(ctx context.Context, query string) ([]model.Food, error) {
	return f.Query(ctx, "/search", url.Values{"query": {query}})
}

func (f *Foods) ByCategory(ctx context.Context, category model.FoodCategory) ([]model.Food, error) {
	return f.Query(ctx, "/category"+segment(string(category)), nil)
}

func (f *Foods) Categories(ctx context.Context) ([]string, error) {
	return getList[string](ctx, f.client, f.path+"/categories", nil)
}

type Recipes struct {
	Resource[model.Recipe]
}

func NewRecipes(c *Client) *Recipes {
	return &Recipes{NewResource[model.Recipe](c, "/recipes")}
}

// NutritionFilter bounds a recipe search. Zero fields are not sent.
type NutritionFilter struct {
	MinCalories float64
	MaxCalories float64
	MinProtein  float64
}

func (f NutritionFilter) values() url.Values {
	q := url.Values{}
	set := func(key string, v float64) {
		if v != 0 {
			q.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	set("minCalories", f.MinCalories)
	set("maxCalories", f.MaxCalories)
	set("minProtein", f.MinProtein)
	return q
}

func (r *Recipes) ByUser(ctx context.Context, userID int64) ([]model.Recipe, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return r.Query(ctx, p, nil)
}

func (r *Recipes) Search(ctx context.Context, query string) ([]model.Recipe, error) {
	return r.Query(ctx, "/search", url.Values{"query": {query}})
}

func (r *Recipes) ByNutrition(ctx context.Context, filter NutritionFilter) ([]model.Recipe, error) {
	return r.Query(ctx, "/nutrition", filter.values())
}

func (r *Recipes) ByGoal(ctx context.Context, goal model.Goal) ([]model.Recipe, error) {
	return r.Query(ctx, "/goal"+segment(string(goal)), nil)
}

type RecipeIngredients struct {
	Resource[model.RecipeIngredient]
}

func NewRecipeIngredients(c *Client) *RecipeIngredients {
	return &RecipeIngredients{NewResource[model.RecipeIngredient](c, "/recipe-ingredients")}
}

func (r *RecipeIngredients) ByRecipe(ctx context.Context, recipeID int64) ([]model.RecipeIngredient, error) {
	p, err := idPath("/recipe", recipeID)
	if err != nil {
		return nil, err
	}
	return r.Query(ctx, p, nil)
}

type MealPlans struct {
	Resource[model.MealPlan]
}

func NewMealPlans(c *Client) *MealPlans {
	return &MealPlans{NewResource[model.MealPlan](c, "/meal-plans")}
}

func (m *MealPlans) ByUser(ctx context.Context, userID int64) ([]model.MealPlan, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return m.Query(ctx, p, nil)
}

func (m *MealPlans) ByUserAndGoal(ctx context.Context, userID int64, goal model.Goal) ([]model.MealPlan, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return m.Query(ctx, p+"/goal"+segment(string(goal)), nil)
}

func (m *MealPlans) NutritionSummary(ctx context.Context, planID int64) (model.NutritionSummary, error) {
	p, err := idPath(m.path, planID)
	if err != nil {
		return model.NutritionSummary{}, err
	}
	return get[model.NutritionSummary](ctx, m.client, p+"/nutrition-summary", nil)
}

func (m *MealPlans) DayCalories(ctx context.Context, planID int64, day int) (float64, error) {
	p, err := m.dayPath(planID, day)
	if err != nil {
		return 0, err
	}
	return get[float64](ctx, m.client, p+"/calories", nil)
}

func (m *MealPlans) AddMeal(ctx context.Context, planID int64, day int, meal model.Meal) (model.Meal, error) {
	p, err := m.dayPath(planID, day)
	if err != nil {
		return model.Meal{}, err
	}
	return post[model.Meal](ctx, m.client, p+"/meals", nil, meal)
}

func (m *MealPlans) UpdateMeal(ctx context.Context, planID int64, day int, mealID int64, meal model.Meal) (model.Meal, error) {
	p, err := m.mealPath(planID, day, mealID)
	if err != nil {
		return model.Meal{}, err
	}
	return put[model.Meal](ctx, m.client, p, meal)
}

func (m *MealPlans) RemoveMeal(ctx context.Context, planID int64, day int, mealID int64) error {
	p, err := m.mealPath(planID, day, mealID)
	if err != nil {
		return err
	}
	return m.client.Do(ctx, http.MethodDelete, p, nil, nil, nil)
}

func (m *MealPlans) dayPath(planID int64, day int) (string, error) {
	if day < 1 || day > 7 {
		return "", ErrInvalidDay
	}
	p, err := idPath(m.path, planID)
	if err != nil {
		return "", err
	}
	return p + "/days/" + strconv.Itoa(day), nil
}

func (m *MealPlans) mealPath(planID int64, day int, mealID int64) (string, error) {
	p, err := m.dayPath(planID, day)
	if err != nil {
		return "", err
	}
	return idPath(p+"/meals", mealID)
}

type FoodDiary struct {
	Resource[model.FoodDiaryEntry]
}

func NewFoodDiary(c *Client) *FoodDiary {
	return &FoodDiary{NewResource[model.FoodDiaryEntry](c, "/food-diary")}
}

// ByUser lists a user's entries, optionally narrowed to one date (YYYY-MM-DD).
func (d *FoodDiary) ByUser(ctx context.Context, userID int64, date string) ([]model.FoodDiaryEntry, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	var q url.Values
	if date != "" {
		q = url.Values{"date": {date}}
	}
	return d.Query(ctx, p, q)
}

func (d *FoodDiary) NutritionSummary(ctx context.Context, userID int64, date string) (model.DailyNutritionStats, error) {
	if userID <= 0 {
		return model.DailyNutritionStats{}, ErrInvalidID
	}
	q := url.Values{
		"userId": {strconv.FormatInt(userID, 10)},
		"date":   {date},
	}
	return get[model.DailyNutritionStats](ctx, d.client, d.path+"/nutrition-summary", q)
}

// FoodHistory is scoped to the caller by the bearer token.
type FoodHistory struct {
	Resource[model.FoodHistory]
}

func NewFoodHistory(c *Client) *FoodHistory {
	return &FoodHistory{NewResource[model.FoodHistory](c, "/food-history")}
}
