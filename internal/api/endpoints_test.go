package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitnessdump/fitdump/internal/model"
)

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	req := model.CalorieRequest{Weight: 80, Height: 180, Age: 30}

	tests := []struct {
		name   string
		body   string
		call   func(s *Services) error
		method string
		path   string
		query  string
	}{
		{"exercise search", `[]`, func(s *Services) error {
			_, err := s.Exercises.Search(ctx, "клек")
			return err
		}, http.MethodGet, "/exercise/search", "query=%D0%BA%D0%BB%D0%B5%D0%BA"},
		{"exercise by category", `[]`, func(s *Services) error {
			_, err := s.Exercises.ByCategory(ctx, 3)
			return err
		}, http.MethodGet, "/exercise/category/3", ""},
		{"exercise update", `{}`, func(s *Services) error {
			_, err := s.Exercises.Update(ctx, 5, model.Exercise{Name: "x"})
			return err
		}, http.MethodPut, "/exercise/5", ""},
		{"category delete", ``, func(s *Services) error {
			return s.ExerciseCategories.Delete(ctx, 9)
		}, http.MethodDelete, "/exercise-categories/9", ""},
		{"food category", `[]`, func(s *Services) error {
			_, err := s.Foods.ByCategory(ctx, model.FoodDairy)
			return err
		}, http.MethodGet, "/foods/category/DAIRY", ""},
		{"food categories", `["FRUITS"]`, func(s *Services) error {
			cats, err := s.Foods.Categories(ctx)
			if err == nil && len(cats) != 1 {
				t.Errorf("categories = %v", cats)
			}
			return err
		}, http.MethodGet, "/foods/categories", ""},
		{"recipes by user", `[]`, func(s *Services) error {
			_, err := s.Recipes.ByUser(ctx, 4)
			return err
		}, http.MethodGet, "/recipes/user/4", ""},
		{"recipes by nutrition", `[]`, func(s *Services) error {
			_, err := s.Recipes.ByNutrition(ctx, NutritionFilter{MinCalories: 100, MaxCalories: 450.5})
			return err
		}, http.MethodGet, "/recipes/nutrition", "maxCalories=450.5&minCalories=100"},
		{"recipes by goal", `[]`, func(s *Services) error {
			_, err := s.Recipes.ByGoal(ctx, model.GoalLoseWeight)
			return err
		}, http.MethodGet, "/recipes/goal/LOSE_WEIGHT", ""},
		{"ingredients by recipe", `[]`, func(s *Services) error {
			_, err := s.RecipeIngredients.ByRecipe(ctx, 12)
			return err
		}, http.MethodGet, "/recipe-ingredients/recipe/12", ""},
		{"meal plans by goal", `[]`, func(s *Services) error {
			_, err := s.MealPlans.ByUserAndGoal(ctx, 2, model.GoalGainWeight)
			return err
		}, http.MethodGet, "/meal-plans/user/2/goal/GAIN_WEIGHT", ""},
		{"meal plan summary", `{}`, func(s *Services) error {
			_, err := s.MealPlans.NutritionSummary(ctx, 6)
			return err
		}, http.MethodGet, "/meal-plans/6/nutrition-summary", ""},
		{"meal plan day calories", `1850`, func(s *Services) error {
			kcal, err := s.MealPlans.DayCalories(ctx, 6, 2)
			if err == nil && kcal != 1850 {
				t.Errorf("kcal = %v", kcal)
			}
			return err
		}, http.MethodGet, "/meal-plans/6/days/2/calories", ""},
		{"meal plan add meal", `{}`, func(s *Services) error {
			_, err := s.MealPlans.AddMeal(ctx, 6, 1, model.Meal{Type: model.MealLunch})
			return err
		}, http.MethodPost, "/meal-plans/6/days/1/meals", ""},
		{"meal plan update meal", `{}`, func(s *Services) error {
			_, err := s.MealPlans.UpdateMeal(ctx, 6, 1, 30, model.Meal{})
			return err
		}, http.MethodPut, "/meal-plans/6/days/1/meals/30", ""},
		{"meal plan remove meal", ``, func(s *Services) error {
			return s.MealPlans.RemoveMeal(ctx, 6, 7, 30)
		}, http.MethodDelete, "/meal-plans/6/days/7/meals/30", ""},
		{"daily plans active", `{}`, func(s *Services) error {
			_, err := s.DailyPlans.Active(ctx, 3)
			return err
		}, http.MethodGet, "/daily-plans/user/3/active", ""},
		{"daily plans generate", `{}`, func(s *Services) error {
			_, err := s.DailyPlans.Generate(ctx, 3)
			return err
		}, http.MethodPost, "/daily-plans/user/3/generate", ""},
		{"daily plans generate with config", `{}`, func(s *Services) error {
			_, err := s.DailyPlans.GenerateWithConfig(ctx, 3, model.DailyPlanGenerationConfig{PlanName: "p"})
			return err
		}, http.MethodPost, "/daily-plans/user/3/generate-with-config", ""},
		{"daily plans deactivate", ``, func(s *Services) error {
			return s.DailyPlans.DeactivateAll(ctx, 3)
		}, http.MethodPost, "/daily-plans/user/3/deactivate-all", ""},
		{"training program create", `{}`, func(s *Services) error {
			_, err := s.TrainingPrograms.Create(ctx, 8, model.TrainingProgram{Name: "p"})
			return err
		}, http.MethodPost, "/training-programs/8", ""},
		{"training programs by user", `[]`, func(s *Services) error {
			_, err := s.TrainingPrograms.ByUser(ctx, 8)
			return err
		}, http.MethodGet, "/training-programs/user/8", ""},
		{"training session create", `{}`, func(s *Services) error {
			_, err := s.TrainingSessions.Create(ctx, 8, model.TrainingSession{Name: "s"})
			return err
		}, http.MethodPost, "/training-sessions/8", ""},
		{"progress range", `[]`, func(s *Services) error {
			_, err := s.WorkoutProgress.ByRange(ctx, 8, "2024-01-01", "2024-01-31")
			return err
		}, http.MethodGet, "/workout-progress/user/8/range", "end=2024-01-31&start=2024-01-01"},
		{"progress by program", `[]`, func(s *Services) error {
			_, err := s.WorkoutProgress.ByProgram(ctx, 8, 2)
			return err
		}, http.MethodGet, "/workout-progress/user/8/program/2", ""},
		{"progress by exercise", `[]`, func(s *Services) error {
			_, err := s.WorkoutProgress.ByExercise(ctx, 8, 11)
			return err
		}, http.MethodGet, "/workout-progress/user/8/exercise/11", ""},
		{"progress save", `{}`, func(s *Services) error {
			_, err := s.WorkoutProgress.Create(ctx, model.WorkoutProgress{ExerciseID: 1})
			return err
		}, http.MethodPost, "/workout-progress", ""},
		{"predefined by difficulty", `[]`, func(s *Services) error {
			_, err := s.PredefinedPrograms.ByDifficulty(ctx, model.DifficultyBeginner)
			return err
		}, http.MethodGet, "/predefined-programs/by-difficulty/BEGINNER", ""},
		{"predefined copy", `{}`, func(s *Services) error {
			_, err := s.PredefinedPrograms.CopyToUser(ctx, 5, 8)
			return err
		}, http.MethodPost, "/predefined-programs/copy/5/to-user/8", ""},
		{"diary by user and date", `[]`, func(s *Services) error {
			_, err := s.FoodDiary.ByUser(ctx, 8, "2024-03-01")
			return err
		}, http.MethodGet, "/food-diary/user/8", "date=2024-03-01"},
		{"diary summary", `{}`, func(s *Services) error {
			_, err := s.FoodDiary.NutritionSummary(ctx, 8, "2024-03-01")
			return err
		}, http.MethodGet, "/food-diary/nutrition-summary", "date=2024-03-01&userId=8"},
		{"food history", `[]`, func(s *Services) error {
			_, err := s.FoodHistory.List(ctx)
			return err
		}, http.MethodGet, "/food-history", ""},
		{"settings get", `{}`, func(s *Services) error {
			_, err := s.PersonalSettings.Get(ctx, 8)
			return err
		}, http.MethodGet, "/personal-settings", "userId=8"},
		{"settings check", `true`, func(s *Services) error {
			ok, err := s.PersonalSettings.Exists(ctx, 8)
			if err == nil && !ok {
				t.Error("expected settings to exist")
			}
			return err
		}, http.MethodGet, "/personal-settings/check", "userId=8"},
		{"settings calculate", `{}`, func(s *Services) error {
			_, err := s.PersonalSettings.Calculate(ctx, req)
			return err
		}, http.MethodPost, "/personal-settings/calculate", ""},
		{"calculator save", `{}`, func(s *Services) error {
			_, err := s.Calculator.CalculateAndSave(ctx, 8, req)
			return err
		}, http.MethodPost, "/calorie-calculator/calculate-and-save/8", ""},
		{"calculator smart meal plan", `{}`, func(s *Services) error {
			_, err := s.Calculator.GenerateSmartMealPlan(ctx, 8, req, false)
			return err
		}, http.MethodPost, "/calorie-calculator/generate-smart-meal-plan/8", "includeWorkoutDays=false"},
		{"calculator smart meal plan with config", `{}`, func(s *Services) error {
			_, err := s.Calculator.GenerateSmartMealPlanWithConfig(ctx, 8, req, model.MealPlanGenerationConfig{MealsPerDay: 3})
			return err
		}, http.MethodPost, "/calorie-calculator/generate-smart-meal-plan-with-config/8", ""},
		{"calculator training program", `{}`, func(s *Services) error {
			_, err := s.Calculator.GenerateTrainingProgram(ctx, 8, req)
			return err
		}, http.MethodPost, "/calorie-calculator/generate-training-program/8", ""},
		{"auth refresh", `{}`, func(s *Services) error {
			_, err := s.Auth.Refresh(ctx, "r-1")
			return err
		}, http.MethodPost, "/auth/refresh", ""},
		{"auth user", `{}`, func(s *Services) error {
			_, err := s.Auth.User(ctx, 8)
			return err
		}, http.MethodGet, "/users/8", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{body: tt.body}
			s := NewServices(newTestClient(t, rec))

			require.NoError(t, tt.call(s))

			got := rec.last(t)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, "/api"+tt.path, got.Path)
			assert.Equal(t, tt.query, got.Query)
		})
	}
}
