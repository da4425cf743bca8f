package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(err error) []string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	out := make([]string, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		out = append(out, fe.Field)
	}
	return out
}

func TestValidationError_Message(t *testing.T) {
	var v ValidationError
	assert.NoError(t, v.OrNil())

	v.Add("name", "полето е задължително")
	assert.Equal(t, "validation failed: name: полето е задължително", v.Error())

	v.Add("kcal", "bad")
	assert.Equal(t, "validation failed: name: полето е задължително; kcal: bad", v.Error())
}

func TestValidationError_Matching(t *testing.T) {
	err := Food{}.Validate()
	require.Error(t, err)

	wrapped := fmt.Errorf("create food: %w", err)
	assert.True(t, errors.Is(wrapped, ErrValidationFailed))
	assert.True(t, IsValidationFailed(wrapped))
	assert.False(t, IsValidationFailed(errors.New("other")))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		input  interface{ Validate() error }
		fields []string
	}{
		{"valid exercise", Exercise{Name: "Клек", CategoryID: 1}, nil},
		{"exercise missing name and category", Exercise{}, []string{"name", "categoryId"}},
		{"exercise bad media", Exercise{Name: "x", CategoryID: 1, MediaType: "mp3"}, []string{"mediaType"}},
		{"category", ExerciseCategory{Name: " "}, []string{"name"}},
		{"food negative macros", Food{Name: "Ябълка", Kcal: -1, Fat: -2}, []string{"kcal", "fat"}},
		{"valid food", Food{Name: "Ябълка", Kcal: 52}, nil},
		{"recipe servings", Recipe{Name: "Супа"}, []string{"servings"}},
		{"recipe goal", Recipe{Name: "Супа", Servings: 2, RecommendedFor: "FAST"}, []string{"recommendedFor"}},
		{"ingredient", RecipeIngredient{}, []string{"foodId", "amount"}},
		{"diary entry", CreateFoodDiaryEntry{MealType: RecipeLunch, RecipeID: 3, Quantity: 1}, nil},
		{"diary entry empty", CreateFoodDiaryEntry{}, []string{"mealType", "recipeId", "quantity"}},
		{"session", TrainingSession{Name: "Крака", Date: "2024-01-01", DurationMinutes: -5}, []string{"durationMinutes"}},
		{"progress rating", WorkoutProgress{ExerciseID: 1, DifficultyRating: 11}, []string{"difficultyRating"}},
		{"program day", TrainingProgram{Name: "p", Exercises: []ProgramExercise{{DayOfWeek: 8}}}, []string{"exercises.dayOfWeek"}},
		{"daily plan dates", DailyPlan{Name: "p", StartDate: "2024-02-01", EndDate: "2024-01-01"}, []string{"endDate"}},
		{"generation config", DailyPlanGenerationConfig{PlanName: "p", StartDate: "2024-01-01", DurationWeeks: 1}, []string{"includeMealPlan"}},
		{"calorie request", CalorieRequest{Weight: 80, Height: 180, Age: 30, Gender: GenderMale, ActivityLevel: ActivitySedentary, Goal: GoalLoseWeight}, nil},
		{"calorie request empty", CalorieRequest{}, []string{"weight", "height", "age", "gender", "activityLevel", "goal"}},
		{"register mismatch", RegisterRequest{Username: "u", Email: "e", Password: "a", ConfirmPassword: "b"}, []string{"confirmPassword"}},
		{"login", LoginRequest{}, []string{"username", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.fields, fields(err))
		})
	}
}

func TestEnums(t *testing.T) {
	assert.True(t, GoalGainWeight.Valid())
	assert.False(t, Goal("BUILD_MUSCLE").Valid())
	assert.True(t, ActivityExtraActive.Valid())
	assert.False(t, ActivityLevel("").Valid())
}
