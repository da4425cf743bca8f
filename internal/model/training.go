package model

type ProgressiveLoadStep struct {
	Week   int     `json:"week"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
	// RestTime is in seconds.
	RestTime int `json:"restTime"`
	// Intensity is a percentage of the one-rep max.
	Intensity float64 `json:"intensity"`
}

type ProgramExercise struct {
	ID              int64                 `json:"id"`
	ExerciseID      int64                 `json:"exerciseId"`
	DayOfWeek       int                   `json:"dayOfWeek"`
	Sets            int                   `json:"sets"`
	Reps            int                   `json:"reps"`
	Weight          float64               `json:"weight"`
	OrderInDay      int                   `json:"orderInDay"`
	ProgressiveLoad []ProgressiveLoadStep `json:"progressiveLoad,omitempty"`
}

type TrainingProgram struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	UserID      int64             `json:"userId"`
	Exercises   []ProgramExercise `json:"exercises"`
}

func (p TrainingProgram) GetID() int64 { return p.ID }

func (p TrainingProgram) Validate() error {
	var v ValidationError
	v.require("name", p.Name)
	for _, e := range p.Exercises {
		if e.DayOfWeek < 1 || e.DayOfWeek > 7 {
			v.Add("exercises.dayOfWeek", "денят трябва да е между 1 и 7")
			break
		}
	}
	return v.OrNil()
}

type TrainingSession struct {
	ID              int64  `json:"id,omitempty"`
	UserID          int64  `json:"userId"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"durationMinutes"`
}

func (s TrainingSession) GetID() int64 { return s.ID }

func (s TrainingSession) Validate() error {
	var v ValidationError
	v.require("name", s.Name)
	v.require("date", s.Date)
	v.nonNegative("durationMinutes", float64(s.DurationMinutes))
	return v.OrNil()
}

type WorkoutProgress struct {
	ID            int64   `json:"id,omitempty"`
	UserID        int64   `json:"userId"`
	ProgramID     int64   `json:"programId"`
	ExerciseID    int64   `json:"exerciseId"`
	CompletedAt   string  `json:"completedAt"`
	CompletedSets int     `json:"completedSets"`
	CompletedReps int     `json:"completedReps"`
	WeightUsed    float64 `json:"weightUsed"`
	Notes         string  `json:"notes,omitempty"`
	// DifficultyRating ranges from 1 to 10.
	DifficultyRating int  `json:"difficultyRating"`
	Completed        bool `json:"completed"`
}

func (p WorkoutProgress) GetID() int64 { return p.ID }

func (p WorkoutProgress) Validate() error {
	var v ValidationError
	if p.ExerciseID <= 0 {
		v.Add("exerciseId", "изберете упражнение")
	}
	v.nonNegative("completedSets", float64(p.CompletedSets))
	v.nonNegative("completedReps", float64(p.CompletedReps))
	v.nonNegative("weightUsed", p.WeightUsed)
	v.between("difficultyRating", float64(p.DifficultyRating), 1, 10)
	return v.OrNil()
}

type PredefinedProgramExercise struct {
	ID              int64   `json:"id"`
	ExerciseID      int64   `json:"exerciseId"`
	DayOfWeek       int     `json:"dayOfWeek"`
	Sets            int     `json:"sets"`
	Reps            int     `json:"reps"`
	SuggestedWeight float64 `json:"suggestedWeight"`
	RestSeconds     int     `json:"restSeconds"`
	OrderInDay      int     `json:"orderInDay"`
}

type PredefinedProgram struct {
	ID              int64                       `json:"id"`
	Name            string                      `json:"name"`
	Description     string                      `json:"description"`
	Goal            ProgramGoal                 `json:"goal"`
	DurationWeeks   int                         `json:"durationWeeks"`
	DifficultyLevel DifficultyLevel             `json:"difficultyLevel"`
	Exercises       []PredefinedProgramExercise `json:"exercises"`
}

func (p PredefinedProgram) GetID() int64 { return p.ID }

// DailyPlan ties an optional meal plan and training program to a date range.
// At most one plan per user is active.
type DailyPlan struct {
	ID              int64            `json:"id"`
	UserID          int64            `json:"userId"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	StartDate       string           `json:"startDate"`
	EndDate         string           `json:"endDate"`
	Active          bool             `json:"active"`
	MealPlan        *MealPlan        `json:"mealPlan,omitempty"`
	TrainingProgram *TrainingProgram `json:"trainingProgram,omitempty"`
}

func (p DailyPlan) GetID() int64 { return p.ID }

func (p DailyPlan) Validate() error {
	var v ValidationError
	v.require("name", p.Name)
	v.require("startDate", p.StartDate)
	if p.EndDate != "" && p.EndDate < p.StartDate {
		v.Add("endDate", "крайната дата е преди началната")
	}
	return v.OrNil()
}

type MealPlanGenerationConfig struct {
	PlanName                     string             `json:"planName"`
	PlanDescription              string             `json:"planDescription"`
	StartDate                    string             `json:"startDate"`
	EndDate                      string             `json:"endDate"`
	Goal                         Goal               `json:"goal"`
	DurationWeeks                int                `json:"durationWeeks"`
	IncludeWorkoutDays           bool               `json:"includeWorkoutDays"`
	WorkoutDayCalorieMultiplier  float64            `json:"workoutDayCalorieMultiplier"`
	MealDistribution             map[string]float64 `json:"mealDistribution,omitempty"`
	WorkoutDayMealDistribution   map[string]float64 `json:"workoutDayMealDistribution,omitempty"`
	UseSmartGeneration           bool               `json:"useSmartGeneration"`
	IncludeSnacks                bool               `json:"includeSnacks"`
	MealsPerDay                  int                `json:"mealsPerDay"`
	ProteinPercentage            float64            `json:"proteinPercentage"`
	CarbsPercentage              float64            `json:"carbsPercentage"`
	FatsPercentage               float64            `json:"fatsPercentage"`
	UsePersonalSettingsForMacros bool               `json:"usePersonalSettingsForMacros"`
}

type DailyPlanGenerationConfig struct {
	PlanName                     string                   `json:"planName"`
	PlanDescription              string                   `json:"planDescription"`
	StartDate                    string                   `json:"startDate"`
	DurationWeeks                int                      `json:"durationWeeks"`
	IncludeMealPlan              bool                     `json:"includeMealPlan"`
	IncludeTrainingProgram       bool                     `json:"includeTrainingProgram"`
	ActivatePlan                 bool                     `json:"activatePlan"`
	MealPlanConfig               MealPlanGenerationConfig `json:"mealPlanConfig"`
	UsePersonalSettingsForMacros bool                     `json:"usePersonalSettingsForMacros"`
	DeactivateExistingPlans      bool                     `json:"deactivateExistingPlans"`
}

func (c DailyPlanGenerationConfig) Validate() error {
	var v ValidationError
	v.require("planName", c.PlanName)
	v.require("startDate", c.StartDate)
	if c.DurationWeeks < 1 {
		v.Add("durationWeeks", "продължителността трябва да е поне 1 седмица")
	}
	if !c.IncludeMealPlan && !c.IncludeTrainingProgram {
		v.Add("includeMealPlan", "изберете хранителен план или тренировъчна програма")
	}
	return v.OrNil()
}
