package model

// Goal is a nutrition goal shared by recipes, meal plans and the calculator.
type Goal string

const (
	GoalLoseWeight     Goal = "LOSE_WEIGHT"
	GoalMaintainWeight Goal = "MAINTAIN_WEIGHT"
	GoalGainWeight     Goal = "GAIN_WEIGHT"
)

// Valid reports whether g is one of the goals the backend accepts.
func (g Goal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalMaintainWeight, GoalGainWeight:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "SEDENTARY"
	ActivityLightlyActive    ActivityLevel = "LIGHTLY_ACTIVE"
	ActivityModeratelyActive ActivityLevel = "MODERATELY_ACTIVE"
	ActivityVeryActive       ActivityLevel = "VERY_ACTIVE"
	ActivityExtraActive      ActivityLevel = "EXTRA_ACTIVE"
)

// Valid reports whether a is a known activity level.
func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLightlyActive, ActivityModeratelyActive,
		ActivityVeryActive, ActivityExtraActive:
		return true
	}
	return false
}

// ProgramGoal classifies predefined training programs.
type ProgramGoal string

const (
	ProgramMuscleGain  ProgramGoal = "MUSCLE_GAIN"
	ProgramWeightLoss  ProgramGoal = "WEIGHT_LOSS"
	ProgramEndurance   ProgramGoal = "ENDURANCE"
	ProgramStrength    ProgramGoal = "STRENGTH"
	ProgramFlexibility ProgramGoal = "FLEXIBILITY"
)

type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "BEGINNER"
	DifficultyIntermediate DifficultyLevel = "INTERMEDIATE"
	DifficultyAdvanced     DifficultyLevel = "ADVANCED"
)

// MealType is the slot of a meal inside a meal plan day.
type MealType string

const (
	MealBreakfast      MealType = "BREAKFAST"
	MealMorningSnack   MealType = "MORNING_SNACK"
	MealLunch          MealType = "LUNCH"
	MealAfternoonSnack MealType = "AFTERNOON_SNACK"
	MealDinner         MealType = "DINNER"
	MealEveningSnack   MealType = "EVENING_SNACK"
)

// RecipeCategory doubles as the meal slot of a food diary entry.
type RecipeCategory string

const (
	RecipeBreakfast  RecipeCategory = "BREAKFAST"
	RecipeLunch      RecipeCategory = "LUNCH"
	RecipeDinner     RecipeCategory = "DINNER"
	RecipeSnack      RecipeCategory = "SNACK"
	RecipeDessert    RecipeCategory = "DESSERT"
	RecipeSmoothie   RecipeCategory = "SMOOTHIE"
	RecipeSalad      RecipeCategory = "SALAD"
	RecipeSoup       RecipeCategory = "SOUP"
	RecipeMainCourse RecipeCategory = "MAIN_COURSE"
	RecipeSideDish   RecipeCategory = "SIDE_DISH"
)

type FoodCategory string

const (
	FoodFruits     FoodCategory = "FRUITS"
	FoodVegetables FoodCategory = "VEGETABLES"
	FoodGrains     FoodCategory = "GRAINS"
	FoodProtein    FoodCategory = "PROTEIN"
	FoodDairy      FoodCategory = "DAIRY"
	FoodFats       FoodCategory = "FATS"
	FoodSweets     FoodCategory = "SWEETS"
	FoodBeverages  FoodCategory = "BEVERAGES"
	FoodNutsSeeds  FoodCategory = "NUTS_SEEDS"
	FoodLegumes    FoodCategory = "LEGUMES"
	FoodOther      FoodCategory = "OTHER"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)
