package api

// Services bundles every resource client over one transport.
type Services struct {
	Client *Client

	Auth               *Auth
	Exercises          *Exercises
	ExerciseCategories *ExerciseCategories
	Foods              *Foods
	Recipes            *Recipes
	RecipeIngredients  *RecipeIngredients
	MealPlans          *MealPlans
	DailyPlans         *DailyPlans
	TrainingPrograms   *TrainingPrograms
	TrainingSessions   *TrainingSessions
	WorkoutProgress    *WorkoutProgress
	PredefinedPrograms *PredefinedPrograms
	FoodDiary          *FoodDiary
	FoodHistory        *FoodHistory
	PersonalSettings   *PersonalSettings
	Calculator         *Calculator
}

func NewServices(c *Client) *Services {
	return &Services{
		Client:             c,
		Auth:               NewAuth(c),
		Exercises:          NewExercises(c),
		ExerciseCategories: NewExerciseCategories(c),
		Foods:              NewFoods(c),
		Recipes:            NewRecipes(c),
		RecipeIngredients:  NewRecipeIngredients(c),
		MealPlans:          NewMealPlans(c),
		DailyPlans:         NewDailyPlans(c),
		TrainingPrograms:   NewTrainingPrograms(c),
		TrainingSessions:   NewTrainingSessions(c),
		WorkoutProgress:    NewWorkoutProgress(c),
		PredefinedPrograms: NewPredefinedPrograms(c),
		FoodDiary:          NewFoodDiary(c),
		FoodHistory:        NewFoodHistory(c),
		PersonalSettings:   NewPersonalSettings(c),
		Calculator:         NewCalculator(c),
	}
}
