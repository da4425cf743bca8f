package model

type Food struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Kcal        float64      `json:"kcal"`
	Protein     float64      `json:"protein"`
	Fat         float64      `json:"fat"`
	Carbs       float64      `json:"carbs"`
	Category    FoodCategory `json:"category,omitempty"`
}

func (f Food) GetID() int64 { return f.ID }

func (f Food) Validate() error {
	var v ValidationError
	v.require("name", f.Name)
	v.nonNegative("kcal", f.Kcal)
	v.nonNegative("protein", f.Protein)
	v.nonNegative("fat", f.Fat)
	v.nonNegative("carbs", f.Carbs)
	return v.OrNil()
}

type Recipe struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Instructions       string             `json:"instructions"`
	Ingredients        []RecipeIngredient `json:"ingredients"`
	Servings           int                `json:"servings"`
	PreparationTime    int                `json:"preparationTime"`
	CreatorID          int64              `json:"creatorId"`
	RecommendedFor     Goal               `json:"recommendedFor"`
	CaloriesPerServing float64            `json:"caloriesPerServing"`
	ProteinPerServing  float64            `json:"proteinPerServing"`
	FatPerServing      float64            `json:"fatPerServing"`
	CarbsPerServing    float64            `json:"carbsPerServing"`
}

func (r Recipe) GetID() int64 { return r.ID }

func (r Recipe) Validate() error {
	var v ValidationError
	v.require("name", r.Name)
	if r.Servings < 1 {
		v.Add("servings", "порциите трябва да са поне 1")
	}
	v.nonNegative("preparationTime", float64(r.PreparationTime))
	v.nonNegative("caloriesPerServing", r.CaloriesPerServing)
	if r.RecommendedFor != "" && !r.RecommendedFor.Valid() {
		v.Add("recommendedFor", "невалидна цел")
	}
	return v.OrNil()
}

type RecipeIngredient struct {
	ID       int64   `json:"id"`
	RecipeID int64   `json:"recipeId"`
	FoodID   int64   `json:"foodId"`
	FoodName string  `json:"foodName"`
	Amount   float64 `json:"amount"`
	Note     string  `json:"note,omitempty"`
}

func (i RecipeIngredient) GetID() int64 { return i.ID }

func (i RecipeIngredient) Validate() error {
	var v ValidationError
	if i.FoodID <= 0 {
		v.Add("foodId", "изберете храна")
	}
	v.positive("amount", i.Amount)
	return v.OrNil()
}

type Macronutrients struct {
	Protein       float64 `json:"protein"`
	Fats          float64 `json:"fats"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
}

type MealPlan struct {
	ID             int64         `json:"id"`
	UserID         int64         `json:"userId"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	StartDate      string        `json:"startDate"`
	EndDate        string        `json:"endDate"`
	Goal           Goal          `json:"goal"`
	TargetCalories float64       `json:"targetCalories"`
	TargetProtein  float64       `json:"targetProtein"`
	TargetFats     float64       `json:"targetFats"`
	TargetCarbs    float64       `json:"targetCarbs"`
	Days           []MealPlanDay `json:"days"`
}

func (p MealPlan) GetID() int64 { return p.ID }

func (p MealPlan) Validate() error {
	var v ValidationError
	v.require("name", p.Name)
	v.nonNegative("targetCalories", p.TargetCalories)
	if p.Goal != "" && !p.Goal.Valid() {
		v.Add("goal", "невалидна цел")
	}
	return v.OrNil()
}

type MealPlanDay struct {
	ID int64 `json:"id"`
	// DayOfWeek is 1 (Monday) through 7.
	DayOfWeek int    `json:"dayOfWeek"`
	Meals     []Meal `json:"meals"`
}

type Meal struct {
	ID            int64      `json:"id"`
	Type          MealType   `json:"type"`
	Items         []MealItem `json:"items"`
	TotalCalories float64    `json:"totalCalories"`
	TotalProtein  float64    `json:"totalProtein"`
	TotalFats     float64    `json:"totalFats"`
	TotalCarbs    float64    `json:"totalCarbs"`
}

func (m Meal) GetID() int64 { return m.ID }

type MealItem struct {
	ID         int64   `json:"id"`
	FoodID     int64   `json:"foodId,omitempty"`
	FoodName   string  `json:"foodName,omitempty"`
	RecipeID   int64   `json:"recipeId,omitempty"`
	RecipeName string  `json:"recipeName,omitempty"`
	Amount     float64 `json:"amount"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Fats       float64 `json:"fats"`
	Carbs      float64 `json:"carbs"`
}

type NutritionSummary struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalFats     float64 `json:"totalFats"`
	TotalCarbs    float64 `json:"totalCarbs"`
}

type FoodDiaryEntry struct {
	ID             int64          `json:"id"`
	UserID         int64          `json:"userId"`
	Date           string         `json:"date"`
	MealType       RecipeCategory `json:"mealType"`
	RecipeID       int64          `json:"recipeId"`
	Recipe         *Recipe        `json:"recipe,omitempty"`
	Quantity       float64        `json:"quantity"`
	Calories       float64        `json:"calories"`
	Macronutrients Macronutrients `json:"macronutrients"`
	Notes          string         `json:"notes,omitempty"`
	CreatedAt      string         `json:"createdAt,omitempty"`
}

func (e FoodDiaryEntry) GetID() int64 { return e.ID }

type CreateFoodDiaryEntry struct {
	MealType RecipeCategory `json:"mealType"`
	RecipeID int64          `json:"recipeId"`
	Quantity float64        `json:"quantity"`
	Notes    string         `json:"notes,omitempty"`
}

func (e CreateFoodDiaryEntry) Validate() error {
	var v ValidationError
	v.require("mealType", string(e.MealType))
	if e.RecipeID <= 0 {
		v.Add("recipeId", "изберете рецепта")
	}
	v.positive("quantity", e.Quantity)
	return v.OrNil()
}

type DailyNutritionStats struct {
	Date                    string           `json:"date"`
	TotalCalories           float64          `json:"totalCalories"`
	TotalMacronutrients     Macronutrients   `json:"totalMacronutrients"`
	Meals                   []FoodDiaryEntry `json:"meals"`
	GoalCalories            float64          `json:"goalCalories"`
	GoalMacronutrients      Macronutrients   `json:"goalMacronutrients"`
	CaloriesRemaining       float64          `json:"caloriesRemaining"`
	MacronutrientsRemaining Macronutrients   `json:"macronutrientsRemaining"`
}

type FoodHistory struct {
	ID      int64   `json:"id"`
	UserID  int64   `json:"userId"`
	Date    string  `json:"date"`
	FoodIDs []int64 `json:"foodIds"`
}

func (h FoodHistory) GetID() int64 { return h.ID }
