package model

type PersonalSettings struct {
	ID              int64         `json:"id,omitempty"`
	UserID          int64         `json:"userId"`
	CurrentWeight   float64       `json:"currentWeight"`
	TargetWeight    float64       `json:"targetWeight"`
	Height          float64       `json:"height"`
	DailyCalories   float64       `json:"dailyCalories"`
	Protein         float64       `json:"protein"`
	Fats            float64       `json:"fats"`
	Carbs           float64       `json:"carbs"`
	Goal            Goal          `json:"goal"`
	Gender          Gender        `json:"gender"`
	Age             int           `json:"age"`
	ActivityLevel   ActivityLevel `json:"activityLevel"`
	BMR             float64       `json:"bmr,omitempty"`
	TDEE            float64       `json:"tdee,omitempty"`
	LastCalculation string        `json:"lastCalculation,omitempty"`
}

func (s PersonalSettings) GetID() int64 { return s.ID }

func (s PersonalSettings) Validate() error {
	var v ValidationError
	v.between("currentWeight", s.CurrentWeight, 20, 400)
	v.between("targetWeight", s.TargetWeight, 20, 400)
	v.between("height", s.Height, 50, 260)
	v.between("age", float64(s.Age), 10, 120)
	if !s.Goal.Valid() {
		v.Add("goal", "невалидна цел")
	}
	if s.Gender != GenderMale && s.Gender != GenderFemale {
		v.Add("gender", "невалиден пол")
	}
	if !s.ActivityLevel.Valid() {
		v.Add("activityLevel", "невалидно ниво на активност")
	}
	return v.OrNil()
}

// CalorieRequest is the calculator input.
type CalorieRequest struct {
	Weight        float64       `json:"weight"`
	Height        float64       `json:"height"`
	Age           int           `json:"age"`
	Gender        Gender        `json:"gender"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

func (r CalorieRequest) Validate() error {
	var v ValidationError
	v.between("weight", r.Weight, 20, 400)
	v.between("height", r.Height, 50, 260)
	v.between("age", float64(r.Age), 10, 120)
	if r.Gender != GenderMale && r.Gender != GenderFemale {
		v.Add("gender", "невалиден пол")
	}
	if !r.ActivityLevel.Valid() {
		v.Add("activityLevel", "невалидно ниво на активност")
	}
	if !r.Goal.Valid() {
		v.Add("goal", "невалидна цел")
	}
	return v.OrNil()
}

type MacroDistribution struct {
	TotalCalories     float64 `json:"totalCalories"`
	ProteinGrams      float64 `json:"proteinGrams"`
	FatsGrams         float64 `json:"fatsGrams"`
	CarbsGrams        float64 `json:"carbsGrams"`
	ProteinPercentage float64 `json:"proteinPercentage"`
	FatsPercentage    float64 `json:"fatsPercentage"`
	CarbsPercentage   float64 `json:"carbsPercentage"`
	ProteinCalories   float64 `json:"proteinCalories"`
	FatsCalories      float64 `json:"fatsCalories"`
	CarbsCalories     float64 `json:"carbsCalories"`
}

type CalorieResponse struct {
	BMR               float64           `json:"bmr"`
	TDEE              float64           `json:"tdee"`
	DailyCalories     float64           `json:"dailyCalories"`
	MacroDistribution MacroDistribution `json:"macroDistribution"`
	CalculationDate   string            `json:"calculationDate"`
}

// GetID lets a calculator result live in a single-value collection.
func (CalorieResponse) GetID() int64 { return 0 }
