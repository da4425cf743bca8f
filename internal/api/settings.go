package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/fitnessdump/fitdump/internal/model"
)

type PersonalSettings struct {
	client *Client
}

func NewPersonalSettings(c *Client) *PersonalSettings {
	return &PersonalSettings{client: c}
}

func userQuery(userID int64) (url.Values, error) {
	if userID <= 0 {
		return nil, ErrInvalidID
	}
	return url.Values{"userId": {strconv.FormatInt(userID, 10)}}, nil
}

func (p *PersonalSettings) Get(ctx context.Context, userID int64) (model.PersonalSettings, error) {
	q, err := userQuery(userID)
	if err != nil {
		return model.PersonalSettings{}, err
	}
	return get[model.PersonalSettings](ctx, p.client, "/personal-settings", q)
}

func (p *PersonalSettings) GetByID(ctx context.Context, id int64) (model.PersonalSettings, error) {
	path, err := idPath("/personal-settings", id)
	if err != nil {
		return model.PersonalSettings{}, err
	}
	return get[model.PersonalSettings](ctx, p.client, path, nil)
}

func (p *PersonalSettings) Save(ctx context.Context, s model.PersonalSettings) (model.PersonalSettings, error) {
	return post[model.PersonalSettings](ctx, p.client, "/personal-settings", nil, s)
}

func (p *PersonalSettings) UpdateByID(ctx context.Context, id int64, s model.PersonalSettings) (model.PersonalSettings, error) {
	path, err := idPath("/personal-settings", id)
	if err != nil {
		return model.PersonalSettings{}, err
	}
	return put[model.PersonalSettings](ctx, p.client, path, s)
}

// Exists reports whether the user has saved settings yet.
func (p *PersonalSettings) Exists(ctx context.Context, userID int64) (bool, error) {
	q, err := userQuery(userID)
	if err != nil {
		return false, err
	}
	return get[bool](ctx, p.client, "/personal-settings/check", q)
}

func (p *PersonalSettings) User(ctx context.Context, userID int64) (model.User, error) {
	q, err := userQuery(userID)
	if err != nil {
		return model.User{}, err
	}
	return get[model.User](ctx, p.client, "/personal-settings/getUser", q)
}

func (p *PersonalSettings) Calculate(ctx context.Context, req model.CalorieRequest) (model.CalorieResponse, error) {
	return post[model.CalorieResponse](ctx, p.client, "/personal-settings/calculate", nil, req)
}

type Calculator struct {
	client *Client
}

func NewCalculator(c *Client) *Calculator {
	return &Calculator{client: c}
}

type configuredRequest struct {
	Request model.CalorieRequest           `json:"request"`
	Config  model.MealPlanGenerationConfig `json:"config"`
}

func (c *Calculator) Calculate(ctx context.Context, req model.CalorieRequest) (model.CalorieResponse, error) {
	return post[model.CalorieResponse](ctx, c.client, "/calorie-calculator/calculate", nil, req)
}

// CalculateAndSave calculates and stores the result in the user's personal settings.
func (c *Calculator) CalculateAndSave(ctx context.Context, userID int64, req model.CalorieRequest) (model.CalorieResponse, error) {
	p, err := idPath("/calorie-calculator/calculate-and-save", userID)
	if err != nil {
		return model.CalorieResponse{}, err
	}
	return post[model.CalorieResponse](ctx, c.client, p, nil, req)
}

func (c *Calculator) GenerateMealPlan(ctx context.Context, userID int64, req model.CalorieRequest) (model.MealPlan, error) {
	p, err := idPath("/calorie-calculator/generate-meal-plan", userID)
	if err != nil {
		return model.MealPlan{}, err
	}
	return post[model.MealPlan](ctx, c.client, p, nil, req)
}

func (c *Calculator) GenerateSmartMealPlan(ctx context.Context, userID int64, req model.CalorieRequest, includeWorkoutDays bool) (model.MealPlan, error) {
	p, err := idPath("/calorie-calculator/generate-smart-meal-plan", userID)
	if err != nil {
		return model.MealPlan{}, err
	}
	q := url.Values{"includeWorkoutDays": {strconv.FormatBool(includeWorkoutDays)}}
	return post[model.MealPlan](ctx, c.client, p, q, req)
}

func (c *Calculator) GenerateMealPlanWithConfig(ctx context.Context, userID int64, req model.CalorieRequest, cfg model.MealPlanGenerationConfig) (model.MealPlan, error) {
	p, err := idPath("/calorie-calculator/generate-meal-plan-with-config", userID)
	if err != nil {
		return model.MealPlan{}, err
	}
	return post[model.MealPlan](ctx, c.client, p, nil, configuredRequest{Request: req, Config: cfg})
}

func (c *Calculator) GenerateSmartMealPlanWithConfig(ctx context.Context, userID int64, req model.CalorieRequest, cfg model.MealPlanGenerationConfig) (model.MealPlan, error) {
	p, err := idPath("/calorie-calculator/generate-smart-meal-plan-with-config", userID)
	if err != nil {
		return model.MealPlan{}, err
	}
	return post[model.MealPlan](ctx, c.client, p, nil, configuredRequest{Request: req, Config: cfg})
}

func (c *Calculator) GenerateDailyPlan(ctx context.Context, userID int64, req model.CalorieRequest) (model.DailyPlan, error) {
	p, err := idPath("/calorie-calculator/generate-daily-plan", userID)
	if err != nil {
		return model.DailyPlan{}, err
	}
	return post[model.DailyPlan](ctx, c.client, p, nil, req)
}

func (c *Calculator) GenerateTrainingProgram(ctx context.Context, userID int64, req model.CalorieRequest) (model.TrainingProgram, error) {
	p, err := idPath("/calorie-calculator/generate-training-program", userID)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	return post[model.TrainingProgram](ctx, c.client, p, nil, req)
}
