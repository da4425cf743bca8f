package resource

import (
	"context"
	"sync"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

var settingsMessages = collection.Messages{
	"fetch":     {Failure: "Грешка при зареждане на настройките"},
	"get":       {Failure: "Грешка при зареждане на настройките"},
	"user":      {Failure: "Грешка при зареждане на потребителя"},
	"save":      {Failure: "Грешка при запазване на настройките"},
	"calculate": {Failure: "Грешка при изчисляване на настройките"},
	"update":    {Failure: "Грешка при обновяване на настройките"},
}

// PersonalSettings holds the signed-in user's settings as a single value.
// Items has at most one element.
type PersonalSettings struct {
	api   *api.PersonalSettings
	scope userScope
	Items *collection.Collection[model.PersonalSettings]

	mu   sync.Mutex
	user *model.User
}

func NewPersonalSettings(client *api.PersonalSettings, identity Identity, opts ...Option) *PersonalSettings {
	o := buildOptions(opts)
	return &PersonalSettings{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.PersonalSettings]("personal_settings", settingsMessages, o.collection()...),
	}
}

func (s *PersonalSettings) Open(ctx context.Context) { s.scope.start(ctx, s.load) }

func (s *PersonalSettings) load(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Items)
		s.setUser(nil)
		return
	}
	parallel(
		func() { s.fetch(ctx, userID) },
		func() { s.loadUser(ctx, userID) },
	)
}

// fetch treats 404 as "nothing saved yet".
func (s *PersonalSettings) fetch(ctx context.Context, userID int64) {
	s.Items.Fetch(ctx, "fetch", func(ctx context.Context) ([]model.PersonalSettings, error) {
		settings, err := s.api.Get(ctx, userID)
		if api.IsNotFound(err) {
			return []model.PersonalSettings{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []model.PersonalSettings{settings}, nil
	})
}

func (s *PersonalSettings) loadUser(ctx context.Context, userID int64) {
	u, err := collection.Run(s.Items, ctx, "user", func(ctx context.Context) (model.User, error) {
		return s.api.User(ctx, userID)
	})
	if err == nil {
		s.setUser(&u)
	}
}

func (s *PersonalSettings) Fetch(ctx context.Context) {
	userID := s.scope.current()
	if userID <= 0 {
		signedOut(s.Items)
		return
	}
	s.fetch(ctx, userID)
}

// Value returns the loaded settings, if the user has any.
func (s *PersonalSettings) Value() (model.PersonalSettings, bool) {
	items := s.Items.Items()
	if len(items) == 0 {
		return model.PersonalSettings{}, false
	}
	return items[0], true
}

// User is the profile loaded alongside the settings.
func (s *PersonalSettings) User() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *PersonalSettings) setUser(u *model.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Save stores settings for the signed-in user and reloads them.
func (s *PersonalSettings) Save(ctx context.Context, settings model.PersonalSettings) (model.PersonalSettings, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return model.PersonalSettings{}, err
	}
	settings.UserID = userID
	if err := settings.Validate(); err != nil {
		return model.PersonalSettings{}, err
	}
	var saved model.PersonalSettings
	err = s.Items.Apply(ctx, "save",
		func(ctx context.Context) (err error) {
			saved, err = s.api.Save(ctx, settings)
			return err
		},
		func([]model.PersonalSettings) []model.PersonalSettings { return []model.PersonalSettings{saved} },
	)
	if err != nil {
		return model.PersonalSettings{}, err
	}
	return saved, nil
}

func (s *PersonalSettings) Update(ctx context.Context, id int64, settings model.PersonalSettings) (model.PersonalSettings, error) {
	if err := settings.Validate(); err != nil {
		return model.PersonalSettings{}, err
	}
	return s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.PersonalSettings, error) {
		return s.api.UpdateByID(ctx, id, settings)
	})
}

func (s *PersonalSettings) Get(ctx context.Context, id int64) (model.PersonalSettings, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.PersonalSettings, error) {
		return s.api.GetByID(ctx, id)
	})
}

// Calculate previews BMR, TDEE and macros without saving them.
func (s *PersonalSettings) Calculate(ctx context.Context, req model.CalorieRequest) (model.CalorieResponse, error) {
	if _, err := s.scope.require(s.Items); err != nil {
		return model.CalorieResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return model.CalorieResponse{}, err
	}
	return collection.Run(s.Items, ctx, "calculate", func(ctx context.Context) (model.CalorieResponse, error) {
		return s.api.Calculate(ctx, req)
	})
}

// Exists reports whether settings were saved. Lookup failures count as no.
func (s *PersonalSettings) Exists(ctx context.Context, userID int64) bool {
	ok, err := s.api.Exists(ctx, userID)
	return err == nil && ok
}

func (s *PersonalSettings) Close() {
	s.scope.detach()
	s.Items.Close()
	s.scope.wait()
}

var calculatorMessages = collection.Messages{
	"calculate":          {Failure: "Грешка при изчисляване на калориите"},
	"calculateAndSave":   {Failure: "Грешка при запазване на настройките"},
	"trainingProgram":    {Failure: "Грешка при генериране на тренировъчна програма"},
	"mealPlan":           {Failure: "Грешка при генериране на хранителен план"},
	"smartMealPlan":      {Failure: "Грешка при генериране на умен хранителен план"},
	"smartWithConfig":    {Failure: "Грешка при генериране на умен хранителен план с конфигурация"},
	"mealPlanWithConfig": {Failure: "Грешка при генериране на хранителен план с конфигурация"},
	"dailyPlan":          {Failure: "Грешка при генериране на дневен план"},
}

// Calculator keeps the last calorie calculation as a single value and
// generates plans from the same input. Every operation needs a signed-in
// user.
type Calculator struct {
	api   *api.Calculator
	scope userScope
	Items *collection.Collection[model.CalorieResponse]
}

func NewCalculator(client *api.Calculator, identity Identity, opts ...Option) *Calculator {
	o := buildOptions(opts)
	return &Calculator{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.CalorieResponse]("calorie_calculator", calculatorMessages, o.collection()...),
	}
}

// Result returns the last successful calculation.
func (s *Calculator) Result() (model.CalorieResponse, bool) {
	items := s.Items.Items()
	if len(items) == 0 {
		return model.CalorieResponse{}, false
	}
	return items[0], true
}

func (s *Calculator) Calculate(ctx context.Context, req model.CalorieRequest) (model.CalorieResponse, error) {
	return s.calculate(ctx, "calculate", req, func(ctx context.Context, _ int64) (model.CalorieResponse, error) {
		return s.api.Calculate(ctx, req)
	})
}

// CalculateAndSave also stores the result in the user's personal settings.
func (s *Calculator) CalculateAndSave(ctx context.Context, req model.CalorieRequest) (model.CalorieResponse, error) {
	return s.calculate(ctx, "calculateAndSave", req, func(ctx context.Context, userID int64) (model.CalorieResponse, error) {
		return s.api.CalculateAndSave(ctx, userID, req)
	})
}

func (s *Calculator) calculate(ctx context.Context, op string, req model.CalorieRequest, fn func(context.Context, int64) (model.CalorieResponse, error)) (model.CalorieResponse, error) {
	userID, err := s.prepare(req)
	if err != nil {
		return model.CalorieResponse{}, err
	}
	var res model.CalorieResponse
	err = s.Items.Apply(ctx, op,
		func(ctx context.Context) (err error) {
			res, err = fn(ctx, userID)
			return err
		},
		func([]model.CalorieResponse) []model.CalorieResponse { return []model.CalorieResponse{res} },
	)
	if err != nil {
		return model.CalorieResponse{}, err
	}
	return res, nil
}

func (s *Calculator) GenerateTrainingProgram(ctx context.Context, req model.CalorieRequest) (model.TrainingProgram, error) {
	return generate(s, ctx, "trainingProgram", req, s.api.GenerateTrainingProgram)
}

func (s *Calculator) GenerateMealPlan(ctx context.Context, req model.CalorieRequest) (model.MealPlan, error) {
	return generate(s, ctx, "mealPlan", req, s.api.GenerateMealPlan)
}

func (s *Calculator) GenerateSmartMealPlan(ctx context.Context, req model.CalorieRequest, includeWorkoutDays bool) (model.MealPlan, error) {
	return generate(s, ctx, "smartMealPlan", req, func(ctx context.Context, userID int64, req model.CalorieRequest) (model.MealPlan, error) {
		return s.api.GenerateSmartMealPlan(ctx, userID, req, includeWorkoutDays)
	})
}

func (s *Calculator) GenerateSmartMealPlanWithConfig(ctx context.Context, req model.CalorieRequest, cfg model.MealPlanGenerationConfig) (model.MealPlan, error) {
	return generate(s, ctx, "smartWithConfig", req, func(ctx context.Context, userID int64, req model.CalorieRequest) (model.MealPlan, error) {
		return s.api.GenerateSmartMealPlanWithConfig(ctx, userID, req, cfg)
	})
}

func (s *Calculator) GenerateMealPlanWithConfig(ctx context.Context, req model.CalorieRequest, cfg model.MealPlanGenerationConfig) (model.MealPlan, error) {
	return generate(s, ctx, "mealPlanWithConfig", req, func(ctx context.Context, userID int64, req model.CalorieRequest) (model.MealPlan, error) {
		return s.api.GenerateMealPlanWithConfig(ctx, userID, req, cfg)
	})
}

func (s *Calculator) GenerateDailyPlan(ctx context.Context, req model.CalorieRequest) (model.DailyPlan, error) {
	return generate(s, ctx, "dailyPlan", req, s.api.GenerateDailyPlan)
}

func (s *Calculator) Close() { s.Items.Close() }

func (s *Calculator) prepare(req model.CalorieRequest) (int64, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return 0, err
	}
	if err := req.Validate(); err != nil {
		return 0, err
	}
	return userID, nil
}

func generate[R any](s *Calculator, ctx context.Context, op string, req model.CalorieRequest, fn func(context.Context, int64, model.CalorieRequest) (R, error)) (R, error) {
	userID, err := s.prepare(req)
	if err != nil {
		var zero R
		return zero, err
	}
	return collection.Run(s.Items, ctx, op, func(ctx context.Context) (R, error) {
		return fn(ctx, userID, req)
	})
}
