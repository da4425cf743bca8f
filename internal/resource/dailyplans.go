package resource

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

var dailyPlanMessages = collection.Messages{
	"fetch":              {Failure: "Грешка при зареждане на дневните планове"},
	"get":                {Failure: "Грешка при зареждане на дневните планове"},
	"active":             {Failure: "Грешка при зареждане на дневните планове"},
	"create":             {Failure: "Грешка при създаване на дневен план"},
	"update":             {Failure: "Грешка при обновяване на дневен план"},
	"delete":             {Failure: "Грешка при изтриване на дневен план"},
	"generate":           {Failure: "Грешка при генериране на автоматичен дневен план"},
	"generateWithConfig": {Failure: "Грешка при генериране на автоматичен дневен план с конфигурация"},
	"deactivate":         {Failure: "Грешка при деактивиране на плановете"},
}

// DailyPlans holds the user's plans in Plans and the active one, if any, in
// Active.
type DailyPlans struct {
	api    *api.DailyPlans
	scope  userScope
	logger *zap.Logger

	Plans  *collection.Collection[model.DailyPlan]
	Active *collection.Collection[model.DailyPlan]
}

func NewDailyPlans(client *api.DailyPlans, identity Identity, opts ...Option) *DailyPlans {
	o := buildOptions(opts)
	return &DailyPlans{
		api:    client,
		scope:  userScope{identity: identity},
		logger: o.logger,
		Plans:  collection.New[model.DailyPlan]("daily_plans", dailyPlanMessages, o.collection()...),
		Active: collection.New[model.DailyPlan]("active_daily_plan", dailyPlanMessages, o.collection()...),
	}
}

func (s *DailyPlans) Open(ctx context.Context) { s.scope.start(ctx, s.load) }

func (s *DailyPlans) load(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Plans, s.Active)
		return
	}
	parallel(
		func() {
			s.Plans.Fetch(ctx, "fetch", func(ctx context.Context) ([]model.DailyPlan, error) {
				return s.api.ByUser(ctx, userID)
			})
		},
		func() { s.loadActive(ctx, userID) },
	)
}

// loadActive never records an error: no active plan and a failed lookup both
// leave Active empty.
func (s *DailyPlans) loadActive(ctx context.Context, userID int64) {
	s.Active.Fetch(ctx, "active", func(ctx context.Context) ([]model.DailyPlan, error) {
		plan, err := s.api.Active(ctx, userID)
		switch {
		case err == nil:
			return []model.DailyPlan{plan}, nil
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case !api.IsNotFound(err):
			s.logger.Debug("active plan lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		return []model.DailyPlan{}, nil
	})
}

func (s *DailyPlans) Fetch(ctx context.Context) { s.load(ctx, s.scope.current()) }

// FetchActive reloads only the active plan.
func (s *DailyPlans) FetchActive(ctx context.Context) {
	userID := s.scope.current()
	if userID <= 0 {
		signedOut(s.Active)
		return
	}
	s.loadActive(ctx, userID)
}

// ActivePlan returns the active plan, if there is one.
func (s *DailyPlans) ActivePlan() (model.DailyPlan, bool) {
	items := s.Active.Items()
	if len(items) == 0 {
		return model.DailyPlan{}, false
	}
	return items[0], true
}

func (s *DailyPlans) Get(ctx context.Context, id int64) (model.DailyPlan, error) {
	return s.Plans.Get(ctx, "get", func(ctx context.Context) (model.DailyPlan, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *DailyPlans) Create(ctx context.Context, plan model.DailyPlan) (model.DailyPlan, error) {
	userID, err := s.scope.require(s.Plans)
	if err != nil {
		return model.DailyPlan{}, err
	}
	plan.UserID = userID
	if err := plan.Validate(); err != nil {
		return model.DailyPlan{}, err
	}
	return s.add(ctx, "create", false, func(ctx context.Context) (model.DailyPlan, error) {
		return s.api.Create(ctx, plan)
	})
}

func (s *DailyPlans) Update(ctx context.Context, id int64, plan model.DailyPlan) (model.DailyPlan, error) {
	if err := plan.Validate(); err != nil {
		return model.DailyPlan{}, err
	}
	var updated model.DailyPlan
	err := s.Plans.Apply(ctx, "update",
		func(ctx context.Context) (err error) {
			updated, err = s.api.Update(ctx, id, plan)
			return err
		},
		func(items []model.DailyPlan) []model.DailyPlan {
			for i := range items {
				if items[i].ID == id {
					items[i] = updated
				} else if updated.Active {
					items[i].Active = false
				}
			}
			s.track(updated, false)
			return items
		},
	)
	if err != nil {
		return model.DailyPlan{}, err
	}
	return updated, nil
}

func (s *DailyPlans) Delete(ctx context.Context, id int64) error {
	err := s.Plans.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.Active.Modify(func(items []model.DailyPlan) []model.DailyPlan { return withoutPlan(items, id) })
	return nil
}

// Generate asks the server to build a plan from the user's settings.
func (s *DailyPlans) Generate(ctx context.Context) (model.DailyPlan, error) {
	userID, err := s.scope.require(s.Plans)
	if err != nil {
		return model.DailyPlan{}, err
	}
	return s.add(ctx, "generate", false, func(ctx context.Context) (model.DailyPlan, error) {
		return s.api.Generate(ctx, userID)
	})
}

// GenerateWithConfig asks the server for a configured plan. With
// DeactivateExistingPlans the loaded plans are marked inactive once the
// server has confirmed; a failure leaves them as they were.
func (s *DailyPlans) GenerateWithConfig(ctx context.Context, cfg model.DailyPlanGenerationConfig) (model.DailyPlan, error) {
	userID, err := s.scope.require(s.Plans)
	if err != nil {
		return model.DailyPlan{}, err
	}
	if err := cfg.Validate(); err != nil {
		return model.DailyPlan{}, err
	}
	return s.add(ctx, "generateWithConfig", cfg.DeactivateExistingPlans, func(ctx context.Context) (model.DailyPlan, error) {
		return s.api.GenerateWithConfig(ctx, userID, cfg)
	})
}

// DeactivateAll marks every plan inactive.
func (s *DailyPlans) DeactivateAll(ctx context.Context) error {
	userID, err := s.scope.require(s.Plans)
	if err != nil {
		return err
	}
	return s.Plans.Apply(ctx, "deactivate",
		func(ctx context.Context) error { return s.api.DeactivateAll(ctx, userID) },
		func(items []model.DailyPlan) []model.DailyPlan {
			s.track(model.DailyPlan{}, true)
			return deactivated(items)
		},
	)
}

// add runs fn and appends its plan. Other plans lose their active flag when
// the new plan is active or when exclusive is set.
func (s *DailyPlans) add(ctx context.Context, op string, exclusive bool, fn func(context.Context) (model.DailyPlan, error)) (model.DailyPlan, error) {
	var plan model.DailyPlan
	err := s.Plans.Apply(ctx, op,
		func(ctx context.Context) (err error) {
			plan, err = fn(ctx)
			return err
		},
		func(items []model.DailyPlan) []model.DailyPlan {
			if exclusive || plan.Active {
				items = deactivated(items)
			}
			s.track(plan, exclusive)
			for i := range items {
				if items[i].ID == plan.ID {
					items[i] = plan
					return items
				}
			}
			return append(items, plan)
		},
	)
	if err != nil {
		return model.DailyPlan{}, err
	}
	return plan, nil
}

func (s *DailyPlans) Close() {
	s.scope.detach()
	s.Plans.Close()
	s.Active.Close()
	s.scope.wait()
}

// track mirrors a confirmed plan into Active. Only one plan per user can be
// active. It runs inside the Plans merge, so Active follows the order in
// which Plans settled; Active never takes the Plans lock.
func (s *DailyPlans) track(plan model.DailyPlan, cleared bool) {
	s.Active.Modify(func(items []model.DailyPlan) []model.DailyPlan {
		switch {
		case plan.Active:
			return []model.DailyPlan{plan}
		case cleared:
			return nil
		default:
			return withoutPlan(items, plan.ID)
		}
	})
}

func deactivated(plans []model.DailyPlan) []model.DailyPlan {
	for i := range plans {
		plans[i].Active = false
	}
	return plans
}

func withoutPlan(plans []model.DailyPlan, id int64) []model.DailyPlan {
	out := plans[:0]
	for _, p := range plans {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}
