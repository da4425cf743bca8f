package resource

import (
	"context"
	"sync"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

// DateLayout is the diary's date format.
const DateLayout = "2006-01-02"

var diaryMessages = collection.Messages{
	"fetch":  {Failure: "Грешка при зареждане на дневника"},
	"stats":  {Failure: "Грешка при зареждане на дневната статистика"},
	"create": {Failure: "Грешка при добавяне на храна"},
	"update": {Failure: "Грешка при обновяване на запис"},
	"delete": {Failure: "Грешка при изтриване на запис"},
}

// FoodDiary holds the signed-in user's entries for one day and that day's
// nutrition totals.
type FoodDiary struct {
	api   *api.FoodDiary
	scope userScope
	Items *collection.Collection[model.FoodDiaryEntry]

	mu       sync.Mutex
	date     string
	stats    model.DailyNutritionStats
	hasStats bool
}

func NewFoodDiary(client *api.FoodDiary, identity Identity, opts ...Option) *FoodDiary {
	o := buildOptions(opts)
	return &FoodDiary{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.FoodDiaryEntry]("food_diary", diaryMessages, o.collection()...),
		date:  o.now().Format(DateLayout),
	}
}

// Open loads today's entries and stats.
func (s *FoodDiary) Open(ctx context.Context) { s.scope.start(ctx, s.load) }

func (s *FoodDiary) load(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Items)
		s.setStats(nil)
		return
	}
	date := s.Date()
	parallel(
		func() {
			s.Items.Fetch(ctx, "fetch", func(ctx context.Context) ([]model.FoodDiaryEntry, error) {
				return s.api.ByUser(ctx, userID, date)
			})
		},
		func() { s.loadStats(ctx, userID, date) },
	)
}

// LoadDay switches to date (YYYY-MM-DD) and loads its entries and stats.
func (s *FoodDiary) LoadDay(ctx context.Context, date string) {
	s.mu.Lock()
	s.date = date
	s.mu.Unlock()
	s.load(ctx, s.scope.current())
}

// FetchStats reloads the totals for the current day.
func (s *FoodDiary) FetchStats(ctx context.Context) {
	userID := s.scope.current()
	if userID <= 0 {
		return
	}
	s.loadStats(ctx, userID, s.Date())
}

func (s *FoodDiary) loadStats(ctx context.Context, userID int64, date string) {
	stats, err := collection.Run(s.Items, ctx, "stats", func(ctx context.Context) (model.DailyNutritionStats, error) {
		return s.api.NutritionSummary(ctx, userID, date)
	})
	if err == nil && date == s.Date() {
		s.setStats(&stats)
	}
}

func (s *FoodDiary) Date() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date
}

// Stats returns the totals of the current day once they have loaded.
func (s *FoodDiary) Stats() (model.DailyNutritionStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.hasStats
}

func (s *FoodDiary) setStats(stats *model.DailyNutritionStats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stats == nil {
		s.stats, s.hasStats = model.DailyNutritionStats{}, false
		return
	}
	s.stats, s.hasStats = *stats, true
}

// Add logs a recipe portion for today and refreshes the totals.
func (s *FoodDiary) Add(ctx context.Context, entry model.CreateFoodDiaryEntry) (model.FoodDiaryEntry, error) {
	if _, err := s.scope.require(s.Items); err != nil {
		return model.FoodDiaryEntry{}, err
	}
	if err := entry.Validate(); err != nil {
		return model.FoodDiaryEntry{}, err
	}
	created, err := s.Items.Create(ctx, "create", func(ctx context.Context) (model.FoodDiaryEntry, error) {
		return s.api.Create(ctx, entry)
	})
	if err != nil {
		return model.FoodDiaryEntry{}, err
	}
	s.FetchStats(ctx)
	return created, nil
}

func (s *FoodDiary) Update(ctx context.Context, id int64, entry model.CreateFoodDiaryEntry) (model.FoodDiaryEntry, error) {
	if err := entry.Validate(); err != nil {
		return model.FoodDiaryEntry{}, err
	}
	updated, err := s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.FoodDiaryEntry, error) {
		return s.api.Update(ctx, id, entry)
	})
	if err != nil {
		return model.FoodDiaryEntry{}, err
	}
	s.FetchStats(ctx)
	return updated, nil
}

func (s *FoodDiary) Delete(ctx context.Context, id int64) error {
	err := s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.FetchStats(ctx)
	return nil
}

func (s *FoodDiary) Close() {
	s.scope.detach()
	s.Items.Close()
	s.scope.wait()
}

var historyMessages = collection.Messages{
	"fetch":  {Failure: "Грешка при зареждане на историята на храненията"},
	"create": {Failure: "Грешка при запазване на историята"},
	"delete": {Failure: "Грешка при изтриване на историята"},
	"get":    {Failure: "Грешка при зареждане на историята"},
}

// FoodHistory lists what the caller ate per day. The server scopes it by the
// bearer token.
type FoodHistory struct {
	api   *api.FoodHistory
	Items *collection.Collection[model.FoodHistory]
}

func NewFoodHistory(client *api.FoodHistory, opts ...Option) *FoodHistory {
	o := buildOptions(opts)
	return &FoodHistory{
		api:   client,
		Items: collection.New[model.FoodHistory]("food_history", historyMessages, o.collection()...),
	}
}

func (s *FoodHistory) Open(ctx context.Context) { s.Fetch(ctx) }

func (s *FoodHistory) Fetch(ctx context.Context) {
	s.Items.Fetch(ctx, "fetch", s.api.List)
}

func (s *FoodHistory) Get(ctx context.Context, id int64) (model.FoodHistory, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.FoodHistory, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *FoodHistory) Save(ctx context.Context, h model.FoodHistory) (model.FoodHistory, error) {
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.FoodHistory, error) {
		return s.api.Create(ctx, h)
	})
}

func (s *FoodHistory) Delete(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *FoodHistory) Close() { s.Items.Close() }
