package resource

import (
	"context"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

var foodMessages = collection.Messages{
	"fetch":      {Failure: "Грешка при зареждане на храните"},
	"categories": {Failure: "Грешка при зареждане на категориите"},
	"create":     {Failure: "Грешка при създаване на храна"},
	"update":     {Failure: "Грешка при обновяване на храна"},
	"delete":     {Failure: "Грешка при изтриване на храна"},
	"search":     {Failure: "Грешка при търсене на храни"},
	"byCategory": {Failure: "Грешка при зареждане на храни по категория"},
	"get":        {Failure: "Грешка при зареждане на храна"},
}

type Foods struct {
	api   *api.Foods
	Items *collection.Collection[model.Food]
}

func NewFoods(client *api.Foods, opts ...Option) *Foods {
	o := buildOptions(opts)
	return &Foods{
		api:   client,
		Items: collection.New[model.Food]("foods", foodMessages, o.collection()...),
	}
}

func (s *Foods) Open(ctx context.Context) { s.Fetch(ctx) }

func (s *Foods) Fetch(ctx context.Context) {
	s.Items.Fetch(ctx, "fetch", s.api.List)
}

func (s *Foods) Search(ctx context.Context, query string) {
	s.Items.Query(ctx, "search", func(ctx context.Context) ([]model.Food, error) {
		return s.api.Search(ctx, query)
	})
}

func (s *Foods) ByCategory(ctx context.Context, category model.FoodCategory) {
	s.Items.Query(ctx, "byCategory", func(ctx context.Context) ([]model.Food, error) {
		return s.api.ByCategory(ctx, category)
	})
}

// Categories lists the category names the server knows.
func (s *Foods) Categories(ctx context.Context) ([]string, error) {
	return collection.Run(s.Items, ctx, "categories", s.api.Categories)
}

func (s *Foods) Get(ctx context.Context, id int64) (model.Food, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.Food, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *Foods) Create(ctx context.Context, f model.Food) (model.Food, error) {
	if err := f.Validate(); err != nil {
		return model.Food{}, err
	}
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.Food, error) {
		return s.api.Create(ctx, f)
	})
}

func (s *Foods) Update(ctx context.Context, id int64, f model.Food) (model.Food, error) {
	if err := f.Validate(); err != nil {
		return model.Food{}, err
	}
	return s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.Food, error) {
		return s.api.Update(ctx, id, f)
	})
}

func (s *Foods) Delete(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *Foods) Close() { s.Items.Close() }
