package resource

import (
	"context"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

var exerciseMessages = collection.Messages{
	"fetch": {
		Forbidden: "Нямате права за достъп до упражненията. Моля, проверете вашите права.",
		Failure:   "Грешка при зареждане на упражненията",
	},
	"search":     {Forbidden: "Нямате права за търсене на упражнения", Failure: "Грешка при търсене на упражнения"},
	"byCategory": {Forbidden: "Нямате права за достъп до упражненията по категория", Failure: "Грешка при зареждане на упражненията по категория"},
	"create":     {Forbidden: "Нямате права за създаване на упражнения", Failure: "Грешка при създаване на упражнение"},
	"update":     {Forbidden: "Нямате права за обновяване на упражнения", Failure: "Грешка при обновяване на упражнение"},
	"delete":     {Forbidden: "Нямате права за изтриване на упражнения", Failure: "Грешка при изтриване на упражнение"},
	"get":        {Forbidden: "Нямате права за достъп до упражнението", Failure: "Грешка при зареждане на упражнението"},
}

var categoryMessages = collection.Messages{
	"fetch": {
		Forbidden: "Нямате права за достъп до упражненията. Моля, проверете вашите права.",
		Failure:   "Грешка при зареждане на упражненията",
	},
	"create": {Forbidden: "Нямате права за създаване на категории", Failure: "Грешка при създаване на категория"},
	"update": {Forbidden: "Нямате права за обновяване на категории", Failure: "Грешка при обновяване на категория"},
	"delete": {Forbidden: "Нямате права за изтриване на категории", Failure: "Грешка при изтриване на категория"},
	"get":    {Forbidden: "Нямате права за достъп до категорията", Failure: "Грешка при зареждане на категорията"},
}

// Exercises is the exercise catalog with its categories.
type Exercises struct {
	exercises  *api.Exercises
	categories *api.ExerciseCategories

	Items      *collection.Collection[model.Exercise]
	Categories *collection.Collection[model.ExerciseCategory]
}

func NewExercises(exercises *api.Exercises, categories *api.ExerciseCategories, opts ...Option) *Exercises {
	o := buildOptions(opts)
	return &Exercises{
		exercises:  exercises,
		categories: categories,
		Items:      collection.New[model.Exercise]("exercises", exerciseMessages, o.collection()...),
		Categories: collection.New[model.ExerciseCategory]("exercise_categories", categoryMessages, o.collection()...),
	}
}

func (s *Exercises) Open(ctx context.Context) { s.Fetch(ctx) }

// Fetch loads exercises and categories side by side.
func (s *Exercises) Fetch(ctx context.Context) {
	parallel(
		func() { s.Items.Fetch(ctx, "fetch", s.exercises.List) },
		func() { s.Categories.Fetch(ctx, "fetch", s.categories.List) },
	)
}

// FetchCategories loads only the categories.
func (s *Exercises) FetchCategories(ctx context.Context) {
	s.Categories.Fetch(ctx, "fetch", s.categories.List)
}

func (s *Exercises) Search(ctx context.Context, query string) {
	s.Items.Query(ctx, "search", func(ctx context.Context) ([]model.Exercise, error) {
		return s.exercises.Search(ctx, query)
	})
}

func (s *Exercises) ByCategory(ctx context.Context, categoryID int64) {
	s.Items.Query(ctx, "byCategory", func(ctx context.Context) ([]model.Exercise, error) {
		return s.exercises.ByCategory(ctx, categoryID)
	})
}

func (s *Exercises) Get(ctx context.Context, id int64) (model.Exercise, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.Exercise, error) {
		return s.exercises.Get(ctx, id)
	})
}

func (s *Exercises) Create(ctx context.Context, e model.Exercise) (model.Exercise, error) {
	if err := e.Validate(); err != nil {
		return model.Exercise{}, err
	}
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.Exercise, error) {
		return s.exercises.Create(ctx, e)
	})
}

func (s *Exercises) Update(ctx context.Context, id int64, e model.Exercise) (model.Exercise, error) {
	if err := e.Validate(); err != nil {
		return model.Exercise{}, err
	}
	return s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.Exercise, error) {
		return s.exercises.Update(ctx, id, e)
	})
}

func (s *Exercises) Delete(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.exercises.Delete(ctx, id)
	})
}

func (s *Exercises) GetCategory(ctx context.Context, id int64) (model.ExerciseCategory, error) {
	return s.Categories.Get(ctx, "get", func(ctx context.Context) (model.ExerciseCategory, error) {
		return s.categories.Get(ctx, id)
	})
}

func (s *Exercises) CreateCategory(ctx context.Context, c model.ExerciseCategory) (model.ExerciseCategory, error) {
	if err := c.Validate(); err != nil {
		return model.ExerciseCategory{}, err
	}
	return s.Categories.Create(ctx, "create", func(ctx context.Context) (model.ExerciseCategory, error) {
		return s.categories.Create(ctx, c)
	})
}

func (s *Exercises) UpdateCategory(ctx context.Context, id int64, c model.ExerciseCategory) (model.ExerciseCategory, error) {
	if err := c.Validate(); err != nil {
		return model.ExerciseCategory{}, err
	}
	return s.Categories.Update(ctx, "update", id, func(ctx context.Context) (model.ExerciseCategory, error) {
		return s.categories.Update(ctx, id, c)
	})
}

func (s *Exercises) DeleteCategory(ctx context.Context, id int64) error {
	return s.Categories.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.categories.Delete(ctx, id)
	})
}

// CategoryName returns the name of a loaded category.
func (s *Exercises) CategoryName(id int64) string {
	for _, c := range s.Categories.Items() {
		if c.ID == id {
			return c.Name
		}
	}
	return "Неизвестна категория"
}

func (s *Exercises) Close() {
	s.Items.Close()
	s.Categories.Close()
}
