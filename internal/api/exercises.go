package api

import (
	"context"
	"net/url"

	"github.com/fitnessdump/fitdump/internal/model"
)

type Exercises struct {
	Resource[model.Exercise]
}

func NewExercises(c *Client) *Exercises {
	return &Exercises{NewResource[model.Exercise](c, "/exercise").WithCreatePath("/exercise/add")}
}

func (e *Exercises) Search(ctx context.Context, query string) ([]model.Exercise, error) {
	return e.Query(ctx, "/search", url.Values{"query": {query}})
}

func (e *Exercises) ByCategory(ctx context.Context, categoryID int64) ([]model.Exercise, error) {
	p, err := idPath("/category", categoryID)
	if err != nil {
		return nil, err
	}
	return e.Query(ctx, p, nil)
}

type ExerciseCategories struct {
	Resource[model.ExerciseCategory]
}

func NewExerciseCategories(c *Client) *ExerciseCategories {
	return &ExerciseCategories{NewResource[model.ExerciseCategory](c, "/exercise-categories")}
}
