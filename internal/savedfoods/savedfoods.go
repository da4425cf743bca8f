// Package savedfoods keeps a user's saved food and recipe combinations in the
// local key-value store.
package savedfoods

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/fitnessdump/fitdump/internal/kvstore"
	"github.com/fitnessdump/fitdump/internal/model"
)

var (
	// ErrEmptyCombination is returned when saving a combination with no items
	ErrEmptyCombination = errors.New("combination is empty")

	// ErrIndexOutOfRange is returned by Remove for an unknown position
	ErrIndexOutOfRange = errors.New("combination index out of range")
)

type ItemType string

const (
	TypeFood   ItemType = "food"
	TypeRecipe ItemType = "recipe"
)

// Item is one food or recipe inside a combination.
type Item struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Type    ItemType `json:"type"`
	Kcal    float64  `json:"kcal"`
	Protein float64  `json:"protein"`
	Fat     float64  `json:"fat"`
	Carbs   float64  `json:"carbs"`
}

type Combination []Item

// Nutrition is the summed nutrition of a combination.
type Nutrition struct {
	Kcal    float64
	Protein float64
	Fat     float64
	Carbs   float64
}

func FromFood(f model.Food) Item {
	return Item{ID: f.ID, Name: f.Name, Type: TypeFood, Kcal: f.Kcal, Protein: f.Protein, Fat: f.Fat, Carbs: f.Carbs}
}

// FromRecipe uses the recipe's per-serving values.
func FromRecipe(r model.Recipe) Item {
	return Item{
		ID:      r.ID,
		Name:    r.Name,
		Type:    TypeRecipe,
		Kcal:    r.CaloriesPerServing,
		Protein: r.ProteinPerServing,
		Fat:     r.FatPerServing,
		Carbs:   r.CarbsPerServing,
	}
}

// Totals sums the items the way the diary page shows them.
func Totals(items []Item) Nutrition {
	var t Nutrition
	for _, it := range items {
		t.Kcal += it.Kcal
		t.Protein += it.Protein
		t.Fat += it.Fat
		t.Carbs += it.Carbs
	}
	return t
}

// Key returns the storage key for userID. Zero means no signed-in user.
func Key(userID int64) string {
	if userID <= 0 {
		return "savedFoods"
	}
	return "savedFoods_user_" + strconv.FormatInt(userID, 10)
}

// Store reads and writes combinations. There is one writer per key.
type Store struct {
	kv kvstore.Store
}

func New(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the saved combinations, or none when nothing was saved yet.
func (s *Store) Load(ctx context.Context, userID int64) ([]Combination, error) {
	var combos []Combination
	err := kvstore.GetJSON(ctx, s.kv, Key(userID), &combos)
	if kvstore.IsNotFound(err) {
		return []Combination{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load saved foods: %w", err)
	}
	if combos == nil {
		combos = []Combination{}
	}
	return combos, nil
}

// Save appends combo. An item appears at most once per id and type.
func (s *Store) Save(ctx context.Context, userID int64, combo Combination) ([]Combination, error) {
	combo = unique(combo)
	if len(combo) == 0 {
		return nil, ErrEmptyCombination
	}
	combos, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	combos = append(combos, combo)
	if err := s.write(ctx, userID, combos); err != nil {
		return nil, err
	}
	return combos, nil
}

// Remove deletes the combination at index (0-based).
func (s *Store) Remove(ctx context.Context, userID int64, index int) ([]Combination, error) {
	combos, err := s.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(combos) {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	combos = append(combos[:index], combos[index+1:]...)
	if err := s.write(ctx, userID, combos); err != nil {
		return nil, err
	}
	return combos, nil
}

func (s *Store) Clear(ctx context.Context, userID int64) error {
	if err := s.kv.Delete(ctx, Key(userID)); err != nil {
		return fmt.Errorf("clear saved foods: %w", err)
	}
	return nil
}

func (s *Store) write(ctx context.Context, userID int64, combos []Combination) error {
	if err := kvstore.SetJSON(ctx, s.kv, Key(userID), combos); err != nil {
		return fmt.Errorf("save saved foods: %w", err)
	}
	return nil
}

func unique(combo Combination) Combination {
	type key struct {
		id int64
		t  ItemType
	}
	seen := make(map[key]struct{}, len(combo))
	out := make(Combination, 0, len(combo))
	for _, it := range combo {
		k := key{it.ID, it.Type}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
