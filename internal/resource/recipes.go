package resource

import (
	"context"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

var recipeMessages = collection.Messages{
	"fetch":       {Failure: "Грешка при зареждане на рецептите"},
	"mine":        {Failure: "Грешка при зареждане на вашите рецепти"},
	"search":      {Failure: "Грешка при търсене на рецепти"},
	"byNutrition": {Failure: "Грешка при зареждане на рецепти по хранителни стойности"},
	"byGoal":      {Failure: "Грешка при зареждане на рецепти по цел"},
	"get":         {Failure: "Грешка при зареждане на рецепта"},
	"create": {
		Failure:  "Грешка при създаване на рецепта",
		NotFound: "Една или повече храни не са намерени. Моля, изберете от списъка.",
	},
	"update": {
		Failure:  "Грешка при обновяване на рецепта",
		NotFound: "Една или повече храни не са намерени. Моля, изберете от списъка.",
	},
	"delete": {Failure: "Грешка при изтриване на рецепта"},
}

// Recipes holds the public catalog in Items and the signed-in user's own
// recipes in Mine.
type Recipes struct {
	api   *api.Recipes
	scope userScope

	Items *collection.Collection[model.Recipe]
	Mine  *collection.Collection[model.Recipe]
}

func NewRecipes(client *api.Recipes, identity Identity, opts ...Option) *Recipes {
	o := buildOptions(opts)
	return &Recipes{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.Recipe]("recipes", recipeMessages, o.collection()...),
		Mine:  collection.New[model.Recipe]("my_recipes", recipeMessages, o.collection()...),
	}
}

// Open loads the catalog and follows the user for Mine.
func (s *Recipes) Open(ctx context.Context) {
	parallel(
		func() { s.Fetch(ctx) },
		func() { s.scope.start(ctx, s.loadMine) },
	)
}

func (s *Recipes) loadMine(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Mine)
		return
	}
	s.Mine.Fetch(ctx, "mine", func(ctx context.Context) ([]model.Recipe, error) {
		return s.api.ByUser(ctx, userID)
	})
}

func (s *Recipes) Fetch(ctx context.Context) {
	s.Items.Fetch(ctx, "fetch", s.api.List)
}

func (s *Recipes) FetchMine(ctx context.Context) {
	s.loadMine(ctx, s.scope.current())
}

func (s *Recipes) Search(ctx context.Context, query string) {
	s.Items.Query(ctx, "search", func(ctx context.Context) ([]model.Recipe, error) {
		return s.api.Search(ctx, query)
	})
}

func (s *Recipes) ByNutrition(ctx context.Context, filter api.NutritionFilter) {
	s.Items.Query(ctx, "byNutrition", func(ctx context.Context) ([]model.Recipe, error) {
		return s.api.ByNutrition(ctx, filter)
	})
}

func (s *Recipes) ByGoal(ctx context.Context, goal model.Goal) {
	s.Items.Query(ctx, "byGoal", func(ctx context.Context) ([]model.Recipe, error) {
		return s.api.ByGoal(ctx, goal)
	})
}

func (s *Recipes) Get(ctx context.Context, id int64) (model.Recipe, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.Recipe, error) {
		return s.api.Get(ctx, id)
	})
}

// Create stores a recipe owned by the signed-in user.
func (s *Recipes) Create(ctx context.Context, r model.Recipe) (model.Recipe, error) {
	userID, err := s.scope.require(s.Mine)
	if err != nil {
		return model.Recipe{}, err
	}
	r.CreatorID = userID
	if err := r.Validate(); err != nil {
		return model.Recipe{}, err
	}
	return s.Mine.Create(ctx, "create", func(ctx context.Context) (model.Recipe, error) {
		return s.api.Create(ctx, r)
	})
}

func (s *Recipes) Update(ctx context.Context, id int64, r model.Recipe) (model.Recipe, error) {
	if err := r.Validate(); err != nil {
		return model.Recipe{}, err
	}
	return s.Mine.Update(ctx, "update", id, func(ctx context.Context) (model.Recipe, error) {
		return s.api.Update(ctx, id, r)
	})
}

func (s *Recipes) Delete(ctx context.Context, id int64) error {
	return s.Mine.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *Recipes) Close() {
	s.scope.detach()
	s.Items.Close()
	s.Mine.Close()
	s.scope.wait()
}

var ingredientMessages = collection.Messages{
	"get":      {Failure: "Грешка при зареждане на съставката"},
	"byRecipe": {Failure: "Грешка при зареждане на съставките"},
	"create":   {Failure: "Грешка при създаване на съставка"},
	"update":   {Failure: "Грешка при обновяване на съставка"},
	"delete":   {Failure: "Грешка при изтриване на съставка"},
}

// RecipeIngredients holds the ingredients of one recipe at a time.
// Changes require a signed-in user.
type RecipeIngredients struct {
	api   *api.RecipeIngredients
	scope userScope
	Items *collection.Collection[model.RecipeIngredient]
}

func NewRecipeIngredients(client *api.RecipeIngredients, identity Identity, opts ...Option) *RecipeIngredients {
	o := buildOptions(opts)
	return &RecipeIngredients{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.RecipeIngredient]("recipe_ingredients", ingredientMessages, o.collection()...),
	}
}

func (s *RecipeIngredients) ByRecipe(ctx context.Context, recipeID int64) {
	s.Items.Query(ctx, "byRecipe", func(ctx context.Context) ([]model.RecipeIngredient, error) {
		return s.api.ByRecipe(ctx, recipeID)
	})
}

func (s *RecipeIngredients) Get(ctx context.Context, id int64) (model.RecipeIngredient, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.RecipeIngredient, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *RecipeIngredients) Create(ctx context.Context, in model.RecipeIngredient) (model.RecipeIngredient, error) {
	if _, err := s.scope.require(s.Items); err != nil {
		return model.RecipeIngredient{}, err
	}
	if err := in.Validate(); err != nil {
		return model.RecipeIngredient{}, err
	}
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.RecipeIngredient, error) {
		return s.api.Create(ctx, in)
	})
}

func (s *RecipeIngredients) Update(ctx context.Context, id int64, in model.RecipeIngredient) (model.RecipeIngredient, error) {
	if _, err := s.scope.require(s.Items); err != nil {
		return model.RecipeIngredient{}, err
	}
	if err := in.Validate(); err != nil {
		return model.RecipeIngredient{}, err
	}
	return s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.RecipeIngredient, error) {
		return s.api.Update(ctx, id, in)
	})
}

func (s *RecipeIngredients) Delete(ctx context.Context, id int64) error {
	if _, err := s.scope.require(s.Items); err != nil {
		return err
	}
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *RecipeIngredients) Close() { s.Items.Close() }
