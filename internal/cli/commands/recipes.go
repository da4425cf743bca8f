package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var goals = []model.Goal{model.GoalLoseWeight, model.GoalMaintainWeight, model.GoalGainWeight}

var recipeHeaders = []string{"ID", "Име", "Порции", "Мин.", "kcal/порция", "Цел"}

func recipeRow(r model.Recipe) []string {
	return []string{idStr(r.ID), r.Name, strconv.Itoa(r.Servings), strconv.Itoa(r.PreparationTime), num(r.CaloriesPerServing), string(r.RecommendedFor)}
}

// NewRecipesCommand creates the recipes command tree
func NewRecipesCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipes",
		Aliases: []string{"recipe"},
		Short:   "Browse recipes",
	}

	var (
		mine   bool
		filter api.NutritionFilter
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List recipes",
		Long: `List the recipe catalog. --mine lists the recipes you created instead,
and the calorie and protein flags filter by nutrition per serving.`,
		Args: cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewRecipes(app.API.Recipes, app.Session, app.Options()...)
			defer store.Close()

			switch {
			case mine:
				app.Load(func() { store.FetchMine(cmd.Context()) })
				return show(app, store.Mine, recipeHeaders, recipeRow)
			case filter != (api.NutritionFilter{}):
				app.Load(func() { store.ByNutrition(cmd.Context(), filter) })
			default:
				app.Load(func() { store.Fetch(cmd.Context()) })
			}
			return show(app, store.Items, recipeHeaders, recipeRow)
		}),
	}
	list.Flags().BoolVar(&mine, "mine", false, "only recipes you created")
	list.Flags().Float64Var(&filter.MinCalories, "min-calories", 0, "minimum kcal per serving")
	list.Flags().Float64Var(&filter.MaxCalories, "max-calories", 0, "maximum kcal per serving")
	list.Flags().Float64Var(&filter.MinProtein, "min-protein", 0, "minimum protein per serving")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search recipes by name",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewRecipes(app.API.Recipes, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Search(cmd.Context(), args[0]) })
			return show(app, store.Items, recipeHeaders, recipeRow)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "goal <goal>",
		Short:   "List recipes recommended for a goal",
		Example: "  fitdump recipes goal lose-weight",
		Args:    cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			goal, err := choice(app, "GOAL", args[0], goals...)
			if err != nil {
				return err
			}
			store := resource.NewRecipes(app.API.Recipes, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.ByGoal(cmd.Context(), goal) })
			return show(app, store.Items, recipeHeaders, recipeRow)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe with its ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			recipeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewRecipes(app.API.Recipes, app.Session, app.Options()...)
			defer store.Close()

			var r model.Recipe
			app.Load(func() { r, err = store.Get(cmd.Context(), recipeID) })
			if err != nil {
				return failed(app, store.Items, "recipes show", err)
			}
			renderRecipe(app, r)
			return nil
		}),
	})

	cmd.AddCommand(newRecipeIngredientsCommand(env))

	return cmd
}

func renderRecipe(app *App, r model.Recipe) {
	ui.Header(app.Out, r.Name, app.NoColor)
	kv := ui.NewKeyValueTable(app.Out, app.NoColor)
	if r.Description != "" {
		kv.AddRow("Описание", r.Description)
	}
	kv.AddRow("Порции", strconv.Itoa(r.Servings))
	kv.AddRow("Приготвяне", fmt.Sprintf("%d мин.", r.PreparationTime))
	if r.RecommendedFor != "" {
		kv.AddRow("Препоръчана за", string(r.RecommendedFor))
	}
	kv.AddRow("На порция", fmt.Sprintf("%s kcal, П %s г, М %s г, В %s г",
		num(r.CaloriesPerServing), num(r.ProteinPerServing), num(r.FatPerServing), num(r.CarbsPerServing)))
	kv.Render()

	if len(r.Ingredients) > 0 {
		fmt.Fprintln(app.Out)
		t := ui.NewTable(app.Out, []string{"Съставка", "Количество", "Бележка"}, &ui.TableOptions{NoColor: app.NoColor})
		for _, in := range r.Ingredients {
			t.AddRow(in.FoodName, num(in.Amount)+" г", in.Note)
		}
		t.Render()
	}
	if r.Instructions != "" {
		fmt.Fprintln(app.Out)
		fmt.Fprintln(app.Out, r.Instructions)
	}
}

var ingredientHeaders = []string{"ID", "Храна", "Количество", "Бележка"}

func ingredientRow(in model.RecipeIngredient) []string {
	return []string{idStr(in.ID), in.FoodName, num(in.Amount) + " г", in.Note}
}

func newRecipeIngredientsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ingredients <recipe-id>",
		Aliases: []string{"ingredient"},
		Short:   "List or edit the ingredients of a recipe",
		Args:    cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			recipeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewRecipeIngredients(app.API.RecipeIngredients, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.ByRecipe(cmd.Context(), recipeID) })
			return show(app, store.Items, ingredientHeaders, ingredientRow)
		}),
	}

	var in model.RecipeIngredient
	add := &cobra.Command{
		Use:     "add <recipe-id>",
		Short:   "Add a food to a recipe",
		Example: "  fitdump recipes ingredients add 1 --food 3 --amount 400",
		Args:    cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			recipeID, err := parseID(args[0])
			if err != nil {
				return err
			}
			in.RecipeID = recipeID
			store := resource.NewRecipeIngredients(app.API.RecipeIngredients, app.Session, app.Options()...)
			defer store.Close()

			added, err := store.Create(cmd.Context(), in)
			if err != nil {
				return failed(app, store.Items, "recipes ingredients add", err)
			}
			app.Success(fmt.Sprintf("Добавено: %s, %s г (ID %d)", added.FoodName, num(added.Amount), added.ID))
			return nil
		}),
	}
	add.Flags().Int64Var(&in.FoodID, "food", 0, "food id")
	add.Flags().Float64Var(&in.Amount, "amount", 0, "amount in grams")
	add.Flags().StringVar(&in.Note, "note", "", "preparation note")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <ingredient-id>",
		Short: "Remove an ingredient from its recipe",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			ingredientID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewRecipeIngredients(app.API.RecipeIngredients, app.Session, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), ingredientID); err != nil {
				return failed(app, store.Items, "recipes ingredients remove", err)
			}
			app.Success(fmt.Sprintf("Съставка %d е премахната", ingredientID))
			return nil
		}),
	})

	return cmd
}
