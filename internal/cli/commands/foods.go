package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var foodCategories = []model.FoodCategory{
	model.FoodFruits, model.FoodVegetables, model.FoodGrains, model.FoodProtein,
	model.FoodDairy, model.FoodFats, model.FoodSweets, model.FoodBeverages,
	model.FoodNutsSeeds, model.FoodLegumes, model.FoodOther,
}

var foodHeaders = []string{"ID", "Име", "Категория", "kcal", "Протеин", "Мазнини", "Въглехидрати"}

func foodRow(f model.Food) []string {
	return []string{idStr(f.ID), f.Name, string(f.Category), num(f.Kcal), num(f.Protein), num(f.Fat), num(f.Carbs)}
}

// NewFoodsCommand creates the foods command tree
func NewFoodsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "foods",
		Aliases: []string{"food"},
		Short:   "Browse and manage the food catalog",
		Long:    "Browse foods and their nutrition per 100 g. Creating and deleting foods requires an administrator account.",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List foods",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewFoods(app.API.Foods, app.Options()...)
			defer store.Close()

			if category == "" {
				app.Load(func() { store.Open(cmd.Context()) })
				return show(app, store.Items, foodHeaders, foodRow)
			}
			c, err := choice(app, "CATEGORY", category, foodCategories...)
			if err != nil {
				return err
			}
			app.Load(func() { store.ByCategory(cmd.Context(), c) })
			return show(app, store.Items, foodHeaders, foodRow)
		}),
	}
	list.Flags().StringVar(&category, "category", "", "only foods in this category, e.g. FRUITS")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "search <query>",
		Short: "Search foods by name",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewFoods(app.API.Foods, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Search(cmd.Context(), args[0]) })
			return show(app, store.Items, foodHeaders, foodRow)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List the food categories the server knows",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewFoods(app.API.Foods, app.Options()...)
			defer store.Close()

			var (
				names []string
				err   error
			)
			app.Load(func() { names, err = store.Categories(cmd.Context()) })
			if err != nil {
				return failed(app, store.Items, "foods categories", err)
			}
			if len(names) == 0 {
				fmt.Fprintln(app.Out, ui.EmptyMessage)
				return nil
			}
			for _, n := range names {
				fmt.Fprintln(app.Out, n)
			}
			return nil
		}),
	})

	cmd.AddCommand(newFoodCreateCommand(env))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a food (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			foodID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewFoods(app.API.Foods, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), foodID); err != nil {
				return failed(app, store.Items, "foods delete", err)
			}
			app.Success(fmt.Sprintf("Храна %d е изтрита", foodID))
			return nil
		}),
	})

	return cmd
}

func newFoodCreateCommand(env *Env) *cobra.Command {
	var (
		f        model.Food
		category string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a food (admin)",
		Args:  cobra.NoArgs,
		Example: `  fitdump foods create --name Ябълка --kcal 52 --protein 0.3 --fat 0.2 --carbs 14 --category FRUITS`,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if category != "" {
				c, err := choice(app, "CATEGORY", category, foodCategories...)
				if err != nil {
					return err
				}
				f.Category = c
			}

			store := resource.NewFoods(app.API.Foods, app.Options()...)
			defer store.Close()

			created, err := store.Create(cmd.Context(), f)
			if err != nil {
				return failed(app, store.Items, "foods create", err)
			}
			app.Success(fmt.Sprintf("Храната „%s“ е добавена (ID %d)", created.Name, created.ID))
			return nil
		}),
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "food name")
	cmd.Flags().StringVar(&f.Description, "description", "", "description")
	cmd.Flags().Float64Var(&f.Kcal, "kcal", 0, "kcal per 100 g")
	cmd.Flags().Float64Var(&f.Protein, "protein", 0, "protein per 100 g")
	cmd.Flags().Float64Var(&f.Fat, "fat", 0, "fat per 100 g")
	cmd.Flags().Float64Var(&f.Carbs, "carbs", 0, "carbohydrates per 100 g")
	cmd.Flags().StringVar(&category, "category", "", "food category, e.g. FRUITS")

	return cmd
}
