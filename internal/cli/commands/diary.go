package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
	"github.com/fitnessdump/fitdump/internal/savedfoods"
)

var mealSlots = []model.RecipeCategory{
	model.RecipeBreakfast, model.RecipeLunch, model.RecipeDinner, model.RecipeSnack,
	model.RecipeDessert, model.RecipeSmoothie, model.RecipeSalad, model.RecipeSoup,
	model.RecipeMainCourse, model.RecipeSideDish,
}

func diaryRow(e model.FoodDiaryEntry) []string {
	recipe := "#" + idStr(e.RecipeID)
	if e.Recipe != nil && e.Recipe.Name != "" {
		recipe = e.Recipe.Name
	}
	return []string{idStr(e.ID), string(e.MealType), recipe, num(e.Quantity), num(e.Calories), e.Notes}
}

func parseDate(s string) error {
	if _, err := time.Parse(resource.DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return nil
}

// NewDiaryCommand creates the food diary command tree
func NewDiaryCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diary",
		Short: "Keep the food diary",
		Long:  "Show, add and remove the recipes you ate. Every diary command needs a signed-in user.",
	}

	var date string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's entries and nutrition totals",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if date != "" {
				if err := parseDate(date); err != nil {
					return err
				}
			}
			store := resource.NewFoodDiary(app.API.FoodDiary, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() {
				if date != "" {
					store.LoadDay(cmd.Context(), date)
				} else {
					store.Open(cmd.Context())
				}
			})

			ui.Header(app.Out, "Дневник за "+store.Date(), app.NoColor)
			err := show(app, store.Items, []string{"ID", "Хранене", "Рецепта", "Порции", "kcal", "Бележка"}, diaryRow)
			if stats, ok := store.Stats(); ok {
				fmt.Fprintln(app.Out)
				kv := ui.NewKeyValueTable(app.Out, app.NoColor)
				kv.AddRow("Приети", num(stats.TotalCalories)+" kcal")
				kv.AddRow("Цел", num(stats.GoalCalories)+" kcal")
				kv.AddRow("Остават", num(stats.CaloriesRemaining)+" kcal")
				m := stats.TotalMacronutrients
				kv.AddRow("Макро", fmt.Sprintf("П %s г, М %s г, В %s г", num(m.Protein), num(m.Fats), num(m.Carbohydrates)))
				kv.Render()
			}
			return err
		}),
	}
	showCmd.Flags().StringVar(&date, "date", "", "day to show, YYYY-MM-DD (default today)")
	cmd.AddCommand(showCmd)

	cmd.AddCommand(newDiaryAddCommand(env))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a diary entry",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			entryID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewFoodDiary(app.API.FoodDiary, app.Session, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), entryID); err != nil {
				return failed(app, store.Items, "diary delete", err)
			}
			app.Success(fmt.Sprintf("Запис %d е изтрит", entryID))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "List the saved food history",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewFoodHistory(app.API.FoodHistory, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Open(cmd.Context()) })
			return show(app, store.Items, []string{"ID", "Дата", "Храни"}, func(h model.FoodHistory) []string {
				ids := make([]string, len(h.FoodIDs))
				for i, fid := range h.FoodIDs {
					ids[i] = idStr(fid)
				}
				return []string{idStr(h.ID), h.Date, strings.Join(ids, ", ")}
			})
		}),
	})

	return cmd
}

func newDiaryAddCommand(env *Env) *cobra.Command {
	var (
		entry model.CreateFoodDiaryEntry
		meal  string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Log a recipe for today",
		Args:    cobra.NoArgs,
		Example: "  fitdump diary add --recipe 1 --meal lunch --quantity 1.5",
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if meal != "" {
				slot, err := choice(app, "MEAL", meal, mealSlots...)
				if err != nil {
					return err
				}
				entry.MealType = slot
			}
			store := resource.NewFoodDiary(app.API.FoodDiary, app.Session, app.Options()...)
			defer store.Close()

			created, err := store.Add(cmd.Context(), entry)
			if err != nil {
				return failed(app, store.Items, "diary add", err)
			}
			app.Success(fmt.Sprintf("Добавено в дневника: запис %d, %s kcal", created.ID, num(created.Calories)))
			if stats, ok := store.Stats(); ok {
				fmt.Fprint(app.Out, ui.Info(fmt.Sprintf("Остават %s kcal за деня", num(stats.CaloriesRemaining)), app.NoColor))
			}
			return nil
		}),
	}

	cmd.Flags().Int64Var(&entry.RecipeID, "recipe", 0, "recipe id")
	cmd.Flags().StringVar(&meal, "meal", "", "meal slot, e.g. BREAKFAST or LUNCH")
	cmd.Flags().Float64Var(&entry.Quantity, "quantity", 1, "servings")
	cmd.Flags().StringVar(&entry.Notes, "notes", "", "free-form note")

	return cmd
}

// NewSavedFoodsCommand creates the saved food combinations command tree
func NewSavedFoodsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved-foods",
		Short: "Keep favourite food and recipe combinations",
		Long: `Saved combinations live in local storage, one list per signed-in user.
Positions shown by "list" are used by "remove".`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved combinations with their totals",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			combos, err := app.Saved.Load(cmd.Context(), app.UserID())
			if err != nil {
				return app.Fail(err, "", "saved-foods list")
			}
			renderCombinations(app, combos)
			return nil
		}),
	})

	var foodIDs, recipeIDs []int64
	save := &cobra.Command{
		Use:     "save",
		Short:   "Save a combination of foods and recipes",
		Args:    cobra.NoArgs,
		Example: "  fitdump saved-foods save --food 1,2 --recipe 1",
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			foods := resource.NewFoods(app.API.Foods, app.Options()...)
			defer foods.Close()
			recipes := resource.NewRecipes(app.API.Recipes, app.Session, app.Options()...)
			defer recipes.Close()

			var combo savedfoods.Combination
			for _, fid := range foodIDs {
				f, err := foods.Get(cmd.Context(), fid)
				if err != nil {
					return failed(app, foods.Items, "saved-foods save", err)
				}
				combo = append(combo, savedfoods.FromFood(f))
			}
			for _, rid := range recipeIDs {
				r, err := recipes.Get(cmd.Context(), rid)
				if err != nil {
					return failed(app, recipes.Items, "saved-foods save", err)
				}
				combo = append(combo, savedfoods.FromRecipe(r))
			}

			combos, err := app.Saved.Save(cmd.Context(), app.UserID(), combo)
			if err != nil {
				return app.Fail(err, "", "saved-foods save")
			}
			app.Success(fmt.Sprintf("Комбинацията е запазена като №%d", len(combos)))
			return nil
		}),
	}
	save.Flags().Int64SliceVar(&foodIDs, "food", nil, "food ids")
	save.Flags().Int64SliceVar(&recipeIDs, "recipe", nil, "recipe ids")
	cmd.AddCommand(save)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <position>",
		Short: "Remove a saved combination",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			pos, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[0])
			}
			if _, err := app.Saved.Remove(cmd.Context(), app.UserID(), pos-1); err != nil {
				return app.Fail(err, "", "saved-foods remove")
			}
			app.Success(fmt.Sprintf("Комбинация №%d е премахната", pos))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every saved combination",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if err := app.Saved.Clear(cmd.Context(), app.UserID()); err != nil {
				return app.Fail(err, "", "saved-foods clear")
			}
			app.Success("Запазените комбинации са изчистени")
			return nil
		}),
	})

	return cmd
}

func renderCombinations(app *App, combos []savedfoods.Combination) {
	if len(combos) == 0 {
		fmt.Fprintln(app.Out, ui.EmptyMessage)
		return
	}
	t := ui.NewTable(app.Out, []string{"№", "Съдържание", "kcal", "Протеин", "Мазнини", "Въглехидрати"}, &ui.TableOptions{NoColor: app.NoColor})
	for i, c := range combos {
		names := make([]string, len(c))
		for j, it := range c {
			names[j] = it.Name
		}
		total := savedfoods.Totals(c)
		t.AddRow(strconv.Itoa(i+1), strings.Join(names, " + "), num(total.Kcal), num(total.Protein), num(total.Fat), num(total.Carbs))
	}
	t.Render()
}
