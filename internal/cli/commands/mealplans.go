package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var mealTypes = []model.MealType{
	model.MealBreakfast, model.MealMorningSnack, model.MealLunch,
	model.MealAfternoonSnack, model.MealDinner, model.MealEveningSnack,
}

var mealPlanHeaders = []string{"ID", "Име", "Цел", "kcal/ден", "От", "До"}

func mealPlanRow(p model.MealPlan) []string {
	return []string{idStr(p.ID), p.Name, string(p.Goal), num(p.TargetCalories), p.StartDate, p.EndDate}
}

// NewMealPlansCommand creates the meal plans command tree
func NewMealPlansCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meal-plans",
		Aliases: []string{"meal-plan", "meals"},
		Short:   "Weekly meal plans and their meals",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your meal plans",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Open(cmd.Context()) })
			return show(app, store.Items, mealPlanHeaders, mealPlanRow)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "goal <goal>",
		Short:   "List your meal plans for a goal",
		Example: "  fitdump meal-plans goal lose-weight",
		Args:    cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			goal, err := choice(app, "GOAL", args[0], goals...)
			if err != nil {
				return err
			}
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.ByGoal(cmd.Context(), goal) })
			return show(app, store.Items, mealPlanHeaders, mealPlanRow)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a meal plan day by day with its nutrition totals",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			planID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			var (
				plan model.MealPlan
				sum  model.NutritionSummary
			)
			app.Load(func() {
				if plan, err = store.Get(cmd.Context(), planID); err == nil {
					sum, err = store.Summary(cmd.Context(), planID)
				}
			})
			if err != nil {
				return failed(app, store.Items, "meal-plans show", err)
			}
			renderMealPlan(app, plan, sum)
			return nil
		}),
	})

	cmd.AddCommand(newMealPlansCreateCommand(env))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a meal plan",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			planID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), planID); err != nil {
				return failed(app, store.Items, "meal-plans delete", err)
			}
			app.Success(fmt.Sprintf("Хранителен план %d е изтрит", planID))
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "day-calories <plan-id> <day>",
		Short: "Total calories planned for one day of the week (1-7)",
		Args:  cobra.ExactArgs(2),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			planID, day, err := planDay(args[0], args[1])
			if err != nil {
				return err
			}
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			var kcal float64
			app.Load(func() { kcal, err = store.DayCalories(cmd.Context(), planID, day) })
			if err != nil {
				return failed(app, store.Items, "meal-plans day-calories", err)
			}
			fmt.Fprintf(app.Out, "%s kcal\n", num(kcal))
			return nil
		}),
	})

	cmd.AddCommand(newMealPlansAddMealCommand(env))

	cmd.AddCommand(&cobra.Command{
		Use:   "remove-meal <plan-id> <day> <meal-id>",
		Short: "Remove a meal from a day of a plan",
		Args:  cobra.ExactArgs(3),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			planID, day, err := planDay(args[0], args[1])
			if err != nil {
				return err
			}
			mealID, err := parseID(args[2])
			if err != nil {
				return err
			}
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			if err := store.RemoveMeal(cmd.Context(), planID, day, mealID); err != nil {
				return failed(app, store.Items, "meal-plans remove-meal", err)
			}
			app.Success(fmt.Sprintf("Хранене %d е премахнато", mealID))
			return nil
		}),
	})

	return cmd
}

func newMealPlansCreateCommand(env *Env) *cobra.Command {
	var (
		plan model.MealPlan
		goal string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create an empty meal plan",
		Example: `  fitdump meal-plans create --name "Сушене" --goal lose-weight --calories 1800`,
		Args:    cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if goal != "" {
				g, err := choice(app, "GOAL", goal, goals...)
				if err != nil {
					return err
				}
				plan.Goal = g
			}
			for _, d := range []string{plan.StartDate, plan.EndDate} {
				if d == "" {
					continue
				}
				if err := parseDate(d); err != nil {
					return err
				}
			}
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			created, err := store.Create(cmd.Context(), plan)
			if err != nil {
				return failed(app, store.Items, "meal-plans create", err)
			}
			app.Success(fmt.Sprintf("Хранителният план „%s“ е създаден (ID %d)", created.Name, created.ID))
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&plan.Name, "name", "", "plan name")
	f.StringVar(&plan.Description, "description", "", "plan description")
	f.StringVar(&goal, "goal", "", "goal, e.g. LOSE_WEIGHT")
	f.StringVar(&plan.StartDate, "start", "", "first day, YYYY-MM-DD")
	f.StringVar(&plan.EndDate, "end", "", "last day, YYYY-MM-DD")
	f.Float64Var(&plan.TargetCalories, "calories", 0, "daily calorie target")
	f.Float64Var(&plan.TargetProtein, "protein", 0, "daily protein target in grams")
	f.Float64Var(&plan.TargetFats, "fats", 0, "daily fat target in grams")
	f.Float64Var(&plan.TargetCarbs, "carbs", 0, "daily carbohydrate target in grams")

	return cmd
}

func newMealPlansAddMealCommand(env *Env) *cobra.Command {
	var (
		kind string
		item model.MealItem
	)

	cmd := &cobra.Command{
		Use:   "add-meal <plan-id> <day>",
		Short: "Add a meal to a day of a plan",
		Long: `Add a meal with one item to a day of the week (1 is Monday). The item
is a food or a recipe; its nutrition values make up the meal totals.`,
		Example: "  fitdump meal-plans add-meal 2 1 --type breakfast --food 4 --amount 80 --calories 311",
		Args:    cobra.ExactArgs(2),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			planID, day, err := planDay(args[0], args[1])
			if err != nil {
				return err
			}
			mealType, err := choice(app, "MEAL TYPE", kind, mealTypes...)
			if err != nil {
				return err
			}
			meal := model.Meal{Type: mealType}
			if item != (model.MealItem{}) {
				meal.Items = []model.MealItem{item}
			}
			store := resource.NewMealPlans(app.API.MealPlans, app.Session, app.Options()...)
			defer store.Close()

			added, err := store.AddMeal(cmd.Context(), planID, day, meal)
			if err != nil {
				return failed(app, store.Items, "meal-plans add-meal", err)
			}
			app.Success(fmt.Sprintf("Храненето е добавено (ID %d, %s kcal)", added.ID, num(added.TotalCalories)))
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&kind, "type", string(model.MealLunch), "meal type, e.g. BREAKFAST")
	f.Int64Var(&item.FoodID, "food", 0, "food id")
	f.Int64Var(&item.RecipeID, "recipe", 0, "recipe id")
	f.Float64Var(&item.Amount, "amount", 0, "amount in grams or servings")
	f.Float64Var(&item.Calories, "calories", 0, "calories of the item")
	f.Float64Var(&item.Protein, "protein", 0, "protein in grams")
	f.Float64Var(&item.Fats, "fats", 0, "fat in grams")
	f.Float64Var(&item.Carbs, "carbs", 0, "carbohydrates in grams")

	return cmd
}

func planDay(planArg, dayArg string) (int64, int, error) {
	planID, err := parseID(planArg)
	if err != nil {
		return 0, 0, err
	}
	day, err := strconv.Atoi(dayArg)
	if err != nil || day < 1 || day > 7 {
		return 0, 0, fmt.Errorf("invalid day %q: must be 1 (Monday) through 7", dayArg)
	}
	return planID, day, nil
}

func renderMealPlan(app *App, p model.MealPlan, sum model.NutritionSummary) {
	ui.Header(app.Out, p.Name, app.NoColor)
	kv := ui.NewKeyValueTable(app.Out, app.NoColor)
	kv.AddRow("ID", idStr(p.ID))
	if p.Description != "" {
		kv.AddRow("Описание", p.Description)
	}
	if p.Goal != "" {
		kv.AddRow("Цел", string(p.Goal))
	}
	kv.AddRow("Цел на ден", fmt.Sprintf("%s kcal, П %s г, М %s г, В %s г",
		num(p.TargetCalories), num(p.TargetProtein), num(p.TargetFats), num(p.TargetCarbs)))
	kv.AddRow("Общо", fmt.Sprintf("%s kcal, П %s г, М %s г, В %s г",
		num(sum.TotalCalories), num(sum.TotalProtein), num(sum.TotalFats), num(sum.TotalCarbs)))
	kv.Render()

	if len(p.Days) == 0 {
		return
	}
	fmt.Fprintln(app.Out)
	t := ui.NewTable(app.Out, []string{"Ден", "ID", "Хранене", "kcal", "П", "М", "В"}, &ui.TableOptions{NoColor: app.NoColor})
	for _, d := range p.Days {
		for _, m := range d.Meals {
			t.AddRow(strconv.Itoa(d.DayOfWeek), idStr(m.ID), string(m.Type),
				num(m.TotalCalories), num(m.TotalProtein), num(m.TotalFats), num(m.TotalCarbs))
		}
	}
	t.Render()
}
