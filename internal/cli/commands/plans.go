package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var planHeaders = []string{"ID", "Име", "От", "До", "Активен"}

func planRow(p model.DailyPlan) []string {
	active := ""
	if p.Active {
		active = "✓"
	}
	return []string{idStr(p.ID), p.Name, p.StartDate, p.EndDate, active}
}

// NewPlansCommand creates the daily plans command tree
func NewPlansCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "plans",
		Aliases: []string{"plan"},
		Short:   "Daily plans combining a meal plan and a training program",
		Long:    "List, generate and deactivate your daily plans. At most one plan is active at a time.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your daily plans",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewDailyPlans(app.API.DailyPlans, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Open(cmd.Context()) })
			return show(app, store.Plans, planHeaders, planRow)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "Show the active daily plan",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewDailyPlans(app.API.DailyPlans, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.FetchActive(cmd.Context()) })
			if msg := store.Active.Error(); msg != "" {
				fmt.Fprint(app.ErrOut, ui.CollectionError(msg, app.NoColor))
				return reportedError{fmt.Errorf("active plan: %s", msg)}
			}
			plan, ok := store.ActivePlan()
			if !ok {
				fmt.Fprint(app.Out, ui.Info("Нямате активен дневен план", app.NoColor))
				return nil
			}
			renderPlan(app, plan)
			return nil
		}),
	})

	cmd.AddCommand(newPlansGenerateCommand(env))

	cmd.AddCommand(&cobra.Command{
		Use:   "deactivate",
		Short: "Deactivate every daily plan",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewDailyPlans(app.API.DailyPlans, app.Session, app.Options()...)
			defer store.Close()

			if err := store.DeactivateAll(cmd.Context()); err != nil {
				return failed(app, store.Plans, "plans deactivate", err)
			}
			app.Success("Всички планове са деактивирани")
			return nil
		}),
	})

	return cmd
}

func newPlansGenerateCommand(env *Env) *cobra.Command {
	var (
		cfg  model.DailyPlanGenerationConfig
		goal string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a daily plan on the server",
		Long: `Generate a daily plan. Without --name the server builds one from your
personal settings; with --name the flags below configure it.`,
		Example: `  fitdump plans generate
  fitdump plans generate --name "Пролет" --weeks 4 --training --activate --deactivate-existing`,
		Args: cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewDailyPlans(app.API.DailyPlans, app.Session, app.Options()...)
			defer store.Close()

			var (
				plan model.DailyPlan
				err  error
			)
			if cfg.PlanName == "" {
				app.Load(func() { plan, err = store.Generate(cmd.Context()) })
			} else {
				if goal != "" {
					g, gerr := choice(app, "GOAL", goal, goals...)
					if gerr != nil {
						return gerr
					}
					cfg.MealPlanConfig.Goal = g
				}
				if cfg.StartDate == "" {
					cfg.StartDate = time.Now().Format(resource.DateLayout)
				}
				cfg.MealPlanConfig.PlanName = cfg.PlanName
				cfg.MealPlanConfig.StartDate = cfg.StartDate
				cfg.MealPlanConfig.DurationWeeks = cfg.DurationWeeks
				app.Load(func() {
					// deactivate-existing clears the loaded list
					store.Fetch(cmd.Context())
					plan, err = store.GenerateWithConfig(cmd.Context(), cfg)
				})
			}
			if err != nil {
				return failed(app, store.Plans, "plans generate", err)
			}
			app.Success(fmt.Sprintf("Планът „%s“ е генериран (ID %d)", plan.Name, plan.ID))
			renderPlan(app, plan)
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&cfg.PlanName, "name", "", "plan name; enables the options below")
	f.StringVar(&cfg.PlanDescription, "description", "", "plan description")
	f.StringVar(&cfg.StartDate, "start", "", "first day, YYYY-MM-DD (default today)")
	f.IntVar(&cfg.DurationWeeks, "weeks", 1, "duration in weeks")
	f.BoolVar(&cfg.IncludeMealPlan, "meals", true, "include a meal plan")
	f.BoolVar(&cfg.IncludeTrainingProgram, "training", false, "include a training program")
	f.BoolVar(&cfg.ActivatePlan, "activate", false, "make the new plan the active one")
	f.BoolVar(&cfg.DeactivateExistingPlans, "deactivate-existing", false, "deactivate current plans first")
	f.BoolVar(&cfg.UsePersonalSettingsForMacros, "use-settings", true, "take macros from personal settings")
	f.StringVar(&goal, "goal", "", "meal plan goal, e.g. LOSE_WEIGHT")
	f.IntVar(&cfg.MealPlanConfig.MealsPerDay, "meals-per-day", 0, "meals per day (server default when 0)")
	f.BoolVar(&cfg.MealPlanConfig.IncludeSnacks, "snacks", false, "include snacks")

	return cmd
}

func renderPlan(app *App, p model.DailyPlan) {
	ui.Header(app.Out, p.Name, app.NoColor)
	kv := ui.NewKeyValueTable(app.Out, app.NoColor)
	kv.AddRow("ID", idStr(p.ID))
	if p.Description != "" {
		kv.AddRow("Описание", p.Description)
	}
	period := p.StartDate
	if p.EndDate != "" {
		period += " – " + p.EndDate
	}
	kv.AddRow("Период", period)
	if p.MealPlan != nil {
		kv.AddRow("Хранителен план", fmt.Sprintf("%s (%s kcal/ден)", p.MealPlan.Name, num(p.MealPlan.TargetCalories)))
	}
	if p.TrainingProgram != nil {
		kv.AddRow("Тренировки", p.TrainingProgram.Name)
	}
	if p.Active {
		kv.AddRow("Статус", "активен")
	}
	kv.Render()
}
