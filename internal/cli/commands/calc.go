package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var (
	genders        = []model.Gender{model.GenderMale, model.GenderFemale}
	activityLevels = []model.ActivityLevel{model.ActivitySedentary, model.ActivityLightlyActive, model.ActivityModeratelyActive, model.ActivityVeryActive, model.ActivityExtraActive}
)

// NewCalcCommand creates the calorie calculator command
func NewCalcCommand(env *Env) *cobra.Command {
	var (
		req                    model.CalorieRequest
		gender, activity, goal string
		save                   bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate BMR, TDEE and a daily calorie target",
		Long: `Calculate the basal metabolic rate, total daily energy expenditure and
the calorie target for a goal, with a macro split. --save also stores the
result in your personal settings.`,
		Example: "  fitdump calc --weight 80 --height 180 --age 30 --gender male --activity moderately-active --goal lose-weight",
		Args:    cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			var err error
			if req.Gender, err = choice(app, "GENDER", gender, genders...); err != nil {
				return err
			}
			if req.ActivityLevel, err = choice(app, "ACTIVITY LEVEL", activity, activityLevels...); err != nil {
				return err
			}
			if req.Goal, err = choice(app, "GOAL", goal, goals...); err != nil {
				return err
			}

			store := resource.NewCalculator(app.API.Calculator, app.Session, app.Options()...)
			defer store.Close()

			var res model.CalorieResponse
			app.Load(func() {
				if save {
					res, err = store.CalculateAndSave(cmd.Context(), req)
				} else {
					res, err = store.Calculate(cmd.Context(), req)
				}
			})
			if err != nil {
				return failed(app, store.Items, "calc", err)
			}
			renderCalories(app, res)
			if save {
				app.Success("Резултатът е записан в личните настройки")
			}
			return nil
		}),
	}

	f := cmd.Flags()
	f.Float64Var(&req.Weight, "weight", 0, "body weight in kg")
	f.Float64Var(&req.Height, "height", 0, "height in cm")
	f.IntVar(&req.Age, "age", 0, "age in years")
	f.StringVar(&gender, "gender", "", "MALE or FEMALE")
	f.StringVar(&activity, "activity", "MODERATELY_ACTIVE", "activity level, e.g. SEDENTARY")
	f.StringVar(&goal, "goal", "MAINTAIN_WEIGHT", "LOSE_WEIGHT, MAINTAIN_WEIGHT or GAIN_WEIGHT")
	f.BoolVar(&save, "save", false, "store the result in personal settings")
	_ = cmd.MarkFlagRequired("gender")

	return cmd
}

func renderCalories(app *App, res model.CalorieResponse) {
	ui.Header(app.Out, "Калории", app.NoColor)
	kv := ui.NewKeyValueTable(app.Out, app.NoColor)
	kv.AddRow("BMR", num(res.BMR)+" kcal")
	kv.AddRow("TDEE", num(res.TDEE)+" kcal")
	kv.AddRow("Дневна цел", num(res.DailyCalories)+" kcal")
	if res.CalculationDate != "" {
		kv.AddRow("Изчислено", res.CalculationDate)
	}
	kv.Render()

	m := res.MacroDistribution
	fmt.Fprintln(app.Out)
	t := ui.NewTable(app.Out, []string{"Макро", "Грамове", "%"}, &ui.TableOptions{NoColor: app.NoColor})
	t.AddRow("Протеин", num(m.ProteinGrams), num(m.ProteinPercentage))
	t.AddRow("Мазнини", num(m.FatsGrams), num(m.FatsPercentage))
	t.AddRow("Въглехидрати", num(m.CarbsGrams), num(m.CarbsPercentage))
	t.Render()
}
