package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

// NewSettingsCommand creates the personal settings command tree
func NewSettingsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Body measurements and goals used for your plans",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show your personal settings",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewPersonalSettings(app.API.PersonalSettings, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Open(cmd.Context()) })
			if msg := store.Items.Error(); msg != "" {
				fmt.Fprint(app.ErrOut, ui.CollectionError(msg, app.NoColor))
				return reportedError{fmt.Errorf("settings: %s", msg)}
			}
			settings, ok := store.Value()
			if !ok {
				fmt.Fprint(app.Out, ui.Warning("Нямате запазени лични настройки", []string{
					"fitdump settings set --weight 80 --height 180 --age 30 --gender male",
					"fitdump calc ... --save",
				}, app.NoColor))
				return nil
			}
			renderSettings(app, settings)
			return nil
		}),
	})

	cmd.AddCommand(newSettingsSetCommand(env))

	return cmd
}

func newSettingsSetCommand(env *Env) *cobra.Command {
	var (
		in                     model.PersonalSettings
		gender, activity, goal string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save your personal settings",
		Long: `Save your personal settings. Flags you leave out keep their saved
value, so a single measurement can be updated on its own.`,
		Example: `  fitdump settings set --weight 80 --height 180 --age 30 --gender male --goal lose-weight
  fitdump settings set --weight 78.5`,
		Args: cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewPersonalSettings(app.API.PersonalSettings, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Fetch(cmd.Context()) })
			settings, _ := store.Value()

			f := cmd.Flags()
			if f.Changed("weight") {
				settings.CurrentWeight = in.CurrentWeight
			}
			if f.Changed("target") {
				settings.TargetWeight = in.TargetWeight
			}
			if f.Changed("height") {
				settings.Height = in.Height
			}
			if f.Changed("age") {
				settings.Age = in.Age
			}
			var err error
			if gender != "" {
				if settings.Gender, err = choice(app, "GENDER", gender, genders...); err != nil {
					return err
				}
			}
			if activity != "" {
				if settings.ActivityLevel, err = choice(app, "ACTIVITY LEVEL", activity, activityLevels...); err != nil {
					return err
				}
			}
			if goal != "" {
				if settings.Goal, err = choice(app, "GOAL", goal, goals...); err != nil {
					return err
				}
			}
			if settings.TargetWeight == 0 {
				settings.TargetWeight = settings.CurrentWeight
			}
			if settings.ActivityLevel == "" {
				settings.ActivityLevel = model.ActivityModeratelyActive
			}
			if settings.Goal == "" {
				settings.Goal = model.GoalMaintainWeight
			}

			var saved model.PersonalSettings
			app.Load(func() { saved, err = store.Save(cmd.Context(), settings) })
			if err != nil {
				return failed(app, store.Items, "settings set", err)
			}
			app.Success("Личните настройки са запазени")
			renderSettings(app, saved)
			return nil
		}),
	}

	f := cmd.Flags()
	f.Float64Var(&in.CurrentWeight, "weight", 0, "current weight in kg")
	f.Float64Var(&in.TargetWeight, "target", 0, "target weight in kg (default the current weight)")
	f.Float64Var(&in.Height, "height", 0, "height in cm")
	f.IntVar(&in.Age, "age", 0, "age in years")
	f.StringVar(&gender, "gender", "", "MALE or FEMALE")
	f.StringVar(&activity, "activity", "", "activity level, e.g. SEDENTARY")
	f.StringVar(&goal, "goal", "", "LOSE_WEIGHT, MAINTAIN_WEIGHT or GAIN_WEIGHT")

	return cmd
}

func renderSettings(app *App, s model.PersonalSettings) {
	kv := ui.NewKeyValueTable(app.Out, app.NoColor)
	kv.AddRow("Тегло", num(s.CurrentWeight)+" кг")
	if s.TargetWeight > 0 {
		kv.AddRow("Желано тегло", num(s.TargetWeight)+" кг")
	}
	kv.AddRow("Ръст", num(s.Height)+" см")
	kv.AddRow("Възраст", fmt.Sprint(s.Age))
	kv.AddRow("Пол", string(s.Gender))
	kv.AddRow("Активност", string(s.ActivityLevel))
	kv.AddRow("Цел", string(s.Goal))
	if s.DailyCalories > 0 {
		kv.AddRow("Калории на ден", num(s.DailyCalories))
		kv.AddRow("Макроси", fmt.Sprintf("П %s г, М %s г, В %s г", num(s.Protein), num(s.Fats), num(s.Carbs)))
	}
	if s.LastCalculation != "" {
		kv.AddRow("Изчислено на", s.LastCalculation)
	}
	kv.Render()
}

// NewProfileCommand creates the profile command tree
func NewProfileCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Your account details and password",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show your account as the server has it",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			userID := app.UserID()
			if userID == 0 {
				return app.Fail(resource.ErrSignInRequired, "", "profile show")
			}
			var (
				user model.User
				err  error
			)
			app.Load(func() { user, err = app.API.Auth.User(cmd.Context(), userID) })
			if err != nil {
				return app.Fail(err, "", "profile show")
			}
			renderProfile(app, user)
			return nil
		}),
	})

	var req model.UpdateProfile
	update := &cobra.Command{
		Use:     "update",
		Short:   "Change your name or email",
		Example: `  fitdump profile update --first-name Иван --email ivan@example.com`,
		Args:    cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			current, ok := app.Session.CurrentUser()
			if !ok {
				return app.Fail(resource.ErrSignInRequired, "", "profile update")
			}
			f := cmd.Flags()
			if !f.Changed("first-name") {
				req.FirstName = current.FirstName
			}
			if !f.Changed("last-name") {
				req.LastName = current.LastName
			}
			if !f.Changed("email") {
				req.Email = current.Email
			}
			if err := app.API.Auth.UpdateProfile(cmd.Context(), req); err != nil {
				return app.Fail(err, "", "profile update")
			}
			app.Success("Профилът е обновен")
			return nil
		}),
	}
	update.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	update.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	update.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.AddCommand(update)

	cmd.AddCommand(newProfilePasswordCommand(env))

	return cmd
}

func newProfilePasswordCommand(env *Env) *cobra.Command {
	var req model.ChangePassword

	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change your password",
		Long:  "Change your password. Passwords not given as flags are asked for interactively.",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if _, ok := app.Session.CurrentUser(); !ok {
				return app.Fail(resource.ErrSignInRequired, "", "profile password")
			}
			if req.CurrentPassword == "" {
				if err := survey.AskOne(&survey.Password{Message: "Текуща парола:"}, &req.CurrentPassword, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
			}
			if req.NewPassword == "" {
				if err := survey.AskOne(&survey.Password{Message: "Нова парола:"}, &req.NewPassword, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
				if err := survey.AskOne(&survey.Password{Message: "Повторете новата парола:"}, &req.ConfirmPassword); err != nil {
					return err
				}
			} else if req.ConfirmPassword == "" {
				req.ConfirmPassword = req.NewPassword
			}
			req.NewPasswordMatching = req.NewPassword == req.ConfirmPassword

			if err := app.API.Auth.ChangePassword(cmd.Context(), req); err != nil {
				return app.Fail(err, "", "profile password")
			}
			app.Success("Паролата е сменена")
			return nil
		}),
	}

	cmd.Flags().StringVar(&req.CurrentPassword, "current", "", "current password (prompted when omitted)")
	cmd.Flags().StringVar(&req.NewPassword, "new", "", "new password (prompted when omitted)")

	return cmd
}

func renderProfile(app *App, u model.User) {
	kv := ui.NewKeyValueTable(app.Out, app.NoColor)
	kv.AddRow("ID", idStr(u.ID))
	kv.AddRow("Username", u.Username)
	if name := u.FirstName + " " + u.LastName; name != " " {
		kv.AddRow("Name", name)
	}
	kv.AddRow("Email", u.Email)
	kv.AddRow("Role", string(u.Role))
	kv.Render()
}
