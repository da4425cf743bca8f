package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

// NewLoginCommand creates the login command
func NewLoginCommand(env *Env) *cobra.Command {
	var req model.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session",
		Long: `Sign in to the FitnessDump server. The token is stored locally and sent
with every later command until you log out or the server rejects it.

Missing credentials are asked for interactively.`,
		Example: `  fitdump login
  fitdump login -u ivan`,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if req.Username == "" {
				prompt := &survey.Input{Message: "Потребителско име:"}
				if err := survey.AskOne(prompt, &req.Username, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
			}
			if req.Password == "" {
				prompt := &survey.Password{Message: "Парола:"}
				if err := survey.AskOne(prompt, &req.Password, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
			}

			user, err := app.Session.Login(cmd.Context(), req)
			if err != nil {
				return app.Fail(err, "", "login")
			}
			app.Success(fmt.Sprintf("Влязохте като %s", user.Username))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// NewRegisterCommand creates the register command
func NewRegisterCommand(env *Env) *cobra.Command {
	var req model.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long:  "Create an account on the FitnessDump server. Registration does not sign you in.",
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if req.Password == "" {
				if err := survey.AskOne(&survey.Password{Message: "Парола:"}, &req.Password, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
				if err := survey.AskOne(&survey.Password{Message: "Повторете паролата:"}, &req.ConfirmPassword); err != nil {
					return err
				}
			} else if req.ConfirmPassword == "" {
				req.ConfirmPassword = req.Password
			}

			if err := app.Session.Register(cmd.Context(), req); err != nil {
				return app.Fail(err, "", "register")
			}
			app.Success(fmt.Sprintf("Профилът %s е създаден. Влезте с fitdump login.", req.Username))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "last name")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if _, ok := app.Session.CurrentUser(); !ok {
				fmt.Fprint(app.Out, ui.Info("Не сте влезли в профила си", app.NoColor))
				return nil
			}
			if err := app.Session.Logout(cmd.Context()); err != nil {
				return app.Fail(err, "", "logout")
			}
			app.Success("Излязохте от профила си")
			return nil
		}),
	}
}

// NewWhoamiCommand creates the whoami command
func NewWhoamiCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			user, ok := app.Session.CurrentUser()
			if !ok {
				return app.Fail(resource.ErrSignInRequired, "", "whoami")
			}

			kv := ui.NewKeyValueTable(app.Out, app.NoColor)
			kv.AddRow("ID", idStr(user.ID))
			kv.AddRow("Username", user.Username)
			if name := user.FirstName + " " + user.LastName; name != " " {
				kv.AddRow("Name", name)
			}
			kv.AddRow("Email", user.Email)
			kv.AddRow("Role", string(user.Role))
			if claims, err := app.Session.Claims(); err == nil && claims.ExpiresAt != nil {
				kv.AddRow("Expires", claims.ExpiresAt.Time.Local().Format("2006-01-02 15:04"))
			}
			kv.Render()
			return nil
		}),
	}
}
