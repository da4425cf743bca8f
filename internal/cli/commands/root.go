package commands

import (
	"context"
	"errors"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// reportedError marks an error whose message was already written to the
// user, so Execute only sets the exit status.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	env := &Env{}

	rootCmd := &cobra.Command{
		Use:   "fitdump",
		Short: "FitnessDump client: nutrition, training and diary from the terminal",
		Long: color.CyanString(`FitnessDump - fitness and nutrition tracker

Browse the exercise, food and recipe catalogs, keep a food diary, log
workouts and generate daily plans against a FitnessDump server.

Start a local server with sample data:
  fitdump devserver --seed`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&env.flags.configFile, "config", "", "config file (default: ./fitdump.yaml or ~/.config/fitdump/fitdump.yaml)")
	flags.StringVar(&env.flags.apiURL, "api-url", "", "API base URL, overrides api.base_url")
	flags.BoolVar(&env.flags.debug, "debug", false, "log requests at debug level")
	flags.BoolVar(&env.flags.noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewLoginCommand(env))
	rootCmd.AddCommand(NewRegisterCommand(env))
	rootCmd.AddCommand(NewLogoutCommand(env))
	rootCmd.AddCommand(NewWhoamiCommand(env))
	rootCmd.AddCommand(NewExercisesCommand(env))
	rootCmd.AddCommand(NewCategoriesCommand(env))
	rootCmd.AddCommand(NewFoodsCommand(env))
	rootCmd.AddCommand(NewRecipesCommand(env))
	rootCmd.AddCommand(NewDiaryCommand(env))
	rootCmd.AddCommand(NewSavedFoodsCommand(env))
	rootCmd.AddCommand(NewPlansCommand(env))
	rootCmd.AddCommand(NewMealPlansCommand(env))
	rootCmd.AddCommand(NewProgramsCommand(env))
	rootCmd.AddCommand(NewPredefinedCommand(env))
	rootCmd.AddCommand(NewSessionsCommand(env))
	rootCmd.AddCommand(NewProgressCommand(env))
	rootCmd.AddCommand(NewCalcCommand(env))
	rootCmd.AddCommand(NewSettingsCommand(env))
	rootCmd.AddCommand(NewProfileCommand(env))
	rootCmd.AddCommand(NewDevServerCommand(env))

	return rootCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the fitdump version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			out := cmd.OutOrStdout()
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			titleColor.Fprint(out, "fitdump version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Build date: ")
			valueColor.Fprintln(out, BuildDate)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, goVer)
		},
	}
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			errorColor := color.New(color.FgRed, color.Bold)
			errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
