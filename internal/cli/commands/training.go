package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var (
	programGoals = []model.ProgramGoal{
		model.ProgramMuscleGain, model.ProgramWeightLoss, model.ProgramEndurance,
		model.ProgramStrength, model.ProgramFlexibility,
	}
	difficulties = []model.DifficultyLevel{model.DifficultyBeginner, model.DifficultyIntermediate, model.DifficultyAdvanced}
)

var programHeaders = []string{"ID", "Име", "Упражнения", "Описание"}

func programRow(p model.TrainingProgram) []string {
	return []string{idStr(p.ID), p.Name, strconv.Itoa(len(p.Exercises)), p.Description}
}

// NewProgramsCommand creates the training programs command tree
func NewProgramsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "programs",
		Aliases: []string{"program"},
		Short:   "Your training programs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your training programs",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewTrainingPrograms(app.API.TrainingPrograms, app.API.PredefinedPrograms, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Open(cmd.Context()) })
			return show(app, store.Items, programHeaders, programRow)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a training program with its exercises",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			programID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewTrainingPrograms(app.API.TrainingPrograms, app.API.PredefinedPrograms, app.Session, app.Options()...)
			defer store.Close()

			var p model.TrainingProgram
			app.Load(func() { p, err = store.Get(cmd.Context(), programID) })
			if err != nil {
				return failed(app, store.Items, "programs show", err)
			}
			renderProgram(app, p)
			return nil
		}),
	})

	var program model.TrainingProgram
	create := &cobra.Command{
		Use:     "create",
		Short:   "Create an empty training program",
		Example: `  fitdump programs create --name "Горна част"`,
		Args:    cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewTrainingPrograms(app.API.TrainingPrograms, app.API.PredefinedPrograms, app.Session, app.Options()...)
			defer store.Close()

			created, err := store.Create(cmd.Context(), program)
			if err != nil {
				return failed(app, store.Items, "programs create", err)
			}
			app.Success(fmt.Sprintf("Програмата „%s“ е създадена (ID %d)", created.Name, created.ID))
			return nil
		}),
	}
	create.Flags().StringVar(&program.Name, "name", "", "program name")
	create.Flags().StringVar(&program.Description, "description", "", "program description")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a training program",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			programID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewTrainingPrograms(app.API.TrainingPrograms, app.API.PredefinedPrograms, app.Session, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), programID); err != nil {
				return failed(app, store.Items, "programs delete", err)
			}
			app.Success(fmt.Sprintf("Програма %d е изтрита", programID))
			return nil
		}),
	})

	return cmd
}

func renderProgram(app *App, p model.TrainingProgram) {
	ui.Header(app.Out, p.Name, app.NoColor)
	if p.Description != "" {
		fmt.Fprintln(app.Out, p.Description)
	}
	if len(p.Exercises) == 0 {
		fmt.Fprint(app.Out, ui.Info("Програмата няма упражнения", app.NoColor))
		return
	}
	t := ui.NewTable(app.Out, []string{"Ден", "Упражнение", "Серии", "Повт.", "кг"}, &ui.TableOptions{NoColor: app.NoColor})
	for _, e := range p.Exercises {
		t.AddRow(strconv.Itoa(e.DayOfWeek), idStr(e.ExerciseID), strconv.Itoa(e.Sets), strconv.Itoa(e.Reps), num(e.Weight))
	}
	t.Render()
}

var predefinedHeaders = []string{"ID", "Име", "Цел", "Ниво", "Седмици"}

func predefinedRow(p model.PredefinedProgram) []string {
	return []string{idStr(p.ID), p.Name, string(p.Goal), string(p.DifficultyLevel), strconv.Itoa(p.DurationWeeks)}
}

// NewPredefinedCommand creates the predefined programs command tree
func NewPredefinedCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predefined",
		Short: "Ready-made training programs you can copy",
	}

	var goal, level string
	list := &cobra.Command{
		Use:     "list",
		Short:   "List predefined programs",
		Example: "  fitdump predefined list --goal strength",
		Args:    cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewPredefinedPrograms(app.API.PredefinedPrograms, app.Session, app.Options()...)
			defer store.Close()

			switch {
			case goal != "":
				g, err := choice(app, "PROGRAM GOAL", goal, programGoals...)
				if err != nil {
					return err
				}
				app.Load(func() { store.ByGoal(cmd.Context(), g) })
			case level != "":
				l, err := choice(app, "DIFFICULTY", level, difficulties...)
				if err != nil {
					return err
				}
				app.Load(func() { store.ByDifficulty(cmd.Context(), l) })
			default:
				app.Load(func() { store.Open(cmd.Context()) })
			}
			return show(app, store.Items, predefinedHeaders, predefinedRow)
		}),
	}
	list.Flags().StringVar(&goal, "goal", "", "only programs for this goal")
	list.Flags().StringVar(&level, "difficulty", "", "only programs of this level")
	list.MarkFlagsMutuallyExclusive("goal", "difficulty")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a predefined program",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			programID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewPredefinedPrograms(app.API.PredefinedPrograms, app.Session, app.Options()...)
			defer store.Close()

			var p model.PredefinedProgram
			app.Load(func() { p, err = store.Get(cmd.Context(), programID) })
			if err != nil {
				return failed(app, store.Items, "predefined show", err)
			}
			ui.Header(app.Out, p.Name, app.NoColor)
			kv := ui.NewKeyValueTable(app.Out, app.NoColor)
			if p.Description != "" {
				kv.AddRow("Описание", p.Description)
			}
			kv.AddRow("Цел", string(p.Goal))
			kv.AddRow("Ниво", string(p.DifficultyLevel))
			kv.AddRow("Продължителност", fmt.Sprintf("%d седмици", p.DurationWeeks))
			kv.Render()
			if len(p.Exercises) > 0 {
				fmt.Fprintln(app.Out)
				t := ui.NewTable(app.Out, []string{"Ден", "Упражнение", "Серии", "Повт.", "кг", "Почивка"}, &ui.TableOptions{NoColor: app.NoColor})
				for _, e := range p.Exercises {
					t.AddRow(strconv.Itoa(e.DayOfWeek), idStr(e.ExerciseID), strconv.Itoa(e.Sets), strconv.Itoa(e.Reps),
						num(e.SuggestedWeight), fmt.Sprintf("%d с", e.RestSeconds))
				}
				t.Render()
			}
			return nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "copy <id>",
		Short: "Copy a predefined program into your training programs",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			programID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewPredefinedPrograms(app.API.PredefinedPrograms, app.Session, app.Options()...)
			defer store.Close()

			copied, err := store.Copy(cmd.Context(), programID)
			if err != nil {
				return failed(app, store.Items, "predefined copy", err)
			}
			app.Success(fmt.Sprintf("Програмата „%s“ е копирана (ID %d)", copied.Name, copied.ID))
			return nil
		}),
	})

	return cmd
}

var sessionHeaders = []string{"ID", "Дата", "Име", "Мин."}

func sessionRow(s model.TrainingSession) []string {
	return []string{idStr(s.ID), s.Date, s.Name, strconv.Itoa(s.DurationMinutes)}
}

// NewSessionsCommand creates the training sessions command tree
func NewSessionsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Training sessions you attended",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your training sessions",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewTrainingSessions(app.API.TrainingSessions, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.Open(cmd.Context()) })
			return show(app, store.Items, sessionHeaders, sessionRow)
		}),
	})

	var session model.TrainingSession
	create := &cobra.Command{
		Use:     "create",
		Short:   "Record a training session",
		Example: `  fitdump sessions create --name "Крака" --duration 50`,
		Args:    cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if session.Date == "" {
				session.Date = time.Now().Format(resource.DateLayout)
			} else if err := parseDate(session.Date); err != nil {
				return err
			}
			store := resource.NewTrainingSessions(app.API.TrainingSessions, app.Session, app.Options()...)
			defer store.Close()

			created, err := store.Create(cmd.Context(), session)
			if err != nil {
				return failed(app, store.Items, "sessions create", err)
			}
			app.Success(fmt.Sprintf("Сесията е записана (ID %d)", created.ID))
			return nil
		}),
	}
	f := create.Flags()
	f.StringVar(&session.Name, "name", "", "session name")
	f.StringVar(&session.Description, "description", "", "what you did")
	f.StringVar(&session.Date, "date", "", "day of the session, YYYY-MM-DD (default today)")
	f.IntVar(&session.DurationMinutes, "duration", 0, "duration in minutes")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a training session",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			sessionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewTrainingSessions(app.API.TrainingSessions, app.Session, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), sessionID); err != nil {
				return failed(app, store.Items, "sessions delete", err)
			}
			app.Success(fmt.Sprintf("Сесия %d е изтрита", sessionID))
			return nil
		}),
	})

	return cmd
}
