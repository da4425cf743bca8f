package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var progressHeaders = []string{"ID", "Дата", "Програма", "Упражнение", "Серии", "Повт.", "кг", "Трудност", "✓"}

func progressRow(p model.WorkoutProgress) []string {
	done := ""
	if p.Completed {
		done = "✓"
	}
	return []string{
		idStr(p.ID), p.CompletedAt, idStr(p.ProgramID), idStr(p.ExerciseID),
		strconv.Itoa(p.CompletedSets), strconv.Itoa(p.CompletedReps), num(p.WeightUsed),
		strconv.Itoa(p.DifficultyRating), done,
	}
}

// NewProgressCommand creates the workout progress command tree
func NewProgressCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Track completed workouts",
	}

	var program, exercise int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List logged workouts",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewWorkoutProgress(app.API.WorkoutProgress, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() {
				switch {
				case program > 0:
					store.ByProgram(cmd.Context(), program)
				case exercise > 0:
					store.ByExercise(cmd.Context(), exercise)
				default:
					store.Open(cmd.Context())
				}
			})
			return show(app, store.Items, progressHeaders, progressRow)
		}),
	}
	list.Flags().Int64Var(&program, "program", 0, "only this training program")
	list.Flags().Int64Var(&exercise, "exercise", 0, "only this exercise")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:     "range <start> <end>",
		Short:   "List workouts logged between two dates",
		Example: "  fitdump progress range 2024-03-01 2024-03-31",
		Args:    cobra.ExactArgs(2),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			for _, d := range args {
				if err := parseDate(d); err != nil {
					return err
				}
			}
			store := resource.NewWorkoutProgress(app.API.WorkoutProgress, app.Session, app.Options()...)
			defer store.Close()

			app.Load(func() { store.ByRange(cmd.Context(), args[0], args[1]) })
			return show(app, store.Items, progressHeaders, progressRow)
		}),
	})

	cmd.AddCommand(newProgressLogCommand(env))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a logged workout",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			progressID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewWorkoutProgress(app.API.WorkoutProgress, app.Session, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), progressID); err != nil {
				return failed(app, store.Items, "progress delete", err)
			}
			app.Success(fmt.Sprintf("Запис %d е изтрит", progressID))
			return nil
		}),
	})

	return cmd
}

func newProgressLogCommand(env *Env) *cobra.Command {
	var p model.WorkoutProgress

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Log a completed exercise",
		Args:    cobra.NoArgs,
		Example: "  fitdump progress log --program 1 --exercise 3 --sets 4 --reps 10 --weight 60 --rating 7",
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			if p.CompletedAt == "" {
				p.CompletedAt = time.Now().Format(resource.DateLayout)
			} else if err := parseDate(p.CompletedAt); err != nil {
				return err
			}
			store := resource.NewWorkoutProgress(app.API.WorkoutProgress, app.Session, app.Options()...)
			defer store.Close()

			logged, err := store.Log(cmd.Context(), p)
			if err != nil {
				return failed(app, store.Items, "progress log", err)
			}
			app.Success(fmt.Sprintf("Тренировката е записана (ID %d)", logged.ID))
			return nil
		}),
	}

	f := cmd.Flags()
	f.Int64Var(&p.ProgramID, "program", 0, "training program id")
	f.Int64Var(&p.ExerciseID, "exercise", 0, "exercise id")
	f.IntVar(&p.CompletedSets, "sets", 0, "completed sets")
	f.IntVar(&p.CompletedReps, "reps", 0, "completed reps per set")
	f.Float64Var(&p.WeightUsed, "weight", 0, "weight used in kg")
	f.IntVar(&p.DifficultyRating, "rating", 5, "difficulty from 1 to 10")
	f.StringVar(&p.Notes, "notes", "", "free-form note")
	f.BoolVar(&p.Completed, "completed", true, "the exercise was finished")
	f.StringVar(&p.CompletedAt, "date", "", "day of the workout, YYYY-MM-DD (default today)")

	return cmd
}
