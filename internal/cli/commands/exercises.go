package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
)

var exerciseHeaders = []string{"ID", "Име", "Категория", "Медия"}

func exerciseRow(store *resource.Exercises) func(model.Exercise) []string {
	return func(e model.Exercise) []string {
		return []string{idStr(e.ID), e.Name, store.CategoryName(e.CategoryID), e.MediaType}
	}
}

// NewExercisesCommand creates the exercises command tree
func NewExercisesCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercises",
		Aliases: []string{"exercise", "ex"},
		Short:   "Browse and manage the exercise catalog",
		Long: `Browse the exercise catalog. Creating, updating and deleting exercises
requires an administrator account.`,
	}

	cmd.AddCommand(newExercisesListCommand(env))
	cmd.AddCommand(newExercisesSearchCommand(env))
	cmd.AddCommand(newExercisesShowCommand(env))
	cmd.AddCommand(newExerciseEditCommand(env, "create"))
	cmd.AddCommand(newExerciseEditCommand(env, "update"))
	cmd.AddCommand(newExercisesDeleteCommand(env))

	return cmd
}

func newExercisesListCommand(env *Env) *cobra.Command {
	var category int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			app.Load(func() {
				store.Open(cmd.Context())
				if category > 0 {
					store.ByCategory(cmd.Context(), category)
				}
			})
			return show(app, store.Items, exerciseHeaders, exerciseRow(store))
		}),
	}

	cmd.Flags().Int64Var(&category, "category", 0, "only exercises in this category id")
	return cmd
}

func newExercisesSearchCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search exercises by name",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			app.Load(func() {
				store.Open(cmd.Context())
				store.Search(cmd.Context(), args[0])
			})
			return show(app, store.Items, exerciseHeaders, exerciseRow(store))
		}),
	}
}

func newExercisesShowCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			exerciseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			var e model.Exercise
			app.Load(func() {
				store.FetchCategories(cmd.Context())
				e, err = store.Get(cmd.Context(), exerciseID)
			})
			if err != nil {
				return failed(app, store.Items, "exercises show", err)
			}

			ui.Header(app.Out, e.Name, app.NoColor)
			kv := ui.NewKeyValueTable(app.Out, app.NoColor)
			kv.AddRow("ID", idStr(e.ID))
			kv.AddRow("Категория", store.CategoryName(e.CategoryID))
			if e.Description != "" {
				kv.AddRow("Описание", e.Description)
			}
			if e.VideoURL != "" {
				kv.AddRow("Медия", fmt.Sprintf("%s (%s)", e.VideoURL, e.MediaType))
			}
			kv.Render()
			return nil
		}),
	}
}

// newExerciseEditCommand builds "create" and "update", which share flags.
func newExerciseEditCommand(env *Env, verb string) *cobra.Command {
	var e model.Exercise

	cmd := &cobra.Command{
		Use:   verb,
		Short: "Create an exercise (admin)",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			var (
				saved model.Exercise
				err   error
			)
			if verb == "create" {
				saved, err = store.Create(cmd.Context(), e)
			} else {
				exerciseID, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				saved, err = store.Update(cmd.Context(), exerciseID, e)
			}
			if err != nil {
				return failed(app, store.Items, "exercises "+verb, err)
			}
			app.Success(fmt.Sprintf("Упражнението „%s“ е записано (ID %d)", saved.Name, saved.ID))
			return nil
		}),
	}
	if verb == "update" {
		cmd.Use = "update <id>"
		cmd.Short = "Replace an exercise (admin)"
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.Flags().StringVar(&e.Name, "name", "", "exercise name")
	cmd.Flags().StringVar(&e.Description, "description", "", "description")
	cmd.Flags().Int64Var(&e.CategoryID, "category", 0, "category id")
	cmd.Flags().StringVar(&e.VideoURL, "media-url", "", "video, gif or image URL")
	cmd.Flags().StringVar(&e.MediaType, "media-type", "", "video, gif or image")

	return cmd
}

func newExercisesDeleteCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an exercise (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			exerciseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			if err := store.Delete(cmd.Context(), exerciseID); err != nil {
				return failed(app, store.Items, "exercises delete", err)
			}
			app.Success(fmt.Sprintf("Упражнение %d е изтрито", exerciseID))
			return nil
		}),
	}
}

// NewCategoriesCommand creates the exercise categories command tree
func NewCategoriesCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage exercise categories",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List exercise categories",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			app.Load(func() {
				store.FetchCategories(cmd.Context())
			})
			return show(app, store.Categories, []string{"ID", "Име", "Описание"}, func(c model.ExerciseCategory) []string {
				return []string{idStr(c.ID), c.Name, c.Description}
			})
		}),
	})
	cmd.AddCommand(newCategoryEditCommand(env, "create"))
	cmd.AddCommand(newCategoryEditCommand(env, "update"))
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an empty category (admin)",
		Args:  cobra.ExactArgs(1),
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			categoryID, err := parseID(args[0])
			if err != nil {
				return err
			}
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			if err := store.DeleteCategory(cmd.Context(), categoryID); err != nil {
				return failed(app, store.Categories, "categories delete", err)
			}
			app.Success(fmt.Sprintf("Категория %d е изтрита", categoryID))
			return nil
		}),
	})

	return cmd
}

func newCategoryEditCommand(env *Env, verb string) *cobra.Command {
	var c model.ExerciseCategory

	cmd := &cobra.Command{
		Use:   verb,
		Short: "Create an exercise category (admin)",
		Args:  cobra.NoArgs,
		RunE: env.run(func(cmd *cobra.Command, args []string, app *App) error {
			store := resource.NewExercises(app.API.Exercises, app.API.ExerciseCategories, app.Options()...)
			defer store.Close()

			var (
				saved model.ExerciseCategory
				err   error
			)
			if verb == "create" {
				saved, err = store.CreateCategory(cmd.Context(), c)
			} else {
				categoryID, perr := parseID(args[0])
				if perr != nil {
					return perr
				}
				saved, err = store.UpdateCategory(cmd.Context(), categoryID, c)
			}
			if err != nil {
				return failed(app, store.Categories, "categories "+verb, err)
			}
			app.Success(fmt.Sprintf("Категорията „%s“ е записана (ID %d)", saved.Name, saved.ID))
			return nil
		}),
	}
	if verb == "update" {
		cmd.Use = "update <id>"
		cmd.Short = "Rename or describe a category (admin)"
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.Flags().StringVar(&c.Name, "name", "", "category name")
	cmd.Flags().StringVar(&c.Description, "description", "", "description")

	return cmd
}
