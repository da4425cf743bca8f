package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fitnessdump/fitdump/internal/model"
)

type TrainingPrograms struct {
	Resource[model.TrainingProgram]
}

func NewTrainingPrograms(c *Client) *TrainingPrograms {
	return &TrainingPrograms{NewResource[model.TrainingProgram](c, "/training-programs")}
}

func (t *TrainingPrograms) ByUser(ctx context.Context, userID int64) ([]model.TrainingProgram, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return t.Query(ctx, p, nil)
}

// Create stores a program for userID. Programs are created under the owner's id.
func (t *TrainingPrograms) Create(ctx context.Context, userID int64, program model.TrainingProgram) (model.TrainingProgram, error) {
	p, err := idPath(t.path, userID)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	return post[model.TrainingProgram](ctx, t.client, p, nil, program)
}

type TrainingSessions struct {
	Resource[model.TrainingSession]
}

func NewTrainingSessions(c *Client) *TrainingSessions {
	return &TrainingSessions{NewResource[model.TrainingSession](c, "/training-sessions")}
}

func (t *TrainingSessions) ByUser(ctx context.Context, userID int64) ([]model.TrainingSession, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return t.Query(ctx, p, nil)
}

func (t *TrainingSessions) Create(ctx context.Context, userID int64, session model.TrainingSession) (model.TrainingSession, error) {
	p, err := idPath(t.path, userID)
	if err != nil {
		return model.TrainingSession{}, err
	}
	return post[model.TrainingSession](ctx, t.client, p, nil, session)
}

type WorkoutProgress struct {
	Resource[model.WorkoutProgress]
}

func NewWorkoutProgress(c *Client) *WorkoutProgress {
	return &WorkoutProgress{NewResource[model.WorkoutProgress](c, "/workout-progress")}
}

func (w *WorkoutProgress) ByUser(ctx context.Context, userID int64) ([]model.WorkoutProgress, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return w.Query(ctx, p, nil)
}

// ByRange lists progress between start and end, both YYYY-MM-DD.
func (w *WorkoutProgress) ByRange(ctx context.Context, userID int64, start, end string) ([]model.WorkoutProgress, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return w.Query(ctx, p+"/range", url.Values{"start": {start}, "end": {end}})
}

func (w *WorkoutProgress) ByProgram(ctx context.Context, userID, programID int64) ([]model.WorkoutProgress, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	if p, err = idPath(p+"/program", programID); err != nil {
		return nil, err
	}
	return w.Query(ctx, p, nil)
}

func (w *WorkoutProgress) ByExercise(ctx context.Context, userID, exerciseID int64) ([]model.WorkoutProgress, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	if p, err = idPath(p+"/exercise", exerciseID); err != nil {
		return nil, err
	}
	return w.Query(ctx, p, nil)
}

type PredefinedPrograms struct {
	Resource[model.PredefinedProgram]
}

func NewPredefinedPrograms(c *Client) *PredefinedPrograms {
	return &PredefinedPrograms{NewResource[model.PredefinedProgram](c, "/predefined-programs")}
}

func (p *PredefinedPrograms) ByGoal(ctx context.Context, goal model.ProgramGoal) ([]model.PredefinedProgram, error) {
	return p.Query(ctx, "/by-goal"+segment(string(goal)), nil)
}

func (p *PredefinedPrograms) ByDifficulty(ctx context.Context, level model.DifficultyLevel) ([]model.PredefinedProgram, error) {
	return p.Query(ctx, "/by-difficulty"+segment(string(level)), nil)
}

// CopyToUser clones a predefined program into the user's own programs.
func (p *PredefinedPrograms) CopyToUser(ctx context.Context, programID, userID int64) (model.TrainingProgram, error) {
	src, err := idPath(p.path+"/copy", programID)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	dst, err := idPath(src+"/to-user", userID)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	return post[model.TrainingProgram](ctx, p.client, dst, nil, nil)
}

type DailyPlans struct {
	Resource[model.DailyPlan]
}

func NewDailyPlans(c *Client) *DailyPlans {
	return &DailyPlans{NewResource[model.DailyPlan](c, "/daily-plans")}
}

func (d *DailyPlans) ByUser(ctx context.Context, userID int64) ([]model.DailyPlan, error) {
	p, err := idPath("/user", userID)
	if err != nil {
		return nil, err
	}
	return d.Query(ctx, p, nil)
}

// Active returns the user's active plan. The server answers 404 when none is active.
func (d *DailyPlans) Active(ctx context.Context, userID int64) (model.DailyPlan, error) {
	p, err := d.userPath(userID)
	if err != nil {
		return model.DailyPlan{}, err
	}
	return get[model.DailyPlan](ctx, d.client, p+"/active", nil)
}

func (d *DailyPlans) Generate(ctx context.Context, userID int64) (model.DailyPlan, error) {
	p, err := d.userPath(userID)
	if err != nil {
		return model.DailyPlan{}, err
	}
	return post[model.DailyPlan](ctx, d.client, p+"/generate", nil, nil)
}

func (d *DailyPlans) GenerateWithConfig(ctx context.Context, userID int64, cfg model.DailyPlanGenerationConfig) (model.DailyPlan, error) {
	p, err := d.userPath(userID)
	if err != nil {
		return model.DailyPlan{}, err
	}
	return post[model.DailyPlan](ctx, d.client, p+"/generate-with-config", nil, cfg)
}

func (d *DailyPlans) DeactivateAll(ctx context.Context, userID int64) error {
	p, err := d.userPath(userID)
	if err != nil {
		return err
	}
	return d.client.Do(ctx, http.MethodPost, p+"/deactivate-all", nil, nil, nil)
}

func (d *DailyPlans) userPath(userID int64) (string, error) {
	return idPath(d.path+"/user", userID)
}
