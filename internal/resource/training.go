package resource

import (
	"context"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/model"
)

var programMessages = collection.Messages{
	"fetch": {
		Forbidden: "Нямате права за достъп до програмите. Моля, проверете вашите права.",
		Failure:   "Грешка при зареждане на програмите",
	},
	"create": {Forbidden: "Нямате права за създаване на програми", Failure: "Грешка при създаване на програма"},
	"update": {Forbidden: "Нямате права за обновяване на програми", Failure: "Грешка при обновяване на програма"},
	"delete": {Forbidden: "Нямате права за изтриване на програми", Failure: "Грешка при изтриване на програма"},
	"get":    {Forbidden: "Нямате права за достъп до програмата", Failure: "Грешка при зареждане на програма"},
	"copy":   {Forbidden: "Нямате права за копиране на програми", Failure: "Грешка при копиране на програма"},
}

// TrainingPrograms holds the signed-in user's training programs.
type TrainingPrograms struct {
	api        *api.TrainingPrograms
	predefined *api.PredefinedPrograms
	scope      userScope
	Items      *collection.Collection[model.TrainingProgram]
}

func NewTrainingPrograms(client *api.TrainingPrograms, predefined *api.PredefinedPrograms, identity Identity, opts ...Option) *TrainingPrograms {
	o := buildOptions(opts)
	return &TrainingPrograms{
		api:        client,
		predefined: predefined,
		scope:      userScope{identity: identity},
		Items:      collection.New[model.TrainingProgram]("training_programs", programMessages, o.collection()...),
	}
}

func (s *TrainingPrograms) Open(ctx context.Context) { s.scope.start(ctx, s.load) }

func (s *TrainingPrograms) load(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Items)
		return
	}
	s.Items.Fetch(ctx, "fetch", func(ctx context.Context) ([]model.TrainingProgram, error) {
		return s.api.ByUser(ctx, userID)
	})
}

func (s *TrainingPrograms) Fetch(ctx context.Context) { s.load(ctx, s.scope.current()) }

func (s *TrainingPrograms) Get(ctx context.Context, id int64) (model.TrainingProgram, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.TrainingProgram, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *TrainingPrograms) Create(ctx context.Context, program model.TrainingProgram) (model.TrainingProgram, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	program.UserID = userID
	if err := program.Validate(); err != nil {
		return model.TrainingProgram{}, err
	}
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.TrainingProgram, error) {
		return s.api.Create(ctx, userID, program)
	})
}

func (s *TrainingPrograms) Update(ctx context.Context, id int64, program model.TrainingProgram) (model.TrainingProgram, error) {
	if err := program.Validate(); err != nil {
		return model.TrainingProgram{}, err
	}
	return s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.TrainingProgram, error) {
		return s.api.Update(ctx, id, program)
	})
}

func (s *TrainingPrograms) Delete(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

// Copy clones a predefined program into the user's programs.
func (s *TrainingPrograms) Copy(ctx context.Context, predefinedID int64) (model.TrainingProgram, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	return s.Items.Create(ctx, "copy", func(ctx context.Context) (model.TrainingProgram, error) {
		return s.predefined.CopyToUser(ctx, predefinedID, userID)
	})
}

func (s *TrainingPrograms) Close() {
	s.scope.detach()
	s.Items.Close()
	s.scope.wait()
}

var sessionMessages = collection.Messages{
	"fetch":  {Failure: "Грешка при зареждане на сесиите"},
	"create": {Failure: "Грешка при създаване на сесия"},
	"delete": {Failure: "Грешка при изтриване на сесия"},
	"get":    {Failure: "Грешка при зареждане на сесия"},
}

type TrainingSessions struct {
	api   *api.TrainingSessions
	scope userScope
	Items *collection.Collection[model.TrainingSession]
}

func NewTrainingSessions(client *api.TrainingSessions, identity Identity, opts ...Option) *TrainingSessions {
	o := buildOptions(opts)
	return &TrainingSessions{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.TrainingSession]("training_sessions", sessionMessages, o.collection()...),
	}
}

func (s *TrainingSessions) Open(ctx context.Context) { s.scope.start(ctx, s.load) }

func (s *TrainingSessions) load(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Items)
		return
	}
	s.Items.Fetch(ctx, "fetch", func(ctx context.Context) ([]model.TrainingSession, error) {
		return s.api.ByUser(ctx, userID)
	})
}

func (s *TrainingSessions) Fetch(ctx context.Context) { s.load(ctx, s.scope.current()) }

func (s *TrainingSessions) Get(ctx context.Context, id int64) (model.TrainingSession, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.TrainingSession, error) {
		return s.api.Get(ctx, id)
	})
}

func (s *TrainingSessions) Create(ctx context.Context, session model.TrainingSession) (model.TrainingSession, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return model.TrainingSession{}, err
	}
	session.UserID = userID
	if err := session.Validate(); err != nil {
		return model.TrainingSession{}, err
	}
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.TrainingSession, error) {
		return s.api.Create(ctx, userID, session)
	})
}

func (s *TrainingSessions) Delete(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *TrainingSessions) Close() {
	s.scope.detach()
	s.Items.Close()
	s.scope.wait()
}

var progressMessages = collection.Messages{
	"fetch":      {Failure: "Грешка при зареждане на прогреса"},
	"byRange":    {Failure: "Грешка при зареждане на прогреса по период"},
	"byProgram":  {Failure: "Грешка при зареждане на прогреса по програма"},
	"byExercise": {Failure: "Грешка при зареждане на прогреса по упражнение"},
	"create":     {Failure: "Грешка при запазване на прогреса"},
	"update":     {Failure: "Грешка при обновяване на прогреса"},
	"delete":     {Failure: "Грешка при изтриване на прогреса"},
}

// WorkoutProgress is the signed-in user's logged sets.
type WorkoutProgress struct {
	api   *api.WorkoutProgress
	scope userScope
	Items *collection.Collection[model.WorkoutProgress]
}

func NewWorkoutProgress(client *api.WorkoutProgress, identity Identity, opts ...Option) *WorkoutProgress {
	o := buildOptions(opts)
	return &WorkoutProgress{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.WorkoutProgress]("workout_progress", progressMessages, o.collection()...),
	}
}

func (s *WorkoutProgress) Open(ctx context.Context) { s.scope.start(ctx, s.load) }

func (s *WorkoutProgress) load(ctx context.Context, userID int64) {
	if userID <= 0 {
		signedOut(s.Items)
		return
	}
	s.Items.Fetch(ctx, "fetch", func(ctx context.Context) ([]model.WorkoutProgress, error) {
		return s.api.ByUser(ctx, userID)
	})
}

func (s *WorkoutProgress) Fetch(ctx context.Context) { s.load(ctx, s.scope.current()) }

// ByRange narrows Items to start..end inclusive, both YYYY-MM-DD.
func (s *WorkoutProgress) ByRange(ctx context.Context, start, end string) {
	s.query(ctx, "byRange", func(ctx context.Context, userID int64) ([]model.WorkoutProgress, error) {
		return s.api.ByRange(ctx, userID, start, end)
	})
}

func (s *WorkoutProgress) ByProgram(ctx context.Context, programID int64) {
	s.query(ctx, "byProgram", func(ctx context.Context, userID int64) ([]model.WorkoutProgress, error) {
		return s.api.ByProgram(ctx, userID, programID)
	})
}

func (s *WorkoutProgress) ByExercise(ctx context.Context, exerciseID int64) {
	s.query(ctx, "byExercise", func(ctx context.Context, userID int64) ([]model.WorkoutProgress, error) {
		return s.api.ByExercise(ctx, userID, exerciseID)
	})
}

func (s *WorkoutProgress) query(ctx context.Context, op string, fn func(context.Context, int64) ([]model.WorkoutProgress, error)) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return
	}
	s.Items.Query(ctx, op, func(ctx context.Context) ([]model.WorkoutProgress, error) {
		return fn(ctx, userID)
	})
}

// Log records a completed exercise for the signed-in user.
func (s *WorkoutProgress) Log(ctx context.Context, p model.WorkoutProgress) (model.WorkoutProgress, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return model.WorkoutProgress{}, err
	}
	p.UserID = userID
	if err := p.Validate(); err != nil {
		return model.WorkoutProgress{}, err
	}
	return s.Items.Create(ctx, "create", func(ctx context.Context) (model.WorkoutProgress, error) {
		return s.api.Create(ctx, p)
	})
}

func (s *WorkoutProgress) Update(ctx context.Context, id int64, p model.WorkoutProgress) (model.WorkoutProgress, error) {
	if err := p.Validate(); err != nil {
		return model.WorkoutProgress{}, err
	}
	return s.Items.Update(ctx, "update", id, func(ctx context.Context) (model.WorkoutProgress, error) {
		return s.api.Update(ctx, id, p)
	})
}

func (s *WorkoutProgress) Delete(ctx context.Context, id int64) error {
	return s.Items.Delete(ctx, "delete", id, func(ctx context.Context) error {
		return s.api.Delete(ctx, id)
	})
}

func (s *WorkoutProgress) Close() {
	s.scope.detach()
	s.Items.Close()
	s.scope.wait()
}

var predefinedMessages = collection.Messages{
	"fetch": {Forbidden: "Нямате права за достъп до готовите програми", Failure: "Грешка при зареждане на готовите програми"},
	"byGoal": {
		Forbidden: "Нямате права за достъп до готовите програми",
		Failure:   "Грешка при зареждане на готовите програми по цел",
	},
	"byDifficulty": {
		Forbidden: "Нямате права за достъп до готовите програми",
		Failure:   "Грешка при зареждане на готовите програми по трудност",
	},
	"get":  {Forbidden: "Нямате права за достъп до програмата", Failure: "Грешка при зареждане на програма"},
	"copy": {Forbidden: "Нямате права за копиране на програми", Failure: "Грешка при копиране на програма"},
}

// PredefinedPrograms is the read-only catalog of ready-made programs.
type PredefinedPrograms struct {
	api   *api.PredefinedPrograms
	scope userScope
	Items *collection.Collection[model.PredefinedProgram]
}

func NewPredefinedPrograms(client *api.PredefinedPrograms, identity Identity, opts ...Option) *PredefinedPrograms {
	o := buildOptions(opts)
	return &PredefinedPrograms{
		api:   client,
		scope: userScope{identity: identity},
		Items: collection.New[model.PredefinedProgram]("predefined_programs", predefinedMessages, o.collection()...),
	}
}

func (s *PredefinedPrograms) Open(ctx context.Context) { s.Fetch(ctx) }

func (s *PredefinedPrograms) Fetch(ctx context.Context) {
	s.Items.Fetch(ctx, "fetch", s.api.List)
}

func (s *PredefinedPrograms) ByGoal(ctx context.Context, goal model.ProgramGoal) {
	s.Items.Query(ctx, "byGoal", func(ctx context.Context) ([]model.PredefinedProgram, error) {
		return s.api.ByGoal(ctx, goal)
	})
}

func (s *PredefinedPrograms) ByDifficulty(ctx context.Context, level model.DifficultyLevel) {
	s.Items.Query(ctx, "byDifficulty", func(ctx context.Context) ([]model.PredefinedProgram, error) {
		return s.api.ByDifficulty(ctx, level)
	})
}

func (s *PredefinedPrograms) Get(ctx context.Context, id int64) (model.PredefinedProgram, error) {
	return s.Items.Get(ctx, "get", func(ctx context.Context) (model.PredefinedProgram, error) {
		return s.api.Get(ctx, id)
	})
}

// Copy clones program id into the signed-in user's training programs. The
// catalog itself is unchanged.
func (s *PredefinedPrograms) Copy(ctx context.Context, id int64) (model.TrainingProgram, error) {
	userID, err := s.scope.require(s.Items)
	if err != nil {
		return model.TrainingProgram{}, err
	}
	return collection.Run(s.Items, ctx, "copy", func(ctx context.Context) (model.TrainingProgram, error) {
		return s.api.CopyToUser(ctx, id, userID)
	})
}

func (s *PredefinedPrograms) Close() { s.Items.Close() }
