// Package devserver is an in-memory stand-in for the FitnessDump REST API.
// It serves the same paths and error shapes as the real backend so the client
// can be exercised offline and in tests. It stores everything in memory and
// does not implement the backend's planning or nutrition algorithms.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/fitnessdump/fitdump/internal/model"
)

// BasePath is where the API is mounted.
const BasePath = "/api"

type Config struct {
	// Addr is the listen address, e.g. "localhost:8080".
	Addr     string
	Secret   string
	TokenTTL time.Duration
	Logger   *zap.Logger

	// Now is the clock used for tokens and timestamps.
	Now func() time.Time
}

type account struct {
	model.User
	hash []byte
}

type Server struct {
	cfg     Config
	logger  *zap.Logger
	tokens  *issuer
	handler http.Handler
	now     func() time.Time

	users      *table[account]
	categories *table[model.ExerciseCategory]
	exercises  *table[model.Exercise]
	foods      *table[model.Food]
	recipes    *table[model.Recipe]
	diary      *table[model.FoodDiaryEntry]
	progress   *table[model.WorkoutProgress]
	plans      *table[model.DailyPlan]
	mealPlans  *table[model.MealPlan]
	programs   *table[model.TrainingProgram]
	sessions   *table[model.TrainingSession]
	predefined *table[model.PredefinedProgram]
	settings   *table[model.PersonalSettings]
	components *table[model.RecipeIngredient]

	// mealSeq numbers meals inside meal plan days.
	mealSeq atomic.Int64

	signupMu  sync.Mutex
	refreshMu sync.Mutex
	refresh   map[string]int64

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
}

func New(cfg Config) (*Server, error) {
	if cfg.Secret == "" {
		return nil, errors.New("devserver: secret is required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger.Named("devserver"),
		tokens:  &issuer{secret: []byte(cfg.Secret), ttl: cfg.TokenTTL, now: cfg.Now},
		now:     cfg.Now,
		refresh: make(map[string]int64),

		users:      newTable(func(a *account, id int64) { a.ID = id }),
		categories: newTable(func(c *model.ExerciseCategory, id int64) { c.ID = id }),
		exercises:  newTable(func(e *model.Exercise, id int64) { e.ID = id }),
		foods:      newTable(func(f *model.Food, id int64) { f.ID = id }),
		recipes:    newTable(func(r *model.Recipe, id int64) { r.ID = id }),
		diary:      newTable(func(e *model.FoodDiaryEntry, id int64) { e.ID = id }),
		progress:   newTable(func(p *model.WorkoutProgress, id int64) { p.ID = id }),
		plans:      newTable(func(p *model.DailyPlan, id int64) { p.ID = id }),
		mealPlans:  newTable(func(p *model.MealPlan, id int64) { p.ID = id }),
		programs:   newTable(func(p *model.TrainingProgram, id int64) { p.ID = id }),
		sessions:   newTable(func(t *model.TrainingSession, id int64) { t.ID = id }),
		predefined: newTable(func(p *model.PredefinedProgram, id int64) { p.ID = id }),
		settings:   newTable(func(p *model.PersonalSettings, id int64) { p.ID = id }),
		components: newTable(func(i *model.RecipeIngredient, id int64) { i.ID = id }),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the root handler, for httptest or embedding.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.mu.Lock()
	s.httpServer = srv
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Addr returns the bound address once started, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, accessLog(s.logger), recovery(s.logger))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Ресурсът не е намерен")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Методът не е разрешен")
	})

	r.Route(BasePath, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.login)
			r.Post("/register", s.register)
			r.Post("/refresh", s.refreshToken)
			r.Post("/validate", s.validateToken)
			r.Group(func(r chi.Router) {
				r.Use(s.authenticate)
				r.Post("/logout", s.logout)
				r.Put("/profile", s.updateProfile)
				r.Post("/change-password", s.changePassword)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/users/{id}", s.getUser)
			r.Route("/exercise", s.exerciseRoutes)
			r.Route("/exercise-categories", s.categoryRoutes)
			r.Route("/foods", s.foodRoutes)
			r.Route("/recipes", s.recipeRoutes)
			r.Route("/food-diary", s.diaryRoutes)
			r.Route("/workout-progress", s.progressRoutes)
			r.Route("/daily-plans", s.planRoutes)
			r.Route("/meal-plans", s.mealPlanRoutes)
			r.Route("/training-programs", s.programRoutes)
			r.Route("/training-sessions", s.sessionRoutes)
			r.Route("/predefined-programs", s.predefinedRoutes)
			r.Route("/personal-settings", s.settingsRoutes)
			r.Route("/recipe-ingredients", s.ingredientRoutes)
		})
	})
	return r
}
