package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fitnessdump/fitdump/internal/api"
	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/collection"
	"github.com/fitnessdump/fitdump/internal/config"
	"github.com/fitnessdump/fitdump/internal/kvstore"
	"github.com/fitnessdump/fitdump/internal/logging"
	"github.com/fitnessdump/fitdump/internal/model"
	"github.com/fitnessdump/fitdump/internal/resource"
	"github.com/fitnessdump/fitdump/internal/savedfoods"
	"github.com/fitnessdump/fitdump/internal/session"
)

type rootFlags struct {
	configFile string
	apiURL     string
	debug      bool
	noColor    bool
}

// Env carries the global flags to the commands that need an App.
type Env struct {
	flags rootFlags
}

// App is everything one command invocation talks to.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    kvstore.Store
	Session  *session.Manager
	API      *api.Services
	Saved    *savedfoods.Store
	Out      io.Writer
	ErrOut   io.Writer
	NoColor  bool
	Spinners bool
}

// config loads the configuration and applies the flag overrides.
func (e *Env) config() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(e.flags.configFile)
	if err != nil {
		return nil, nil, err
	}
	if e.flags.apiURL != "" {
		cfg.API.BaseURL = strings.TrimSuffix(e.flags.apiURL, "/")
	}
	level := cfg.Log.Level
	if e.flags.debug {
		level = "debug"
	}
	logger, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// open builds the App: storage, session and the API client wired to it.
func (e *Env) open(cmd *cobra.Command) (*App, error) {
	ctx := cmd.Context()
	noColor := e.flags.noColor

	cfg, logger, err := e.config()
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), noColor))
		return nil, reportedError{err}
	}

	store, err := kvstore.Open(ctx, cfg.Storage)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), noColor))
		_ = logger.Sync()
		return nil, reportedError{err}
	}

	var mgr *session.Manager
	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger.Named("api")),
		api.WithUserAgent("fitdump/"+Version),
		api.WithCredentials(api.CredentialFunc(func(ctx context.Context) (string, bool) {
			return mgr.Token(ctx)
		})),
		api.WithUnauthorizedHandler(func(ctx context.Context) { mgr.Invalidate(ctx) }),
	)
	services := api.NewServices(client)
	mgr = session.New(store, services.Auth, session.WithLogger(logger.Named("session")))
	if err := mgr.Restore(ctx); err != nil {
		logger.Warn("ignoring stored session", zap.Error(err))
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    store,
		Session:  mgr,
		API:      services,
		Saved:    savedfoods.New(store),
		Out:      cmd.OutOrStdout(),
		ErrOut:   cmd.ErrOrStderr(),
		NoColor:  noColor,
		Spinners: !noColor && isTerminal(cmd.ErrOrStderr()),
	}, nil
}

// run adapts fn to cobra, opening the App before and closing it after.
func (e *Env) run(fn func(cmd *cobra.Command, args []string, app *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := e.open(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(cmd, args, app)
	}
}

func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		a.Logger.Warn("failed to close storage", zap.Error(err))
	}
	_ = a.Logger.Sync()
}

// Options are the resource store options every command uses.
func (a *App) Options() []resource.Option {
	return []resource.Option{resource.WithLogger(a.Logger.Named("resource"))}
}

// Load runs fn behind a spinner when stderr is a terminal.
func (a *App) Load(fn func()) {
	ui.WithSpinner(a.ErrOut, ui.LoadingMessage, a.Spinners, a.NoColor, fn)
}

func (a *App) Success(message string) {
	ui.WriteSuccess(a.Out, message, a.NoColor)
}

// Fail prints err the way the user should read it and returns it marked as
// reported. Failures a store recorded are shown with the store's message.
func (a *App) Fail(err error, recorded string, command string) error {
	if err == nil {
		return nil
	}
	msg := ui.DescribeError(err, command, a.NoColor)
	if recorded != "" && !model.IsValidationFailed(err) && !resource.IsSignInRequired(err) {
		msg = ui.CollectionError(recorded, a.NoColor)
	}
	fmt.Fprint(a.ErrOut, msg)
	return reportedError{err}
}

// UserID is the signed-in user's id, or 0.
func (a *App) UserID() int64 {
	u, ok := a.Session.CurrentUser()
	if !ok {
		return 0
	}
	return u.ID
}

// failed reports the outcome of a mutation on c.
func failed[T collection.Entity](a *App, c *collection.Collection[T], command string, err error) error {
	return a.Fail(err, c.Error(), command)
}

// show renders c and turns a recorded error into a non-zero exit.
func show[T collection.Entity](a *App, c *collection.Collection[T], headers []string, row func(T) []string) error {
	state := c.Snapshot()
	ui.RenderState(a.Out, state, headers, row, a.NoColor)
	if state.Error != "" {
		return reportedError{errors.New(state.Error)}
	}
	return nil
}

// choice parses an enum flag, suggesting close values when it is unknown.
func choice[E ~string](a *App, kind, value string, choices ...E) (E, error) {
	names := make([]string, len(choices))
	for i, c := range choices {
		names[i] = string(c)
	}
	got, ok := ui.MatchChoice(value, names)
	if !ok {
		fmt.Fprint(a.ErrOut, ui.UnknownValueError(kind, value, names, a.NoColor))
		return "", reportedError{fmt.Errorf("unknown %s %q", strings.ToLower(kind), value)}
	}
	return E(got), nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", arg)
	}
	return id, nil
}

func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*10)/10, 'f', -1, 64)
}

func idStr(n int64) string { return strconv.FormatInt(n, 10) }

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
