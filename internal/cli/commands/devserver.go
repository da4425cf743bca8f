package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fitnessdump/fitdump/internal/cli/ui"
	"github.com/fitnessdump/fitdump/internal/devserver"
	"github.com/fitnessdump/fitdump/internal/model"
)

// NewDevServerCommand creates the devserver command
func NewDevServerCommand(env *Env) *cobra.Command {
	var (
		addr          string
		seed          bool
		adminUser     string
		adminPassword string
	)

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local in-memory FitnessDump API",
		Long: `Run an in-memory stand-in for the FitnessDump API under /api. Data is lost
when the server stops. --seed loads sample categories, exercises, foods
and recipes; --admin-user creates an administrator account.`,
		Example: `  fitdump devserver --seed --admin-user admin --admin-password secret
  fitdump --api-url http://localhost:8080/api foods list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor := env.flags.noColor
			cfg, logger, err := env.config()
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), ui.ConfigError(err.Error(), noColor))
				return reportedError{err}
			}
			defer func() { _ = logger.Sync() }()

			if addr == "" {
				addr = cfg.DevServer.Addr
			}
			srv, err := devserver.New(devserver.Config{
				Addr:     addr,
				Secret:   cfg.DevServer.Secret,
				TokenTTL: cfg.DevServer.TokenTTL,
				Logger:   logger,
			})
			if err != nil {
				return err
			}
			if seed {
				srv.Seed()
			}
			if adminUser != "" {
				if adminPassword == "" {
					return errors.New("--admin-password is required with --admin-user")
				}
				_, err := srv.AddUser(model.RegisterRequest{
					Username: adminUser,
					Email:    adminUser + "@localhost",
					Password: adminPassword,
				}, model.RoleAdmin)
				if err != nil {
					return fmt.Errorf("failed to create admin user: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			out := cmd.OutOrStdout()
			c := color.New(color.FgGreen, color.Bold)
			if noColor {
				c.DisableColor()
			}
			c.Fprintf(out, "Dev server on http://%s%s\n", addr, devserver.BasePath)
			fmt.Fprintln(out, "Press Ctrl+C to stop")

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down dev server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown", zap.Error(err))
				return err
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default devserver.addr)")
	cmd.Flags().BoolVar(&seed, "seed", false, "load sample data")
	cmd.Flags().StringVar(&adminUser, "admin-user", "", "create an administrator with this username")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password for --admin-user")

	return cmd
}
