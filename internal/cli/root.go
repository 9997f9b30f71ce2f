package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/courseadvisor/internal/catalog"
	"github.com/alexanderramin/courseadvisor/internal/config"
	"github.com/alexanderramin/courseadvisor/internal/db"
	"github.com/alexanderramin/courseadvisor/internal/repository"
	"github.com/alexanderramin/courseadvisor/internal/resolver"
	"github.com/alexanderramin/courseadvisor/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds everything the commands use. main fills it through Open once
// cobra has parsed the --env flag; tests wire the fields directly.
type App struct {
	Config    *config.App
	Catalog   *catalog.Catalog
	Resolver  *resolver.Resolver
	Schedules *service.ScheduleService
	Logs      repository.DialogueLogRepo
	UoW       db.UnitOfWork
	Logger    zerolog.Logger
	// Postgres is nil unless a URL is configured.
	Postgres *pgxpool.Pool

	// IsInteractive reports whether chat may take over the terminal.
	IsInteractive func() bool
	// Open loads configuration from envFile and wires the fields above.
	Open func(ctx context.Context, app *App, envFile string) error

	closers []func() error
}

// OnClose registers fn to run when the command finishes.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close runs the registered closers in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) ready() bool { return a.Config != nil }

// NewRootCmd creates the top-level "courseadvisor" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:          "courseadvisor",
		Short:        "Plan a study schedule by talking to a course advisor",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.ready() {
				return nil
			}
			if app.Open == nil {
				return fmt.Errorf("courseadvisor is not configured")
			}
			return app.Open(commandContext(cmd), app, envFile)
		},
	}
	addEnvFlag(root.PersistentFlags(), &envFile)

	root.AddCommand(
		newChatCmd(app),
		newResolveCmd(app),
		newCatalogCmd(app),
		newCartCmd(app),
		newLogCmd(app),
	)

	return root
}

func addEnvFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVar(target, "env", "", "path to a .env file (defaults to ./.env when present)")
}

func addSessionFlag(fs *pflag.FlagSet, target *string, usage string) {
	fs.StringVar(target, "session", "", usage)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
