package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/courseadvisor/internal/catalog"
	"github.com/alexanderramin/courseadvisor/internal/cli"
	"github.com/alexanderramin/courseadvisor/internal/config"
	"github.com/alexanderramin/courseadvisor/internal/db"
	"github.com/alexanderramin/courseadvisor/internal/logx"
	"github.com/alexanderramin/courseadvisor/internal/postgres"
	"github.com/alexanderramin/courseadvisor/internal/repository"
	"github.com/alexanderramin/courseadvisor/internal/resolver"
	"github.com/alexanderramin/courseadvisor/internal/service"
	"github.com/rs/zerolog"
)

const logFileName = "courseadvisor.log"

// open loads configuration and wires the stores, catalog and resolver into
// app. Everything opened here is closed by app.Close.
func open(ctx context.Context, app *cli.App, envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	out, err := logOutput(cfg)
	if err != nil {
		return err
	}
	if c, ok := out.(io.Closer); ok && out != os.Stderr {
		app.OnClose(c.Close)
	}
	logCfg := cfg.LogConfig()
	logCfg.Output = out
	logger := logx.Init(logCfg)

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	app.OnClose(database.Close)

	// A catalog that fails to load leaves the advisor running with nothing
	// to resolve against.
	cat, err := catalog.Load(cfg.CatalogPath)
	var loadErr *catalog.LoadError
	if errors.As(err, &loadErr) {
		logger.Error().Err(err).Str("source", loadErr.Source).Msg("catalog load failed")
	} else if err != nil {
		return err
	}
	logger.Info().Int("courses", cat.Len()).Int("skipped", len(cat.Skipped())).Msg("catalog loaded")

	rcfg := resolver.DefaultConfig()
	rcfg.MinCodeLength = cfg.MinCodeLength
	rcfg.Threshold = cfg.NameThreshold
	res := resolver.New(cat, rcfg, resolver.WithObserver(resolver.NewLogObserver(logger)))

	uow := db.NewSQLiteUnitOfWork(database)
	observer := service.NewLogUseCaseObserver(logger)

	app.Config = cfg
	app.Catalog = cat
	app.Resolver = res
	app.Schedules = service.NewScheduleService(
		repository.NewSQLiteScheduleRepo(database),
		repository.NewSQLiteFilterRepo(database),
		uow, observer)
	app.Logs = repository.NewSQLiteDialogueLogRepo(database)
	app.UoW = uow
	app.Logger = logger

	if cfg.PostgresURL != "" {
		connectPostgres(ctx, app, cfg.PostgresURL, logger)
	}
	return nil
}

// logOutput is LogFile, "-" for stderr, or courseadvisor.log next to the
// database when unset so the chat screen stays clean.
func logOutput(cfg *config.App) (io.Writer, error) {
	path := cfg.LogFile
	switch path {
	case "-":
		return os.Stderr, nil
	case "":
		path = filepath.Join(cfg.DataDir(), logFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// connectPostgres enables the postgres mirror. The mirror is optional, so a
// failure only disables it.
func connectPostgres(ctx context.Context, app *cli.App, url string, logger zerolog.Logger) {
	pool, err := postgres.Connect(ctx, url)
	if err != nil {
		logger.Warn().Err(err).Msg("postgres mirror disabled")
		return
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		logger.Warn().Err(err).Msg("postgres mirror disabled")
		return
	}
	app.Postgres = pool
	app.OnClose(func() error {
		pool.Close()
		return nil
	})
}
