package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/courseadvisor/internal/logx"
	"github.com/go-playground/validator/v10"
)

const Prefix = "COURSEADVISOR"

// App is the configuration of the courseadvisor binary. Each field reads
// COURSEADVISOR_<FIELD_IN_SNAKE_CASE>.
type App struct {
	DBPath      string `split_words:"true" default:"~/.courseadvisor/courseadvisor.db" validate:"required"`
	CatalogPath string `split_words:"true" default:"data/course_all.json" validate:"required"`
	// DisplayDir enables the JSON display files when set.
	DisplayDir  string `split_words:"true"`
	PostgresURL string `split_words:"true"`

	OverloadThreshold float64       `split_words:"true" default:"15" validate:"gt=0"`
	UndoDepth         int           `split_words:"true" default:"10" validate:"gte=1,lte=100"`
	MinCodeLength     int           `split_words:"true" default:"4" validate:"gte=1"`
	NameThreshold     float64       `split_words:"true" default:"0.6" validate:"gt=0,lte=1"`
	WaitTimeout       time.Duration `split_words:"true" default:"2m" validate:"gt=0"`

	LogDebug  bool   `split_words:"true"`
	LogPretty bool   `split_words:"true"`
	LogFile   string `split_words:"true"`
}

// Load reads App from the environment and envFile, expands a leading ~ in
// paths and validates the result.
func Load(envFile string) (*App, error) {
	app, err := New[App](Prefix, envFile)
	if err != nil {
		return nil, err
	}
	if app.DBPath, err = expandHome(app.DBPath); err != nil {
		return nil, err
	}
	if app.LogFile, err = expandHome(app.LogFile); err != nil {
		return nil, err
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}
	return app, nil
}

var validate = validator.New()

func (a *App) Validate() error {
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DataDir is the directory holding the database, and the chat log file
// unless LogFile says otherwise.
func (a *App) DataDir() string {
	return filepath.Dir(a.DBPath)
}

func (a *App) LogConfig() logx.Config {
	return logx.Config{Debug: a.LogDebug, PrettyFormat: a.LogPretty}
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
