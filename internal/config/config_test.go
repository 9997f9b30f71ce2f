package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetAfter removes keys exported from an env file once the test ends.
func unsetAfter(t *testing.T, keys ...string) {
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/student")

	app, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/home/student/.courseadvisor/courseadvisor.db", app.DBPath)
	assert.Equal(t, "/home/student/.courseadvisor", app.DataDir())
	assert.Equal(t, "data/course_all.json", app.CatalogPath)
	assert.Equal(t, 15.0, app.OverloadThreshold)
	assert.Equal(t, 10, app.UndoDepth)
	assert.Equal(t, 4, app.MinCodeLength)
	assert.Equal(t, 0.6, app.NameThreshold)
	assert.Equal(t, 2*time.Minute, app.WaitTimeout)
	assert.Empty(t, app.DisplayDir)
	assert.Empty(t, app.PostgresURL)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("COURSEADVISOR_OVERLOAD_THRESHOLD", "22.5")
	t.Setenv("COURSEADVISOR_WAIT_TIMEOUT", "30s")
	t.Setenv("COURSEADVISOR_DB_PATH", "/tmp/ca.db")
	t.Setenv("COURSEADVISOR_LOG_DEBUG", "true")

	app, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 22.5, app.OverloadThreshold)
	assert.Equal(t, 30*time.Second, app.WaitTimeout)
	assert.Equal(t, "/tmp/ca.db", app.DBPath)
	assert.True(t, app.LogConfig().Debug)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("COURSEADVISOR_UNDO_DEPTH=3\nCOURSEADVISOR_DISPLAY_DIR=/srv/display\n"), 0o600))
	unsetAfter(t, "COURSEADVISOR_UNDO_DEPTH", "COURSEADVISOR_DISPLAY_DIR")

	app, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3, app.UndoDepth)
	assert.Equal(t, "/srv/display", app.DisplayDir)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	t.Setenv("COURSEADVISOR_NAME_THRESHOLD", "1.5")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NameThreshold")
}

func TestMustNew_PanicsOnBadValue(t *testing.T) {
	t.Setenv("COURSEADVISOR_UNDO_DEPTH", "many")

	assert.Panics(t, func() { MustNew[App](Prefix, "") })
}
