package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/courseadvisor/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplaySink_WritesSchedule(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "display")
	sink, err := NewDisplaySink(dir)
	require.NoError(t, err)

	items := []domain.ScheduledCourse{
		{Code: "DD2424", Name: "Deep Learning, Advanced Course", Credits: 7.5, Period: domain.PeriodP2},
	}
	require.NoError(t, sink.PersistCart(context.Background(), items))

	raw, err := os.ReadFile(filepath.Join(dir, ScheduleFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"code":"DD2424","name":"Deep Learning, Advanced Course","credits":7.5,"period":"P2"}]`, string(raw))

	got, err := ReadSchedule(dir)
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestDisplaySink_EmptyCartIsEmptyArray(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDisplaySink(dir)
	require.NoError(t, err)

	require.NoError(t, sink.PersistCart(context.Background(), nil))

	raw, err := os.ReadFile(filepath.Join(dir, ScheduleFile))
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestDisplaySink_ReplacesFilters(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDisplaySink(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, sink.PersistFilters(ctx, domain.FilterState{Period: "P1", Credits: "7.5"}))
	require.NoError(t, sink.PersistFilters(ctx, domain.FilterState{}))

	raw, err := os.ReadFile(filepath.Join(dir, FiltersFile))
	require.NoError(t, err)
	assert.JSONEq(t, `{"period":"","credits":"","programme":""}`, string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReadSchedule_MissingFile(t *testing.T) {
	_, err := ReadSchedule(t.TempDir())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
