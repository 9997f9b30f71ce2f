// Package export writes the cart and filter snapshots as JSON files that a
// course listing display polls.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/courseadvisor/internal/dialogue"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

const (
	ScheduleFile = "my_schedule.json"
	FiltersFile  = "filter_criteria.json"
)

var _ dialogue.Sink = (*DisplaySink)(nil)

// DisplaySink mirrors every snapshot into Dir. Files are replaced atomically
// so a reader never sees a half-written document.
type DisplaySink struct {
	Dir string
}

func NewDisplaySink(dir string) (*DisplaySink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating display dir: %w", err)
	}
	return &DisplaySink{Dir: dir}, nil
}

func (s *DisplaySink) PersistCart(_ context.Context, items []domain.ScheduledCourse) error {
	if items == nil {
		items = []domain.ScheduledCourse{}
	}
	return s.write(ScheduleFile, items)
}

func (s *DisplaySink) PersistFilters(_ context.Context, f domain.FilterState) error {
	return s.write(FiltersFile, f)
}

// ReadSchedule loads the last schedule written to dir.
func ReadSchedule(dir string) ([]domain.ScheduledCourse, error) {
	var items []domain.ScheduledCourse
	if err := read(filepath.Join(dir, ScheduleFile), &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ReadFilters loads the last filter state written to dir.
func ReadFilters(dir string) (domain.FilterState, error) {
	var f domain.FilterState
	err := read(filepath.Join(dir, FiltersFile), &f)
	return f, err
}

func (s *DisplaySink) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.Dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

func read(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return nil
}
