package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

var (
	ErrNoSource  = errors.New("catalog source not found")
	ErrMalformed = errors.New("catalog source malformed")
)

// LoadError reports a catalog source that could not be read at all. Callers
// still receive a usable empty catalog alongside it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading catalog %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a catalog file. Files ending in .html or .htm are parsed as a
// course listing page; anything else is read as the JSON course export.
// On failure Load returns an empty catalog and a *LoadError, never nil.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Empty(), &LoadError{Source: path, Err: fmt.Errorf("%w: %w", ErrNoSource, err)}
	}
	defer f.Close()

	var cat *Catalog
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		cat, err = LoadHTML(f)
	default:
		cat, err = LoadJSON(f)
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Source = path
		}
		return cat, err
	}
	return cat, nil
}

// LoadJSON builds a catalog from the JSON course export.
func LoadJSON(r io.Reader) (*Catalog, error) {
	entries, err := DecodeEntries(r)
	if err != nil {
		return Empty(), &LoadError{Source: "json", Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	descs := make([]Descriptor, len(entries))
	for i, e := range entries {
		descs[i] = e.Flatten()
	}
	return FromDescriptors(descs), nil
}

// LoadHTML builds a catalog from a course listing page.
func LoadHTML(r io.Reader) (*Catalog, error) {
	descs, err := ParseHTML(r)
	if err != nil {
		return Empty(), &LoadError{Source: "html", Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	return FromDescriptors(descs), nil
}

// FromDescriptors validates and converts descriptors in order. Invalid
// descriptors are skipped, not fatal.
func FromDescriptors(descs []Descriptor) *Catalog {
	c := &Catalog{byCode: make(map[string]int, len(descs))}
	for i, d := range descs {
		if err := ValidateDescriptor(d); err != nil {
			c.skip(i, d.Code, err.Error())
			continue
		}
		c.add(i, d.Record())
	}
	return c
}

// Record converts a validated descriptor.
func (d Descriptor) Record() domain.CourseRecord {
	return domain.CourseRecord{
		Code:    d.Code,
		Name:    d.Title,
		Credits: d.Credits,
		Periods: append([]domain.Period(nil), d.Periods...),
	}
}
