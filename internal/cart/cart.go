// Package cart holds the user's in-progress course selection and its undo
// history.
package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/catalog"
	"github.com/alexanderramin/courseadvisor/internal/domain"
)

// DefaultUndoDepth is how many cart snapshots are kept for undo.
const DefaultUndoDepth = 10

var (
	ErrAlreadyPresent = errors.New("course already in cart")
	ErrNotInCart      = errors.New("course not in cart")
	ErrNothingToUndo  = errors.New("nothing to undo")
)

// Cart is an ordered set of scheduled courses keyed by course code. Every
// mutating operation that is not rejected pushes a snapshot onto the undo
// stack first. A Cart is not safe for concurrent use; the dialogue runtime
// processes one turn at a time.
type Cart struct {
	items   []domain.ScheduledCourse
	history *UndoStack[[]domain.ScheduledCourse]
}

// New creates an empty cart keeping up to undoDepth snapshots. A depth
// below one uses DefaultUndoDepth.
func New(undoDepth int) *Cart {
	if undoDepth <= 0 {
		undoDepth = DefaultUndoDepth
	}
	return &Cart{history: NewUndoStack(undoDepth, cloneItems)}
}

// Add schedules rec under period p. Adding a code that is already in the
// cart returns ErrAlreadyPresent and leaves the cart and history untouched.
func (c *Cart) Add(rec domain.CourseRecord, p domain.Period) (domain.ScheduledCourse, error) {
	if existing, ok := c.byCode(rec.Code); ok {
		return c.items[existing], fmt.Errorf("%s: %w", rec.Code, ErrAlreadyPresent)
	}
	sc := domain.Schedule(rec, p)
	c.snapshot()
	c.items = append(c.items, sc)
	return sc, nil
}

// Remove deletes the entry with the given code.
func (c *Cart) Remove(code string) (domain.ScheduledCourse, error) {
	i, ok := c.byCode(code)
	if !ok {
		return domain.ScheduledCourse{}, fmt.Errorf("%s: %w", code, ErrNotInCart)
	}
	removed := c.items[i]
	c.snapshot()
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return removed, nil
}

// ClearPeriod removes every entry scheduled in p and returns how many were
// removed. The cart is snapshotted even when the period is already empty, so
// the next undo reverts this clear and not the change before it.
func (c *Cart) ClearPeriod(p domain.Period) int {
	c.snapshot()
	kept := make([]domain.ScheduledCourse, 0, len(c.items))
	for _, it := range c.items {
		if it.Period != p {
			kept = append(kept, it)
		}
	}
	removed := len(c.items) - len(kept)
	c.items = kept
	return removed
}

// ClearAll empties the cart and returns how many entries were removed. Like
// ClearPeriod it always records a snapshot.
func (c *Cart) ClearAll() int {
	c.snapshot()
	removed := len(c.items)
	c.items = nil
	return removed
}

// Undo restores the cart to the most recent snapshot.
func (c *Cart) Undo() error {
	prev, ok := c.history.Pop()
	if !ok {
		return ErrNothingToUndo
	}
	c.items = prev
	return nil
}

// Restore replaces the contents without recording history. It seeds a cart
// from a saved schedule. Duplicate codes after the first are dropped.
func (c *Cart) Restore(items []domain.ScheduledCourse) {
	c.items = nil
	for _, it := range items {
		if _, dup := c.byCode(it.Code); dup {
			continue
		}
		c.items = append(c.items, it)
	}
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []domain.ScheduledCourse {
	return cloneItems(c.items)
}

func (c *Cart) Len() int { return len(c.items) }

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c *Cart) Contains(code string) bool {
	_, ok := c.byCode(code)
	return ok
}

// Find looks an entry up by code or name, ignoring case. Codes also match
// with spacing and punctuation removed.
func (c *Cart) Find(query string) (domain.ScheduledCourse, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.ScheduledCourse{}, false
	}
	for _, it := range c.items {
		if strings.EqualFold(it.Code, q) || strings.EqualFold(it.Name, q) {
			return it, true
		}
	}
	if i, ok := c.byCode(q); ok {
		return c.items[i], true
	}
	return domain.ScheduledCourse{}, false
}

// CreditsIn sums the credits of entries scheduled in p.
func (c *Cart) CreditsIn(p domain.Period) float64 {
	var sum float64
	for _, it := range c.items {
		if it.Period == p {
			sum += it.Credits
		}
	}
	return sum
}

func (c *Cart) TotalCredits() float64 {
	var sum float64
	for _, it := range c.items {
		sum += it.Credits
	}
	return sum
}

// Codes lists entry codes in order.
func (c *Cart) Codes() []string {
	out := make([]string, len(c.items))
	for i, it := range c.items {
		out[i] = it.Code
	}
	return out
}

// UndoDepth reports how many snapshots are available to undo.
func (c *Cart) UndoDepth() int { return c.history.Len() }

func (c *Cart) snapshot() {
	c.history.Push(c.items)
}

func (c *Cart) byCode(code string) (int, bool) {
	key := catalog.Normalize(code)
	if key == "" {
		return 0, false
	}
	for i, it := range c.items {
		if catalog.Normalize(it.Code) == key {
			return i, true
		}
	}
	return 0, false
}

func cloneItems(items []domain.ScheduledCourse) []domain.ScheduledCourse {
	if items == nil {
		return nil
	}
	return append([]domain.ScheduledCourse(nil), items...)
}
