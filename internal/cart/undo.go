package cart

// UndoStack is a bounded LIFO of snapshots. Pushing onto a full stack evicts
// the oldest snapshot. Snapshots are passed through clone on the way in and
// on the way out, so callers can never alias a stored entry.
type UndoStack[S any] struct {
	items []S
	max   int
	clone func(S) S
}

// NewUndoStack creates a stack holding at most max snapshots.
func NewUndoStack[S any](max int, clone func(S) S) *UndoStack[S] {
	if max < 1 {
		max = 1
	}
	return &UndoStack[S]{
		items: make([]S, 0, max),
		max:   max,
		clone: clone,
	}
}

func (s *UndoStack[S]) Push(state S) {
	if len(s.items) >= s.max {
		copy(s.items, s.items[1:])
		s.items = s.items[:len(s.items)-1]
	}
	s.items = append(s.items, s.clone(state))
}

// Pop removes and returns the most recent snapshot. It returns false when
// the stack is empty.
func (s *UndoStack[S]) Pop() (S, bool) {
	if len(s.items) == 0 {
		var zero S
		return zero, false
	}
	last := s.items[len(s.items)-1]
	var zero S
	s.items[len(s.items)-1] = zero
	s.items = s.items[:len(s.items)-1]
	return s.clone(last), true
}

func (s *UndoStack[S]) Len() int { return len(s.items) }

func (s *UndoStack[S]) Cap() int { return s.max }
