package flow

import "sort"

// stepSelection holds the per-step selection variant. Exactly one of the
// fields is meaningful, matching the step's kind.
type stepSelection struct {
	multi  map[int]struct{}
	single *int
	text   string
}

// SelectionStore holds the user's current selections keyed by step index.
// Selections survive backward navigation and are destroyed only by Reset.
type SelectionStore struct {
	byStep map[int]*stepSelection
}

// NewSelectionStore returns an empty store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{byStep: make(map[int]*stepSelection)}
}

func (s *SelectionStore) entry(step int) *stepSelection {
	sel, ok := s.byStep[step]
	if !ok {
		sel = &stepSelection{multi: make(map[int]struct{})}
		s.byStep[step] = sel
	}
	return sel
}

// ToggleOption flips option membership for a multi-select step.
func (s *SelectionStore) ToggleOption(step, option int) {
	sel := s.entry(step)
	if _, ok := sel.multi[option]; ok {
		delete(sel.multi, option)
	} else {
		sel.multi[option] = struct{}{}
	}
}

// SetSingle records the choice for a single-select step.
func (s *SelectionStore) SetSingle(step, option int) {
	sel := s.entry(step)
	opt := option
	sel.single = &opt
}

// SetText records the value for a free-text step.
func (s *SelectionStore) SetText(step int, text string) {
	s.entry(step).text = text
}

// Multi returns the selected option indices of a multi-select step in
// ascending order.
func (s *SelectionStore) Multi(step int) []int {
	sel, ok := s.byStep[step]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(sel.multi))
	for i := range sel.multi {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// HasOption reports whether an option is selected on a multi-select step.
func (s *SelectionStore) HasOption(step, option int) bool {
	sel, ok := s.byStep[step]
	if !ok {
		return false
	}
	_, selected := sel.multi[option]
	return selected
}

// Single returns the chosen option of a single-select step, if any.
func (s *SelectionStore) Single(step int) (int, bool) {
	sel, ok := s.byStep[step]
	if !ok || sel.single == nil {
		return 0, false
	}
	return *sel.single, true
}

// Text returns the value of a free-text step.
func (s *SelectionStore) Text(step int) string {
	sel, ok := s.byStep[step]
	if !ok {
		return ""
	}
	return sel.text
}

// Reset discards every selection. Only the explicit "start new" action
// calls this; backward navigation never does.
func (s *SelectionStore) Reset() {
	s.byStep = make(map[int]*stepSelection)
}
