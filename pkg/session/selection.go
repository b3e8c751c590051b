package session

// Outcome is the result of reconciling a submitted set of checkbox flags
// into a single logical selection.
type Outcome struct {
	// SelectedID is the winning record id; empty when the selection
	// cleared.
	SelectedID string
	// Refresh is true when the forced reduction changed flags the user
	// would visually see, so the view must re-render from the new state.
	Refresh bool
	// Flags is the reduced flag set: at most one id checked.
	Flags map[string]bool
}

// Reconcile collapses a multi-checkbox submission into single-select
// semantics. visible fixes the iteration order; prev and submitted carry
// one flag per visible id.
//
// Precedence:
//  1. Any id newly checked in this submission wins; with several, the
//     last in visible order wins (true click order is unobservable in a
//     whole-set resubmission, so iteration order is the deterministic
//     stand-in). All others are forced unchecked and a refresh is needed.
//  2. Exactly one id checked: it is the selection, no refresh.
//  3. Zero ids checked: selection cleared, no refresh.
//  4. Multiple checked with none newly transitioned (stale state, e.g.
//     after a filter change): last checked in visible order wins, rest
//     forced unchecked, refresh needed.
func Reconcile(visible []string, prev, submitted map[string]bool) Outcome {
	winnerOnly := func(winner string) map[string]bool {
		flags := make(map[string]bool, len(visible))
		for _, id := range visible {
			flags[id] = id == winner
		}
		return flags
	}

	newlyChecked := ""
	for _, id := range visible {
		if submitted[id] && !prev[id] {
			newlyChecked = id
		}
	}
	if newlyChecked != "" {
		return Outcome{SelectedID: newlyChecked, Refresh: true, Flags: winnerOnly(newlyChecked)}
	}

	var checked []string
	for _, id := range visible {
		if submitted[id] {
			checked = append(checked, id)
		}
	}

	switch len(checked) {
	case 0:
		return Outcome{Flags: winnerOnly("")}
	case 1:
		return Outcome{SelectedID: checked[0], Flags: winnerOnly(checked[0])}
	default:
		last := checked[len(checked)-1]
		return Outcome{SelectedID: last, Refresh: true, Flags: winnerOnly(last)}
	}
}

// SyncSelection rescopes the selection map to the currently listed ids:
// stale ids from a previous view are dropped and new ids default to
// checked only when they match the current record.
func (s *Session) SyncSelection(visible []string) {
	if s.Selection == nil {
		s.Selection = make(map[string]bool, len(visible))
	}
	keep := make(map[string]bool, len(visible))
	for _, id := range visible {
		keep[id] = true
	}
	for id := range s.Selection {
		if !keep[id] {
			delete(s.Selection, id)
		}
	}
	for _, id := range visible {
		if _, ok := s.Selection[id]; !ok {
			s.Selection[id] = id == s.CurrentID
		}
	}
}

// ApplySelection reconciles a submitted flag set against the session's
// stored flags, adopts the reduced state, and moves the current record
// pointer to the winner (clearing it when the selection cleared).
func (s *Session) ApplySelection(visible []string, submitted map[string]bool) Outcome {
	out := Reconcile(visible, s.Selection, submitted)
	s.Selection = out.Flags
	s.CurrentID = out.SelectedID
	return out
}
