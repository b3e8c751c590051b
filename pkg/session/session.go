package session

import (
	"github.com/srivarthinivelu/tender-poc/pkg/debug"
	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// Session is the explicit session-context object passed to every
// operation. All fields are process-local and rebuilt from the deep link
// plus the document at session start.
type Session struct {
	// Page is the currently shown page.
	Page Page
	// CurrentID is the id of the current record, empty when none.
	CurrentID string
	// History is the stack of visited pages, never holding consecutive
	// duplicates. The last entry is the current page once a pass finishes.
	History []Page

	// Selection maps record id -> checked flag, scoped to the ids
	// currently listed on the Opportunities page.
	Selection map[string]bool

	// intent is the pending navigation intent: at most one page name,
	// consumed at the start of the next pass.
	intent *Page
	// linkConsumed is true once deep-link hydration has run. An explicit
	// intent resets it so the deep link gets one fresh chance to apply.
	linkConsumed bool
}

// New creates a session at its initial state: Opportunities page, current
// record defaulting to the first opportunity when the document has any.
func New(doc *model.Document) *Session {
	s := &Session{
		Page:      PageOpportunities,
		Selection: make(map[string]bool),
	}
	if len(doc.Opportunities) > 0 {
		s.CurrentID = doc.Opportunities[0].ID
	}
	return s
}

// SetIntent records a one-shot instruction to change page on the next
// pass. A later intent in the same pass replaces an earlier one.
func (s *Session) SetIntent(p Page) {
	s.intent = &p
	debug.Log("session: intent set to %q", p)
}

// HasIntent reports whether a pending intent is waiting to be consumed.
func (s *Session) HasIntent() bool {
	return s.intent != nil
}

// BeginPass runs the head of the per-pass algorithm:
//
//  1. Consume any pending intent: it becomes the current page and
//     re-allows deep-link hydration once.
//  2. One-shot deep-link hydration: an id naming an existing record sets
//     the current record; a valid page name sets the current page.
//     Invalid values are silently ignored.
//
// After BeginPass the presentation layer renders the navigation control
// seeded with s.Page, reports any user choice via Navigate, and closes
// the pass with FinishPass.
func (s *Session) BeginPass(doc *model.Document, link DeepLink) {
	if s.intent != nil {
		s.Page = *s.intent
		s.intent = nil
		s.linkConsumed = false
		debug.Log("session: intent consumed, page=%q", s.Page)
	}

	if !s.linkConsumed {
		if link.ID != "" && findOpportunity(doc, link.ID) {
			s.CurrentID = link.ID
		}
		if p, ok := ParsePage(link.Page); ok {
			s.Page = p
		}
		s.linkConsumed = true
	}
}

// Navigate records the page the user picked via the navigation control.
func (s *Session) Navigate(p Page) {
	s.Page = p
}

// FinishPass runs the tail of the per-pass algorithm: the current page is
// appended to the history stack unless it already tops it, and the deep
// link is resynchronized with visible state. The returned link is what
// the presentation layer should surface as shareable.
func (s *Session) FinishPass() DeepLink {
	if n := len(s.History); n == 0 || s.History[n-1] != s.Page {
		s.History = append(s.History, s.Page)
	}
	return s.Link()
}

// Link returns the deep link describing the current visible state.
func (s *Session) Link() DeepLink {
	return DeepLink{Page: string(s.Page), ID: s.CurrentID}
}

// CanGoBack reports whether the back control is enabled: the history
// stack must hold more than one entry.
func (s *Session) CanGoBack() bool {
	return len(s.History) > 1
}

// Back activates the back control: pop the current entry, set the new
// top as a pending intent, and return the deep link for the target so
// the caller can sync it before forcing a fresh pass. A no-op returning
// false when the stack is empty or singleton.
func (s *Session) Back() (DeepLink, bool) {
	if !s.CanGoBack() {
		return DeepLink{}, false
	}
	s.History = s.History[:len(s.History)-1]
	target := s.History[len(s.History)-1]
	s.SetIntent(target)
	return DeepLink{Page: string(target), ID: s.CurrentID}, true
}

func findOpportunity(doc *model.Document, id string) bool {
	for i := range doc.Opportunities {
		if doc.Opportunities[i].ID == id {
			return true
		}
	}
	return false
}
