// Package session holds the per-session state of the tender UI: the
// current page, the navigation history stack, the pending navigation
// intent, deep-link hydration, and the single-selection model over the
// opportunities list.
//
// A Session is created at session start and discarded at session end.
// It is a pure state machine with no rendering dependency; the
// presentation layer drives it through the per-pass protocol
// (BeginPass, Navigate, FinishPass) and Back.
package session

import "strings"

// Page names one of the four UI pages.
type Page string

const (
	PageOpportunities Page = "Opportunities"
	PageNew           Page = "New Opportunity"
	PageDetail        Page = "Opportunity Detail"
	PageSubmit        Page = "Submit Tender"
)

// Pages lists all pages in sidebar order.
var Pages = []Page{PageOpportunities, PageNew, PageDetail, PageSubmit}

// ParsePage matches s against the known page names, trimming whitespace
// and ignoring case. Returns false for anything unrecognized.
func ParsePage(s string) (Page, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Pages {
		if strings.ToLower(string(p)) == needle {
			return p, true
		}
	}
	return "", false
}
