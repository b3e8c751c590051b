package session

import (
	"net/url"
	"strings"
)

// DeepLink is the shareable key-value form of a page plus record id,
// encoded as a URL query string ("id=OPP-0002&page=Opportunity+Detail").
// It is kept in sync with visible state at the end of every pass and
// consumed for one-time hydration at session start.
type DeepLink struct {
	Page string
	ID   string
}

// ParseDeepLink decodes a query-string deep link. A leading "?" is
// tolerated. Malformed input yields a zero DeepLink; hydration treats
// unknown pages and ids as absent, so there is nothing to report.
func ParseDeepLink(raw string) DeepLink {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	if raw == "" {
		return DeepLink{}
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return DeepLink{}
	}
	return DeepLink{Page: vals.Get("page"), ID: vals.Get("id")}
}

// Encode returns the query-string form of the deep link. Keys are
// emitted in sorted order (id before page), so the encoding is stable.
func (d DeepLink) Encode() string {
	v := url.Values{}
	v.Set("page", d.Page)
	v.Set("id", d.ID)
	return v.Encode()
}

// IsZero reports whether the deep link carries no information.
func (d DeepLink) IsZero() bool {
	return d.Page == "" && d.ID == ""
}
