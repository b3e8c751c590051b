package store

import (
	"strings"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// StageFilterAll is the sentinel meaning "no stage filter".
const StageFilterAll = "All"

// FilterByStage returns the opportunities whose stage matches the given
// value, comparing trimmed and case-folded on both sides. The sentinel
// "all" (any case) or an empty string returns every record in document
// order. The result is a fresh slice; the document is never mutated.
func FilterByStage(doc *model.Document, stage string) []model.Opportunity {
	needle := strings.ToLower(strings.TrimSpace(stage))
	if needle == "" || needle == "all" {
		out := make([]model.Opportunity, len(doc.Opportunities))
		copy(out, doc.Opportunities)
		return out
	}

	var out []model.Opportunity
	for _, o := range doc.Opportunities {
		if strings.ToLower(strings.TrimSpace(string(o.Stage))) == needle {
			out = append(out, o)
		}
	}
	return out
}
