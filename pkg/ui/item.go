package ui

import (
	"fmt"
	"strings"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// OpportunityItem wraps model.Opportunity to implement list.Item. Checked
// mirrors the session's selection flag for this record so the delegate can
// render the checkbox column without reaching into session state.
type OpportunityItem struct {
	Opp     model.Opportunity
	Checked bool
}

func (i OpportunityItem) Title() string {
	return i.Opp.Name
}

func (i OpportunityItem) Description() string {
	return fmt.Sprintf("%s %s • %s", i.Opp.ID, i.Opp.Stage, i.Opp.AccountName)
}

func (i OpportunityItem) FilterValue() string {
	var sb strings.Builder
	sb.WriteString(i.Opp.Name)
	sb.WriteString(" ")
	sb.WriteString(i.Opp.ID)
	sb.WriteString(" ")
	sb.WriteString(string(i.Opp.Stage))
	if i.Opp.AccountName != "" {
		sb.WriteString(" ")
		sb.WriteString(i.Opp.AccountName)
	}
	return sb.String()
}
