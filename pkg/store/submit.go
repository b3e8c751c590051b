package store

import (
	"fmt"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// DefaultOperator is the label recorded as last_modified_by when no
// operator is configured.
const DefaultOperator = "Tender Desk"

// SubmitTender moves the named opportunity to the Submitted stage, stamps
// last_modified_by with the operator label, and persists. The transition
// is valid from any stage and idempotent in effect: submitting twice
// leaves the same end state.
func (s *Store) SubmitTender(doc *model.Document, id, operator string) error {
	opp := GetByID(doc, id)
	if opp == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if operator == "" {
		operator = DefaultOperator
	}
	opp.Stage = model.StageSubmitted
	opp.LastModifiedBy = operator
	return s.Save(doc)
}
