package store

import (
	"errors"
	"testing"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
	"github.com/srivarthinivelu/tender-poc/pkg/testutil"
)

func TestSubmitTender(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))
	doc.Opportunities[0].LastModifiedBy = "someone else"
	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}

	if err := s.SubmitTender(doc, "OPP-0001", "Tender Desk"); err != nil {
		t.Fatalf("SubmitTender failed: %v", err)
	}

	reloaded := s.Load()
	opp := GetByID(reloaded, "OPP-0001")
	if opp.Stage != model.StageSubmitted {
		t.Errorf("stage = %q, want Submitted", opp.Stage)
	}
	if opp.LastModifiedBy != "Tender Desk" {
		t.Errorf("last_modified_by = %q, want Tender Desk", opp.LastModifiedBy)
	}
}

func TestSubmitTender_Idempotent(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))

	if err := s.SubmitTender(doc, "OPP-0001", ""); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if err := s.SubmitTender(doc, "OPP-0001", ""); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	opp := GetByID(doc, "OPP-0001")
	if opp.Stage != model.StageSubmitted {
		t.Errorf("stage after double submit = %q, want Submitted", opp.Stage)
	}
	if opp.LastModifiedBy != DefaultOperator {
		t.Errorf("empty operator should fall back to %q, got %q", DefaultOperator, opp.LastModifiedBy)
	}
}

func TestSubmitTender_UnknownID(t *testing.T) {
	s := newTestStore(t)
	doc := testutil.Doc(testutil.Opp(1, model.StageProposal))

	err := s.SubmitTender(doc, "OPP-0042", "Tender Desk")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSubmitTender_FromAnyStage(t *testing.T) {
	// No prerequisite validation: any stage submits.
	for _, stage := range model.Stages {
		s := newTestStore(t)
		doc := testutil.Doc(testutil.Opp(1, stage))
		if err := s.SubmitTender(doc, "OPP-0001", "Tender Desk"); err != nil {
			t.Errorf("SubmitTender from %q failed: %v", stage, err)
		}
		if got := GetByID(doc, "OPP-0001").Stage; got != model.StageSubmitted {
			t.Errorf("stage from %q = %q, want Submitted", stage, got)
		}
	}
}
