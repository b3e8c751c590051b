package session

import (
	"testing"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
	"github.com/srivarthinivelu/tender-poc/pkg/testutil"
)

func TestReconcile_NewTransitionLastWins(t *testing.T) {
	visible := []string{"A", "B", "C"}
	prev := map[string]bool{"A": true}
	submitted := map[string]bool{"A": false, "B": true, "C": true}

	out := Reconcile(visible, prev, submitted)

	if out.SelectedID != "C" {
		t.Errorf("selected = %q, want C (last newly-checked in order)", out.SelectedID)
	}
	if !out.Refresh {
		t.Error("forced reduction must signal refresh")
	}
	wantFlags := map[string]bool{"A": false, "B": false, "C": true}
	for id, want := range wantFlags {
		if out.Flags[id] != want {
			t.Errorf("flag[%s] = %v, want %v", id, out.Flags[id], want)
		}
	}
}

func TestReconcile_Unchanged(t *testing.T) {
	visible := []string{"A", "B", "C"}
	prev := map[string]bool{"A": true}
	submitted := map[string]bool{"A": true, "B": false, "C": false}

	out := Reconcile(visible, prev, submitted)

	if out.SelectedID != "A" {
		t.Errorf("selected = %q, want A", out.SelectedID)
	}
	if out.Refresh {
		t.Error("unchanged single selection must not signal refresh")
	}
}

func TestReconcile_ZeroChecked(t *testing.T) {
	visible := []string{"A", "B"}
	prev := map[string]bool{"A": true}
	submitted := map[string]bool{"A": false, "B": false}

	out := Reconcile(visible, prev, submitted)

	if out.SelectedID != "" {
		t.Errorf("selected = %q, want cleared", out.SelectedID)
	}
	if out.Refresh {
		t.Error("clearing must not signal refresh")
	}
	for id, checked := range out.Flags {
		if checked {
			t.Errorf("flag[%s] should be false after clear", id)
		}
	}
}

func TestReconcile_StaleMultiSelection(t *testing.T) {
	// Multiple checked, none newly transitioned: stale state after a
	// filter change. Last checked in order wins, refresh needed.
	visible := []string{"A", "B", "C"}
	prev := map[string]bool{"A": true, "C": true}
	submitted := map[string]bool{"A": true, "B": false, "C": true}

	out := Reconcile(visible, prev, submitted)

	if out.SelectedID != "C" {
		t.Errorf("selected = %q, want C", out.SelectedID)
	}
	if !out.Refresh {
		t.Error("stale multi-selection reduction must signal refresh")
	}
	if out.Flags["A"] || !out.Flags["C"] {
		t.Errorf("flags = %v, want only C checked", out.Flags)
	}
}

func TestReconcile_NewTransitionBeatsExistingChecked(t *testing.T) {
	// B was already checked; A newly checked wins even though B stays
	// checked in the submission.
	visible := []string{"A", "B"}
	prev := map[string]bool{"B": true}
	submitted := map[string]bool{"A": true, "B": true}

	out := Reconcile(visible, prev, submitted)

	if out.SelectedID != "A" {
		t.Errorf("selected = %q, want A (the new transition)", out.SelectedID)
	}
	if !out.Refresh {
		t.Error("expected refresh")
	}
}

func TestSyncSelection(t *testing.T) {
	doc := testutil.Doc(
		testutil.Opp(1, model.StageQualification),
		testutil.Opp(2, model.StageProposal),
		testutil.Opp(3, model.StageProposal),
	)
	s := New(doc) // current id OPP-0001
	s.Selection = map[string]bool{"OPP-0001": true, "STALE-99": true}

	s.SyncSelection([]string{"OPP-0002", "OPP-0003"})

	if _, ok := s.Selection["STALE-99"]; ok {
		t.Error("stale id not pruned")
	}
	if _, ok := s.Selection["OPP-0001"]; ok {
		t.Error("id outside the visible set not pruned")
	}
	if s.Selection["OPP-0002"] || s.Selection["OPP-0003"] {
		t.Error("new ids should default unchecked when not current")
	}

	// New ids matching the current record default to checked.
	s.SyncSelection([]string{"OPP-0001", "OPP-0002", "OPP-0003"})
	if !s.Selection["OPP-0001"] {
		t.Error("current id should default to checked")
	}
}

func TestApplySelection_UpdatesCurrentID(t *testing.T) {
	doc := testutil.Doc(
		testutil.Opp(1, model.StageQualification),
		testutil.Opp(2, model.StageProposal),
	)
	s := New(doc)
	visible := []string{"OPP-0001", "OPP-0002"}
	s.SyncSelection(visible)

	out := s.ApplySelection(visible, map[string]bool{"OPP-0001": true, "OPP-0002": true})
	if out.SelectedID != "OPP-0002" {
		t.Errorf("selected = %q, want OPP-0002", out.SelectedID)
	}
	if s.CurrentID != "OPP-0002" {
		t.Errorf("current id = %q, want OPP-0002", s.CurrentID)
	}

	// Unchecking everything clears the current record.
	out = s.ApplySelection(visible, map[string]bool{"OPP-0001": false, "OPP-0002": false})
	if out.SelectedID != "" || s.CurrentID != "" {
		t.Errorf("expected cleared selection, got %q / %q", out.SelectedID, s.CurrentID)
	}
}
