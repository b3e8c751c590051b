// Package testutil provides shared fixtures and assertions for tender
// document tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// OppID generates a standard test opportunity id with the given index.
// Format: "OPP-0001" style for consistency across tests.
func OppID(index int) string {
	return fmt.Sprintf("OPP-%04d", index)
}

// Opp returns a minimal valid opportunity with the given index and stage.
func Opp(index int, stage model.Stage) model.Opportunity {
	return model.Opportunity{
		ID:              OppID(index),
		Name:            fmt.Sprintf("Tender %d", index),
		AccountName:     fmt.Sprintf("Account %d", index),
		ExpectedRevenue: float64(index) * 1000,
		CloseDate:       "2026-12-31",
		Stage:           stage,
		Probability:     10 * (index % 10),
		CreatedBy:       "Tender Desk",
		LastModifiedBy:  "Tender Desk",
		Products:        []model.Product{},
		Attachments:     []model.Attachment{},
	}
}

// Doc builds a document from the given opportunities.
func Doc(opps ...model.Opportunity) *model.Document {
	d := &model.Document{Opportunities: opps}
	d.Normalize()
	return d
}

// WriteDoc marshals a document to the given path, creating parent
// directories. Used to seed store tests with known on-disk state.
func WriteDoc(t *testing.T, path string, doc *model.Document) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create data directory: %v", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal document: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write document: %v", err)
	}
}

// TempDataPath returns a tenders.json path inside a fresh temp directory.
func TempDataPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "tenders.json")
}

// AssertOpportunityCount verifies the expected number of opportunities.
func AssertOpportunityCount(t *testing.T, doc *model.Document, expected int) {
	t.Helper()
	if len(doc.Opportunities) != expected {
		t.Errorf("expected %d opportunities, got %d", expected, len(doc.Opportunities))
	}
}

// AssertNoDuplicateIDs verifies all opportunity ids are unique.
func AssertNoDuplicateIDs(t *testing.T, doc *model.Document) {
	t.Helper()
	seen := make(map[string]bool)
	for _, o := range doc.Opportunities {
		if seen[o.ID] {
			t.Errorf("duplicate opportunity id: %s", o.ID)
		}
		seen[o.ID] = true
	}
}

// AssertJSONEqual compares two values after JSON round-tripping. Useful
// for comparing documents that may differ in Go representation but have
// equivalent persisted forms.
func AssertJSONEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()

	expectedJSON, err := json.Marshal(expected)
	if err != nil {
		t.Fatalf("failed to marshal expected: %v", err)
	}
	actualJSON, err := json.Marshal(actual)
	if err != nil {
		t.Fatalf("failed to marshal actual: %v", err)
	}
	if string(expectedJSON) != string(actualJSON) {
		t.Errorf("JSON mismatch:\nexpected: %s\nactual:   %s", expectedJSON, actualJSON)
	}
}

// IDs returns the ids of all opportunities in document order.
func IDs(doc *model.Document) []string {
	ids := make([]string, len(doc.Opportunities))
	for i, o := range doc.Opportunities {
		ids[i] = o.ID
	}
	return ids
}
