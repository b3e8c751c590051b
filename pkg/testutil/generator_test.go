package testutil

import (
	"testing"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(DefaultGeneratorConfig()).Opportunities(20)
	b := NewGenerator(DefaultGeneratorConfig()).Opportunities(20)

	AssertJSONEqual(t, a, b)
}

func TestGeneratorIDs(t *testing.T) {
	cfg := DefaultGeneratorConfig()
	cfg.IDStart = 5
	opps := NewGenerator(cfg).Opportunities(3)

	want := []string{"OPP-0005", "OPP-0006", "OPP-0007"}
	for i, o := range opps {
		if o.ID != want[i] {
			t.Errorf("id[%d] = %q, want %q", i, o.ID, want[i])
		}
		if err := o.Validate(); err != nil {
			t.Errorf("generated record invalid: %v", err)
		}
	}
}

func TestGeneratorPipeline(t *testing.T) {
	doc := NewGenerator(DefaultGeneratorConfig()).Pipeline(map[model.Stage]int{
		model.StageProposal:  3,
		model.StageSubmitted: 2,
	})

	AssertOpportunityCount(t, doc, 5)
	AssertNoDuplicateIDs(t, doc)

	counts := make(map[model.Stage]int)
	for _, o := range doc.Opportunities {
		counts[o.Stage]++
	}
	if counts[model.StageProposal] != 3 || counts[model.StageSubmitted] != 2 {
		t.Errorf("stage counts = %v", counts)
	}
}
