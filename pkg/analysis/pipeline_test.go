package analysis

import (
	"math"
	"testing"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
	"github.com/srivarthinivelu/tender-poc/pkg/testutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	if s.Count != 0 || s.TotalRevenue != 0 || s.WeightedRevenue != 0 || s.MeanProbability != 0 {
		t.Errorf("empty pipeline should be all zeroes: %+v", s)
	}
}

func TestSummarize(t *testing.T) {
	opps := []model.Opportunity{
		{ID: "OPP-0001", ExpectedRevenue: 1000, Probability: 50, Stage: model.StageProposal},
		{ID: "OPP-0002", ExpectedRevenue: 2000, Probability: 25, Stage: model.StageProposal},
		{ID: "OPP-0003", ExpectedRevenue: 400, Probability: 100, Stage: model.StageSubmitted},
	}

	s := Summarize(opps)

	if s.Count != 3 {
		t.Errorf("count = %d", s.Count)
	}
	if !almostEqual(s.TotalRevenue, 3400) {
		t.Errorf("total revenue = %f, want 3400", s.TotalRevenue)
	}
	// 1000*0.5 + 2000*0.25 + 400*1.0 = 1400
	if !almostEqual(s.WeightedRevenue, 1400) {
		t.Errorf("weighted revenue = %f, want 1400", s.WeightedRevenue)
	}
	if !almostEqual(s.MeanProbability, (50+25+100)/3.0) {
		t.Errorf("mean probability = %f", s.MeanProbability)
	}
	if s.StageCounts[model.StageProposal] != 2 || s.StageCounts[model.StageSubmitted] != 1 {
		t.Errorf("stage counts = %v", s.StageCounts)
	}
}

func TestSummarize_GeneratedPipeline(t *testing.T) {
	doc := testutil.NewGenerator(testutil.DefaultGeneratorConfig()).Pipeline(map[model.Stage]int{
		model.StageQualification: 4,
		model.StageProposal:      3,
		model.StageClosedWon:     1,
	})

	s := Summarize(doc.Opportunities)

	if s.Count != 8 {
		t.Errorf("count = %d", s.Count)
	}
	if s.StageCounts[model.StageQualification] != 4 ||
		s.StageCounts[model.StageProposal] != 3 ||
		s.StageCounts[model.StageClosedWon] != 1 {
		t.Errorf("stage counts = %v", s.StageCounts)
	}
	// Probabilities are capped at 100, so the weighted sum cannot exceed
	// the plain total.
	if s.WeightedRevenue > s.TotalRevenue {
		t.Errorf("weighted %f exceeds total %f", s.WeightedRevenue, s.TotalRevenue)
	}
}

func TestSummarize_WhitespaceStageCounted(t *testing.T) {
	doc := testutil.Doc(testutil.Opp(1, "  Proposal "))
	s := Summarize(doc.Opportunities)
	if s.StageCounts[model.StageProposal] != 1 {
		t.Errorf("whitespace-padded stage not counted: %v", s.StageCounts)
	}
}
