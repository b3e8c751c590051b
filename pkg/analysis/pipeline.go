// Package analysis computes summary statistics over the tender pipeline,
// shown as the footer of the opportunities list and feeding the SVG
// chart export.
package analysis

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// PipelineSummary aggregates the visible pipeline.
type PipelineSummary struct {
	Count           int
	TotalRevenue    float64
	WeightedRevenue float64 // sum of revenue_i * probability_i / 100
	MeanProbability float64
	StageCounts     map[model.Stage]int
}

// Summarize computes pipeline stats over the given opportunities,
// typically the currently filtered set. An empty input yields zeroes.
func Summarize(opps []model.Opportunity) PipelineSummary {
	s := PipelineSummary{
		Count:       len(opps),
		StageCounts: make(map[model.Stage]int, len(model.Stages)),
	}
	if len(opps) == 0 {
		return s
	}

	revenues := make([]float64, len(opps))
	weighted := make([]float64, len(opps))
	probs := make([]float64, len(opps))
	for i, o := range opps {
		revenues[i] = o.ExpectedRevenue
		probs[i] = float64(o.Probability)
		weighted[i] = o.ExpectedRevenue * float64(o.Probability) / 100

		if stage, ok := model.ParseStage(string(o.Stage)); ok {
			s.StageCounts[stage]++
		}
	}

	s.TotalRevenue = floats.Sum(revenues)
	s.WeightedRevenue = floats.Sum(weighted)
	s.MeanProbability = stat.Mean(probs, nil)
	return s
}
