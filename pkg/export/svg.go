// Package export renders pipeline data to shareable artifacts. The one
// current target is a stage-distribution SVG bar chart.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"

	"github.com/srivarthinivelu/tender-poc/pkg/analysis"
	"github.com/srivarthinivelu/tender-poc/pkg/model"
)

// Chart geometry.
const (
	chartWidth  = 640
	barHeight   = 28
	barGap      = 10
	leftMargin  = 130
	topMargin   = 60
	rightPad    = 60
	labelOffset = 8
)

var stageFills = map[model.Stage]string{
	model.StageQualification: "#8be9fd",
	model.StageProposal:      "#bd93f9",
	model.StageNegotiation:   "#ffb86c",
	model.StageSubmitted:     "#50fa7b",
	model.StageClosedWon:     "#69ff94",
	model.StageClosedLost:    "#ff5555",
}

// WriteStageChart renders a horizontal bar chart of per-stage record
// counts for the given pipeline summary.
func WriteStageChart(w io.Writer, summary analysis.PipelineSummary, title string) {
	height := topMargin + len(model.Stages)*(barHeight+barGap) + barGap

	maxCount := 1
	for _, n := range summary.StageCounts {
		if n > maxCount {
			maxCount = n
		}
	}
	barSpan := chartWidth - leftMargin - rightPad

	canvas := svg.New(w)
	canvas.Start(chartWidth, height)
	canvas.Rect(0, 0, chartWidth, height, "fill:#282a36")

	if title == "" {
		title = "Pipeline by stage"
	}
	canvas.Text(leftMargin, 28, title, "font-family:sans-serif;font-size:16px;fill:#f8f8f2")
	canvas.Text(leftMargin, 46,
		fmt.Sprintf("%d opportunities • weighted %s", summary.Count, formatMoney(summary.WeightedRevenue)),
		"font-family:sans-serif;font-size:11px;fill:#6272a4")

	y := topMargin
	for _, stage := range model.Stages {
		n := summary.StageCounts[stage]
		width := barSpan * n / maxCount

		canvas.Text(leftMargin-labelOffset, y+barHeight/2+4, string(stage),
			"font-family:sans-serif;font-size:12px;fill:#f8f8f2;text-anchor:end")
		if width > 0 {
			canvas.Rect(leftMargin, y, width, barHeight, fmt.Sprintf("fill:%s", stageFills[stage]))
		}
		canvas.Text(leftMargin+width+labelOffset, y+barHeight/2+4, fmt.Sprintf("%d", n),
			"font-family:sans-serif;font-size:12px;fill:#f8f8f2")

		y += barHeight + barGap
	}

	canvas.End()
}

// StageChartFile writes the stage chart to the given path, creating
// parent directories as needed.
func StageChartFile(path string, summary analysis.PipelineSummary, title string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	WriteStageChart(f, summary, title)
	return nil
}

// formatMoney renders v as "$1,234.56".
func formatMoney(v float64) string {
	if v < 0 {
		return "-" + formatMoney(-v)
	}
	whole := int64(v)
	frac := int64((v-float64(whole))*100 + 0.5)
	if frac >= 100 {
		whole++
		frac -= 100
	}

	s := fmt.Sprintf("%d", whole)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return fmt.Sprintf("$%s.%02d", out, frac)
}
