// Package chart prepares the dual-axis rendering payload from a pipeline
// result. It computes series data and axis ranges only; drawing belongs to
// whichever renderer consumes the payload (the served page or a terminal
// view).
package chart

import (
	"strings"

	"github.com/halfmoonliu/SaturationApp/internal/pipeline"
)

// Series is one plottable sequence sharing the interview-number x-axis.
type Series struct {
	Name string    `json:"name"`
	Kind string    `json:"kind"` // "line" or "bar"
	Axis string    `json:"axis"` // "left" or "right"
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// Payload is the complete chart description handed to a renderer.
type Payload struct {
	Title      string  `json:"title"`
	XAxisTitle string  `json:"xAxisTitle"`
	LeftTitle  string  `json:"leftTitle"`
	RightTitle string  `json:"rightTitle"`
	Cumulative Series  `json:"cumulative"`
	PerRow     Series  `json:"perRow"`
	YMax       float64 `json:"yMax"`
}

// axisPadding is the headroom added above the tallest point so the two
// forced-equal axes never clip a marker.
const axisPadding = 1.1

// Build produces the payload for a pipeline result. Both y-axes share the
// range [0, 1.1 x max(both series)] so slope and height comparisons between
// the cumulative line and the per-interview bars are not distorted by
// independent auto-scaling.
func Build(res *pipeline.Result) Payload {
	recs := res.Dataset.Records
	x := make([]float64, len(recs))
	cumulative := make([]float64, len(recs))
	perRow := make([]float64, len(recs))

	var peak float64
	for i, r := range recs {
		x[i] = r.InterviewNumber
		cumulative[i] = r.CumulativeUnique
		perRow[i] = r.ItemsCollected
		if r.CumulativeUnique > peak {
			peak = r.CumulativeUnique
		}
		if r.ItemsCollected > peak {
			peak = r.ItemsCollected
		}
	}

	label := res.Dataset.Label
	return Payload{
		Title:      "Interview " + titleCase(label) + " Analysis",
		XAxisTitle: "Interview Number",
		LeftTitle:  "Cumulative Unique " + titleCase(label),
		RightTitle: titleCase(label) + " per Interview",
		Cumulative: Series{
			Name: "Cumulative Unique " + titleCase(label),
			Kind: "line",
			Axis: "left",
			X:    x,
			Y:    cumulative,
		},
		PerRow: Series{
			Name: titleCase(label) + " per Interview",
			Kind: "bar",
			Axis: "right",
			X:    x,
			Y:    perRow,
		},
		YMax: peak * axisPadding,
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
