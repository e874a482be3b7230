// Package export turns filled histograms into durable artifacts: JSON
// documents for downstream analysis and hbook objects for plotting.
package export

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mariajose2398/SIDM/internal/domain/binning"
	"github.com/mariajose2398/SIDM/internal/domain/hist"
)

// AxisDoc describes one axis layout in a serialized histogram.
type AxisDoc struct {
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	Kind       string    `json:"kind"`
	Bins       int       `json:"bins"`
	Edges      []float64 `json:"edges,omitempty"`
	Categories []int     `json:"categories,omitempty"`
}

// Summary carries the weighted moments of a one-dimensional histogram,
// computed over in-range bin centers.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Document is the serialized form of one histogram. The weight arrays
// are row-major over the axes' full bin ranges, overflow included, in
// the same layout the storage uses.
type Document struct {
	Name    string    `json:"name"`
	Axes    []AxisDoc `json:"axes"`
	Shape   []int     `json:"shape"`
	SumW    []float64 `json:"sumw"`
	SumW2   []float64 `json:"sumw2"`
	Counts  []uint64  `json:"counts"`
	Entries uint64    `json:"entries"`
	Total   float64   `json:"total_sumw"`
	Summary *Summary  `json:"summary,omitempty"`
}

func kindName(k binning.Kind) string {
	switch k {
	case binning.Continuous:
		return "continuous"
	case binning.Discrete:
		return "discrete"
	case binning.Category:
		return "category"
	}
	return "unknown"
}

// NewDocument serializes a histogram into a Document.
func NewDocument(h *hist.Histogram) (*Document, error) {
	st := h.Storage()
	specs := st.Specs()

	doc := &Document{
		Name:    h.Name(),
		Axes:    make([]AxisDoc, len(specs)),
		Shape:   st.Shape(),
		Entries: st.Entries(),
	}

	total := 1
	for i, spec := range specs {
		doc.Axes[i] = AxisDoc{
			Name:       spec.Name(),
			Label:      spec.Label(),
			Kind:       kindName(spec.Kind()),
			Bins:       spec.Bins(),
			Edges:      spec.Edges(),
			Categories: spec.Categories(),
		}
		total *= spec.Total()
	}

	doc.SumW = make([]float64, total)
	doc.SumW2 = make([]float64, total)
	doc.Counts = make([]uint64, total)

	idx := make([]int, len(specs))
	for flat := 0; flat < total; flat++ {
		sumw, sumw2, count, err := st.At(idx...)
		if err != nil {
			return nil, err
		}
		doc.SumW[flat] = sumw
		doc.SumW2[flat] = sumw2
		doc.Counts[flat] = count
		advance(idx, specs)
	}

	doc.Total = floats.Sum(doc.SumW)

	if len(specs) == 1 && specs[0].Kind() != binning.Category {
		doc.Summary = summarize(specs[0], doc.SumW)
	}

	return doc, nil
}

// advance steps a row-major multi-index by one, last axis fastest.
func advance(idx []int, specs []binning.Spec) {
	for d := len(idx) - 1; d >= 0; d-- {
		idx[d]++
		if idx[d] < specs[d].Total() {
			return
		}
		idx[d] = 0
	}
}

// summarize computes the weighted mean and standard deviation over the
// in-range bins. Nil when no in-range weight was collected.
func summarize(spec binning.Spec, sumw []float64) *Summary {
	edges := spec.Edges()
	centers := make([]float64, spec.Bins())
	weights := make([]float64, spec.Bins())
	var seen float64
	for i := 0; i < spec.Bins(); i++ {
		centers[i] = (edges[i] + edges[i+1]) / 2
		w := sumw[i]
		if w < 0 {
			w = 0
		}
		weights[i] = w
		seen += w
	}
	if seen == 0 {
		return nil
	}
	mean, std := stat.MeanStdDev(centers, weights)
	if math.IsNaN(std) {
		std = 0
	}
	return &Summary{Mean: mean, StdDev: std}
}
