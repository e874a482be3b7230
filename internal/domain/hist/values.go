// Package hist implements declarative N-dimensional weighted histograms
// over batches of events. A histogram pairs an ordered list of axes with
// an optional event predicate; filling evaluates every axis's extraction
// function over the batch, aligns the resulting value arrays into flat
// columns of equal length and increments the weighted storage.
package hist

// Shape tags the three forms an extraction function may return.
type Shape int

const (
	// ShapeScalar is one value per event, length = batch size.
	ShapeScalar Shape = iota
	// ShapeRagged is one value per object, outer length = batch size.
	ShapeRagged
	// ShapeSelected is one value per event passing the mask, in event
	// order. Used when the extraction already applied the mask, e.g.
	// "leading object of the passing events".
	ShapeSelected
)

// Values is the raw result of one axis extraction over one batch. The
// alignment engine reconciles the Values of all axes into flat columns.
type Values struct {
	shape   Shape
	scalars []float64
	ragged  [][]float64
}

// Scalars wraps one value per event.
func Scalars(vs []float64) Values {
	return Values{shape: ShapeScalar, scalars: vs}
}

// Ragged wraps one value per object, keeping event boundaries.
func Ragged(vs [][]float64) Values {
	return Values{shape: ShapeRagged, ragged: vs}
}

// Selected wraps one value per passing event. The extraction function
// is responsible for having applied the histogram's own mask, so the
// slice length must equal the mask's passing count.
func Selected(vs []float64) Values {
	return Values{shape: ShapeSelected, scalars: vs}
}

// Shape returns the form of the wrapped values.
func (v Values) Shape() Shape { return v.shape }
