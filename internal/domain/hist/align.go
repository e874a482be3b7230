package hist

import "fmt"

// align reconciles the per-axis raw values into flat columns of equal
// length, one entry per (event, object) pair contributing to the fill,
// plus the matching flat weight vector. mask and weights are per-event;
// a nil weights means unit weight.
//
// Granularity: if every axis is scalar or selected, one entry per
// passing event. If any axis is ragged, one entry per object of the
// passing events, with scalar and selected axes broadcast to each
// event's object count. Ragged axes must agree on per-event counts,
// which holds when they view the same source collection.
func align(values []Values, mask []bool, weights []float64) ([][]float64, []float64, error) {
	n := len(mask)
	passing := make([]int, 0, n)
	for i, ok := range mask {
		if ok {
			passing = append(passing, i)
		}
	}
	p := len(passing)

	if weights != nil && len(weights) != n {
		return nil, nil, fmt.Errorf("%w: %d weights for %d events", ErrWeightLength, len(weights), n)
	}

	// Validate every axis's shape and establish the per-event object
	// counts from the first ragged axis.
	var inner []int
	firstRagged := -1
	for ai, v := range values {
		switch v.shape {
		case ShapeScalar:
			if len(v.scalars) != n {
				return nil, nil, fmt.Errorf("%w: axis %d returned %d values for %d events", ErrShape, ai, len(v.scalars), n)
			}
		case ShapeSelected:
			if len(v.scalars) != p {
				return nil, nil, fmt.Errorf("%w: axis %d returned %d values for %d passing events", ErrShape, ai, len(v.scalars), p)
			}
		case ShapeRagged:
			if len(v.ragged) != n {
				return nil, nil, fmt.Errorf("%w: axis %d returned %d event rows for %d events", ErrShape, ai, len(v.ragged), n)
			}
			if firstRagged < 0 {
				firstRagged = ai
				inner = make([]int, p)
				for k, ei := range passing {
					inner[k] = len(v.ragged[ei])
				}
				continue
			}
			for k, ei := range passing {
				if len(v.ragged[ei]) != inner[k] {
					return nil, nil, fmt.Errorf("%w: event %d carries %d values on axis %d but %d on axis %d",
						ErrRaggedMismatch, ei, inner[k], firstRagged, len(v.ragged[ei]), ai)
				}
			}
		default:
			return nil, nil, fmt.Errorf("%w: axis %d has unknown shape %d", ErrShape, ai, v.shape)
		}
	}

	if firstRagged < 0 {
		return alignScalar(values, passing, weights)
	}
	return alignRagged(values, passing, inner, weights)
}

// alignScalar handles the all-scalar granularity: one entry per passing
// event, columns gathered in event order.
func alignScalar(values []Values, passing []int, weights []float64) ([][]float64, []float64, error) {
	p := len(passing)
	cols := make([][]float64, len(values))
	for ai, v := range values {
		col := make([]float64, p)
		switch v.shape {
		case ShapeScalar:
			for k, ei := range passing {
				col[k] = v.scalars[ei]
			}
		case ShapeSelected:
			copy(col, v.scalars)
		}
		cols[ai] = col
	}

	w := make([]float64, p)
	for k, ei := range passing {
		if weights == nil {
			w[k] = 1
		} else {
			w[k] = weights[ei]
		}
	}
	return cols, w, nil
}

// alignRagged handles the per-object granularity: ragged axes flatten
// in event order with original object order inside each event, all
// other axes and the weights broadcast per event.
func alignRagged(values []Values, passing, inner []int, weights []float64) ([][]float64, []float64, error) {
	total := 0
	for _, c := range inner {
		total += c
	}

	cols := make([][]float64, len(values))
	for ai, v := range values {
		col := make([]float64, 0, total)
		switch v.shape {
		case ShapeRagged:
			for _, ei := range passing {
				col = append(col, v.ragged[ei]...)
			}
		case ShapeScalar:
			for k, ei := range passing {
				for c := 0; c < inner[k]; c++ {
					col = append(col, v.scalars[ei])
				}
			}
		case ShapeSelected:
			for k := range passing {
				for c := 0; c < inner[k]; c++ {
					col = append(col, v.scalars[k])
				}
			}
		}
		cols[ai] = col
	}

	w := make([]float64, 0, total)
	for k, ei := range passing {
		wv := 1.0
		if weights != nil {
			wv = weights[ei]
		}
		for c := 0; c < inner[k]; c++ {
			w = append(w, wv)
		}
	}
	return cols, w, nil
}
