package event

import "fmt"

// Map evaluates f on every object of rows, preserving the ragged shape.
func Map[T, V any](rows [][]T, f func(T) V) [][]V {
	out := make([][]V, len(rows))
	for i, evt := range rows {
		inner := make([]V, len(evt))
		for j, obj := range evt {
			inner[j] = f(obj)
		}
		out[i] = inner
	}
	return out
}

// Filter keeps the objects satisfying keep, preserving event boundaries.
func Filter[T any](rows [][]T, keep func(T) bool) [][]T {
	out := make([][]T, len(rows))
	for i, evt := range rows {
		var inner []T
		for _, obj := range evt {
			if keep(obj) {
				inner = append(inner, obj)
			}
		}
		out[i] = inner
	}
	return out
}

// Counts returns the per-event object multiplicities.
func Counts[T any](rows [][]T) []float64 {
	out := make([]float64, len(rows))
	for i, evt := range rows {
		out[i] = float64(len(evt))
	}
	return out
}

// At selects, from each event passing mask, the object at index k. The
// result carries one object per passing event, in event order. A passing
// event with k or fewer objects violates the selection contract: the
// mask's predicate must already guarantee the requested multiplicity.
func At[T any](rows [][]T, mask []bool, k int) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, evt := range rows {
		if mask != nil && !mask[i] {
			continue
		}
		if k >= len(evt) {
			return nil, fmt.Errorf("%w: event %d has %d objects, index %d requested", ErrSelection, i, len(evt), k)
		}
		out = append(out, evt[k])
	}
	return out, nil
}
