// Package weights builds the per-event weight vectors that accompany
// every fill. Weighting is always explicit: the driver constructs one
// Weighter per sample and hands its vectors to Histogram.Fill instead
// of relying on an implicit global default.
package weights

// Weighter produces per-event weight vectors for one sample.
type Weighter struct {
	scale float64
}

// Option applies a configuration option to a Weighter.
type Option func(*Weighter)

// WithScale sets the uniform per-event weight, e.g. a cross-section
// normalization. Non-positive scales are ignored.
func WithScale(scale float64) Option {
	return func(w *Weighter) {
		if scale > 0 {
			w.scale = scale
		}
	}
}

// New creates a Weighter with unit scale unless overridden.
func New(opts ...Option) *Weighter {
	w := &Weighter{scale: 1.0}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Scale returns the uniform per-event weight.
func (w *Weighter) Scale() float64 { return w.scale }

// Vector returns a weight per event for a batch of n events.
func (w *Weighter) Vector(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = w.scale
	}
	return out
}
