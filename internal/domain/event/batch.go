package event

import "fmt"

// Batch bundles the named object collections of one contiguous span of
// events. Collections are ragged: the outer index is the event, the
// inner length is that event's object count. Every collection in a
// batch shares the same outer length.
type Batch struct {
	size     int
	vertices map[string][][]Vertex
	leptons  map[string][][]Lepton
	jets     map[string][][]LeptonJet
	gens     map[string][][]GenParticle
}

// NewBatch creates an empty batch spanning size events.
func NewBatch(size int) *Batch {
	return &Batch{
		size:     size,
		vertices: make(map[string][][]Vertex),
		leptons:  make(map[string][][]Lepton),
		jets:     make(map[string][][]LeptonJet),
		gens:     make(map[string][][]GenParticle),
	}
}

// Len returns the number of events in the batch.
func (b *Batch) Len() int { return b.size }

// Has reports whether a collection with the given name is present.
func (b *Batch) Has(name string) bool {
	if _, ok := b.vertices[name]; ok {
		return true
	}
	if _, ok := b.leptons[name]; ok {
		return true
	}
	if _, ok := b.jets[name]; ok {
		return true
	}
	_, ok := b.gens[name]
	return ok
}

// SetVertices stores a vertex collection under name.
func (b *Batch) SetVertices(name string, rows [][]Vertex) error {
	if len(rows) != b.size {
		return lengthError(name, len(rows), b.size)
	}
	b.vertices[name] = rows
	return nil
}

// SetLeptons stores a lepton collection under name.
func (b *Batch) SetLeptons(name string, rows [][]Lepton) error {
	if len(rows) != b.size {
		return lengthError(name, len(rows), b.size)
	}
	b.leptons[name] = rows
	return nil
}

// SetLeptonJets stores a lepton-jet collection under name.
func (b *Batch) SetLeptonJets(name string, rows [][]LeptonJet) error {
	if len(rows) != b.size {
		return lengthError(name, len(rows), b.size)
	}
	b.jets[name] = rows
	return nil
}

// SetGenParticles stores a generator-level collection under name.
func (b *Batch) SetGenParticles(name string, rows [][]GenParticle) error {
	if len(rows) != b.size {
		return lengthError(name, len(rows), b.size)
	}
	b.gens[name] = rows
	return nil
}

// Vertices returns the vertex collection stored under name.
func (b *Batch) Vertices(name string) ([][]Vertex, error) {
	rows, ok := b.vertices[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return rows, nil
}

// Leptons returns the lepton collection stored under name.
func (b *Batch) Leptons(name string) ([][]Lepton, error) {
	rows, ok := b.leptons[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return rows, nil
}

// LeptonJets returns the lepton-jet collection stored under name.
func (b *Batch) LeptonJets(name string) ([][]LeptonJet, error) {
	rows, ok := b.jets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return rows, nil
}

// GenParticles returns the generator-level collection stored under name.
func (b *Batch) GenParticles(name string) ([][]GenParticle, error) {
	rows, ok := b.gens[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return rows, nil
}

// Slice returns a view over events [lo, hi). Collections share backing
// arrays with the receiver, so slices are cheap.
func (b *Batch) Slice(lo, hi int) (*Batch, error) {
	if lo < 0 || hi > b.size || lo > hi {
		return nil, fmt.Errorf("%w: slice [%d, %d) of %d events", ErrEventLength, lo, hi, b.size)
	}
	out := NewBatch(hi - lo)
	for name, rows := range b.vertices {
		out.vertices[name] = rows[lo:hi]
	}
	for name, rows := range b.leptons {
		out.leptons[name] = rows[lo:hi]
	}
	for name, rows := range b.jets {
		out.jets[name] = rows[lo:hi]
	}
	for name, rows := range b.gens {
		out.gens[name] = rows[lo:hi]
	}
	return out, nil
}

func lengthError(name string, got, want int) error {
	return fmt.Errorf("%w: collection %q spans %d events, batch spans %d", ErrEventLength, name, got, want)
}
