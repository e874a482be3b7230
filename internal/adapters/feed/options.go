package feed

// Option configures an InMemoryFeed.
type Option func(*InMemoryFeed)

// WithCapacity sets the maximum number of queued partitions.
func WithCapacity(capacity int) Option {
	return func(f *InMemoryFeed) {
		if capacity > 0 {
			f.capacity = capacity
		}
	}
}

// WithBufferSize sets the underlying channel buffer size.
func WithBufferSize(size int) Option {
	return func(f *InMemoryFeed) {
		if size > 0 {
			f.bufferSize = size
		}
	}
}
