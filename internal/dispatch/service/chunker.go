package service

// SizingPolicy decides how many targets are sent concurrently in one batch.
type SizingPolicy struct {
	Threshold     int // Lists smaller than this go out in a single batch of this width
	Divisor       int // Larger lists are split into roughly this many batches
	MaxBatchItems int // Upper bound on batch width, zero means unbounded
}

// DefaultSizingPolicy returns the policy used when nothing is configured.
func DefaultSizingPolicy() SizingPolicy {
	return SizingPolicy{
		Threshold:     20,
		Divisor:       10,
		MaxBatchItems: 0,
	}
}

// BatchSize returns the batch width for n targets. The result is always at least 1.
func (p SizingPolicy) BatchSize(n int) int {
	size := p.Threshold
	if n >= p.Threshold {
		divisor := p.Divisor
		if divisor < 1 {
			divisor = 1
		}
		size = n / divisor
	}
	if p.MaxBatchItems > 0 && size > p.MaxBatchItems {
		size = p.MaxBatchItems
	}
	if size < 1 {
		size = 1
	}
	return size
}

// Chunk splits items into consecutive batches of at most size elements, preserving order.
// Concatenating the batches yields items again. An empty input yields no batches and a
// non-positive size yields a single batch.
func Chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 || size >= len(items) {
		return [][]T{items}
	}

	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		batches = append(batches, items[start:end:end])
	}
	return batches
}
