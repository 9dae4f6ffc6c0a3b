package util

// History is a bounded LIFO. Pushing onto a full history forgets the oldest entry.
type History[T any] struct {
	Limit int
	items []T
}

// Push records item as the most recent entry.
func (h *History[T]) Push(item T) {
	h.items = append(h.items, item)
	if h.Limit > 0 && len(h.items) > h.Limit {
		h.items = h.items[len(h.items)-h.Limit:]
	}
}

// Pop removes and returns the most recent entry.
func (h *History[T]) Pop() (item T, ok bool) {
	if len(h.items) == 0 {
		return item, false
	}

	last := len(h.items) - 1
	item, h.items = h.items[last], h.items[:last]
	return item, true
}

// Len returns the number of entries.
func (h *History[T]) Len() int {
	return len(h.items)
}
