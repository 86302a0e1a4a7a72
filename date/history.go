package date

import (
	"iter"
	"slices"
	"sort"
)

// History stores a chronological series of values, each associated with a specific month.
// It ensures that months are unique and the series is always sorted.
type History[T float32 | float64 | string] struct {
	months []Month
	values []T
}

// Latest returns the latest month and value in the history.
// If the history is empty, it returns zero value.
func (h *History[T]) Latest() (month Month, value T) {
	last := len(h.months) - 1
	if last < 0 {
		return Month{}, *new(T) // return zero value of T
	}
	return h.months[last], h.values[last]
}

// Earliest returns the first month and value in the history.
func (h *History[T]) Earliest() (month Month, value T) {
	if len(h.months) == 0 {
		return Month{}, *new(T)
	}
	return h.months[0], h.values[0]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.months) }

// chronological is a private implementation to make this history chronologically sorted.
type chronological[T float32 | float64 | string] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.months[i].Before(s.months[j]) }

func (s chronological[T]) Swap(i, j int) {
	s.months[i], s.months[j] = s.months[j], s.months[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History[T]) sort() { sort.Stable(chronological[T]{h}) }

// search returns the position of m and whether it is present.
func (h *History[T]) search(m Month) (int, bool) {
	return slices.BinarySearchFunc(h.months, m, Month.Compare)
}

// Append adds a point to the history.
//
// Existing value at that month are overwritten.
func (h *History[T]) Append(on Month, q T) *History[T] {
	if i, found := h.search(on); found {
		// The last value read for a month wins.
		h.values[i] = q
		return h
	}
	h.months, h.values = append(h.months, on), append(h.values, q)
	h.sort()
	return h
}

// Values returns an iterator over all month/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Month, T] {
	return func(yield func(Month, T) bool) {
		for i, on := range h.months {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Months returns a copy of the months of the history, in chronological order.
func (h *History[T]) Months() []Month { return slices.Clone(h.months) }

// Get returns the value at 'month' and true or zero value and false.
func (h *History[T]) Get(month Month) (T, bool) {
	if i, found := h.search(month); found {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// Between returns a new history restricted to the months in r.
func (h *History[T]) Between(r Range) *History[T] {
	res := new(History[T])
	for i, on := range h.months {
		if r.Contains(on) {
			res.months = append(res.months, on)
			res.values = append(res.values, h.values[i])
		}
	}
	return res
}

// Union returns all unique months of the histories, in chronological order.
func Union[T float32 | float64 | string](histories ...*History[T]) []Month {
	var all []Month
	for _, h := range histories {
		all = append(all, h.months...)
	}
	slices.SortFunc(all, Month.Compare)
	return slices.Compact(all)
}
