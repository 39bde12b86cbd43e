// Package strstack stores a sequence of strings back-to-back in one
// contiguous byte buffer, with a list of end offsets. Appending is
// O(1) amortized and random access by index is O(1); there are no
// capacity limits and elements are only ever sliced at stored offsets.
package strstack

import "iter"

// Stack is an append-only arena of strings. The zero value is ready to
// use.
type Stack struct {
	data []byte
	ends []int
}

// New returns an empty Stack.
func New() *Stack { return &Stack{} }

// Len returns the number of stored strings.
func (s *Stack) Len() int { return len(s.ends) }

// IsEmpty reports whether no strings are stored.
func (s *Stack) IsEmpty() bool { return len(s.ends) == 0 }

// Push appends v as a new element.
func (s *Stack) Push(v string) {
	s.data = append(s.data, v...)
	s.ends = append(s.ends, len(s.data))
}

// Bounds returns the [begin, end) byte range of element index within
// the backing buffer; false when index is out of range.
func (s *Stack) Bounds(index int) (begin, end int, ok bool) {
	if index < 0 || index >= len(s.ends) {
		return 0, 0, false
	}
	if index > 0 {
		begin = s.ends[index-1]
	}
	return begin, s.ends[index], true
}

// Get returns element index; false when index is out of range. The
// result is an independent string copy.
func (s *Stack) Get(index int) (string, bool) {
	begin, end, ok := s.Bounds(index)
	if !ok {
		return "", false
	}
	return string(s.data[begin:end]), true
}

// Top returns the most recently pushed element; false when empty.
func (s *Stack) Top() (string, bool) {
	if len(s.ends) == 0 {
		return "", false
	}
	return s.Get(len(s.ends) - 1)
}

// RemoveTop discards the most recently pushed element, reclaiming its
// bytes for the next push. It reports whether an element was removed.
func (s *Stack) RemoveTop() bool {
	if len(s.ends) == 0 {
		return false
	}
	s.ends = s.ends[:len(s.ends)-1]
	end := 0
	if len(s.ends) > 0 {
		end = s.ends[len(s.ends)-1]
	}
	s.data = s.data[:end]
	return true
}

// Pop removes and returns the most recently pushed element; false when
// empty.
func (s *Stack) Pop() (string, bool) {
	v, ok := s.Top()
	if !ok {
		return "", false
	}
	s.RemoveTop()
	return v, true
}

// Clear discards all elements, keeping the allocated buffers.
func (s *Stack) Clear() {
	s.data = s.data[:0]
	s.ends = s.ends[:0]
}

// Joined returns the whole backing buffer as one string: every element
// concatenated in push order.
func (s *Stack) Joined() string { return string(s.data) }

// Equal reports whether both stacks hold the same elements in the same
// order.
func (s *Stack) Equal(o *Stack) bool {
	if len(s.ends) != len(o.ends) {
		return false
	}
	for i := range s.ends {
		if s.ends[i] != o.ends[i] {
			return false
		}
	}
	return string(s.data) == string(o.data)
}

// All yields the elements in push order; usable with range.
func (s *Stack) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		begin := 0
		for _, end := range s.ends {
			if !yield(string(s.data[begin:end])) {
				return
			}
			begin = end
		}
	}
}

// Iter returns a cursor over the elements in push order.
func (s *Stack) Iter() *Iter {
	return &Iter{stack: s}
}

// Iter is a cursor over a Stack. Pushing to the stack while iterating
// is allowed; newly pushed elements are visited.
type Iter struct {
	stack *Stack
	index int
}

// Next returns the next element; false when the cursor is exhausted.
func (it *Iter) Next() (string, bool) {
	v, ok := it.stack.Get(it.index)
	if ok {
		it.index++
	}
	return v, ok
}

// Remaining returns how many elements Next will still yield.
func (it *Iter) Remaining() int {
	if n := it.stack.Len() - it.index; n > 0 {
		return n
	}
	return 0
}
