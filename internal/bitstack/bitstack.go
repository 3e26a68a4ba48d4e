// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package bitstack implements a compact stack of single-bit flags, one per
// nesting level of a JSON value. A set bit means the container at that level
// is an object, a clear bit means it is an array.
package bitstack

const wordBits = 64

// A Stack records the container kind of each open nesting level. The first 64
// levels are held inline; deeper levels spill into a slice of words that grows
// on demand and is never shrunk.
//
// The zero value is an empty stack ready for use. Copying a Stack by value
// shares its spill words; use Clone to obtain an independent copy.
type Stack struct {
	inline uint64
	spill  []uint64
	depth  int
}

// Depth reports the number of levels currently on the stack.
func (s *Stack) Depth() int { return s.depth }

// PushObject pushes a level for an object.
func (s *Stack) PushObject() { s.push(true) }

// PushArray pushes a level for an array.
func (s *Stack) PushArray() { s.push(false) }

func (s *Stack) push(isObject bool) {
	i := s.depth
	s.depth++
	if i < wordBits {
		if isObject {
			s.inline |= 1 << uint(i)
		} else {
			s.inline &^= 1 << uint(i)
		}
		return
	}
	w, b := (i-wordBits)/wordBits, uint((i-wordBits)%wordBits)
	if w >= len(s.spill) {
		s.grow(w + 1)
	}
	if isObject {
		s.spill[w] |= 1 << b
	} else {
		s.spill[w] &^= 1 << b
	}
}

// grow extends the spill words to at least n, doubling to limit churn.
func (s *Stack) grow(n int) {
	m := 2 * len(s.spill)
	if m < n {
		m = n
	}
	next := make([]uint64, m)
	copy(next, s.spill)
	s.spill = next
}

// Pop removes the top level and reports whether the level now on top is an
// object. It reports false when the stack becomes (or already was) empty.
func (s *Stack) Pop() bool {
	if s.depth == 0 {
		return false
	}
	s.depth--
	return s.Peek()
}

// Peek reports whether the top level is an object. It reports false for an
// empty stack.
func (s *Stack) Peek() bool {
	if s.depth == 0 {
		return false
	}
	return s.at(s.depth - 1)
}

func (s *Stack) at(i int) bool {
	if i < wordBits {
		return s.inline&(1<<uint(i)) != 0
	}
	w, b := (i-wordBits)/wordBits, uint((i-wordBits)%wordBits)
	return s.spill[w]&(1<<b) != 0
}

// Clone returns a copy of s that shares no storage with it. Only the words in
// use are copied, so cloning a shallow stack does not allocate.
func (s *Stack) Clone() Stack {
	out := Stack{inline: s.inline, depth: s.depth}
	if s.depth > wordBits {
		used := (s.depth - wordBits + wordBits - 1) / wordBits
		out.spill = make([]uint64, used)
		copy(out.spill, s.spill[:used])
	}
	return out
}
