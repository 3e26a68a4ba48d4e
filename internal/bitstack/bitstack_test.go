// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package bitstack_test

import (
	"testing"

	"github.com/creachadair/jtok/internal/bitstack"
	"github.com/google/go-cmp/cmp"
)

func TestEmpty(t *testing.T) {
	var s bitstack.Stack
	if d := s.Depth(); d != 0 {
		t.Errorf("Depth: got %d, want 0", d)
	}
	if s.Peek() {
		t.Error("Peek on empty stack: got true, want false")
	}
	if s.Pop() {
		t.Error("Pop on empty stack: got true, want false")
	}
	if d := s.Depth(); d != 0 {
		t.Errorf("Depth after Pop: got %d, want 0", d)
	}
}

// pattern reports whether level i of the test stacks is an object.
func pattern(i int) bool { return i%3 == 0 || i%7 == 1 }

func TestPushPop(t *testing.T) {
	for _, depth := range []int{1, 2, 63, 64, 65, 127, 128, 129, 500, 1000} {
		var s bitstack.Stack
		for i := 0; i < depth; i++ {
			if pattern(i) {
				s.PushObject()
			} else {
				s.PushArray()
			}
			if got, want := s.Peek(), pattern(i); got != want {
				t.Fatalf("Depth %d: Peek after push %d: got %v, want %v", depth, i, got, want)
			}
		}
		if got := s.Depth(); got != depth {
			t.Errorf("Depth: got %d, want %d", got, depth)
		}

		var got, want []bool
		for i := depth - 1; i >= 0; i-- {
			got = append(got, s.Pop())
			want = append(want, i > 0 && pattern(i-1))
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Depth %d: Pop results (-want, +got):\n%s", depth, diff)
		}
		if d := s.Depth(); d != 0 {
			t.Errorf("Depth %d: final depth %d, want 0", depth, d)
		}
	}
}

func TestReuse(t *testing.T) {
	// Levels reused after a pop must not remember their previous kind.
	var s bitstack.Stack
	for i := 0; i < 200; i++ {
		s.PushObject()
	}
	for i := 0; i < 200; i++ {
		s.Pop()
	}
	for i := 0; i < 200; i++ {
		s.PushArray()
		if s.Peek() {
			t.Fatalf("Level %d: Peek reports object after PushArray", i)
		}
	}
}

func TestClone(t *testing.T) {
	var s bitstack.Stack
	for i := 0; i < 150; i++ {
		s.PushObject()
	}
	c := s.Clone()

	// Mutating the original must not affect the clone, including spilled levels.
	for i := 0; i < 100; i++ {
		s.Pop()
	}
	for i := 0; i < 100; i++ {
		s.PushArray()
	}
	if got := c.Depth(); got != 150 {
		t.Fatalf("Clone depth: got %d, want 150", got)
	}
	for i := 0; i < 150; i++ {
		if !c.Peek() {
			t.Fatalf("Clone level %d: got array, want object", c.Depth()-1)
		}
		c.Pop()
	}
}
