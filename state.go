// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok

import "github.com/creachadair/jtok/internal/bitstack"

// A ReaderState is a snapshot of everything a Reader needs to continue
// tokenizing a logical input where a previous Reader stopped. It holds no
// references to input buffers, so the caller may recycle or extend its buffer
// freely between readers.
//
// A ReaderState is a plain value: copying it is safe, and a Reader resumed
// from it never modifies it. The zero value is the state of a fresh input read
// with default Options.
type ReaderState struct {
	line, col      int   // 0-based position of the next unread byte
	offset         int64 // absolute offset of the next unread byte
	inObject       bool  // the innermost open container is an object
	isNotPrimitive bool  // the current top-level value is an object or array
	escaped        bool  // the current value contains escapes
	afterComma     bool  // a comma was consumed before a comment token
	tok, prev      Token // current token and most recent non-comment token
	opts           Options
	bits           bitstack.Stack
}

// NewReaderState returns the state of a fresh input read with opts.
// It panics with a *UsageError if opts is invalid.
func NewReaderState(opts Options) ReaderState {
	opts.check()
	return ReaderState{opts: opts}
}

// Options returns the options carried by s.
func (s ReaderState) Options() Options { return s.opts }

// Token returns the token that was current when s was captured.
func (s ReaderState) Token() Token { return s.tok }

// Offset returns the absolute offset in the logical input at which reading
// resumes from s.
func (s ReaderState) Offset() int64 { return s.offset }

// Position returns the line and column at which reading resumes from s.
func (s ReaderState) Position() LineCol { return LineCol{Line: s.line + 1, Column: s.col} }

// Depth returns the number of objects and arrays open in s.
func (s ReaderState) Depth() int { return s.bits.Depth() }
