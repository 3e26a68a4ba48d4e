// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"
)

// ErrDepthExceeded is wrapped by the SyntaxError reported when objects and
// arrays are nested more deeply than Options.MaxDepth permits.
var ErrDepthExceeded = errors.New("maximum nesting depth exceeded")

// SyntaxError is the concrete type of errors reported for malformed input.
type SyntaxError struct {
	Location LineCol // where the error was detected
	Offset   int64   // absolute byte offset of the error in the input
	Message  string

	err error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }

// UsageError is the value of panics caused by misuse of a Reader, such as
// asking for a number while the current token is a string. A UsageError
// indicates a defect in the calling code, not a problem with the input.
type UsageError struct {
	Op      string // the operation that was misused
	Message string
}

// Error satisfies the error interface.
func (u *UsageError) Error() string { return fmt.Sprintf("jtok: %s: %s", u.Op, u.Message) }

func usageErrorf(op, msg string, args ...any) *UsageError {
	return &UsageError{Op: op, Message: fmt.Sprintf(msg, args...)}
}
