// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok

import "fmt"

// DefaultMaxDepth is the nesting limit used when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

// CommentHandling selects how a Reader treats comments, a non-standard
// extension of the JSON grammar.
type CommentHandling byte

const (
	// CommentDisallow reports a syntax error for any comment.
	CommentDisallow CommentHandling = iota

	// CommentAllow reports each comment as a Comment token.
	CommentAllow

	// CommentSkip accepts comments wherever whitespace may occur and discards
	// them without reporting a token.
	CommentSkip
)

func (c CommentHandling) String() string {
	switch c {
	case CommentDisallow:
		return "disallow"
	case CommentAllow:
		return "allow"
	case CommentSkip:
		return "skip"
	}
	return fmt.Sprintf("CommentHandling(%d)", byte(c))
}

// Options configure the grammar accepted by a Reader. The zero value accepts
// standard JSON with a single top-level value and a depth limit of
// DefaultMaxDepth.
//
// Options are fixed for the life of a logical input: they are recorded in the
// ReaderState and carried over each time reading resumes.
type Options struct {
	// MaxDepth is the maximum number of nested objects and arrays. Zero means
	// DefaultMaxDepth.
	MaxDepth int

	// Comments selects how comments are handled.
	Comments CommentHandling

	// AllowTrailingCommas permits a single comma after the last member of an
	// object or the last element of an array.
	AllowTrailingCommas bool

	// AllowMultipleValues permits a sequence of top-level values separated by
	// whitespace, and an input with no values at all.
	AllowMultipleValues bool
}

func (o Options) maxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// check panics if o is not a valid configuration.
func (o Options) check() {
	if o.MaxDepth < 0 {
		panic(&UsageError{Op: "Options", Message: fmt.Sprintf("negative MaxDepth %d", o.MaxDepth)})
	}
	if o.Comments > CommentSkip {
		panic(&UsageError{Op: "Options", Message: fmt.Sprintf("invalid comment handling %v", o.Comments)})
	}
}
