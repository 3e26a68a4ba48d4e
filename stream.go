// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"slices"
)

// An Anchor represents a location in source text. The methods of an Anchor
// will report the location, token type, and contents of the anchor.
//
// A *Reader is an Anchor for its current token.
type Anchor interface {
	Token() Token       // Returns the token type of the anchor
	Text() []byte       // Returns a view of the raw (undecoded) text of the anchor
	Copy() []byte       // Returns a copy of the raw text of the anchor
	Location() Location // Returns the full location of the anchor
}

// A Handler handles events from parsing an input stream.  If a method reports
// an error, parsing stops and that error is returned to the caller.
//
// The Anchor argument to a Handler method is only valid for the duration of
// that method call. If the method needs to retain information about the
// location after it returns, it must copy the relevant data.
type Handler interface {
	// Begin a new object, whose open brace is at loc.
	BeginObject(loc Anchor) error

	// End the most-recently-opened object, whose close brace is at loc.
	EndObject(loc Anchor) error

	// Begin a new array, whose open bracket is at loc.
	BeginArray(loc Anchor) error

	// End the most-recently-opened array, whose close bracket is at loc.
	EndArray(loc Anchor) error

	// Begin a new object member, whose key is at loc.  The text of the key
	// excludes its quotation marks but is not unescaped; see Unquote.
	BeginMember(loc Anchor) error

	// End the current object member. The anchor is the last token of the
	// member's value: a scalar, or the close of an object or array.
	EndMember(loc Anchor) error

	// Report a data value at the given location. The type of the value can be
	// recovered from the token. The text of a string excludes its quotation
	// marks but is not unescaped.
	Value(loc Anchor) error

	// EndOfInput reports the end of the input stream.
	EndOfInput(loc Anchor)
}

// CommentHandler is an optional interface that a Handler may implement to
// handle comment tokens. If a handler implements this method and comments are
// enabled in the stream, Comment will be called for each comment token that
// occurs in the input. If the handler does not provide this method, comments
// will be silently discarded.
type CommentHandler interface {
	// Process the line or block comment at the specified location. The text
	// of the anchor excludes the comment delimiters.
	Comment(loc Anchor)
}

// DefaultBufferSize is the initial size of the input buffer of a Stream.
const DefaultBufferSize = 4096

// Stream is a stream parser that consumes input and delivers events to a
// Handler corresponding with the structure of the input.
//
// A Stream reads its input in blocks and tokenizes each block with a Reader,
// resuming a fresh Reader from the saved ReaderState each time the buffer is
// refilled. The buffer grows as needed to hold a single token.
type Stream struct {
	in      io.Reader
	opts    Options
	bufSize int
	buf     []byte
	st      ReaderState
	rd      *Reader
	eof     bool
}

// NewStream constructs a new Stream that consumes input from r. By default
// the stream accepts a sequence of top-level values separated by whitespace.
func NewStream(r io.Reader) *Stream {
	s := &Stream{in: r, opts: Options{AllowMultipleValues: true}}
	s.st = NewReaderState(s.opts)
	return s
}

// The configuration methods of a Stream must be called before parsing begins.
func (s *Stream) configure(f func(*Options)) {
	if s.rd != nil {
		panic(usageErrorf("Stream", "cannot change options after parsing has begun"))
	}
	f(&s.opts)
	s.st = NewReaderState(s.opts)
}

// AllowComments configures s to report (true) or reject (false) comments.
// Comments are reported to a handler that implements CommentHandler.
func (s *Stream) AllowComments(ok bool) {
	s.configure(func(o *Options) {
		o.Comments = CommentDisallow
		if ok {
			o.Comments = CommentAllow
		}
	})
}

// AllowTrailingCommas configures the parser to allow (true) or reject (false)
// trailing commas in objects and arrays.
func (s *Stream) AllowTrailingCommas(ok bool) {
	s.configure(func(o *Options) { o.AllowTrailingCommas = ok })
}

// MaxDepth sets the maximum nesting depth of objects and arrays. A value of
// zero means DefaultMaxDepth.
func (s *Stream) MaxDepth(n int) { s.configure(func(o *Options) { o.MaxDepth = n }) }

// SingleValue configures the parser to require the input to contain exactly
// one value (true), or to accept any number of values (false).
func (s *Stream) SingleValue(ok bool) {
	s.configure(func(o *Options) { o.AllowMultipleValues = !ok })
}

// BufferSize sets the initial size of the input buffer. A value of zero or
// less means DefaultBufferSize.
func (s *Stream) BufferSize(n int) {
	s.configure(func(*Options) { s.bufSize = n })
}

// Options returns the options in effect for s.
func (s *Stream) Options() Options { return s.opts }

func (s *Stream) recoverParseError(errp *error) {
	if serr := recover(); serr != nil {
		switch err := serr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(serr)
		}
	}
}

// Parse parses the input stream and delivers events to h until either an error
// occurs or the input is exhausted. In case of a syntax error, the returned
// error has type [*SyntaxError].
func (s *Stream) Parse(h Handler) (err error) {
	defer s.recoverParseError(&err)

	for s.nextToken(h) {
		s.parseElement(h)
	}
	h.EndOfInput(s.rd)
	return nil
}

// ParseOne parses a single value from the input stream and delivers events to
// h until the value is complete or an error occurs. If no further value is
// available from the input, ParseOne returns io.EOF. In case of a syntax
// error, the returned error has type [*SyntaxError].
func (s *Stream) ParseOne(h Handler) (err error) {
	defer s.recoverParseError(&err)

	if !s.nextToken(h) {
		h.EndOfInput(s.rd)
		return io.EOF
	}
	s.parseElement(h)
	return nil
}

// parseElement consumes a single value of any type.
// Precondition: the current token begins a value.
func (s *Stream) parseElement(h Handler) {
	switch tok := s.rd.Token(); tok {
	case StartObject:
		s.checkError(h.BeginObject(s.rd))
		s.parseMembers(h)
		s.checkError(h.EndObject(s.rd))
	case StartArray:
		s.checkError(h.BeginArray(s.rd))
		s.parseElements(h)
		s.checkError(h.EndArray(s.rd))
	case String, Number, True, False, Null:
		s.checkError(h.Value(s.rd))
	default:
		s.syntaxError(nil, "unexpected %v", tok)
	}
}

// parseMembers consumes zero or more key:value object members.
// Precondition: token == StartObject.
// Postcondition: token == EndObject.
func (s *Stream) parseMembers(h Handler) {
	for s.advance(h) == PropertyName {
		s.checkError(h.BeginMember(s.rd))
		s.advance(h)
		s.parseElement(h)
		s.checkError(h.EndMember(s.rd))
	}
}

// parseElements consumes zero or more array values.
// Precondition: token == StartArray.
// Postcondition: token == EndArray.
func (s *Stream) parseElements(h Handler) {
	for s.advance(h) != EndArray {
		s.parseElement(h)
	}
}

// nextToken advances to the next non-comment token, reporting comments to h
// if it implements CommentHandler. It reports false at the end of the input.
func (s *Stream) nextToken(h Handler) bool {
	for {
		ok, err := s.read()
		if err != nil {
			var serr *SyntaxError
			if errors.As(err, &serr) {
				panic(serr)
			}
			s.syntaxError(err, "%v", err)
		} else if !ok {
			return false
		}
		if s.rd.Token() != Comment {
			return true
		}
		if ch, ok := h.(CommentHandler); ok {
			ch.Comment(s.rd)
		}
	}
}

// read reads the next token from the current block of input, refilling the
// buffer and resuming as many times as necessary.
func (s *Stream) read() (bool, error) {
	if s.rd == nil {
		s.buf = make([]byte, 0, cmp.Or(max(s.bufSize, 0), DefaultBufferSize))
		s.rd = Resume(s.buf, false, s.st)
	}
	for {
		ok, err := s.rd.Read()
		if ok || err != nil || s.eof {
			return ok, err
		}

		// Discard consumed input, then fill the remainder of the buffer.
		s.st = s.rd.State()
		n := copy(s.buf, s.buf[s.rd.BytesConsumed():])
		s.buf = s.buf[:n]
		if len(s.buf) == cap(s.buf) {
			s.buf = slices.Grow(s.buf, cap(s.buf))
		}
		nr, err := s.in.Read(s.buf[n:cap(s.buf)])
		s.buf = s.buf[:n+nr]
		if err == io.EOF {
			s.eof = true
		} else if err != nil {
			return false, err
		}
		s.rd = Resume(s.buf, s.eof, s.st)
	}
}

// advance reads the next non-comment token, which must exist.
func (s *Stream) advance(h Handler) Token {
	if !s.nextToken(h) {
		s.syntaxError(io.ErrUnexpectedEOF, "unexpected end of input")
	}
	return s.rd.Token()
}

func (s *Stream) syntaxError(err error, msg string, args ...any) {
	panic(&SyntaxError{
		Location: s.rd.Position(),
		Offset:   s.rd.InputOffset(),
		Message:  fmt.Sprintf(msg, args...),
		err:      err,
	})
}

func (s *Stream) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }
