// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"github.com/creachadair/jtok/internal/bitstack"
)

// A Reader is a forward-only pull tokenizer over a window of JSON input.
// Each call to Read advances the reader to the next token, or reports that
// more input is needed, that the input is complete, or that it is malformed.
//
// A Reader borrows the buffers it is given. Slices returned by ValueSpan,
// ValueSequence and Text alias those buffers (or reader scratch space) and
// are only valid until the next call to Read. When Read reports that more
// input is needed, the caller should capture State, discard the first
// BytesConsumed bytes of its input, append more bytes, and continue with a
// new Reader built by Resume. The old Reader must not be used after that.
type Reader struct {
	one   [1][]byte // backing for single-buffer input
	segs  [][]byte  // input segments
	seg   int       // index of the current segment
	buf   []byte    // segs[seg]
	pos   int       // offset of the next unread byte in buf
	base  int64     // reader-relative offset of buf[0]
	final bool      // no more input follows segs

	offset    int64 // absolute offset of the start of the input
	line, col int   // 0-based position of the next unread byte

	opts           Options
	bits           bitstack.Stack
	inObject       bool
	isNotPrimitive bool
	afterComma     bool
	tok, prev      Token
	err            error

	// The current token.
	hasToken         bool
	tokStart, tokEnd int64
	first, last      LineCol
	span             []byte
	seq              [][]byte
	hasSeq           bool
	escaped          bool
	scratch          []byte

	pend pending // the token being scanned
}

// pending records the token under construction. It is committed to the
// Reader by emit only once the token is complete.
type pending struct {
	offset    int64
	line, col int
	from, to  cursor // bounds of the value text
	escaped   bool
}

// A cursor is a position in the input segments.
type cursor struct{ seg, pos int }

// status is the outcome of an attempt to scan a token.
type status uint8

const (
	gotToken status = iota // a complete token was found
	needMore               // the input ended before a token was complete
	atEnd                  // the final input is exhausted
	failed                 // the input is malformed
)

// NewReader returns a Reader for data, read with opts. If final is true,
// data is the complete input; otherwise more input may follow.
// It panics with a *UsageError if opts is invalid.
func NewReader(data []byte, final bool, opts Options) *Reader {
	return Resume(data, final, NewReaderState(opts))
}

// NewSegmentReader returns a Reader for the concatenation of segs, read with
// opts. Tokens may span segment boundaries. If final is true, segs hold the
// complete input; otherwise more input may follow.
func NewSegmentReader(segs [][]byte, final bool, opts Options) *Reader {
	return ResumeSegments(segs, final, NewReaderState(opts))
}

// Resume returns a Reader for data that continues the input described by st.
// The data must begin with the first byte not consumed when st was captured.
func Resume(data []byte, final bool, st ReaderState) *Reader {
	r := &Reader{final: final}
	r.one[0] = data
	r.segs = r.one[:]
	r.init(st)
	return r
}

// ResumeSegments returns a Reader for the concatenation of segs that
// continues the input described by st.
func ResumeSegments(segs [][]byte, final bool, st ReaderState) *Reader {
	r := &Reader{final: final, segs: segs}
	if len(segs) == 0 {
		r.segs = r.one[:]
	}
	r.init(st)
	return r
}

func (r *Reader) init(st ReaderState) {
	r.buf = r.segs[0]
	r.offset = st.offset
	r.line, r.col = st.line, st.col
	r.opts = st.opts
	r.bits = st.bits.Clone()
	r.inObject = st.inObject
	r.isNotPrimitive = st.isNotPrimitive
	r.afterComma = st.afterComma
	r.tok, r.prev = st.tok, st.prev
	r.escaped = st.escaped
	r.span = r.buf[:0]
}

// State returns a snapshot of r from which a subsequent Reader may continue.
func (r *Reader) State() ReaderState {
	return ReaderState{
		line:           r.line,
		col:            r.col,
		offset:         r.offset + r.consumed(),
		inObject:       r.inObject,
		isNotPrimitive: r.isNotPrimitive,
		escaped:        r.escaped,
		afterComma:     r.afterComma,
		tok:            r.tok,
		prev:           r.prev,
		opts:           r.opts,
		bits:           r.bits.Clone(),
	}
}

// Read advances r to the next token. It reports true if a token was found.
//
// Read reports false and a nil error if the input ended before a complete
// token: if the input is final this is the normal end of the input, and
// otherwise the reader is left exactly as it was before the call so that the
// caller may supply more input and resume. If the input is malformed, Read
// reports an error of concrete type *SyntaxError, and every later call reports
// the same error.
func (r *Reader) Read() (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	m := r.mark()
	st, err := r.read()
	switch {
	case err != nil:
		r.err = err
		return false, err
	case st == gotToken:
		return true, nil
	case st == needMore:
		r.reset(m)
	}
	return false, nil
}

// A mark records the scalar state that a failed read must roll back.
type mark struct {
	seg, pos   int
	base       int64
	line, col  int
	afterComma bool
}

func (r *Reader) mark() mark {
	return mark{seg: r.seg, pos: r.pos, base: r.base, line: r.line, col: r.col, afterComma: r.afterComma}
}

func (r *Reader) reset(m mark) {
	r.seg, r.pos, r.base = m.seg, m.pos, m.base
	r.buf = r.segs[m.seg]
	r.line, r.col = m.line, m.col
	r.afterComma = m.afterComma
}

// Token returns the type of the current token.
func (r *Reader) Token() Token { return r.tok }

// IsFinalBlock reports whether r was given the final portion of its input.
func (r *Reader) IsFinalBlock() bool { return r.final }

// Options returns the options in effect for r.
func (r *Reader) Options() Options { return r.opts }

// CurrentDepth returns the number of open objects and arrays enclosing the
// current token. An opening token does not count the container it opens, and
// a closing token does not count the container it closes.
func (r *Reader) CurrentDepth() int {
	d := r.bits.Depth()
	if r.tok == StartObject || r.tok == StartArray {
		d--
	}
	return d
}

// BytesConsumed returns the number of bytes of this Reader's input consumed
// so far. After Read reports that more input is needed, this is the number of
// bytes the caller may discard.
func (r *Reader) BytesConsumed() int64 { return r.consumed() }

// TokenStartIndex returns the offset in this Reader's input where the current
// token begins. For strings and property names this is the opening quote.
func (r *Reader) TokenStartIndex() int64 { return r.tokStart }

// InputOffset returns the absolute offset of the next unread byte in the
// logical input, counting bytes consumed by every Reader it was resumed from.
func (r *Reader) InputOffset() int64 { return r.offset + r.consumed() }

// Position returns the line and column of the next unread byte.
func (r *Reader) Position() LineCol { return LineCol{Line: r.line + 1, Column: r.col} }

// Location returns the complete location of the current token. The location
// of a property name includes its trailing colon.
func (r *Reader) Location() Location {
	return Location{
		Span:  Span{Pos: r.offset + r.tokStart, End: r.offset + r.tokEnd},
		First: r.first,
		Last:  r.last,
	}
}

// ValueSpan returns the raw text of the current token when it lies in a single
// input segment. Strings and property names exclude their quotes, and
// comments exclude their delimiters. Structural tokens have an empty span.
func (r *Reader) ValueSpan() []byte { return r.span }

// HasValueSequence reports whether the raw text of the current token spans
// input segments, in which case it is reported by ValueSequence rather than
// ValueSpan.
func (r *Reader) HasValueSequence() bool { return r.hasSeq }

// ValueSequence returns the pieces of the raw text of the current token when
// it spans input segments. It returns nil if HasValueSequence is false.
func (r *Reader) ValueSequence() [][]byte {
	if !r.hasSeq {
		return nil
	}
	return r.seq
}

// ValueIsEscaped reports whether the current string or property name contains
// escape sequences.
func (r *Reader) ValueIsEscaped() bool { return r.escaped }

// Text returns the raw text of the current token, joining the pieces of a
// value sequence if necessary. The result is only valid until the next call
// of Read.
func (r *Reader) Text() []byte {
	if !r.hasSeq {
		return r.span
	}
	r.scratch = r.scratch[:0]
	for _, s := range r.seq {
		r.scratch = append(r.scratch, s...)
	}
	return r.scratch
}

// Copy returns a copy of the raw text of the current token.
func (r *Reader) Copy() []byte { return append([]byte(nil), r.Text()...) }

// consumed returns the reader-relative offset of the next unread byte.
func (r *Reader) consumed() int64 { return r.base + int64(r.pos) }

func (r *Reader) here() cursor { return cursor{seg: r.seg, pos: r.pos} }

// offsetOf returns the reader-relative offset of c, which must not precede
// the current segment.
func (r *Reader) offsetOf(c cursor) int64 {
	off := r.base
	for i := r.seg; i < c.seg; i++ {
		off += int64(len(r.segs[i]))
	}
	return off + int64(c.pos)
}

// nextSegment moves to the start of the following segment, if there is one.
func (r *Reader) nextSegment() bool {
	if r.seg+1 >= len(r.segs) {
		return false
	}
	r.base += int64(len(r.buf))
	r.seg++
	r.buf = r.segs[r.seg]
	r.pos = 0
	return true
}

// moveTo moves the read position forward to c.
func (r *Reader) moveTo(c cursor) {
	for r.seg < c.seg {
		r.base += int64(len(r.buf))
		r.seg++
		r.buf = r.segs[r.seg]
	}
	r.pos = c.pos
}

// advance moves forward to c across text that contains no line breaks.
func (r *Reader) advance(c cursor) {
	r.col += int(r.offsetOf(c) - r.consumed())
	r.moveTo(c)
}

// walkTo moves forward to c, counting any line breaks along the way.
func (r *Reader) walkTo(c cursor) {
	r.line, r.col = r.lineColAt(c)
	r.moveTo(c)
}

// lineColAt returns the 0-based line and column of c, which must not precede
// the current position.
func (r *Reader) lineColAt(c cursor) (line, col int) {
	line, col = r.line, r.col
	for seg, pos := r.seg, r.pos; ; seg, pos = seg+1, 0 {
		b := r.segs[seg]
		if seg == c.seg {
			b = b[:c.pos]
		}
		for _, ch := range b[pos:] {
			if ch == '\n' {
				line++
				col = 0
			} else {
				col++
			}
		}
		if seg == c.seg {
			return line, col
		}
	}
}

// forward returns the cursor k bytes after c. The bytes must exist.
func (r *Reader) forward(c cursor, k int) cursor {
	for k > 0 {
		n := len(r.segs[c.seg]) - c.pos
		if n >= k {
			c.pos += k
			break
		}
		k -= n
		c.seg++
		c.pos = 0
	}
	return c
}

// backward returns the cursor k bytes before c. The bytes must exist.
func (r *Reader) backward(c cursor, k int) cursor {
	for k > 0 {
		if c.pos >= k {
			c.pos -= k
			break
		}
		k -= c.pos
		c.seg--
		c.pos = len(r.segs[c.seg])
	}
	return c
}

// A scanFunc consumes a piece of a token. It reports the number of bytes
// consumed, whether the token is complete, and any grammar violation. When it
// reports an error, the count is the offset of the offending byte.
type scanFunc func([]byte) (int, bool, error)

// scanFrom feeds the input starting at c to f until f reports that it is
// done or has failed, moving on to later segments as each one is exhausted.
// It reports the cursor where f stopped and whether f finished before the
// input ran out.
func (r *Reader) scanFrom(c cursor, f scanFunc) (cursor, bool, error) {
	for {
		n, done, err := f(r.segs[c.seg][c.pos:])
		c.pos += n
		if err != nil || done {
			return c, done, err
		} else if c.seg+1 == len(r.segs) {
			return c, false, nil
		}
		c = cursor{seg: c.seg + 1}
	}
}

// setValue records the text between from and to as the current value.
func (r *Reader) setValue(from, to cursor) {
	r.hasSeq = false
	if from.seg == to.seg {
		r.span = r.segs[from.seg][from.pos:to.pos]
		return
	}
	r.seq = r.seq[:0]
	for i := from.seg; i <= to.seg; i++ {
		lo, hi := 0, len(r.segs[i])
		if i == from.seg {
			lo = from.pos
		}
		if i == to.seg {
			hi = to.pos
		}
		if lo < hi {
			r.seq = append(r.seq, r.segs[i][lo:hi])
		}
	}
	switch len(r.seq) {
	case 0:
		r.span = r.segs[to.seg][to.pos:to.pos]
	case 1:
		r.span = r.seq[0]
	default:
		r.span = nil
		r.hasSeq = true
	}
}
