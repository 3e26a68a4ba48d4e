// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"fmt"

	"github.com/creachadair/jtok/internal/escape"
	"github.com/creachadair/jtok/internal/number"
)

// read scans the next token. The reader state is modified only once a token
// is known to be complete; on needMore the caller rolls back the position.
func (r *Reader) read() (status, error) {
	st, err := r.skipSpace()
	switch {
	case err != nil:
		return failed, err
	case st == needMore:
		return needMore, nil
	case st == atEnd:
		return r.endOfInput()
	}
	r.begin()
	c := r.buf[r.pos]
	if c == '/' {
		return r.readComment()
	} else if r.afterComma {
		return r.readAfterComma(c)
	}
	switch r.prev {
	case None, PropertyName:
		return r.readValue(c)
	case StartObject:
		if c == '}' {
			return r.endContainer(c)
		}
		return r.readPropertyName(c)
	case StartArray:
		if c == ']' {
			return r.endContainer(c)
		}
		return r.readValue(c)
	}
	if r.bits.Depth() == 0 {
		if r.opts.AllowMultipleValues {
			return r.readValue(c)
		}
		return failed, r.failf(r.here(), "invalid %q after top-level value", c)
	}
	return r.readSeparator(c)
}

// skipSpace skips whitespace, and comments if they are being skipped. It
// reports gotToken if a byte remains at the current position.
func (r *Reader) skipSpace() (status, error) {
	for {
		for r.pos < len(r.buf) {
			switch r.buf[r.pos] {
			case ' ', '\t', '\r':
				r.pos++
				r.col++
			case '\n':
				r.pos++
				r.line++
				r.col = 0
			case '/':
				if r.opts.Comments != CommentSkip {
					return gotToken, nil
				}
				end, st, err := r.scanComment()
				if st != gotToken {
					return st, err
				}
				r.walkTo(end)
			default:
				return gotToken, nil
			}
		}
		if !r.nextSegment() {
			if r.final {
				return atEnd, nil
			}
			return needMore, nil
		}
	}
}

func (r *Reader) endOfInput() (status, error) {
	if r.bits.Depth() > 0 || r.prev == PropertyName {
		return failed, r.failf(r.here(), "unexpected end of input")
	}
	if r.prev == None && !r.opts.AllowMultipleValues {
		return failed, r.failf(r.here(), "no value in input")
	}
	return atEnd, nil
}

// readSeparator handles the byte following a complete member or element.
func (r *Reader) readSeparator(c byte) (status, error) {
	switch c {
	case ',':
		r.skipByte()
		st, err := r.skipSpace()
		switch {
		case err != nil:
			return failed, err
		case st == needMore:
			return needMore, nil
		case st == atEnd:
			return failed, r.failf(r.here(), "unexpected end of input")
		}
		r.begin()
		if c = r.buf[r.pos]; c == '/' {
			r.afterComma = true
			return r.readComment()
		}
		return r.readAfterComma(c)
	case '}', ']':
		return r.endContainer(c)
	}
	if r.inObject {
		return failed, r.failf(r.here(), "expected ',' or '}' after object member, got %q", c)
	}
	return failed, r.failf(r.here(), "expected ',' or ']' after array element, got %q", c)
}

// readAfterComma handles the first byte following a comma, possibly after
// intervening comment tokens.
func (r *Reader) readAfterComma(c byte) (status, error) {
	if c == '}' || c == ']' {
		if !r.opts.AllowTrailingCommas {
			return failed, r.failf(r.here(), "invalid trailing comma before %q", c)
		}
		r.afterComma = false
		return r.endContainer(c)
	}
	r.afterComma = false
	if r.inObject {
		return r.readPropertyName(c)
	}
	return r.readValue(c)
}

func (r *Reader) readValue(c byte) (status, error) {
	switch c {
	case '{':
		return r.startContainer(StartObject)
	case '[':
		return r.startContainer(StartArray)
	case '"':
		return r.readString()
	case 't':
		return r.readLiteral("true", True)
	case 'f':
		return r.readLiteral("false", False)
	case 'n':
		return r.readLiteral("null", Null)
	}
	if c == '-' || ('0' <= c && c <= '9') {
		return r.readNumber()
	}
	return failed, r.failf(r.here(), "invalid %q at start of value", c)
}

func (r *Reader) startContainer(t Token) (status, error) {
	if max := r.opts.maxDepth(); r.bits.Depth() >= max {
		return failed, r.failErr(r.here(), fmt.Errorf("%w (limit %d)", ErrDepthExceeded, max))
	}
	r.skipByte()
	if t == StartObject {
		r.bits.PushObject()
		r.inObject = true
	} else {
		r.bits.PushArray()
		r.inObject = false
	}
	r.emitEmpty(t)
	return gotToken, nil
}

func (r *Reader) endContainer(c byte) (status, error) {
	want, t := byte(']'), EndArray
	if r.inObject {
		want, t = '}', EndObject
	}
	if c != want {
		return failed, r.failf(r.here(), "unexpected %q, expected %q", c, want)
	}
	r.skipByte()
	r.inObject = r.bits.Pop()
	r.emitEmpty(t)
	return gotToken, nil
}

// scanString scans a string whose opening quote is at the current position.
// On success it records the bounds of the body in r.pend and returns the
// cursor just past the closing quote.
func (r *Reader) scanString() (cursor, status, error) {
	var ss escape.StringScanner
	start := r.here()
	body := r.forward(start, 1)
	end, done, err := r.scanFrom(body, ss.Scan)
	if err != nil {
		return end, failed, r.failErr(end, err)
	} else if !done {
		if !r.final {
			return end, needMore, nil
		}
		return end, failed, r.failf(start, "unterminated string")
	}
	r.pend.from, r.pend.to = body, r.backward(end, 1)
	r.pend.escaped = ss.Escaped()
	return end, gotToken, nil
}

func (r *Reader) readString() (status, error) {
	end, st, err := r.scanString()
	if st != gotToken {
		return st, err
	}
	r.advance(end)
	r.emitValue(String, r.pend.from, r.pend.to, r.pend.escaped)
	return gotToken, nil
}

// readPropertyName reads an object member name and the colon that follows it.
func (r *Reader) readPropertyName(c byte) (status, error) {
	if c != '"' {
		return failed, r.failf(r.here(), "expected '\"' at start of property name, got %q", c)
	}
	end, st, err := r.scanString()
	if st != gotToken {
		return st, err
	}
	from, to, esc := r.pend.from, r.pend.to, r.pend.escaped
	r.advance(end)

	st, err = r.skipSpace()
	switch {
	case err != nil:
		return failed, err
	case st == needMore:
		return needMore, nil
	case st == atEnd:
		return failed, r.failf(r.here(), "unexpected end of input after property name")
	}
	switch c := r.buf[r.pos]; c {
	case ':':
		r.skipByte()
	case '/':
		if r.opts.Comments == CommentDisallow {
			return failed, r.failf(r.here(), "comments are not allowed")
		}
		return failed, r.failf(r.here(), "comment not allowed between property name and ':'")
	default:
		return failed, r.failf(r.here(), "expected ':' after property name, got %q", c)
	}
	r.emitValue(PropertyName, from, to, esc)
	return gotToken, nil
}

// isDelimiter reports whether c may follow a top-level number.
func isDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', ']', '}', '/':
		return true
	}
	return false
}

func (r *Reader) readNumber() (status, error) {
	var ns number.Scanner
	start := r.here()
	end, done, err := r.scanFrom(start, ns.Scan)
	if err != nil {
		return failed, r.failErr(end, err)
	} else if !done {
		if !r.final {
			return needMore, nil
		} else if err := ns.Incomplete(); err != nil {
			return failed, r.failErr(end, err)
		}
	} else if c := r.segs[end.seg][end.pos]; r.bits.Depth() == 0 && !isDelimiter(c) {
		return failed, r.failf(end, "invalid %q after number", c)
	}
	r.advance(end)
	r.emitValue(Number, start, end, false)
	return gotToken, nil
}

// A literal scans one of the constants true, false, and null.
type literal struct {
	text string
	n    int // bytes matched so far
}

func (l *literal) Scan(b []byte) (int, bool, error) {
	for i, c := range b {
		if c != l.text[l.n] {
			return i, false, fmt.Errorf("invalid %q in literal %s", c, l.text)
		}
		l.n++
		if l.n == len(l.text) {
			return i + 1, true, nil
		}
	}
	return len(b), false, nil
}

func (r *Reader) readLiteral(text string, t Token) (status, error) {
	lit := literal{text: text}
	start := r.here()
	end, done, err := r.scanFrom(start, lit.Scan)
	if err != nil {
		return failed, r.failErr(end, err)
	} else if !done {
		if !r.final {
			return needMore, nil
		}
		return failed, r.failf(end, "unexpected end of input in literal %s", text)
	}
	r.advance(end)
	r.emitValue(t, start, end, false)
	return gotToken, nil
}

// readComment reads a comment token. It is not used when comments are skipped.
func (r *Reader) readComment() (status, error) {
	if r.opts.Comments == CommentDisallow {
		return failed, r.failf(r.here(), "comments are not allowed")
	}
	end, st, err := r.scanComment()
	if st != gotToken {
		return st, err
	}
	r.walkTo(end)
	r.emitValue(Comment, r.pend.from, r.pend.to, false)
	return gotToken, nil
}

// scanComment scans a comment whose opening slash is at the current position.
// On success it records the bounds of the comment text in r.pend and returns
// the cursor just past the comment.
func (r *Reader) scanComment() (cursor, status, error) {
	var cs commentScanner
	start := r.here()
	end, done, err := r.scanFrom(start, cs.Scan)
	if err != nil {
		return end, failed, r.failErr(end, err)
	} else if !done {
		if !r.final {
			return end, needMore, nil
		} else if err := cs.Incomplete(); err != nil {
			return end, failed, r.failErr(end, err)
		}
	}
	r.pend.from, r.pend.to = r.forward(start, 2), end
	if cs.block {
		r.pend.to = r.backward(end, 2)
	}
	return end, gotToken, nil
}

// begin marks the current position as the start of the next token.
func (r *Reader) begin() {
	r.pend.offset = r.consumed()
	r.pend.line, r.pend.col = r.line, r.col
}

// skipByte consumes the byte at the current position, which is not a newline.
func (r *Reader) skipByte() {
	r.pos++
	r.col++
}

// emitEmpty commits a structural token, whose value is empty.
func (r *Reader) emitEmpty(t Token) {
	here := r.here()
	r.emitValue(t, here, here, false)
}

// emitValue commits a token of type t whose value spans from..to.
func (r *Reader) emitValue(t Token, from, to cursor, escaped bool) {
	r.setValue(from, to)
	r.escaped = escaped
	r.tok = t
	if t != Comment {
		r.prev = t
	}
	r.hasToken = true
	r.tokStart = r.pend.offset
	r.tokEnd = r.consumed()
	r.first = LineCol{Line: r.pend.line + 1, Column: r.pend.col}
	r.last = LineCol{Line: r.line + 1, Column: r.col}
	switch t {
	case StartObject, StartArray:
		if r.bits.Depth() == 1 {
			r.isNotPrimitive = true
		}
	case String, Number, True, False, Null:
		if r.bits.Depth() == 0 {
			r.isNotPrimitive = false
		}
	}
}

// failf returns a syntax error located at c.
func (r *Reader) failf(c cursor, msg string, args ...any) error {
	return r.failErr(c, fmt.Errorf(msg, args...))
}

// failErr returns a syntax error located at c reporting err.
func (r *Reader) failErr(c cursor, err error) error {
	line, col := r.lineColAt(c)
	return &SyntaxError{
		Location: LineCol{Line: line + 1, Column: col},
		Offset:   r.offset + r.offsetOf(c),
		Message:  err.Error(),
		err:      err,
	}
}
