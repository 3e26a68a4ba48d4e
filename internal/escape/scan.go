// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package escape handles scanning, quoting, unescaping and comparing the
// bodies of JSON strings.
package escape

import "fmt"

// stop marks the bytes that end a run of plain string content.
var stop [256]bool

// isHex marks the ASCII hexadecimal digits.
var isHex [256]bool

func init() {
	for i := 0; i < ' '; i++ {
		stop[i] = true
	}
	stop['"'] = true
	stop['\\'] = true
	for _, c := range []byte("0123456789abcdefABCDEF") {
		isHex[c] = true
	}
}

// Scanner states. A value in [inHex, inHex+4) records how many hex digits of
// a \u escape have been seen.
const (
	inBody  = 0
	inSlash = 1
	inHex   = 2
)

// A StringScanner locates the closing quotation mark of a JSON string body,
// validating the body as it goes. The input may be supplied in pieces across
// multiple calls to Scan, and the result does not depend on where the pieces
// are split. The zero value is ready to scan a body just after its opening
// quotation mark.
type StringScanner struct {
	state   int
	escaped bool
}

// Escaped reports whether any escape sequence has been seen.
func (s *StringScanner) Escaped() bool { return s.escaped }

// Scan consumes bytes from b. If it finds the closing quotation mark it
// reports done == true and n is the number of bytes consumed, including the
// quotation mark. If the body is invalid, it reports an error and n is the
// offset in b of the offending byte. Otherwise all of b was consumed and the
// body continues in the next piece.
func (s *StringScanner) Scan(b []byte) (n int, done bool, err error) {
	i := 0
	for i < len(b) {
		switch s.state {
		case inBody:
			for i < len(b) && !stop[b[i]] {
				i++
			}
			if i == len(b) {
				return i, false, nil
			}
			switch c := b[i]; c {
			case '"':
				return i + 1, true, nil
			case '\\':
				s.state = inSlash
				s.escaped = true
			default:
				return i, false, fmt.Errorf("invalid control character %q in string", c)
			}
		case inSlash:
			switch c := b[i]; c {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				s.state = inBody
			case 'u':
				s.state = inHex
			default:
				return i, false, fmt.Errorf("invalid escape character %q in string", c)
			}
		default:
			if c := b[i]; !isHex[c] {
				return i, false, fmt.Errorf("invalid hex digit %q in Unicode escape", c)
			}
			s.state++
			if s.state == inHex+4 {
				s.state = inBody
			}
		}
		i++
	}
	return i, false, nil
}

// IndexStringEnd reports the offset in body of the quotation mark that closes
// the string whose body begins at body[0], and whether any escapes precede it.
// It returns -1 if body ends before the string does. If the body is invalid,
// the offset of the offending byte is returned along with the error.
func IndexStringEnd(body []byte) (int, bool, error) {
	var s StringScanner
	n, done, err := s.Scan(body)
	if err != nil {
		return n, s.escaped, err
	} else if !done {
		return -1, s.escaped, nil
	}
	return n - 1, s.escaped, nil
}
