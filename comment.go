// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"
)

type commentState uint8

const (
	cStart     commentState = iota // before the opening "/"
	cSlash                         // after the opening "/"
	cLine                          // inside a line comment
	cLineE2                        // line comment, after byte 0xE2
	cLineE280                      // line comment, after bytes 0xE2 0x80
	cBlock                         // inside a block comment
	cBlockStar                     // block comment, after "*"
)

// A commentScanner recognizes a single comment, either a line comment
// beginning with "//" or a block comment delimited by "/*" and "*/". The
// input may be supplied in pieces across calls to Scan. The zero value is
// ready to scan a comment whose opening slash is the first byte.
//
// A line comment ends before the first CR or LF, which is not consumed.
// The encoded line separators U+2028 and U+2029 are not permitted in a line
// comment.
type commentScanner struct {
	st    commentState
	block bool
}

// Scan consumes bytes from b. It reports done == true when the comment is
// complete, with n the number of bytes consumed. If the comment is invalid it
// reports an error with n the offset of the offending byte.
func (s *commentScanner) Scan(b []byte) (n int, done bool, err error) {
	for i, c := range b {
		switch s.st {
		case cStart:
			s.st = cSlash
		case cSlash:
			switch c {
			case '/':
				s.st = cLine
			case '*':
				s.st, s.block = cBlock, true
			default:
				return i, false, fmt.Errorf("expected '/' or '*' after '/', got %q", c)
			}
		case cLine, cLineE2, cLineE280:
			switch {
			case c == '\n' || c == '\r':
				return i, true, nil
			case c == 0xE2:
				s.st = cLineE2
			case c == 0x80 && s.st == cLineE2:
				s.st = cLineE280
			case (c == 0xA8 || c == 0xA9) && s.st == cLineE280:
				return i, false, errors.New("line separator not allowed in comment")
			default:
				s.st = cLine
			}
		case cBlock:
			if c == '*' {
				s.st = cBlockStar
			}
		case cBlockStar:
			switch c {
			case '/':
				return i + 1, true, nil
			case '*':
			default:
				s.st = cBlock
			}
		}
	}
	return len(b), false, nil
}

// Incomplete returns the error describing a comment that ends in its current
// state. It returns nil if a line comment may end here.
func (s *commentScanner) Incomplete() error {
	switch s.st {
	case cStart, cSlash:
		return errors.New("unexpected end of input after '/'")
	case cBlock, cBlockStar:
		return errors.New("unterminated block comment")
	}
	return nil
}
