// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

// Package number validates the JSON number grammar:
//
//	number = [ "-" ] int [ frac ] [ exp ]
//	int    = "0" / ( digit1-9 *digit )
//	frac   = "." 1*digit
//	exp    = ( "e" / "E" ) [ "-" / "+" ] 1*digit
package number

import (
	"errors"
	"fmt"
)

// ErrNeedMore is reported by Validate when the input ends before the number
// can be known to be complete.
var ErrNeedMore = errors.New("number: need more input")

type state uint8

const (
	start    state = iota // nothing seen
	sign                  // "-"
	zero                  // leading "0"
	integer               // nonzero integer digits
	dot                   // "."
	fraction              // fraction digits
	exponent              // "e" or "E"
	expSign               // exponent sign
	expDigit              // exponent digits
)

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// A Scanner recognizes a single JSON number. The input may be supplied in
// pieces across multiple calls to Scan, and the result does not depend on
// where the pieces are split. The zero value is ready for use.
type Scanner struct {
	st state
}

// Scan consumes bytes from b. If it finds a byte that cannot continue the
// number, it reports done == true and n is the offset of that byte, which is
// not consumed. If the grammar is violated, it reports an error and n is the
// offset of the offending byte. Otherwise all of b was consumed.
func (s *Scanner) Scan(b []byte) (n int, done bool, err error) {
	for i, c := range b {
		switch s.st {
		case start:
			switch {
			case c == '-':
				s.st = sign
			case c == '0':
				s.st = zero
			case isDigit(c):
				s.st = integer
			default:
				return i, false, fmt.Errorf("invalid %q at start of number", c)
			}
		case sign:
			switch {
			case c == '0':
				s.st = zero
			case isDigit(c):
				s.st = integer
			default:
				return i, false, fmt.Errorf("expected digit after minus sign, got %q", c)
			}
		case zero:
			switch {
			case isDigit(c):
				return i, false, errors.New("invalid leading zero in number")
			case c == '.':
				s.st = dot
			case c == 'e' || c == 'E':
				s.st = exponent
			default:
				return i, true, nil
			}
		case integer:
			switch {
			case isDigit(c):
			case c == '.':
				s.st = dot
			case c == 'e' || c == 'E':
				s.st = exponent
			default:
				return i, true, nil
			}
		case dot:
			if !isDigit(c) {
				return i, false, fmt.Errorf("expected digit after decimal point, got %q", c)
			}
			s.st = fraction
		case fraction:
			switch {
			case isDigit(c):
			case c == 'e' || c == 'E':
				s.st = exponent
			default:
				return i, true, nil
			}
		case exponent:
			switch {
			case c == '+' || c == '-':
				s.st = expSign
			case isDigit(c):
				s.st = expDigit
			default:
				return i, false, fmt.Errorf("expected sign or digit in exponent, got %q", c)
			}
		case expSign:
			if !isDigit(c) {
				return i, false, fmt.Errorf("expected digit in exponent, got %q", c)
			}
			s.st = expDigit
		case expDigit:
			if !isDigit(c) {
				return i, true, nil
			}
		}
	}
	return len(b), false, nil
}

// Incomplete returns the error describing a number that ends in its current
// state. It returns nil if the number is complete.
func (s *Scanner) Incomplete() error {
	switch s.st {
	case start:
		return errors.New("empty number")
	case sign:
		return errors.New("expected digit after minus sign")
	case dot:
		return errors.New("expected digit after decimal point")
	case exponent, expSign:
		return errors.New("expected digit in exponent")
	}
	return nil
}

// Validate reports the length of the number at the front of body. If final is
// false and body ends while the number could still continue, Validate reports
// ErrNeedMore. If final is true, the end of body terminates the number.
func Validate(body []byte, final bool) (int, error) {
	var s Scanner
	n, done, err := s.Scan(body)
	if err != nil || done {
		return n, err
	} else if !final {
		return n, ErrNeedMore
	}
	return n, s.Incomplete()
}
