// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// maxExpansion is the largest number of escaped bytes that decode to a single
// unescaped byte, as in "A" for "A".
const maxExpansion = 6

// Unescape appends to dst the decoded form of the escaped string body src and
// returns the extended slice. The body must already have been validated (for
// example by a StringScanner), and must not include the enclosing quotes.
//
// A \u escape of a surrogate pair decodes to the paired rune. A surrogate that
// is not part of a valid pair decodes to the Unicode replacement rune.
func Unescape(dst []byte, src mem.RO) []byte {
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dst, src)
		}
		dst = mem.Append(dst, src.SliceTo(i))
		src = src.SliceFrom(i)

		var buf [utf8.UTFMax]byte
		n, w := decodeEscape(src, &buf)
		dst = append(dst, buf[:n]...)
		src = src.SliceFrom(w)
	}
}

// Equal reports whether the escaped string body escaped decodes to exactly the
// bytes of plain. It does not allocate.
func Equal(escaped, plain mem.RO) bool {
	// Unescaping never lengthens the text, and shrinks it by at most
	// maxExpansion.
	if plain.Len() > escaped.Len() || plain.Len() < escaped.Len()/maxExpansion {
		return false
	}
	for {
		i := mem.IndexByte(escaped, '\\')
		if i < 0 {
			return escaped.Equal(plain)
		}
		if plain.Len() < i || !escaped.SliceTo(i).Equal(plain.SliceTo(i)) {
			return false
		}
		escaped, plain = escaped.SliceFrom(i), plain.SliceFrom(i)

		var buf [utf8.UTFMax]byte
		n, w := decodeEscape(escaped, &buf)
		if plain.Len() < n || !mem.B(buf[:n]).Equal(plain.SliceTo(n)) {
			return false
		}
		escaped, plain = escaped.SliceFrom(w), plain.SliceFrom(n)
	}
}

// decodeEscape decodes the escape sequence at the front of src, which must
// begin with a backslash. It writes the decoded bytes to buf and returns the
// number of bytes written and the number of bytes of src consumed.
func decodeEscape(src mem.RO, buf *[utf8.UTFMax]byte) (n, width int) {
	if src.Len() < 2 {
		// Not reachable for validated input.
		return utf8.EncodeRune(buf[:], utf8.RuneError), src.Len()
	}
	switch c := src.At(1); c {
	case '"', '\\', '/':
		buf[0] = c
	case 'b':
		buf[0] = '\b'
	case 'f':
		buf[0] = '\f'
	case 'n':
		buf[0] = '\n'
	case 'r':
		buf[0] = '\r'
	case 't':
		buf[0] = '\t'
	case 'u':
		r, ok := parseHex4(src.SliceFrom(2))
		if !ok {
			return utf8.EncodeRune(buf[:], utf8.RuneError), min(src.Len(), 6)
		}
		if !utf16.IsSurrogate(r) {
			return utf8.EncodeRune(buf[:], r), 6
		}
		if r < 0xdc00 && src.Len() >= 12 && src.At(6) == '\\' && src.At(7) == 'u' {
			if lo, ok := parseHex4(src.SliceFrom(8)); ok {
				if p := utf16.DecodeRune(r, lo); p != utf8.RuneError {
					return utf8.EncodeRune(buf[:], p), 12
				}
			}
		}
		return utf8.EncodeRune(buf[:], utf8.RuneError), 6
	default:
		return utf8.EncodeRune(buf[:], utf8.RuneError), 2
	}
	return 1, 2
}

// parseHex4 decodes the four hexadecimal digits at the front of data.
func parseHex4(data mem.RO) (rune, bool) {
	if data.Len() < 4 {
		return 0, false
	}
	var v rune
	for i := 0; i < 4; i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
