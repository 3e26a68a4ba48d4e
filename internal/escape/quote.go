// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// shortEsc maps control bytes with a short escape to the escape letter.
var shortEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  0, // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote appends to dst the escaped form of src, suitable as the body of a JSON
// string, and returns the extended slice. Quotation marks are not added.
//
// Control bytes, quotation marks and backslashes are escaped, as are the line
// and paragraph separators U+2028 and U+2029. Invalid UTF-8 is copied through
// unchanged.
func Quote(dst []byte, src mem.RO) []byte {
	for src.Len() != 0 {
		b := src.At(0)
		if b < utf8.RuneSelf {
			switch {
			case b < ' ':
				if e := shortEsc[b]; e != 0 {
					dst = append(dst, '\\', e)
				} else {
					dst = append(dst, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
				}
			case b == '\\' || b == '"':
				dst = append(dst, '\\', b)
			default:
				dst = append(dst, b)
			}
			src = src.SliceFrom(1)
			continue
		}

		r, n := mem.DecodeRune(src)
		switch {
		case r == '\u2028':
			dst = append(dst, `\u2028`...)
		case r == '\u2029':
			dst = append(dst, `\u2029`...)
		default:
			dst = mem.Append(dst, src.SliceTo(n))
		}
		src = src.SliceFrom(n)
	}
	return dst
}
