// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"strings"

	"github.com/creachadair/jtok/internal/escape"
	"go4.org/mem"
)

// Quote encodes src as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(src string) string {
	buf := make([]byte, 1, len(src)+2)
	buf[0] = '"'
	buf = escape.Quote(buf, mem.S(src))
	return string(append(buf, '"'))
}

// Unquote decodes a JSON string value. Double quotation marks are removed,
// and escape sequences are replaced with their unescaped equivalents.
//
// Unquote reports an error if src is not a single valid JSON string. Escaped
// surrogates that do not form a pair are replaced by the Unicode replacement
// rune.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	body := src[1:]
	end, _, err := escape.IndexStringEnd([]byte(body))
	if err != nil {
		return nil, err
	} else if end != len(body)-1 {
		return nil, errors.New("invalid quotation mark in string")
	}
	return escape.Unescape(nil, mem.S(body[:end])), nil
}
