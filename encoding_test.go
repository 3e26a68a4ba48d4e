// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"testing"

	"github.com/creachadair/jtok"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", `""`},
		{"plain text", `"plain text"`},
		{"a\tb\nc", `"a\tb\nc"`},
		{`say "hi" \o/`, `"say \"hi\" \\o/"`},
		{"\x00\x1f", `"\u0000\u001f"`},
		{"caf\xc3\xa9", "\"caf\xc3\xa9\""},
		{"x\xe2\x80\xa8y", `"x\u2028y"`},
	}
	for _, test := range tests {
		if got := jtok.Quote(test.input); got != test.want {
			t.Errorf("Quote(%q): got %#q, want %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{`""`, ""},
		{`"abc"`, "abc"},
		{`"a\tb\\c\/d"`, "a\tb\\c/d"},
		{`"\u00e9\u0041"`, "\xc3\xa9A"},
		{`"\ud83d\ude00"`, "\xf0\x9f\x98\x80"},
		{`"\ud83d"`, "\xef\xbf\xbd"},
	}
	for _, test := range tests {
		got, err := jtok.Unquote(test.input)
		if err != nil {
			t.Errorf("Unquote(%#q): unexpected error: %v", test.input, err)
		} else if string(got) != test.want {
			t.Errorf("Unquote(%#q): got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestUnquoteErrors(t *testing.T) {
	tests := []string{
		``,
		`"`,
		`abc`,
		`"abc`,
		`abc"`,
		`"a"b"`,
		`"\"`,
		`"\q"`,
		"\"a\nb\"",
	}
	for _, input := range tests {
		if got, err := jtok.Unquote(input); err == nil {
			t.Errorf("Unquote(%#q): got %q, want error", input, got)
		}
	}
}
