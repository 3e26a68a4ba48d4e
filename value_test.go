// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/creachadair/jtok"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

// first returns a reader positioned at the first token of input.
func first(t *testing.T, input string) *jtok.Reader {
	t.Helper()
	r := jtok.NewReader([]byte(input), true, jtok.Options{})
	if ok, err := r.Read(); !ok {
		t.Fatalf("Read %#q: got (false, %v)", input, err)
	}
	return r
}

func TestStringValue(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		escaped bool
	}{
		{`""`, "", false},
		{`"plain"`, "plain", false},
		{`"a\tb c\n"`, "a\tb c\n", true},
		{`"caf\u00e9 \"x\""`, "caf\xc3\xa9 \"x\"", true},
		{`"\ud83d\ude00"`, "\xf0\x9f\x98\x80", true},
		{"\"caf\xc3\xa9\"", "caf\xc3\xa9", false},
	}
	for _, test := range tests {
		r := first(t, test.input)
		if got := r.ValueIsEscaped(); got != test.escaped {
			t.Errorf("ValueIsEscaped %#q: got %v, want %v", test.input, got, test.escaped)
		}
		got, err := r.StringValue()
		if err != nil {
			t.Errorf("StringValue %#q: unexpected error: %v", test.input, err)
		} else if got != test.want {
			t.Errorf("StringValue %#q: got %#q, want %#q", test.input, got, test.want)
		}
		if got := string(r.AppendUnescaped([]byte("<"))); got != "<"+test.want {
			t.Errorf("AppendUnescaped %#q: got %#q, want %#q", test.input, got, "<"+test.want)
		}
		if !r.ValueTextEquals(test.want) {
			t.Errorf("ValueTextEquals(%#q) %#q: got false, want true", test.want, test.input)
		}
		if r.ValueTextEqualsBytes([]byte(test.want + "!")) {
			t.Errorf("ValueTextEqualsBytes(%#q) %#q: got true, want false", test.want+"!", test.input)
		}
	}

	t.Run("InvalidUTF8", func(t *testing.T) {
		r := first(t, "\"bad \xff\"")
		if s, ok := r.TryStringValue(); ok {
			t.Errorf("TryStringValue: got %q, want failure", s)
		}
		if got := string(r.Unescape()); got != "bad \xff" {
			t.Errorf("Unescape: got %#q, want %#q", got, "bad \xff")
		}
	})
}

func TestValueTextEqualsSegments(t *testing.T) {
	tests := []struct {
		segs []string
		text string
		want bool
	}{
		{[]string{`"ab`, `cd"`}, "abcd", true},
		{[]string{`"ab`, `cd"`}, "abc", false},
		{[]string{`"ab`, `cd"`}, "abcde", false},
		{[]string{`"ab`, `cd"`}, "abxd", false},
		{[]string{`"a\`, `nb"`}, "a\nb", true},
		{[]string{`"\u00`, `e9"`}, "\xc3\xa9", true},
		{[]string{`"`, `x`, `y`, `"`}, "xy", true},
	}
	for _, test := range tests {
		var segs [][]byte
		for _, s := range test.segs {
			segs = append(segs, []byte(s))
		}
		r := jtok.NewSegmentReader(segs, true, jtok.Options{})
		if ok, err := r.Read(); !ok {
			t.Fatalf("Read %q: got (false, %v)", test.segs, err)
		}
		if got := r.ValueTextEquals(test.text); got != test.want {
			t.Errorf("ValueTextEquals(%#q) on %q: got %v, want %v", test.text, test.segs, got, test.want)
		}
	}
}

func TestPropertyNameValue(t *testing.T) {
	r := jtok.NewReader([]byte(`{"key": 1}`), true, jtok.Options{})
	mustRead(t, r, 2)
	if !r.ValueTextEquals("key") {
		t.Error(`ValueTextEquals("key"): got false, want true`)
	}
	if got, err := r.StringValue(); err != nil || got != "key" {
		t.Errorf("StringValue: got (%q, %v), want (key, nil)", got, err)
	}
	if got := string(r.Text()); got != `key` {
		t.Errorf("Text: got %#q, want %#q", got, `key`)
	}
}

func TestNumbers(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		tests := []struct {
			input string
			i64   int64
			ok64  bool
			ok32  bool
			ok16  bool
			ok8   bool
		}{
			{"0", 0, true, true, true, true},
			{"-12", -12, true, true, true, true},
			{"127", 127, true, true, true, true},
			{"-129", -129, true, true, true, false},
			{"40000", 40000, true, true, false, false},
			{"-2147483649", -2147483649, true, false, false, false},
			{"9223372036854775807", math.MaxInt64, true, false, false, false},
			{"9223372036854775808", 0, false, false, false, false},
			{"1.0", 0, false, false, false, false},
			{"1e3", 0, false, false, false, false},
		}
		for _, test := range tests {
			r := first(t, test.input)
			v, ok := r.TryInt64()
			if ok != test.ok64 || (ok && v != test.i64) {
				t.Errorf("TryInt64 %q: got (%d, %v), want (%d, %v)", test.input, v, ok, test.i64, test.ok64)
			}
			if v, ok := r.TryInt32(); ok != test.ok32 || (ok && int64(v) != test.i64) {
				t.Errorf("TryInt32 %q: got (%d, %v), want ok=%v", test.input, v, ok, test.ok32)
			}
			if v, ok := r.TryInt16(); ok != test.ok16 || (ok && int64(v) != test.i64) {
				t.Errorf("TryInt16 %q: got (%d, %v), want ok=%v", test.input, v, ok, test.ok16)
			}
			if v, ok := r.TryInt8(); ok != test.ok8 || (ok && int64(v) != test.i64) {
				t.Errorf("TryInt8 %q: got (%d, %v), want ok=%v", test.input, v, ok, test.ok8)
			}
		}
	})
	t.Run("Uint", func(t *testing.T) {
		tests := []struct {
			input string
			u64   uint64
			ok64  bool
			ok32  bool
			ok16  bool
			ok8   bool
		}{
			{"0", 0, true, true, true, true},
			{"255", 255, true, true, true, true},
			{"256", 256, true, true, true, false},
			{"70000", 70000, true, true, false, false},
			{"4294967296", 4294967296, true, false, false, false},
			{"18446744073709551615", math.MaxUint64, true, false, false, false},
			{"18446744073709551616", 0, false, false, false, false},
			{"-1", 0, false, false, false, false},
			{"2.5", 0, false, false, false, false},
		}
		for _, test := range tests {
			r := first(t, test.input)
			v, ok := r.TryUint64()
			if ok != test.ok64 || (ok && v != test.u64) {
				t.Errorf("TryUint64 %q: got (%d, %v), want (%d, %v)", test.input, v, ok, test.u64, test.ok64)
			}
			if v, ok := r.TryUint32(); ok != test.ok32 || (ok && uint64(v) != test.u64) {
				t.Errorf("TryUint32 %q: got (%d, %v), want ok=%v", test.input, v, ok, test.ok32)
			}
			if v, ok := r.TryUint16(); ok != test.ok16 || (ok && uint64(v) != test.u64) {
				t.Errorf("TryUint16 %q: got (%d, %v), want ok=%v", test.input, v, ok, test.ok16)
			}
			if v, ok := r.TryUint8(); ok != test.ok8 || (ok && uint64(v) != test.u64) {
				t.Errorf("TryUint8 %q: got (%d, %v), want ok=%v", test.input, v, ok, test.ok8)
			}
		}
	})
	t.Run("Float", func(t *testing.T) {
		tests := []struct {
			input string
			want  float64
			ok    bool
		}{
			{"0", 0, true},
			{"-0.5", -0.5, true},
			{"1e3", 1000, true},
			{"6.25E-2", 0.0625, true},
			{"1e400", 0, false},
		}
		for _, test := range tests {
			r := first(t, test.input)
			v, ok := r.TryFloat64()
			if ok != test.ok || (ok && v != test.want) {
				t.Errorf("TryFloat64 %q: got (%g, %v), want (%g, %v)", test.input, v, ok, test.want, test.ok)
			}
		}
		r := first(t, "1e39")
		if v, err := r.Float32(); err == nil {
			t.Errorf("Float32 1e39: got %g, want error", v)
		}
		r = first(t, "0.25")
		if v, err := r.Float32(); err != nil || v != 0.25 {
			t.Errorf("Float32 0.25: got (%g, %v), want (0.25, nil)", v, err)
		}
	})
	t.Run("Rat", func(t *testing.T) {
		r := first(t, "-1.25e2")
		got, err := r.Rat()
		if err != nil {
			t.Fatalf("Rat: unexpected error: %v", err)
		}
		if want := big.NewRat(-125, 1); got.Cmp(want) != 0 {
			t.Errorf("Rat: got %v, want %v", got, want)
		}
		r = first(t, "0.1")
		if got, ok := r.TryRat(); !ok || got.Cmp(big.NewRat(1, 10)) != 0 {
			t.Errorf("TryRat: got (%v, %v), want (1/10, true)", got, ok)
		}
	})
	t.Run("Segments", func(t *testing.T) {
		r := jtok.NewSegmentReader([][]byte{[]byte("[12"), []byte("34"), []byte("5]")}, true, jtok.Options{})
		mustRead(t, r, 2)
		if !r.HasValueSequence() {
			t.Error("HasValueSequence: got false, want true")
		}
		if v, err := r.Int64(); err != nil || v != 12345 {
			t.Errorf("Int64: got (%d, %v), want (12345, nil)", v, err)
		}
	})
}

func TestBool(t *testing.T) {
	if !first(t, "true").Bool() {
		t.Error("Bool true: got false")
	}
	if first(t, "false").Bool() {
		t.Error("Bool false: got true")
	}
}

func TestTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{`"2024-03-01T12:30:00Z"`, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{`"2024-03-01T12:30:00.5Z"`, time.Date(2024, 3, 1, 12, 30, 0, 500000000, time.UTC)},
		{`"2024-03-01T12:30:00+02:00"`, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{`"2024-03-01T12:30:00"`, time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
		{`"2024-03-01"`, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{`"2024\u002d03-01"`, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, test := range tests {
		got, err := first(t, test.input).Time()
		if err != nil {
			t.Errorf("Time %s: unexpected error: %v", test.input, err)
		} else if !got.Equal(test.want) {
			t.Errorf("Time %s: got %v, want %v", test.input, got, test.want)
		}
	}
	for _, bad := range []string{`"yesterday"`, `"2024-13-01"`, `"2024-03-01T25:00:00Z"`, `""`} {
		if got, ok := first(t, bad).TryTime(); ok {
			t.Errorf("TryTime %s: got %v, want failure", bad, got)
		}
	}
}

func TestUUID(t *testing.T) {
	want := uuid.MustParse("f47ac10b-58cc-4372-a567-0e02b2c3d479")
	got, err := first(t, `"f47ac10b-58cc-4372-a567-0e02b2c3d479"`).UUID()
	if err != nil {
		t.Fatalf("UUID: unexpected error: %v", err)
	} else if got != want {
		t.Errorf("UUID: got %v, want %v", got, want)
	}
	for _, bad := range []string{
		`"{f47ac10b-58cc-4372-a567-0e02b2c3d479}"`,
		`"f47ac10b58cc4372a5670e02b2c3d479"`,
		`"f47ac10b-58cc-4372-a567-0e02b2c3d47x"`,
		`""`,
	} {
		if got, ok := first(t, bad).TryUUID(); ok {
			t.Errorf("TryUUID %s: got %v, want failure", bad, got)
		}
	}
}

func TestBytes(t *testing.T) {
	got, err := first(t, `"aGVsbG8sIHdvcmxk"`).Bytes()
	if err != nil {
		t.Fatalf("Bytes: unexpected error: %v", err)
	}
	if diff := cmp.Diff([]byte("hello, world"), got); diff != "" {
		t.Errorf("Bytes (-want, +got):\n%s", diff)
	}
	if got, ok := first(t, `"aGk="`).TryBytes(); !ok || string(got) != "hi" {
		t.Errorf("TryBytes short: got (%q, %v), want (hi, true)", got, ok)
	}
	if got, ok := first(t, `"not base64!"`).TryBytes(); ok {
		t.Errorf("TryBytes invalid: got %q, want failure", got)
	}
}

func TestComment(t *testing.T) {
	r := jtok.NewReader([]byte("// note\n1"), true, jtok.Options{Comments: jtok.CommentAllow})
	mustRead(t, r, 1)
	if got := r.CommentText(); got != " note" {
		t.Errorf("CommentText: got %q, want %q", got, " note")
	}
}

func TestUsagePanics(t *testing.T) {
	t.Run("NoToken", func(t *testing.T) {
		r := jtok.NewReader([]byte(`"x"`), true, jtok.Options{})
		mtest.MustPanic(t, func() { r.StringValue() })
	})
	t.Run("WrongToken", func(t *testing.T) {
		str := first(t, `"12"`)
		num := first(t, `12`)
		obj := first(t, `{}`)
		mtest.MustPanic(t, func() { str.Int64() })
		mtest.MustPanic(t, func() { str.TryFloat64() })
		mtest.MustPanic(t, func() { str.Bool() })
		mtest.MustPanic(t, func() { str.CommentText() })
		mtest.MustPanic(t, func() { num.StringValue() })
		mtest.MustPanic(t, func() { num.ValueTextEquals("12") })
		mtest.MustPanic(t, func() { num.Time() })
		mtest.MustPanic(t, func() { obj.Uint8() })
		mtest.MustPanic(t, func() { obj.Bytes() })
		mtest.MustPanic(t, func() { obj.UUID() })
	})
	t.Run("UsageError", func(t *testing.T) {
		num := first(t, `12`)
		v := mtest.MustPanic(t, func() { num.AppendUnescaped(nil) })
		if _, ok := v.(*jtok.UsageError); !ok {
			t.Errorf("Panic value: got %T, want *jtok.UsageError", v)
		}
	})
}
