// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/creachadair/jtok/internal/escape"
	"github.com/google/uuid"
	"go4.org/mem"
)

// mustBe panics with a *UsageError unless the current token is one of ts.
func (r *Reader) mustBe(op string, ts ...Token) {
	if !r.hasToken {
		panic(usageErrorf(op, "no current token"))
	}
	for _, t := range ts {
		if r.tok == t {
			return
		}
	}
	panic(usageErrorf(op, "not valid for a %v token", r.tok))
}

func (r *Reader) mustBeString(op string) { r.mustBe(op, String, PropertyName) }

// text returns the raw value of the current token as a read-only view.
func (r *Reader) text() mem.RO { return mem.B(r.Text()) }

// AppendUnescaped appends the decoded text of the current string or property
// name to dst and returns the result. Invalid UTF-8 is copied unchanged.
func (r *Reader) AppendUnescaped(dst []byte) []byte {
	r.mustBeString("AppendUnescaped")
	if !r.escaped {
		if !r.hasSeq {
			return append(dst, r.span...)
		}
		for _, s := range r.seq {
			dst = append(dst, s...)
		}
		return dst
	}
	return escape.Unescape(dst, r.text())
}

// Unescape returns the decoded text of the current string or property name.
// If the value is in a single segment and has no escapes, the result aliases
// the input and is only valid until the next call of Read.
func (r *Reader) Unescape() []byte {
	r.mustBeString("Unescape")
	if !r.escaped && !r.hasSeq {
		return r.span
	}
	return r.AppendUnescaped(nil)
}

// StringValue returns the decoded text of the current string or property
// name. It reports an error if the decoded text is not valid UTF-8.
func (r *Reader) StringValue() (string, error) {
	r.mustBeString("StringValue")
	b := r.Unescape()
	if !utf8.Valid(b) {
		return "", fmt.Errorf("string value %q is not valid UTF-8", b)
	}
	return string(b), nil
}

// TryStringValue is like StringValue, but reports success as a bool.
func (r *Reader) TryStringValue() (string, bool) {
	s, err := r.StringValue()
	return s, err == nil
}

// ValueTextEquals reports whether the decoded text of the current string or
// property name equals text. It does not allocate.
func (r *Reader) ValueTextEquals(text string) bool {
	r.mustBeString("ValueTextEquals")
	return r.valueTextEquals(mem.S(text))
}

// ValueTextEqualsBytes is like ValueTextEquals, but takes a byte slice.
func (r *Reader) ValueTextEqualsBytes(text []byte) bool {
	r.mustBeString("ValueTextEqualsBytes")
	return r.valueTextEquals(mem.B(text))
}

func (r *Reader) valueTextEquals(want mem.RO) bool {
	if r.escaped {
		return escape.Equal(r.text(), want)
	} else if !r.hasSeq {
		return mem.B(r.span).Equal(want)
	}
	for _, s := range r.seq {
		if want.Len() < len(s) || !want.SliceTo(len(s)).Equal(mem.B(s)) {
			return false
		}
		want = want.SliceFrom(len(s))
	}
	return want.Len() == 0
}

// CommentText returns the text of the current comment, without delimiters.
func (r *Reader) CommentText() string {
	r.mustBe("CommentText", Comment)
	return string(r.Text())
}

// Bool returns the value of the current true or false token.
func (r *Reader) Bool() bool {
	r.mustBe("Bool", True, False)
	return r.tok == True
}

func (r *Reader) parseInt(op string, bits int) (int64, error) {
	r.mustBe(op, Number)
	v, err := mem.ParseInt(r.text(), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid int%d value: %w", bits, err)
	}
	return v, nil
}

func (r *Reader) parseUint(op string, bits int) (uint64, error) {
	r.mustBe(op, Number)
	v, err := mem.ParseUint(r.text(), 10, bits)
	if err != nil {
		return 0, fmt.Errorf("invalid uint%d value: %w", bits, err)
	}
	return v, nil
}

func (r *Reader) parseFloat(op string, bits int) (float64, error) {
	r.mustBe(op, Number)
	v, err := mem.ParseFloat(r.text(), bits)
	if err != nil {
		return 0, fmt.Errorf("invalid float%d value: %w", bits, err)
	}
	return v, nil
}

// Int64 returns the value of the current number as an int64. It reports an
// error if the number has a fraction or exponent, or does not fit.
func (r *Reader) Int64() (int64, error) { return r.parseInt("Int64", 64) }

// Int32 returns the value of the current number as an int32.
func (r *Reader) Int32() (int32, error) {
	v, err := r.parseInt("Int32", 32)
	return int32(v), err
}

// Int16 returns the value of the current number as an int16.
func (r *Reader) Int16() (int16, error) {
	v, err := r.parseInt("Int16", 16)
	return int16(v), err
}

// Int8 returns the value of the current number as an int8.
func (r *Reader) Int8() (int8, error) {
	v, err := r.parseInt("Int8", 8)
	return int8(v), err
}

// Uint64 returns the value of the current number as a uint64. It reports an
// error if the number is negative, has a fraction or exponent, or does not
// fit.
func (r *Reader) Uint64() (uint64, error) { return r.parseUint("Uint64", 64) }

// Uint32 returns the value of the current number as a uint32.
func (r *Reader) Uint32() (uint32, error) {
	v, err := r.parseUint("Uint32", 32)
	return uint32(v), err
}

// Uint16 returns the value of the current number as a uint16.
func (r *Reader) Uint16() (uint16, error) {
	v, err := r.parseUint("Uint16", 16)
	return uint16(v), err
}

// Uint8 returns the value of the current number as a uint8.
func (r *Reader) Uint8() (uint8, error) {
	v, err := r.parseUint("Uint8", 8)
	return uint8(v), err
}

// Float64 returns the value of the current number as a float64. It reports an
// error if the value is out of range.
func (r *Reader) Float64() (float64, error) { return r.parseFloat("Float64", 64) }

// Float32 returns the value of the current number as a float32.
func (r *Reader) Float32() (float32, error) {
	v, err := r.parseFloat("Float32", 32)
	return float32(v), err
}

// TryInt64 is like Int64, but reports success as a bool.
func (r *Reader) TryInt64() (int64, bool) { v, err := r.Int64(); return v, err == nil }

// TryInt32 is like Int32, but reports success as a bool.
func (r *Reader) TryInt32() (int32, bool) { v, err := r.Int32(); return v, err == nil }

// TryInt16 is like Int16, but reports success as a bool.
func (r *Reader) TryInt16() (int16, bool) { v, err := r.Int16(); return v, err == nil }

// TryInt8 is like Int8, but reports success as a bool.
func (r *Reader) TryInt8() (int8, bool) { v, err := r.Int8(); return v, err == nil }

// TryUint64 is like Uint64, but reports success as a bool.
func (r *Reader) TryUint64() (uint64, bool) { v, err := r.Uint64(); return v, err == nil }

// TryUint32 is like Uint32, but reports success as a bool.
func (r *Reader) TryUint32() (uint32, bool) { v, err := r.Uint32(); return v, err == nil }

// TryUint16 is like Uint16, but reports success as a bool.
func (r *Reader) TryUint16() (uint16, bool) { v, err := r.Uint16(); return v, err == nil }

// TryUint8 is like Uint8, but reports success as a bool.
func (r *Reader) TryUint8() (uint8, bool) { v, err := r.Uint8(); return v, err == nil }

// TryFloat64 is like Float64, but reports success as a bool.
func (r *Reader) TryFloat64() (float64, bool) { v, err := r.Float64(); return v, err == nil }

// TryFloat32 is like Float32, but reports success as a bool.
func (r *Reader) TryFloat32() (float32, bool) { v, err := r.Float32(); return v, err == nil }

// Rat returns the exact value of the current number.
func (r *Reader) Rat() (*big.Rat, error) {
	r.mustBe("Rat", Number)
	v, ok := new(big.Rat).SetString(string(r.Text()))
	if !ok {
		return nil, fmt.Errorf("invalid number %q", r.Text())
	}
	return v, nil
}

// TryRat is like Rat, but reports success as a bool.
func (r *Reader) TryRat() (*big.Rat, bool) { v, err := r.Rat(); return v, err == nil }

// timeLayouts are the accepted forms of a time string, in order of
// preference. A time without a zone offset is reported in UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	time.DateOnly,
}

// Time returns the value of the current string as a time. The string must be
// an RFC 3339 date-time, a date-time without zone offset, or a date.
func (r *Reader) Time() (time.Time, error) {
	r.mustBe("Time", String)
	s := string(r.Unescape())
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time value %q", s)
}

// TryTime is like Time, but reports success as a bool.
func (r *Reader) TryTime() (time.Time, bool) { v, err := r.Time(); return v, err == nil }

// UUID returns the value of the current string as a UUID. The string must
// have the hyphenated form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx.
func (r *Reader) UUID() (uuid.UUID, error) {
	r.mustBe("UUID", String)
	s := string(r.Unescape())
	if len(s) != 36 {
		return uuid.Nil, fmt.Errorf("invalid UUID %q: wrong length", s)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid UUID %q: %w", s, err)
	}
	return id, nil
}

// TryUUID is like UUID, but reports success as a bool.
func (r *Reader) TryUUID() (uuid.UUID, bool) { v, err := r.UUID(); return v, err == nil }

// Bytes returns the base64-decoded value of the current string, which must use
// the standard padded alphabet.
func (r *Reader) Bytes() ([]byte, error) {
	r.mustBe("Bytes", String)
	src := r.Unescape()
	dst := make([]byte, base64.StdEncoding.DecodedLen(len(src)))
	n, err := base64.StdEncoding.Decode(dst, src)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 value: %w", err)
	}
	return dst[:n], nil
}

// TryBytes is like Bytes, but reports success as a bool.
func (r *Reader) TryBytes() ([]byte, bool) { v, err := r.Bytes(); return v, err == nil }
