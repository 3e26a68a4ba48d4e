// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtok implements a resumable pull tokenizer and a stream parser for
// JSON.
//
// # Reading
//
// The Reader type tokenizes a window of input held in memory. Construct a
// reader for a buffer and call its Read method to advance to each token:
//
//	r := jtok.NewReader(data, true, jtok.Options{})
//	for {
//	   ok, err := r.Read()
//	   if err != nil {
//	      log.Fatalf("Read failed: %v", err)
//	   } else if !ok {
//	      break // end of input
//	   }
//	   log.Printf("Token %v at %v", r.Token(), r.Location())
//	}
//
// The value of the current token is available from ValueSpan or Text, which
// return a view of the raw input, and from typed accessors such as
// StringValue, Int64, Float64, Bool, Time and UUID, which decode it.
//
// # Resumption
//
// The input need not be complete. If final is false and the window ends in the
// middle of a token, Read reports (false, nil) and leaves the reader exactly
// where it was before the incomplete token. The caller then discards the first
// BytesConsumed bytes of its buffer, appends more input, and continues with a
// new reader built from the saved State:
//
//	st := r.State()
//	buf = append(buf[:0], buf[r.BytesConsumed():]...)
//	buf = append(buf, more...)
//	r = jtok.Resume(buf, atEOF, st)
//
// The tokens reported do not depend on where the input is split. Positions
// and offsets reported by a resumed reader are relative to the start of the
// whole logical input.
//
// Input that is already split into pieces can be read without copying using
// NewSegmentReader. A token whose text crosses a segment boundary reports
// HasValueSequence, and its pieces are available from ValueSequence.
//
// # Streaming
//
// The Stream type implements an event-driven stream parser for JSON, built on
// a Reader. The parser works by calling methods on a Handler value to report
// the structure of the input. In case of error, parsing is terminated and an
// error of concrete type *jtok.SyntaxError is returned.
//
// Construct a Stream from an io.Reader, and call its Parse method. Parse
// returns nil if the input was fully processed without error. If a Handler
// method reports an error, parsing stops and that error is returned.
//
//	s := jtok.NewStream(input)
//	if err := s.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// To parse a single value from the front of the input, call ParseOne. This
// method returns io.EOF if no further values are available.
//
// # Handlers
//
// The Handler interface accepts parser events from a Stream. The methods of
// a handler correspond to the syntax of JSON values:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	comment    | Comment                   | // ... or /* ... */
//	--         | EndOfInput                | end of input
//
// Each method is passed an Anchor value that can be used to retrieve location
// and type information. The Anchor passed to a handler method is only valid
// for the duration of that method call; the handler must copy any data it
// needs to retain beyond the lifetime of the call. Comments are delivered only
// to a handler that implements CommentHandler.
//
// # Extensions
//
// By default a Reader accepts exactly one standard JSON value. Options enable
// comments, trailing commas, and multiple top-level values, and set the
// maximum nesting depth.
package jtok
