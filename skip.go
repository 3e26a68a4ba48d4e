// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jtok

// Skip advances r past the value at the current position. If the current
// token is a property name, Skip skips the member's value. If it is the start
// of an object or array, Skip reads through the matching end token. Otherwise
// Skip does nothing, since a scalar is read completely by one call to Read.
//
// Skip panics with a *UsageError if r was not given the final input; use
// TrySkip or TrySkipPartial for partial input.
func (r *Reader) Skip() error {
	if !r.final {
		panic(usageErrorf("Skip", "input is not final"))
	}
	_, err := r.TrySkipPartial(r.CurrentDepth())
	return err
}

// TrySkip behaves like Skip, but may be used on partial input. If the input
// ends before the value is complete, TrySkip reports false and r is restored
// to its state before the call, so that skipping can be retried from the same
// token once more input is available.
func (r *Reader) TrySkip() (bool, error) {
	if r.final {
		if err := r.Skip(); err != nil {
			return false, err
		}
		return true, nil
	}
	saved := *r
	saved.bits = r.bits.Clone()
	saved.seq = append([][]byte(nil), r.seq...)

	ok, err := r.TrySkipPartial(r.CurrentDepth())
	if err != nil {
		return false, err
	} else if !ok {
		*r = saved
	}
	return ok, nil
}

// TrySkipPartial skips the current value, keeping whatever progress it makes.
// The caller passes the CurrentDepth of the token being skipped. If the input
// ends early, TrySkipPartial reports false; the caller may capture State,
// resume with more input, and call TrySkipPartial again with the same
// targetDepth to continue where it stopped. It reports true once r is
// positioned on the last token of the skipped value.
func (r *Reader) TrySkipPartial(targetDepth int) (bool, error) {
	if targetDepth < 0 || targetDepth > r.CurrentDepth() {
		panic(usageErrorf("TrySkipPartial", "target depth %d out of range [0, %d]", targetDepth, r.CurrentDepth()))
	}
	if targetDepth == r.CurrentDepth() {
		for r.tok == PropertyName || (r.tok == Comment && r.prev == PropertyName) {
			if ok, err := r.Read(); !ok {
				return false, err
			}
		}
		if r.tok != StartObject && r.tok != StartArray {
			return true, nil
		}
	}
	for {
		if ok, err := r.Read(); !ok {
			return false, err
		}
		if r.CurrentDepth() <= targetDepth {
			return true, nil
		}
	}
}
