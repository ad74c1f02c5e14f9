package tmv1

import (
	"errors"
	"iter"
)

// ErrNoItems is returned by First when the sequence yields nothing.
var ErrNoItems = errors.New("sequence has no items")

// Collect drains seq into a slice. A limit greater than zero stops after
// that many items. The first error stops collection and is returned with
// the items gathered so far.
func Collect[T any](seq iter.Seq2[*T, error], limit int) ([]*T, error) {
	var out []*T
	for item, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, item)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// First returns the first item of seq. Only the first page is fetched.
func First[T any](seq iter.Seq2[*T, error]) (*T, error) {
	for item, err := range seq {
		return item, err
	}
	return nil, ErrNoItems
}

// Filter yields the items of seq for which keep returns true. Errors pass
// through and end the sequence.
func Filter[T any](seq iter.Seq2[*T, error], keep func(*T) bool) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for item, err := range seq {
			if err != nil {
				yield(nil, err)
				return
			}
			if keep(item) && !yield(item, nil) {
				return
			}
		}
	}
}
