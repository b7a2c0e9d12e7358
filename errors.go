package engine

import "errors"

var (
	// ErrNoMatches is returned when an operation needs a current occurrence
	// but the search has none.
	ErrNoMatches = errors.New("engine: no matches")

	// ErrStaleIndex is returned when the search index no longer points at an
	// occurrence of the document it is applied to.
	ErrStaleIndex = errors.New("engine: stale search index")
)
