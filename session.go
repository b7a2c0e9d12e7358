package engine

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// State is the search position shown to the user.
type State struct {
	SearchString      string
	SearchIndex       int
	SearchResultCount int
}

// Session keeps a document together with its current search position, the
// way the editor's search and replace dialog does. Every edit recounts the
// document so the position always refers to a real occurrence.
type Session struct {
	mu     sync.Mutex
	id     uuid.UUID
	doc    Document
	state  State
	logger *slog.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the logger used for session records.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a session over doc with an empty search.
func NewSession(doc Document, opts ...SessionOption) *Session {
	s := &Session{
		id:     uuid.New(),
		doc:    doc,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id.String())
	return s
}

// ID identifies the session in log records.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Document returns the current document.
func (s *Session) Document() Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// State returns the current search position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetDocument swaps in a document edited elsewhere and recounts, keeping
// the index where it was if it is still in range.
func (s *Session) SetDocument(doc Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	s.recount()
}

// SetSearch starts a new search at the first occurrence.
func (s *Session) SetSearch(search string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.SearchString = search
	s.state.SearchIndex = 0
	s.recount()
	s.logger.Debug("search updated",
		"search", search,
		"count", s.state.SearchResultCount)
}

// Next moves to the following occurrence, wrapping to the first.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SearchResultCount == 0 {
		return
	}
	s.state.SearchIndex = (s.state.SearchIndex + 1) % s.state.SearchResultCount
}

// Previous moves to the preceding occurrence, wrapping to the last.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SearchResultCount == 0 {
		return
	}
	s.state.SearchIndex--
	if s.state.SearchIndex < 0 {
		s.state.SearchIndex = s.state.SearchResultCount - 1
	}
}

// Current returns the occurrence the index points at.
func (s *Session) Current() (Occurrence, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	occ := Occurrences(s.doc, s.state.SearchString)
	if s.state.SearchIndex < 0 || s.state.SearchIndex >= len(occ) {
		return Occurrence{}, false
	}
	return occ[s.state.SearchIndex], true
}

// Position returns the one-based current occurrence and the total, as in
// "2 of 5". With no occurrences it is 0 of 0.
func (s *Session) Position() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total = s.state.SearchResultCount
	current = s.state.SearchIndex + 1
	if current > total {
		current = total
	}
	return current, total
}

// Replace replaces the current occurrence with replacement and moves the
// index to the occurrence that now holds its place.
func (s *Session) Replace(replacement string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	if st.SearchResultCount == 0 {
		return ErrNoMatches
	}
	if st.SearchIndex < 0 || st.SearchIndex >= st.SearchResultCount {
		return fmt.Errorf("%w: index %d of %d", ErrStaleIndex, st.SearchIndex, st.SearchResultCount)
	}

	doc, index, expected := ReplaceOne(s.doc, st.SearchString, replacement, st.SearchIndex, st.SearchResultCount)
	s.doc = doc
	s.state.SearchIndex = index
	s.recount()

	if s.state.SearchResultCount != expected {
		// replacement text joined with its neighbours into new matches, or
		// split old ones
		s.logger.Debug("occurrence count differs from estimate",
			"search", st.SearchString,
			"expected", expected,
			"actual", s.state.SearchResultCount)
	}
	s.logger.Debug("replaced occurrence",
		"search", st.SearchString,
		"index", st.SearchIndex,
		"count", s.state.SearchResultCount)
	return nil
}

// ReplaceAll replaces every occurrence with replacement and returns how many
// were replaced.
func (s *Session) ReplaceAll(replacement string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.state.SearchResultCount
	if replaced == 0 {
		return 0, ErrNoMatches
	}

	doc, index := ReplaceAll(s.doc, s.state.SearchString, replacement)
	s.doc = doc
	s.state.SearchIndex = index
	s.recount()

	s.logger.Debug("replaced all occurrences",
		"search", s.state.SearchString,
		"replaced", replaced,
		"count", s.state.SearchResultCount)
	return replaced, nil
}

// recount refreshes the count and clamps the index into it. Callers hold mu.
func (s *Session) recount() {
	s.state.SearchResultCount = Count(s.doc, s.state.SearchString)
	switch {
	case s.state.SearchResultCount == 0:
		s.state.SearchIndex = 0
	case s.state.SearchIndex >= s.state.SearchResultCount:
		s.state.SearchIndex = s.state.SearchResultCount - 1
	case s.state.SearchIndex < 0:
		s.state.SearchIndex = 0
	}
}
