// Package selection converts between a set of selection tokens and the
// delimited query string a filtered column commits.
package selection

import "strings"

// DefaultSeparator joins tokens when no separator is configured.
const DefaultSeparator = ","

// Set is an insertion-ordered set of tokens. The zero value is an empty set
// ready for use.
type Set struct {
	order []string
	index map[string]struct{}
}

// NewSet returns a set holding tokens in first-seen order. Duplicates
// collapse.
func NewSet(tokens ...string) Set {
	var s Set
	for _, t := range tokens {
		s.Add(t)
	}
	return s
}

// Add inserts t if it is not already present.
func (s *Set) Add(t string) {
	if s.index == nil {
		s.index = make(map[string]struct{})
	}
	if _, ok := s.index[t]; ok {
		return
	}
	s.index[t] = struct{}{}
	s.order = append(s.order, t)
}

// Remove deletes t if present.
func (s *Set) Remove(t string) {
	if _, ok := s.index[t]; !ok {
		return
	}
	delete(s.index, t)
	for i, v := range s.order {
		if v == t {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			break
		}
	}
}

// Toggle removes t when present and adds it otherwise.
func (s *Set) Toggle(t string) {
	if s.Has(t) {
		s.Remove(t)
		return
	}
	s.Add(t)
}

// Has reports whether t is in the set.
func (s Set) Has(t string) bool {
	_, ok := s.index[t]
	return ok
}

// Len returns the number of tokens.
func (s Set) Len() int {
	return len(s.order)
}

// Tokens returns a copy of the tokens in insertion order.
func (s Set) Tokens() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Clone returns an independent copy. Mutating the copy never affects s.
func (s Set) Clone() Set {
	return NewSet(s.order...)
}

// Equal reports whether both sets hold the same tokens, ignoring order.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, t := range s.order {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// Serialize joins the tokens of s in insertion order with sep. An empty set
// serializes to the empty string.
func Serialize(s Set, sep string) string {
	if s.Len() == 0 {
		return ""
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	return strings.Join(s.order, sep)
}

// Deserialize splits query on sep and trims every piece. The empty string
// yields an empty set. Malformed input never fails: a query made only of
// separators yields the single empty token.
func Deserialize(query, sep string) Set {
	if query == "" {
		return Set{}
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	var s Set
	for _, piece := range strings.Split(query, sep) {
		s.Add(strings.TrimSpace(piece))
	}
	return s
}

// Tokens splits query the same way Deserialize does but keeps duplicates
// and order. Predicates iterate these without building a set.
func Tokens(query, sep string) []string {
	if query == "" {
		return nil
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	pieces := strings.Split(query, sep)
	for i, p := range pieces {
		pieces[i] = strings.TrimSpace(p)
	}
	return pieces
}
