// Package foundation holds small generic helpers shared by the other packages.
package foundation

import (
	"sort"
	"strings"
)

// Fold is the normalization applied to enum input: trimmed and lower-cased.
func Fold(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Normalizer maps case-insensitive spellings (including aliases) onto enum values.
type Normalizer[T comparable] struct {
	values   map[string]T
	fallback T
}

// NewNormalizer creates a normalizer over spelling->value pairs. fallback is
// returned for unrecognized input.
func NewNormalizer[T comparable](values map[string]T, fallback T) *Normalizer[T] {
	folded := make(map[string]T, len(values))
	for k, v := range values {
		folded[Fold(k)] = v
	}
	return &Normalizer[T]{values: folded, fallback: fallback}
}

// Lookup returns the value raw names, or the fallback and false.
func (n *Normalizer[T]) Lookup(raw string) (T, bool) {
	if v, ok := n.values[Fold(raw)]; ok {
		return v, true
	}
	return n.fallback, false
}

// Spellings lists the accepted spellings, sorted.
func (n *Normalizer[T]) Spellings() []string {
	out := make([]string, 0, len(n.values))
	for k := range n.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
