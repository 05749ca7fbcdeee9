package filterlist

import (
	"maps"
	"slices"

	"github.com/webshield/webshield/rules"
)

// Set is the complete loaded filter state of an engine:  network rules and
// cosmetic rules in load order plus the scriptlet table.  A Set is never
// mutated after it has been published; updates produce a fresh value via
// [Set.Appending], so readers can use a Set without locking.
type Set struct {
	// Scriptlets is the merged scriptlet table of all loaded lists.
	Scriptlets map[string]string

	// ListNames are the names of the loaded lists, in load order.
	ListNames []string

	// Networks and Cosmetics are all loaded rules, in load order.
	Networks  []*rules.NetworkRule
	Cosmetics []*rules.CosmeticRule
}

// NewSet returns an empty filter set.
func NewSet() (s *Set) {
	return &Set{
		Scriptlets: map[string]string{},
	}
}

// Appending returns a new set consisting of the rules of s followed by the
// rules of l.  s is left unchanged.
func (s *Set) Appending(l *List) (next *Set) {
	next = &Set{
		Scriptlets: maps.Clone(s.Scriptlets),
		ListNames:  append(slices.Clone(s.ListNames), l.Name),
		Networks:   append(slices.Clone(s.Networks), l.Networks...),
		Cosmetics:  append(slices.Clone(s.Cosmetics), l.Cosmetics...),
	}

	maps.Copy(next.Scriptlets, l.Scriptlets)

	return next
}
