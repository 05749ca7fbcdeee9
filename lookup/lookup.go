// Package lookup implements the domain index used to prune the set of
// network rules scanned for one request.  Rules with a host-anchor pattern
// are bucketed by their anchor domain; every other rule lands in the generic
// bucket and is checked against every request.
package lookup

import (
	"slices"
	"strings"

	"github.com/webshield/webshield/rules"
)

// Index is the domain index over one network rule sequence.  An Index is
// immutable once built; a changed rule sequence requires a full rebuild.
// Every rule index appears in exactly one of the two structures.
type Index struct {
	domains map[string][]int
	generic []int
}

// New builds the index for networks.  Building is idempotent:  the same rule
// sequence always produces the same index.
func New(networks []*rules.NetworkRule) (ix *Index) {
	ix = &Index{
		domains: map[string][]int{},
	}

	for i, r := range networks {
		if d := r.AnchorDomain(); d != "" {
			ix.domains[d] = append(ix.domains[d], i)
		} else {
			ix.generic = append(ix.generic, i)
		}
	}

	return ix
}

// Candidates returns the indices of the rules that could match a request to
// host:  the buckets of the host itself and of each of its parent domains,
// in rule order, followed by the generic bucket.  The two slices must not be
// modified.
func (ix *Index) Candidates(host string) (bucket, generic []int) {
	for d := host; d != ""; {
		if b := ix.domains[d]; len(b) > 0 {
			bucket = append(bucket, b...)
		}

		_, rest, ok := strings.Cut(d, ".")
		if !ok {
			break
		}

		d = rest
	}

	// Merged buckets of several domain levels may be out of rule order.
	slices.Sort(bucket)

	return bucket, ix.generic
}

// DomainsLen returns the number of distinct anchor domains in the index.
func (ix *Index) DomainsLen() (n int) {
	return len(ix.domains)
}

// GenericLen returns the number of rules in the generic bucket.
func (ix *Index) GenericLen() (n int) {
	return len(ix.generic)
}
