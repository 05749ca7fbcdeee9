package rules

import (
	"strings"

	"github.com/AdguardTeam/golibs/errors"
)

// Cosmetic rule separators.  The exception separator must be looked up before
// the plain one, since a line may contain both.
const (
	SeparatorElemHide  = "##"
	SeparatorException = "#@#"
	SeparatorExtended  = "#?#"
)

// ErrEmptySelector is returned when a cosmetic rule has no selector part.
const ErrEmptySelector errors.Error = "empty selector"

// ErrNotCosmetic is returned when a line has none of the cosmetic rule
// separators.
const ErrNotCosmetic errors.Error = "not a cosmetic rule"

// CosmeticRule is one parsed element-hiding rule.  It is immutable after
// construction.
type CosmeticRule struct {
	// Text is the original rule line.
	Text string

	// Selector is the CSS selector delivered to documents for hiding.
	Selector string

	// DomainsInclude and DomainsExclude restrict the rule to, or forbid it
	// on, the listed domains.
	DomainsInclude []string
	DomainsExclude []string

	// IsGeneric is true when the rule has no domain restriction and so
	// applies to every domain not excluded.
	IsGeneric bool

	// IsException is true for "#@#" rules, which suppress a same-selector
	// rule on the listed domains.
	IsException bool
}

// FindCosmeticSeparator returns the position and the separator of the first
// cosmetic rule separator in line, or -1 and an empty string when there is
// none.
func FindCosmeticSeparator(line string) (idx int, sep string) {
	idx = strings.Index(line, "#")
	for idx != -1 && idx < len(line)-1 {
		switch rest := line[idx:]; {
		case strings.HasPrefix(rest, SeparatorException):
			return idx, SeparatorException
		case strings.HasPrefix(rest, SeparatorExtended):
			return idx, SeparatorExtended
		case strings.HasPrefix(rest, SeparatorElemHide):
			return idx, SeparatorElemHide
		}

		next := strings.Index(line[idx+1:], "#")
		if next == -1 {
			break
		}

		idx += 1 + next
	}

	return -1, ""
}

// NewCosmeticRule parses one cosmetic filter line.
func NewCosmeticRule(text string) (r *CosmeticRule, err error) {
	idx, sep := FindCosmeticSeparator(text)
	if idx == -1 {
		return nil, ErrNotCosmetic
	}

	selector := text[idx+len(sep):]
	if selector == "" {
		return nil, ErrEmptySelector
	}

	r = &CosmeticRule{
		Text:        text,
		Selector:    selector,
		IsGeneric:   true,
		IsException: sep == SeparatorException,
	}

	if domains := text[:idx]; domains != "" {
		r.DomainsInclude, r.DomainsExclude = loadDomains(domains, ",")
		r.IsGeneric = len(r.DomainsInclude) == 0
	}

	return r, nil
}

// AppliesToDomain reports whether the rule should be delivered to documents
// on domain.  Exclusions are checked first; a generic rule then applies
// everywhere, and a specific one only where an included domain is the query
// domain or one of its ancestors.
func (r *CosmeticRule) AppliesToDomain(domain string) (ok bool) {
	if matchesAnyDomain(domain, r.DomainsExclude) {
		return false
	}

	if r.IsGeneric {
		return true
	}

	return matchesAnyDomain(domain, r.DomainsInclude)
}
