package rules

import (
	"strings"

	"github.com/AdguardTeam/golibs/errors"
)

// ErrEmptyPattern is returned when a network rule has no match pattern.
const ErrEmptyPattern errors.Error = "empty rule pattern"

// NetworkRule is one parsed request-blocking rule.  All fields, including the
// derived pattern data, are set by [NewNetworkRule] and never change
// afterwards, so a rule may be shared between concurrent lookups freely.
type NetworkRule struct {
	// Text is the original rule line.
	Text string

	// Pattern is the match pattern as written, with the exception mask and
	// the options part stripped.
	Pattern string

	// RedirectResource is the substitute resource name from a $redirect or
	// $redirect-rule modifier, if any.
	RedirectResource string

	// DomainsInclude and DomainsExclude restrict the rule to, or forbid it
	// on, the listed domains.  Exclusion takes precedence.
	DomainsInclude []string
	DomainsExclude []string

	// RemoveParams are the query parameter names from a $removeparam
	// modifier.
	RemoveParams []string

	// Options is the modifier bit set of the rule.
	Options Option

	// IsException is true for "@@" rules, which unconditionally override
	// same-scope blocking rules.
	IsException bool

	// kind is the derived pattern classification.
	kind PatternKind

	// anchorDomain is the lowercased anchor domain of a host-anchor
	// pattern, and anchorSuffix is what follows it in the pattern body.
	// Both are empty for other kinds.
	anchorDomain string
	anchorSuffix string

	// matchBody is the pattern with its anchors stripped, lowercased unless
	// the rule is case-sensitive.
	matchBody string
}

// NewNetworkRule parses one line of filter-list text into a network rule.
func NewNetworkRule(text string) (r *NetworkRule, err error) {
	r = &NetworkRule{
		Text: text,
	}

	pattern := text
	if rest, cut := strings.CutPrefix(pattern, maskException); cut {
		r.IsException = true
		pattern = rest
	}

	// Avoid splitting options off a bare regex rule, where '$' is a valid
	// end-of-line assertion.
	isRegexText := len(pattern) > 1 &&
		strings.HasPrefix(pattern, maskRegexRule) &&
		strings.HasSuffix(pattern, maskRegexRule)
	if !isRegexText {
		if i := findOptionsDelimiter(pattern); i != -1 {
			r.loadOptions(pattern[i+1:])
			pattern = pattern[:i]
		}
	}

	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	r.Pattern = pattern
	r.preparePattern()

	return r, nil
}

// loadOptions parses the comma-separated option list.  Unknown option keys
// are ignored so that lists using newer modifiers still load.
func (r *NetworkRule) loadOptions(options string) {
	for opt := range strings.SplitSeq(options, ",") {
		opt = strings.TrimSpace(opt)

		key, value, hasValue := strings.Cut(opt, "=")
		if !hasValue {
			r.Options |= optionFromKey(key)

			continue
		}

		switch key {
		case "domain":
			r.DomainsInclude, r.DomainsExclude = loadDomains(value, "|")
		case "redirect":
			r.Options |= OptionRedirect
			r.RedirectResource = value
		case "redirect-rule":
			r.Options |= OptionRedirectRule
			r.RedirectResource = value
		case "removeparam":
			r.Options |= OptionRemoveParam
			for p := range strings.SplitSeq(value, "|") {
				if p != "" {
					r.RemoveParams = append(r.RemoveParams, p)
				}
			}
		default:
			// Ignore.
		}
	}
}

// preparePattern computes the derived pattern data.  It must be called
// exactly once, from the constructor, before the rule is ever matched.
func (r *NetworkRule) preparePattern() {
	r.kind = classifyPattern(r.Pattern)

	body := r.Pattern
	switch r.kind {
	case KindHostAnchor:
		r.anchorDomain, r.anchorSuffix = splitHostAnchor(body[len("||"):])
		if !r.Options.Has(OptionMatchCase) {
			// The suffix is matched against the lowercased URL.
			r.anchorSuffix = strings.ToLower(r.anchorSuffix)
		}

		return
	case KindExact:
		body = body[1 : len(body)-1]
	case KindStartAnchor:
		body = body[1:]
	case KindEndAnchor:
		body = body[:len(body)-1]
	case KindRegex:
		return
	default:
		// A literal or wildcard pattern is used as is.
	}

	if !r.Options.Has(OptionMatchCase) {
		body = strings.ToLower(body)
	}

	r.matchBody = body
}

// Kind returns the derived pattern classification of the rule.
func (r *NetworkRule) Kind() (kind PatternKind) {
	return r.kind
}

// AnchorDomain returns the anchor domain of a host-anchor rule and an empty
// string for rules of any other kind.
func (r *NetworkRule) AnchorDomain() (domain string) {
	return r.anchorDomain
}

// Match reports whether the rule applies to req, checking the request type,
// the party constraints, the domain constraints, and finally the URL pattern
// itself.
func (r *NetworkRule) Match(req *Request) (ok bool) {
	switch {
	case
		!r.MatchesRequestType(req.Type),
		r.Options.Has(OptionThirdParty) && !req.ThirdParty,
		r.Options.Has(OptionFirstParty) && req.ThirdParty,
		!r.MatchesDomains(req.Origin, req.Host):
		return false
	}

	return r.MatchesURL(req.URL, req.URLLowerCase)
}

// MatchesRequestType reports whether the rule applies to requests of type t.
// A rule with no type bits set applies to every type.
func (r *NetworkRule) MatchesRequestType(t RequestType) (ok bool) {
	if r.Options&OptionTypeMask == 0 {
		return true
	}

	o, hasBit := typeOptions[t]
	if !hasBit {
		// TypeOther and unknown types only match unrestricted rules.
		return false
	}

	return r.Options.Has(o)
}

// MatchesDomains reports whether the rule is allowed for a request issued by
// origin to host, per the $domain modifier.  A domain in the exclude list
// always wins over the include list.
func (r *NetworkRule) MatchesDomains(origin, host string) (ok bool) {
	if matchesAnyDomain(origin, r.DomainsExclude) ||
		matchesAnyDomain(host, r.DomainsExclude) {
		return false
	}

	if len(r.DomainsInclude) == 0 {
		return true
	}

	return matchesAnyDomain(origin, r.DomainsInclude) ||
		matchesAnyDomain(host, r.DomainsInclude)
}

// MatchesURL matches the rule pattern against the serialized URL.  urlLower
// must be the lowercased form of u.
func (r *NetworkRule) MatchesURL(u, urlLower string) (ok bool) {
	searched := urlLower
	if r.Options.Has(OptionMatchCase) {
		searched = u
	}

	switch r.kind {
	case KindHostAnchor:
		// Hostnames are case-insensitive regardless of $match-case.
		return matchHostAnchor(urlLower, r.anchorDomain, r.anchorSuffix)
	case KindExact:
		return searched == r.matchBody
	case KindStartAnchor:
		return strings.HasPrefix(searched, r.matchBody)
	case KindEndAnchor:
		return strings.HasSuffix(searched, r.matchBody)
	case KindWildcard:
		return matchWildcard(searched, r.matchBody)
	case KindRegex:
		// Regex evaluation is not implemented; fail open.
		return false
	default:
		return strings.Contains(searched, r.matchBody)
	}
}
