package rules

import "strings"

// PatternKind is the classification of a network rule pattern.  It is derived
// once, on rule construction, so that matching never has to re-inspect the
// pattern text.
type PatternKind uint8

// PatternKind values.
const (
	// KindLiteral is a plain pattern matched as a substring of the URL.
	KindLiteral PatternKind = iota

	// KindHostAnchor is a "||domain..." pattern anchored to a domain
	// boundary within the URL.
	KindHostAnchor

	// KindStartAnchor is a "|prefix" pattern anchored to the URL start.
	KindStartAnchor

	// KindEndAnchor is a "suffix|" pattern anchored to the URL end.
	KindEndAnchor

	// KindExact is a "|url|" pattern requiring full URL equality.
	KindExact

	// KindWildcard is a pattern containing "*" gaps.
	KindWildcard

	// KindRegex is a "/.../" pattern.  Regular expression evaluation is not
	// implemented, and such rules never match instead of failing the whole
	// lookup.
	KindRegex
)

// isAnchorBoundary reports whether c may immediately follow a matched anchor
// domain within a URL.  The preceding boundary set is checked separately and
// additionally includes '.'.
func isAnchorBoundary(c byte) (ok bool) {
	return c == '/' || c == ':' || c == '?' || c == '#'
}

// classifyPattern determines the kind of pattern p as written in a rule,
// without anchors stripped.
func classifyPattern(p string) (kind PatternKind) {
	switch {
	case len(p) > 1 &&
		strings.HasPrefix(p, maskRegexRule) &&
		strings.HasSuffix(p, maskRegexRule):
		return KindRegex
	case strings.HasPrefix(p, "||"):
		return KindHostAnchor
	case len(p) > 1 && strings.HasPrefix(p, "|") && strings.HasSuffix(p, "|"):
		return KindExact
	case strings.HasPrefix(p, "|"):
		return KindStartAnchor
	case strings.HasSuffix(p, "|"):
		return KindEndAnchor
	case strings.Contains(p, "*"):
		return KindWildcard
	default:
		return KindLiteral
	}
}

// splitHostAnchor splits the body of a host-anchor pattern, with the leading
// "||" already removed, into the anchor domain and the remaining suffix.  The
// suffix keeps its separators and wildcards and may be empty.
func splitHostAnchor(body string) (domain, suffix string) {
	if i := strings.IndexAny(body, "/^*:?"); i != -1 {
		return strings.ToLower(body[:i]), body[i:]
	}

	return strings.ToLower(body), ""
}

// matchWildcard matches pattern, split on '*', against u.  Each non-empty
// segment must be found in order; the first search starts at offset zero, and
// each subsequent search starts right after the previous match.
func matchWildcard(u, pattern string) (ok bool) {
	pos := 0
	for seg := range strings.SplitSeq(pattern, "*") {
		if seg == "" {
			continue
		}

		i := strings.Index(u[pos:], seg)
		if i == -1 {
			return false
		}

		pos += i + len(seg)
	}

	return true
}

// matchAnchorSuffix matches the path suffix of a host-anchor pattern against
// rest, the part of the URL that follows the anchor domain.  The suffix must
// continue verbatim from the domain match; '^' consumes one separator
// character or the end of the URL, and '*' opens a gap to the next '^' or
// literal segment.
func matchAnchorSuffix(rest, suffix string) (ok bool) {
	ri := 0
	si := 0
	gap := false
	for si < len(suffix) {
		switch c := suffix[si]; c {
		case '*':
			gap = true
			si++
		case '^':
			last := si == len(suffix)-1
			if gap {
				i := strings.IndexAny(rest[ri:], "/:?#")
				if i == -1 {
					// A gapped separator is satisfied by the end of the URL
					// when nothing follows in the suffix.
					return last
				}

				ri += i + 1
				gap = false
				si++

				continue
			}

			if ri == len(rest) {
				return last
			}

			if !isAnchorBoundary(rest[ri]) {
				return false
			}

			ri++
			si++
		default:
			end := strings.IndexAny(suffix[si:], "^*")
			segEnd := len(suffix)
			if end != -1 {
				segEnd = si + end
			}

			seg := suffix[si:segEnd]
			if gap {
				i := strings.Index(rest[ri:], seg)
				if i == -1 {
					return false
				}

				ri += i + len(seg)
				gap = false
			} else {
				if !strings.HasPrefix(rest[ri:], seg) {
					return false
				}

				ri += len(seg)
			}

			si = segEnd
		}
	}

	return true
}

// matchHostAnchor matches a host-anchor pattern, presplit into domain and
// suffix, against the lowercased serialized URL u.  The domain occurrence
// must sit at a domain boundary:  preceded by '/', '.', or the URL start,
// and, when the pattern has no suffix, followed by '/', ':', '?', '#', or the
// URL end.
func matchHostAnchor(u, domain, suffix string) (ok bool) {
	if domain == "" {
		return false
	}

	for start := 0; ; start++ {
		i := strings.Index(u[start:], domain)
		if i == -1 {
			return false
		}

		pos := start + i
		start = pos

		if pos > 0 && u[pos-1] != '/' && u[pos-1] != '.' {
			continue
		}

		end := pos + len(domain)
		if suffix == "" {
			if end == len(u) || isAnchorBoundary(u[end]) {
				return true
			}

			continue
		}

		if matchAnchorSuffix(u[end:], suffix) {
			return true
		}
	}
}
