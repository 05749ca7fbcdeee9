// Package rules contains the value types for single content-filtering rules:
// network rules that decide the fate of outgoing requests and cosmetic rules
// that supply CSS selectors for element hiding.  Rules are immutable after
// construction; all derived pattern data is computed by the constructors.
package rules

import (
	"strings"

	"github.com/AdguardTeam/golibs/netutil"
)

// Rule masks and delimiters of the filter-list text format.
const (
	maskException    = "@@"
	maskRegexRule    = "/"
	optionsDelimiter = '$'
	escapeCharacter  = '\\'
)

// isDomainOrSubdomain returns true if host is domain or one of its
// subdomains.
func isDomainOrSubdomain(host, domain string) (ok bool) {
	return host == domain || netutil.IsSubdomain(host, domain)
}

// matchesAnyDomain returns true if host is suffix-related to any of domains.
func matchesAnyDomain(host string, domains []string) (ok bool) {
	for _, d := range domains {
		if isDomainOrSubdomain(host, d) {
			return true
		}
	}

	return false
}

// loadDomains parses a $domain modifier value, which is a list of domains
// separated by sep.  Entries prefixed with "~" go to the exclude list.
func loadDomains(s, sep string) (include, exclude []string) {
	for _, d := range strings.Split(s, sep) {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}

		if excluded, cut := strings.CutPrefix(d, "~"); cut {
			exclude = append(exclude, strings.ToLower(excluded))
		} else {
			include = append(include, strings.ToLower(d))
		}
	}

	return include, exclude
}

// findOptionsDelimiter returns the index of the first unescaped options
// delimiter in ruleText, or -1 if there is none.
func findOptionsDelimiter(ruleText string) (idx int) {
	for i := 0; i < len(ruleText); i++ {
		if ruleText[i] != optionsDelimiter {
			continue
		}

		if i > 0 && ruleText[i-1] == escapeCharacter {
			continue
		}

		return i
	}

	return -1
}
