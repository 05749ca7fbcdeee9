package webshield

import (
	"strings"

	"github.com/AdguardTeam/golibs/netutil"
)

// CosmeticSelectorsFor returns the CSS selectors that documents on host
// should hide.  An exception rule that applies to the host suppresses every
// same-selector hiding rule.  A per-domain cache remembers only whether the
// host has any selectors at all; the selector lists themselves are rebuilt
// on every call, since their size makes them poor cache entries.
func (e *Engine) CosmeticSelectorsFor(host string) (selectors []string) {
	if !e.enabled.Load() {
		return nil
	}

	host = strings.ToLower(host)
	snap := e.snap.Load()
	if has, ok := snap.domainCache.Get(host); ok && !has {
		return nil
	}

	cosmetics := snap.set.Cosmetics

	var suppressed map[string]struct{}
	for _, r := range cosmetics {
		if r.IsException && r.AppliesToDomain(host) {
			if suppressed == nil {
				suppressed = map[string]struct{}{}
			}

			suppressed[r.Selector] = struct{}{}
		}
	}

	for _, r := range cosmetics {
		if r.IsException || !r.AppliesToDomain(host) {
			continue
		}

		if _, skip := suppressed[r.Selector]; skip {
			continue
		}

		selectors = append(selectors, r.Selector)
	}

	snap.domainCache.Set(host, len(selectors) > 0)

	return selectors
}

// ScriptletsFor returns the scriptlet source registered for host or any of
// its parent domains.  ok is false when no scriptlet applies.
func (e *Engine) ScriptletsFor(host string) (source string, ok bool) {
	if !e.enabled.Load() {
		return "", false
	}

	host = strings.ToLower(host)
	for domain, src := range e.snap.Load().set.Scriptlets {
		if host == domain || netutil.IsSubdomain(host, domain) {
			return src, true
		}
	}

	return "", false
}
