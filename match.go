package webshield

import (
	"github.com/webshield/webshield/rules"
)

// ShouldBlockRequest reports whether the request for rawURL, made by a
// document at originHost, should be blocked.  Decisions are cached per
// serialized URL; a malformed URL is never blocked.  The caller records a
// positive decision with [Engine.IncrementBlockedRequestCount].
func (e *Engine) ShouldBlockRequest(rawURL, originHost string, typ rules.RequestType) (blocked bool) {
	if !e.enabled.Load() {
		return false
	}

	// Load the snapshot once so that the decision and the cache write both
	// belong to the same filter set.
	snap := e.snap.Load()
	if blocked, ok := snap.urlCache.Get(rawURL); ok {
		return blocked
	}

	req, err := rules.NewRequest(rawURL, originHost, typ)
	if err != nil {
		// Fail open.  A URL the engine cannot parse is passed through.
		e.logger.Debug("skipping unparsable request url", "url", rawURL, "err", err)

		return false
	}

	blocked = snap.decide(req)
	snap.urlCache.Set(rawURL, blocked)

	return blocked
}

// IsFiltered is like [Engine.ShouldBlockRequest] but bypasses the decision
// cache and does not count the block.  It is intended for ad-hoc queries,
// for example from developer tooling.
func (e *Engine) IsFiltered(rawURL, originHost string, typ rules.RequestType) (blocked bool) {
	if !e.enabled.Load() {
		return false
	}

	req, err := rules.NewRequest(rawURL, originHost, typ)
	if err != nil {
		return false
	}

	return e.snap.Load().decide(req)
}

// decide scans the candidate rules for req in a single pass.  An exception
// match wins immediately; a blocking match sets the result but the scan
// continues, since a later exception may still override it.
func (s *snapshot) decide(req *rules.Request) (blocked bool) {
	networks := s.set.Networks
	bucket, generic := s.lookupIndex().Candidates(req.Host)

	for _, idx := range bucket {
		r := networks[idx]
		if !r.Match(req) {
			continue
		}

		if r.IsException {
			return false
		}

		blocked = true
	}

	for _, idx := range generic {
		r := networks[idx]
		if !r.Match(req) {
			continue
		}

		if r.IsException {
			return false
		}

		blocked = true
	}

	return blocked
}

// RedirectResourceFor returns the redirect resource name of the first
// matching blocking rule that carries one.  ok is false when the request
// matched no redirect rule.  Redirect lookups return data, not a block
// decision, and so bypass the decision cache; exception rules play no part
// here.
func (e *Engine) RedirectResourceFor(rawURL, originHost string, typ rules.RequestType) (resource string, ok bool) {
	if !e.enabled.Load() {
		return "", false
	}

	req, err := rules.NewRequest(rawURL, originHost, typ)
	if err != nil {
		return "", false
	}

	snap := e.snap.Load()
	networks := snap.set.Networks
	bucket, generic := snap.lookupIndex().Candidates(req.Host)

	for _, group := range [][]int{bucket, generic} {
		for _, idx := range group {
			r := networks[idx]
			if r.IsException || r.RedirectResource == "" {
				continue
			}

			if r.Match(req) {
				return r.RedirectResource, true
			}
		}
	}

	return "", false
}

// RemoveParamsFor returns the union, in first-seen order, of the query
// parameter names that matching removeparam rules want stripped from the
// request.
func (e *Engine) RemoveParamsFor(rawURL, originHost string, typ rules.RequestType) (params []string) {
	if !e.enabled.Load() {
		return nil
	}

	req, err := rules.NewRequest(rawURL, originHost, typ)
	if err != nil {
		return nil
	}

	snap := e.snap.Load()
	networks := snap.set.Networks
	bucket, generic := snap.lookupIndex().Candidates(req.Host)

	seen := map[string]struct{}{}
	for _, group := range [][]int{bucket, generic} {
		for _, idx := range group {
			r := networks[idx]
			if r.IsException || len(r.RemoveParams) == 0 || !r.Match(req) {
				continue
			}

			for _, p := range r.RemoveParams {
				if _, dup := seen[p]; dup {
					continue
				}

				seen[p] = struct{}{}
				params = append(params, p)
			}
		}
	}

	return params
}
