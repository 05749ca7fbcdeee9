package rules

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/AdguardTeam/golibs/errors"
)

// ErrNoHost is returned by [NewRequest] when the URL has no host part.
const ErrNoHost errors.Error = "url has no host"

// Request contains the prepared properties of one request being evaluated.
// It is built once per lookup so that rules can share the lowercased URL and
// the third-party determination.
type Request struct {
	// URL is the serialized absolute URL of the request.
	URL string

	// URLLowerCase is the lowercased version of URL, used by all
	// case-insensitive pattern matches.
	URLLowerCase string

	// Host is the lowercased hostname of the request.
	Host string

	// Origin is the lowercased domain of the document that issued the
	// request.  It is empty for top-level navigations.
	Origin string

	// Type is the classification of the requested resource.
	Type RequestType

	// ThirdParty is true if Host and Origin do not share a suffix relation.
	ThirdParty bool
}

// NewRequest parses urlStr and prepares a request for matching.  origin may
// be empty, in which case the request is considered first-party.
func NewRequest(urlStr, origin string, typ RequestType) (r *Request, err error) {
	u, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parsing request url: %w", err)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, ErrNoHost
	}

	origin = strings.ToLower(origin)

	return &Request{
		URL:          urlStr,
		URLLowerCase: strings.ToLower(urlStr),
		Host:         host,
		Origin:       origin,
		Type:         typ,
		ThirdParty:   isThirdParty(host, origin),
	}, nil
}

// isThirdParty reports whether host and origin belong to unrelated sites.
// The two are related when either is the other or one of its subdomains.  An
// empty origin means a first-party request.
func isThirdParty(host, origin string) (ok bool) {
	if origin == "" {
		return false
	}

	return !isDomainOrSubdomain(host, origin) && !isDomainOrSubdomain(origin, host)
}
