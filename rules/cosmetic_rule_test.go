package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshield/webshield/rules"
)

func TestNewCosmeticRule(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		text         string
		wantSelector string
		wantInclude  []string
		wantExclude  []string
		wantGeneric  bool
		wantExc      bool
	}{{
		name:         "generic",
		text:         "##.advertisement",
		wantSelector: ".advertisement",
		wantGeneric:  true,
	}, {
		name:         "domain_specific",
		text:         "example.com##.sidebar-ad",
		wantSelector: ".sidebar-ad",
		wantInclude:  []string{"example.com"},
	}, {
		name:         "multi_domain",
		text:         "example.com,example.org##.banner",
		wantSelector: ".banner",
		wantInclude:  []string{"example.com", "example.org"},
	}, {
		name:         "excluded_domain",
		text:         "~example.com##.banner",
		wantSelector: ".banner",
		wantExclude:  []string{"example.com"},
		wantGeneric:  true,
	}, {
		name:         "exception",
		text:         "example.com#@#.banner",
		wantSelector: ".banner",
		wantInclude:  []string{"example.com"},
		wantExc:      true,
	}, {
		name:         "extended",
		text:         "example.com#?#.banner:has(> .ad)",
		wantSelector: ".banner:has(> .ad)",
		wantInclude:  []string{"example.com"},
	}, {
		name:         "selector_with_hash",
		text:         "##div[id*=\"google_ads\"]:not([id*=\"youtube\"])",
		wantSelector: "div[id*=\"google_ads\"]:not([id*=\"youtube\"])",
		wantGeneric:  true,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := rules.NewCosmeticRule(tc.text)
			require.NoError(t, err)

			assert.Equal(t, tc.wantSelector, r.Selector)
			assert.Equal(t, tc.wantInclude, r.DomainsInclude)
			assert.Equal(t, tc.wantExclude, r.DomainsExclude)
			assert.Equal(t, tc.wantGeneric, r.IsGeneric)
			assert.Equal(t, tc.wantExc, r.IsException)
		})
	}
}

func TestNewCosmeticRule_errors(t *testing.T) {
	t.Parallel()

	_, err := rules.NewCosmeticRule("example.com##")
	assert.ErrorIs(t, err, rules.ErrEmptySelector)

	_, err = rules.NewCosmeticRule("||example.com^")
	assert.ErrorIs(t, err, rules.ErrNotCosmetic)
}

func TestCosmeticRule_AppliesToDomain(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		rule   string
		domain string
		want   assert.BoolAssertionFunc
	}{{
		name:   "generic_everywhere",
		rule:   "##.ad",
		domain: "any.example",
		want:   assert.True,
	}, {
		name:   "excluded",
		rule:   "~example.com##.ad",
		domain: "example.com",
		want:   assert.False,
	}, {
		name:   "excluded_subdomain",
		rule:   "~example.com##.ad",
		domain: "www.example.com",
		want:   assert.False,
	}, {
		name:   "included",
		rule:   "example.com##.ad",
		domain: "example.com",
		want:   assert.True,
	}, {
		name:   "included_subdomain",
		rule:   "example.com##.ad",
		domain: "shop.example.com",
		want:   assert.True,
	}, {
		name:   "not_included",
		rule:   "example.com##.ad",
		domain: "example.org",
		want:   assert.False,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := rules.NewCosmeticRule(tc.rule)
			require.NoError(t, err)

			tc.want(t, r.AppliesToDomain(tc.domain))
		})
	}
}
