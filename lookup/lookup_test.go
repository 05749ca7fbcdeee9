package lookup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshield/webshield/lookup"
	"github.com/webshield/webshield/rules"
)

// newTestRules parses the given lines into network rules.
func newTestRules(tb testing.TB, lines ...string) (networks []*rules.NetworkRule) {
	tb.Helper()

	for _, line := range lines {
		r, err := rules.NewNetworkRule(line)
		require.NoError(tb, err)

		networks = append(networks, r)
	}

	return networks
}

func TestIndex_Candidates(t *testing.T) {
	t.Parallel()

	networks := newTestRules(
		t,
		"||example.com^",
		"||ads.example.com^",
		"/banner/",
		"||other.net^",
		"|https://example.com/start",
	)

	ix := lookup.New(networks)

	assert.Equal(t, 3, ix.DomainsLen())
	assert.Equal(t, 2, ix.GenericLen())

	testCases := []struct {
		name       string
		host       string
		wantBucket []int
	}{{
		name:       "exact_domain",
		host:       "example.com",
		wantBucket: []int{0},
	}, {
		name:       "subdomain_walks_up",
		host:       "ads.example.com",
		wantBucket: []int{0, 1},
	}, {
		name:       "deep_subdomain",
		host:       "a.b.ads.example.com",
		wantBucket: []int{0, 1},
	}, {
		name:       "other_domain",
		host:       "other.net",
		wantBucket: []int{3},
	}, {
		name:       "unknown_domain",
		host:       "unrelated.org",
		wantBucket: nil,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bucket, generic := ix.Candidates(tc.host)
			assert.Equal(t, tc.wantBucket, bucket)
			assert.Equal(t, []int{2, 4}, generic)
		})
	}
}

func TestIndex_partition(t *testing.T) {
	t.Parallel()

	networks := newTestRules(
		t,
		"||example.com^",
		"/banner/",
		"||example.com/path",
		"@@||example.com^$script",
	)

	ix := lookup.New(networks)

	// Every rule index lands in exactly one bucket.
	bucket, generic := ix.Candidates("example.com")
	assert.Len(t, bucket, 3)
	assert.Len(t, generic, 1)
}

func TestNew_idempotent(t *testing.T) {
	t.Parallel()

	networks := newTestRules(
		t,
		"||example.com^",
		"||ads.example.com^",
		"/banner/",
	)

	first := lookup.New(networks)
	second := lookup.New(networks)

	b1, g1 := first.Candidates("ads.example.com")
	b2, g2 := second.Candidates("ads.example.com")

	assert.Equal(t, b1, b2)
	assert.Equal(t, g1, g2)
}
