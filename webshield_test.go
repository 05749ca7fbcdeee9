package webshield_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/webshield/webshield"
	"github.com/webshield/webshield/rules"
)

// testListName is the common filter list name for tests.
const testListName = "test list"

// testMetrics is a [webshield.Metrics] implementation for tests.
type testMetrics struct {
	blockedRequests atomic.Uint64
	blockedElements atomic.Uint64
	listLoads       atomic.Uint64
}

// type check
var _ webshield.Metrics = (*testMetrics)(nil)

// OnBlockedRequest implements the [webshield.Metrics] interface for
// *testMetrics.
func (m *testMetrics) OnBlockedRequest() { m.blockedRequests.Add(1) }

// OnBlockedElement implements the [webshield.Metrics] interface for
// *testMetrics.
func (m *testMetrics) OnBlockedElement() { m.blockedElements.Add(1) }

// OnFilterListLoad implements the [webshield.Metrics] interface for
// *testMetrics.
func (m *testMetrics) OnFilterListLoad(_ string, _ int) { m.listLoads.Add(1) }

// newTestEngine returns an engine with the given filter-list text loaded.
func newTestEngine(tb testing.TB, text string) (e *webshield.Engine) {
	tb.Helper()

	e = webshield.NewEngine(&webshield.Config{})
	require.NoError(tb, e.LoadFilterList(tb.Context(), testListName, text))

	return e
}

func TestEngine_LoadFilterList(t *testing.T) {
	t.Parallel()

	m := &testMetrics{}
	e := webshield.NewEngine(&webshield.Config{Metrics: m})
	ctx := t.Context()

	err := e.LoadFilterList(ctx, "", "||example.com^\n")
	assert.ErrorIs(t, err, webshield.ErrEmptyListName)

	// The failed load must not have changed anything.
	assert.False(t, e.ShouldBlockRequest("https://example.com/", "", rules.TypeOther))
	assert.Zero(t, m.listLoads.Load())

	require.NoError(t, e.LoadFilterList(ctx, testListName, "||example.com^\n"))
	assert.True(t, e.ShouldBlockRequest("https://example.com/", "", rules.TypeOther))
	assert.Equal(t, uint64(1), m.listLoads.Load())
}

func TestEngine_ShouldBlockRequest(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, `! test rules
||ads.example.com^
@@||ads.example.com/allowed^
/banner/$image
||tracker.net^$third-party
`)

	testCases := []struct {
		name   string
		url    string
		origin string
		typ    rules.RequestType
		want   assert.BoolAssertionFunc
	}{{
		name: "blocked_domain",
		url:  "https://ads.example.com/ad.js",
		typ:  rules.TypeScript,
		want: assert.True,
	}, {
		name: "exception_wins",
		url:  "https://ads.example.com/allowed/ad.js",
		typ:  rules.TypeScript,
		want: assert.False,
	}, {
		name: "unrelated",
		url:  "https://example.org/page",
		typ:  rules.TypeDocument,
		want: assert.False,
	}, {
		name: "typed_generic",
		url:  "https://cdn.example.org/banner/x.png",
		typ:  rules.TypeImage,
		want: assert.True,
	}, {
		name: "typed_generic_wrong_type",
		url:  "https://cdn.example.org/banner/x.js",
		typ:  rules.TypeScript,
		want: assert.False,
	}, {
		name:   "third_party_only",
		url:    "https://tracker.net/t.gif",
		origin: "news.example.org",
		typ:    rules.TypeImage,
		want:   assert.True,
	}, {
		name:   "first_party_passes",
		url:    "https://tracker.net/t.gif",
		origin: "tracker.net",
		typ:    rules.TypeImage,
		want:   assert.False,
	}, {
		name: "malformed_url_fails_open",
		url:  "https://example.com/%zz",
		typ:  rules.TypeOther,
		want: assert.False,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.want(t, e.ShouldBlockRequest(tc.url, tc.origin, tc.typ))
		})
	}
}

func TestEngine_ShouldBlockRequest_scenario(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "||doubleclick.net/gampad/\n@@||doubleclick.net/gampad/safe\n")

	assert.True(t, e.ShouldBlockRequest(
		"https://doubleclick.net/gampad/ads.js",
		"",
		rules.TypeScript,
	))
	assert.False(t, e.ShouldBlockRequest(
		"https://doubleclick.net/gampad/safe/ok.js",
		"",
		rules.TypeScript,
	))
}

func TestEngine_ShouldBlockRequest_cached(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "||ads.example.com^\n")

	// The decision must be stable across repeated calls going through the
	// cache.
	for range 100 {
		assert.True(t, e.ShouldBlockRequest("https://ads.example.com/a.js", "", rules.TypeScript))
		assert.False(t, e.ShouldBlockRequest("https://example.org/a.js", "", rules.TypeScript))
	}
}

func TestEngine_ShouldBlockRequest_disabled(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "||ads.example.com^\n")

	e.SetFilteringEnabled(false)
	assert.False(t, e.FilteringEnabled())
	assert.False(t, e.ShouldBlockRequest("https://ads.example.com/", "", rules.TypeOther))

	e.SetFilteringEnabled(true)
	assert.True(t, e.FilteringEnabled())
	assert.True(t, e.ShouldBlockRequest("https://ads.example.com/", "", rules.TypeOther))
}

func TestEngine_ShouldBlockRequest_reload(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "||ads.example.com^\n")
	ctx := t.Context()

	assert.True(t, e.ShouldBlockRequest("https://ads.example.com/", "", rules.TypeOther))
	assert.False(t, e.ShouldBlockRequest("https://tracker.net/", "", rules.TypeOther))

	// Loading another list must invalidate cached decisions.
	require.NoError(t, e.LoadFilterList(ctx, "extra", "||tracker.net^\n"))
	assert.True(t, e.ShouldBlockRequest("https://tracker.net/", "", rules.TypeOther))

	// Reloading the same list changes no decisions.
	require.NoError(t, e.LoadFilterList(ctx, "extra", "||tracker.net^\n"))
	assert.True(t, e.ShouldBlockRequest("https://ads.example.com/", "", rules.TypeOther))
	assert.True(t, e.ShouldBlockRequest("https://tracker.net/", "", rules.TypeOther))
	assert.False(t, e.ShouldBlockRequest("https://example.org/", "", rules.TypeOther))
}

func TestEngine_ClearFilterLists(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "||ads.example.com^\n##.ad\n")

	assert.True(t, e.ShouldBlockRequest("https://ads.example.com/", "", rules.TypeOther))
	e.IncrementBlockedRequestCount()
	assert.NotZero(t, e.BlockedRequestsCount())

	e.ClearFilterLists()

	assert.False(t, e.ShouldBlockRequest("https://ads.example.com/", "", rules.TypeOther))
	assert.Empty(t, e.CosmeticSelectorsFor("example.com"))
	assert.Zero(t, e.BlockedRequestsCount())
}

func TestEngine_LoadDefaultFilterLists(t *testing.T) {
	t.Parallel()

	e := webshield.NewEngine(&webshield.Config{})
	require.NoError(t, e.LoadDefaultFilterLists(t.Context()))

	assert.True(t, e.ShouldBlockRequest(
		"https://doubleclick.net/gampad/?slot=1",
		"",
		rules.TypeScript,
	))
	assert.False(t, e.ShouldBlockRequest(
		"https://doubleclick.net/other",
		"",
		rules.TypeScript,
	))
	assert.Contains(t, e.CosmeticSelectorsFor("example.com"), ".ad:not(.youtube-ad)")
}

func TestEngine_statistics(t *testing.T) {
	t.Parallel()

	m := &testMetrics{}
	e := webshield.NewEngine(&webshield.Config{Metrics: m})
	require.NoError(t, e.LoadFilterList(t.Context(), testListName, "||ads.example.com^\n"))

	assert.True(t, e.ShouldBlockRequest("https://ads.example.com/", "", rules.TypeOther))
	e.IncrementBlockedRequestCount()
	e.IncrementBlockedElementCount()
	e.IncrementBlockedElementCount()

	assert.Equal(t, uint64(1), e.BlockedRequestsCount())
	assert.Equal(t, uint64(2), e.BlockedElementsCount())
	assert.Equal(t, uint64(1), m.blockedRequests.Load())
	assert.Equal(t, uint64(2), m.blockedElements.Load())

	e.ResetStatistics()
	assert.Zero(t, e.BlockedRequestsCount())
	assert.Zero(t, e.BlockedElementsCount())
}

func TestEngine_concurrency(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, "||ads.example.com^\n")
	ctx := t.Context()

	var wg sync.WaitGroup
	for i := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := range 500 {
				u := fmt.Sprintf("https://ads.example.com/%d/%d", i, j)
				assert.True(t, e.ShouldBlockRequest(u, "", rules.TypeScript))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()

		for j := range 20 {
			name := fmt.Sprintf("list%d", j)
			assert.NoError(t, e.LoadFilterList(ctx, name, "||tracker.net^\n"))
		}
	}()

	wg.Wait()
}
