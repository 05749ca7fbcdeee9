// Package webshield implements a content-filtering and ad-blocking engine
// for embedding into a browser's request pipeline and DOM layer.  The engine
// loads Adblock-Plus-style filter lists and answers, for every outgoing
// request, whether it should be blocked, redirected, or stripped of query
// parameters, and, for every document, which CSS selectors to hide.
//
// The engine keeps its filter state in an immutable snapshot that is swapped
// atomically on reloads, so lookups never block behind a list reload.
package webshield

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/webshield/webshield/filterlist"
	"github.com/webshield/webshield/internal/resultcache"
	"github.com/webshield/webshield/lookup"
)

// ErrEmptyListName is returned by [Engine.LoadFilterList] when the list
// identifier is empty.
const ErrEmptyListName errors.Error = "empty filter list name"

// Config is the engine configuration.
type Config struct {
	// Logger is used for logging engine operations.  If nil, output is
	// discarded.
	Logger *slog.Logger

	// Metrics receives engine events.  If nil, [EmptyMetrics] is used.
	Metrics Metrics

	// URLCacheCount and DomainCacheCount are the entry limits of the
	// request-decision and cosmetic-decision caches.  Nonpositive values
	// mean the default limit.
	URLCacheCount    int
	DomainCacheCount int
}

// snapshot is one immutable filter set together with its derived state:  the
// domain index and the decision caches.  The index is built lazily on the
// first lookup that needs it, so that a list which is replaced before being
// queried is never indexed.  The caches belong to the snapshot so that a
// decision computed against a replaced set can never outlive it:  a reload
// publishes a new snapshot with fresh caches, and late writes land in the
// abandoned one.
type snapshot struct {
	set *filterlist.Set

	indexOnce sync.Once
	index     *lookup.Index

	// urlCache maps serialized URLs to block decisions, domainCache maps
	// domains to has-cosmetic-filters decisions.
	urlCache    *resultcache.Cache
	domainCache *resultcache.Cache
}

// lookupIndex returns the domain index of the snapshot, building it on first
// use.
func (s *snapshot) lookupIndex() (ix *lookup.Index) {
	s.indexOnce.Do(func() {
		s.index = lookup.New(s.set.Networks)
	})

	return s.index
}

// Engine is the content-filtering engine.  One engine is shared by every
// concurrent request-evaluation site; all methods are safe for concurrent
// use.
type Engine struct {
	logger  *slog.Logger
	metrics Metrics

	// snap is the current filter snapshot.  It is replaced as a whole by
	// reloads; lookups load it once per call.
	snap atomic.Pointer[snapshot]

	// urlCacheCount and domainCacheCount size the caches of every new
	// snapshot.
	urlCacheCount    int
	domainCacheCount int

	// reloadMu serializes snapshot replacements.  Lookups do not take it.
	reloadMu sync.Mutex

	blockedRequests atomic.Uint64
	blockedElements atomic.Uint64

	enabled atomic.Bool
}

// NewEngine returns a new enabled engine with an empty filter set.  c must
// not be nil.
func NewEngine(c *Config) (e *Engine) {
	l := c.Logger
	if l == nil {
		l = slogutil.NewDiscardLogger()
	}

	m := c.Metrics
	if m == nil {
		m = EmptyMetrics{}
	}

	e = &Engine{
		logger:           l,
		metrics:          m,
		urlCacheCount:    c.URLCacheCount,
		domainCacheCount: c.DomainCacheCount,
	}

	e.snap.Store(e.newSnapshot(filterlist.NewSet()))
	e.enabled.Store(true)

	return e
}

// newSnapshot returns a snapshot of set with empty caches.
func (e *Engine) newSnapshot(set *filterlist.Set) (s *snapshot) {
	return &snapshot{
		set:         set,
		urlCache:    resultcache.New(e.urlCacheCount),
		domainCache: resultcache.New(e.domainCacheCount),
	}
}

// FilteringEnabled reports whether the engine currently filters anything.
func (e *Engine) FilteringEnabled() (ok bool) {
	return e.enabled.Load()
}

// SetFilteringEnabled enables or disables filtering.  The decision caches
// are dropped on every state change.
func (e *Engine) SetFilteringEnabled(enabled bool) {
	if e.enabled.Swap(enabled) == enabled {
		return
	}

	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	e.snap.Store(e.newSnapshot(e.snap.Load().set))
}

// LoadFilterList parses the filter-list text and merges its rules into the
// filter set, invalidating the domain index and the decision caches.  The
// merge is all-or-nothing:  on error the previous filter set stays in
// effect.  Malformed lines are skipped and counted, never treated as errors.
func (e *Engine) LoadFilterList(ctx context.Context, name, text string) (err error) {
	defer func() { err = errors.Annotate(err, "loading filter list %q: %w", name) }()

	if name == "" {
		return ErrEmptyListName
	}

	l, err := filterlist.Parse(name, text)
	if err != nil {
		return err
	}

	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	e.snap.Store(e.newSnapshot(e.snap.Load().set.Appending(l)))

	e.metrics.OnFilterListLoad(name, l.RulesCount)
	e.logger.InfoContext(
		ctx,
		"filter list loaded",
		"name", name,
		"network_rules", len(l.Networks),
		"cosmetic_rules", len(l.Cosmetics),
		"scriptlets", len(l.Scriptlets),
		"skipped", l.SkippedCount,
	)

	return nil
}

// LoadDefaultFilterLists loads the built-in conservative filter list.
func (e *Engine) LoadDefaultFilterLists(ctx context.Context) (err error) {
	return e.LoadFilterList(ctx, defaultListName, defaultFilterText)
}

// ClearFilterLists drops the whole filter set and resets the statistics.
func (e *Engine) ClearFilterLists() {
	e.reloadMu.Lock()
	defer e.reloadMu.Unlock()

	e.snap.Store(e.newSnapshot(filterlist.NewSet()))
	e.ResetStatistics()
}
