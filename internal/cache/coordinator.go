// Package cache implements the read path of the catalog: an in-memory tier,
// the durable local store, and the remote gateway, with staleness-based
// background refresh, single-flight coalescing, and static-data fallback.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/barback/barback/internal/domain"
	"github.com/barback/barback/internal/metrics"
	"github.com/barback/barback/internal/notify"
	"github.com/barback/barback/internal/static"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultRefreshDelay keeps background refreshes off the critical path of
// the read that triggered them.
const DefaultRefreshDelay = 75 * time.Millisecond

// Options tunes a Coordinator. The zero value is usable.
type Options struct {
	Bus       *notify.Bus
	Scheduler Scheduler
	Metrics   *metrics.Recorder
	Logger    *slog.Logger

	// RefreshDelay defaults to DefaultRefreshDelay when zero.
	RefreshDelay time.Duration

	// MemoryTTL defaults to DefaultMemoryTTL when zero;
	// MemoryTTLOverrides sets per-collection values.
	MemoryTTL          time.Duration
	MemoryTTLOverrides map[string]time.Duration
}

// Coordinator decides, per read, whether to serve from cache,
// serve-and-refresh, or fetch-and-cache. It is the sole writer to the store
// and is constructed once per process and passed to consumers.
type Coordinator struct {
	store   domain.Store
	client  domain.CatalogClient
	bus     *notify.Bus
	sched   Scheduler
	metrics *metrics.Recorder
	logger  *slog.Logger

	refreshDelay time.Duration

	mem   *memoryCache
	group singleflight.Group

	refreshMu  sync.Mutex
	refreshing map[string]bool
}

// New creates a Coordinator over the given store and remote client.
func New(store domain.Store, client domain.CatalogClient, opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = NewTimerScheduler()
	}
	delay := opts.RefreshDelay
	if delay <= 0 {
		delay = DefaultRefreshDelay
	}
	return &Coordinator{
		store:        store,
		client:       client,
		bus:          opts.Bus,
		sched:        sched,
		metrics:      opts.Metrics,
		logger:       logger,
		refreshDelay: delay,
		mem:          newMemoryCache(opts.MemoryTTL, opts.MemoryTTLOverrides),
		refreshing:   make(map[string]bool),
	}
}

// collection bundles the typed accessors for one cacheable collection so the
// read path can be written once.
type collection[T domain.Keyed] struct {
	name     string
	load     func() ([]T, bool)
	save     func([]T) error
	fetch    func(context.Context) ([]T, error)
	defaults func() []T
}

func (c *Coordinator) cocktails() collection[domain.Cocktail] {
	return collection[domain.Cocktail]{
		name:     domain.CollectionCocktails,
		load:     c.store.GetCocktails,
		save:     c.store.SaveCocktails,
		fetch:    c.client.FetchCocktails,
		defaults: static.Cocktails,
	}
}

func (c *Coordinator) ingredients() collection[domain.Ingredient] {
	return collection[domain.Ingredient]{
		name:     domain.CollectionIngredients,
		load:     c.store.GetIngredients,
		save:     c.store.SaveIngredients,
		fetch:    c.client.FetchIngredients,
		defaults: static.Ingredients,
	}
}

func (c *Coordinator) glassTypes() collection[domain.GlassType] {
	return collection[domain.GlassType]{
		name:     domain.CollectionGlassTypes,
		load:     c.store.GetGlassTypes,
		save:     c.store.SaveGlassTypes,
		fetch:    c.client.FetchGlassTypes,
		defaults: static.GlassTypes,
	}
}

func (c *Coordinator) categories() collection[domain.Category] {
	return collection[domain.Category]{
		name:     domain.CollectionCategories,
		load:     c.store.GetCategories,
		save:     c.store.SaveCategories,
		fetch:    c.client.FetchCategories,
		defaults: static.Categories,
	}
}

// === Reads ===

// Cocktails returns the cocktail collection. It never fails: the fallback
// chain ends at the compiled-in defaults.
func (c *Coordinator) Cocktails(ctx context.Context) []domain.Cocktail {
	return get(ctx, c, c.cocktails())
}

// Ingredients returns the ingredient collection.
func (c *Coordinator) Ingredients(ctx context.Context) []domain.Ingredient {
	return get(ctx, c, c.ingredients())
}

// GlassTypes returns the glass type collection.
func (c *Coordinator) GlassTypes(ctx context.Context) []domain.GlassType {
	return get(ctx, c, c.glassTypes())
}

// Categories returns the category collection.
func (c *Coordinator) Categories(ctx context.Context) []domain.Category {
	return get(ctx, c, c.categories())
}

// get walks the three tiers: memory, durable store, remote. Fresh cached
// data short-circuits; stale data is served immediately while a refresh is
// scheduled off the critical path; an empty cache blocks on the fetch and
// degrades through a second store read down to the static defaults. Static
// defaults are never written back into the cache.
func get[T domain.Keyed](ctx context.Context, c *Coordinator, col collection[T]) []T {
	if v, ok := c.mem.get(col.name); ok {
		c.metrics.ObserveRead(col.name, metrics.TierMemory)
		return v.([]T)
	}

	records, ok := col.load()
	if ok && len(records) > 0 {
		c.metrics.ObserveRead(col.name, metrics.TierStore)
		if c.store.IsFresh(col.name) {
			c.mem.set(col.name, records)
			return records
		}

		// Stale: the caller gets the cached data now; the refresh runs
		// detached and never discards stale data on failure.
		c.logger.Debug("serving stale cache, scheduling refresh", "collection", col.name, "count", len(records))
		c.scheduleRefresh(col.name, func(ctx context.Context) error {
			_, err := fetchAndCache(ctx, c, col)
			return err
		})
		return records
	}

	fetched, err := fetchAndCache(ctx, c, col)
	if err == nil {
		c.metrics.ObserveRead(col.name, metrics.TierRemote)
		return fetched
	}
	c.logger.Warn("remote fetch failed, falling back", "collection", col.name, "error", err)

	// Another path may have cached the collection while our fetch failed.
	if records, ok := col.load(); ok && len(records) > 0 {
		c.metrics.ObserveRead(col.name, metrics.TierStore)
		return records
	}

	c.metrics.ObserveRead(col.name, metrics.TierStatic)
	return col.defaults()
}

// fetchAndCache is the single-flight fetch path: at most one in-flight
// fetch exists per collection name, and overlapping callers share its
// result.
func fetchAndCache[T domain.Keyed](ctx context.Context, c *Coordinator, col collection[T]) ([]T, error) {
	v, err, _ := c.group.Do(col.name, func() (any, error) {
		records, err := col.fetch(ctx)
		if err != nil {
			c.metrics.ObserveRefresh(col.name, metrics.RefreshFailed)
			return nil, err
		}
		if err := col.save(records); err != nil {
			// Persistence is best-effort; the fetched data still serves.
			c.logger.Error("failed to cache collection", "collection", col.name, "error", err)
		}
		c.mem.set(col.name, records)
		c.metrics.ObserveRefresh(col.name, metrics.RefreshOK)
		c.metrics.SetRecordCount(col.name, len(records))
		return records, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

// scheduleRefresh arms one detached refresh per collection. The short delay
// keeps the refresh from competing with the read that triggered it.
func (c *Coordinator) scheduleRefresh(name string, refresh func(context.Context) error) {
	c.refreshMu.Lock()
	if c.refreshing[name] {
		c.refreshMu.Unlock()
		return
	}
	c.refreshing[name] = true
	c.refreshMu.Unlock()

	c.sched.AfterFunc(c.refreshDelay, func() {
		defer func() {
			c.refreshMu.Lock()
			delete(c.refreshing, name)
			c.refreshMu.Unlock()
		}()

		if err := refresh(context.Background()); err != nil {
			// Stale data stays in place; a failed silent refresh is
			// invisible to the user.
			c.logger.Warn("background refresh failed", "collection", name, "error", err)
			return
		}
		c.publish(notify.Event{Collection: name, Kind: notify.KindRefreshed})
	})
}

// === Forced refresh ===

// ForceRefreshCollection bypasses freshness checks and fetch-and-caches the
// named collection immediately. Unlike the read path it surfaces gateway
// errors: it backs the explicit user-triggered refresh action, which must
// report failure instead of silently falling back.
func (c *Coordinator) ForceRefreshCollection(ctx context.Context, name string) error {
	var err error
	switch name {
	case domain.CollectionCocktails:
		_, err = fetchAndCache(ctx, c, c.cocktails())
	case domain.CollectionIngredients:
		_, err = fetchAndCache(ctx, c, c.ingredients())
	case domain.CollectionGlassTypes:
		_, err = fetchAndCache(ctx, c, c.glassTypes())
	case domain.CollectionCategories:
		_, err = fetchAndCache(ctx, c, c.categories())
	default:
		return domain.ErrUnknownCollection
	}
	if err != nil {
		return err
	}
	c.publish(notify.Event{Collection: name, Kind: notify.KindRefreshed})
	return nil
}

// ForceRefreshAll refreshes every collection in parallel and reports the
// first failure.
func (c *Coordinator) ForceRefreshAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range domain.Collections() {
		name := name
		g.Go(func() error {
			return c.ForceRefreshCollection(ctx, name)
		})
	}
	return g.Wait()
}

// === Invalidation and patching ===

// Invalidate clears one cached collection entirely, forcing the next read
// back through the remote fetch path.
func (c *Coordinator) Invalidate(name string) {
	c.store.ClearCollection(name)
	c.mem.delete(name)
	c.metrics.SetRecordCount(name, 0)
	c.logger.Info("invalidated collection cache", "collection", name)
	c.publish(notify.Event{Collection: name, Kind: notify.KindInvalidated})
}

// InvalidateAll clears every cached collection.
func (c *Coordinator) InvalidateAll() {
	c.store.ClearAll()
	c.mem.clear()
	for _, name := range domain.Collections() {
		c.metrics.SetRecordCount(name, 0)
		c.publish(notify.Event{Collection: name, Kind: notify.KindInvalidated})
	}
	c.logger.Info("invalidated all collection caches")
}

// PatchCocktail applies a single-record mutation to the cached cocktail
// collection without a remote round-trip. The record only needs its ID set
// for OpRemove.
func (c *Coordinator) PatchCocktail(op PatchOp, record domain.Cocktail) error {
	return patchOne(c, c.cocktails(), op, record)
}

// PatchIngredient applies a single-record mutation to the cached
// ingredient collection.
func (c *Coordinator) PatchIngredient(op PatchOp, record domain.Ingredient) error {
	return patchOne(c, c.ingredients(), op, record)
}

// patchOne rewrites the cached array in place: append, replace-by-id, or
// remove-by-id. With nothing cached there is nothing to patch; the next
// read repopulates from the remote.
func patchOne[T domain.Keyed](c *Coordinator, col collection[T], op PatchOp, record T) error {
	records, ok := col.load()
	if !ok {
		c.mem.delete(col.name)
		return nil
	}

	switch op {
	case OpAdd:
		records = append(records, record)
	case OpUpdate:
		replaced := false
		for i := range records {
			if records[i].Key() == record.Key() {
				records[i] = record
				replaced = true
				break
			}
		}
		if !replaced {
			// The remote accepted the update, so the record exists
			// there; adopt it locally rather than dropping it.
			records = append(records, record)
		}
	case OpRemove:
		kept := records[:0]
		for _, r := range records {
			if r.Key() != record.Key() {
				kept = append(kept, r)
			}
		}
		records = kept
	}

	if err := col.save(records); err != nil {
		return err
	}
	c.mem.set(col.name, records)
	c.metrics.SetRecordCount(col.name, len(records))
	c.logger.Debug("patched cached collection", "collection", col.name, "op", string(op), "id", record.Key())
	c.publish(notify.Event{Collection: col.name, Kind: notify.KindPatched, RecordID: record.Key()})
	return nil
}

// === Introspection ===

// CollectionStats is a read-only snapshot of one cached collection.
type CollectionStats struct {
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"lastUpdated"`
	Fresh       bool      `json:"isFresh"`
}

// Stats reports count, last refresh time, and freshness per collection. No
// side effects.
func (c *Coordinator) Stats() map[string]CollectionStats {
	out := make(map[string]CollectionStats, len(domain.Collections()))
	for _, name := range domain.Collections() {
		ts, _ := c.store.Freshness(name)
		out[name] = CollectionStats{
			Count:       c.store.Count(name),
			LastUpdated: ts,
			Fresh:       c.store.IsFresh(name),
		}
	}
	return out
}

func (c *Coordinator) publish(e notify.Event) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}
