package store

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/barback/barback/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketCollections = []byte("collections")
	bucketFreshness   = []byte("freshness")
	bucketMeta        = []byte("meta")
)

var keySchemaVersion = []byte("schemaVersion")

// schemaVersion tags every freshness record. Bumping it discards caches
// written by older deployments on open instead of failing the open.
const schemaVersion = 2

// DefaultFreshnessWindow bounds how long a stored collection counts as fresh.
const DefaultFreshnessWindow = 10 * time.Minute

// freshnessRecord is stamped alongside every full-collection write, never
// independently.
type freshnessRecord struct {
	Collection    string    `json:"collection"`
	LastRefresh   time.Time `json:"lastRefresh"`
	SchemaVersion int       `json:"schemaVersion"`
}

// Options tunes a CatalogStore.
type Options struct {
	// FreshnessWindow defaults to DefaultFreshnessWindow when zero.
	FreshnessWindow time.Duration

	// FreshnessOverrides sets a per-collection window where the default
	// does not fit.
	FreshnessOverrides map[string]time.Duration

	Logger *slog.Logger
}

// CatalogStore implements domain.Store using BoltDB.
type CatalogStore struct {
	db     *bolt.DB
	logger *slog.Logger

	window    time.Duration
	overrides map[string]time.Duration

	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte

	now func() time.Time
}

// NewCatalogStore opens (or creates) the store under dir. An empty dir, or a
// dir that cannot be opened, yields a memory-only store: local persistence is
// best-effort and must never block startup.
func NewCatalogStore(dir string, opts Options) *CatalogStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	window := opts.FreshnessWindow
	if window <= 0 {
		window = DefaultFreshnessWindow
	}

	s := &CatalogStore{
		logger:    logger,
		window:    window,
		overrides: opts.FreshnessOverrides,
		cache:     make(map[string][]byte),
		now:       time.Now,
	}

	if dir == "" {
		return s
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("cache dir unavailable, running memory-only", "dir", dir, "error", err)
		return s
	}

	dbPath := filepath.Join(dir, "barback.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		logger.Warn("failed to open cache db, running memory-only", "path", dbPath, "error", err)
		return s
	}

	if err := initSchema(db); err != nil {
		logger.Warn("failed to initialize cache db, running memory-only", "path", dbPath, "error", err)
		db.Close()
		return s
	}

	s.db = db
	return s
}

// initSchema creates buckets and discards data left behind by a different
// schema version.
func initSchema(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCollections, bucketFreshness, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		stored := meta.Get(keySchemaVersion)
		if stored != nil {
			if v, err := strconv.Atoi(string(stored)); err == nil && v == schemaVersion {
				return nil
			}
		}

		// Stale or missing version: wipe both data buckets rather than
		// attempting to read records written by another deployment.
		if stored != nil {
			for _, bucket := range [][]byte{bucketCollections, bucketFreshness} {
				if err := tx.DeleteBucket(bucket); err != nil {
					return err
				}
				if _, err := tx.CreateBucket(bucket); err != nil {
					return err
				}
			}
		}
		return meta.Put(keySchemaVersion, []byte(strconv.Itoa(schemaVersion)))
	})
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) getCollection(name string, dest interface{}) bool {
	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCollections)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(name)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("cache read failed", "collection", name, "error", err)
		return false
	}
	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[name] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

// saveCollection atomically replaces the collection contents and stamps a
// fresh freshness record in the same transaction, so a concurrent reader
// never observes a half-written collection or a timestamp without its data.
func (s *CatalogStore) saveCollection(name string, records interface{}) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	stamp := freshnessRecord{
		Collection:    name,
		LastRefresh:   s.now(),
		SchemaVersion: schemaVersion,
	}
	stampData, err := json.Marshal(stamp)
	if err != nil {
		return err
	}

	// Update memory cache
	s.mu.Lock()
	s.cache[name] = data
	s.cache[freshnessKey(name)] = stampData
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketCollections).Put([]byte(name), data); err != nil {
			return err
		}
		return tx.Bucket(bucketFreshness).Put([]byte(name), stampData)
	})
}

func freshnessKey(name string) string { return "fresh:" + name }

func (s *CatalogStore) loadFreshness(name string) (freshnessRecord, bool) {
	s.mu.RLock()
	data, ok := s.cache[freshnessKey(name)]
	s.mu.RUnlock()

	if !ok {
		if s.db == nil {
			return freshnessRecord{}, false
		}
		err := s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketFreshness)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(name)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil || data == nil {
			return freshnessRecord{}, false
		}
		s.mu.Lock()
		s.cache[freshnessKey(name)] = data
		s.mu.Unlock()
	}

	var rec freshnessRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return freshnessRecord{}, false
	}
	if rec.SchemaVersion != schemaVersion {
		return freshnessRecord{}, false
	}
	return rec, true
}

// === Collections ===

func (s *CatalogStore) GetCocktails() ([]domain.Cocktail, bool) {
	var records []domain.Cocktail
	ok := s.getCollection(domain.CollectionCocktails, &records)
	return records, ok
}

func (s *CatalogStore) SaveCocktails(records []domain.Cocktail) error {
	return s.saveCollection(domain.CollectionCocktails, records)
}

func (s *CatalogStore) GetIngredients() ([]domain.Ingredient, bool) {
	var records []domain.Ingredient
	ok := s.getCollection(domain.CollectionIngredients, &records)
	return records, ok
}

func (s *CatalogStore) SaveIngredients(records []domain.Ingredient) error {
	return s.saveCollection(domain.CollectionIngredients, records)
}

func (s *CatalogStore) GetGlassTypes() ([]domain.GlassType, bool) {
	var records []domain.GlassType
	ok := s.getCollection(domain.CollectionGlassTypes, &records)
	return records, ok
}

func (s *CatalogStore) SaveGlassTypes(records []domain.GlassType) error {
	return s.saveCollection(domain.CollectionGlassTypes, records)
}

func (s *CatalogStore) GetCategories() ([]domain.Category, bool) {
	var records []domain.Category
	ok := s.getCollection(domain.CollectionCategories, &records)
	return records, ok
}

func (s *CatalogStore) SaveCategories(records []domain.Category) error {
	return s.saveCollection(domain.CollectionCategories, records)
}

// === Freshness ===

func (s *CatalogStore) IsFresh(collection string) bool {
	rec, ok := s.loadFreshness(collection)
	if !ok {
		return false
	}
	return s.now().Sub(rec.LastRefresh) < s.windowFor(collection)
}

func (s *CatalogStore) Freshness(collection string) (time.Time, bool) {
	rec, ok := s.loadFreshness(collection)
	if !ok {
		return time.Time{}, false
	}
	return rec.LastRefresh, true
}

func (s *CatalogStore) windowFor(collection string) time.Duration {
	if w, ok := s.overrides[collection]; ok && w > 0 {
		return w
	}
	return s.window
}

// Count returns the number of stored records without decoding them fully.
func (s *CatalogStore) Count(collection string) int {
	var raw []json.RawMessage
	if !s.getCollection(collection, &raw) {
		return 0
	}
	return len(raw)
}

// === Invalidation ===

func (s *CatalogStore) ClearCollection(collection string) {
	s.mu.Lock()
	delete(s.cache, collection)
	delete(s.cache, freshnessKey(collection))
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(bucketCollections); b != nil {
			if err := b.Delete([]byte(collection)); err != nil {
				return err
			}
		}
		if b := tx.Bucket(bucketFreshness); b != nil {
			return b.Delete([]byte(collection))
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("cache invalidation failed", "collection", collection, "error", err)
	}
}

func (s *CatalogStore) ClearAll() {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketCollections, bucketFreshness} {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			c := b.Cursor()
			for k, _ := c.First(); k != nil; k, _ = c.Next() {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("cache wipe failed", "error", err)
	}
}
