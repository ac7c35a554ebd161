package texcache

import "github.com/sirupsen/logrus"
import "github.com/jmgilman/go/errors"

import "github.com/tinne26/texcache/memtrack"
import "github.com/tinne26/texcache/surface"

// Default values used by [DefaultConfig]().
const (
	DefaultCapacity    = 32768
	DefaultBucketCount = 65536
)

// Internal "none" index for chain links, free list and ring links.
// Never exposed; see [EntryID] instead.
const noEntry uint32 = 0xFFFF_FFFF

// A rendering backend, as consumed by the cache.
//
// CreateSurface may fail (decoding errors, resource exhaustion...).
// ReleaseSurface is called exactly once for every surface successfully
// created, when its entry is evicted or removed.
type Backend interface {
	CreateSurface(desc Descriptor) (surface.Surface, error)
	ReleaseSurface(surface.Surface)
}

// Cache configuration. Start from [DefaultConfig]() and adjust.
type Config struct {
	Capacity    int // max live entries. Zero is allowed but makes every Load() fail
	BucketCount int // number of hash buckets, must be positive
	Backend Backend // required

	// Used to copy text content retained by the cache. A new
	// tracker is created when nil.
	Tracker *memtrack.Tracker

	// Defaults to logrus.StandardLogger() when nil.
	Logger logrus.FieldLogger
}

// Returns a config with [DefaultCapacity] and [DefaultBucketCount].
func DefaultConfig(backend Backend) Config {
	return Config{
		Capacity: DefaultCapacity,
		BucketCount: DefaultBucketCount,
		Backend: backend,
	}
}

// Returns nil if the configuration can be used with [NewCache]().
func (self *Config) Validate() error {
	if self.Backend == nil {
		return errors.New(errors.CodeInvalidConfig, "texture cache requires a backend")
	}
	if self.Capacity < 0 {
		return errors.Newf(errors.CodeInvalidConfig, "texture cache capacity can't be negative (got %d)", self.Capacity)
	}
	if uint64(self.Capacity) >= uint64(noEntry) {
		return errors.Newf(errors.CodeInvalidConfig, "texture cache capacity too big (got %d)", self.Capacity)
	}
	if self.BucketCount <= 0 {
		return errors.Newf(errors.CodeInvalidConfig, "texture cache bucket count must be positive (got %d)", self.BucketCount)
	}
	if uint64(self.BucketCount) >= uint64(noEntry) {
		return errors.Newf(errors.CodeInvalidConfig, "texture cache bucket count too big (got %d)", self.BucketCount)
	}
	return nil
}

// An opaque reference to a cache entry. The zero value and [NoEntry]
// refer to nothing. Ids become stale once their entry is evicted, and
// stale ids are rejected by [Cache.Surface]() and friends even after
// the slot has been reused.
type EntryID struct {
	index uint32
	generation uint32 // zero means "none"
}

// The "none" entry id.
var NoEntry = EntryID{ index: noEntry }

// Whether the id refers to no entry at all.
func (self EntryID) IsNone() bool { return self.generation == 0 }

// Returns the dense slot index, or -1 for [NoEntry].
func (self EntryID) Index() int {
	if self.IsNone() { return -1 }
	return int(self.index)
}

type cacheEntry struct {
	kind Kind
	sprite SpriteParams
	text string // backed by textBlock when non-empty
	textColor uint32
	textFlags uint16
	textBlock *memtrack.Block

	surface surface.Surface
	surfaceBytes uint64

	bucket uint32
	hashNext uint32 // next entry in the same bucket, or next free slot
	older uint32 // insertion ring
	newer uint32
	generation uint32
	live bool
}

func (self *cacheEntry) matches(desc *Descriptor) bool {
	if self.kind != desc.kind { return false }
	switch self.kind {
	case KindSprite:
		return self.sprite == desc.sprite
	case KindText:
		return self.textColor == desc.text.Color &&
		       self.textFlags == desc.text.Flags &&
		       self.text == desc.text.Text
	default:
		return false
	}
}

func (self *cacheEntry) descriptor() Descriptor {
	switch self.kind {
	case KindSprite:
		return SpriteDescriptor(self.sprite)
	case KindText:
		return TextDescriptor(self.text, self.textColor, self.textFlags)
	default:
		return Descriptor{}
	}
}

// Counters updated by [Cache.Load]() and the eviction policy.
type Stats struct {
	Hits uint64
	Misses uint64
	Inserts uint64
	Evictions uint64 // capacity evictions only, not explicit removals
	Removals uint64
	CreateFailures uint64
	PeakEntries int
}

// A fixed-capacity surface cache with a chained hash index.
//
// Entries live in a preallocated arena of Capacity slots and buckets
// hold arena indices, so steady state operation doesn't allocate
// (except for text copies). When the arena is full, the oldest
// inserted entry is evicted. Cache hits don't refresh recency.
//
// Caches are not concurrent-safe. They are meant to be used from the
// rendering thread only.
type Cache struct {
	buckets []uint32
	entries []cacheEntry
	capacity uint32
	numLive uint32
	nextUnused uint32 // slots at or above this index have never been used
	freeHead uint32
	oldest uint32
	newest uint32

	backend Backend
	tracker *memtrack.Tracker
	logger logrus.FieldLogger

	surfaceBytes uint64
	peakSurfaceBytes uint64
	stats Stats
	noCapacityLogged bool
}

// Creates a new cache. The bucket table and entry arena are
// allocated upfront.
func NewCache(config Config) (*Cache, error) {
	err := config.Validate()
	if err != nil { return nil, err }

	tracker := config.Tracker
	if tracker == nil { tracker = memtrack.New() }
	logger := config.Logger
	if logger == nil { logger = logrus.StandardLogger() }

	buckets := make([]uint32, config.BucketCount)
	for i := range buckets { buckets[i] = noEntry }

	return &Cache{
		buckets: buckets,
		entries: make([]cacheEntry, config.Capacity),
		capacity: uint32(config.Capacity),
		freeHead: noEntry,
		oldest: noEntry,
		newest: noEntry,
		backend: config.Backend,
		tracker: tracker,
		logger: logger.WithField("component", "texcache"),
	}, nil
}

// Returns the maximum number of live entries.
func (self *Cache) Capacity() int { return int(self.capacity) }

// Returns the number of hash buckets.
func (self *Cache) BucketCount() int { return len(self.buckets) }

// Returns the number of live entries.
func (self *Cache) Len() int { return int(self.numLive) }

// Returns a copy of the cache counters.
func (self *Cache) Stats() Stats { return self.stats }

// Returns the tracker used for text copies.
func (self *Cache) Tracker() *memtrack.Tracker { return self.tracker }

// Returns an approximation of the number of bytes taken by the
// surfaces currently owned by the cache.
func (self *Cache) SurfaceBytes() uint64 { return self.surfaceBytes }

// Returns the maximum value [Cache.SurfaceBytes]() has reached
// during the cache's lifetime. Useful to size the cache.
func (self *Cache) PeakSurfaceBytes() uint64 { return self.peakSurfaceBytes }

// Returns the bucket index for the given descriptor.
func (self *Cache) BucketOf(desc Descriptor) int {
	return int(self.bucketOf(&desc))
}

func (self *Cache) bucketOf(desc *Descriptor) uint32 {
	return HashDescriptor(*desc) % uint32(len(self.buckets))
}

// Returns the surface of a live entry. Stale ids return false.
func (self *Cache) Surface(id EntryID) (surface.Surface, bool) {
	entry := self.lookupID(id)
	if entry == nil { return nil, false }
	return entry.surface, true
}

// Returns the descriptor of a live entry. Stale ids return false.
func (self *Cache) Descriptor(id EntryID) (Descriptor, bool) {
	entry := self.lookupID(id)
	if entry == nil { return Descriptor{}, false }
	return entry.descriptor(), true
}

// Whether the id still refers to a live entry.
func (self *Cache) Contains(id EntryID) bool {
	return self.lookupID(id) != nil
}

func (self *Cache) lookupID(id EntryID) *cacheEntry {
	if id.IsNone() || id.index >= self.capacity { return nil }
	entry := &self.entries[id.index]
	if !entry.live || entry.generation != id.generation { return nil }
	return entry
}

func (self *Cache) idOf(index uint32) EntryID {
	return EntryID{ index: index, generation: self.entries[index].generation }
}

// Logs and panics with a consistency error.
func (self *Cache) corrupted(reason string, bucket uint32, index uint32) {
	err := newCorruptionError(reason, bucket, index)
	self.logger.WithFields(logrus.Fields{
		"bucket": slotString(bucket),
		"entry": slotString(index),
		"live": self.numLive,
	}).Error(reason)
	panic(err)
}
