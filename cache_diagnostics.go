package texcache

import "github.com/sirupsen/logrus"

// Summary of the bucket chain distribution, see [Cache.Distribution]().
type DistributionReport struct {
	TotalEntries int
	NonEmptyBuckets int
	BucketCount int
	MaxChain int
	MaxChainBucket int // -1 if the cache is empty
	BucketsOver10 int
	BucketsOver50 int
	BucketsOver100 int
	SpriteEntries int
	TextEntries int
}

// Returns the chain length for every bucket. Diagnostics only.
func (self *Cache) ChainLengths() []int {
	lengths := make([]int, len(self.buckets))
	for bucket := range self.buckets {
		self.walkChain(uint32(bucket), func(uint32, *cacheEntry) bool {
			lengths[bucket] += 1
			return false
		})
	}
	return lengths
}

// Returns the ids of the entries in the given bucket, most recently
// inserted first. Returns nil if the bucket is out of range.
func (self *Cache) BucketEntries(bucket int) []EntryID {
	if bucket < 0 || bucket >= len(self.buckets) { return nil }
	var ids []EntryID
	self.walkChain(uint32(bucket), func(index uint32, _ *cacheEntry) bool {
		ids = append(ids, self.idOf(index))
		return false
	})
	return ids
}

// Returns the number of entries in buckets [first, first + count).
func (self *Cache) EntriesInBuckets(first, count int) int {
	if first < 0 { count += first ; first = 0 }
	if first + count > len(self.buckets) { count = len(self.buckets) - first }
	total := 0
	for bucket := first; bucket < first + count; bucket++ {
		self.walkChain(uint32(bucket), func(uint32, *cacheEntry) bool {
			total += 1
			return false
		})
	}
	return total
}

// Walks all the chains and summarizes their distribution.
func (self *Cache) Distribution() DistributionReport {
	report := DistributionReport{ BucketCount: len(self.buckets), MaxChainBucket: -1 }
	for bucket := range self.buckets {
		length := 0
		self.walkChain(uint32(bucket), func(_ uint32, entry *cacheEntry) bool {
			length += 1
			if entry.kind == KindSprite { report.SpriteEntries += 1 }
			if entry.kind == KindText   { report.TextEntries   += 1 }
			return false
		})
		if length == 0 { continue }

		report.NonEmptyBuckets += 1
		report.TotalEntries += length
		if length > report.MaxChain {
			report.MaxChain = length
			report.MaxChainBucket = bucket
		}
		if length > 10  { report.BucketsOver10  += 1 }
		if length > 50  { report.BucketsOver50  += 1 }
		if length > 100 { report.BucketsOver100 += 1 }
	}
	return report
}

// Logs the report at info level.
func (self *DistributionReport) Log(logger logrus.FieldLogger, label string) {
	fill := 0.0
	if self.BucketCount > 0 {
		fill = 100.0*float64(self.NonEmptyBuckets)/float64(self.BucketCount)
	}
	logger.WithFields(logrus.Fields{
		"entries": self.TotalEntries,
		"sprites": self.SpriteEntries,
		"texts": self.TextEntries,
		"non_empty_buckets": self.NonEmptyBuckets,
		"buckets": self.BucketCount,
		"fill_pct": fill,
		"max_chain": self.MaxChain,
		"max_chain_bucket": self.MaxChainBucket,
		"over_10": self.BucketsOver10,
		"over_50": self.BucketsOver50,
		"over_100": self.BucketsOver100,
	}).Infof("hash distribution: %s", label)
}

// Checks every structural invariant of the cache: chain membership,
// hashing, arena bounds, insertion ring, free list and counters.
// Unlike other methods, Validate returns the consistency error
// instead of panicking.
func (self *Cache) Validate() (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil { return }
		if !IsCorruption(recovered) { panic(recovered) }
		err = recovered.(error)
	}()

	// every chained entry must be live, hash to its bucket and be
	// reachable from exactly one chain
	seen := make([]bool, self.capacity)
	chained := uint32(0)
	for bucket := range self.buckets {
		self.walkChain(uint32(bucket), func(index uint32, entry *cacheEntry) bool {
			if seen[index] {
				self.corrupted("entry reachable from two chains", uint32(bucket), index)
			}
			seen[index] = true
			desc := entry.descriptor()
			if self.bucketOf(&desc) != uint32(bucket) {
				self.corrupted("entry in wrong bucket", uint32(bucket), index)
			}
			chained += 1
			return false
		})
	}
	if chained != self.numLive {
		self.corrupted("live count doesn't match chained entries", noEntry, noEntry)
	}

	// the insertion ring must hold the same live entries
	ringed := uint32(0)
	prev := noEntry
	for index := self.oldest; index != noEntry; index = self.entries[index].newer {
		if index >= self.capacity || !seen[index] {
			self.corrupted("insertion ring links unchained entry", noEntry, index)
		}
		if self.entries[index].older != prev {
			self.corrupted("insertion ring back link broken", noEntry, index)
		}
		ringed += 1
		if ringed > self.numLive {
			self.corrupted("insertion ring too long", noEntry, index)
		}
		prev = index
	}
	if ringed != self.numLive || prev != self.newest {
		self.corrupted("insertion ring doesn't match live entries", noEntry, prev)
	}

	// free slots must be dead and never chained
	free := uint32(0)
	for index := self.freeHead; index != noEntry; index = self.entries[index].hashNext {
		if index >= self.nextUnused || self.entries[index].live {
			self.corrupted("bad free list slot", noEntry, index)
		}
		free += 1
		if free > self.capacity {
			self.corrupted("free list too long", noEntry, index)
		}
	}
	if self.numLive + free != self.nextUnused {
		self.corrupted("slot accounting doesn't add up", noEntry, noEntry)
	}

	return nil
}
