package texcache

import "github.com/tinne26/texcache/memtrack"
import "github.com/tinne26/texcache/surface"

// Returns the entry for the given descriptor, creating its surface
// through the backend on a cache miss. When the cache is full, the
// oldest inserted entry is evicted to make room.
//
// On failure, [NoEntry] is returned together with the error, and the
// cache is left as it was (minus a possible eviction). Backend failures
// are usually worth retrying on a later frame, see [IsRetryable]().
// [ErrNoCapacity] is returned if the cache has zero capacity, and
// [ErrInvalidDescriptor] for descriptors without a valid kind.
//
// Panics with an [ErrCorrupted] error on internal consistency failures.
func (self *Cache) Load(desc Descriptor) (EntryID, error) {
	if desc.kind != KindSprite && desc.kind != KindText {
		return NoEntry, ErrInvalidDescriptor
	}

	id, found := self.Find(desc)
	if found {
		self.stats.Hits += 1
		return id, nil
	}
	self.stats.Misses += 1

	index, ok := self.acquireSlot()
	if !ok { return NoEntry, ErrNoCapacity }

	surf, err := self.backend.CreateSurface(desc)
	if err != nil {
		self.returnSlot(index)
		self.stats.CreateFailures += 1
		self.logger.WithError(err).Debugf("surface creation failed for %v", desc)
		return NoEntry, newSurfaceError(err, desc)
	}

	self.insert(index, &desc, surf)
	return self.idOf(index), nil
}

// Populates the slot and links it at the head of its bucket chain
// and at the newest end of the insertion ring.
func (self *Cache) insert(index uint32, desc *Descriptor, surf surface.Surface) {
	entry := &self.entries[index]
	if entry.live {
		self.corrupted("inserting into live slot", entry.bucket, index)
	}

	entry.kind = desc.kind
	switch desc.kind {
	case KindSprite:
		entry.sprite = desc.sprite
	case KindText:
		entry.textBlock = self.tracker.StrDup(desc.text.Text, memtrack.CategoryText)
		if entry.textBlock != nil { entry.text = entry.textBlock.String() }
		entry.textColor = desc.text.Color
		entry.textFlags = desc.text.Flags
	}
	entry.surface = surf
	entry.surfaceBytes = surface.ByteSize(surf)
	entry.generation += 1
	if entry.generation == 0 { entry.generation = 1 } // zero is "none"
	entry.live = true

	bucket := self.bucketOf(desc)
	entry.bucket = bucket
	entry.hashNext = self.buckets[bucket]
	self.buckets[bucket] = index
	self.linkToRing(index)

	self.numLive += 1
	self.stats.Inserts += 1
	if int(self.numLive) > self.stats.PeakEntries {
		self.stats.PeakEntries = int(self.numLive)
	}
	self.surfaceBytes += entry.surfaceBytes
	if self.surfaceBytes > self.peakSurfaceBytes {
		self.peakSurfaceBytes = self.surfaceBytes
	}
}
