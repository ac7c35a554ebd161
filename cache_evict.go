package texcache

// Returns a free slot, evicting the oldest inserted entry if the
// arena is full. Returns false only when capacity is zero.
func (self *Cache) acquireSlot() (uint32, bool) {
	if self.capacity == 0 {
		if !self.noCapacityLogged {
			self.noCapacityLogged = true
			self.logger.Warn("texture cache has zero capacity, all loads will fail")
		}
		return noEntry, false
	}

	// slots given back after failures or removals
	if self.freeHead != noEntry {
		index := self.freeHead
		if index >= self.capacity || self.entries[index].live {
			self.corrupted("bad free list head", noEntry, index)
		}
		self.freeHead = self.entries[index].hashNext
		self.entries[index].hashNext = noEntry
		return index, true
	}

	// slots never used before
	if self.nextUnused < self.capacity {
		index := self.nextUnused
		self.nextUnused += 1
		return index, true
	}

	// full, evict oldest insertion
	victim := self.oldest
	if victim == noEntry {
		self.corrupted("arena full but insertion ring empty", noEntry, victim)
	}
	self.dropEntry(victim)
	self.stats.Evictions += 1
	return victim, true
}

// Gives an unused slot back to the free list.
func (self *Cache) returnSlot(index uint32) {
	self.entries[index].hashNext = self.freeHead
	self.freeHead = index
}

// Unlinks the entry from its bucket chain and the insertion ring,
// releases its surface and text copy, and leaves the slot dead. The
// slot is not added to the free list.
func (self *Cache) dropEntry(index uint32) {
	entry := &self.entries[index]
	if !entry.live {
		self.corrupted("dropping dead entry", entry.bucket, index)
	}

	self.unlinkFromChain(index)
	self.unlinkFromRing(index)

	self.logger.Debugf("drop entry %d: %v", index, entry.descriptor())
	self.backend.ReleaseSurface(entry.surface)
	self.surfaceBytes -= entry.surfaceBytes
	if entry.textBlock != nil {
		err := self.tracker.Free(entry.textBlock)
		if err != nil {
			self.corrupted("text copy freed twice", entry.bucket, index)
		}
	}

	generation := entry.generation
	*entry = cacheEntry{}
	entry.generation = generation // kept so the next owner gets a new one
	entry.bucket = noEntry
	entry.hashNext = noEntry
	entry.older = noEntry
	entry.newer = noEntry
	self.numLive -= 1
}

func (self *Cache) unlinkFromChain(index uint32) {
	bucket := self.entries[index].bucket
	if bucket >= uint32(len(self.buckets)) {
		self.corrupted("entry bucket out of range", bucket, index)
	}

	// head case
	if self.buckets[bucket] == index {
		self.buckets[bucket] = self.entries[index].hashNext
		return
	}

	// mid or tail case, find predecessor
	predecessor := self.walkChain(bucket, func(_ uint32, entry *cacheEntry) bool {
		return entry.hashNext == index
	})
	if predecessor == noEntry {
		self.corrupted("entry missing from its bucket chain", bucket, index)
	}
	self.entries[predecessor].hashNext = self.entries[index].hashNext
}

func (self *Cache) linkToRing(index uint32) {
	entry := &self.entries[index]
	entry.older = self.newest
	entry.newer = noEntry
	if self.newest != noEntry {
		self.entries[self.newest].newer = index
	} else {
		self.oldest = index
	}
	self.newest = index
}

func (self *Cache) unlinkFromRing(index uint32) {
	entry := &self.entries[index]
	if entry.older != noEntry {
		self.entries[entry.older].newer = entry.newer
	} else {
		if self.oldest != index {
			self.corrupted("insertion ring head mismatch", entry.bucket, index)
		}
		self.oldest = entry.newer
	}
	if entry.newer != noEntry {
		self.entries[entry.newer].older = entry.older
	} else {
		if self.newest != index {
			self.corrupted("insertion ring tail mismatch", entry.bucket, index)
		}
		self.newest = entry.older
	}
}

// Removes the entry matching the given descriptor, if any, releasing
// its surface. Returns whether an entry was removed. Ids pointing to
// the removed entry become stale.
func (self *Cache) Remove(desc Descriptor) bool {
	id, found := self.Find(desc)
	if !found { return false }
	self.dropEntry(id.index)
	self.returnSlot(id.index)
	self.stats.Removals += 1
	return true
}

// Removes every entry, releasing all surfaces. Counters and peak
// values are preserved.
func (self *Cache) Clear() {
	for self.oldest != noEntry {
		index := self.oldest
		self.dropEntry(index)
		self.stats.Removals += 1
	}

	for i := range self.buckets {
		if self.buckets[i] != noEntry {
			self.corrupted("bucket not empty after clear", uint32(i), self.buckets[i])
		}
	}

	// all slots are dead now, rebuild the free list from scratch
	self.freeHead = noEntry
	self.nextUnused = 0
	for i := range self.entries {
		self.entries[i].hashNext = noEntry
	}
}
