package texcache

// Looks for a live entry matching the given descriptor. Doesn't
// modify the cache in any way, counters included.
//
// Panics with an [ErrCorrupted] error if the bucket chain is found
// to be inconsistent.
func (self *Cache) Find(desc Descriptor) (EntryID, bool) {
	bucket := self.bucketOf(&desc)
	index  := self.walkChain(bucket, func(_ uint32, entry *cacheEntry) bool {
		return entry.matches(&desc)
	})
	if index == noEntry { return NoEntry, false }
	return self.idOf(index), true
}

// Walks the chain of the given bucket until visit returns true, and
// returns the index of that entry, or noEntry if the chain end was
// reached first.
//
// A chain can't be longer than the number of slots in the arena, so
// going over that can only mean we are looping.
func (self *Cache) walkChain(bucket uint32, visit func(uint32, *cacheEntry) bool) uint32 {
	index := self.buckets[bucket]
	steps := uint32(0)
	for index != noEntry {
		if index >= self.capacity {
			self.corrupted("chain link out of range", bucket, index)
		}
		steps += 1
		if steps > self.capacity {
			self.corrupted("chain walk limit exceeded", bucket, index)
		}

		entry := &self.entries[index]
		if !entry.live {
			self.corrupted("chain links a dead entry", bucket, index)
		}
		if entry.bucket != bucket {
			self.corrupted("entry linked from foreign bucket", bucket, index)
		}
		if visit(index, entry) { return index }
		index = entry.hashNext
	}
	return noEntry
}
