package memtrack

import "sync"
import "strconv"

import "github.com/sirupsen/logrus"
import "github.com/jmgilman/go/errors"

// Allocation categories. Every tracked block belongs to one.
type Category uint8

const (
	CategoryGeneral Category = iota
	CategoryText // text copies retained by caches
	numCategories
)

var categoryNames = [numCategories]string{
	"general", "text",
}

// Returns the category name, as used in reports.
func (self Category) String() string {
	if self >= numCategories { return "category" + strconv.Itoa(int(self)) }
	return categoryNames[self]
}

// A byte buffer obtained from a [Tracker]. Blocks must be given back
// with [Tracker.Free]() exactly once.
type Block struct {
	bytes []byte
	category Category
	owner *Tracker
	freed bool
}

// Returns the block contents. The slice must not be retained
// after the block is freed.
func (self *Block) Bytes() []byte { return self.bytes }

// Returns the block size in bytes.
func (self *Block) Len() int { return len(self.bytes) }

// Returns the block category.
func (self *Block) Category() Category { return self.category }

// Returns the contents as a string. The string shares memory with
// the block, so the block must not be written after calling this.
func (self *Block) String() string {
	if len(self.bytes) == 0 { return "" }
	return unsafeString(self.bytes)
}

// Usage of a single category.
type CategoryStats struct {
	Category Category
	Bytes int64
	Blocks int64
}

// Snapshot of a tracker's accounting.
type Stats struct {
	Categories []CategoryStats // only categories with activity
	TotalBytes int64
	TotalBlocks int64
	PeakBytes int64
	PeakBlocks int64
}

// A byte-tracking allocator. Memory itself is managed by the Go
// runtime; the tracker keeps count of what is alive, per category,
// and the peak values reached. Trackers are concurrent-safe.
type Tracker struct {
	mutex sync.Mutex
	bytes [numCategories]int64
	blocks [numCategories]int64
	totalBytes int64
	totalBlocks int64
	peakBytes int64
	peakBlocks int64
}

// Creates a new, empty tracker.
func New() *Tracker { return &Tracker{} }

// Allocates a zeroed block of the given size. Returns nil if
// size is zero or the category is invalid.
func (self *Tracker) Alloc(size int, category Category) *Block {
	if size <= 0 || category >= numCategories { return nil }
	block := &Block{
		bytes: make([]byte, size),
		category: category,
		owner: self,
	}
	self.account(category, int64(size), 1)
	return block
}

// Allocates a block holding a copy of the given string. Returns nil
// for the empty string.
func (self *Tracker) StrDup(str string, category Category) *Block {
	block := self.Alloc(len(str), category)
	if block == nil { return nil }
	copy(block.bytes, str)
	return block
}

// Gives a block back. Freeing nil is a no-op. Freeing the same block
// twice, or a block from another tracker, returns a CodeConflict
// error and doesn't alter the accounting.
func (self *Tracker) Free(block *Block) error {
	if block == nil { return nil }
	if block.owner != self {
		return errors.New(errors.CodeConflict, "memtrack: block belongs to another tracker")
	}

	self.mutex.Lock()
	defer self.mutex.Unlock()
	if block.freed {
		return errors.Newf(errors.CodeConflict, "memtrack: %s block freed twice", block.category.String())
	}
	block.freed = true
	self.accountLocked(block.category, -int64(len(block.bytes)), -1)
	return nil
}

func (self *Tracker) account(category Category, bytes int64, blocks int64) {
	self.mutex.Lock()
	self.accountLocked(category, bytes, blocks)
	self.mutex.Unlock()
}

func (self *Tracker) accountLocked(category Category, bytes int64, blocks int64) {
	self.bytes[category]  += bytes
	self.blocks[category] += blocks
	self.totalBytes  += bytes
	self.totalBlocks += blocks
	if self.totalBytes  > self.peakBytes  { self.peakBytes  = self.totalBytes  }
	if self.totalBlocks > self.peakBlocks { self.peakBlocks = self.totalBlocks }
}

// Returns a snapshot of the current accounting.
func (self *Tracker) Stats() Stats {
	self.mutex.Lock()
	defer self.mutex.Unlock()

	stats := Stats{
		TotalBytes: self.totalBytes,
		TotalBlocks: self.totalBlocks,
		PeakBytes: self.peakBytes,
		PeakBlocks: self.peakBlocks,
	}
	for i := Category(0); i < numCategories; i++ {
		if self.bytes[i] == 0 && self.blocks[i] == 0 { continue }
		stats.Categories = append(stats.Categories, CategoryStats{
			Category: i, Bytes: self.bytes[i], Blocks: self.blocks[i],
		})
	}
	return stats
}

// Logs the current usage per category, the totals and the peaks.
func (self *Tracker) Report(logger logrus.FieldLogger) {
	const MiB = 1024.0*1024.0

	stats := self.Stats()
	for _, category := range stats.Categories {
		logger.WithFields(logrus.Fields{
			"category": category.Category.String(),
			"mib": float64(category.Bytes)/MiB,
			"blocks": category.Blocks,
		}).Info("memory in use")
	}
	logger.WithFields(logrus.Fields{
		"mib": float64(stats.TotalBytes)/MiB,
		"blocks": stats.TotalBlocks,
		"peak_mib": float64(stats.PeakBytes)/MiB,
		"peak_blocks": stats.PeakBlocks,
	}).Info("memory total")
}
