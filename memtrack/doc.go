// The memtrack subpackage provides a byte-tracking allocator.
//
// Go manages memory on its own, so a [Tracker] doesn't really allocate
// anything special. What it does is keep count of the blocks that are
// alive per [Category], as well as the peak values, so long running
// programs can report where their retained bytes are going and catch
// double frees early.
//
// Caches use trackers to account for the text they copy:
//   tracker := memtrack.New()
//   block := tracker.StrDup("HP: 100", memtrack.CategoryText)
//   ...
//   err := tracker.Free(block)
package memtrack
