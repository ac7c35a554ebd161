package memtrack

import "bytes"
import "testing"

import "github.com/sirupsen/logrus"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "github.com/jmgilman/go/errors"

func TestAllocAndFree(t *testing.T) {
	tracker := New()
	assert.Nil(t, tracker.Alloc(0, CategoryGeneral))
	assert.Nil(t, tracker.Alloc(8, numCategories))

	block := tracker.Alloc(16, CategoryGeneral)
	require.NotNil(t, block)
	assert.Equal(t, 16, block.Len())
	assert.Equal(t, CategoryGeneral, block.Category())
	for _, value := range block.Bytes() { assert.Equal(t, byte(0), value) }

	stats := tracker.Stats()
	assert.Equal(t, int64(16), stats.TotalBytes)
	assert.Equal(t, int64(1), stats.TotalBlocks)
	require.Len(t, stats.Categories, 1)
	assert.Equal(t, CategoryGeneral, stats.Categories[0].Category)

	require.NoError(t, tracker.Free(block))
	require.NoError(t, tracker.Free(nil))
	stats = tracker.Stats()
	assert.Equal(t, int64(0), stats.TotalBytes)
	assert.Equal(t, int64(0), stats.TotalBlocks)
	assert.Equal(t, int64(16), stats.PeakBytes)
	assert.Empty(t, stats.Categories)
}

func TestStrDup(t *testing.T) {
	tracker := New()
	assert.Nil(t, tracker.StrDup("", CategoryText))

	source := []byte("Score: 42")
	block := tracker.StrDup(string(source), CategoryText)
	require.NotNil(t, block)
	source[0] = 'X'
	assert.Equal(t, "Score: 42", block.String())
	assert.Equal(t, CategoryText, block.Category())
	assert.Equal(t, "text", block.Category().String())
	assert.Equal(t, "category9", Category(9).String())
	require.NoError(t, tracker.Free(block))
}

func TestFreeMisuse(t *testing.T) {
	tracker, other := New(), New()
	block := tracker.StrDup("abc", CategoryText)

	err := other.Free(block)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConflict, errors.GetCode(err))
	assert.Equal(t, int64(3), tracker.Stats().TotalBytes)

	require.NoError(t, tracker.Free(block))
	err = tracker.Free(block)
	require.Error(t, err)
	assert.Equal(t, errors.CodeConflict, errors.GetCode(err))
	assert.Equal(t, int64(0), tracker.Stats().TotalBytes)
	assert.Equal(t, int64(0), tracker.Stats().TotalBlocks)
}

func TestPeaks(t *testing.T) {
	tracker := New()
	var blocks []*Block
	for i := 1; i <= 10; i++ {
		blocks = append(blocks, tracker.Alloc(i, CategoryText))
	}
	for _, block := range blocks[ : 5] {
		require.NoError(t, tracker.Free(block))
	}
	tracker.Alloc(100, CategoryGeneral)

	stats := tracker.Stats()
	assert.Equal(t, int64(6 + 7 + 8 + 9 + 10 + 100), stats.TotalBytes)
	assert.Equal(t, int64(6), stats.TotalBlocks)
	assert.Equal(t, int64(140), stats.PeakBytes)
	assert.Equal(t, int64(10), stats.PeakBlocks)
	assert.Len(t, stats.Categories, 2)
}

func TestReport(t *testing.T) {
	var output bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&output)
	logger.SetFormatter(&logrus.TextFormatter{ DisableTimestamp: true })

	tracker := New()
	tracker.StrDup("hello", CategoryText)
	tracker.Report(logger)
	assert.Contains(t, output.String(), "category=text")
	assert.Contains(t, output.String(), "memory total")
	assert.Contains(t, output.String(), "peak_blocks=1")
}
