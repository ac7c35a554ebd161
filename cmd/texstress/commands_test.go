package main

import "os"
import "bytes"
import "image"
import "image/png"
import "strconv"
import "testing"
import "archive/zip"
import "path/filepath"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "github.com/jmgilman/go/errors"

import "github.com/tinne26/texcache"

func runStress(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestSpritesCommand(t *testing.T) {
	out := runStress(t, "sprites", "--capacity", "64", "--buckets", "128", "--count", "200")
	assert.Contains(t, out, "hash distribution: sprites")
	assert.Contains(t, out, "entries=64")
	assert.Contains(t, out, "evictions=136")
}

func TestTextCommand(t *testing.T) {
	out := runStress(t, "text", "--capacity", "100", "--buckets", "256", "--count", "300", "--dump-bucket", "0")
	assert.Contains(t, out, "texts=100")
	assert.Contains(t, out, "category=text")
}

func TestZeroCommand(t *testing.T) {
	out := runStress(t, "zero", "--count", "3")
	assert.Contains(t, out, "light  0 -> bucket 37057")
	assert.Contains(t, out, "light  1 -> bucket 7568")
	assert.Contains(t, out, "light  2 -> bucket 30499")
}

func TestRenderCommandTextOnly(t *testing.T) {
	out := runStress(t, "render", "--capacity", "8", "--buckets", "16", "--count", "20")
	assert.Contains(t, out, "surfaces: 20 created, 8 outstanding")
}

func TestInvalidConfig(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"sprites", "--buckets", "0"})
	assert.Error(t, root.Execute())
}

func TestHudText(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 26*100*3; i++ {
		seen[hudText(i).String()] = true
	}
	assert.Len(t, seen, 26*100*3)
}

// writes a zip holding "0.png" .. "<count-1>.png"
func writeSpriteArchive(t *testing.T, count int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprites.zip")
	file, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(file)
	for i := 0; i < count; i++ {
		entry, err := writer.Create(strconv.Itoa(i) + ".png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(entry, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	}
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())
	return path
}

func TestRenderCommandWithArchive(t *testing.T) {
	archive := writeSpriteArchive(t, 2)
	out := runStress(t, "render", "--archive", archive, "--capacity", "8", "--buckets", "16", "--count", "4")
	assert.Contains(t, out, "surfaces: 4 created, 4 outstanding")
	assert.Contains(t, out, "sprites=2")
	assert.Contains(t, out, "texts=2")
	assert.Contains(t, out, "failures=0")

	out = runStress(t, "render", "--archive", archive, "--capacity", "2", "--buckets", "16", "--count", "4")
	assert.Contains(t, out, "surfaces: 4 created, 2 outstanding")
}

func TestRenderCommandMissingArchive(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"render", "--archive", filepath.Join(t.TempDir(), "none.zip")})
	err := root.Execute()
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestZeroCapacityStops(t *testing.T) {
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"sprites", "--capacity", "0", "--count", "5"})
	err := root.Execute()
	require.Error(t, err)
	assert.True(t, errors.Is(err, texcache.ErrNoCapacity))
}
