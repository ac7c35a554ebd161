package render

import "os"
import "bytes"
import "archive/zip"
import "path/filepath"
import "image"
import "image/color"
import "image/png"
import "io/fs"
import "testing"
import "testing/fstest"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "github.com/jmgilman/go/errors"

import "github.com/tinne26/texcache"
import "github.com/tinne26/texcache/surface"

func encodeTestSprite(t *testing.T, width, height int, fill color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i + 0], img.Pix[i + 1] = fill.R, fill.G
		img.Pix[i + 2], img.Pix[i + 3] = fill.B, fill.A
	}
	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, img))
	return buffer.Bytes()
}

// counts how many times each file is opened
type countingFS struct {
	fsys fs.FS
	opens map[string]int
}

func (self *countingFS) Open(name string) (fs.File, error) {
	self.opens[name] += 1
	return self.fsys.Open(name)
}

func TestRasterizeText(t *testing.T) {
	params := texcache.TextParams{ Text: "HP: 10", Color: 0xFF0000 }
	rgba := RasterizeText(params)
	assert.Equal(t, 7*len(params.Text), rgba.Rect.Dx())
	assert.Equal(t, 13, rgba.Rect.Dy())

	foundRed := false
	for i := 0; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] == 0xFF && rgba.Pix[i + 1] == 0 && rgba.Pix[i + 3] == 0xFF {
			foundRed = true
			break
		}
	}
	assert.True(t, foundRed, "expected some red pixels")

	params.Flags = TextFlagShadow | TextFlagBold
	styled := RasterizeText(params)
	assert.Equal(t, 7*len(params.Text) + 2, styled.Rect.Dx())
	assert.Equal(t, 14, styled.Rect.Dy())

	empty := RasterizeText(texcache.TextParams{})
	assert.Equal(t, 1, empty.Rect.Dx())
}

func TestComposeSprite(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for i := 0; i < len(src.Pix); i++ { src.Pix[i] = 200 }

	same := ComposeSprite(src, texcache.SpriteParams{})
	require.Equal(t, image.Rect(0, 0, 10, 10), same.Rect)
	assert.Equal(t, src.Pix, same.Pix)

	scaled := ComposeSprite(src, texcache.SpriteParams{ Scale: 200 })
	assert.Equal(t, image.Rect(0, 0, 20, 20), scaled.Rect)

	tinted := ComposeSprite(src, texcache.SpriteParams{ ColorR: 50 })
	assert.Equal(t, uint8(100), tinted.Pix[0])
	assert.Equal(t, uint8(200), tinted.Pix[1])

	dimmed := ComposeSprite(src, texcache.SpriteParams{ Light: 8 })
	assert.Equal(t, uint8(100), dimmed.Pix[0])
	assert.Equal(t, uint8(200), dimmed.Pix[3])

	sunk := ComposeSprite(src, texcache.SpriteParams{ Sink: 3 })
	assert.Equal(t, uint8(200), sunk.Pix[sunk.PixOffset(5, 6) + 3])
	assert.Equal(t, uint8(0), sunk.Pix[sunk.PixOffset(5, 7) + 3])
}

func TestFSSprites(t *testing.T) {
	mapFS := fstest.MapFS{
		"7.png": &fstest.MapFile{ Data: encodeTestSprite(t, 4, 3, color.RGBA{255, 0, 0, 255}) },
		"8.png": &fstest.MapFile{ Data: []byte("not a png") },
	}
	counter := &countingFS{ fsys: mapFS, opens: make(map[string]int) }
	sprites, err := NewFSSprites(counter, 4)
	require.NoError(t, err)

	img, err := sprites.Sprite(7)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())

	_, err = sprites.Sprite(7)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.opens["7.png"], "decoded sprite should be memoized")
	assert.Equal(t, 1, sprites.DecodedCount())

	_, err = sprites.Sprite(9)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	_, err = sprites.Sprite(8)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = NewFSSprites(mapFS, 0)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}

func TestBackend(t *testing.T) {
	mapFS := fstest.MapFS{
		"1.png": &fstest.MapFile{ Data: encodeTestSprite(t, 6, 5, color.RGBA{10, 20, 30, 255}) },
	}
	sprites, err := NewFSSprites(mapFS, 4)
	require.NoError(t, err)
	backend := NewBackend(sprites)

	surf, err := backend.CreateSurface(texcache.SpriteDescriptor(texcache.SpriteParams{ Sprite: 1, Scale: 200 }))
	require.NoError(t, err)
	assert.Equal(t, 12, surface.Bounds(surf).Dx())
	assert.Equal(t, 10, surface.Bounds(surf).Dy())

	text, err := backend.CreateSurface(texcache.TextDescriptor("abc", 0xFFFFFF, 0))
	require.NoError(t, err)
	assert.Equal(t, 21, surface.Bounds(text).Dx())

	_, err = backend.CreateSurface(texcache.SpriteDescriptor(texcache.SpriteParams{ Sprite: 2 }))
	require.Error(t, err)
	assert.False(t, errors.IsRetryable(err))

	_, err = backend.CreateSurface(texcache.Descriptor{})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	assert.Equal(t, uint64(2), backend.Created())
	backend.ReleaseSurface(surf)
	backend.ReleaseSurface(text)
	assert.Equal(t, uint64(2), backend.Released())
	assert.Equal(t, uint64(0), backend.Outstanding())

	noSprites := NewBackend(nil)
	_, err = noSprites.CreateSurface(texcache.SpriteDescriptor(texcache.SpriteParams{}))
	assert.Equal(t, errors.CodeNotImplemented, errors.GetCode(err))
}

func writeTestZip(t *testing.T, files map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprites.zip")
	file, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(file)
	for name, data := range files {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())
	return path
}

func TestOpenZipSprites(t *testing.T) {
	path := writeTestZip(t, map[string][]byte{
		"3.png": encodeTestSprite(t, 5, 2, color.RGBA{0, 255, 0, 255}),
	})
	sprites, closer, err := OpenZipSprites(path, 4)
	require.NoError(t, err)

	img, err := sprites.Sprite(3)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 5, 2), img.Bounds())
	_, err = sprites.Sprite(4)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	backend := NewBackend(sprites)
	surf, err := backend.CreateSurface(texcache.SpriteDescriptor(texcache.SpriteParams{ Sprite: 3 }))
	require.NoError(t, err)
	assert.Equal(t, 5, surface.Bounds(surf).Dx())
	require.NoError(t, closer.Close())

	_, _, err = OpenZipSprites(filepath.Join(t.TempDir(), "missing.zip"), 4)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	_, _, err = OpenZipSprites(path, 0)
	assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
}
