package render

import "io"
import "image"
import "image/png"
import "io/fs"
import "strconv"
import "archive/zip"

import "github.com/hashicorp/golang-lru/v2"
import "github.com/jmgilman/go/errors"

// Anything that can provide decoded sprite images by id.
type SpriteSource interface {
	Sprite(id uint32) (image.Image, error)
}

// A [SpriteSource] reading "<id>.png" files from a file system. Decoded
// images are kept in a small LRU so repeated surface creations for the
// same sprite (e.g., with different light values) don't decode again.
type FSSprites struct {
	fsys fs.FS
	decoded *lru.Cache[uint32, image.Image]
}

// Creates a sprite source over the given file system, keeping up to
// cacheSize decoded images in memory.
func NewFSSprites(fsys fs.FS, cacheSize int) (*FSSprites, error) {
	decoded, err := lru.New[uint32, image.Image](cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidConfig, "invalid decoded sprite cache size %d", cacheSize)
	}
	return &FSSprites{ fsys: fsys, decoded: decoded }, nil
}

// Opens a zip archive of "<id>.png" files as a sprite source. The
// returned closer must be closed once the source is no longer used.
func OpenZipSprites(path string, cacheSize int) (*FSSprites, io.Closer, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.CodeNotFound, "can't open sprite archive %q", path)
	}
	sprites, err := NewFSSprites(archive, cacheSize)
	if err != nil {
		_ = archive.Close()
		return nil, nil, err
	}
	return sprites, archive, nil
}

// Implements [SpriteSource].
func (self *FSSprites) Sprite(id uint32) (image.Image, error) {
	img, found := self.decoded.Get(id)
	if found { return img, nil }

	name := strconv.FormatUint(uint64(id), 10) + ".png"
	file, err := self.fsys.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeNotFound, "sprite %d not found", id)
	}
	defer file.Close()

	img, err = png.Decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeInvalidInput, "sprite %d can't be decoded", id)
	}
	self.decoded.Add(id, img)
	return img, nil
}

// Returns the number of decoded images currently kept.
func (self *FSSprites) DecodedCount() int { return self.decoded.Len() }
