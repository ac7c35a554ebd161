package render

import "image"

import "github.com/sirupsen/logrus"
import "github.com/jmgilman/go/errors"

import "github.com/tinne26/texcache"
import "github.com/tinne26/texcache/surface"

var _ texcache.Backend = (*Backend)(nil)

// A CPU-composing [texcache.Backend]. Backends are not concurrent-safe,
// same as caches.
type Backend struct {
	sprites SpriteSource
	logger logrus.FieldLogger
	created uint64
	released uint64
}

// Creates a new backend. The sprite source may be nil if only text
// will be requested.
func NewBackend(sprites SpriteSource) *Backend {
	return &Backend{ sprites: sprites, logger: logrus.StandardLogger() }
}

// Sets the logger used to report failed surface creations.
func (self *Backend) SetLogger(logger logrus.FieldLogger) {
	self.logger = logger
}

// Implements [texcache.Backend].
func (self *Backend) CreateSurface(desc texcache.Descriptor) (surface.Surface, error) {
	var rgba *image.RGBA
	switch desc.Kind() {
	case texcache.KindSprite:
		if self.sprites == nil {
			return nil, errors.New(errors.CodeNotImplemented, "backend has no sprite source")
		}
		params := desc.Sprite()
		src, err := self.sprites.Sprite(params.Sprite)
		if err != nil {
			self.logger.WithError(err).Warnf("sprite %d unavailable", params.Sprite)
			return nil, err
		}
		rgba = ComposeSprite(src, params)
	case texcache.KindText:
		rgba = RasterizeText(desc.Text())
	default:
		return nil, errors.Newf(errors.CodeInvalidInput, "unexpected descriptor kind %s", desc.Kind().String())
	}

	self.created += 1
	return surface.FromRGBA(rgba), nil
}

// Implements [texcache.Backend].
func (self *Backend) ReleaseSurface(surf surface.Surface) {
	surface.Dispose(surf)
	self.released += 1
}

// Number of surfaces created so far.
func (self *Backend) Created() uint64 { return self.created }

// Number of surfaces released so far.
func (self *Backend) Released() uint64 { return self.released }

// Number of surfaces created and not released yet.
func (self *Backend) Outstanding() uint64 { return self.created - self.released }
