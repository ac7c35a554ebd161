//go:build !gtex

package surface

import "image"

import "github.com/hajimehoshi/ebiten/v2"

// The surface type handled by caches and backends.
//
// With Ebitengine, Surface is *ebiten.Image. With the gtex build
// tag, Surface is [*image.RGBA] instead, which is useful for tools
// and tests that can't or shouldn't touch the GPU.
type Surface = *ebiten.Image

// Based on Ebitengine internals.
const constSurfaceSizeFactor = 192

// Returns the pixel bytes of the surface plus a fixed overhead.
// GPU-side copies and atlas padding aren't counted.
func ByteSize(surface Surface) uint64 {
	if surface == nil { return constSurfaceSizeFactor }
	bounds := surface.Bounds()
	return dimsByteSize(bounds.Dx(), bounds.Dy())
}

func dimsByteSize(width, height int) uint64 {
	return uint64(width*height)*4 + constSurfaceSizeFactor
}

// Uploads the given image into a new surface, preserving its bounds.
func FromRGBA(rgba *image.RGBA) Surface {
	if rgba == nil { return nil }
	opts := ebiten.NewImageFromImageOptions{ PreserveBounds: true }
	return ebiten.NewImageFromImageWithOptions(rgba, &opts)
}

// Creates an empty surface of the given size.
func NewEmpty(width, height int) Surface {
	return ebiten.NewImage(width, height)
}

// Returns the surface bounds, or an empty rectangle for nil.
func Bounds(surface Surface) image.Rectangle {
	if surface == nil { return image.Rectangle{} }
	return surface.Bounds()
}

// Releases the GPU resources of the surface. Nil surfaces are ignored.
func Dispose(surface Surface) {
	if surface == nil { return }
	surface.Dispose()
}
