//go:build gtex

package surface

import "image"

// Alias for the non-Ebitengine surface type.
type Surface = *image.RGBA

const constSurfaceSizeFactor = 56

func ByteSize(surface Surface) uint64 {
	if surface == nil { return constSurfaceSizeFactor }
	return dimsByteSize(surface.Rect.Dx(), surface.Rect.Dy())
}

func dimsByteSize(width, height int) uint64 {
	return uint64(width*height)*4 + constSurfaceSizeFactor
}

// Returns the image itself, no upload required.
func FromRGBA(rgba *image.RGBA) Surface { return rgba }

func NewEmpty(width, height int) Surface {
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func Bounds(surface Surface) image.Rectangle {
	if surface == nil { return image.Rectangle{} }
	return surface.Rect
}

// Nothing to release without a GPU, the garbage collector takes care.
func Dispose(surface Surface) {}
