package render

import "image"
import "image/color"

import "golang.org/x/image/font"
import "golang.org/x/image/font/basicfont"
import "golang.org/x/image/math/fixed"

import "github.com/tinne26/texcache"

// Text style flags understood by this backend.
const (
	TextFlagShadow uint16 = 1 << 0 // dark copy one pixel down-right
	TextFlagBold   uint16 = 1 << 1 // second pass one pixel to the right
)

var shadowColor = color.RGBA{0, 0, 0, 255}

// Rasterizes the given text into a new image, using a 7x13 bitmap
// face. Empty strings produce a transparent image one pixel wide.
func RasterizeText(params texcache.TextParams) *image.RGBA {
	face := basicfont.Face7x13
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	width  := font.MeasureString(face, params.Text).Ceil()
	height := metrics.Height.Ceil()

	shadow := params.Flags & TextFlagShadow != 0
	bold   := params.Flags & TextFlagBold != 0
	if bold   { width += 1 }
	if shadow { width += 1 ; height += 1 }
	if width <= 0 { width = 1 }

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	drawer := font.Drawer{ Dst: rgba, Face: face }
	if shadow {
		drawer.Src = image.NewUniform(shadowColor)
		drawer.Dot = fixed.P(1, ascent + 1)
		drawer.DrawString(params.Text)
	}

	drawer.Src = image.NewUniform(unpackColor(params.Color))
	drawer.Dot = fixed.P(0, ascent)
	drawer.DrawString(params.Text)
	if bold {
		drawer.Dot = fixed.P(1, ascent)
		drawer.DrawString(params.Text)
	}
	return rgba
}

// Converts a packed 0xRRGGBB value to an opaque color.
func unpackColor(packed uint32) color.RGBA {
	return color.RGBA{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
		A: 255,
	}
}
