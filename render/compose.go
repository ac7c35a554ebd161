package render

import "image"

import "golang.org/x/image/draw"

import "github.com/tinne26/texcache"

// Light levels are expressed in sixteenths of full brightness.
const fullLight = 16

// Creates a new image with the sprite scaled, tinted and lit according
// to the given parameters. Only Scale, Sink, the color multipliers and
// the light levels are applied; other modifiers only take part in the
// cache identity of the surface.
func ComposeSprite(src image.Image, params texcache.SpriteParams) *image.RGBA {
	bounds := src.Bounds()
	scale := int(params.Scale)
	if scale <= 0 { scale = 100 }
	width  := maxInt(1, bounds.Dx()*scale/100)
	height := maxInt(1, bounds.Dy()*scale/100)

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if scale == 100 {
		draw.Draw(rgba, rgba.Rect, src, bounds.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(rgba, rgba.Rect, src, bounds, draw.Src, nil)
	}

	// sinking hides the bottom rows
	if params.Sink > 0 {
		sink := minInt(int(params.Sink), height)
		clear(rgba.Pix[(height - sink)*rgba.Stride : ])
	}

	light := lightPercent(&params)
	rMul := channelPercent(params.ColorR)*light/100
	gMul := channelPercent(params.ColorG)*light/100
	bMul := channelPercent(params.ColorB)*light/100
	if rMul == 100 && gMul == 100 && bMul == 100 { return rgba }

	// pixels are premultiplied, so channels can't exceed alpha
	pix := rgba.Pix
	for i := 0; i < len(pix); i += 4 {
		alpha := int(pix[i + 3])
		pix[i + 0] = uint8(minInt(int(pix[i + 0])*rMul/100, alpha))
		pix[i + 1] = uint8(minInt(int(pix[i + 1])*gMul/100, alpha))
		pix[i + 2] = uint8(minInt(int(pix[i + 2])*bMul/100, alpha))
	}
	return rgba
}

func channelPercent(value int32) int {
	if value <= 0 { return 100 }
	return int(value)
}

// Averages the non-zero light levels, as a brightness percentage.
// No light values at all means the sprite is drawn unchanged.
func lightPercent(params *texcache.SpriteParams) int {
	levels := [...]int32{
		params.Light, params.LightMid, params.LightLeft,
		params.LightRight, params.LightUp, params.LightDown,
	}
	sum, count := 0, 0
	for _, level := range levels {
		if level == 0 { continue }
		sum += int(level)
		count += 1
	}
	if count == 0 { return 100 }
	percent := (sum*100)/(count*fullLight)
	if percent < 0 { return 0 }
	return percent
}

func maxInt(a, b int) int {
	if a >= b { return a }
	return b
}

func minInt(a, b int) int {
	if a <= b { return a }
	return b
}
