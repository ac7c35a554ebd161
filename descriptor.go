package texcache

import "strconv"
import "strings"

// The kind of a [Descriptor]. Descriptors of different kinds
// never compare equal, even if all their numeric fields are zero.
type Kind uint8

const (
	KindSprite Kind = 1
	KindText   Kind = 2
)

// Returns "sprite", "text" or "unknown".
func (self Kind) String() string {
	switch self {
	case KindSprite: return "sprite"
	case KindText:   return "text"
	default:
		return "unknown"
	}
}

// The parameters of a sprite rendering request. All fields are
// compared for bit-exact equality, and all of them take part in
// hashing, in declaration order.
//
// The meaning of the modifiers is up to the rendering backend;
// the cache only cares about their identity.
type SpriteParams struct {
	Sprite uint32

	Sink   int32 // vertical sinking into the ground, in pixels
	Freeze int32 // freeze effect level
	Scale  int32 // percentage, 0 and 100 both mean 1:1

	ColorR int32 // red channel multiplier, percentage (0 means unchanged)
	ColorG int32 // green channel multiplier, percentage (0 means unchanged)
	ColorB int32 // blue channel multiplier, percentage (0 means unchanged)
	Light  int32 // overall light level
	Saturation int32

	Color1 int32 // color overlay replacements
	Color2 int32
	Color3 int32
	Shine  int32

	LightMid   int32 // directional light levels
	LightLeft  int32
	LightRight int32
	LightUp    int32
	LightDown  int32
}

// The parameters of a text rendering request.
type TextParams struct {
	Text  string
	Color uint32 // packed 0xRRGGBB
	Flags uint16
}

// A rendering descriptor: the immutable key that describes what to
// render. Create descriptors with [SpriteDescriptor]() or [TextDescriptor]().
//
// Descriptors are small values and can be copied freely. The zero
// value has no kind and will never match any cached entry.
type Descriptor struct {
	kind Kind
	sprite SpriteParams
	text TextParams
}

// Creates a descriptor for the given sprite parameters.
func SpriteDescriptor(params SpriteParams) Descriptor {
	return Descriptor{ kind: KindSprite, sprite: params }
}

// Creates a descriptor for a text string with the given color
// and style flags.
func TextDescriptor(text string, color uint32, flags uint16) Descriptor {
	return Descriptor{
		kind: KindText,
		text: TextParams{ Text: text, Color: color, Flags: flags },
	}
}

// Returns the descriptor kind.
func (self Descriptor) Kind() Kind { return self.kind }

// Returns the sprite parameters. Only meaningful for [KindSprite].
func (self Descriptor) Sprite() SpriteParams { return self.sprite }

// Returns the text parameters. Only meaningful for [KindText].
func (self Descriptor) Text() TextParams { return self.text }

// Exact equality. This is the cache hit predicate.
func (self Descriptor) Equal(other Descriptor) bool {
	if self.kind != other.kind { return false }
	switch self.kind {
	case KindSprite: return self.sprite == other.sprite
	case KindText:   return self.text == other.text
	default:
		return false
	}
}

// Compact representation for logs and bucket dumps.
func (self Descriptor) String() string {
	var builder strings.Builder
	switch self.kind {
	case KindSprite:
		p := &self.sprite
		builder.WriteString("sprite:")
		builder.WriteString(strconv.FormatUint(uint64(p.Sprite), 10))
		builder.WriteString(" (scale=")
		builder.WriteString(strconv.Itoa(int(p.Scale)))
		builder.WriteString(" light=")
		builder.WriteString(strconv.Itoa(int(p.Light)))
		builder.WriteString(" ml=")
		builder.WriteString(strconv.Itoa(int(p.LightMid)))
		builder.WriteString(" ll=")
		builder.WriteString(strconv.Itoa(int(p.LightLeft)))
		builder.WriteString(" rl=")
		builder.WriteString(strconv.Itoa(int(p.LightRight)))
		builder.WriteString(" ul=")
		builder.WriteString(strconv.Itoa(int(p.LightUp)))
		builder.WriteString(" dl=")
		builder.WriteString(strconv.Itoa(int(p.LightDown)))
		builder.WriteString(")")
	case KindText:
		builder.WriteString("text:")
		builder.WriteString(strconv.Quote(self.text.Text))
		builder.WriteString(" color=0x")
		builder.WriteString(strconv.FormatUint(uint64(self.text.Color), 16))
		builder.WriteString(" flags=")
		builder.WriteString(strconv.Itoa(int(self.text.Flags)))
	default:
		builder.WriteString("invalid descriptor")
	}
	return builder.String()
}
