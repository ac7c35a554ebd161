package texcache

// FNV-1a 32-bit parameters.
const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// Returns the 32-bit FNV-1a hash of the given descriptor. Sprites fold
// the sprite id and every modifier as little endian 32-bit values, in
// declaration order. Text folds the string bytes, then the color, then
// the flags widened to 32 bits.
func HashDescriptor(desc Descriptor) uint32 {
	switch desc.kind {
	case KindSprite:
		return hashSprite(&desc.sprite)
	case KindText:
		return hashText(desc.text.Text, desc.text.Color, desc.text.Flags)
	default:
		return fnvOffsetBasis
	}
}

func hashSprite(p *SpriteParams) uint32 {
	hash := fnvFold32(fnvOffsetBasis, p.Sprite)
	hash  = fnvFold32(hash, uint32(p.Sink))
	hash  = fnvFold32(hash, uint32(p.Freeze))
	hash  = fnvFold32(hash, uint32(p.Scale))
	hash  = fnvFold32(hash, uint32(p.ColorR))
	hash  = fnvFold32(hash, uint32(p.ColorG))
	hash  = fnvFold32(hash, uint32(p.ColorB))
	hash  = fnvFold32(hash, uint32(p.Light))
	hash  = fnvFold32(hash, uint32(p.Saturation))
	hash  = fnvFold32(hash, uint32(p.Color1))
	hash  = fnvFold32(hash, uint32(p.Color2))
	hash  = fnvFold32(hash, uint32(p.Color3))
	hash  = fnvFold32(hash, uint32(p.Shine))
	hash  = fnvFold32(hash, uint32(p.LightMid))
	hash  = fnvFold32(hash, uint32(p.LightLeft))
	hash  = fnvFold32(hash, uint32(p.LightRight))
	hash  = fnvFold32(hash, uint32(p.LightUp))
	hash  = fnvFold32(hash, uint32(p.LightDown))
	return hash
}

func hashText(text string, color uint32, flags uint16) uint32 {
	hash := fnvFoldString(fnvOffsetBasis, text)
	hash  = fnvFold32(hash, color)
	hash  = fnvFold32(hash, uint32(flags))
	return hash
}

// Folds the four bytes of value, lowest first.
func fnvFold32(hash uint32, value uint32) uint32 {
	hash = (hash ^ (value & 0xFF)) * fnvPrime
	hash = (hash ^ ((value >> 8) & 0xFF)) * fnvPrime
	hash = (hash ^ ((value >> 16) & 0xFF)) * fnvPrime
	hash = (hash ^ (value >> 24)) * fnvPrime
	return hash
}

func fnvFoldString(hash uint32, str string) uint32 {
	for i := 0; i < len(str); i++ {
		hash = (hash ^ uint32(str[i])) * fnvPrime
	}
	return hash
}
