package core

// RGB stores explicit 8-bit color channels
type RGB struct {
	R, G, B uint8
}

// Predefined colors
var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// PaletteSize is the number of entries in every palette
const PaletteSize = 256

// Palette is a full 256-entry color table indexed by pixel value
type Palette [PaletteSize]RGB

// Gray returns an RGB with all channels set to v
func Gray(v uint8) RGB {
	return RGB{v, v, v}
}
