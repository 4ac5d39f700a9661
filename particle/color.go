package particle

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) RGBA color, alpha in [0,1]
type Color struct {
	R, G, B uint8
	A       float64
}

// Predefined palette entries
var (
	White   = Color{R: 255, G: 255, B: 255, A: 1}
	Emerald = Color{R: 16, G: 185, B: 129, A: 0.5}
	Azure   = Color{R: 59, G: 130, B: 246, A: 0.4}
	Pink    = Color{R: 236, G: 72, B: 153, A: 0.3}
)

// Palettes observed in the three field variants
var (
	NebulaPalette    = []Color{White, Emerald, Azure, Pink}
	ReactivePalette  = []Color{White, Emerald}
	StarfieldPalette = []Color{White}
)

// ParseColor accepts #rgb, #rrggbb and #rrggbbaa
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]}) + "ff"
	case 6:
		hex += "ff"
	case 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q: expected #rgb, #rrggbb or #rrggbbaa", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}

	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: float64(uint8(v)) / 255,
	}, nil
}

// String renders the color as #rrggbbaa
func (c Color) String() string {
	a := c.A
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(a*255+0.5))
}
