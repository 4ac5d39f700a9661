package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particlefield/particle"
)

// RGB is an opaque 24-bit color
type RGB struct {
	R, G, B uint8
}

// Predefined default color
var (
	RGBBlack = RGB{0, 0, 0}
)

// FromColor drops the alpha channel of a palette color
func FromColor(c particle.Color) RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// TCell converts to a tcell true color
func (c RGB) TCell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blend optimizes alpha blending
// If alpha is 1.0 or 0.0, we return early to save math
func Blend(c, src RGB, alpha float64) RGB {
	if alpha >= 1.0 {
		return src
	}
	if alpha <= 0.0 {
		return c
	}

	// Pre-calculate invariant
	inv := 1.0 - alpha

	return RGB{
		R: uint8(float64(src.R)*alpha + float64(c.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(c.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(c.B)*inv),
	}
}

// Max returns per-channel maximum
func Max(c, src RGB) RGB {
	return RGB{
		R: max(c.R, src.R),
		G: max(c.G, src.G),
		B: max(c.B, src.B),
	}
}

// Lerp interpolates from a to b, t in [0,1]
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return Blend(a, b, t)
}

// Gradient returns the color of row y in a vertical gradient of the given height
func Gradient(top, bottom RGB, y, height int) RGB {
	if height <= 1 {
		return top
	}
	return Lerp(top, bottom, float64(y)/float64(height-1))
}
