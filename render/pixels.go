package render

import (
	"image/color"

	"github.com/lixenwraith/particlefield/particle"
)

// NRGBA converts a palette color drawn at the given opacity into a straight-alpha color
func NRGBA(c particle.Color, opacity float64) color.NRGBA {
	a := c.A * opacity
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// GradientPixels returns RGBA bytes of a width x height vertical gradient
func GradientPixels(width, height int, top, bottom RGB) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	pix := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		c := Gradient(top, bottom, y, height)
		row := pix[y*width*4 : (y+1)*width*4]
		for x := 0; x < width; x++ {
			row[x*4] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = 0xff
		}
	}
	return pix
}
