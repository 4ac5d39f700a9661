package render

import "github.com/gdamore/tcell/v2"

// Cell is one composited terminal cell
type Cell struct {
	Rune  rune
	Fg    RGB
	Bg    RGB
	Alpha float64 // Strongest particle alpha drawn into the cell, 0 if empty
}

// RenderBuffer is a compositor backed by a Cell array
// Particles land in cells; overlapping particles keep the brighter color and the stronger glyph
type RenderBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *RenderBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
}

// Size returns buffer dimensions in cells
func (b *RenderBuffer) Size() (int, int) {
	return b.width, b.height
}

// FillGradient clears every cell to a vertical background gradient
func (b *RenderBuffer) FillGradient(top, bottom RGB) {
	for y := 0; y < b.height; y++ {
		bg := Gradient(top, bottom, y, b.height)
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := range row {
			row[x] = Cell{Rune: ' ', Fg: bg, Bg: bg}
		}
	}
}

// inBounds returns true if in screen bounds
func (b *RenderBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Plot composites a glyph of color fg at the given alpha over the cell background
func (b *RenderBuffer) Plot(x, y int, r rune, fg RGB, alpha float64) {
	if !b.inBounds(x, y) || alpha <= 0 {
		return
	}
	dst := &b.cells[y*b.width+x]

	lit := Blend(dst.Bg, fg, alpha)
	if dst.Alpha == 0 {
		dst.Fg = lit
	} else {
		dst.Fg = Max(dst.Fg, lit)
	}
	if alpha >= dst.Alpha {
		dst.Rune = r
		dst.Alpha = alpha
	}
}

// WriteText writes a run of opaque text starting at (x, y), clipped to the buffer
func (b *RenderBuffer) WriteText(x, y int, text string, fg, bg RGB) {
	for _, r := range text {
		if b.inBounds(x, y) {
			b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg, Alpha: 1}
		}
		x++
	}
}

// Get returns the cell at (x, y); out of bounds returns the zero cell
func (b *RenderBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// FlushToScreen writes the buffer to a tcell screen without calling Show
func (b *RenderBuffer) FlushToScreen(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			style := tcell.StyleDefault.Foreground(c.Fg.TCell()).Background(c.Bg.TCell())
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}
