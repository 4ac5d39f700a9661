package render

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/particle"
)

// CellMetrics maps terminal cells to the pixel space the engine works in
type CellMetrics struct {
	Width, Height float64 // Pixels per cell
}

// DefaultCellMetrics approximates a common monospace cell
var DefaultCellMetrics = CellMetrics{Width: 8, Height: 16}

// Viewport converts a cell grid into a pixel viewport
func (m CellMetrics) Viewport(cols, rows int) engine.Viewport {
	return engine.Viewport{Width: float64(cols) * m.Width, Height: float64(rows) * m.Height}
}

// PointerPixels returns the pixel center of a cell, used for mouse positions
func (m CellMetrics) PointerPixels(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * m.Width, (float64(row) + 0.5) * m.Height
}

// Cell returns the cell containing pixel (x, y); negative pixels map to negative cells
func (m CellMetrics) Cell(x, y float64) (int, int) {
	return floorDiv(x, m.Width), floorDiv(y, m.Height)
}

func floorDiv(v, unit float64) int {
	q := v / unit
	i := int(q)
	if q < 0 && float64(i) != q {
		i--
	}
	return i
}

// Glyph picks a rune for a particle diameter in pixels
func Glyph(size float64) rune {
	switch {
	case size < 2.5:
		return '·'
	case size < 4.5:
		return '•'
	case size < 7:
		return '●'
	default:
		return '⬤'
	}
}

// StatusFunc supplies the HUD line, empty hides it
type StatusFunc func() string

// TerminalRenderer draws frames onto a tcell screen
// Safe for DrawFrame from a loop goroutine concurrent with Resize from the event goroutine
type TerminalRenderer struct {
	mu      sync.Mutex
	screen  tcell.Screen
	buf     *RenderBuffer
	metrics CellMetrics
	top     RGB
	bottom  RGB
	status  StatusFunc
}

// NewTerminalRenderer creates a renderer sized to the screen
func NewTerminalRenderer(screen tcell.Screen, metrics CellMetrics, background [2]particle.Color) *TerminalRenderer {
	cols, rows := screen.Size()
	return &TerminalRenderer{
		screen:  screen,
		buf:     NewRenderBuffer(cols, rows),
		metrics: metrics,
		top:     FromColor(background[0]),
		bottom:  FromColor(background[1]),
	}
}

// SetStatus installs the HUD line supplier
func (r *TerminalRenderer) SetStatus(fn StatusFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = fn
}

// SetBackground changes the gradient stops
func (r *TerminalRenderer) SetBackground(background [2]particle.Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.top = FromColor(background[0])
	r.bottom = FromColor(background[1])
}

// Resize matches the buffer to the screen and returns the new pixel viewport
func (r *TerminalRenderer) Resize() engine.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	cols, rows := r.screen.Size()
	r.buf.Resize(cols, rows)
	return r.metrics.Viewport(cols, rows)
}

// Viewport returns the current pixel viewport
func (r *TerminalRenderer) Viewport() engine.Viewport {
	r.mu.Lock()
	defer r.mu.Unlock()
	cols, rows := r.buf.Size()
	return r.metrics.Viewport(cols, rows)
}

// DrawFrame composites one frame and shows it
func (r *TerminalRenderer) DrawFrame(f engine.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.compose(f)
	r.buf.FlushToScreen(r.screen)
	r.screen.Show()
}

// compose renders the frame into the buffer; caller holds mu
func (r *TerminalRenderer) compose(f engine.Frame) {
	r.buf.FillGradient(r.top, r.bottom)

	for _, rec := range f.Records {
		x, y := r.metrics.Cell(rec.X, rec.Y)
		alpha := rec.Opacity * rec.Color.A
		r.buf.Plot(x, y, Glyph(rec.Size), FromColor(rec.Color), alpha)
	}

	if r.status == nil {
		return
	}
	line := r.status()
	if line == "" {
		return
	}
	cols, rows := r.buf.Size()
	if rows == 0 {
		return
	}
	if len([]rune(line)) < cols {
		line = fmt.Sprintf("%-*s", cols, line)
	}
	r.buf.WriteText(0, rows-1, line, RGB{180, 180, 180}, RGB{20, 20, 28})
}
