package engine

import (
	"math"
	"sync/atomic"
)

// Fallback container size used while real dimensions are unknown
const (
	DefaultViewportWidth  = 1920
	DefaultViewportHeight = 1080
)

// Viewport is the container size in pixels
type Viewport struct {
	Width, Height float64
}

// DefaultViewport is substituted for unknown container dimensions
var DefaultViewport = Viewport{Width: DefaultViewportWidth, Height: DefaultViewportHeight}

// Resolve returns usable dimensions, substituting defaults for missing or invalid axes
func (v Viewport) Resolve() (float64, float64) {
	w, h := v.Width, v.Height
	if !(w > 0) || math.IsInf(w, 0) {
		w = DefaultViewportWidth
	}
	if !(h > 0) || math.IsInf(h, 0) {
		h = DefaultViewportHeight
	}
	return w, h
}

// viewportState stores the live viewport for concurrent Resize and Tick
type viewportState struct {
	v atomic.Pointer[Viewport]
}

func (s *viewportState) store(v Viewport) {
	s.v.Store(&v)
}

func (s *viewportState) load() Viewport {
	if v := s.v.Load(); v != nil {
		return *v
	}
	return Viewport{}
}
