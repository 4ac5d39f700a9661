package input

import (
	"math"
	"sync/atomic"
)

// Pointer holds the last observed pointer coordinates in pixels
// Single writer (the pointer listener), many readers (the driver, once per tick)
// Both coordinates are packed into one word so readers never see a torn pair
type Pointer struct {
	bits atomic.Uint64
}

// NewPointer returns a pointer state at the origin
func NewPointer() *Pointer {
	return &Pointer{}
}

// Set records a new pointer position
func (p *Pointer) Set(x, y float64) {
	packed := uint64(math.Float32bits(float32(x)))<<32 | uint64(math.Float32bits(float32(y)))
	p.bits.Store(packed)
}

// Get returns the latest pointer position, (0,0) before the first Set
func (p *Pointer) Get() (float64, float64) {
	packed := p.bits.Load()
	x := math.Float32frombits(uint32(packed >> 32))
	y := math.Float32frombits(uint32(packed))
	return float64(x), float64(y)
}

// Reset moves the pointer back to the origin
func (p *Pointer) Reset() {
	p.bits.Store(0)
}
