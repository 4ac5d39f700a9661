package engine

import (
	"math"
	"time"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/particlefield/particle"
)

// FrameInput is everything outside the particle that one tick depends on
type FrameInput struct {
	PointerX, PointerY float64
	Viewport           Viewport
	Elapsed            time.Duration // Since the field was mounted
}

// RenderState is the transient transform of one particle for one tick
// X and Y are absolute pixels
type RenderState struct {
	X, Y    float64
	Scale   float64
	Opacity float64
}

// Perlin parameters for drift; the table is read-only after construction and shared by all engines
const (
	driftAlpha  = 2.0
	driftBeta   = 2.0
	driftOctave = 3
	driftSeed   = 1337

	// Noise is sampled off the integer lattice, where Perlin noise is always zero
	driftCycleStep = 0.61
	driftOffset    = 0.29
	driftGain      = 1.6
)

var driftNoise = perlin.NewPerlin(driftAlpha, driftBeta, driftOctave, driftSeed)

// ComputeRenderState derives one particle's transform for one tick
// Pure: depends only on its arguments
func ComputeRenderState(p particle.Particle, in FrameInput, m Motion) RenderState {
	vw, vh := in.Viewport.Resolve()
	px, py := p.PixelPosition(vw, vh)

	cycle, w := oscillation(in.Elapsed, p.Phase, m.Period)

	rs := RenderState{
		X:       px,
		Y:       py,
		Scale:   1,
		Opacity: clampUnit(p.BaseOpacity * (1 + (m.OpacityPeak-1)*w)),
	}

	if m.DepthScale != 1 && p.Depth > m.DepthThreshold {
		rs.Scale = 1 + (m.DepthScale-1)*w
	}

	// Drift target changes every cycle and is reached at the peak, so the field jumps between
	// targets instead of following a trajectory
	if m.JitterPx > 0 {
		jx, jy := drift(p.Seed, cycle)
		rs.X += jx * m.JitterPx * w
		rs.Y += jy * m.JitterPx * w
	}

	switch m.Reactivity {
	case ReactProximity:
		dx := px - in.PointerX
		dy := py - in.PointerY
		rs.Scale *= ProximityScale(math.Hypot(dx, dy), m)
		rs.X -= dx * p.Speed * m.PointerPull
		rs.Y -= dy * p.Speed * m.PointerPull

	case ReactParallax:
		rs.X += (in.PointerX - px) * p.Speed * m.ParallaxFactor
		rs.Y += (in.PointerY - py) * p.Speed * m.ParallaxFactor
	}

	return rs
}

// ProximityScale returns the scale multiplier for a particle at distance d from the pointer
// Non-increasing in d
func ProximityScale(d float64, m Motion) float64 {
	if d < m.ProximityThreshold {
		return m.ProximityScale
	}
	return 1
}

// oscillation returns the current cycle index and the wave position in [0,1]
// The wave rises from 0 at the cycle start to 1 at mid-cycle and falls back to 0
func oscillation(elapsed time.Duration, phase float64, period time.Duration) (int64, float64) {
	if period <= 0 {
		return 0, 0
	}
	t := (elapsed.Seconds() + phase) / period.Seconds()
	if t < 0 {
		t = 0
	}
	cycle := math.Floor(t)
	frac := t - cycle
	return int64(cycle), (1 - math.Cos(2*math.Pi*frac)) / 2
}

// drift returns a per-particle per-cycle direction with components in [-1,1]
func drift(seed int64, cycle int64) (float64, float64) {
	key := float64(uint64(seed)%65521) + driftOffset
	c := float64(cycle)*driftCycleStep + driftOffset
	jx := driftNoise.Noise2D(key, c) * driftGain
	jy := driftNoise.Noise2D(key+101.3, c) * driftGain
	return clampSigned(jx), clampSigned(jy)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampSigned(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
