package particle

import (
	"math/rand/v2"
	"time"
)

const (
	// MinSize is the smallest diameter a generated particle can have
	MinSize = 0.5
	// MinOpacity keeps base opacity strictly positive
	MinOpacity = 0.01
)

// Interval is a closed sampling range
type Interval struct {
	Min, Max float64
}

// Sample draws uniformly from the interval, a degenerate or inverted interval returns Min
func (iv Interval) Sample(r *rand.Rand) float64 {
	if iv.Max <= iv.Min {
		return iv.Min
	}
	return iv.Min + r.Float64()*(iv.Max-iv.Min)
}

// Ranges bounds every randomized particle attribute
type Ranges struct {
	Size    Interval
	Speed   Interval
	Opacity Interval
	Depth   Interval
	Phase   Interval // seconds
}

// Generator creates particle batches from a random source
// Not safe for concurrent use; the engine serializes calls
type Generator struct {
	rng     *rand.Rand
	ids     IDSource
	palette []Color

	generation uint64
	now        func() time.Time
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithRand sets the random source, useful for reproducible fields
func WithRand(r *rand.Rand) GeneratorOption {
	return func(g *Generator) { g.rng = r }
}

// WithIDSource replaces the default UUID id source
func WithIDSource(ids IDSource) GeneratorOption {
	return func(g *Generator) { g.ids = ids }
}

// WithClock sets the function stamping batch creation time
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

// NewGenerator creates a generator drawing colors from palette
// An empty palette falls back to plain white
func NewGenerator(palette []Color, opts ...GeneratorOption) *Generator {
	if len(palette) == 0 {
		palette = []Color{White}
	}
	g := &Generator{
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		ids:     UUIDSource{},
		palette: append([]Color(nil), palette...),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a batch of count particles within the given ranges
// count <= 0 yields an empty batch
func (g *Generator) Generate(count int, r Ranges) *Batch {
	if count < 0 {
		count = 0
	}

	particles := make([]Particle, count)
	for i := range particles {
		size := r.Size.Sample(g.rng)
		if size < MinSize {
			size = MinSize
		}

		opacity := r.Opacity.Sample(g.rng)
		if opacity < MinOpacity {
			opacity = MinOpacity
		}
		if opacity > 1 {
			opacity = 1
		}

		particles[i] = Particle{
			ID: g.ids.NextID(),
			Position: Position{
				X: g.rng.Float64() * 100,
				Y: g.rng.Float64() * 100,
			},
			Depth:       clamp01(r.Depth.Sample(g.rng)),
			Size:        size,
			BaseOpacity: opacity,
			Speed:       r.Speed.Sample(g.rng),
			Color:       g.palette[g.rng.IntN(len(g.palette))],
			Phase:       r.Phase.Sample(g.rng),
			Seed:        g.rng.Int64(),
		}
	}

	g.generation++
	return NewBatch(particles, g.generation, g.now())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
