package engine

import (
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/lixenwraith/particlefield/particle"
)

// Record is the renderer-facing output for one particle in one frame
type Record struct {
	ID      string
	X, Y    float64 // Absolute pixels
	Size    float64 // Diameter in pixels after scaling
	Scale   float64
	Opacity float64
	Color   particle.Color
}

// Frame is the full render output of one tick, records in batch insertion order
type Frame struct {
	Records    []Record
	Generation uint64
	Elapsed    time.Duration
	Viewport   Viewport
}

// Driver turns a batch and frame input into render records
// It keeps per-particle spring state when easing is enabled, and is not safe for concurrent use
type Driver struct {
	motion Motion

	spring     harmonica.Spring
	springOn   bool
	scalePos   []float64
	scaleVel   []float64
	generation uint64
}

// NewDriver creates a driver for the given motion; fps sets the spring step
func NewDriver(m Motion, fps int) *Driver {
	d := &Driver{motion: m}
	if m.Spring.Enabled() {
		if fps <= 0 {
			fps = DefaultFrameRate
		}
		d.spring = harmonica.NewSpring(harmonica.FPS(fps), m.Spring.Frequency, m.Spring.Damping)
		d.springOn = true
	}
	return d
}

// Motion returns the driver's motion tuning
func (d *Driver) Motion() Motion {
	return d.motion
}

// Compute evaluates every particle of batch for one tick
// A nil or empty batch yields no records
func (d *Driver) Compute(batch *particle.Batch, in FrameInput) []Record {
	n := batch.Len()
	if d.springOn {
		d.syncSprings(batch)
	}

	records := make([]Record, 0, n)
	batch.Each(func(i int, p particle.Particle) {
		rs := ComputeRenderState(p, in, d.motion)
		if d.springOn {
			rs.Scale = d.ease(i, rs.Scale)
		}
		records = append(records, Record{
			ID:      p.ID,
			X:       rs.X,
			Y:       rs.Y,
			Size:    p.Size * rs.Scale,
			Scale:   rs.Scale,
			Opacity: rs.Opacity,
			Color:   p.Color,
		})
	})
	return records
}

// syncSprings resets spring state when a new batch arrives; particles never inherit old motion
func (d *Driver) syncSprings(batch *particle.Batch) {
	gen := batch.Generation()
	n := batch.Len()
	if gen == d.generation && len(d.scalePos) == n {
		return
	}
	d.generation = gen
	d.scalePos = make([]float64, n)
	d.scaleVel = make([]float64, n)
	for i := range d.scalePos {
		d.scalePos[i] = 1
	}
}

func (d *Driver) ease(i int, target float64) float64 {
	pos, vel := d.spring.Update(d.scalePos[i], d.scaleVel[i], target)
	d.scalePos[i] = pos
	d.scaleVel[i] = vel
	return pos
}
