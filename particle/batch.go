package particle

import "time"

// Batch is an ordered set of particles generated together
// A batch is never mutated after construction; regeneration substitutes a new one
type Batch struct {
	particles  []Particle
	generation uint64
	createdAt  time.Time
}

// NewBatch wraps the given particles, taking ownership of the slice
func NewBatch(particles []Particle, generation uint64, createdAt time.Time) *Batch {
	return &Batch{
		particles:  particles,
		generation: generation,
		createdAt:  createdAt,
	}
}

// Len returns the number of particles, zero for a nil batch
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.particles)
}

// At returns the i-th particle in insertion order
func (b *Batch) At(i int) Particle {
	return b.particles[i]
}

// Each calls fn for every particle in insertion order
func (b *Batch) Each(fn func(i int, p Particle)) {
	if b == nil {
		return
	}
	for i := range b.particles {
		fn(i, b.particles[i])
	}
}

// IDs returns particle ids in insertion order
func (b *Batch) IDs() []string {
	ids := make([]string, 0, b.Len())
	b.Each(func(_ int, p Particle) {
		ids = append(ids, p.ID)
	})
	return ids
}

// Generation returns the sequence number of the batch, starting at 1 for the first generate call
func (b *Batch) Generation() uint64 {
	if b == nil {
		return 0
	}
	return b.generation
}

// CreatedAt returns the clock reading at generation time
func (b *Batch) CreatedAt() time.Time {
	if b == nil {
		return time.Time{}
	}
	return b.createdAt
}
