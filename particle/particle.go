package particle

// Position is a normalized location inside the container, both axes in [0,100] percent
type Position struct {
	X, Y float64
}

// Particle is one animated point of the field
// Values are fixed at generation; animation state is derived per tick and never written back
type Particle struct {
	ID       string
	Position Position
	Depth    float64 // [0,1], closer = larger

	Size        float64 // Diameter in pixels
	BaseOpacity float64 // (0,1], resting opacity before oscillation
	Speed       float64 // Oscillation and pointer response multiplier
	Color       Color

	Phase float64 // Animation delay in seconds, staggers the field
	Seed  int64   // Noise key for per-cycle drift
}

// PixelPosition converts the normalized position into absolute pixels for the given container
func (p Particle) PixelPosition(width, height float64) (float64, float64) {
	return p.Position.X / 100 * width, p.Position.Y / 100 * height
}
