package engine

import (
	"time"

	"github.com/lixenwraith/particlefield/particle"
)

// Reactivity selects how particles respond to the pointer
type Reactivity uint8

const (
	// ReactNone ignores the pointer
	ReactNone Reactivity = iota
	// ReactProximity scales particles near the pointer and offsets them by their distance vector
	ReactProximity
	// ReactParallax translates every particle relative to the pointer, independent of distance
	ReactParallax
)

// String returns the config-file spelling of the mode
func (r Reactivity) String() string {
	switch r {
	case ReactProximity:
		return "proximity"
	case ReactParallax:
		return "parallax"
	default:
		return "none"
	}
}

// ParseReactivity maps a config-file spelling back to its mode
func ParseReactivity(s string) (Reactivity, bool) {
	switch s {
	case "", "none":
		return ReactNone, true
	case "proximity":
		return ReactProximity, true
	case "parallax":
		return ReactParallax, true
	}
	return ReactNone, false
}

// Spring eases the displayed scale toward its target; zero frequency disables it
type Spring struct {
	Frequency float64 // Angular frequency, higher is snappier
	Damping   float64 // 1 is critically damped
}

// Enabled reports whether spring easing is configured
func (s Spring) Enabled() bool {
	return s.Frequency > 0
}

// Motion tunes the per-tick animation
type Motion struct {
	Period      time.Duration // One full oscillation, rest -> peak -> rest
	OpacityPeak float64       // Opacity multiplier at the peak of the cycle
	JitterPx    float64       // Max per-cycle drift in pixels

	Reactivity         Reactivity
	ProximityThreshold float64 // Pixels
	ProximityScale     float64 // Scale inside the threshold
	PointerPull        float64 // Proximity offset factor, multiplied by particle speed
	ParallaxFactor     float64 // Parallax offset factor, multiplied by particle speed

	DepthThreshold float64 // Particles deeper than this get DepthScale at the peak
	DepthScale     float64 // 1 disables depth parallax

	Spring Spring
}

// Config describes one particle field
type Config struct {
	Name     string
	Count    int
	Interval time.Duration // Regeneration interval, zero keeps the first batch forever

	Ranges  particle.Ranges
	Palette []particle.Color
	Motion  Motion

	Background [2]particle.Color // Top and bottom gradient stops for renderers
}

// Default motion tuning applied by Normalize when unset
const (
	DefaultPeriod      = 6 * time.Second
	DefaultOpacityPeak = 1.5
	DefaultDepthScale  = 1.0
)

// Normalize replaces invalid values with safe defaults
// Configuration faults never surface as errors: worst case is a degraded field
func (c Config) Normalize() Config {
	if c.Count < 0 {
		c.Count = 0
	}
	if c.Interval < 0 {
		c.Interval = 0
	}
	if len(c.Palette) == 0 {
		c.Palette = []particle.Color{particle.White}
	}

	m := &c.Motion
	if m.Period <= 0 {
		m.Period = DefaultPeriod
	}
	if m.OpacityPeak <= 0 {
		m.OpacityPeak = DefaultOpacityPeak
	}
	if m.JitterPx < 0 {
		m.JitterPx = 0
	}
	if m.ProximityThreshold < 0 {
		m.ProximityThreshold = 0
	}
	if m.ProximityScale <= 0 {
		m.ProximityScale = 1
	}
	if m.DepthScale <= 0 {
		m.DepthScale = DefaultDepthScale
	}
	return c
}

// Preset names
const (
	PresetNebula    = "nebula"
	PresetReactive  = "reactive"
	PresetStarfield = "starfield"
)

// Presets returns the three stock field configurations keyed by name
func Presets() map[string]Config {
	return map[string]Config{
		PresetNebula:    NebulaConfig(),
		PresetReactive:  ReactiveConfig(),
		PresetStarfield: StarfieldConfig(),
	}
}

// PresetNames lists preset names in display order
func PresetNames() []string {
	return []string{PresetNebula, PresetReactive, PresetStarfield}
}

// NebulaConfig is the dense multi-color field with a depth layer
func NebulaConfig() Config {
	return Config{
		Name:     PresetNebula,
		Count:    250,
		Interval: 8000 * time.Millisecond,
		Ranges: particle.Ranges{
			Size:    particle.Interval{Min: 1, Max: 7},
			Speed:   particle.Interval{Min: 0.1, Max: 0.7},
			Opacity: particle.Interval{Min: 0.2, Max: 1.0},
			Depth:   particle.Interval{Min: 0, Max: 1},
			Phase:   particle.Interval{Min: 0, Max: 2},
		},
		Palette: particle.NebulaPalette,
		Motion: Motion{
			Period:         7 * time.Second,
			OpacityPeak:    1.5,
			JitterPx:       5,
			Reactivity:     ReactNone,
			DepthThreshold: 0.7,
			DepthScale:     1.5,
		},
		Background: [2]particle.Color{
			{R: 0, G: 0, B: 0, A: 1},
			{R: 12, G: 12, B: 16, A: 1},
		},
	}
}

// ReactiveConfig is the pointer-reactive field
func ReactiveConfig() Config {
	return Config{
		Name:     PresetReactive,
		Count:    200,
		Interval: 7000 * time.Millisecond,
		Ranges: particle.Ranges{
			Size:    particle.Interval{Min: 1, Max: 6},
			Speed:   particle.Interval{Min: 0.1, Max: 0.6},
			Opacity: particle.Interval{Min: 0.3, Max: 1.0},
			Phase:   particle.Interval{Min: 0, Max: 2},
		},
		Palette: particle.ReactivePalette,
		Motion: Motion{
			Period:             6 * time.Second,
			OpacityPeak:        1.5,
			JitterPx:           0,
			Reactivity:         ReactProximity,
			ProximityThreshold: 250,
			ProximityScale:     1.8,
			PointerPull:        0.05,
			DepthScale:         1,
		},
		Background: [2]particle.Color{
			{R: 0, G: 0, B: 0, A: 1},
			{R: 0, G: 0, B: 0, A: 1},
		},
	}
}

// StarfieldConfig is the sparse fixed starfield translating with the pointer
func StarfieldConfig() Config {
	return Config{
		Name:     PresetStarfield,
		Count:    50,
		Interval: 0,
		Ranges: particle.Ranges{
			Size:    particle.Interval{Min: particle.MinSize, Max: 3},
			Speed:   particle.Interval{Min: 0, Max: 0.5},
			Opacity: particle.Interval{Min: 0.5, Max: 0.5},
		},
		Palette: particle.StarfieldPalette,
		Motion: Motion{
			Period:         2 * time.Second,
			OpacityPeak:    0.5,
			Reactivity:     ReactParallax,
			ParallaxFactor: 0.02,
			DepthScale:     1,
		},
		Background: [2]particle.Color{
			{R: 17, G: 24, B: 39, A: 1},
			{R: 30, G: 58, B: 138, A: 1},
		},
	}
}
