// Package audio plays a short chime whenever a particle field replaces its batch.
package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/particlefield/particle"
)

const (
	SampleRate     = beep.SampleRate(48000)
	ChimeDuration  = 900 * time.Millisecond
	chimeAttack    = 8 * time.Millisecond
	defaultVolume  = 0.25
	overtoneVolume = 0.35
)

// pentatonic is a C major pentatonic scale starting at C5, in Hz
var pentatonic = []float64{523.25, 587.33, 659.25, 783.99, 880.00}

// NoteFor picks the chime pitch for a batch generation, walking the scale
func NoteFor(generation uint64) float64 {
	return pentatonic[generation%uint64(len(pentatonic))]
}

// Streamer builds one chime at freq: a sine fundamental with a softer triangle octave
func Streamer(freq float64, volume float64, rate beep.SampleRate) beep.Streamer {
	fundamental := NewEnvelope(NewOscillator(freq, ChimeDuration, WaveSine, rate), ChimeDuration, chimeAttack, rate)
	overtone := NewEnvelope(NewOscillator(freq*2, ChimeDuration/2, WaveTriangle, rate), ChimeDuration/2, chimeAttack, rate)
	return newVolume(beep.Mix(fundamental, newVolume(overtone, overtoneVolume)), volume)
}

// Chime owns the speaker and a mixer regenerations are queued onto
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	muted       bool
}

// NewChime creates a chime at the given linear volume, 0 uses the default
func NewChime(volume float64) *Chime {
	if volume <= 0 {
		volume = defaultVolume
	}
	return &Chime{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the speaker; audio failures leave the chime silent rather than fatal
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// OnRegenerate matches the engine hook signature
func (c *Chime) OnRegenerate(b *particle.Batch) {
	c.Play(NoteFor(b.Generation()))
}

// Play queues a chime at freq; no-op before Initialize or while muted
func (c *Chime) Play(freq float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || c.muted {
		return
	}
	s := Streamer(freq, c.volume, SampleRate)
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// ToggleMute flips mute and returns the new state
func (c *Chime) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.muted = !c.muted
	return c.muted
}

// Close silences pending chimes and releases the speaker
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.initialized = false
	log.Printf("audio: speaker closed")
}
