package engine

import (
	"log"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/particlefield/input"
	"github.com/lixenwraith/particlefield/particle"
)

// DefaultFrameRate is the tick rate hosts use when none is configured
const DefaultFrameRate = 60

// Engine owns one particle field: the current batch, its regeneration timer and pointer listener
// Two states only: Mounted and Unmounted
type Engine struct {
	cfg     Config
	clock   *PausableClock
	gen     *particle.Generator
	driver  *Driver
	pointer *input.Pointer
	source  input.Source

	batch    atomic.Pointer[particle.Batch]
	viewport viewportState

	// mu serializes lifecycle transitions, ticks and regeneration
	mu          sync.Mutex
	mounted     atomic.Bool
	mountedAt   time.Time
	timer       *RegenTimer
	unsubscribe func()
	hooks       []func(*particle.Batch)

	ticks       atomic.Uint64
	generations atomic.Uint64
}

// Option configures an Engine
type Option func(*engineOptions)

type engineOptions struct {
	clock     TimeProvider
	pointer   *input.Pointer
	source    input.Source
	genOpts   []particle.GeneratorOption
	frameRate int
}

// WithTimeProvider sets the base clock, a MockTimeProvider gives virtual time
func WithTimeProvider(tp TimeProvider) Option {
	return func(o *engineOptions) { o.clock = tp }
}

// WithPointer injects the pointer state owned by the mounting context
func WithPointer(p *input.Pointer) Option {
	return func(o *engineOptions) { o.pointer = p }
}

// WithPointerSource sets where the pointer listener is attached on Mount
func WithPointerSource(src input.Source) Option {
	return func(o *engineOptions) { o.source = src }
}

// WithRand seeds particle generation, for reproducible fields
func WithRand(r *rand.Rand) Option {
	return func(o *engineOptions) { o.genOpts = append(o.genOpts, particle.WithRand(r)) }
}

// WithIDSource replaces the default UUID particle ids
func WithIDSource(ids particle.IDSource) Option {
	return func(o *engineOptions) { o.genOpts = append(o.genOpts, particle.WithIDSource(ids)) }
}

// WithFrameRate sets the expected tick rate, used to step spring easing
func WithFrameRate(fps int) Option {
	return func(o *engineOptions) { o.frameRate = fps }
}

// New creates an unmounted engine for cfg
func New(cfg Config, opts ...Option) *Engine {
	o := engineOptions{frameRate: DefaultFrameRate}
	for _, opt := range opts {
		opt(&o)
	}
	if o.clock == nil {
		o.clock = NewMonotonicTimeProvider()
	}
	if o.pointer == nil {
		o.pointer = input.NewPointer()
	}

	cfg = cfg.Normalize()
	clock := NewPausableClock(o.clock)
	genOpts := append([]particle.GeneratorOption{particle.WithClock(clock.Now)}, o.genOpts...)

	return &Engine{
		cfg:     cfg,
		clock:   clock,
		gen:     particle.NewGenerator(cfg.Palette, genOpts...),
		driver:  NewDriver(cfg.Motion, o.frameRate),
		pointer: o.pointer,
		source:  o.source,
	}
}

// OnRegenerate registers fn to run with every new batch, including the first one
// Hooks run with the engine locked and must not call back into the engine
func (e *Engine) OnRegenerate(fn func(*particle.Batch)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hooks = append(e.hooks, fn)
}

// Mount generates the first batch, arms regeneration and attaches the pointer listener
// Mounting a mounted engine is a no-op
func (e *Engine) Mount(v Viewport) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.mounted.Load() {
		return
	}

	e.viewport.store(v)
	e.mountedAt = e.clock.Now()
	e.regenerateLocked()
	e.timer = StartRegeneration(e.clock, e.cfg.Interval, e.regenerateLocked)

	if e.source != nil {
		e.unsubscribe = e.source.Subscribe(e.pointer.Set)
	}

	e.mounted.Store(true)
	log.Printf("particle field %q mounted: %d particles, interval %v, viewport %.0fx%.0f",
		e.cfg.Name, e.cfg.Count, e.cfg.Interval, v.Width, v.Height)
}

// Unmount stops regeneration and detaches the pointer listener
// Idempotent; ticks after Unmount are no-ops
func (e *Engine) Unmount() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.mounted.Swap(false) {
		return
	}

	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	log.Printf("particle field %q unmounted after %d ticks", e.cfg.Name, e.ticks.Load())
}

// Tick computes one frame from the latest batch and pointer
// Returns an empty frame when unmounted
func (e *Engine) Tick() Frame {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.mounted.Load() {
		return Frame{}
	}

	e.timer.Poll()

	batch := e.batch.Load()
	px, py := e.pointer.Get()
	in := FrameInput{
		PointerX: px,
		PointerY: py,
		Viewport: e.viewport.load(),
		Elapsed:  e.clock.Now().Sub(e.mountedAt),
	}

	e.ticks.Add(1)
	return Frame{
		Records:    e.driver.Compute(batch, in),
		Generation: batch.Generation(),
		Elapsed:    in.Elapsed,
		Viewport:   in.Viewport,
	}
}

// Regenerate replaces the batch immediately, outside the timer schedule
func (e *Engine) Regenerate() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mounted.Load() {
		e.regenerateLocked()
	}
}

// regenerateLocked swaps in a fresh batch; caller holds mu
func (e *Engine) regenerateLocked() {
	b := e.gen.Generate(e.cfg.Count, e.cfg.Ranges)
	e.batch.Store(b)
	e.generations.Add(1)
	for _, fn := range e.hooks {
		fn(b)
	}
}

// Resize updates the container size used to place particles
func (e *Engine) Resize(width, height float64) {
	e.viewport.store(Viewport{Width: width, Height: height})
}

// Pause freezes oscillation and regeneration
func (e *Engine) Pause() {
	e.clock.Pause()
}

// Resume continues a paused field
func (e *Engine) Resume() {
	e.clock.Resume()
}

// TogglePause flips the pause state and returns the new state
func (e *Engine) TogglePause() bool {
	if e.clock.IsPaused() {
		e.clock.Resume()
		return false
	}
	e.clock.Pause()
	return true
}

// Mounted reports the lifecycle state
func (e *Engine) Mounted() bool {
	return e.mounted.Load()
}

// Batch returns the current batch, nil before the first Mount
func (e *Engine) Batch() *particle.Batch {
	return e.batch.Load()
}

// Pointer returns the pointer state read by the driver
func (e *Engine) Pointer() *input.Pointer {
	return e.pointer
}

// Config returns the normalized configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Stats is a snapshot of engine counters
type Stats struct {
	Name        string
	Mounted     bool
	Paused      bool
	Ticks       uint64
	Generations uint64
	Particles   int
}

// Stats returns current counters
func (e *Engine) Stats() Stats {
	return Stats{
		Name:        e.cfg.Name,
		Mounted:     e.mounted.Load(),
		Paused:      e.clock.IsPaused(),
		Ticks:       e.ticks.Load(),
		Generations: e.generations.Load(),
		Particles:   e.batch.Load().Len(),
	}
}
