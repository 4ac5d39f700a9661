package engine

import (
	"bytes"
	"log"
	"math/rand/v2"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/particlefield/input"
	"github.com/lixenwraith/particlefield/particle"
)

func TestMain(m *testing.M) {
	// Keep lifecycle logging out of test output
	log.SetOutput(&bytes.Buffer{})
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T, cfg Config, opts ...Option) (*Engine, *MockTimeProvider, *input.Broadcaster) {
	t.Helper()
	clock := NewMockTimeProvider(epoch)
	src := input.NewBroadcaster()
	base := []Option{
		WithTimeProvider(clock),
		WithPointerSource(src),
		WithRand(rand.New(rand.NewPCG(11, 13))),
	}
	e := New(cfg, append(base, opts...)...)
	return e, clock, src
}

func smallConfig(count int, interval time.Duration) Config {
	cfg := ReactiveConfig()
	cfg.Name = "test"
	cfg.Count = count
	cfg.Interval = interval
	return cfg
}

func frameIDs(f Frame) []string {
	ids := make([]string, len(f.Records))
	for i, r := range f.Records {
		ids[i] = r.ID
	}
	return ids
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEngine_RegenerationScenario(t *testing.T) {
	e, clock, _ := newTestEngine(t, smallConfig(3, 1000*time.Millisecond))
	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	original := frameIDs(e.Tick())
	if len(original) != 3 {
		t.Fatalf("expected 3 records, got %d", len(original))
	}

	clock.Advance(999 * time.Millisecond)
	if ids := frameIDs(e.Tick()); !sameIDs(ids, original) {
		t.Fatalf("batch replaced before interval: %v -> %v", original, ids)
	}

	clock.Advance(1 * time.Millisecond)
	replaced := frameIDs(e.Tick())
	if len(replaced) != 3 {
		t.Fatalf("expected 3 records after regeneration, got %d", len(replaced))
	}

	old := map[string]bool{}
	for _, id := range original {
		old[id] = true
	}
	for _, id := range replaced {
		if old[id] {
			t.Errorf("id %s survived regeneration", id)
		}
	}

	if e.Batch().Generation() != 2 {
		t.Errorf("expected generation 2, got %d", e.Batch().Generation())
	}
}

func TestEngine_RegenerationSwapsReference(t *testing.T) {
	e, clock, _ := newTestEngine(t, smallConfig(10, time.Second))
	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	before := e.Batch()
	beforeIDs := before.IDs()

	clock.Advance(time.Second)
	e.Tick()

	after := e.Batch()
	if after == before {
		t.Fatal("expected a new batch reference")
	}
	// The old batch is untouched
	if !sameIDs(before.IDs(), beforeIDs) {
		t.Error("previous batch was mutated in place")
	}
}

func TestEngine_ZeroCount(t *testing.T) {
	e, clock, _ := newTestEngine(t, smallConfig(0, time.Second))
	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	for i := 0; i < 3; i++ {
		f := e.Tick()
		if len(f.Records) != 0 {
			t.Fatalf("expected empty frame, got %d records", len(f.Records))
		}
		clock.Advance(time.Second)
	}
}

func TestEngine_NegativeCountNormalized(t *testing.T) {
	e, _, _ := newTestEngine(t, smallConfig(-4, time.Second))
	if e.Config().Count != 0 {
		t.Errorf("expected negative count normalized to 0, got %d", e.Config().Count)
	}
}

func TestEngine_UnmountIdempotent(t *testing.T) {
	e, clock, src := newTestEngine(t, smallConfig(5, time.Second))
	e.Mount(Viewport{Width: 800, Height: 600})

	if src.Listeners() != 1 {
		t.Fatalf("expected pointer listener attached, got %d", src.Listeners())
	}

	e.Unmount()
	e.Unmount()

	if e.Mounted() {
		t.Error("expected unmounted state")
	}
	if src.Listeners() != 0 {
		t.Errorf("expected pointer listener removed, got %d", src.Listeners())
	}

	gen := e.Batch().Generation()
	clock.Advance(10 * time.Second)
	if f := e.Tick(); len(f.Records) != 0 {
		t.Errorf("tick after unmount produced %d records", len(f.Records))
	}
	if e.Batch().Generation() != gen {
		t.Error("regeneration fired after unmount")
	}

	ticks := e.Stats().Ticks
	e.Tick()
	if e.Stats().Ticks != ticks {
		t.Error("tick after unmount was counted")
	}
}

func TestEngine_ConcurrentUnmount(t *testing.T) {
	e, _, src := newTestEngine(t, smallConfig(5, time.Second))
	e.Mount(Viewport{Width: 800, Height: 600})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Unmount()
		}()
	}
	wg.Wait()

	if e.Mounted() || src.Listeners() != 0 {
		t.Error("expected clean unmount under concurrency")
	}
}

func TestEngine_MountTwiceIsNoop(t *testing.T) {
	e, _, src := newTestEngine(t, smallConfig(5, time.Second))
	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	first := e.Batch()
	e.Mount(Viewport{Width: 100, Height: 100})

	if e.Batch() != first {
		t.Error("second mount regenerated the batch")
	}
	if src.Listeners() != 1 {
		t.Errorf("second mount attached another listener: %d", src.Listeners())
	}
}

func TestEngine_Remount(t *testing.T) {
	e, _, src := newTestEngine(t, smallConfig(4, time.Second))
	e.Mount(Viewport{Width: 800, Height: 600})
	first := e.Batch()
	e.Unmount()

	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	if e.Batch() == first {
		t.Error("remount should generate a fresh batch")
	}
	if src.Listeners() != 1 {
		t.Errorf("expected one listener after remount, got %d", src.Listeners())
	}
}

func TestEngine_PointerFromSource(t *testing.T) {
	cfg := smallConfig(1, time.Minute)
	e, _, src := newTestEngine(t, cfg)
	e.Mount(Viewport{Width: 2000, Height: 2000})
	defer e.Unmount()

	p := e.Batch().At(0)
	px, py := p.PixelPosition(2000, 2000)

	src.Emit(px, py)
	f := e.Tick()
	if !nearlyEqual(f.Records[0].Scale, 1.8) {
		t.Errorf("expected proximity scale with pointer on particle, got %v", f.Records[0].Scale)
	}
	if !nearlyEqual(f.Records[0].Size, p.Size*1.8) {
		t.Errorf("expected scaled size %v, got %v", p.Size*1.8, f.Records[0].Size)
	}

	// Latest value wins; nothing is queued
	src.Emit(px+5000, py+5000)
	src.Emit(px+1000, py)
	f = e.Tick()
	if !nearlyEqual(f.Records[0].Scale, 1) {
		t.Errorf("expected baseline scale with pointer 1000px away, got %v", f.Records[0].Scale)
	}
}

func TestEngine_InjectedPointer(t *testing.T) {
	shared := input.NewPointer()
	e, _, _ := newTestEngine(t, smallConfig(1, time.Minute), WithPointer(shared))

	if e.Pointer() != shared {
		t.Fatal("expected injected pointer to be used")
	}

	e.Mount(Viewport{Width: 2000, Height: 2000})
	defer e.Unmount()

	p := e.Batch().At(0)
	px, py := p.PixelPosition(2000, 2000)
	shared.Set(px, py)

	if f := e.Tick(); !nearlyEqual(f.Records[0].Scale, 1.8) {
		t.Errorf("driver did not read injected pointer, scale %v", f.Records[0].Scale)
	}
}

func TestEngine_RecordsInBatchOrder(t *testing.T) {
	e, _, _ := newTestEngine(t, smallConfig(50, time.Minute))
	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	want := e.Batch().IDs()
	for i := 0; i < 3; i++ {
		if got := frameIDs(e.Tick()); !sameIDs(got, want) {
			t.Fatal("render order differs from batch insertion order")
		}
	}
}

func TestEngine_ResizeMovesParticles(t *testing.T) {
	e, _, _ := newTestEngine(t, smallConfig(1, time.Minute))
	e.Mount(Viewport{Width: 1000, Height: 1000})
	defer e.Unmount()

	// Park the pointer far away so only the viewport matters
	e.Pointer().Set(-1e6, -1e6)
	p := e.Batch().At(0)

	e.Resize(2000, 2000)
	f := e.Tick()
	if f.Viewport.Width != 2000 {
		t.Fatalf("expected resized viewport in frame, got %+v", f.Viewport)
	}

	px, _ := p.PixelPosition(2000, 2000)
	pull := (px + 1e6) * p.Speed * e.Config().Motion.PointerPull
	if !nearlyEqual(f.Records[0].X, px-pull) {
		t.Errorf("expected x %v after resize, got %v", px-pull, f.Records[0].X)
	}
}

func TestEngine_PauseFreezesRegeneration(t *testing.T) {
	e, clock, _ := newTestEngine(t, smallConfig(3, time.Second))
	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	first := e.Batch()
	e.Pause()
	clock.Advance(5 * time.Second)
	e.Tick()
	if e.Batch() != first {
		t.Fatal("regenerated while paused")
	}
	if !e.Stats().Paused {
		t.Error("expected paused stats")
	}

	if e.TogglePause() {
		t.Fatal("expected toggle to resume")
	}
	clock.Advance(time.Second)
	e.Tick()
	if e.Batch() == first {
		t.Error("expected regeneration after resume")
	}
}

func TestEngine_OnRegenerateHook(t *testing.T) {
	e, clock, _ := newTestEngine(t, smallConfig(2, time.Second))

	var gens []uint64
	e.OnRegenerate(func(b *particle.Batch) {
		gens = append(gens, b.Generation())
	})

	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	clock.Advance(time.Second)
	e.Tick()
	e.Regenerate()

	if len(gens) != 3 || gens[0] != 1 || gens[2] != 3 {
		t.Errorf("expected hook for generations 1..3, got %v", gens)
	}
	if e.Stats().Generations != 3 {
		t.Errorf("expected 3 generations in stats, got %d", e.Stats().Generations)
	}
}

func TestEngine_FixedStarfieldNeverRegenerates(t *testing.T) {
	e, clock, _ := newTestEngine(t, StarfieldConfig())
	e.Mount(Viewport{Width: 800, Height: 600})
	defer e.Unmount()

	first := e.Batch()
	if first.Len() != 50 {
		t.Fatalf("expected 50 stars, got %d", first.Len())
	}
	clock.Advance(time.Hour)
	e.Tick()
	if e.Batch() != first {
		t.Error("starfield regenerated")
	}
}

func TestEngine_UnmountedTickBeforeMount(t *testing.T) {
	e, _, _ := newTestEngine(t, smallConfig(3, time.Second))
	if f := e.Tick(); len(f.Records) != 0 || f.Generation != 0 {
		t.Errorf("expected empty frame before mount, got %+v", f)
	}
	if e.Batch() != nil {
		t.Error("expected no batch before mount")
	}
	e.Unmount()
}

func TestEngine_SpringEasesScale(t *testing.T) {
	cfg := smallConfig(1, time.Minute)
	cfg.Motion.Spring = Spring{Frequency: 6, Damping: 1}
	e, _, _ := newTestEngine(t, cfg)
	e.Mount(Viewport{Width: 2000, Height: 2000})
	defer e.Unmount()

	p := e.Batch().At(0)
	px, py := p.PixelPosition(2000, 2000)
	e.Pointer().Set(px, py)

	first := e.Tick().Records[0].Scale
	if first <= 1 || first >= 1.8 {
		t.Fatalf("expected eased scale between 1 and 1.8 on first tick, got %v", first)
	}

	var last float64
	for i := 0; i < 240; i++ {
		last = e.Tick().Records[0].Scale
	}
	if last < 1.75 || last > 1.85 {
		t.Errorf("expected scale to settle near 1.8, got %v", last)
	}
}
