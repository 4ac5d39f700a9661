package session

import (
	"errors"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"github.com/lixenwraith/particlefield/engine"
	"github.com/lixenwraith/particlefield/particle"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var testViewport = engine.Viewport{Width: 800, Height: 600}

func newTestSession() (*Session, *engine.MockTimeProvider) {
	clock := engine.NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(engine.Presets(), engine.PresetNames(), engine.WithTimeProvider(clock)), clock
}

func TestSession_SwitchMountsOneFieldAtATime(t *testing.T) {
	s, _ := newTestSession()
	defer s.Close()

	first, err := s.Switch(engine.PresetNebula, testViewport)
	if err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	if !first.Mounted() || first.Batch().Len() != 250 {
		t.Fatalf("expected mounted nebula with 250 particles")
	}
	if s.Source().Listeners() != 1 {
		t.Fatalf("expected one pointer listener, got %d", s.Source().Listeners())
	}

	second, err := s.Switch(engine.PresetReactive, testViewport)
	if err != nil {
		t.Fatalf("Switch failed: %v", err)
	}
	if first.Mounted() {
		t.Error("previous field still mounted after switch")
	}
	if !second.Mounted() || s.Current() != second {
		t.Error("expected reactive field to be current and mounted")
	}
	if s.Source().Listeners() != 1 {
		t.Errorf("expected listener count to stay at 1, got %d", s.Source().Listeners())
	}
}

func TestSession_UnknownField(t *testing.T) {
	s, _ := newTestSession()
	if _, err := s.Switch("aurora", testViewport); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if s.Current() != nil {
		t.Error("failed switch should not mount anything")
	}
}

func TestSession_NextCycles(t *testing.T) {
	s, _ := newTestSession()
	defer s.Close()

	var names []string
	for i := 0; i < 4; i++ {
		e, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		names = append(names, e.Config().Name)
	}

	want := []string{engine.PresetNebula, engine.PresetReactive, engine.PresetStarfield, engine.PresetNebula}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("cycle %d: got %s, want %s", i, names[i], want[i])
		}
	}
}

func TestSession_PointerSharedAcrossSwitches(t *testing.T) {
	s, _ := newTestSession()
	defer s.Close()

	a, _ := s.Switch(engine.PresetReactive, testViewport)
	s.Source().Emit(12, 34)

	b, _ := s.Switch(engine.PresetStarfield, testViewport)
	if a.Pointer() != b.Pointer() {
		t.Fatal("expected the session-owned pointer to be injected into every engine")
	}
	if x, y := b.Pointer().Get(); x != 12 || y != 34 {
		t.Errorf("expected pointer to survive switch, got (%v,%v)", x, y)
	}
}

func TestSession_HooksAndResize(t *testing.T) {
	s, clock := newTestSession()
	defer s.Close()

	var gens int
	s.OnRegenerate(func(*particle.Batch) { gens++ })

	e, _ := s.Switch(engine.PresetReactive, testViewport)
	clock.Advance(7 * time.Second)
	e.Tick()
	if gens != 2 {
		t.Errorf("expected hook for mount and one regeneration, got %d", gens)
	}

	s.Resize(engine.Viewport{Width: 100, Height: 50})
	if f := e.Tick(); f.Viewport.Width != 100 || f.Viewport.Height != 50 {
		t.Errorf("expected resized viewport, got %+v", f.Viewport)
	}
}

func TestSession_CloseIdempotent(t *testing.T) {
	s, _ := newTestSession()
	e, _ := s.Switch(engine.PresetNebula, testViewport)

	s.Close()
	s.Close()

	if e.Mounted() || s.Current() != nil || s.Source().Listeners() != 0 {
		t.Error("expected everything released after Close")
	}
}
