package engine

import (
	"testing"
	"time"
)

func TestPausableClock_FreezesWhilePaused(t *testing.T) {
	base := NewMockTimeProvider(epoch)
	pc := NewPausableClock(base)

	base.Advance(2 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(2 * time.Second)) {
		t.Fatalf("expected running clock to follow base, got %v", got)
	}

	pc.Pause()
	pc.Pause()
	base.Advance(3 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(2 * time.Second)) {
		t.Errorf("expected frozen time while paused, got %v", got)
	}
	if got := pc.GetTotalPauseDuration(); got != 3*time.Second {
		t.Errorf("expected 3s in-progress pause, got %v", got)
	}

	pc.Resume()
	pc.Resume()
	base.Advance(1 * time.Second)
	if got := pc.Now(); !got.Equal(epoch.Add(3 * time.Second)) {
		t.Errorf("expected 3s of field time after resume, got %v", got)
	}
	if pc.IsPaused() {
		t.Error("expected running state")
	}
	if !pc.RealTime().Equal(epoch.Add(6 * time.Second)) {
		t.Errorf("expected real time unaffected by pause, got %v", pc.RealTime())
	}
}
