package engine

import (
	"testing"
	"time"
)

func TestPresets_MatchObservedVariants(t *testing.T) {
	tests := []struct {
		name       string
		count      int
		interval   time.Duration
		reactivity Reactivity
	}{
		{PresetNebula, 250, 8000 * time.Millisecond, ReactNone},
		{PresetReactive, 200, 7000 * time.Millisecond, ReactProximity},
		{PresetStarfield, 50, 0, ReactParallax},
	}

	presets := Presets()
	if len(presets) != len(PresetNames()) {
		t.Fatalf("preset map and name list disagree")
	}

	for _, tt := range tests {
		cfg, ok := presets[tt.name]
		if !ok {
			t.Fatalf("missing preset %s", tt.name)
		}
		if cfg.Count != tt.count || cfg.Interval != tt.interval || cfg.Motion.Reactivity != tt.reactivity {
			t.Errorf("%s: got count=%d interval=%v reactivity=%v", tt.name, cfg.Count, cfg.Interval, cfg.Motion.Reactivity)
		}
	}

	if r := ReactiveConfig().Motion; r.ProximityThreshold != 250 || r.ProximityScale != 1.8 {
		t.Errorf("reactive proximity tuning changed: %+v", r)
	}
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{
		Count:    -1,
		Interval: -time.Second,
		Motion: Motion{
			JitterPx:           -3,
			ProximityThreshold: -10,
		},
	}.Normalize()

	if cfg.Count != 0 || cfg.Interval != 0 {
		t.Errorf("expected count and interval clamped to 0, got %d %v", cfg.Count, cfg.Interval)
	}
	if len(cfg.Palette) != 1 {
		t.Errorf("expected fallback palette, got %v", cfg.Palette)
	}
	m := cfg.Motion
	if m.Period != DefaultPeriod || m.OpacityPeak != DefaultOpacityPeak || m.DepthScale != DefaultDepthScale {
		t.Errorf("expected motion defaults, got %+v", m)
	}
	if m.JitterPx != 0 || m.ProximityThreshold != 0 || m.ProximityScale != 1 {
		t.Errorf("expected non-negative motion values, got %+v", m)
	}
}

func TestReactivityRoundTrip(t *testing.T) {
	for _, r := range []Reactivity{ReactNone, ReactProximity, ReactParallax} {
		got, ok := ParseReactivity(r.String())
		if !ok || got != r {
			t.Errorf("ParseReactivity(%q) = %v, %v", r.String(), got, ok)
		}
	}
	if _, ok := ParseReactivity("orbit"); ok {
		t.Error("expected unknown reactivity to be rejected")
	}
}
