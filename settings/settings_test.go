package settings

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.Threading || !s.ParameterValidation || !s.ObjectTracker || !s.CoreValidation {
		t.Fatal("core components should default to enabled")
	}
	if s.BestPractices || s.GPUAssisted || s.SyncValidation {
		t.Fatal("opt-in components should default to disabled")
	}
	if s.GPUAV.MaxInstrumentedCount != 4096 {
		t.Fatalf("GPUAV.MaxInstrumentedCount = %d", s.GPUAV.MaxInstrumentedCount)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LAYER_THREADING", "false")
	t.Setenv("LAYER_SYNC_VALIDATION", "true")
	t.Setenv("LAYER_GPUAV_MAX_INSTRUMENTED", "128")

	s, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Threading {
		t.Fatal("LAYER_THREADING=false not applied")
	}
	if !s.SyncValidation {
		t.Fatal("LAYER_SYNC_VALIDATION=true not applied")
	}
	if s.GPUAV.MaxInstrumentedCount != 128 {
		t.Fatal("GPUAV tuning override not applied")
	}
}

func TestLoad_ParseError(t *testing.T) {
	t.Setenv("LAYER_GPUAV_MAX_INSTRUMENTED", "not-a-number")

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDefault_MatchesEmptyEnvironment(t *testing.T) {
	d := Default()
	if !d.Threading || d.BestPractices {
		t.Fatal("Default disagrees with documented defaults")
	}
}
