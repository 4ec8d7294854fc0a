package preset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-driftsynth/drift"
)

func writePreset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "preset.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}
	return path
}

func TestLoadJSONAppliesOverrides(t *testing.T) {
	path := writePreset(t, `{
		"variance_cents": 80,
		"wave_shape": "sawtooth",
		"filter_cutoff_hz": 2500,
		"octave_shift": -1,
		"drift_direction_probability_percent": 75,
		"drift_mode": "uniform",
		"drift_param1": 2,
		"drift_param2": 8
	}`)

	s, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if s.VarianceCents != 80 || s.Wave != drift.WaveSawtooth || s.FilterCutoffHz != 2500 {
		t.Fatalf("voice overrides not applied: %+v", s)
	}
	if s.OctaveShift != -1 || s.DriftDirectionProbabilityPercent != 75 {
		t.Fatalf("drift overrides not applied: %+v", s)
	}
	if s.DriftMode != drift.ModeUniform || s.DriftParam1 != 2 || s.DriftParam2 != 8 {
		t.Fatalf("drift mode overrides not applied: %+v", s)
	}
}

func TestLoadJSONPartialOverrideKeepsDefaults(t *testing.T) {
	path := writePreset(t, `{"variance_cents": 10}`)

	s, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	def := drift.NewDefaultSettings()
	if s.VarianceCents != 10 {
		t.Fatalf("override not applied: %+v", s)
	}
	if s.Wave != def.Wave || s.FilterCutoffHz != def.FilterCutoffHz || s.DriftMode != def.DriftMode {
		t.Fatalf("unspecified fields must keep defaults: %+v", s)
	}
}

func TestLoadJSONValidation(t *testing.T) {
	bad := []string{
		`{"variance_cents": -1}`,
		`{"filter_cutoff_hz": 0}`,
		`{"octave_shift": 12}`,
		`{"drift_direction_probability_percent": 140}`,
		`{"wave_shape": "pulse"}`,
		`{"drift_mode": "cauchy"}`,
	}
	for _, content := range bad {
		path := writePreset(t, content)
		if _, err := LoadJSON(path); err == nil {
			t.Fatalf("expected validation error for %s", content)
		}
	}
}

func TestApplyFileNilInputs(t *testing.T) {
	s := drift.NewDefaultSettings()
	if err := ApplyFile(&s, nil); err != nil {
		t.Fatalf("nil file must be a no-op, got %v", err)
	}
	if err := ApplyFile(nil, &File{}); err == nil {
		t.Fatalf("nil destination must error")
	}
}
