// Package preset loads note-settings presets from JSON files. Fields are
// pointers so a preset can override any subset of the defaults.
package preset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cwbudde/algo-driftsynth/drift"
)

// File is the JSON schema for drift-synth presets.
type File struct {
	VarianceCents                    *float64 `json:"variance_cents"`
	WaveShape                        string   `json:"wave_shape"`
	FilterCutoffHz                   *float64 `json:"filter_cutoff_hz"`
	OctaveShift                      *int     `json:"octave_shift"`
	DriftDirectionProbabilityPercent *float64 `json:"drift_direction_probability_percent"`
	DriftMode                        string   `json:"drift_mode"`
	DriftParam1                      *float64 `json:"drift_param1"`
	DriftParam2                      *float64 `json:"drift_param2"`
}

// LoadJSON loads a preset file and applies it on top of default settings.
func LoadJSON(path string) (drift.Settings, error) {
	s := drift.NewDefaultSettings()

	b, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return s, err
	}
	if err := ApplyFile(&s, &f); err != nil {
		return s, err
	}
	return s, nil
}

// ApplyFile applies a parsed preset onto existing settings, validating each
// overridden field.
func ApplyFile(dst *drift.Settings, f *File) error {
	if dst == nil {
		return fmt.Errorf("nil destination settings")
	}
	if f == nil {
		return nil
	}

	if f.VarianceCents != nil {
		if *f.VarianceCents < 0 {
			return fmt.Errorf("variance_cents must be >= 0")
		}
		dst.VarianceCents = *f.VarianceCents
	}
	if f.WaveShape != "" {
		w, err := drift.ParseWaveShape(f.WaveShape)
		if err != nil {
			return err
		}
		dst.Wave = w
	}
	if f.FilterCutoffHz != nil {
		if *f.FilterCutoffHz <= 0 {
			return fmt.Errorf("filter_cutoff_hz must be > 0")
		}
		dst.FilterCutoffHz = *f.FilterCutoffHz
	}
	if f.OctaveShift != nil {
		if *f.OctaveShift < -8 || *f.OctaveShift > 8 {
			return fmt.Errorf("octave_shift %d out of range [-8,8]", *f.OctaveShift)
		}
		dst.OctaveShift = *f.OctaveShift
	}
	if f.DriftDirectionProbabilityPercent != nil {
		if *f.DriftDirectionProbabilityPercent < 0 || *f.DriftDirectionProbabilityPercent > 100 {
			return fmt.Errorf("drift_direction_probability_percent must be in [0,100]")
		}
		dst.DriftDirectionProbabilityPercent = *f.DriftDirectionProbabilityPercent
	}
	if f.DriftMode != "" {
		m, err := drift.ParseMode(f.DriftMode)
		if err != nil {
			return err
		}
		dst.DriftMode = m
	}
	if f.DriftParam1 != nil {
		dst.DriftParam1 = *f.DriftParam1
	}
	if f.DriftParam2 != nil {
		dst.DriftParam2 = *f.DriftParam2
	}
	return nil
}
