package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/cwbudde/algo-driftsynth/analysis"
	"github.com/cwbudde/algo-driftsynth/drift"
	"github.com/cwbudde/algo-driftsynth/internal/fitcommon"
	"github.com/cwbudde/algo-driftsynth/preset"
	"github.com/cwbudde/algo-driftsynth/randdev"
	"github.com/cwbudde/algo-driftsynth/render"
	"github.com/cwbudde/mayfly"
)

type knobDef struct {
	Name    string
	Min     float64
	Max     float64
	Default float64
}

type candidate struct {
	Vals []float64
}

func knobDefs() []knobDef {
	return []knobDef{
		{Name: "variance_cents", Min: 0, Max: 100, Default: 25},
		{Name: "drift_direction_probability_percent", Min: 0, Max: 100, Default: 50},
		{Name: "drift_param1", Min: 0, Max: 50, Default: 5},
		{Name: "drift_param2", Min: 0, Max: 25, Default: 2},
	}
}

func defaultCandidate(defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i, d := range defs {
		vals[i] = d.Default
	}
	return candidate{Vals: vals}
}

func fromNormalized(pos []float64, defs []knobDef) candidate {
	vals := make([]float64, len(defs))
	for i, d := range defs {
		t := 0.0
		if i < len(pos) {
			t = fitcommon.Clamp(pos[i], 0, 1)
		}
		vals[i] = d.Min + t*(d.Max-d.Min)
	}
	return candidate{Vals: vals}
}

func settingsFromCandidate(defs []knobDef, c candidate) drift.Settings {
	s := drift.NewDefaultSettings()
	s.DriftMode = drift.ModeGaussian
	for i, d := range defs {
		v := fitcommon.Clamp(c.Vals[i], d.Min, d.Max)
		switch d.Name {
		case "variance_cents":
			s.VarianceCents = v
		case "drift_direction_probability_percent":
			s.DriftDirectionProbabilityPercent = v
		case "drift_param1":
			s.DriftParam1 = v
		case "drift_param2":
			s.DriftParam2 = v
		}
	}
	return s
}

// renderCandidate renders a single note with the candidate's settings. The
// seed is fixed so two evaluations of the same knobs produce the same audio.
func renderCandidate(defs []knobDef, c candidate, baseFreq float64, sampleRate int, duration float64, seed int64) ([]float32, error) {
	ctx, err := render.NewContext(float64(sampleRate))
	if err != nil {
		return nil, err
	}
	engine := drift.NewEngine(ctx, randdev.NewSeeded(seed))
	engine.PlayNote(baseFreq, "fit", settingsFromCandidate(defs, c))

	const blockSize = 128
	totalFrames := fitcommon.MaxInt(1, int(float64(sampleRate)*duration))
	releaseAtFrame := totalFrames - int(0.2*float64(sampleRate))
	if releaseAtFrame < 0 {
		releaseAtFrame = totalFrames
	}

	mono := make([]float32, 0, totalFrames)
	rendered := 0
	released := false
	for rendered < totalFrames {
		n := fitcommon.MinInt(blockSize, totalFrames-rendered)
		if !released && rendered >= releaseAtFrame {
			engine.StopNote("fit")
			released = true
		}
		mono = append(mono, ctx.Process(n)...)
		rendered += n
	}
	return mono, nil
}

func newMayflyConfig(variant string, pop int, dims int, iters int) (*mayfly.Config, error) {
	var cfg *mayfly.Config
	switch variant {
	case "ma":
		cfg = mayfly.NewDefaultConfig()
	case "desma":
		cfg = mayfly.NewDESMAConfig()
	case "olce":
		cfg = mayfly.NewOLCEConfig()
	case "eobbma":
		cfg = mayfly.NewEOBBMAConfig()
	case "gsasma":
		cfg = mayfly.NewGSASMAConfig()
	case "mpma":
		cfg = mayfly.NewMPMAConfig()
	case "aoblmoa":
		cfg = mayfly.NewAOBLMOAConfig()
	default:
		return nil, fmt.Errorf("unsupported variant %q", variant)
	}
	cfg.ProblemSize = dims
	cfg.LowerBound = 0.0
	cfg.UpperBound = 1.0
	cfg.MaxIterations = iters
	cfg.NPop = pop
	cfg.NPopF = pop
	// Mayfly's implementation assumes NC/2 parent pairs are available from both
	// male and female populations.
	cfg.NC = 2 * pop
	// Keep at least one mutation to avoid stalling on small populations.
	cfg.NM = fitcommon.MaxInt(1, int(math.Round(0.05*float64(pop))))
	return cfg, nil
}

func runMayfly(cfg *mayfly.Config) (_ *mayfly.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mayfly panic: %v", r)
		}
	}()
	return mayfly.Optimize(cfg)
}

type runReport struct {
	Reference      string             `json:"reference"`
	SampleRate     int                `json:"sample_rate"`
	ElapsedSeconds float64            `json:"elapsed_seconds"`
	Evals          int                `json:"evals"`
	Variant        string             `json:"variant"`
	BestKnobs      map[string]float64 `json:"best_knobs"`
	Score          float64            `json:"score"`
	Similarity     float64            `json:"similarity"`
	RMSECents      float64            `json:"rmse_cents"`
	BiasCents      float64            `json:"bias_cents"`
}

func writeOutputs(presetPath, reportPath, referencePath string, sampleRate int, elapsed float64, evals int, variant string, defs []knobDef, best candidate, bestM analysis.Metrics) error {
	s := settingsFromCandidate(defs, best)
	mode := s.DriftMode.String()
	file := preset.File{
		VarianceCents:                    &s.VarianceCents,
		DriftDirectionProbabilityPercent: &s.DriftDirectionProbabilityPercent,
		DriftMode:                        mode,
		DriftParam1:                      &s.DriftParam1,
		DriftParam2:                      &s.DriftParam2,
	}
	b, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(presetPath, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}

	knobs := make(map[string]float64, len(defs))
	for i, d := range defs {
		knobs[d.Name] = best.Vals[i]
	}
	rep := runReport{
		Reference:      referencePath,
		SampleRate:     sampleRate,
		ElapsedSeconds: elapsed,
		Evals:          evals,
		Variant:        variant,
		BestKnobs:      knobs,
		Score:          bestM.Score,
		Similarity:     bestM.Similarity,
		RMSECents:      bestM.RMSECents,
		BiasCents:      bestM.BiasCents,
	}
	rb, err := json.MarshalIndent(&rep, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(reportPath, append(rb, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
