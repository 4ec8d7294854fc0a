package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-driftsynth/drift"
	"github.com/cwbudde/algo-driftsynth/internal/fitcommon"
	"github.com/cwbudde/algo-driftsynth/preset"
	"github.com/cwbudde/algo-driftsynth/randdev"
	"github.com/cwbudde/algo-driftsynth/render"
)

func main() {
	freq := flag.Float64("freq", 440.0, "Base frequency in Hz before randomization")
	duration := flag.Float64("duration", 2.0, "Total render duration in seconds")
	releaseAfter := flag.Float64("release-after", 1.5, "Send note-off after this many seconds")
	sampleRate := flag.Int("sample-rate", 48000, "Render sample rate in Hz")
	seed := flag.Int64("seed", 1, "Random seed (reproducible pitch and drift draws)")
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
	variance := flag.Float64("variance", -1, "Pitch variance in cents, overrides the preset if >= 0")
	output := flag.String("output", "output.wav", "Output WAV file path")
	flag.Parse()

	if *freq <= 0 {
		fmt.Fprintf(os.Stderr, "Base frequency must be positive, got %v\n", *freq)
		os.Exit(1)
	}

	settings := drift.NewDefaultSettings()
	if *presetPath != "" {
		loaded, err := preset.LoadJSON(*presetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading preset %q: %v\n", *presetPath, err)
			os.Exit(1)
		}
		settings = loaded
	}
	if *variance >= 0 {
		settings.VarianceCents = *variance
	}

	ctx, err := render.NewContext(float64(*sampleRate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating render context: %v\n", err)
		os.Exit(1)
	}
	engine := drift.NewEngine(ctx, randdev.NewSeeded(*seed))

	fmt.Printf("Rendering %.2f Hz (%s, variance %.1f cents) for %.2fs at %d Hz...\n",
		*freq, settings.Wave, settings.VarianceCents, *duration, *sampleRate)

	engine.PlayNote(*freq, "note", settings)

	const blockSize = 128
	totalFrames := int(float64(*sampleRate) * (*duration))
	if totalFrames < 1 {
		totalFrames = 1
	}
	releaseAtFrame := int(float64(*sampleRate) * (*releaseAfter))

	samples := make([]float32, 0, totalFrames)
	framesRendered := 0
	released := false
	for framesRendered < totalFrames {
		framesToRender := blockSize
		if framesRendered+framesToRender > totalFrames {
			framesToRender = totalFrames - framesRendered
		}
		if !released && framesRendered >= releaseAtFrame {
			engine.StopNote("note")
			released = true
		}
		samples = append(samples, ctx.Process(framesToRender)...)
		framesRendered += framesToRender
	}
	if !released {
		engine.StopNote("note")
	}

	if err := fitcommon.WriteMonoWAV(*output, samples, *sampleRate); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing WAV file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Successfully wrote %s (%d frames)\n", *output, totalFrames)
}
