package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-driftsynth/drift"
	"github.com/cwbudde/algo-driftsynth/preset"
	"github.com/cwbudde/algo-driftsynth/randdev"
	"github.com/cwbudde/algo-driftsynth/render"
)

func main() {
	freq := flag.Float64("freq", 440.0, "Base frequency in Hz before randomization")
	hold := flag.Float64("hold", 1.5, "Hold the note for this many seconds before note-off")
	tail := flag.Float64("tail", 0.5, "Keep the stream open this long after note-off")
	sampleRate := flag.Int("sample-rate", 48000, "Playback sample rate in Hz")
	seed := flag.Int64("seed", 0, "Random seed, 0 seeds from the clock")
	presetPath := flag.String("preset", "", "Preset JSON file path (optional)")
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

	ctx, err := render.NewContext(float64(*sampleRate))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating render context: %v\n", err)
		os.Exit(1)
	}

	var rnd *randdev.Deviate
	if *seed == 0 {
		rnd = randdev.NewTimeSeeded()
	} else {
		rnd = randdev.NewSeeded(*seed)
	}
	engine := drift.NewEngine(ctx, rnd)

	player, err := render.NewPlayer(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening audio device: %v\n", err)
		os.Exit(1)
	}
	defer player.Close()

	fmt.Printf("Playing %.2f Hz (%s, variance %.1f cents) for %.2fs...\n",
		*freq, settings.Wave, settings.VarianceCents, *hold)

	player.Play()
	engine.PlayNote(*freq, "note", settings)
	time.Sleep(time.Duration(*hold * float64(time.Second)))
	engine.StopNote("note")
	time.Sleep(time.Duration(*tail * float64(time.Second)))
}
