package render

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player streams a render Context to the default audio device in realtime.
// Construction failures (no device, unsupported rate) surface as errors to
// the caller; the engine core is never involved.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// NewPlayer opens the output device at the context's sample rate, mono
// float32.
func NewPlayer(src *Context) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   int(src.SampleRate()),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Player{
		ctx:    ctx,
		player: ctx.NewPlayer(&streamReader{src: src}),
	}, nil
}

// Play starts (or resumes) realtime playback.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.player.Play()
}

// Pause suspends playback without tearing the device down.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.player.Pause()
}

// Close stops playback and releases the device player.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.player.Close()
}

// streamReader adapts Context.Process to the io.Reader the device player
// pulls from. Runs on the audio thread; rendering must stay non-blocking.
type streamReader struct {
	mu  sync.Mutex
	src *Context
}

func (r *streamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	block := r.src.Process(frames)
	for i, s := range block {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(s))
	}
	return frames * 4, nil
}
