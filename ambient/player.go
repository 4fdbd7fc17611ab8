// Package ambient plays an optional looping sound track behind the animation.
package ambient

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// bufferDuration is the speaker buffer; larger values trade latency for fewer underruns
const bufferDuration = 100 * time.Millisecond

// Player loops one WAV track until closed
type Player struct {
	mu      sync.Mutex
	stream  beep.StreamSeekCloser
	started bool
}

// NewPlayer creates an idle player
func NewPlayer() *Player {
	return &Player{}
}

// Start decodes path and plays it looped forever at its own sample rate
// A second call while playing is a no-op
func (p *Player) Start(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	stream, format, err := openTrack(path)
	if err != nil {
		return err
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(bufferDuration)); err != nil {
		stream.Close()
		return fmt.Errorf("init speaker at %d Hz: %w", format.SampleRate, err)
	}

	p.stream = stream
	speaker.Play(beep.Loop(-1, stream))
	p.started = true
	return nil
}

// Close stops playback and releases the track; safe without Start
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.stream.Close()
	p.stream = nil
	p.started = false
}

// openTrack decodes a WAV file; the returned stream owns the file
func openTrack(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	stream, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return stream, format, nil
}
