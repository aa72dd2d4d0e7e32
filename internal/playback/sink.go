// Package playback streams raw PCM windows to the audio output device.
package playback

import (
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Sink is a bounded streaming audio output. Windows written with Push feed
// an oto player through a pipe; once the device buffer is full, Push blocks
// until the device catches up, which paces the caller to real playback rate.
//
// Lifecycle: Open -> Start -> Push* -> (Drain) -> Stop. Stop is idempotent
// and must run on every exit path.
type Sink struct {
	ctx    *oto.Context
	player *oto.Player
	pr     *io.PipeReader
	pw     *io.PipeWriter

	stopOnce sync.Once
}

// Open initializes the audio device for interleaved signed 16-bit LE stereo
// at the given sample rate and blocks until the device is ready.
func Open(sampleRate int) (*Sink, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	pr, pw := io.Pipe()
	return &Sink{ctx: ctx, pr: pr, pw: pw}, nil
}

// Start attaches a player to the pipe and begins playback.
func (s *Sink) Start() {
	s.player = s.ctx.NewPlayer(s.pr)
	s.player.Play()
}

// Push streams one window's worth of raw samples to the device.
func (s *Sink) Push(window []byte) error {
	_, err := s.pw.Write(window)
	return err
}

// Drain signals end of input and waits for buffered audio to play out.
func (s *Sink) Drain() {
	s.pw.Close()
	for s.player != nil && s.player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}
}

// Stop halts playback immediately and releases the pipe. Safe to call
// multiple times and after Drain.
func (s *Sink) Stop() {
	s.stopOnce.Do(func() {
		s.pw.Close()
		s.pr.Close()
		if s.player != nil {
			s.player.Close()
		}
	})
}
