// Package show drives the playback loop: windows of decoded audio are
// analyzed, mapped to band colors, drawn over the matching ASCII video frame
// and pushed to the audio device, one window per iteration.
package show

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/beatscope/internal/audio"
	"github.com/olivier-w/beatscope/internal/frames"
	"github.com/olivier-w/beatscope/internal/playback"
	"github.com/olivier-w/beatscope/internal/render"
	"github.com/olivier-w/beatscope/internal/spectral"
)

// Config is built once in main and passed down; there is no package-level
// mutable state.
type Config struct {
	AudioPath string
	VideoPath string
	// Out is the terminal; defaults to os.Stdout.
	Out io.Writer
	// Progress shows the prerender screen while frames are extracted.
	Progress bool
}

const (
	enterScreen = "\x1b[?1049h\x1b[?25l\x1b[2J"
	exitScreen  = "\x1b[?1049l\x1b[?25h"
	homeCursor  = "\x1b[H"
)

// pusher is the slice of the playback sink the streaming loop needs.
type pusher interface {
	Push(window []byte) error
}

// Run executes the full state machine: INIT (decode inputs, open the
// device), STREAMING (the window loop), DRAIN (let buffered audio play out)
// and STOPPED (device stop and terminal restore, guaranteed on every exit
// path including cancellation).
func Run(ctx context.Context, cfg Config) error {
	// INIT: decode everything before touching the device or the screen.
	data, rate, err := audio.Decode(ctx, cfg.AudioPath)
	if err != nil {
		return err
	}
	buf := audio.NewBuffer(data)
	if buf.WindowCount() == 0 {
		return fmt.Errorf("show: %s is shorter than one window", cfg.AudioPath)
	}

	seq, err := loadFrames(ctx, cfg, buf.WindowCount(), audio.WindowsPerSecond(rate))
	if err != nil {
		return err
	}

	meta := audio.ReadMetadata(cfg.AudioPath)

	sink, err := playback.Open(rate)
	if err != nil {
		return err
	}
	defer sink.Stop()

	// A canceled context closes the sink pipe, so a Push blocked on the
	// device buffer returns instead of hanging teardown.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			sink.Stop()
		case <-done:
		}
	}()

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprint(out, enterScreen)
	defer fmt.Fprint(out, exitScreen)

	sink.Start()
	err = stream(buf, seq, sink, out, footerFor(meta))
	if err == nil && ctx.Err() == nil {
		// DRAIN: no more windows; let the device finish what it buffered.
		sink.Drain()
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// stream is the STREAMING state. It ends normally when either the audio
// runs out of full windows or the frame sequence is exhausted; a missing
// frame halts the iteration before that window's audio is pushed.
func stream(buf audio.Buffer, seq frames.Sequence, sink pusher, out io.Writer, footer string) error {
	analyzer := spectral.New()
	renderer := render.NewRenderer()

	for n := 0; ; n++ {
		window, err := buf.Window(n)
		if errors.Is(err, audio.ErrEndOfStream) {
			return nil
		}

		res, err := analyzer.Analyze(window)
		if err != nil {
			return err
		}
		var bands [spectral.BandCount]render.Assignment
		for i, m := range res.Bands {
			bands[i] = render.Map(m, res.Overall)
		}

		frame, ok := seq.At(n)
		if !ok {
			return nil
		}
		text, err := renderer.Frame(frame, bands)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(out, homeCursor, text, "\n", footer); err != nil {
			return err
		}

		if err := sink.Push(window); err != nil {
			return err
		}
	}
}

// loadFrames returns the frame sequence for the video path: a cache file is
// loaded directly, anything else goes through the ffmpeg extractor, capped
// at one frame per audio window.
func loadFrames(ctx context.Context, cfg Config, budget int, fps float64) (frames.Sequence, error) {
	if strings.EqualFold(filepath.Ext(cfg.VideoPath), frames.CacheExt) {
		return frames.Load(cfg.VideoPath)
	}
	if cfg.Progress {
		return extractWithProgress(ctx, cfg.VideoPath, budget, fps)
	}
	return frames.Extract(ctx, cfg.VideoPath, budget, fps, nil)
}

func footerFor(meta audio.Metadata) string {
	label := meta.Title
	if meta.Artist != "" {
		label = meta.Artist + " - " + label
	}
	return lipgloss.NewStyle().Faint(true).Render("♪ " + label)
}
