package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/olivier-w/beatscope/internal/audio"
	"github.com/olivier-w/beatscope/internal/frames"
	"github.com/olivier-w/beatscope/internal/show"
)

func main() {
	cacheVideo := flag.Bool("cache-video", false, "write the decoded ASCII frame cache to stdout instead of playing")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
		os.Exit(2)
	}
	audioPath, videoPath := flag.Arg(0), flag.Arg(1)
	if audioPath == "" || videoPath == "" {
		fmt.Fprintln(os.Stderr, "Error: audio and video paths must not be empty")
		os.Exit(2)
	}

	for _, path := range []string{audioPath, videoPath} {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if info.IsDir() {
			fmt.Fprintf(os.Stderr, "Error: %s is a directory\n", path)
			os.Exit(1)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *cacheVideo {
		if err := cacheVideoFrames(ctx, audioPath, videoPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg := show.Config{
		AudioPath: audioPath,
		VideoPath: videoPath,
		Out:       os.Stdout,
		Progress:  true,
	}
	if err := show.Run(ctx, cfg); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// cacheVideoFrames extracts the ASCII frame sequence sized to the audio and
// writes the serialized cache to stdout, skipping playback entirely.
func cacheVideoFrames(ctx context.Context, audioPath, videoPath string) error {
	data, rate, err := audio.Decode(ctx, audioPath)
	if err != nil {
		return err
	}
	buf := audio.NewBuffer(data)
	if buf.WindowCount() == 0 {
		return fmt.Errorf("%s is shorter than one window", audioPath)
	}

	seq, err := frames.Extract(ctx, videoPath, buf.WindowCount(), audio.WindowsPerSecond(rate), nil)
	if err != nil {
		return err
	}
	return frames.Encode(os.Stdout, seq)
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: beatscope [flags] <audio> <video>

Plays the audio file while drawing the video as colorized ASCII frames,
one frame per audio window, with each pair of rows lit by the energy of
one frequency band.

The video may be any ffmpeg-readable file or a %s cache produced by
--cache-video.

Flags:
`, frames.CacheExt)
	flag.PrintDefaults()
}
