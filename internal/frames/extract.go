package frames

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// ErrExtract is wrapped by all failures of the ffmpeg video decode
// collaborator.
var ErrExtract = errors.New("frames: video decode failed")

// asciiRamp maps pixel brightness to characters, darkest to brightest.
// Chosen for good perceptual spacing in monospace fonts.
const asciiRamp = " .:-=+*#%@"

// Extract decodes the video at path into an ASCII frame sequence via an
// ffmpeg subprocess emitting 8-bit grayscale rawvideo at Width x Height.
//
// fps selects the decode rate so that one frame corresponds to one audio
// window (30 at 44.1 kHz stereo). Extraction stops after budget frames;
// onProgress, if non-nil, is called after each decoded frame.
func Extract(ctx context.Context, path string, budget int, fps float64, onProgress func(done int)) (Sequence, error) {
	if budget <= 0 {
		return Sequence{}, fmt.Errorf("%w: frame budget must be positive", ErrExtract)
	}
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return Sequence{}, fmt.Errorf("%w: ffmpeg not found", ErrExtract)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffmpeg,
		"-v", "quiet",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"-vf", fmt.Sprintf("scale=%d:%d,fps=%g", Width, Height, fps),
		"-an",
		"pipe:1",
	)
	cmd.Stdin = nil

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Sequence{}, fmt.Errorf("%w: stdout pipe: %v", ErrExtract, err)
	}
	if err := cmd.Start(); err != nil {
		return Sequence{}, fmt.Errorf("%w: starting ffmpeg: %v", ErrExtract, err)
	}

	seq := Sequence{Width: Width, Height: Height}
	buf := make([]byte, Width*Height)
	for len(seq.Frames) < budget {
		if _, err := io.ReadFull(stdout, buf); err != nil {
			break
		}
		seq.Frames = append(seq.Frames, frameFromGray(buf))
		if onProgress != nil {
			onProgress(len(seq.Frames))
		}
	}

	// Budget reached with frames still streaming: stop ffmpeg instead of
	// draining it.
	if len(seq.Frames) == budget {
		cancel()
		cmd.Wait()
	} else if err := cmd.Wait(); err != nil && len(seq.Frames) == 0 {
		return Sequence{}, fmt.Errorf("%w: ffmpeg on %s: %v", ErrExtract, path, err)
	}

	if len(seq.Frames) == 0 {
		return Sequence{}, fmt.Errorf("%w: no video frames in %s", ErrExtract, path)
	}
	return seq, nil
}

// frameFromGray converts one grayscale rawvideo frame into ASCII rows.
func frameFromGray(pix []byte) Frame {
	f := make(Frame, Height)
	row := make([]byte, Width)
	for y := 0; y < Height; y++ {
		off := y * Width
		for x := 0; x < Width; x++ {
			row[x] = brightnessChar(pix[off+x])
		}
		f[y] = string(row)
	}
	return f
}

// brightnessChar maps a 0-255 luminance to an ASCII character.
func brightnessChar(lum byte) byte {
	idx := int(lum) * (len(asciiRamp) - 1) / 255
	return asciiRamp[idx]
}
