package audio

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

const defaultSampleRate = 44100

// ErrDecode is wrapped by all failures of the external ffmpeg decode
// collaborator (missing binary, non-zero exit).
var ErrDecode = errors.New("audio: decode failed")

// Decode converts the file at path into interleaved signed 16-bit LE stereo
// PCM, fully buffered in memory. Formats with a native Go decoder (.mp3,
// .wav, .flac, .ogg) avoid the ffmpeg subprocess; .raw/.pcm input is taken
// verbatim; everything else is handed to ffmpeg. The returned sample rate is
// the rate of the decoded stream.
func Decode(ctx context.Context, path string) ([]byte, int, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".raw", ".pcm":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, err
		}
		return data, defaultSampleRate, nil
	case ".mp3":
		return decodeMP3(path)
	case ".wav":
		return decodeWAV(path)
	case ".flac":
		return decodeFLAC(path)
	case ".ogg":
		return decodeOGG(path)
	default:
		return decodeFFmpeg(ctx, path)
	}
}

func decodeMP3(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding MP3: %w", err)
	}

	// go-mp3 always emits 16-bit stereo at the source rate.
	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, fmt.Errorf("reading MP3 stream: %w", err)
	}
	return data, dec.SampleRate(), nil
}

func decodeWAV(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid WAV file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("reading WAV PCM data: %w", err)
	}

	channels := buf.Format.NumChannels
	bitDepth := int(dec.BitDepth)
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		switch bitDepth {
		case 8:
			// 8-bit WAV is unsigned.
			v = (v - 128) << 8
		case 16:
			// already in range
		case 24:
			v >>= 8
		case 32:
			v >>= 16
		}
		samples[i] = clampToInt16(v)
	}

	return toStereoBytes(samples, channels), int(dec.SampleRate), nil
}

func decodeFLAC(path string) ([]byte, int, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	bps := int(info.BitsPerSample)

	samples := make([]int16, 0, int(info.NSamples)*channels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("decoding FLAC frame: %w", err)
		}
		n := int(frame.Subframes[0].NSamples)
		for i := 0; i < n; i++ {
			for ch := 0; ch < channels; ch++ {
				s := int(frame.Subframes[ch].Samples[i])
				switch {
				case bps > 16:
					s >>= bps - 16
				case bps < 16:
					s <<= 16 - bps
				}
				samples = append(samples, clampToInt16(s))
			}
		}
	}

	return toStereoBytes(samples, channels), int(info.SampleRate), nil
}

func decodeOGG(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	data, format, err := oggvorbis.ReadAll(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding OGG: %w", err)
	}

	samples := make([]int16, len(data))
	for i, s := range data {
		if s > 1.0 {
			s = 1.0
		} else if s < -1.0 {
			s = -1.0
		}
		samples[i] = int16(s * 32767)
	}

	return toStereoBytes(samples, format.Channels), format.SampleRate, nil
}

// decodeFFmpeg extracts audio from any ffmpeg-supported container as
// 44.1 kHz stereo s16le PCM.
func decodeFFmpeg(ctx context.Context, path string) ([]byte, int, error) {
	ffmpeg, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ffmpeg not found", ErrDecode)
	}

	cmd := exec.CommandContext(ctx, ffmpeg,
		"-v", "quiet",
		"-i", path,
		"-vn",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ac", "2",
		"-ar", "44100",
		"pipe:1",
	)
	cmd.Stdin = nil

	out, err := cmd.Output()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: ffmpeg on %s: %v", ErrDecode, path, err)
	}
	if len(out) == 0 {
		return nil, 0, fmt.Errorf("%w: no audio stream in %s", ErrDecode, path)
	}
	return out, defaultSampleRate, nil
}

// toStereoBytes packs interleaved samples into s16le bytes, duplicating a
// mono channel and dropping channels beyond the first two.
func toStereoBytes(samples []int16, channels int) []byte {
	if channels < 1 {
		return nil
	}
	frames := len(samples) / channels
	out := make([]byte, frames*frameSize)
	for i := 0; i < frames; i++ {
		left := samples[i*channels]
		right := left
		if channels > 1 {
			right = samples[i*channels+1]
		}
		binary.LittleEndian.PutUint16(out[i*frameSize:], uint16(left))
		binary.LittleEndian.PutUint16(out[i*frameSize+2:], uint16(right))
	}
	return out
}

func clampToInt16(v int) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
