package audio

import "errors"

const (
	// WindowSize is the number of raw PCM bytes consumed per loop iteration:
	// 1470 stereo 16-bit sample frames, 1/30 s of audio at 44.1 kHz.
	WindowSize = 5880

	// Stream format: interleaved signed 16-bit little-endian stereo.
	channelCount   = 2
	bytesPerSample = 2
	frameSize      = channelCount * bytesPerSample
)

// ErrEndOfStream is returned by Buffer.Window once the requested window
// extends past the last full window. Trailing bytes shorter than WindowSize
// are never delivered.
var ErrEndOfStream = errors.New("audio: end of stream")

// WindowsPerSecond returns the window rate of a stereo 16-bit stream at the
// given sample rate. This is also the video frame rate: 30 at 44.1 kHz.
func WindowsPerSecond(sampleRate int) float64 {
	return float64(sampleRate*frameSize) / WindowSize
}

// Buffer is an immutable view over a fully decoded PCM stream.
type Buffer struct {
	data []byte
}

// NewBuffer wraps decoded PCM bytes. The caller must not mutate data afterwards.
func NewBuffer(data []byte) Buffer {
	return Buffer{data: data}
}

// Len returns the total byte length of the stream.
func (b Buffer) Len() int { return len(b.data) }

// WindowCount returns the number of full windows in the stream.
func (b Buffer) WindowCount() int { return len(b.data) / WindowSize }

// Window returns the WindowSize-byte slice at the given zero-based index.
// Indices at or past WindowCount yield ErrEndOfStream.
func (b Buffer) Window(i int) ([]byte, error) {
	if i < 0 {
		return nil, ErrEndOfStream
	}
	off := i * WindowSize
	if off+WindowSize > len(b.data) {
		return nil, ErrEndOfStream
	}
	return b.data[off : off+WindowSize], nil
}
