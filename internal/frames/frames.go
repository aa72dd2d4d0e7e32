package frames

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

const (
	// Height is the fixed row count of every frame: two rows per spectral
	// band.
	Height = 26
	// Width is the fixed column count of every frame.
	Width = 80
	// CacheExt marks a pre-serialized frame sequence on disk.
	CacheExt = ".avf"
)

// Frame is one pre-rendered ASCII video instant, Height rows of text.
type Frame []string

// Sequence is an ordered list of frames indexed by window number.
type Sequence struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Frames []Frame `json:"frames"`
}

// Len returns the number of frames.
func (s Sequence) Len() int { return len(s.Frames) }

// At returns the frame for the given window index. A false return is the
// normal end-of-video signal, not an error.
func (s Sequence) At(i int) (Frame, bool) {
	if i < 0 || i >= len(s.Frames) {
		return nil, false
	}
	return s.Frames[i], true
}

// Encode writes the cache representation of the sequence.
func Encode(w io.Writer, s Sequence) error {
	enc := json.NewEncoder(w)
	return enc.Encode(s)
}

// Decode reads a cached sequence and validates its geometry.
func Decode(r io.Reader) (Sequence, error) {
	var s Sequence
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Sequence{}, fmt.Errorf("frames: parsing cache: %w", err)
	}
	if s.Height != Height {
		return Sequence{}, fmt.Errorf("frames: cache has height %d, want %d", s.Height, Height)
	}
	for i, f := range s.Frames {
		if len(f) != s.Height {
			return Sequence{}, fmt.Errorf("frames: frame %d has %d rows, want %d", i, len(f), s.Height)
		}
	}
	return s, nil
}

// Load reads a cached sequence from disk.
func Load(path string) (Sequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sequence{}, err
	}
	defer f.Close()
	return Decode(f)
}
