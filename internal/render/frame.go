package render

import (
	"fmt"
	"strings"

	"github.com/olivier-w/beatscope/internal/frames"
	"github.com/olivier-w/beatscope/internal/spectral"
)

// Renderer draws ASCII frames with per-band colors. The string builder is
// reused across frames to reduce allocations.
type Renderer struct {
	palette *Palette
	sb      strings.Builder
}

// NewRenderer creates a Renderer with a freshly built palette.
func NewRenderer() *Renderer {
	return &Renderer{palette: NewPalette()}
}

// Frame renders one video frame: its rows are split into consecutive
// row-pairs, and both rows of pair i are styled with assignment i. The frame
// height must be exactly twice the band count.
func (r *Renderer) Frame(f frames.Frame, bands [spectral.BandCount]Assignment) (string, error) {
	if len(f) != 2*len(bands) {
		return "", fmt.Errorf("render: frame has %d rows, want %d", len(f), 2*len(bands))
	}

	r.sb.Reset()
	r.sb.Grow(len(f) * (frames.Width + 16))
	for i, a := range bands {
		style := r.palette.Style(a)
		r.sb.WriteString(style.Render(f[2*i]))
		r.sb.WriteByte('\n')
		r.sb.WriteString(style.Render(f[2*i+1]))
		if i < len(bands)-1 {
			r.sb.WriteByte('\n')
		}
	}
	return r.sb.String(), nil
}
