package render

import (
	"fmt"
	"strings"
	"testing"

	"github.com/olivier-w/beatscope/internal/frames"
	"github.com/olivier-w/beatscope/internal/spectral"
)

func testFrame() frames.Frame {
	f := make(frames.Frame, frames.Height)
	for i := range f {
		f[i] = fmt.Sprintf("row-%02d", i)
	}
	return f
}

func TestFrameRejectsWrongHeight(t *testing.T) {
	r := NewRenderer()
	var bands [spectral.BandCount]Assignment
	if _, err := r.Frame(make(frames.Frame, frames.Height-1), bands); err == nil {
		t.Fatal("expected error for 25-row frame")
	}
}

func TestFrameStylesRowPairsByBand(t *testing.T) {
	r := NewRenderer()
	var bands [spectral.BandCount]Assignment
	for i := range bands {
		bands[i] = Map(float64(i), 10)
	}

	out, err := r.Frame(testFrame(), bands)
	if err != nil {
		t.Fatalf("Frame returned error: %v", err)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != frames.Height {
		t.Fatalf("expected %d output lines, got %d", frames.Height, len(lines))
	}
	for i, a := range bands {
		want := r.palette.Style(a).Render(fmt.Sprintf("row-%02d", 2*i))
		if lines[2*i] != want {
			t.Fatalf("row %d: expected %q, got %q", 2*i, want, lines[2*i])
		}
		want = r.palette.Style(a).Render(fmt.Sprintf("row-%02d", 2*i+1))
		if lines[2*i+1] != want {
			t.Fatalf("row %d: expected %q, got %q", 2*i+1, want, lines[2*i+1])
		}
	}
}

func TestFrameReusesRendererAcrossWindows(t *testing.T) {
	r := NewRenderer()
	var bands [spectral.BandCount]Assignment

	first, err := r.Frame(testFrame(), bands)
	if err != nil {
		t.Fatalf("first Frame returned error: %v", err)
	}
	second, err := r.Frame(testFrame(), bands)
	if err != nil {
		t.Fatalf("second Frame returned error: %v", err)
	}
	if first != second {
		t.Fatal("identical input rendered differently on reuse")
	}
}
