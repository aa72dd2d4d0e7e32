package frames

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func sequenceOf(n int) Sequence {
	s := Sequence{Width: Width, Height: Height}
	for i := 0; i < n; i++ {
		f := make(Frame, Height)
		for y := range f {
			f[y] = fmt.Sprintf("frame %d row %d %s", i, y, strings.Repeat("#", 10))
		}
		s.Frames = append(s.Frames, f)
	}
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sequenceOf(3)

	var buf bytes.Buffer
	if err := Encode(&buf, want); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatal("decoded sequence differs from encoded sequence")
	}
}

func TestDecodeRejectsWrongHeight(t *testing.T) {
	s := sequenceOf(1)
	s.Height = Height - 2
	s.Frames[0] = s.Frames[0][:Height-2]

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Fatal("expected error for wrong frame height")
	}
}

func TestDecodeRejectsRaggedFrame(t *testing.T) {
	s := sequenceOf(2)
	s.Frames[1] = s.Frames[1][:Height-1]

	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if _, err := Decode(&buf); err == nil {
		t.Fatal("expected error for ragged frame")
	}
}

func TestAtSignalsEndOfVideo(t *testing.T) {
	s := sequenceOf(2)

	for i := range 2 {
		if _, ok := s.At(i); !ok {
			t.Fatalf("expected frame at index %d", i)
		}
	}
	if _, ok := s.At(2); ok {
		t.Fatal("expected no frame past the last index")
	}
	if _, ok := s.At(-1); ok {
		t.Fatal("expected no frame at negative index")
	}
}

func TestBrightnessCharSpansTheRamp(t *testing.T) {
	if got := brightnessChar(0); got != ' ' {
		t.Fatalf("expected black pixel to map to space, got %q", got)
	}
	if got := brightnessChar(255); got != '@' {
		t.Fatalf("expected white pixel to map to '@', got %q", got)
	}
}

func TestFrameFromGrayGeometry(t *testing.T) {
	pix := make([]byte, Width*Height)
	for i := range pix {
		pix[i] = 255
	}
	f := frameFromGray(pix)
	if len(f) != Height {
		t.Fatalf("expected %d rows, got %d", Height, len(f))
	}
	for y, row := range f {
		if row != strings.Repeat("@", Width) {
			t.Fatalf("row %d: expected full-brightness row, got %q", y, row)
		}
	}
}
