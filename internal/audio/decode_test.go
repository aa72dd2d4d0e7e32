package audio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestToStereoBytesKeepsStereoInterleaving(t *testing.T) {
	got := toStereoBytes([]int16{1, -2, 3, -4}, 2)
	want := []byte{0x01, 0x00, 0xFE, 0xFF, 0x03, 0x00, 0xFC, 0xFF}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestToStereoBytesDuplicatesMono(t *testing.T) {
	got := toStereoBytes([]int16{5, 6}, 1)
	want := []byte{0x05, 0x00, 0x05, 0x00, 0x06, 0x00, 0x06, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestToStereoBytesDropsExtraChannels(t *testing.T) {
	// 3-channel frame: the third channel is discarded.
	got := toStereoBytes([]int16{1, 2, 3, 4, 5, 6}, 3)
	want := []byte{0x01, 0x00, 0x02, 0x00, 0x04, 0x00, 0x05, 0x00}
	if !bytes.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestClampToInt16(t *testing.T) {
	cases := []struct {
		in   int
		want int16
	}{
		{0, 0},
		{32767, 32767},
		{32768, 32767},
		{-32768, -32768},
		{-40000, -32768},
	}
	for _, c := range cases {
		if got := clampToInt16(c.in); got != c.want {
			t.Fatalf("clampToInt16(%d): expected %d, got %d", c.in, c.want, got)
		}
	}
}

func TestDecodeRawPassthrough(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	path := filepath.Join(t.TempDir(), "clip.raw")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	got, rate, err := Decode(context.Background(), path)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if rate != defaultSampleRate {
		t.Fatalf("expected sample rate %d, got %d", defaultSampleRate, rate)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("raw data not passed through: expected %v, got %v", data, got)
	}
}
