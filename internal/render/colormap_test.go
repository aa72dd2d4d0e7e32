package render

import "testing"

func TestMapBuckets(t *testing.T) {
	// One probe inside each of the 11 buckets plus every lower boundary,
	// which belongs to the higher bucket.
	cases := []struct {
		band, overall float64
		want          Assignment
	}{
		{15, 10, Assignment{ColorRed, true}},
		{10, 10, Assignment{ColorRed, true}},
		{9.5, 10, Assignment{ColorRed, false}},
		{9, 10, Assignment{ColorRed, false}},
		{8.5, 10, Assignment{ColorYellow, true}},
		{8, 10, Assignment{ColorYellow, true}},
		{7.5, 10, Assignment{ColorYellow, false}},
		{7, 10, Assignment{ColorYellow, false}},
		{6.5, 10, Assignment{ColorMagenta, true}},
		{6, 10, Assignment{ColorMagenta, true}},
		{5.5, 10, Assignment{ColorMagenta, false}},
		{5, 10, Assignment{ColorMagenta, false}},
		{4.5, 10, Assignment{ColorBlue, true}},
		{4, 10, Assignment{ColorBlue, true}},
		{3.5, 10, Assignment{ColorBlue, false}},
		{3, 10, Assignment{ColorBlue, false}},
		{2.5, 10, Assignment{ColorCyan, true}},
		{2, 10, Assignment{ColorCyan, true}},
		{1.5, 10, Assignment{ColorCyan, false}},
		{1, 10, Assignment{ColorCyan, false}},
		{0.5, 10, Assignment{ColorGreen, false}},
		{0, 10, Assignment{ColorGreen, false}},
	}
	for _, c := range cases {
		if got := Map(c.band, c.overall); got != c.want {
			t.Fatalf("Map(%v, %v): expected %+v, got %+v", c.band, c.overall, c.want, got)
		}
	}
}

func TestMapSilentSpectrum(t *testing.T) {
	if got := Map(0, 0); got != (Assignment{Color: ColorGreen}) {
		t.Fatalf("expected dim green for silent spectrum, got %+v", got)
	}
	if got := Map(5, 0); got != (Assignment{Color: ColorGreen}) {
		t.Fatalf("expected dim green for zero overall, got %+v", got)
	}
}

func TestMapIsNotCachedAcrossCalls(t *testing.T) {
	first := Map(9.5, 10)
	second := Map(10, 10)
	if first == second {
		t.Fatalf("distinct ratios mapped to the same assignment: %+v", first)
	}
}
