package render

// ColorKind is one of the six terminal colors a band can light up with.
type ColorKind uint8

const (
	ColorGreen ColorKind = iota
	ColorCyan
	ColorBlue
	ColorMagenta
	ColorYellow
	ColorRed

	colorKindCount
)

// Assignment is a band's rendering attribute for one window: a color plus
// whether it is drawn with the bold attribute.
type Assignment struct {
	Color  ColorKind
	Bright bool
}

// thresholds is ordered highest first; the first matching bucket wins, and
// each bucket is lower-inclusive.
var thresholds = [...]struct {
	min float64
	a   Assignment
}{
	{1.0, Assignment{ColorRed, true}},
	{0.9, Assignment{ColorRed, false}},
	{0.8, Assignment{ColorYellow, true}},
	{0.7, Assignment{ColorYellow, false}},
	{0.6, Assignment{ColorMagenta, true}},
	{0.5, Assignment{ColorMagenta, false}},
	{0.4, Assignment{ColorBlue, true}},
	{0.3, Assignment{ColorBlue, false}},
	{0.2, Assignment{ColorCyan, true}},
	{0.1, Assignment{ColorCyan, false}},
}

// Map converts a band magnitude into a color assignment by comparing its
// ratio to the overall spectrum magnitude against fixed thresholds. A silent
// spectrum maps to dim green.
func Map(band, overall float64) Assignment {
	if overall <= 0 {
		return Assignment{Color: ColorGreen}
	}
	ratio := band / overall
	for _, t := range thresholds {
		if ratio >= t.min {
			return t.a
		}
	}
	return Assignment{Color: ColorGreen}
}
