package spectral

import (
	"encoding/binary"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/olivier-w/beatscope/internal/audio"
)

const (
	// BandCount is the number of frequency bands; each band colors one
	// row-pair of the 26-line video frame.
	BandCount = 13

	// fftLen is the transform length: one complex input per 16-bit sample
	// in the window, left and right channels interleaved.
	fftLen = audio.WindowSize / 2

	// binsPerBand is the bin width of each band's magnitude range. The 13
	// bands tile the full spectrum; within its range each band skips the
	// first two bins as a local DC offset, mirroring the global baseline.
	binsPerBand = audio.WindowSize / 26
)

// Analysis holds the spectral measurements of one window.
type Analysis struct {
	// Magnitudes is the per-bin magnitude spectrum, fftLen entries.
	Magnitudes []float64
	// Baseline is the mean magnitude of bins 0 and 1, the low-frequency
	// reference.
	Baseline float64
	// Overall is the mean magnitude across all bins; band ratios are
	// normalized against it.
	Overall float64
	// Bands holds the mean magnitude of each band's range.
	Bands [BandCount]float64
}

// Analyzer computes per-window spectra. It holds an FFT plan and scratch
// buffers, so one Analyzer should be reused across windows. Not safe for
// concurrent use.
type Analyzer struct {
	fft *fourier.CmplxFFT
	in  []complex128
	out []complex128
	re  []float64
	im  []float64
}

// New creates an Analyzer for audio.WindowSize-byte windows.
func New() *Analyzer {
	return &Analyzer{
		fft: fourier.NewCmplxFFT(fftLen),
		in:  make([]complex128, fftLen),
		out: make([]complex128, fftLen),
		re:  make([]float64, fftLen),
		im:  make([]float64, fftLen),
	}
}

// Analyze interprets the window as interleaved signed 16-bit LE samples,
// runs a forward FFT and derives the baseline, overall and band magnitudes.
func (a *Analyzer) Analyze(window []byte) (Analysis, error) {
	if len(window) != audio.WindowSize {
		return Analysis{}, fmt.Errorf("spectral: window is %d bytes, want %d", len(window), audio.WindowSize)
	}

	for i := range a.in {
		s := int16(binary.LittleEndian.Uint16(window[2*i:]))
		a.in[i] = complex(float64(s), 0)
	}
	a.out = a.fft.Coefficients(a.out, a.in)

	for i, c := range a.out {
		a.re[i] = real(c)
		a.im[i] = imag(c)
	}
	mag := make([]float64, fftLen)
	vecmath.Magnitude(mag, a.re, a.im)

	res := Analysis{
		Magnitudes: mag,
		Baseline:   (mag[0] + mag[1]) / 2,
		Overall:    mean(mag),
		Bands:      bandMeans(mag),
	}
	return res, nil
}

// bandMeans averages each band's range [start+2, start+binsPerBand+1],
// start = band * binsPerBand. Bins start and start+1 are deliberately
// excluded.
func bandMeans(mag []float64) [BandCount]float64 {
	var bands [BandCount]float64
	for b := range bands {
		start := b * binsPerBand
		sum := 0.0
		for i := start + 2; i <= start+binsPerBand+1; i++ {
			sum += mag[i]
		}
		bands[b] = sum / binsPerBand
	}
	return bands
}

func mean(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v {
		sum += x
	}
	return sum / float64(len(v))
}
