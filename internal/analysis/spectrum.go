package analysis

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the magnitude of each non-negative frequency bin of
// the mean-removed signal.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	mean := stat.Mean(data, nil)
	centered := make([]float64, len(data))
	for i, v := range data {
		centered[i] = v - mean
	}

	fft := fourier.NewFFT(len(centered))
	coeffs := fft.Coefficients(nil, centered)
	ps := make([]float64, len(coeffs))
	for i, c := range coeffs {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the strongest non-zero frequency, in Hz, of a
// signal sampled every dt seconds, together with its power spectrum.
func DominantFrequency(data []float64, dt float64) (float64, []float64, error) {
	if len(data) < 4 {
		return 0, nil, fmt.Errorf("need at least 4 samples, got %d", len(data))
	}
	if dt <= 0 {
		return 0, nil, fmt.Errorf("sample interval must be positive, got %f", dt)
	}

	ps := PowerSpectrum(data)
	maxIdx := 1
	for i := 2; i < len(ps); i++ {
		if ps[i] > ps[maxIdx] {
			maxIdx = i
		}
	}

	fft := fourier.NewFFT(len(data))
	return fft.Freq(maxIdx) / dt, ps, nil
}
