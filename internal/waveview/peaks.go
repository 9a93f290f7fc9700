package waveview

import (
	"math"
	"math/rand"
)

// Peak is the min/max amplitude pair for one pixel column.
type Peak struct {
	Min float64
	Max float64
}

// Waveform holds decoded audio samples and renders pixel-column peaks for a
// viewport window. Samples are normalized to [-1, 1].
type Waveform struct {
	samples    []float64
	sampleRate int
}

// NewWaveform wraps a sample buffer at the given rate.
func NewWaveform(samples []float64, sampleRate int) *Waveform {
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	return &Waveform{samples: samples, sampleRate: sampleRate}
}

// Duration returns the total length of the waveform in seconds.
func (w *Waveform) Duration() float64 {
	return float64(len(w.samples)) / float64(w.sampleRate)
}

// Peaks reduces the window [startTime, endTime) to one min/max pair per
// pixel column. Columns beyond the end of the samples are zero.
func (w *Waveform) Peaks(startTime, endTime float64, columns int) []Peak {
	if columns <= 0 {
		return nil
	}
	out := make([]Peak, columns)
	if endTime <= startTime || len(w.samples) == 0 {
		return out
	}

	perColumn := (endTime - startTime) / float64(columns)
	for col := 0; col < columns; col++ {
		lo := int(math.Floor((startTime + float64(col)*perColumn) * float64(w.sampleRate)))
		hi := int(math.Ceil((startTime + float64(col+1)*perColumn) * float64(w.sampleRate)))
		if lo < 0 {
			lo = 0
		}
		if hi > len(w.samples) {
			hi = len(w.samples)
		}
		if lo >= hi {
			continue
		}
		p := Peak{Min: w.samples[lo], Max: w.samples[lo]}
		for i := lo + 1; i < hi; i++ {
			s := w.samples[i]
			if s < p.Min {
				p.Min = s
			}
			if s > p.Max {
				p.Max = s
			}
		}
		out[col] = p
	}
	return out
}

// Synthetic generates a deterministic demo waveform: a few mixed tones with
// a slow envelope and light noise. Used when no audio source is configured.
func Synthetic(duration float64, sampleRate int, seed int64) *Waveform {
	if sampleRate <= 0 {
		sampleRate = 8000
	}
	n := int(duration * float64(sampleRate))
	rng := rand.New(rand.NewSource(seed))
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		env := 0.6 + 0.4*math.Sin(2*math.Pi*t/7.5)
		s := 0.5*math.Sin(2*math.Pi*220*t) +
			0.3*math.Sin(2*math.Pi*330*t) +
			0.1*rng.NormFloat64()
		samples[i] = clampSample(s * env * 0.6)
	}
	return NewWaveform(samples, sampleRate)
}

func clampSample(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
