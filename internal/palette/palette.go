package palette

import (
	"errors"
	"fmt"
	"math"
)

// FailureColor is reserved for cycles that produced no latency reading.
const FailureColor = "#ff0000"

// Scheme partitions [0, +inf) into len(Thresholds)+1 bands.
// Band i covers (Thresholds[i-1], Thresholds[i]]; the first band starts at 0
// and the last one is open-ended.
type Scheme struct {
	Thresholds   []float64
	Colors       []string
	FailureColor string
}

// Default is the green-to-red table used by the applet.
func Default() Scheme {
	return Scheme{
		Thresholds: []float64{30, 50, 70, 90, 110, 130, 150},
		Colors: []string{
			"#2ecc71", // <= 30ms
			"#27ae60",
			"#a3cb38",
			"#f1c40f",
			"#f39c12",
			"#e67e22",
			"#d35400",
			"#c0392b", // > 150ms
		},
		FailureColor: FailureColor,
	}
}

func (s Scheme) Validate() error {
	if len(s.Colors) != len(s.Thresholds)+1 {
		return fmt.Errorf("palette: %d colors for %d thresholds, want %d",
			len(s.Colors), len(s.Thresholds), len(s.Thresholds)+1)
	}
	if s.FailureColor == "" {
		return errors.New("palette: failure color is empty")
	}
	prev := 0.0
	for i, t := range s.Thresholds {
		if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 || (i > 0 && t <= prev) {
			return fmt.Errorf("palette: threshold %d (%v) must be finite, non-negative and increasing", i, t)
		}
		prev = t
	}
	for i, c := range s.Colors {
		if c == s.FailureColor {
			return fmt.Errorf("palette: band %d reuses the failure color %s", i, c)
		}
	}
	return nil
}

// BandIndex returns the band holding ms. Values on a threshold belong to the
// lower band.
func (s Scheme) BandIndex(ms float64) int {
	for i, t := range s.Thresholds {
		if ms <= t {
			return i
		}
	}
	return len(s.Thresholds)
}

// ColorFor maps a latency in milliseconds to its band color. NaN and negative
// values are not latencies and get the failure color.
func (s Scheme) ColorFor(ms float64) string {
	if math.IsNaN(ms) || ms < 0 {
		return s.FailureColor
	}
	return s.Colors[s.BandIndex(ms)]
}

func (s Scheme) Failure() string { return s.FailureColor }
