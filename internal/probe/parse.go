package probe

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoSamples means the ping output held no usable round-trip times,
// e.g. every request was lost.
var ErrNoSamples = errors.New("no round-trip times in ping output")

// Samples are round-trip times in milliseconds, in order of appearance.
type Samples []float64

// Matches "time=12", "time=12.3" and also malformed runs like "time=1.2.3",
// which are rejected by ParseFloat below.
var timeToken = regexp.MustCompile(`time=\d+(\.\d+)*`)

// Parse extracts every time= value from raw. Tokens that do not parse as a
// number are skipped and reported in the second return value.
func Parse(raw string) (Samples, []error) {
	tokens := timeToken.FindAllString(raw, -1)
	out := make(Samples, 0, len(tokens))
	var bad []error
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(strings.TrimPrefix(tok, "time="), 64)
		if err != nil {
			bad = append(bad, &MalformedSampleError{Token: tok, Err: err})
			continue
		}
		out = append(out, v)
	}
	return out, bad
}

// Mean is the arithmetic mean of s. An empty set is ErrNoSamples.
func Mean(s Samples) (float64, error) {
	if len(s) == 0 {
		return 0, ErrNoSamples
	}
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / float64(len(s)), nil
}
