package domain

import (
	"errors"
	"fmt"
	"time"
)

// SignalName is the fixed display name attached to every signal.
const SignalName = "ICMP Ping"

// ErrConfigMissing means no ping address is configured; no probe may run.
var ErrConfigMissing = errors.New("no ping address configured")

// Signal is the unit handed to the rendering side once per cycle.
type Signal struct {
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Message   string    `json:"message"`
	Color     string    `json:"color"`
	LatencyMS *float64  `json:"latency_ms"` // nil on failure
	Failed    bool      `json:"failed"`
	CheckedAt time.Time `json:"checked_at"`
}

func NewReadingSignal(address string, meanMS float64, color string) Signal {
	lat := meanMS
	return Signal{
		Address:   address,
		Name:      SignalName,
		Message:   fmt.Sprintf("Average response time for %s: %.2fms", address, meanMS),
		Color:     color,
		LatencyMS: &lat,
		CheckedAt: time.Now().UTC(),
	}
}

func NewFailureSignal(address string, cause error, color string) Signal {
	msg := fmt.Sprintf("Ping failed for %s: %v", address, cause)
	if address == "" {
		msg = cause.Error()
	}
	return Signal{
		Address:   address,
		Name:      SignalName,
		Message:   msg,
		Color:     color,
		Failed:    true,
		CheckedAt: time.Now().UTC(),
	}
}
