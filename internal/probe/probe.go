package probe

import (
	"context"
	"fmt"
	"strings"
)

// Runner performs one ping invocation for address with count echo requests
// and returns the raw text it printed.
type Runner interface {
	Run(ctx context.Context, address string, count int) (string, error)
}

// ExecError is returned when the ping process could not run or exited
// non-zero.
type ExecError struct {
	Address string
	Args    []string
	Stderr  string
	Err     error
}

func (e *ExecError) Error() string {
	msg := "ping: " + e.Err.Error()
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *ExecError) Unwrap() error { return e.Err }

// MalformedSampleError reports a time= token whose value is not a number.
type MalformedSampleError struct {
	Token string
	Err   error
}

func (e *MalformedSampleError) Error() string {
	return fmt.Sprintf("malformed round-trip time %q: %v", e.Token, e.Err)
}

func (e *MalformedSampleError) Unwrap() error { return e.Err }

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
