package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

// ExecRunner shells out to the system ping utility.
type ExecRunner struct {
	Binary  string
	GOOS    string
	Timeout time.Duration // 0 means DefaultTimeout(count)
}

func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		Binary:  "ping",
		GOOS:    runtime.GOOS,
		Timeout: timeout,
	}
}

// CountFlag returns the repeat-count flag understood by ping on goos.
func CountFlag(goos string) string {
	if goos == "windows" {
		return "-n"
	}
	return "-c"
}

// DefaultTimeout bounds a run of count echo requests: ping paces requests at
// one per second, so allow two seconds each plus a fixed grace period.
func DefaultTimeout(count int) time.Duration {
	if count < 1 {
		count = 1
	}
	return time.Duration(count)*2*time.Second + 5*time.Second
}

func (r *ExecRunner) Args(address string, count int) []string {
	return []string{address, CountFlag(r.GOOS), strconv.Itoa(count)}
}

func (r *ExecRunner) Run(ctx context.Context, address string, count int) (string, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout(count)
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := r.Args(address, count)
	cmd := exec.CommandContext(cctx, r.Binary, args...)
	cmd.WaitDelay = time.Second
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("timed out after %s: %w", timeout, context.DeadlineExceeded)
		}
		return stdout.String(), &ExecError{
			Address: address,
			Args:    args,
			Stderr:  firstLine(stderr.String()),
			Err:     err,
		}
	}
	return stdout.String(), nil
}
