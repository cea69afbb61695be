package probe

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fake runner you can control
type fakeRunner struct {
	outs  []string
	errs  []error
	i     int
	calls []int
}

func (f *fakeRunner) Run(ctx context.Context, address string, count int) (string, error) {
	f.calls = append(f.calls, count)
	if f.i >= len(f.errs) {
		return "", errors.New("no more")
	}
	out, err := f.outs[f.i], f.errs[f.i]
	f.i++
	return out, err
}

func TestRetryRunner_SucceedsAfterRetry(t *testing.T) {
	f := &fakeRunner{
		outs: []string{"", "time=1 ms"},
		errs: []error{errors.New("first fail"), nil},
	}
	rr := &RetryRunner{Inner: f, Attempts: 3, Backoff: 10 * time.Millisecond}
	out, err := rr.Run(context.Background(), "example.com", 5)
	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if out != "time=1 ms" || len(f.calls) != 2 {
		t.Fatalf("out=%q calls=%v", out, f.calls)
	}
}

func TestRetryRunner_AllFailAnnotates(t *testing.T) {
	last := errors.New("fail2")
	f := &fakeRunner{outs: []string{"", ""}, errs: []error{errors.New("fail1"), last}}
	rr := &RetryRunner{Inner: f, Attempts: 2}
	_, err := rr.Run(context.Background(), "example.com", 1)
	if !errors.Is(err, last) {
		t.Fatalf("want wrapped last error, got %v", err)
	}
	if err.Error() != "after 2 attempts: fail2" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestRetryRunner_StopsOnCancel(t *testing.T) {
	f := &fakeRunner{outs: []string{"", ""}, errs: []error{errors.New("a"), errors.New("b")}}
	rr := &RetryRunner{Inner: f, Attempts: 2, Backoff: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := rr.Run(ctx, "example.com", 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if len(f.calls) != 1 {
		t.Fatalf("want a single call before cancel, got %d", len(f.calls))
	}
}
