package repo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hamed0406/pinglight/internal/domain"
	"github.com/hamed0406/pinglight/internal/repo"
	"github.com/hamed0406/pinglight/internal/repo/memory"
)

// Compile-time interface satisfaction checks.
// Using external test package avoids import cycle.
func TestInterfaceSatisfaction(t *testing.T) {
	var _ repo.SignalStore = memory.New()
	var _ repo.Emitter = repo.Emitters{}
}

type countEmitter struct {
	n   int
	err error
}

func (c *countEmitter) Emit(ctx context.Context, s domain.Signal) error {
	c.n++
	return c.err
}

func TestEmitters_FansOutAndJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	a, b := &countEmitter{}, &countEmitter{err: boom}
	err := repo.Emitters{a, nil, b}.Emit(context.Background(), domain.Signal{})
	if a.n != 1 || b.n != 1 {
		t.Fatalf("want each emitter called once, got a=%d b=%d", a.n, b.n)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("want joined error, got %v", err)
	}
}
