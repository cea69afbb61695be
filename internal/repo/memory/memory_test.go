package memory

import (
	"context"
	"testing"

	"github.com/hamed0406/pinglight/internal/domain"
)

func TestMemoryStore_LatestEmptyThenSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok := s.Latest(ctx); ok {
		t.Fatalf("expected no signal yet")
	}

	first := domain.NewReadingSignal("example.com", 12.5, "#2ecc71")
	second := domain.NewReadingSignal("example.com", 80, "#f1c40f")
	if err := s.Emit(ctx, first); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := s.Emit(ctx, second); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	got, ok := s.Latest(ctx)
	if !ok {
		t.Fatalf("expected a signal")
	}
	if got.Color != "#f1c40f" || got.Message != second.Message {
		t.Fatalf("only the newest signal should be kept, got %+v", got)
	}
}

func TestMemoryStore_SubscribeSeesNewest(t *testing.T) {
	ctx := context.Background()
	s := New()
	ch, cancel := s.Subscribe()
	defer cancel()

	_ = s.Emit(ctx, domain.NewReadingSignal("a", 10, "#1"))
	_ = s.Emit(ctx, domain.NewReadingSignal("a", 20, "#2"))

	got := <-ch
	if got.Color != "#2" {
		t.Fatalf("slow subscriber should get newest signal, got %+v", got)
	}
}

func TestMemoryStore_CancelClosesChannel(t *testing.T) {
	s := New()
	ch, cancel := s.Subscribe()
	cancel()
	cancel() // idempotent

	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
	// emitting after unsubscribe must not panic
	_ = s.Emit(context.Background(), domain.Signal{})
}
