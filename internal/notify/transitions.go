package notify

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hamed0406/pinglight/internal/domain"
)

// Transitions is an emitter that notifies only when the signal flips between
// failed and healthy. The first signal after start only alerts if it failed.
type Transitions struct {
	Notifier   Notifier
	Logger     *zap.Logger
	OnRecovery bool

	mu   sync.Mutex
	seen bool
	last bool // last Failed value
}

func NewTransitions(n Notifier, l *zap.Logger, onRecovery bool) *Transitions {
	return &Transitions{Notifier: n, Logger: l, OnRecovery: onRecovery}
}

func (t *Transitions) Emit(ctx context.Context, s domain.Signal) error {
	t.mu.Lock()
	changed := (!t.seen && s.Failed) || (t.seen && t.last != s.Failed)
	t.seen, t.last = true, s.Failed
	t.mu.Unlock()

	if !changed || (!s.Failed && !t.OnRecovery) {
		return nil
	}

	title := "Ping RECOVERED"
	if s.Failed {
		title = "Ping FAILING"
	}
	if err := t.Notifier.Notify(ctx, title, s); err != nil {
		t.Logger.Warn("notify_error", zap.String("address", s.Address), zap.Error(err))
		return fmt.Errorf("notify %s: %w", title, err)
	}
	t.Logger.Info("notify_sent", zap.String("address", s.Address), zap.String("title", title))
	return nil
}
