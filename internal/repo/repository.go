package repo

import (
	"context"
	"errors"

	"github.com/hamed0406/pinglight/internal/domain"
)

// Emitter receives every signal the poller produces.
type Emitter interface {
	Emit(ctx context.Context, s domain.Signal) error
}

// SignalStore keeps the current reading only; there is no history.
type SignalStore interface {
	Emitter
	Latest(ctx context.Context) (domain.Signal, bool)
	Subscribe() (<-chan domain.Signal, func())
}

// Emitters fans a signal out to every non-nil emitter and joins their errors.
type Emitters []Emitter

func (es Emitters) Emit(ctx context.Context, s domain.Signal) error {
	var errs []error
	for _, e := range es {
		if e == nil {
			continue
		}
		if err := e.Emit(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
