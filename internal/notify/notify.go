package notify

import (
	"context"
	"errors"

	"github.com/hamed0406/pinglight/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, title string, s domain.Signal) error
}

type Multi []Notifier

func (m Multi) Notify(ctx context.Context, title string, s domain.Signal) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, title, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
