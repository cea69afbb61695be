package probe

import (
	"context"

	"go.uber.org/zap"

	"github.com/hamed0406/pinglight/internal/domain"
)

// Sampler runs the ping pipeline: Runner -> Parse -> Mean.
type Sampler struct {
	Runner Runner
	Logger *zap.Logger
}

func NewSampler(r Runner, l *zap.Logger) *Sampler {
	return &Sampler{Runner: r, Logger: l}
}

// Sample returns the mean round-trip time in milliseconds over count echo
// requests to address.
func (s *Sampler) Sample(ctx context.Context, address string, count int) (float64, error) {
	if address == "" {
		return 0, domain.ErrConfigMissing
	}
	raw, err := s.Runner.Run(ctx, address, count)
	if err != nil {
		s.Logger.Warn("ping_exec_error",
			zap.String("address", address),
			zap.Int("count", count),
			zap.Error(err),
		)
		return 0, err
	}

	samples, bad := Parse(raw)
	for _, e := range bad {
		s.Logger.Warn("ping_malformed_time", zap.String("address", address), zap.Error(e))
	}

	mean, err := Mean(samples)
	if err != nil {
		s.Logger.Warn("ping_no_samples",
			zap.String("address", address),
			zap.Int("count", count),
			zap.Int("malformed", len(bad)),
		)
		return 0, err
	}

	s.Logger.Info("ping_sampled",
		zap.String("address", address),
		zap.Int("count", count),
		zap.Int("replies", len(samples)),
		zap.Float64("mean_ms", mean),
	)
	return mean, nil
}
