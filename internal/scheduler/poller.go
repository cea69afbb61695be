package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hamed0406/pinglight/internal/config"
	"github.com/hamed0406/pinglight/internal/domain"
	"github.com/hamed0406/pinglight/internal/palette"
	"github.com/hamed0406/pinglight/internal/repo"
)

// ErrBusy is returned by Poll when another cycle still holds the probe.
var ErrBusy = errors.New("ping cycle already running")

// Sampler returns the mean round-trip time in ms for count pings to address.
type Sampler interface {
	Sample(ctx context.Context, address string, count int) (float64, error)
}

// Poller runs sampling cycles. Periodic polls and config validation share one
// slot, so at most one ping process runs at a time.
type Poller struct {
	Logger  *zap.Logger
	Sampler Sampler
	Scheme  palette.Scheme
	Emitter repo.Emitter

	cfg  atomic.Pointer[config.Config]
	slot chan struct{}

	mu       sync.Mutex
	cron     *cron.Cron
	entry    cron.EntryID
	interval time.Duration
	runCtx   context.Context
}

func NewPoller(
	logger *zap.Logger,
	sampler Sampler,
	scheme palette.Scheme,
	emitter repo.Emitter,
	cfg config.Config,
) *Poller {
	p := &Poller{
		Logger:  logger,
		Sampler: sampler,
		Scheme:  scheme,
		Emitter: emitter,
		slot:    make(chan struct{}, 1),
	}
	p.cfg.Store(&cfg)
	return p
}

// Config returns the snapshot the next cycle will use.
func (p *Poller) Config() config.Config {
	return *p.cfg.Load()
}

// Poll runs one full cycle with the configured sample count and emits the
// resulting signal. Failures become a failure-colored signal; the error is
// returned for the caller's information only.
func (p *Poller) Poll(ctx context.Context) (domain.Signal, error) {
	select {
	case p.slot <- struct{}{}:
	default:
		p.Logger.Warn("poll_skipped_busy")
		return domain.Signal{}, ErrBusy
	}
	defer func() { <-p.slot }()

	cfg := p.Config()
	sig, err := p.cycle(ctx, cfg)
	if eerr := p.Emitter.Emit(ctx, sig); eerr != nil {
		p.Logger.Warn("signal_emit_error", zap.String("address", sig.Address), zap.Error(eerr))
	}
	return sig, err
}

func (p *Poller) cycle(ctx context.Context, cfg config.Config) (domain.Signal, error) {
	if cfg.PingAddress == "" {
		p.Logger.Warn("poll_no_address")
		return domain.NewFailureSignal("", domain.ErrConfigMissing, p.Scheme.Failure()), domain.ErrConfigMissing
	}
	mean, err := p.Sampler.Sample(ctx, cfg.PingAddress, cfg.PingCount)
	if err != nil {
		p.Logger.Warn("poll_failed", zap.String("address", cfg.PingAddress), zap.Error(err))
		return domain.NewFailureSignal(cfg.PingAddress, err, p.Scheme.Failure()), err
	}
	sig := domain.NewReadingSignal(cfg.PingAddress, mean, p.Scheme.ColorFor(mean))
	p.Logger.Info("poll_ok",
		zap.String("address", cfg.PingAddress),
		zap.Float64("mean_ms", mean),
		zap.String("color", sig.Color),
	)
	return sig, nil
}

// ApplyConfig installs cfg for later cycles and validates reachability with a
// single ping. It does not emit a signal. It waits for a running cycle to
// finish rather than skipping.
func (p *Poller) ApplyConfig(ctx context.Context, cfg config.Config) bool {
	p.cfg.Store(&cfg)
	p.reschedule(cfg.Interval())

	if cfg.PingAddress == "" {
		p.Logger.Warn("config_apply_error", zap.Error(domain.ErrConfigMissing))
		return false
	}

	select {
	case p.slot <- struct{}{}:
	case <-ctx.Done():
		p.Logger.Warn("config_apply_error", zap.String("address", cfg.PingAddress), zap.Error(ctx.Err()))
		return false
	}
	defer func() { <-p.slot }()

	if _, err := p.Sampler.Sample(ctx, cfg.PingAddress, 1); err != nil {
		p.Logger.Warn("config_apply_error", zap.String("address", cfg.PingAddress), zap.Error(err))
		return false
	}
	p.Logger.Info("config_updated",
		zap.String("address", cfg.PingAddress),
		zap.Int("polling_interval_seconds", cfg.PollingIntervalSeconds),
		zap.Int("ping_count", cfg.PingCount),
	)
	return true
}

// Run polls immediately, then on every interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Config().Interval()
	if interval <= 0 {
		p.Logger.Info("poller_disabled")
		return
	}

	cl := cron.PrintfLogger(zap.NewStdLog(p.Logger))
	c := cron.New(
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)

	p.mu.Lock()
	p.cron = c
	p.runCtx = ctx
	p.interval = interval
	p.entry = c.Schedule(cron.Every(interval), cron.FuncJob(p.tick))
	p.mu.Unlock()

	c.Start()
	p.Logger.Info("poller_started", zap.Duration("interval", interval))

	// immediate pass
	p.tick()

	<-ctx.Done()
	<-c.Stop().Done()

	p.mu.Lock()
	p.cron = nil
	p.mu.Unlock()
	p.Logger.Info("poller_stopped")
}

func (p *Poller) tick() {
	p.mu.Lock()
	ctx := p.runCtx
	p.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return
	}
	_, _ = p.Poll(ctx)
}

func (p *Poller) reschedule(interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cron == nil || interval <= 0 || interval == p.interval {
		return
	}
	p.cron.Remove(p.entry)
	p.entry = p.cron.Schedule(cron.Every(interval), cron.FuncJob(p.tick))
	p.Logger.Info("poller_rescheduled",
		zap.Duration("from", p.interval),
		zap.Duration("to", interval),
	)
	p.interval = interval
}
