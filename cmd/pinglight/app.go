package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/hamed0406/pinglight/internal/config"
	"github.com/hamed0406/pinglight/internal/httpapi"
	apimw "github.com/hamed0406/pinglight/internal/httpapi/middleware"
	"github.com/hamed0406/pinglight/internal/logging"
	"github.com/hamed0406/pinglight/internal/notify"
	"github.com/hamed0406/pinglight/internal/palette"
	"github.com/hamed0406/pinglight/internal/probe"
	"github.com/hamed0406/pinglight/internal/repo"
	"github.com/hamed0406/pinglight/internal/repo/memory"
	"github.com/hamed0406/pinglight/internal/scheduler"
)

type app struct {
	logger *zap.Logger
	store  *memory.Store
	poller *scheduler.Poller
}

func newApp(cfg config.Config) (*app, error) {
	logger, err := logging.NewLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	var runner probe.Runner = probe.NewExecRunner(cfg.ProbeTimeout())
	if cfg.ProbeRetries > 0 {
		runner = &probe.RetryRunner{
			Inner:    runner,
			Attempts: cfg.ProbeRetries + 1,
			Backoff:  cfg.RetryBackoff(),
		}
	}

	scheme := palette.Default()
	if err := scheme.Validate(); err != nil {
		return nil, err
	}

	store := memory.New()
	emitters := repo.Emitters{store}
	var alerts notify.Multi
	if slack := notify.NewSlack(cfg.SlackWebhook); slack != nil {
		alerts = append(alerts, slack)
	}
	if len(alerts) > 0 {
		emitters = append(emitters, notify.NewTransitions(alerts, logger, true))
	}

	poller := scheduler.NewPoller(logger, probe.NewSampler(runner, logger), scheme, emitters, cfg)
	return &app{logger: logger, store: store, poller: poller}, nil
}

func runServe(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), 1)
	}
	a, err := newApp(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer a.logger.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if path := c.String("config"); path != "" {
		if _, err := os.Stat(filepath.Dir(path)); err == nil {
			go func() {
				err := config.Watch(ctx, path, a.logger, func(next config.Config) {
					applyFlags(c, &next)
					if err := next.Validate(); err != nil {
						a.logger.Warn("config_reload_invalid", zap.Error(err))
						return
					}
					a.poller.ApplyConfig(ctx, next)
				})
				if err != nil {
					a.logger.Warn("config_watch_failed", zap.Error(err))
				}
			}()
		}
	}

	var srv *http.Server
	if cfg.ListenAddr != "" {
		api := httpapi.NewServer(a.logger, a.store, a.poller)
		keys := apimw.Keys{Public: cfg.PublicAPIKeys, Admin: cfg.AdminAPIKeys}
		srv = &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           api.Router(keys, cfg.AllowedOrigins, cfg.RequestsPerMin, cfg.RequestBurst),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.logger.Info("api_listen", zap.String("addr", cfg.ListenAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("api_listen_error", zap.Error(err))
				stop()
			}
		}()
	}

	a.poller.Run(ctx)

	if srv != nil {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}
	return nil
}

func runOnce(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), 1)
	}
	a, err := newApp(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer a.logger.Sync()

	sig, pollErr := a.poller.Poll(c.Context)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sig); err != nil {
		return err
	}
	if pollErr != nil {
		return cli.Exit("", 1)
	}
	return nil
}

func runCheck(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("config: %v", err), 1)
	}
	a, err := newApp(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer a.logger.Sync()

	if a.poller.ApplyConfig(c.Context, cfg) {
		fmt.Printf("ok: %s answers ping\n", cfg.PingAddress)
		return nil
	}
	host := probe.Diagnose(c.Context, cfg.PingAddress)
	msg := fmt.Sprintf("%s did not answer ping (dns=%s)", cfg.PingAddress, host.Class)
	if host.ResolverError != "" {
		msg += ": " + host.ResolverError
	}
	return cli.Exit(msg, 1)
}
