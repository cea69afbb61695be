package main

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/hamed0406/pinglight/internal/config"
	"github.com/hamed0406/pinglight/internal/probe"
)

const (
	AppName    = "pinglight"
	AppVersion = "0.1.0"
	AppDesc    = "turns ICMP round-trip latency to one host into a color signal"
)

func createCliApp() *cli.App {
	return &cli.App{
		Name:           AppName,
		Version:        AppVersion,
		Usage:          AppDesc,
		Flags:          createCliFlags(),
		Commands:       createCommands(),
		DefaultCommand: "serve",
	}
}

func createCliFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML config file; watched for changes while serving",
			EnvVars: []string{"PINGLIGHT_CONFIG"},
			Value:   "pinglight.yaml",
		},
		&cli.StringFlag{
			Name:    "address",
			Aliases: []string{"a"},
			Usage:   "host or IP to ping (overrides ping_address)",
		},
		&cli.IntFlag{
			Name:    "interval",
			Aliases: []string{"i"},
			Usage:   "seconds between polls (overrides polling_interval_seconds)",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "echo requests per poll (overrides ping_count)",
		},
		&cli.StringFlag{
			Name:  "listen",
			Usage: "HTTP API bind address, empty to disable (overrides listen_addr)",
		},
		&cli.StringFlag{
			Name:  "log-dir",
			Usage: "log directory (overrides log_dir)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error (overrides log_level)",
		},
	}
}

func createCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:   "serve",
			Usage:  "poll on the configured interval and serve the latest signal",
			Action: runServe,
		},
		{
			Name:   "once",
			Usage:  "run one polling cycle and print the signal as JSON",
			Action: runOnce,
		},
		{
			Name:   "check",
			Usage:  "validate the configuration with a single ping",
			Action: runCheck,
		},
		{
			Name:    "version",
			Aliases: []string{"v"},
			Usage:   "show version and platform details",
			Action: func(c *cli.Context) error {
				fmt.Printf("%s v%s\n", AppName, AppVersion)
				fmt.Printf("platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
				fmt.Printf("ping count flag: %s\n", probe.CountFlag(runtime.GOOS))
				return nil
			},
		},
	}
}

// applyFlags layers explicitly set flags over cfg.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet("address") {
		cfg.PingAddress = c.String("address")
	}
	if c.IsSet("interval") {
		cfg.PollingIntervalSeconds = c.Int("interval")
	}
	if c.IsSet("count") {
		cfg.PingCount = c.Int("count")
	}
	if c.IsSet("listen") {
		cfg.ListenAddr = c.String("listen")
	}
	if c.IsSet("log-dir") {
		cfg.LogDir = c.String("log-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
}

func buildConfig(c *cli.Context) (config.Config, error) {
	cfg, err := config.Read(c.String("config"))
	if err != nil {
		return cfg, err
	}
	applyFlags(c, &cfg)
	return cfg, cfg.Validate()
}
