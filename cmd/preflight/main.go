// cmd/preflight/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hamed0406/pinglight/internal/config"
	"github.com/hamed0406/pinglight/internal/probe"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	bin, err := exec.LookPath("ping")
	if err != nil {
		fail("ping not found on PATH: " + err.Error())
	}
	ok(fmt.Sprintf("ping=%s (count flag %s)", bin, probe.CountFlag(runtime.GOOS)))

	path := strings.TrimSpace(os.Getenv("PINGLIGHT_CONFIG"))
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		path = "pinglight.yaml"
	}
	if _, err := os.Stat(path); err != nil {
		warn(path + " not readable; using defaults and environment only.")
	}

	cfg, err := config.Load(path)
	if config.IsMissingAddress(err) {
		fail("no ping address: set ping_address in " + path + " or PING_ADDRESS.")
	}
	if err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("ping_address=%s every %ds, %d pings", cfg.PingAddress, cfg.PollingIntervalSeconds, cfg.PingCount))

	host := probe.Diagnose(context.Background(), cfg.PingAddress)
	switch host.Class {
	case "RESOLVES", "IP_LITERAL":
		ok("address " + strings.ToLower(host.Class))
	default:
		warn("address does not resolve (" + host.Class + "); polls will report failure.")
	}

	if cfg.ListenAddr == "" {
		warn("API disabled (listen_addr empty); the signal is only visible in logs.")
		ok("preflight passed")
		return
	}
	ok("listen_addr=" + cfg.ListenAddr)

	if len(cfg.AdminAPIKeys) == 0 {
		warn("ADMIN_API_KEYS is empty; anyone reaching the API can change the ping address.")
	}
	if len(cfg.PublicAPIKeys) == 0 && len(cfg.AdminAPIKeys) == 0 {
		warn("no API keys set; read routes are open.")
	}
	if len(cfg.AllowedOrigins) == 0 {
		warn("ALLOWED_ORIGINS empty; any browser origin may read the signal.")
	} else {
		ok("ALLOWED_ORIGINS=" + strings.Join(cfg.AllowedOrigins, ","))
	}

	ok("preflight passed")
}
