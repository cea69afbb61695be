package probe

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// HostStatus classifies a ping address by what the OS resolver knows about it.
// It is used to explain failed probes, never to decide the latency.
type HostStatus struct {
	Host          string
	IPs           []net.IP
	CNAME         string
	Class         string // "IP_LITERAL" | "RESOLVES" | "NXDOMAIN" | "SERVFAIL_or_TIMEOUT" | "INVALID_NAME"
	ResolverError string
}

var dnsTimeout = 3 * time.Second

func Diagnose(ctx context.Context, host string) HostStatus {
	s := HostStatus{Host: strings.TrimSpace(host)}
	if s.Host == "" || strings.ContainsAny(s.Host, " /\t") || strings.HasPrefix(s.Host, "-") {
		s.Class = "INVALID_NAME"
		return s
	}
	if ip := net.ParseIP(s.Host); ip != nil {
		s.IPs = []net.IP{ip}
		s.Class = "IP_LITERAL"
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()
	r := &net.Resolver{}

	ips, err := r.LookupIP(ctx, "ip", s.Host)
	switch {
	case err == nil && len(ips) > 0:
		s.IPs = ips
		s.Class = "RESOLVES"
	case err != nil:
		s.ResolverError = err.Error()
		s.Class = "SERVFAIL_or_TIMEOUT"
		var de *net.DNSError
		if errors.As(err, &de) && de.IsNotFound {
			s.Class = "NXDOMAIN"
		}
	default:
		s.Class = "NXDOMAIN"
	}

	if s.Class == "RESOLVES" {
		if cname, err := r.LookupCNAME(ctx, s.Host); err == nil && !strings.EqualFold(cname, s.Host+".") {
			s.CNAME = strings.TrimSuffix(cname, ".")
		}
	}
	return s
}
