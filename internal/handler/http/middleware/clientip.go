package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// IPExtractor extracts the client IP from a request.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address and ignores proxy headers.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyExtractor honours X-Forwarded-For and X-Real-IP only when the
// peer address is one of the trusted proxies, so clients cannot rotate their
// apparent address by forging headers.
type TrustedProxyExtractor struct {
	trusted []netip.Prefix
}

// NewTrustedProxyExtractor returns an extractor trusting the given prefixes.
func NewTrustedProxyExtractor(trusted []netip.Prefix) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{trusted: trusted}
}

// ParseTrustedProxies parses IPs and CIDR ranges. A bare IP becomes a /32 or /128.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: must be an IP address or CIDR range", entry)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func (e *TrustedProxyExtractor) isTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range e.trusted {
		if prefix.Contains(addr.Unmap()) {
			return true
		}
	}
	return false
}

// ExtractIP prefers the first X-Forwarded-For entry, then X-Real-IP, then the
// peer address. Headers from untrusted peers are ignored and logged.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	xff := r.Header.Get("X-Forwarded-For")
	xri := r.Header.Get("X-Real-IP")

	if !e.isTrusted(r.RemoteAddr) {
		if xff != "" || xri != "" {
			slog.Warn("ignoring forwarding headers from untrusted peer",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff),
				slog.String("x_real_ip", xri))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String(), nil
		}
	}
	if ip := net.ParseIP(strings.TrimSpace(xri)); ip != nil {
		return ip.String(), nil
	}
	return extractIPFromAddr(r.RemoteAddr)
}

// extractIPFromAddr accepts "host:port" or a bare IP.
func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		if ip := net.ParseIP(addr); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}
