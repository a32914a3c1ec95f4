package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
)

// TrustedRealIP replaces RemoteAddr with the client IP reported by
// X-Real-IP or X-Forwarded-For, but only for connections from a trusted
// proxy. Entries are CIDRs or single IPs; invalid entries are skipped.
//
// X-Forwarded-For is read right to left and the first hop that is not a
// trusted proxy wins, so a client cannot spoof its address by prepending
// entries.
func TrustedRealIP(trusted []string) func(http.Handler) http.Handler {
	nets := parseTrusted(trusted)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if nets.contains(extractIP(r.RemoteAddr)) {
				if ip := nets.clientIP(r.Header); ip != nil {
					r.RemoteAddr = ip.String()
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

type trustedNets []*net.IPNet

func parseTrusted(entries []string) trustedNets {
	var nets trustedNets
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if _, network, err := net.ParseCIDR(entry); err == nil {
			nets = append(nets, network)
			continue
		}
		ip := net.ParseIP(entry)
		if ip == nil {
			slog.Warn("realip: skipping invalid trusted proxy", "entry", entry)
			continue
		}
		bits := 128
		if v4 := ip.To4(); v4 != nil {
			ip, bits = v4, 32
		}
		nets = append(nets, &net.IPNet{IP: ip, Mask: net.CIDRMask(bits, bits)})
	}
	return nets
}

func (nets trustedNets) contains(ip net.IP) bool {
	if ip == nil {
		return false
	}
	for _, network := range nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// clientIP returns the forwarded client address, or nil when the headers
// carry no valid one.
func (nets trustedNets) clientIP(h http.Header) net.IP {
	if rip := net.ParseIP(strings.TrimSpace(h.Get("X-Real-IP"))); rip != nil {
		return rip
	}

	hops := strings.Split(h.Get("X-Forwarded-For"), ",")
	var last net.IP
	for i := len(hops) - 1; i >= 0; i-- {
		ip := net.ParseIP(strings.TrimSpace(hops[i]))
		if ip == nil {
			break
		}
		last = ip
		if !nets.contains(ip) {
			return ip
		}
	}
	return last
}

// extractIP parses an IP address from a host:port string or plain IP.
func extractIP(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}
