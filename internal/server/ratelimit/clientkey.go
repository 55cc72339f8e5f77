package ratelimit

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientKeyFunc derives the rate-limit key of a request.
type ClientKeyFunc func(r *http.Request) string

// ClientIP keys requests by the direct peer address. When the peer is one
// of trusted, the right-most X-Forwarded-For entry that is not itself a
// trusted proxy is used instead. With no trusted prefixes the header is
// ignored entirely, so clients cannot pick their own key.
func ClientIP(trusted []netip.Prefix) ClientKeyFunc {
	return func(r *http.Request) string {
		peer := peerAddr(r.RemoteAddr)
		if !peer.IsValid() {
			return r.RemoteAddr
		}
		if !isTrusted(peer, trusted) {
			return peer.String()
		}

		// Proxies may append their hop as a separate header line.
		hops := strings.Split(strings.Join(r.Header.Values("X-Forwarded-For"), ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err != nil {
				break
			}
			addr = addr.Unmap()
			if !isTrusted(addr, trusted) {
				return addr.String()
			}
		}
		return peer.String()
	}
}

func peerAddr(remote string) netip.Addr {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}
	}
	return addr.Unmap()
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}
