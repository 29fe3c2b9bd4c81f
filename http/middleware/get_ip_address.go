package middleware

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/cryptodash"
)

// UnknownIP stands in for a client address that cannot be determined.
const UnknownIP = "0.0.0.0"

// forwardingHeaders are checked in order for the chain of addresses a request was proxied through.
var forwardingHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// Shared, benchmarking and carrier-grade NAT space that netip.Addr.IsPrivate does not cover.
var nonPublicPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stores the address of the client behind the dashboard's proxies
// in the request's context under [cryptodash.IpAddrKey].
// Navigation and request logs report it from there.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), cryptodash.IpAddrKey, ClientIP(r))
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP finds the public address a request originated from.
//
// Forwarding headers are read right to left, so the address closest to the dashboard's own proxy wins.
// Without a public forwarded address, the connection's remote address is used.
// ClientIP returns [UnknownIP] when neither yields an address.
func ClientIP(r *http.Request) string {
	for _, h := range forwardingHeaders {
		hops := strings.Split(r.Header.Get(h), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			if addr, ok := publicAddr(hops[i]); ok {
				return addr.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		return addr.Unmap().String()
	}

	return UnknownIP
}

func publicAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}

	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return netip.Addr{}, false
	}

	for _, p := range nonPublicPrefixes {
		if p.Contains(addr) {
			return netip.Addr{}, false
		}
	}

	return addr, true
}
