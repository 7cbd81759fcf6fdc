package api

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// resolveClientIP picks the effective client address: X-Forwarded-For
// entries first, then X-Real-IP, then the connection's remote address.
// Loopback, private-range and link-local addresses are not usable signals
// for geo-targeted offers, so they are skipped; if nothing public remains,
// the ip query parameter is the fallback. Empty return means unresolvable.
func resolveClientIP(r *http.Request) string {
	var candidates []string
	for _, part := range strings.Split(r.Header.Get("X-Forwarded-For"), ",") {
		candidates = append(candidates, part)
	}
	candidates = append(candidates, r.Header.Get("X-Real-IP"))
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		candidates = append(candidates, host)
	} else {
		candidates = append(candidates, r.RemoteAddr)
	}

	for _, cand := range candidates {
		addr, err := netip.ParseAddr(strings.TrimSpace(cand))
		if err != nil {
			continue
		}
		if usableAddr(addr) {
			return addr.String()
		}
	}
	return strings.TrimSpace(r.URL.Query().Get("ip"))
}

// usableAddr rejects 127.0.0.1/::1, 10/8, 172.16/12, 192.168/16, fe80:: and
// the unspecified address.
func usableAddr(a netip.Addr) bool {
	return !a.IsLoopback() && !a.IsPrivate() && !a.IsLinkLocalUnicast() && !a.IsUnspecified()
}
