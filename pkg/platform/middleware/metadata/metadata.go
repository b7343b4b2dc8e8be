package metadata

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"estategate/pkg/requestcontext"
)

// Resolver derives the client IP of a request. Forwarding headers are only
// honoured when the direct peer is one of the trusted proxies; otherwise the
// peer address from RemoteAddr is the client.
type Resolver struct {
	trusted []netip.Prefix
}

// NewResolver parses trusted proxies given as CIDRs or bare addresses.
func NewResolver(trustedProxies []string) (*Resolver, error) {
	res := &Resolver{}
	for _, raw := range trustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
			}
			res.trusted = append(res.trusted, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", raw, err)
		}
		addr = addr.Unmap()
		res.trusted = append(res.trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return res, nil
}

// Middleware extracts client IP, User-Agent and the operator header from
// the request and adds them to the context for handlers and services.
// Apply it early in the chain.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientMetadata(r.Context(), res.ClientIP(r), r.Header.Get("User-Agent"))
		if op := strings.TrimSpace(r.Header.Get("X-Operator-ID")); op != "" {
			ctx = requestcontext.WithOperator(ctx, op)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIP returns the peer address unless the peer is a trusted proxy. Behind
// a trusted proxy X-Forwarded-For is walked from the right and the first
// untrusted hop wins; X-Real-IP is used when there is no X-Forwarded-For.
func (res *Resolver) ClientIP(r *http.Request) string {
	peer := peerHost(r.RemoteAddr)
	if !res.isTrusted(peer) {
		return peer
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		hops := strings.Split(xff, ",")
		for i := len(hops) - 1; i >= 0; i-- {
			hop := strings.TrimSpace(hops[i])
			addr, err := netip.ParseAddr(hop)
			if err != nil {
				return peer
			}
			if !res.isTrusted(hop) || i == 0 {
				return addr.Unmap().String()
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		if addr, err := netip.ParseAddr(xri); err == nil {
			return addr.Unmap().String()
		}
	}
	return peer
}

func (res *Resolver) isTrusted(host string) bool {
	if len(res.trusted) == 0 {
		return false
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range res.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// peerHost strips the port from RemoteAddr ("ip:port" or "[::1]:port").
func peerHost(remoteAddr string) string {
	if remoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
