package utils

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP resolves the originating client address for request logs.
// Behind a proxy, X-Forwarded-For accumulates one hop per comma; the first
// entry is the client.
func RealClientIP(r *http.Request) string {
	if xfwd := r.Header.Get("X-Forwarded-For"); xfwd != "" {
		first, _, _ := strings.Cut(xfwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
