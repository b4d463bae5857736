package utils

import (
	"net/http/httptest"
	"testing"
)

func TestRealClientIP(t *testing.T) {
	cases := []struct {
		name       string
		xForwarded string
		remoteAddr string
		want       string
	}{
		{"direct", "", "203.0.113.7:51234", "203.0.113.7"},
		{"single proxy hop", "198.51.100.4", "10.0.0.1:443", "198.51.100.4"},
		{"multiple hops keeps first", "198.51.100.4, 10.0.0.2, 10.0.0.1", "10.0.0.1:443", "198.51.100.4"},
		{"no port", "", "203.0.113.7", "203.0.113.7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xForwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.xForwarded)
			}
			if got := RealClientIP(req); got != tc.want {
				t.Errorf("RealClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}
