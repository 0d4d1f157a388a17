package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestVisitorLog(t *testing.T) {
	s := setupTest(t)
	var logged []string
	s.visitors.logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   bool
	}{
		{"page view", "/", nil, true},
		{"fragment", "/experience-content", nil, true},
		{"static asset", "/static/portfolio.css", nil, false},
		{"health check", "/healthz", nil, false},
		{"do not track", "/", map[string]string{"DNT": "1"}, false},
		{"crawler", "/", map[string]string{"User-Agent": "Googlebot/2.1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logged = nil
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			do(s, req)
			if got := len(logged) == 1; got != tt.want {
				t.Fatalf("logged %q, want logged=%v", logged, tt.want)
			}
			if tt.want && strings.Contains(logged[0], "192.0.2.1") {
				t.Errorf("raw IP leaked into log: %s", logged[0])
			}
		})
	}
}

func TestHashIPStable(t *testing.T) {
	v := newVisitorLog()
	a, b := v.hashIP("10.0.0.1"), v.hashIP("10.0.0.1")
	if a != b {
		t.Errorf("hash not stable: %s != %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("hash length %d, want 16", len(a))
	}
	if a == v.hashIP("10.0.0.2") {
		t.Error("different IPs hashed the same")
	}
	if a == newVisitorLog().hashIP("10.0.0.1") {
		t.Error("hash should change with the salt")
	}
}
