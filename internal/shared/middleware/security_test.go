package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsHostAllowed(t *testing.T) {
	tests := []struct {
		name         string
		host         string
		allowedHosts []string
		want         bool
	}{
		{
			name:         "empty allowed hosts accepts anything",
			host:         "smartspend.app",
			allowedHosts: []string{},
			want:         true,
		},
		{
			name:         "exact match with port",
			host:         "smartspend.app:8080",
			allowedHosts: []string{"smartspend.app:8080"},
			want:         true,
		},
		{
			name:         "host without port matches allowed with port",
			host:         "smartspend.app",
			allowedHosts: []string{"smartspend.app:8080"},
			want:         true,
		},
		{
			name:         "host with port matches allowed without port",
			host:         "smartspend.app:8080",
			allowedHosts: []string{"smartspend.app"},
			want:         true,
		},
		{
			name:         "localhost with port",
			host:         "localhost:3000",
			allowedHosts: []string{"localhost"},
			want:         true,
		},
		{
			name:         "IPv6 loopback with port",
			host:         "[::1]:8080",
			allowedHosts: []string{"[::1]:8080"},
			want:         true,
		},
		{
			name:         "bare IPv6 matches bracketed with port",
			host:         "::1",
			allowedHosts: []string{"[::1]:8080"},
			want:         true,
		},
		{
			name:         "bracketed IPv6 with port matches bare",
			host:         "[::1]:8080",
			allowedHosts: []string{"::1"},
			want:         true,
		},
		{
			name:         "IPv6 full address with port",
			host:         "[2001:0db8:85a3::8a2e:0370:7334]:443",
			allowedHosts: []string{"2001:0db8:85a3::8a2e:0370:7334"},
			want:         true,
		},
		{
			name:         "IPv6 link-local with zone",
			host:         "[fe80::1%lo0]:8080",
			allowedHosts: []string{"fe80::1%lo0"},
			want:         true,
		},
		{
			name:         "case insensitive",
			host:         "SmartSpend.APP:8080",
			allowedHosts: []string{"smartspend.app"},
			want:         true,
		},
		{
			name:         "host with surrounding whitespace",
			host:         "  smartspend.app:8080  ",
			allowedHosts: []string{"smartspend.app"},
			want:         true,
		},
		{
			name:         "allowed entry with surrounding whitespace",
			host:         "smartspend.app:8080",
			allowedHosts: []string{"  smartspend.app  "},
			want:         true,
		},
		{
			name:         "match later in list",
			host:         "api.smartspend.app",
			allowedHosts: []string{"smartspend.app", "app.smartspend.app", "api.smartspend.app"},
			want:         true,
		},
		{
			name:         "unknown host",
			host:         "evil.com",
			allowedHosts: []string{"smartspend.app", "app.smartspend.app"},
			want:         false,
		},
		{
			name:         "subdomain does not match parent",
			host:         "staging.smartspend.app",
			allowedHosts: []string{"smartspend.app"},
			want:         false,
		},
		{
			name:         "different IPv6 address",
			host:         "[::2]:8080",
			allowedHosts: []string{"[::1]:8080"},
			want:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsHostAllowed(tt.host, tt.allowedHosts)
			if got != tt.want {
				t.Errorf("IsHostAllowed(%q, %v) = %v, want %v",
					tt.host, tt.allowedHosts, got, tt.want)
			}
		})
	}
}

func TestHSTS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/bills/", nil)
	rr := httptest.NewRecorder()

	HSTS(next).ServeHTTP(rr, req)

	want := "max-age=31536000; includeSubDomains"
	if got := rr.Header().Get("Strict-Transport-Security"); got != want {
		t.Errorf("Strict-Transport-Security = %q, want %q", got, want)
	}
}

func TestSecureCookies(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   []string
	}{
		{
			name:   "bare cookie gains all attributes",
			cookie: "session=abc123",
			want:   []string{"Secure", "HttpOnly", "SameSite=Strict"},
		},
		{
			name:   "existing Secure not duplicated",
			cookie: "session=abc123; Secure",
			want:   []string{"Secure", "HttpOnly", "SameSite=Strict"},
		},
		{
			name:   "existing SameSite preserved",
			cookie: "session=abc123; SameSite=Lax",
			want:   []string{"SameSite=Lax", "Secure", "HttpOnly"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Add("Set-Cookie", tt.cookie)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
			rr := httptest.NewRecorder()

			SecureCookies(next).ServeHTTP(rr, req)

			got := rr.Header().Get("Set-Cookie")
			for _, attr := range tt.want {
				if !strings.Contains(got, attr) {
					t.Errorf("cookie %q missing %q", got, attr)
				}
			}
			if tt.name == "existing SameSite preserved" && strings.Contains(got, "SameSite=Strict") {
				t.Errorf("cookie %q should keep SameSite=Lax, not gain Strict", got)
			}
		})
	}
}

func TestRequireHTTPS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("plain HTTP redirects", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://smartspend.app/api/bills/", nil)
		rr := httptest.NewRecorder()

		RequireHTTPS(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusMovedPermanently {
			t.Fatalf("expected 301, got %d", rr.Code)
		}
		if loc := rr.Header().Get("Location"); loc != "https://smartspend.app/api/bills/" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("forwarded proto passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://smartspend.app/api/bills/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rr := httptest.NewRecorder()

		RequireHTTPS(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rr.Code)
		}
	})
}
