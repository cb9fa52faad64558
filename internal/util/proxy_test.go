package util

import (
	"net/http"
	"net/url"
	"testing"
)

func requestFor(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %q: %v", rawURL, err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "http://sproxy:3128", "")

	u, err := proxy(requestFor(t, "https://en.wikipedia.org/wiki/Paris"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "sproxy:3128" {
		t.Errorf("https request got proxy %v, want sproxy:3128", u)
	}

	u, err = proxy(requestFor(t, "http://example.com/"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "proxy:3128" {
		t.Errorf("http request got proxy %v, want proxy:3128", u)
	}
}

func TestNewProxyFunc_NoProxyList(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "", "wikipedia.org, internal.example")

	tests := []struct {
		url    string
		direct bool
	}{
		{"https://en.wikipedia.org/wiki/Paris", true}, // subdomain suffix match
		{"https://wikipedia.org/", true},
		{"https://host.internal.example/x", true},
		{"https://example.com/", false},
		{"https://notwikipedia.org/", false}, // no partial-label matches
	}

	for _, tt := range tests {
		u, err := proxy(requestFor(t, tt.url))
		if err != nil {
			t.Fatalf("proxy func failed for %s: %v", tt.url, err)
		}
		if tt.direct && u != nil {
			t.Errorf("%s should bypass the proxy, got %v", tt.url, u)
		}
		if !tt.direct && u == nil {
			t.Errorf("%s should use the proxy", tt.url)
		}
	}
}
