package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewSetsUserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	resp, err := New(5 * time.Second).Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if got != UserAgent {
		t.Errorf("expected %q, got %q", UserAgent, got)
	}
}

func TestExplicitUserAgentWins(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set("User-Agent", "custom/1.0")
	resp, err := Default().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if got != "custom/1.0" {
		t.Errorf("expected custom/1.0, got %q", got)
	}
}

func TestTimeouts(t *testing.T) {
	if Default().Timeout != 30*time.Second {
		t.Errorf("expected 30s, got %v", Default().Timeout)
	}
	if LongTimeout().Timeout != 120*time.Second {
		t.Errorf("expected 120s, got %v", LongTimeout().Timeout)
	}
	if New(0).Timeout != 0 {
		t.Error("zero timeout should be preserved")
	}
}
