// Package httpclient provides HTTP clients that share one pooled transport.
//
// Callers MUST close response bodies, even on non-2xx status:
//
//	resp, err := httpclient.New(20 * time.Second).Do(req)
//	if err != nil {
//	    return err
//	}
//	defer resp.Body.Close()
package httpclient

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// UserAgent is sent on every outbound request made through these clients.
const UserAgent = "newsdeck/0.1 (+https://github.com/abelbrown/newsdeck)"

var (
	sharedTransport *http.Transport
	transportOnce   sync.Once
)

// getSharedTransport returns the shared transport with connection pooling settings.
func getSharedTransport() *http.Transport {
	transportOnce.Do(func() {
		sharedTransport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		}
	})
	return sharedTransport
}

// userAgentTransport stamps UserAgent on requests that do not set one.
type userAgentTransport struct {
	base http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", UserAgent)
	}
	return t.base.RoundTrip(req)
}

// New returns a client on the shared transport. A zero timeout means the
// request may run until its context is cancelled.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: userAgentTransport{base: getSharedTransport()},
		Timeout:   timeout,
	}
}

// Default returns a client with a 30-second timeout.
func Default() *http.Client {
	return New(30 * time.Second)
}

// LongTimeout returns a client with a 2-minute timeout, for LLM API calls.
func LongTimeout() *http.Client {
	return New(120 * time.Second)
}
