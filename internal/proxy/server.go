// Package proxy is the summarization endpoint the browser talks to. It
// accepts article text, asks a language model for a summary or a highlight
// rendering, and returns the result.
package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/abelbrown/newsdeck/internal/brain"
	"github.com/abelbrown/newsdeck/internal/logging"
	"github.com/abelbrown/newsdeck/internal/summary"
)

// Error messages returned in the {"error": ...} body.
const (
	ErrNoText      = "no text received"
	ErrInvalidType = "invalid request type"
	ErrInvalidBody = "invalid request body"
	ErrRateLimited = "rate limited"
	ErrGenerate    = "could not generate text"
)

const (
	maxRequestBytes = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Listen      string
	RatePerSec  float64 // <= 0 disables rate limiting
	Burst       int
	Temperature float64
	MaxTokens   int
}

// Server is the summarization proxy.
type Server struct {
	opts      Options
	provider  brain.Provider
	limiter   *rate.Limiter
	sanitizer *bluemonday.Policy
	metrics   *Metrics
	router    chi.Router
}

// New creates a proxy server. provider may be nil, in which case every
// summarize request fails with 500.
func New(provider brain.Provider, opts Options) *Server {
	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	s := &Server{
		opts:      opts,
		provider:  provider,
		limiter:   rate.NewLimiter(limit, burst),
		sanitizer: highlightPolicy(),
		metrics:   NewMetrics(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/summarize", s.handleSummarize)
	})

	s.router = r
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Run serves on opts.Listen until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logging.Info("proxy listening", "addr", ln.Addr().String(), "provider", s.providerName())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logging.Info("proxy shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) providerName() string {
	if s.provider == nil {
		return "none"
	}
	return s.provider.Name()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"provider": s.providerName(),
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	kind := "invalid"
	fail := func(status int, msg string) {
		s.metrics.RecordRequest(kind, status)
		writeJSON(w, status, summary.Response{Error: msg})
	}

	if !s.limiter.Allow() {
		fail(http.StatusTooManyRequests, ErrRateLimited)
		return
	}

	var req summary.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		logging.Debug("invalid summarize body", "err", err)
		fail(http.StatusBadRequest, ErrInvalidBody)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		fail(http.StatusBadRequest, ErrNoText)
		return
	}
	if !req.Type.Valid() {
		fail(http.StatusBadRequest, ErrInvalidType)
		return
	}
	kind = string(req.Type)

	if s.provider == nil || !s.provider.Available() {
		logging.Error("no language model provider available")
		fail(http.StatusInternalServerError, ErrGenerate)
		return
	}

	prompt, err := BuildPrompt(req.Type, req.Text)
	if err != nil {
		fail(http.StatusBadRequest, ErrInvalidType)
		return
	}

	start := time.Now()
	resp, err := s.provider.Generate(r.Context(), brain.Request{
		UserPrompt:  prompt,
		MaxTokens:   s.opts.MaxTokens,
		Temperature: s.opts.Temperature,
	})
	s.metrics.ObserveUpstream(s.provider.Name(), time.Since(start))
	if err != nil {
		logging.Error("summarize failed", "provider", s.provider.Name(), "type", kind,
			"request_id", middleware.GetReqID(r.Context()), "err", err)
		fail(http.StatusInternalServerError, ErrGenerate)
		return
	}

	result := strings.TrimSpace(resp.Content)
	if req.Type == summary.ModeHighlight {
		result = s.sanitizer.Sanitize(result)
	}

	s.metrics.RecordRequest(kind, http.StatusOK)
	writeJSON(w, http.StatusOK, summary.Response{Result: result})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Debug("write response failed", "err", err)
	}
}

// requestLogger logs one line per request through the global logger.
func requestLogger(next http.Handler) http.Handler {
	logger := logging.WithPrefix("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
