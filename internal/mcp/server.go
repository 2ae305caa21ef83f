package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haasonsaas/fusebridge/internal/observability"
)

// ServerConfig holds HTTP/SSE server settings.
type ServerConfig struct {
	Host string
	Port int

	// PingInterval is the SSE keepalive period. Default 30s.
	PingInterval time.Duration

	// EnableMetrics exposes /metrics on the same listener.
	EnableMetrics bool
}

// Server is the HTTP/SSE transport for the MCP protocol. Each accepted
// request runs on its own handler goroutine; tool calls are marshaled to
// the host thread by the executor behind the protocol layer.
type Server struct {
	config   ServerConfig
	protocol *Protocol
	sessions *SSEManager
	metrics  *observability.Metrics
	logger   *slog.Logger

	httpServer *http.Server
	shutdown   chan struct{}
}

// NewServer creates the transport around a protocol dispatcher. Metrics
// may be nil.
func NewServer(cfg ServerConfig, protocol *Protocol, metrics *observability.Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PingInterval <= 0 {
		cfg.PingInterval = 30 * time.Second
	}
	s := &Server{
		config:   cfg,
		protocol: protocol,
		sessions: NewSSEManager(logger),
		metrics:  metrics,
		logger:   logger.With("component", "server"),
		shutdown: make(chan struct{}),
	}
	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: s.Handler(),
	}
	return s
}

// Sessions exposes the SSE session manager.
func (s *Server) Sessions() *SSEManager {
	return s.sessions
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sse", s.handleSSE)
	mux.HandleFunc("/messages", s.handleMessage)
	mux.HandleFunc("/message", s.handleMessage)
	mux.HandleFunc("/health", s.handleHealth)
	if s.config.EnableMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return s.withCommon(mux)
}

// withCommon applies CORS headers, OPTIONS handling and request metrics.
func (s *Server) withCommon(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.metrics.ObserveHTTP(r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Flush forwards to the wrapped writer so SSE streaming works through the
// middleware.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Start serves until Shutdown. Blocks.
func (s *Server) Start() error {
	go s.keepalive()
	s.logger.Info("MCP server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// keepalive periodically pings every SSE session. Streams whose client
// has gone away fail the write and get pruned.
func (s *Server) keepalive() {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.shutdown:
			return
		case <-ticker.C:
			s.sessions.Broadcast("", "ping")
		}
	}
}

// Shutdown closes all SSE sessions and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	close(s.shutdown)
	s.sessions.Cleanup()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	conn := NewSSEConnection(w, flusher)
	sessionID := s.sessions.Add(conn)
	s.metrics.SSEOpened()
	s.logger.Info("SSE connection established", "session", sessionID)

	defer func() {
		s.sessions.Remove(sessionID)
		s.metrics.SSEClosed()
		s.logger.Info("SSE connection closed", "session", sessionID)
	}()

	// The endpoint origin must match the origin the client connected to,
	// so derive it from the request Host header.
	endpoint := fmt.Sprintf("http://%s/messages?sessionId=%s", r.Host, sessionID)
	if !conn.SendEvent(endpoint, "endpoint") {
		return
	}

	select {
	case <-r.Context().Done():
	case <-s.shutdown:
	}
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write(BuildError(ParseError, "Missing sessionId parameter", nil))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write(BuildError(ParseError, "Failed to read body", nil))
		return
	}

	req := ParseRequest(body)
	if req == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write(BuildError(ParseError, "Parse error", nil))
		return
	}

	s.logger.Info("request received", "method", req.Method, "id", req.ID, "session", sessionID)
	response := s.protocol.HandleRequest(req)

	// The JSON-RPC response travels over the session's SSE stream; the
	// POST itself is just an ack.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	w.Write([]byte("ok"))

	if response != nil {
		if !s.sessions.SendToSession(sessionID, string(response), "message") {
			s.logger.Warn("failed to deliver response", "session", sessionID, "method", req.Method)
		}
	}

	// Once the client reports itself initialized, nudge it to fetch the
	// tool list.
	if req.Method == "notifications/initialized" {
		note := BuildNotification("notifications/tools/list_changed", nil)
		s.sessions.SendToSession(sessionID, string(note), "message")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	status := map[string]any{
		"status":   "ok",
		"server":   s.protocol.ServerName(),
		"version":  s.protocol.ServerVersion(),
		"sessions": s.sessions.SessionCount(),
	}
	json.NewEncoder(w).Encode(status)
}
