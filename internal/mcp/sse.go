package mcp

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// SSEConnection is one server-sent-events client stream. Writes are
// serialized so protocol responses and keepalive pings never interleave.
type SSEConnection struct {
	SessionID string

	mu      sync.Mutex
	w       io.Writer
	flusher http.Flusher
	closed  bool
}

// NewSSEConnection wraps a response writer in an SSE stream. The flusher
// may be nil in tests.
func NewSSEConnection(w io.Writer, flusher http.Flusher) *SSEConnection {
	return &SSEConnection{
		SessionID: uuid.NewString(),
		w:         w,
		flusher:   flusher,
	}
}

// SendEvent writes one SSE event. Returns false once the stream is closed
// or the client has gone away.
func (c *SSEConnection) SendEvent(data, event string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	var b strings.Builder
	if event != "" {
		fmt.Fprintf(&b, "event: %s\n", event)
	}
	for _, line := range strings.Split(data, "\n") {
		fmt.Fprintf(&b, "data: %s\n", line)
	}
	b.WriteString("\n")

	if _, err := io.WriteString(c.w, b.String()); err != nil {
		c.closed = true
		return false
	}
	if c.flusher != nil {
		c.flusher.Flush()
	}
	return true
}

// Close marks the stream closed. Subsequent sends are dropped.
func (c *SSEConnection) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}

// Closed reports whether the stream has been closed.
func (c *SSEConnection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// SSEManager tracks active SSE sessions by id.
type SSEManager struct {
	logger *slog.Logger

	mu    sync.Mutex
	conns map[string]*SSEConnection
}

// NewSSEManager creates an empty session manager.
func NewSSEManager(logger *slog.Logger) *SSEManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SSEManager{
		logger: logger.With("component", "sse"),
		conns:  make(map[string]*SSEConnection),
	}
}

// Add registers a connection and returns its session id.
func (m *SSEManager) Add(conn *SSEConnection) string {
	m.mu.Lock()
	m.conns[conn.SessionID] = conn
	m.mu.Unlock()
	return conn.SessionID
}

// Remove closes and drops a session. Unknown ids are a no-op.
func (m *SSEManager) Remove(sessionID string) {
	m.mu.Lock()
	conn := m.conns[sessionID]
	delete(m.conns, sessionID)
	m.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

// Get returns the connection for a session id.
func (m *SSEManager) Get(sessionID string) (*SSEConnection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conn, ok := m.conns[sessionID]
	return conn, ok
}

// SendToSession delivers an event to one session. Returns false if the
// session is unknown or its stream is gone.
func (m *SSEManager) SendToSession(sessionID, data, event string) bool {
	conn, ok := m.Get(sessionID)
	if !ok {
		return false
	}
	return conn.SendEvent(data, event)
}

// Broadcast sends an event to every session, pruning dead streams.
func (m *SSEManager) Broadcast(data, event string) {
	m.mu.Lock()
	conns := make(map[string]*SSEConnection, len(m.conns))
	for id, conn := range m.conns {
		conns[id] = conn
	}
	m.mu.Unlock()

	for id, conn := range conns {
		if !conn.SendEvent(data, event) {
			m.Remove(id)
		}
	}
}

// SessionCount returns the number of active sessions.
func (m *SSEManager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.conns)
}

// Cleanup closes every session.
func (m *SSEManager) Cleanup() {
	m.mu.Lock()
	conns := m.conns
	m.conns = make(map[string]*SSEConnection)
	m.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}
