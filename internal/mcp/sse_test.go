package mcp

import (
	"errors"
	"strings"
	"testing"
)

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, errors.New("gone") }

func TestSendEventFraming(t *testing.T) {
	var buf strings.Builder
	conn := NewSSEConnection(&buf, nil)
	if !conn.SendEvent("hello", "message") {
		t.Fatal("send failed")
	}
	want := "event: message\ndata: hello\n\n"
	if buf.String() != want {
		t.Fatalf("framing = %q, want %q", buf.String(), want)
	}
}

func TestSendEventMultilineData(t *testing.T) {
	var buf strings.Builder
	conn := NewSSEConnection(&buf, nil)
	conn.SendEvent("line1\nline2", "")
	want := "data: line1\ndata: line2\n\n"
	if buf.String() != want {
		t.Fatalf("framing = %q, want %q", buf.String(), want)
	}
}

func TestSendEventAfterClose(t *testing.T) {
	var buf strings.Builder
	conn := NewSSEConnection(&buf, nil)
	conn.Close()
	if conn.SendEvent("x", "") {
		t.Fatal("send on closed stream must fail")
	}
	if buf.Len() != 0 {
		t.Fatalf("closed stream wrote %q", buf.String())
	}
}

func TestSendEventWriteFailureClosesStream(t *testing.T) {
	conn := NewSSEConnection(errWriter{}, nil)
	if conn.SendEvent("x", "") {
		t.Fatal("send on a dead writer must fail")
	}
	if !conn.Closed() {
		t.Fatal("write failure must mark the stream closed")
	}
}

func TestManagerSessionLifecycle(t *testing.T) {
	m := NewSSEManager(nil)
	var buf strings.Builder
	id := m.Add(NewSSEConnection(&buf, nil))
	if m.SessionCount() != 1 {
		t.Fatalf("count = %d", m.SessionCount())
	}

	if !m.SendToSession(id, "payload", "message") {
		t.Fatal("send to known session failed")
	}
	if !strings.Contains(buf.String(), "data: payload") {
		t.Fatalf("payload not written: %q", buf.String())
	}
	if m.SendToSession("unknown", "x", "") {
		t.Fatal("send to unknown session must fail")
	}

	m.Remove(id)
	if m.SessionCount() != 0 {
		t.Fatalf("count after remove = %d", m.SessionCount())
	}
	if m.SendToSession(id, "x", "") {
		t.Fatal("send after remove must fail")
	}
	// Removing twice is harmless.
	m.Remove(id)
}

func TestBroadcastPrunesDeadSessions(t *testing.T) {
	m := NewSSEManager(nil)
	var live strings.Builder
	m.Add(NewSSEConnection(&live, nil))
	m.Add(NewSSEConnection(errWriter{}, nil))

	m.Broadcast("tick", "ping")
	if m.SessionCount() != 1 {
		t.Fatalf("dead session not pruned, count = %d", m.SessionCount())
	}
	if !strings.Contains(live.String(), "data: tick") {
		t.Fatalf("live session missed broadcast: %q", live.String())
	}
}

func TestCleanupClosesAll(t *testing.T) {
	m := NewSSEManager(nil)
	var buf strings.Builder
	conn := NewSSEConnection(&buf, nil)
	m.Add(conn)
	m.Cleanup()
	if m.SessionCount() != 0 {
		t.Fatalf("count after cleanup = %d", m.SessionCount())
	}
	if !conn.Closed() {
		t.Fatal("cleanup must close connections")
	}
}
