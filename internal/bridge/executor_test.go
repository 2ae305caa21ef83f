package bridge

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/haasonsaas/fusebridge/internal/mcp"
	"github.com/haasonsaas/fusebridge/internal/observability"
)

type fakeRegistry struct {
	mu       sync.Mutex
	handlers map[string]func(arguments map[string]any) *mcp.ToolResult
	calls    int
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{handlers: make(map[string]func(map[string]any) *mcp.ToolResult)}
}

func (r *fakeRegistry) add(name string, fn func(map[string]any) *mcp.ToolResult) {
	r.handlers[name] = fn
}

func (r *fakeRegistry) HasTool(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

func (r *fakeRegistry) ListTools() []mcp.Tool {
	tools := make([]mcp.Tool, 0, len(r.handlers))
	for name := range r.handlers {
		tools = append(tools, mcp.Tool{Name: name, InputSchema: json.RawMessage(`{"type":"object"}`)})
	}
	return tools
}

func (r *fakeRegistry) CallTool(name string, arguments map[string]any) *mcp.ToolResult {
	r.mu.Lock()
	r.calls++
	fn := r.handlers[name]
	r.mu.Unlock()
	if fn == nil {
		return mcp.ErrorResult("Unknown tool: " + name)
	}
	return fn(arguments)
}

func (r *fakeRegistry) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func echoRegistry() *fakeRegistry {
	r := newFakeRegistry()
	r.add("echo", func(arguments map[string]any) *mcp.ToolResult {
		return mcp.Textf("%v", arguments["x"])
	})
	return r
}

func TestExecuteToolUnknownShortCircuits(t *testing.T) {
	b := NewCallBridge(time.Second, nil, nil)
	h := newFakeHost("sync")
	if err := b.Register(h); err != nil {
		t.Fatalf("register: %v", err)
	}
	defer b.Unregister()

	exec := NewExecutor(echoRegistry(), b, nil, nil)
	result := exec.ExecuteTool("does_not_exist", map[string]any{})

	if !result.IsError || !strings.Contains(result.Text(), "Unknown tool") {
		t.Fatalf("expected unknown-tool error, got %+v", result)
	}
	if b.PendingCount() != 0 {
		t.Fatal("no pending call should have been created")
	}
	if h.raiseCount() != 0 {
		t.Fatal("no signal should have been raised")
	}
}

func TestExecuteToolBridgedRoundTrip(t *testing.T) {
	registry := echoRegistry()
	b := NewCallBridge(time.Second, nil, nil)
	h := newFakeHost("sync")
	if err := b.Register(h); err != nil {
		t.Fatalf("register: %v", err)
	}
	defer b.Unregister()

	exec := NewExecutor(registry, b, nil, nil)
	b.SetExecutor(exec.Invoke)

	result := exec.ExecuteTool("echo", map[string]any{"x": 5.0})
	if result.IsError {
		t.Fatalf("unexpected error result: %+v", result)
	}
	want := &mcp.ToolResult{Content: []mcp.ToolResultContent{{Type: "text", Text: "5"}}}
	got, _ := json.Marshal(result)
	expected, _ := json.Marshal(want)
	if string(got) != string(expected) {
		t.Fatalf("envelope mismatch: got %s want %s", got, expected)
	}
}

func TestExecuteToolTimeoutIndependence(t *testing.T) {
	registry := newFakeRegistry()
	handlerDone := make(chan struct{})
	registry.add("slow", func(map[string]any) *mcp.ToolResult {
		time.Sleep(200 * time.Millisecond)
		close(handlerDone)
		return mcp.TextResult("finally")
	})

	b := NewCallBridge(50*time.Millisecond, nil, nil)
	h := newFakeHost("async")
	if err := b.Register(h); err != nil {
		t.Fatalf("register: %v", err)
	}
	defer b.Unregister()

	exec := NewExecutor(registry, b, nil, nil)
	b.SetExecutor(exec.Invoke)

	start := time.Now()
	result := exec.ExecuteTool("slow", map[string]any{})
	elapsed := time.Since(start)

	if !result.IsError || !strings.Contains(result.Text(), "timed out") {
		t.Fatalf("expected timeout error, got %+v", result)
	}
	if elapsed > 150*time.Millisecond {
		t.Fatalf("timeout took too long: %v", elapsed)
	}

	// The host-side execution finishes later and cleans up the table on
	// its own; the timed-out waiter must not have removed the entry.
	select {
	case <-handlerDone:
	case <-time.After(2 * time.Second):
		t.Fatal("handler never completed")
	}
	deadline := time.Now().Add(time.Second)
	for b.PendingCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("table still has %d entries", b.PendingCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestExecuteToolHandlerError(t *testing.T) {
	registry := newFakeRegistry()
	registry.add("fail", func(map[string]any) *mcp.ToolResult {
		return mcp.ErrorResult("Error in fail: bad input")
	})

	b := NewCallBridge(time.Second, nil, nil)
	h := newFakeHost("sync")
	if err := b.Register(h); err != nil {
		t.Fatalf("register: %v", err)
	}
	defer b.Unregister()

	exec := NewExecutor(registry, b, nil, nil)
	b.SetExecutor(exec.Invoke)

	result := exec.ExecuteTool("fail", nil)
	if !result.IsError || !strings.Contains(result.Text(), "bad input") {
		t.Fatalf("expected handler error envelope, got %+v", result)
	}
}

func TestExecuteToolStatusLabels(t *testing.T) {
	registry := newFakeRegistry()
	registry.add("ok", func(map[string]any) *mcp.ToolResult {
		return mcp.TextResult("done")
	})
	registry.add("fail", func(map[string]any) *mcp.ToolResult {
		return mcp.ErrorResult("Error in fail: bad input")
	})
	registry.add("slow", func(map[string]any) *mcp.ToolResult {
		time.Sleep(200 * time.Millisecond)
		return mcp.TextResult("finally")
	})

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	b := NewCallBridge(50*time.Millisecond, metrics, nil)
	h := newFakeHost("async")
	if err := b.Register(h); err != nil {
		t.Fatalf("register: %v", err)
	}
	defer b.Unregister()

	exec := NewExecutor(registry, b, metrics, nil)
	b.SetExecutor(exec.Invoke)

	exec.ExecuteTool("ok", nil)
	exec.ExecuteTool("fail", nil)
	exec.ExecuteTool("slow", nil)

	for _, tc := range []struct{ tool, status string }{
		{"ok", "success"},
		{"fail", "error"},
		{"slow", "timeout"},
	} {
		got := testutil.ToFloat64(metrics.ToolExecutionCounter.WithLabelValues(tc.tool, tc.status))
		if got != 1 {
			t.Fatalf("counter[%s,%s] = %v, want 1", tc.tool, tc.status, got)
		}
	}
	if got := testutil.ToFloat64(metrics.BridgeTimeouts); got != 1 {
		t.Fatalf("timeout counter = %v, want 1", got)
	}
}

func TestExecuteToolDirectMode(t *testing.T) {
	registry := echoRegistry()
	exec := NewExecutor(registry, nil, nil, nil)

	result := exec.ExecuteTool("echo", map[string]any{"x": 1.0})
	if result.IsError || result.Text() != "1" {
		t.Fatalf("unexpected direct result: %+v", result)
	}
	if registry.callCount() != 1 {
		t.Fatalf("expected one synchronous call, got %d", registry.callCount())
	}
}

func TestExecuteToolAfterUnregister(t *testing.T) {
	b := NewCallBridge(time.Second, nil, nil)
	h := newFakeHost("sync")
	if err := b.Register(h); err != nil {
		t.Fatalf("register: %v", err)
	}
	b.Unregister()

	exec := NewExecutor(echoRegistry(), b, nil, nil)
	result := exec.ExecuteTool("echo", map[string]any{"x": 1.0})
	if !result.IsError {
		t.Fatalf("expected error after unregister, got %+v", result)
	}
}

func TestListToolsPassesThrough(t *testing.T) {
	exec := NewExecutor(echoRegistry(), nil, nil, nil)
	tools := exec.ListTools()
	if len(tools) != 1 || tools[0].Name != "echo" {
		t.Fatalf("unexpected tools: %+v", tools)
	}
}
