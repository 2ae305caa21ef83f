package bridge

import (
	"log/slog"
	"time"

	"github.com/haasonsaas/fusebridge/internal/mcp"
	"github.com/haasonsaas/fusebridge/internal/observability"
)

// ToolRegistry is the tool lookup and invocation surface the executor
// drives. CallTool runs the handler synchronously in the calling
// goroutine and never returns a raw error: handler failures arrive as
// error-flagged results.
type ToolRegistry interface {
	HasTool(name string) bool
	ListTools() []mcp.Tool
	CallTool(name string, arguments map[string]any) *mcp.ToolResult
}

// Executor is the caller-facing façade the protocol layer uses. With a
// bridge it marshals calls to the host goroutine and waits with the
// bridge's timeout; without one it calls handlers directly in the
// current goroutine (tests and single-threaded embedding).
type Executor struct {
	registry ToolRegistry
	bridge   *CallBridge
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewExecutor creates the façade. Bridge and metrics may be nil.
func NewExecutor(registry ToolRegistry, bridge *CallBridge, metrics *observability.Metrics, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		registry: registry,
		bridge:   bridge,
		metrics:  metrics,
		logger:   logger.With("component", "executor"),
	}
}

// ListTools returns the registered tool schemas.
func (e *Executor) ListTools() []mcp.Tool {
	return e.registry.ListTools()
}

// ExecuteTool resolves a tool invocation to the uniform result envelope.
// Every failure mode — unknown tool, timeout, handler error, shutdown —
// comes back as an error-flagged result, never as a raw error.
func (e *Executor) ExecuteTool(toolName string, arguments map[string]any) *mcp.ToolResult {
	if !e.registry.HasTool(toolName) {
		return mcp.ErrorResult("Unknown tool: " + toolName)
	}

	start := time.Now()
	var result *mcp.ToolResult
	timedOut := false
	if e.bridge != nil {
		result, timedOut = e.executeViaBridge(toolName, arguments)
	} else {
		result = e.registry.CallTool(toolName, arguments)
	}

	status := "success"
	switch {
	case timedOut:
		status = "timeout"
	case result.IsError:
		status = "error"
	}
	e.metrics.ObserveTool(toolName, status, time.Since(start))
	return result
}

func (e *Executor) executeViaBridge(toolName string, arguments map[string]any) (*mcp.ToolResult, bool) {
	call, err := e.bridge.SubmitCall(toolName, arguments)
	if err != nil {
		return mcp.ErrorResult("Error: " + err.Error()), false
	}

	if !call.Wait(e.bridge.Timeout()) {
		// The host-side execution may still finish later; its own
		// CompleteAndRemove cleans up the table entry, so the timed-out
		// waiter must not remove it here.
		e.metrics.CallTimedOut()
		e.logger.Warn("tool execution timed out", "tool", toolName, "call_id", call.ID)
		return mcp.ErrorResult("Tool execution timed out: " + toolName), true
	}

	if msg := call.Err(); msg != "" {
		return mcp.ErrorResult("Error: " + msg), false
	}
	return call.Result(), false
}

// Invoke is the function handed to the dispatcher for host-side
// execution. It runs on the host execution goroutine.
func (e *Executor) Invoke(toolName string, arguments map[string]any) (*mcp.ToolResult, error) {
	return e.registry.CallTool(toolName, arguments), nil
}
