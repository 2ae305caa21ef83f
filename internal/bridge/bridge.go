package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haasonsaas/fusebridge/internal/host"
	"github.com/haasonsaas/fusebridge/internal/mcp"
	"github.com/haasonsaas/fusebridge/internal/observability"
)

// DefaultCallTimeout bounds how long a submitter waits for the host.
const DefaultCallTimeout = 60 * time.Second

// signalPrefix names the bridge's host signal. A uuid suffix keeps
// multiple bridge instances in one host process from colliding.
const signalPrefix = "fusebridge-call-"

// ErrNotRegistered is returned by SubmitCall before Register or after
// Unregister.
var ErrNotRegistered = errors.New("bridge is not registered with a host")

// InvokeFunc executes a tool synchronously. It runs on the host
// execution goroutine only.
type InvokeFunc func(toolName string, arguments map[string]any) (*mcp.ToolResult, error)

// callPayload is the wire shape handed to the host signal queue.
type callPayload struct {
	CallID    string         `json:"call_id"`
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
}

// CallBridge owns the table of in-flight calls and the handshake that
// moves a call from a transport goroutine to the host execution
// goroutine and back.
type CallBridge struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	timeout time.Duration

	mu      sync.Mutex
	pending map[string]*PendingCall

	regMu      sync.Mutex
	hostCtx    host.Context
	signalID   string
	dispatcher *Dispatcher
}

// NewCallBridge creates an unregistered bridge. A non-positive timeout
// selects DefaultCallTimeout. Metrics may be nil.
func NewCallBridge(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *CallBridge {
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	b := &CallBridge{
		logger:  logger.With("component", "bridge"),
		metrics: metrics,
		timeout: timeout,
		pending: make(map[string]*PendingCall),
	}
	b.dispatcher = NewDispatcher(b, b.logger)
	return b
}

// Timeout returns the per-call wait timeout.
func (b *CallBridge) Timeout() time.Duration {
	return b.timeout
}

// SetExecutor configures the function the dispatcher invokes on the host
// goroutine for each delivered call.
func (b *CallBridge) SetExecutor(fn InvokeFunc) {
	b.dispatcher.SetExecutor(fn)
}

// Register binds the bridge to a host context. Must be called before any
// SubmitCall. The bridge owns its dispatcher for the registered
// lifetime; no global retention list is needed.
func (b *CallBridge) Register(hostCtx host.Context) error {
	b.regMu.Lock()
	defer b.regMu.Unlock()
	if b.hostCtx != nil {
		return fmt.Errorf("bridge already registered")
	}

	signalID := signalPrefix + uuid.NewString()[:8]
	if err := hostCtx.RegisterSignal(signalID, b.dispatcher.Deliver); err != nil {
		return fmt.Errorf("register host signal: %w", err)
	}
	b.hostCtx = hostCtx
	b.signalID = signalID
	b.logger.Info("bridge registered", "signal", signalID)
	return nil
}

// Unregister detaches from the host and force-completes every pending
// call with a shutdown error. Idempotent; safe to call without a prior
// Register.
func (b *CallBridge) Unregister() {
	b.regMu.Lock()
	if b.hostCtx != nil {
		if err := b.hostCtx.UnregisterSignal(b.signalID); err != nil {
			b.logger.Warn("unregister host signal", "error", err)
		}
		b.hostCtx = nil
		b.signalID = ""
	}
	b.regMu.Unlock()

	b.mu.Lock()
	drained := len(b.pending)
	for _, call := range b.pending {
		call.SetError("Bridge shutting down")
		b.metrics.CallRemoved()
	}
	b.pending = make(map[string]*PendingCall)
	b.mu.Unlock()

	if drained > 0 {
		b.logger.Info("drained pending calls on shutdown", "count", drained)
	}
	b.logger.Info("bridge unregistered")
}

// SubmitCall queues a tool call for host-side execution and returns the
// pending call immediately. Called from transport goroutines; the caller
// decides how long to Wait. The signal hand-off is fire-and-forget: if
// the host never drains its queue the call stays pending until the
// submitter's wait times out.
func (b *CallBridge) SubmitCall(toolName string, arguments map[string]any) (*PendingCall, error) {
	call := newPendingCall(toolName, arguments)

	// The registration check and the table insert must be one step:
	// if Unregister could run between them, the new entry would land
	// after the drain sweep and nothing would ever complete it.
	b.regMu.Lock()
	hostCtx := b.hostCtx
	signalID := b.signalID
	if hostCtx == nil {
		b.regMu.Unlock()
		return nil, ErrNotRegistered
	}
	b.mu.Lock()
	b.pending[call.ID] = call
	b.mu.Unlock()
	b.metrics.CallSubmitted()
	b.regMu.Unlock()

	payload, err := json.Marshal(callPayload{
		CallID:    call.ID,
		ToolName:  toolName,
		Arguments: arguments,
	})
	if err != nil {
		// Arguments came from decoded JSON, so this should not happen;
		// fail the call instead of leaking it.
		b.removePendingCall(call.ID)
		return nil, fmt.Errorf("marshal call payload: %w", err)
	}

	if err := hostCtx.Raise(signalID, string(payload)); err != nil {
		b.logger.Warn("signal hand-off failed, call will time out",
			"call_id", call.ID, "tool", toolName, "error", err)
	}
	return call, nil
}

// PendingCall looks up an in-flight call by id.
func (b *CallBridge) PendingCall(id string) (*PendingCall, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	call, ok := b.pending[id]
	return call, ok
}

// RemovePendingCall drops a call from the table. No-op for ids already
// removed, so the timeout path and the completion path can race safely.
func (b *CallBridge) RemovePendingCall(id string) {
	b.removePendingCall(id)
}

func (b *CallBridge) removePendingCall(id string) {
	b.mu.Lock()
	_, present := b.pending[id]
	delete(b.pending, id)
	b.mu.Unlock()
	if present {
		b.metrics.CallRemoved()
	}
}

// PendingCount returns the number of in-flight calls.
func (b *CallBridge) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// CompleteAndRemove executes a delivered call and stores its outcome.
// Runs on the host execution goroutine only. A missing id means the
// submitter already timed out and moved on; that is logged, not an
// error. The table entry is removed no matter how invocation ends.
func (b *CallBridge) CompleteAndRemove(id, toolName string, arguments map[string]any, invoke InvokeFunc) {
	call, ok := b.PendingCall(id)
	if !ok {
		b.logger.Warn("no pending call found", "call_id", id, "tool", toolName)
		return
	}
	defer b.removePendingCall(id)

	result, err := b.safeInvoke(invoke, toolName, arguments)
	if err != nil {
		b.logger.Error("tool execution failed", "tool", toolName, "error", err)
		call.SetError(err.Error())
		return
	}
	call.SetResult(result)
}

// safeInvoke converts invoke panics into errors so a broken handler can
// never take down the host delivery path.
func (b *CallBridge) safeInvoke(invoke InvokeFunc, toolName string, arguments map[string]any) (result *mcp.ToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return invoke(toolName, arguments)
}
