package bridge

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Dispatcher is the single entry point the host's signal delivery
// invokes, always on the host execution goroutine. It decodes the
// payload and hands the call to the bridge for execution.
type Dispatcher struct {
	bridge *CallBridge
	logger *slog.Logger

	mu       sync.Mutex
	executor InvokeFunc
}

// NewDispatcher creates a dispatcher bound to its bridge.
func NewDispatcher(bridge *CallBridge, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		bridge: bridge,
		logger: logger.With("component", "dispatcher"),
	}
}

// SetExecutor configures the tool invocation function.
func (d *Dispatcher) SetExecutor(fn InvokeFunc) {
	d.mu.Lock()
	d.executor = fn
	d.mu.Unlock()
}

// Deliver handles one raised signal. Nothing may escape this method: a
// panic propagating into the host's event delivery would be fatal to the
// host application, not just to the bridge.
func (d *Dispatcher) Deliver(payload string) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatcher panic", "panic", r)
		}
	}()

	var call callPayload
	if err := json.Unmarshal([]byte(payload), &call); err != nil {
		d.logger.Error("undecodable call payload", "error", err)
		return
	}

	d.mu.Lock()
	executor := d.executor
	d.mu.Unlock()

	if executor == nil {
		// Mis-initialization: fail the call immediately rather than
		// letting the submitter wait out its timeout.
		if pending, ok := d.bridge.PendingCall(call.CallID); ok {
			pending.SetError("No executor configured")
			d.bridge.RemovePendingCall(call.CallID)
		}
		d.logger.Error("no executor configured", "call_id", call.CallID, "tool", call.ToolName)
		return
	}

	d.bridge.CompleteAndRemove(call.CallID, call.ToolName, call.Arguments, executor)
}
