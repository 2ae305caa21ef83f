// Package bridge marshals tool calls from transport goroutines onto the
// CAD host's single serialized execution context and carries results back.
package bridge

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/haasonsaas/fusebridge/internal/mcp"
)

// PendingCall is one in-flight tool call waiting for host-side execution.
// It completes at most once: the first SetResult or SetError wins and
// wakes the single waiter; later attempts are no-ops.
type PendingCall struct {
	ID        string
	ToolName  string
	Arguments map[string]any

	mu        sync.Mutex
	completed bool
	result    *mcp.ToolResult
	errMsg    string
	done      chan struct{}
}

func newPendingCall(toolName string, arguments map[string]any) *PendingCall {
	return &PendingCall{
		ID:        uuid.NewString(),
		ToolName:  toolName,
		Arguments: arguments,
		done:      make(chan struct{}),
	}
}

// SetResult completes the call with a result. No-op after completion.
func (c *PendingCall) SetResult(result *mcp.ToolResult) {
	c.complete(result, "")
}

// SetError completes the call with an error message. No-op after
// completion.
func (c *PendingCall) SetError(message string) {
	c.complete(nil, message)
}

func (c *PendingCall) complete(result *mcp.ToolResult, errMsg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.completed {
		return
	}
	c.completed = true
	c.result = result
	c.errMsg = errMsg
	close(c.done)
}

// Wait blocks the calling goroutine until the call completes or the
// timeout elapses. Returns whether the call completed in time. Must
// never be called from the host execution goroutine.
func (c *PendingCall) Wait(timeout time.Duration) bool {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-c.done:
		return true
	case <-timer.C:
		return false
	}
}

// Result returns the stored result once completed.
func (c *PendingCall) Result() *mcp.ToolResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the stored error message, empty if none.
func (c *PendingCall) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Completed reports whether the call has reached a terminal state.
func (c *PendingCall) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}
