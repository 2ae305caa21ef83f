// Package host models the CAD host application side of the bridge: the
// single serialized execution context all modeling API calls must run on,
// and the in-memory design document those calls mutate.
package host

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"
)

// Context is the signaling surface a host application exposes to the
// bridge. Raise may be called from any goroutine; delivery of the payload
// to the registered handler always happens on the host's single execution
// goroutine, in FIFO order.
type Context interface {
	// RegisterSignal binds a uniquely named signal to a delivery handler.
	RegisterSignal(id string, deliver func(payload string)) error

	// UnregisterSignal removes a signal binding. Unknown ids are a no-op.
	UnregisterSignal(id string) error

	// Raise queues a payload for delivery on the host execution goroutine.
	// Delivery is fire-and-forget: a stopped host or a full queue returns
	// an error and the payload is dropped.
	Raise(id, payload string) error
}

type signal struct {
	id      string
	payload string
}

// LoopHost is the bundled Context implementation: one pinned goroutine
// drains a buffered signal queue and invokes handlers. CAD and GUI hosts
// require a designated thread for all API access, so the loop locks itself
// to an OS thread.
type LoopHost struct {
	logger *slog.Logger
	queue  chan signal
	stop   chan struct{}
	done   chan struct{}

	mu       sync.Mutex
	handlers map[string]func(string)
	started  bool
	stopped  bool
}

// NewLoopHost creates a host with the given signal queue capacity.
func NewLoopHost(queueSize int, logger *slog.Logger) *LoopHost {
	if queueSize <= 0 {
		queueSize = 64
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoopHost{
		logger:   logger.With("component", "host"),
		queue:    make(chan signal, queueSize),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		handlers: make(map[string]func(string)),
	}
}

// Start launches the host execution goroutine. Safe to call once.
func (h *LoopHost) Start() {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return
	}
	h.started = true
	h.mu.Unlock()

	go h.run()
}

// Close stops the host loop and waits for it to drain. Signals still in
// the queue when Close is called are discarded.
func (h *LoopHost) Close() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	started := h.started
	h.mu.Unlock()

	close(h.stop)
	if started {
		<-h.done
	}
}

func (h *LoopHost) run() {
	// The host API contract is one designated thread for all calls.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			return
		case sig := <-h.queue:
			h.deliver(sig)
		}
	}
}

func (h *LoopHost) deliver(sig signal) {
	h.mu.Lock()
	handler := h.handlers[sig.id]
	h.mu.Unlock()

	if handler == nil {
		h.logger.Warn("signal with no handler", "signal", sig.id)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("signal handler panicked", "signal", sig.id, "panic", r)
		}
	}()
	handler(sig.payload)
}

// RegisterSignal implements Context.
func (h *LoopHost) RegisterSignal(id string, deliver func(payload string)) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.handlers[id]; exists {
		return fmt.Errorf("signal already registered: %s", id)
	}
	h.handlers[id] = deliver
	return nil
}

// UnregisterSignal implements Context.
func (h *LoopHost) UnregisterSignal(id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.handlers, id)
	return nil
}

// Raise implements Context.
func (h *LoopHost) Raise(id, payload string) error {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return fmt.Errorf("host is stopped")
	}
	if _, exists := h.handlers[id]; !exists {
		h.mu.Unlock()
		return fmt.Errorf("unknown signal: %s", id)
	}
	h.mu.Unlock()

	select {
	case h.queue <- signal{id: id, payload: payload}:
		return nil
	default:
		return fmt.Errorf("signal queue full, dropping %s", id)
	}
}
