package host

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestLoopHostDeliversFIFO(t *testing.T) {
	h := NewLoopHost(16, nil)

	var mu sync.Mutex
	var got []string
	done := make(chan struct{})
	if err := h.RegisterSignal("test", func(payload string) {
		mu.Lock()
		got = append(got, payload)
		n := len(got)
		mu.Unlock()
		if n == 3 {
			close(done)
		}
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	h.Start()
	defer h.Close()

	for i := 0; i < 3; i++ {
		if err := h.Raise("test", fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("raise %d: %v", i, err)
		}
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for delivery")
	}

	mu.Lock()
	defer mu.Unlock()
	for i, p := range got {
		if want := fmt.Sprintf("p%d", i); p != want {
			t.Fatalf("delivery order: got %v", got)
		}
	}
}

func TestLoopHostDuplicateSignal(t *testing.T) {
	h := NewLoopHost(1, nil)
	if err := h.RegisterSignal("dup", func(string) {}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := h.RegisterSignal("dup", func(string) {}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestLoopHostRaiseUnknownSignal(t *testing.T) {
	h := NewLoopHost(1, nil)
	if err := h.Raise("nope", "x"); err == nil {
		t.Fatal("expected error for unknown signal")
	}
}

func TestLoopHostRaiseAfterClose(t *testing.T) {
	h := NewLoopHost(1, nil)
	if err := h.RegisterSignal("sig", func(string) {}); err != nil {
		t.Fatalf("register: %v", err)
	}
	h.Start()
	h.Close()
	if err := h.Raise("sig", "x"); err == nil {
		t.Fatal("expected error raising on stopped host")
	}
}

func TestLoopHostQueueFullDrops(t *testing.T) {
	// Host never started, so the queue fills up.
	h := NewLoopHost(1, nil)
	if err := h.RegisterSignal("sig", func(string) {}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := h.Raise("sig", "first"); err != nil {
		t.Fatalf("first raise should fit: %v", err)
	}
	if err := h.Raise("sig", "second"); err == nil {
		t.Fatal("expected queue-full error")
	}
}

func TestLoopHostSurvivesHandlerPanic(t *testing.T) {
	h := NewLoopHost(4, nil)
	done := make(chan struct{})
	if err := h.RegisterSignal("boom", func(string) {
		panic("handler bug")
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := h.RegisterSignal("ok", func(string) {
		close(done)
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	h.Start()
	defer h.Close()

	if err := h.Raise("boom", ""); err != nil {
		t.Fatalf("raise: %v", err)
	}
	if err := h.Raise("ok", ""); err != nil {
		t.Fatalf("raise: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop died after handler panic")
	}
}

func TestLoopHostCloseIdempotent(t *testing.T) {
	h := NewLoopHost(1, nil)
	h.Start()
	h.Close()
	h.Close()
}
