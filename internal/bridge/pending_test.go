package bridge

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/haasonsaas/fusebridge/internal/mcp"
)

func TestPendingCallCompleteWakesWaiter(t *testing.T) {
	call := newPendingCall("echo", map[string]any{"x": 5.0})
	go call.SetResult(mcp.TextResult("done"))

	if !call.Wait(time.Second) {
		t.Fatal("expected completion before timeout")
	}
	if got := call.Result().Text(); got != "done" {
		t.Fatalf("unexpected result text: %q", got)
	}
	if call.Err() != "" {
		t.Fatalf("unexpected error: %q", call.Err())
	}
}

func TestPendingCallWaitTimeout(t *testing.T) {
	call := newPendingCall("echo", nil)
	start := time.Now()
	if call.Wait(20 * time.Millisecond) {
		t.Fatal("expected timeout")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("wait overshot timeout: %v", elapsed)
	}
}

func TestPendingCallAtMostOnceCompletion(t *testing.T) {
	// Race many completers; only the first may take effect and the
	// close-once signal must not panic.
	for i := 0; i < 50; i++ {
		call := newPendingCall("echo", nil)
		var wg sync.WaitGroup
		for j := 0; j < 4; j++ {
			wg.Add(2)
			j := j
			go func() {
				defer wg.Done()
				call.SetResult(mcp.TextResult(fmt.Sprintf("result-%d", j)))
			}()
			go func() {
				defer wg.Done()
				call.SetError(fmt.Sprintf("error-%d", j))
			}()
		}
		wg.Wait()

		if !call.Wait(time.Second) {
			t.Fatal("completed call must not time out")
		}
		hasResult := call.Result() != nil
		hasError := call.Err() != ""
		if hasResult == hasError {
			t.Fatalf("exactly one terminal state expected: result=%v error=%q", call.Result(), call.Err())
		}
	}
}

func TestPendingCallCompleteAfterTimeoutIsSilent(t *testing.T) {
	call := newPendingCall("slow", nil)
	if call.Wait(10 * time.Millisecond) {
		t.Fatal("expected timeout")
	}
	// Late completion is a normal race, not a bug.
	call.SetResult(mcp.TextResult("late"))
	if !call.Completed() {
		t.Fatal("late completion should still record")
	}
}
