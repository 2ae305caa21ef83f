package tools

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/haasonsaas/fusebridge/internal/host"
	"github.com/haasonsaas/fusebridge/internal/mcp"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(host.NewDocument("test"), nil)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := newTestRegistry(t)
	def := Definition{
		Name:    "echo",
		Handler: func(doc *host.Document, args map[string]any) (any, error) { return "ok", nil },
	}
	if err := r.Register(def); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(def); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
}

func TestRegisterRejectsBadSchema(t *testing.T) {
	r := newTestRegistry(t)
	err := r.Register(Definition{
		Name:        "broken",
		InputSchema: json.RawMessage(`{"type": 42}`),
		Handler:     func(doc *host.Document, args map[string]any) (any, error) { return nil, nil },
	})
	if err == nil {
		t.Fatal("expected schema compile error")
	}
}

func TestCallToolUnknown(t *testing.T) {
	r := newTestRegistry(t)
	result := r.CallTool("nope", nil)
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if got := result.Text(); got != "Unknown tool: nope" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestCallToolValidatesArguments(t *testing.T) {
	r := newTestRegistry(t)
	called := false
	err := r.Register(Definition{
		Name: "strict",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {"n": {"type": "number"}},
			"required": ["n"]
		}`),
		Handler: func(doc *host.Document, args map[string]any) (any, error) {
			called = true
			return "ran", nil
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	result := r.CallTool("strict", map[string]any{})
	if !result.IsError {
		t.Fatal("expected validation failure for missing required argument")
	}
	if !strings.Contains(result.Text(), "Invalid arguments for strict") {
		t.Fatalf("unexpected message: %q", result.Text())
	}
	if called {
		t.Fatal("handler must not run on invalid arguments")
	}

	result = r.CallTool("strict", map[string]any{"n": 1.5})
	if result.IsError {
		t.Fatalf("valid call failed: %q", result.Text())
	}
	if !called {
		t.Fatal("handler did not run")
	}
}

func TestCallToolWrapsResults(t *testing.T) {
	r := newTestRegistry(t)
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	must(r.Register(Definition{
		Name:    "string",
		Handler: func(doc *host.Document, args map[string]any) (any, error) { return "hello", nil },
	}))
	must(r.Register(Definition{
		Name: "object",
		Handler: func(doc *host.Document, args map[string]any) (any, error) {
			return map[string]any{"count": 2}, nil
		},
	}))
	must(r.Register(Definition{
		Name: "envelope",
		Handler: func(doc *host.Document, args map[string]any) (any, error) {
			return mcp.ErrorResult("custom"), nil
		},
	}))

	if got := r.CallTool("string", nil).Text(); got != "hello" {
		t.Fatalf("string result = %q", got)
	}
	objText := r.CallTool("object", nil).Text()
	var decoded map[string]any
	if err := json.Unmarshal([]byte(objText), &decoded); err != nil {
		t.Fatalf("object result is not JSON: %q", objText)
	}
	if decoded["count"] != 2.0 {
		t.Fatalf("object result = %v", decoded)
	}
	envelope := r.CallTool("envelope", nil)
	if !envelope.IsError || envelope.Text() != "custom" {
		t.Fatalf("envelope passthrough failed: %+v", envelope)
	}
}

func TestCallToolHandlerErrorAndPanic(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.Register(Definition{
		Name: "boom",
		Handler: func(doc *host.Document, args map[string]any) (any, error) {
			panic("kaboom")
		},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	result := r.CallTool("boom", nil)
	if !result.IsError {
		t.Fatal("expected error result from panicking handler")
	}
	if !strings.Contains(result.Text(), "Error in boom") || !strings.Contains(result.Text(), "kaboom") {
		t.Fatalf("unexpected message: %q", result.Text())
	}
}

func TestListToolsPreservesRegistrationOrder(t *testing.T) {
	r := newTestRegistry(t)
	for _, name := range []string{"c", "a", "b"} {
		if err := r.Register(Definition{
			Name:    name,
			Handler: func(doc *host.Document, args map[string]any) (any, error) { return "", nil },
		}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	listed := r.ListTools()
	if len(listed) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(listed))
	}
	for i, want := range []string{"c", "a", "b"} {
		if listed[i].Name != want {
			t.Fatalf("tool %d = %s, want %s", i, listed[i].Name, want)
		}
	}
}
