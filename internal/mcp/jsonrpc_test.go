package mcp

import (
	"encoding/json"
	"testing"
)

func TestParseRequest(t *testing.T) {
	req := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"ping","id":1}`))
	if req == nil {
		t.Fatal("valid request rejected")
	}
	if req.Method != "ping" || req.ID != 1.0 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.IsNotification() {
		t.Fatal("request with id is not a notification")
	}
}

func TestParseRequestNotification(t *testing.T) {
	req := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	if req == nil {
		t.Fatal("valid notification rejected")
	}
	if !req.IsNotification() {
		t.Fatal("request without id must be a notification")
	}
}

func TestParseRequestStringID(t *testing.T) {
	req := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"ping","id":"abc-1"}`))
	if req == nil || req.ID != "abc-1" {
		t.Fatalf("string id not preserved: %+v", req)
	}
}

func TestParseRequestMalformed(t *testing.T) {
	for _, input := range []string{
		`{not json`,
		`{"jsonrpc":"2.0","id":1}`,
		`{"jsonrpc":"2.0","method":"","id":1}`,
		``,
	} {
		if req := ParseRequest([]byte(input)); req != nil {
			t.Errorf("accepted malformed input %q: %+v", input, req)
		}
	}
}

func TestBuildResponse(t *testing.T) {
	out := BuildResponse(map[string]any{"ok": true}, 7)
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if decoded["jsonrpc"] != "2.0" || decoded["id"] != 7.0 {
		t.Fatalf("unexpected envelope: %v", decoded)
	}
	if _, hasErr := decoded["error"]; hasErr {
		t.Fatal("success response must not carry an error")
	}
}

func TestBuildError(t *testing.T) {
	out := BuildError(MethodNotFound, "Method not found: nope", 3)
	var decoded struct {
		JSONRPC string `json:"jsonrpc"`
		ID      any    `json:"id"`
		Error   *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("error response is not JSON: %v", err)
	}
	if decoded.Error == nil || decoded.Error.Code != MethodNotFound {
		t.Fatalf("unexpected error payload: %+v", decoded)
	}
}

func TestBuildErrorNullID(t *testing.T) {
	// A parse failure has no usable id; the response must still carry the
	// id field with a null value.
	out := BuildError(ParseError, "Parse error", nil)
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("error response is not JSON: %v", err)
	}
	id, present := decoded["id"]
	if !present || id != nil {
		t.Fatalf("expected null id, got %v (present=%v)", id, present)
	}
}

func TestBuildNotification(t *testing.T) {
	out := BuildNotification("notifications/tools/list_changed", nil)
	var decoded map[string]any
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("notification is not JSON: %v", err)
	}
	if _, hasID := decoded["id"]; hasID {
		t.Fatal("notification must not carry an id")
	}
	if decoded["method"] != "notifications/tools/list_changed" {
		t.Fatalf("unexpected method: %v", decoded["method"])
	}
}
