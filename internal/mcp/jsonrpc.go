package mcp

import "encoding/json"

// JSON-RPC 2.0 error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

const jsonrpcVersion = "2.0"

// Request is a parsed JSON-RPC 2.0 request. ID is nil for notifications.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no id and therefore
// expects no response.
func (r *Request) IsNotification() bool {
	return r.ID == nil
}

type response struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ParseRequest decodes a JSON-RPC 2.0 request. It returns nil on any
// malformed input; the transport maps that to a parse error response.
func ParseRequest(data []byte) *Request {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil
	}
	if req.Method == "" {
		return nil
	}
	return &req
}

// BuildResponse encodes a JSON-RPC 2.0 success response.
func BuildResponse(result any, id any) []byte {
	out, err := json.Marshal(response{JSONRPC: jsonrpcVersion, ID: id, Result: result})
	if err != nil {
		return BuildError(InternalError, "marshal response: "+err.Error(), id)
	}
	return out
}

// BuildError encodes a JSON-RPC 2.0 error response.
func BuildError(code int, message string, id any) []byte {
	out, _ := json.Marshal(response{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
	return out
}

// BuildNotification encodes a JSON-RPC 2.0 notification.
func BuildNotification(method string, params any) []byte {
	msg := map[string]any{
		"jsonrpc": jsonrpcVersion,
		"method":  method,
	}
	if params != nil {
		msg["params"] = params
	}
	out, _ := json.Marshal(msg)
	return out
}
