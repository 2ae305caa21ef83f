package mcp

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Protocol dispatches parsed JSON-RPC requests to MCP method handlers.
type Protocol struct {
	serverName    string
	serverVersion string
	executor      Executor
	logger        *slog.Logger
	handlers      map[string]func(params json.RawMessage) (any, error)
}

// NewProtocol creates a protocol dispatcher. The executor may be nil, in
// which case tools/list is empty and tools/call reports a configuration
// error.
func NewProtocol(serverName, serverVersion string, executor Executor, logger *slog.Logger) *Protocol {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Protocol{
		serverName:    serverName,
		serverVersion: serverVersion,
		executor:      executor,
		logger:        logger.With("component", "protocol"),
	}
	p.handlers = map[string]func(json.RawMessage) (any, error){
		"initialize":                p.handleInitialize,
		"initialized":               p.handleInitialized,
		"notifications/initialized": p.handleInitialized,
		"ping":                      p.handlePing,
		"tools/list":                p.handleToolsList,
		"tools/call":                p.handleToolsCall,
		"resources/list":            p.handleResourcesList,
		"resources/read":            p.handleResourcesRead,
		"prompts/list":              p.handlePromptsList,
	}
	return p
}

// ServerName returns the advertised server name.
func (p *Protocol) ServerName() string { return p.serverName }

// ServerVersion returns the advertised server version.
func (p *Protocol) ServerVersion() string { return p.serverVersion }

// HandleRequest runs the handler for a request and returns the encoded
// response, or nil for notifications.
func (p *Protocol) HandleRequest(req *Request) []byte {
	handler := p.handlers[req.Method]
	if handler == nil {
		p.logger.Warn("unknown method", "method", req.Method)
		if req.IsNotification() {
			return nil
		}
		return BuildError(MethodNotFound, "Method not found: "+req.Method, req.ID)
	}

	result, err := p.invoke(handler, req.Params)
	if err != nil {
		p.logger.Error("handler failed", "method", req.Method, "error", err)
		if req.IsNotification() {
			return nil
		}
		return BuildError(InternalError, err.Error(), req.ID)
	}

	if req.IsNotification() {
		return nil
	}
	return BuildResponse(result, req.ID)
}

// invoke shields the dispatcher from handler panics.
func (p *Protocol) invoke(handler func(json.RawMessage) (any, error), params json.RawMessage) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(params)
}

func (p *Protocol) handleInitialize(json.RawMessage) (any, error) {
	return map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"tools":     map[string]any{"listChanged": false},
			"resources": map[string]any{"subscribe": false, "listChanged": false},
		},
		"serverInfo": ServerInfo{Name: p.serverName, Version: p.serverVersion},
	}, nil
}

func (p *Protocol) handleInitialized(json.RawMessage) (any, error) {
	p.logger.Info("client confirmed initialization")
	return map[string]any{}, nil
}

func (p *Protocol) handlePing(json.RawMessage) (any, error) {
	return map[string]any{}, nil
}

func (p *Protocol) handleToolsList(json.RawMessage) (any, error) {
	if p.executor == nil {
		return map[string]any{"tools": []Tool{}}, nil
	}
	tools := p.executor.ListTools()
	if tools == nil {
		tools = []Tool{}
	}
	return map[string]any{"tools": tools}, nil
}

func (p *Protocol) handleToolsCall(params json.RawMessage) (any, error) {
	var call struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &call); err != nil {
			return nil, fmt.Errorf("invalid tools/call params: %w", err)
		}
	}
	if call.Name == "" {
		return nil, fmt.Errorf("missing tool name")
	}
	if p.executor == nil {
		return ErrorResult("No tool executor configured"), nil
	}
	return p.executor.ExecuteTool(call.Name, call.Arguments), nil
}

func (p *Protocol) handleResourcesList(json.RawMessage) (any, error) {
	return map[string]any{"resources": []any{}}, nil
}

func (p *Protocol) handleResourcesRead(params json.RawMessage) (any, error) {
	var read struct {
		URI string `json:"uri"`
	}
	if len(params) > 0 {
		_ = json.Unmarshal(params, &read)
	}
	return map[string]any{
		"contents": []map[string]any{{
			"uri":      read.URI,
			"mimeType": "text/plain",
			"text":     "Resource not found: " + read.URI,
		}},
	}, nil
}

func (p *Protocol) handlePromptsList(json.RawMessage) (any, error) {
	return map[string]any{"prompts": []any{}}, nil
}
