// Package tools holds the tool registry and the bundled modeling tool
// packs the bridge server exposes over MCP.
package tools

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/haasonsaas/fusebridge/internal/host"
	"github.com/haasonsaas/fusebridge/internal/mcp"
)

// HandlerFunc is a tool implementation. Handlers run on the host
// execution goroutine (or the caller's goroutine in direct mode) and may
// return a string, any JSON-marshalable value, or a *mcp.ToolResult.
type HandlerFunc func(doc *host.Document, args map[string]any) (any, error)

// Definition describes one registered tool.
type Definition struct {
	Name        string
	Description string
	InputSchema json.RawMessage
	Handler     HandlerFunc
}

// Registry maps tool names to schemas and handlers for one document.
// Argument maps are validated against the declared input schema before
// the handler runs.
type Registry struct {
	doc    *host.Document
	logger *slog.Logger

	mu      sync.RWMutex
	defs    map[string]Definition
	order   []string
	schemas map[string]*jsonschema.Schema
}

// NewRegistry creates an empty registry bound to a document.
func NewRegistry(doc *host.Document, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		doc:     doc,
		logger:  logger.With("component", "registry"),
		defs:    make(map[string]Definition),
		schemas: make(map[string]*jsonschema.Schema),
	}
}

// Register adds a tool, compiling its input schema eagerly so schema
// authoring mistakes surface at startup rather than on first call.
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if def.Handler == nil {
		return fmt.Errorf("tool %s: handler is required", def.Name)
	}
	schemaJSON := def.InputSchema
	if len(schemaJSON) == 0 {
		schemaJSON = json.RawMessage(`{"type":"object"}`)
		def.InputSchema = schemaJSON
	}
	compiled, err := jsonschema.CompileString(def.Name+".json", string(schemaJSON))
	if err != nil {
		return fmt.Errorf("tool %s: compile schema: %w", def.Name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("tool already registered: %s", def.Name)
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	r.schemas[def.Name] = compiled
	r.logger.Debug("registered tool", "tool", def.Name)
	return nil
}

// HasTool reports whether a tool is registered.
func (r *Registry) HasTool(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[name]
	return ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

// ListTools returns tool schema descriptors in registration order.
func (r *Registry) ListTools() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		out = append(out, mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		})
	}
	return out
}

// CallTool validates arguments and runs the handler, wrapping every
// outcome into the uniform result envelope. It never returns a raw
// error: handler failures and panics become error-flagged results.
func (r *Registry) CallTool(name string, arguments map[string]any) *mcp.ToolResult {
	r.mu.RLock()
	def, ok := r.defs[name]
	schema := r.schemas[name]
	r.mu.RUnlock()
	if !ok {
		return mcp.ErrorResult("Unknown tool: " + name)
	}

	if arguments == nil {
		arguments = map[string]any{}
	}
	if err := schema.Validate(normalizeForSchema(arguments)); err != nil {
		return mcp.Errorf("Invalid arguments for %s: %v", name, err)
	}

	result, err := r.invoke(def, arguments)
	if err != nil {
		r.logger.Error("tool failed", "tool", name, "error", err)
		return mcp.Errorf("Error in %s: %v", name, err)
	}

	switch v := result.(type) {
	case *mcp.ToolResult:
		return v
	case string:
		return mcp.TextResult(v)
	default:
		payload, err := json.Marshal(v)
		if err != nil {
			return mcp.Errorf("Error in %s: marshal result: %v", name, err)
		}
		return mcp.TextResult(string(payload))
	}
}

func (r *Registry) invoke(def Definition, arguments map[string]any) (result any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return def.Handler(r.doc, arguments)
}

// normalizeForSchema converts an argument map into the plain decoded-JSON
// shape the validator expects. Arguments that arrived through
// encoding/json already have it; this covers values built in Go code.
func normalizeForSchema(arguments map[string]any) any {
	raw, err := json.Marshal(arguments)
	if err != nil {
		return arguments
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return arguments
	}
	return normalized
}
