// Package mcp implements the server side of the Model Context Protocol:
// JSON-RPC 2.0 framing, protocol method dispatch and the HTTP/SSE
// transport clients connect to.
package mcp

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the MCP revision this server speaks.
const ProtocolVersion = "2024-11-05"

// Tool is a tool schema descriptor as returned by tools/list.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// ToolResultContent is one content item of a tool result.
type ToolResultContent struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// ToolResult is the uniform envelope every tool invocation resolves to.
// The protocol layer forwards it to clients unmodified.
type ToolResult struct {
	Content []ToolResultContent `json:"content"`
	IsError bool                `json:"isError,omitempty"`
}

// TextResult wraps plain text in a success envelope.
func TextResult(text string) *ToolResult {
	return &ToolResult{
		Content: []ToolResultContent{{Type: "text", Text: text}},
	}
}

// Textf wraps formatted text in a success envelope.
func Textf(format string, args ...any) *ToolResult {
	return TextResult(fmt.Sprintf(format, args...))
}

// ErrorResult wraps a message in an error-flagged envelope.
func ErrorResult(text string) *ToolResult {
	return &ToolResult{
		Content: []ToolResultContent{{Type: "text", Text: text}},
		IsError: true,
	}
}

// Errorf wraps a formatted message in an error-flagged envelope.
func Errorf(format string, args ...any) *ToolResult {
	return ErrorResult(fmt.Sprintf(format, args...))
}

// Text returns the concatenated text content of a result.
func (r *ToolResult) Text() string {
	if r == nil {
		return ""
	}
	var out string
	for _, c := range r.Content {
		if c.Type != "text" {
			continue
		}
		if out != "" {
			out += "\n"
		}
		out += c.Text
	}
	return out
}

// ServerInfo identifies the server in the initialize response.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Executor is the tool execution surface the protocol layer calls into.
type Executor interface {
	ListTools() []Tool
	ExecuteTool(name string, arguments map[string]any) *ToolResult
}
