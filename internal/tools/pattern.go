package tools

import (
	"encoding/json"
	"fmt"

	"github.com/haasonsaas/fusebridge/internal/host"
)

func registerPatternTools(r *Registry) error {
	defs := []Definition{
		{
			Name:        "circular_pattern",
			Description: "Pattern a body in a circle around an axis.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"count": {"type": "integer", "minimum": 2, "maximum": 360},
					"axis": {"type": "string", "enum": ["x", "y", "z"]},
					"angle": {"type": "number", "exclusiveMinimum": 0, "maximum": 360},
					"body_name": {"type": "string"}
				},
				"required": ["count"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				count := intArg(args, "count", 0)
				if count < 2 {
					return nil, fmt.Errorf("count must be at least 2, got %d", count)
				}
				axis := stringArg(args, "axis", "z")
				angle := floatArg(args, "angle", 360)
				for i := 1; i < count; i++ {
					doc.AddBody(fmt.Sprintf("%s_pattern%d", body.Name, i),
						fmt.Sprintf("circular pattern of %s (%d/%d around %s)", body.Name, i+1, count, axis))
				}
				return fmt.Sprintf("Created circular pattern of '%s': %d instances over %g degrees around %s axis",
					body.Name, count, angle, axis), nil
			},
		},
		{
			Name:        "rectangular_pattern",
			Description: "Pattern a body on a grid. Spacing is in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"count_x": {"type": "integer", "minimum": 1, "maximum": 100},
					"count_y": {"type": "integer", "minimum": 1, "maximum": 100},
					"spacing_x": {"type": "number"},
					"spacing_y": {"type": "number"},
					"body_name": {"type": "string"}
				},
				"required": ["count_x", "spacing_x"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				countX := intArg(args, "count_x", 1)
				countY := intArg(args, "count_y", 1)
				if countX < 1 || countY < 1 {
					return nil, fmt.Errorf("counts must be at least 1")
				}
				if countX*countY < 2 {
					return nil, fmt.Errorf("pattern must produce at least 2 instances")
				}
				spacingX := floatArg(args, "spacing_x", 0)
				spacingY := floatArg(args, "spacing_y", 0)
				for i := 1; i < countX*countY; i++ {
					doc.AddBody(fmt.Sprintf("%s_pattern%d", body.Name, i),
						fmt.Sprintf("rectangular pattern of %s (%dx%d)", body.Name, countX, countY))
				}
				return fmt.Sprintf("Created rectangular pattern of '%s': %dx%d grid, spacing (%g, %g)mm",
					body.Name, countX, countY, spacingX, spacingY), nil
			},
		},
		{
			Name:        "combine",
			Description: "Combine two bodies with a boolean operation (join, cut, or intersect).",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"target_body": {"type": "string", "minLength": 1},
					"tool_body": {"type": "string", "minLength": 1},
					"operation": {"type": "string", "enum": ["join", "cut", "intersect"]},
					"keep_tool": {"type": "boolean"}
				},
				"required": ["target_body", "tool_body"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				targetName, err := requireString(args, "target_body")
				if err != nil {
					return nil, err
				}
				toolName, err := requireString(args, "tool_body")
				if err != nil {
					return nil, err
				}
				if targetName == toolName {
					return nil, fmt.Errorf("target and tool body must differ")
				}
				target, ok := doc.Body(targetName)
				if !ok {
					return nil, fmt.Errorf("body not found: %s", targetName)
				}
				if _, ok := doc.Body(toolName); !ok {
					return nil, fmt.Errorf("body not found: %s", toolName)
				}
				op := stringArg(args, "operation", "join")
				target.Transforms = append(target.Transforms,
					fmt.Sprintf("combine %s with %s", op, toolName))
				if !boolArg(args, "keep_tool", false) {
					doc.RemoveBody(toolName)
				}
				doc.Record(host.TimelineEntry{Op: "combine " + op, Kind: "other", Target: target.Name})
				return fmt.Sprintf("Combined '%s' with '%s' (%s)", targetName, toolName, op), nil
			},
		},
	}
	for _, def := range defs {
		if err := r.Register(def); err != nil {
			return err
		}
	}
	return nil
}
