package tools

import (
	"encoding/json"
	"fmt"

	"github.com/haasonsaas/fusebridge/internal/host"
)

func registerModifyTools(r *Registry) error {
	defs := []Definition{
		{
			Name:        "fillet",
			Description: "Round the edges of a body with a constant radius. Radius is in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"radius": {"type": "number", "exclusiveMinimum": 0},
					"body_name": {"type": "string"}
				},
				"required": ["radius"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				radius, err := requireFloat(args, "radius")
				if err != nil {
					return nil, err
				}
				if radius <= 0 {
					return nil, fmt.Errorf("radius must be positive, got %g", radius)
				}
				body.Transforms = append(body.Transforms, fmt.Sprintf("fillet r=%gmm", radius))
				doc.Record(host.TimelineEntry{Op: "fillet", Kind: "other", Target: body.Name})
				return fmt.Sprintf("Applied %gmm fillet to '%s'", radius, body.Name), nil
			},
		},
		{
			Name:        "chamfer",
			Description: "Chamfer the edges of a body with an equal distance. Distance is in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"distance": {"type": "number", "exclusiveMinimum": 0},
					"body_name": {"type": "string"}
				},
				"required": ["distance"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				distance, err := requireFloat(args, "distance")
				if err != nil {
					return nil, err
				}
				if distance <= 0 {
					return nil, fmt.Errorf("distance must be positive, got %g", distance)
				}
				body.Transforms = append(body.Transforms, fmt.Sprintf("chamfer d=%gmm", distance))
				doc.Record(host.TimelineEntry{Op: "chamfer", Kind: "other", Target: body.Name})
				return fmt.Sprintf("Applied %gmm chamfer to '%s'", distance, body.Name), nil
			},
		},
		{
			Name:        "shell",
			Description: "Hollow a body, leaving walls of the given thickness in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"thickness": {"type": "number", "exclusiveMinimum": 0},
					"body_name": {"type": "string"}
				},
				"required": ["thickness"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				thickness, err := requireFloat(args, "thickness")
				if err != nil {
					return nil, err
				}
				if thickness <= 0 {
					return nil, fmt.Errorf("thickness must be positive, got %g", thickness)
				}
				body.Transforms = append(body.Transforms, fmt.Sprintf("shell t=%gmm", thickness))
				doc.Record(host.TimelineEntry{Op: "shell", Kind: "other", Target: body.Name})
				return fmt.Sprintf("Shelled '%s' with %gmm walls", body.Name, thickness), nil
			},
		},
		{
			Name:        "mirror",
			Description: "Mirror a body across a base construction plane, creating a new body.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"plane": {"type": "string", "enum": ["XY", "XZ", "YZ"]},
					"body_name": {"type": "string"}
				},
				"required": ["plane"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				plane, err := requireString(args, "plane")
				if err != nil {
					return nil, err
				}
				if !validPlanes[plane] {
					return nil, fmt.Errorf("invalid plane: %s (expected XY, XZ, or YZ)", plane)
				}
				mirrored := doc.AddBody(body.Name+"_mirror",
					fmt.Sprintf("mirror %s across %s", body.Name, plane))
				return fmt.Sprintf("Mirrored '%s' across %s plane -> '%s'",
					body.Name, plane, mirrored.Name), nil
			},
		},
		{
			Name:        "move_body",
			Description: "Translate a body. Offsets are in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"x": {"type": "number"},
					"y": {"type": "number"},
					"z": {"type": "number"},
					"body_name": {"type": "string"}
				}
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				x, y, z := floatArg(args, "x", 0), floatArg(args, "y", 0), floatArg(args, "z", 0)
				if x == 0 && y == 0 && z == 0 {
					return nil, fmt.Errorf("at least one of x, y, z must be non-zero")
				}
				body.Transforms = append(body.Transforms,
					fmt.Sprintf("translate (%g, %g, %g)mm", x, y, z))
				doc.Record(host.TimelineEntry{Op: "move_body", Kind: "other", Target: body.Name})
				return fmt.Sprintf("Moved '%s' by (%g, %g, %g)mm", body.Name, x, y, z), nil
			},
		},
		{
			Name:        "rotate_body",
			Description: "Rotate a body around an axis. Angle is in degrees.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"angle": {"type": "number"},
					"axis": {"type": "string", "enum": ["x", "y", "z"]},
					"body_name": {"type": "string"}
				},
				"required": ["angle"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				angle, err := requireFloat(args, "angle")
				if err != nil {
					return nil, err
				}
				if angle == 0 {
					return nil, fmt.Errorf("angle must be non-zero")
				}
				axis := stringArg(args, "axis", "z")
				body.Transforms = append(body.Transforms,
					fmt.Sprintf("rotate %g deg around %s", angle, axis))
				doc.Record(host.TimelineEntry{Op: "rotate_body", Kind: "other", Target: body.Name})
				return fmt.Sprintf("Rotated '%s' by %g degrees around %s axis", body.Name, angle, axis), nil
			},
		},
		{
			Name:        "scale_body",
			Description: "Uniformly scale a body by a factor.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"factor": {"type": "number", "exclusiveMinimum": 0},
					"body_name": {"type": "string"}
				},
				"required": ["factor"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				body, err := targetBody(doc, args, "body_name")
				if err != nil {
					return nil, err
				}
				factor, err := requireFloat(args, "factor")
				if err != nil {
					return nil, err
				}
				if factor <= 0 {
					return nil, fmt.Errorf("scale factor must be positive, got %g", factor)
				}
				body.Transforms = append(body.Transforms, fmt.Sprintf("scale x%g", factor))
				doc.Record(host.TimelineEntry{Op: "scale_body", Kind: "other", Target: body.Name})
				return fmt.Sprintf("Scaled '%s' by factor %g", body.Name, factor), nil
			},
		},
		{
			Name:        "rename_body",
			Description: "Rename a body.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"old_name": {"type": "string", "minLength": 1},
					"new_name": {"type": "string", "minLength": 1}
				},
				"required": ["old_name", "new_name"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				oldName, err := requireString(args, "old_name")
				if err != nil {
					return nil, err
				}
				newName, err := requireString(args, "new_name")
				if err != nil {
					return nil, err
				}
				if err := doc.RenameBody(oldName, newName); err != nil {
					return nil, err
				}
				return fmt.Sprintf("Renamed body '%s' to '%s'", oldName, newName), nil
			},
		},
		{
			Name:        "delete_body",
			Description: "Delete a body from the design.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"body_name": {"type": "string", "minLength": 1}
				},
				"required": ["body_name"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				name, err := requireString(args, "body_name")
				if err != nil {
					return nil, err
				}
				if !doc.RemoveBody(name) {
					return nil, fmt.Errorf("body not found: %s", name)
				}
				return fmt.Sprintf("Deleted body '%s'", name), nil
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
