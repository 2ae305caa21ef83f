package tools

import (
	"encoding/json"
	"fmt"

	"github.com/haasonsaas/fusebridge/internal/host"
)

var validFeatureOps = map[string]bool{"new_body": true, "join": true, "cut": true, "intersect": true}

func registerFeatureTools(r *Registry) error {
	defs := []Definition{
		{
			Name:        "extrude",
			Description: "Extrude a sketch profile into a solid body. Distance is in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"distance": {"type": "number"},
					"sketch_name": {"type": "string"},
					"profile_index": {"type": "integer", "minimum": 0},
					"operation": {"type": "string", "enum": ["new_body", "join", "cut", "intersect"]},
					"body_name": {"type": "string"}
				},
				"required": ["distance"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
				if err != nil {
					return nil, err
				}
				if len(sketch.Entities) == 0 {
					return nil, fmt.Errorf("sketch '%s' has no profile to extrude", sketch.Name)
				}
				distance, err := requireFloat(args, "distance")
				if err != nil {
					return nil, err
				}
				if distance == 0 {
					return nil, fmt.Errorf("distance must be non-zero")
				}
				op := stringArg(args, "operation", "new_body")
				if !validFeatureOps[op] {
					return nil, fmt.Errorf("invalid operation: %s", op)
				}
				profile := intArg(args, "profile_index", 0)
				if profile >= len(sketch.Entities) {
					return nil, fmt.Errorf("profile index %d out of range for '%s' (%d profiles)",
						profile, sketch.Name, len(sketch.Entities))
				}
				if op != "new_body" {
					target, err := targetBody(doc, args, "body_name")
					if err != nil {
						return nil, err
					}
					target.Transforms = append(target.Transforms,
						fmt.Sprintf("extrude %s profile %d by %gmm (%s)", sketch.Name, profile, distance, op))
					doc.Record(host.TimelineEntry{Op: "extrude " + op, Kind: "other", Target: target.Name})
					return fmt.Sprintf("Extruded '%s' profile %d by %gmm (%s) -> '%s'",
						sketch.Name, profile, distance, op, target.Name), nil
				}
				body := doc.AddBody(stringArg(args, "body_name", ""),
					fmt.Sprintf("extrude %s by %gmm", sketch.Name, distance))
				return fmt.Sprintf("Extruded '%s' profile %d by %gmm (%s) -> '%s'",
					sketch.Name, profile, distance, op, body.Name), nil
			},
		},
		{
			Name:        "revolve",
			Description: "Revolve a sketch profile around an axis. Angle is in degrees (360 for a full revolve).",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"angle": {"type": "number", "exclusiveMinimum": 0, "maximum": 360},
					"axis": {"type": "string", "enum": ["x", "y", "z"]},
					"sketch_name": {"type": "string"},
					"body_name": {"type": "string"}
				}
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
				if err != nil {
					return nil, err
				}
				if len(sketch.Entities) == 0 {
					return nil, fmt.Errorf("sketch '%s' has no profile to revolve", sketch.Name)
				}
				angle := floatArg(args, "angle", 360)
				if angle <= 0 || angle > 360 {
					return nil, fmt.Errorf("angle must be in (0, 360], got %g", angle)
				}
				axis := stringArg(args, "axis", "z")
				body := doc.AddBody(stringArg(args, "body_name", ""),
					fmt.Sprintf("revolve %s %g deg around %s", sketch.Name, angle, axis))
				return fmt.Sprintf("Revolved '%s' by %g degrees around %s axis -> '%s'",
					sketch.Name, angle, axis, body.Name), nil
			},
		},
		{
			Name:        "sweep",
			Description: "Sweep a profile sketch along a path sketch to create a body.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"profile_sketch": {"type": "string"},
					"path_sketch": {"type": "string"},
					"body_name": {"type": "string"}
				},
				"required": ["profile_sketch", "path_sketch"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				profileName, err := requireString(args, "profile_sketch")
				if err != nil {
					return nil, err
				}
				pathName, err := requireString(args, "path_sketch")
				if err != nil {
					return nil, err
				}
				profile, ok := doc.SketchByName(profileName)
				if !ok {
					return nil, fmt.Errorf("sketch not found: %s", profileName)
				}
				path, ok := doc.SketchByName(pathName)
				if !ok {
					return nil, fmt.Errorf("sketch not found: %s", pathName)
				}
				if len(profile.Entities) == 0 || len(path.Entities) == 0 {
					return nil, fmt.Errorf("profile and path sketches must each contain geometry")
				}
				body := doc.AddBody(stringArg(args, "body_name", ""),
					fmt.Sprintf("sweep %s along %s", profile.Name, path.Name))
				return fmt.Sprintf("Swept '%s' along '%s' -> '%s'", profile.Name, path.Name, body.Name), nil
			},
		},
		{
			Name:        "loft",
			Description: "Loft between two or more sketch profiles to create a body.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"sketch_names": {
						"type": "array",
						"minItems": 2,
						"items": {"type": "string"}
					},
					"body_name": {"type": "string"}
				},
				"required": ["sketch_names"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				raw, ok := args["sketch_names"].([]any)
				if !ok || len(raw) < 2 {
					return nil, fmt.Errorf("loft needs at least 2 sketches")
				}
				names := make([]string, 0, len(raw))
				for i, item := range raw {
					name, ok := item.(string)
					if !ok {
						return nil, fmt.Errorf("sketch_names[%d] must be a string", i)
					}
					sketch, ok := doc.SketchByName(name)
					if !ok {
						return nil, fmt.Errorf("sketch not found: %s", name)
					}
					if len(sketch.Entities) == 0 {
						return nil, fmt.Errorf("sketch '%s' has no profile to loft", name)
					}
					names = append(names, name)
				}
				body := doc.AddBody(stringArg(args, "body_name", ""),
					fmt.Sprintf("loft through %d profiles", len(names)))
				return fmt.Sprintf("Lofted through %d profiles -> '%s'", len(names), body.Name), nil
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

// targetBody resolves the body a modify tool should operate on: the
// named body if the key is given, otherwise the most recent.
func targetBody(doc *host.Document, args map[string]any, key string) (*host.Body, error) {
	if name := stringArg(args, key, ""); name != "" {
		body, ok := doc.Body(name)
		if !ok {
			return nil, fmt.Errorf("body not found: %s", name)
		}
		return body, nil
	}
	bodies := doc.Bodies()
	if len(bodies) == 0 {
		return nil, fmt.Errorf("no body exists; create one with extrude or revolve first")
	}
	return bodies[len(bodies)-1], nil
}
