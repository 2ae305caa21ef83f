package tools

import (
	"encoding/json"
	"fmt"

	"github.com/haasonsaas/fusebridge/internal/geometry"
	"github.com/haasonsaas/fusebridge/internal/host"
)

func registerUtilityTools(r *Registry) error {
	defs := []Definition{
		{
			Name:        "get_design_info",
			Description: "Summarize the active design: sketches, bodies, parameters, and timeline length.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketches := make([]map[string]any, 0, doc.SketchCount())
				for _, s := range doc.Sketches() {
					sketches = append(sketches, map[string]any{
						"name":     s.Name,
						"plane":    s.Plane,
						"entities": len(s.Entities),
					})
				}
				bodies := make([]string, 0, len(doc.Bodies()))
				for _, b := range doc.Bodies() {
					bodies = append(bodies, b.Name)
				}
				return map[string]any{
					"name":            doc.Name,
					"sketches":        sketches,
					"bodies":          bodies,
					"parameter_count": len(doc.Parameters()),
					"timeline_length": len(doc.Timeline()),
				}, nil
			},
		},
		{
			Name:        "list_bodies",
			Description: "List all bodies with their creating feature and applied transforms.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				bodies := doc.Bodies()
				out := make([]map[string]any, 0, len(bodies))
				for _, b := range bodies {
					out = append(out, map[string]any{
						"name":       b.Name,
						"feature":    b.Feature,
						"transforms": b.Transforms,
					})
				}
				return map[string]any{"count": len(out), "bodies": out}, nil
			},
		},
		{
			Name:        "list_sketches",
			Description: "List all sketches with their plane and entity count.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketches := doc.Sketches()
				out := make([]map[string]any, 0, len(sketches))
				for _, s := range sketches {
					out = append(out, map[string]any{
						"name":     s.Name,
						"plane":    s.Plane,
						"entities": len(s.Entities),
					})
				}
				return map[string]any{"count": len(out), "sketches": out}, nil
			},
		},
		{
			Name:        "list_components",
			Description: "List the design's components. The bundled document is single-component.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				return map[string]any{
					"count": 1,
					"components": []map[string]any{{
						"name":     doc.Name,
						"bodies":   len(doc.Bodies()),
						"sketches": doc.SketchCount(),
					}},
				}, nil
			},
		},
		{
			Name:        "get_parameters",
			Description: "List all user parameters in the design.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				params := doc.Parameters()
				out := make([]map[string]any, 0, len(params))
				for _, p := range params {
					out = append(out, map[string]any{
						"name":    p.Name,
						"value":   p.Value,
						"unit":    p.Unit,
						"comment": p.Comment,
					})
				}
				return map[string]any{"count": len(out), "parameters": out}, nil
			},
		},
		{
			Name:        "set_parameter",
			Description: "Create or update a user parameter. Values default to millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"value": {"type": "number"},
					"unit": {"type": "string"},
					"comment": {"type": "string"}
				},
				"required": ["name", "value"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				name, err := requireString(args, "name")
				if err != nil {
					return nil, err
				}
				value, err := requireFloat(args, "value")
				if err != nil {
					return nil, err
				}
				unit := stringArg(args, "unit", "mm")
				doc.SetParameter(name, value, unit, stringArg(args, "comment", ""))
				return fmt.Sprintf("Set parameter %s = %g %s", name, value, unit), nil
			},
		},
		{
			Name:        "get_timeline",
			Description: "List the recorded modeling operations, oldest first.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				entries := doc.Timeline()
				ops := make([]string, 0, len(entries))
				for _, e := range entries {
					ops = append(ops, e.Op)
				}
				return map[string]any{"count": len(ops), "operations": ops}, nil
			},
		},
		{
			Name:        "measure_distance",
			Description: "Measure the straight-line distance between two points in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"x1": {"type": "number"}, "y1": {"type": "number"}, "z1": {"type": "number"},
					"x2": {"type": "number"}, "y2": {"type": "number"}, "z2": {"type": "number"}
				},
				"required": ["x1", "y1", "x2", "y2"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				a := geometry.PointMM(floatArg(args, "x1", 0), floatArg(args, "y1", 0), floatArg(args, "z1", 0))
				b := geometry.PointMM(floatArg(args, "x2", 0), floatArg(args, "y2", 0), floatArg(args, "z2", 0))
				return fmt.Sprintf("Distance: %.4fmm", geometry.CMToMM(geometry.Distance(a, b))), nil
			},
		},
		{
			Name:        "undo",
			Description: "Undo the most recent modeling operation.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				entry, ok := doc.UndoLast()
				if !ok {
					return nil, fmt.Errorf("nothing to undo")
				}
				return fmt.Sprintf("Undid: %s", entry.Op), nil
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
