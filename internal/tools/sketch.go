package tools

import (
	"encoding/json"
	"fmt"

	"github.com/haasonsaas/fusebridge/internal/geometry"
	"github.com/haasonsaas/fusebridge/internal/host"
)

var validPlanes = map[string]bool{"XY": true, "XZ": true, "YZ": true}

func registerSketchTools(r *Registry) error {
	defs := []Definition{
		{
			Name:        "create_sketch",
			Description: "Create a new sketch on a base construction plane (XY, XZ, or YZ).",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"plane": {"type": "string", "enum": ["XY", "XZ", "YZ"], "description": "Base plane for the sketch"}
				}
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				plane := stringArg(args, "plane", "XY")
				if !validPlanes[plane] {
					return nil, fmt.Errorf("invalid plane: %s (expected XY, XZ, or YZ)", plane)
				}
				sketch := doc.AddSketch(plane)
				return fmt.Sprintf("Created sketch '%s' on %s plane (index: %d)",
					sketch.Name, plane, doc.SketchCount()-1), nil
			},
		},
		{
			Name:        "draw_circle",
			Description: "Draw a circle in a sketch. Coordinates and radius are in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"center_x": {"type": "number"},
					"center_y": {"type": "number"},
					"radius": {"type": "number", "exclusiveMinimum": 0},
					"sketch_name": {"type": "string", "description": "Target sketch; defaults to the most recent"}
				},
				"required": ["radius"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
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
				cx, cy := floatArg(args, "center_x", 0), floatArg(args, "center_y", 0)
				sketch.AddEntity(host.Entity{
					Kind:   host.EntityCircle,
					Center: [2]float64{cx, cy},
					Radius: radius,
				})
				return fmt.Sprintf("Drew circle: center=(%g, %g)mm, radius=%gmm on '%s'",
					cx, cy, radius, sketch.Name), nil
			},
		},
		{
			Name:        "draw_rectangle",
			Description: "Draw a two-point rectangle in a sketch. Coordinates are in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"x1": {"type": "number"},
					"y1": {"type": "number"},
					"x2": {"type": "number"},
					"y2": {"type": "number"},
					"sketch_name": {"type": "string"}
				},
				"required": ["x1", "y1", "x2", "y2"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
				if err != nil {
					return nil, err
				}
				x1, y1 := floatArg(args, "x1", 0), floatArg(args, "y1", 0)
				x2, y2 := floatArg(args, "x2", 0), floatArg(args, "y2", 0)
				if x1 == x2 || y1 == y2 {
					return nil, fmt.Errorf("rectangle corners must differ in both axes")
				}
				sketch.AddEntity(host.Entity{
					Kind:  host.EntityRectangle,
					Start: [2]float64{x1, y1},
					End:   [2]float64{x2, y2},
				})
				return fmt.Sprintf("Drew rectangle: (%g, %g)mm to (%g, %g)mm on '%s'",
					x1, y1, x2, y2, sketch.Name), nil
			},
		},
		{
			Name:        "draw_line",
			Description: "Draw a line segment in a sketch. Coordinates are in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"x1": {"type": "number"},
					"y1": {"type": "number"},
					"x2": {"type": "number"},
					"y2": {"type": "number"},
					"sketch_name": {"type": "string"}
				},
				"required": ["x1", "y1", "x2", "y2"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
				if err != nil {
					return nil, err
				}
				x1, y1 := floatArg(args, "x1", 0), floatArg(args, "y1", 0)
				x2, y2 := floatArg(args, "x2", 0), floatArg(args, "y2", 0)
				if x1 == x2 && y1 == y2 {
					return nil, fmt.Errorf("line endpoints must differ")
				}
				sketch.AddEntity(host.Entity{
					Kind:  host.EntityLine,
					Start: [2]float64{x1, y1},
					End:   [2]float64{x2, y2},
				})
				return fmt.Sprintf("Drew line: (%g, %g)mm to (%g, %g)mm on '%s'",
					x1, y1, x2, y2, sketch.Name), nil
			},
		},
		{
			Name:        "draw_arc",
			Description: "Draw a three-point arc in a sketch. Coordinates are in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"start_x": {"type": "number"},
					"start_y": {"type": "number"},
					"mid_x": {"type": "number"},
					"mid_y": {"type": "number"},
					"end_x": {"type": "number"},
					"end_y": {"type": "number"},
					"sketch_name": {"type": "string"}
				},
				"required": ["start_x", "start_y", "mid_x", "mid_y", "end_x", "end_y"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
				if err != nil {
					return nil, err
				}
				start := [2]float64{floatArg(args, "start_x", 0), floatArg(args, "start_y", 0)}
				mid := [2]float64{floatArg(args, "mid_x", 0), floatArg(args, "mid_y", 0)}
				end := [2]float64{floatArg(args, "end_x", 0), floatArg(args, "end_y", 0)}
				if start == end {
					return nil, fmt.Errorf("arc start and end must differ")
				}
				sketch.AddEntity(host.Entity{Kind: host.EntityArc, Start: start, Mid: mid, End: end})
				return fmt.Sprintf("Drew arc: (%g, %g)mm through (%g, %g)mm to (%g, %g)mm on '%s'",
					start[0], start[1], mid[0], mid[1], end[0], end[1], sketch.Name), nil
			},
		},
		{
			Name:        "draw_spline",
			Description: "Draw a fitted spline through a list of [x, y] points in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"points": {
						"type": "array",
						"minItems": 3,
						"items": {
							"type": "array",
							"minItems": 2,
							"maxItems": 2,
							"items": {"type": "number"}
						}
					},
					"sketch_name": {"type": "string"}
				},
				"required": ["points"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
				if err != nil {
					return nil, err
				}
				points, err := pointsArg(args, "points")
				if err != nil {
					return nil, err
				}
				if len(points) < 3 {
					return nil, fmt.Errorf("spline needs at least 3 points, got %d", len(points))
				}
				sketch.AddEntity(host.Entity{Kind: host.EntitySpline, Points: points})
				return fmt.Sprintf("Drew spline through %d points on '%s'", len(points), sketch.Name), nil
			},
		},
		{
			Name:        "draw_polygon",
			Description: "Draw a regular polygon centered at a point. Dimensions are in millimeters.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"center_x": {"type": "number"},
					"center_y": {"type": "number"},
					"radius": {"type": "number", "exclusiveMinimum": 0},
					"sides": {"type": "integer", "minimum": 3, "maximum": 64},
					"sketch_name": {"type": "string"}
				},
				"required": ["radius"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				sketch, err := targetSketch(doc, args)
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
				sides := intArg(args, "sides", 6)
				if sides < 3 {
					return nil, fmt.Errorf("polygon needs at least 3 sides, got %d", sides)
				}
				cx, cy := floatArg(args, "center_x", 0), floatArg(args, "center_y", 0)
				sketch.AddEntity(host.Entity{
					Kind:   host.EntityPolygon,
					Center: [2]float64{cx, cy},
					Radius: radius,
					Sides:  sides,
					Points: geometry.PolygonVertices(cx, cy, radius, sides),
				})
				return fmt.Sprintf("Drew %d-sided polygon: center=(%g, %g)mm, radius=%gmm on '%s'",
					sides, cx, cy, radius, sketch.Name), nil
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

// targetSketch resolves the sketch a drawing tool should operate on:
// the named sketch if sketch_name is given, otherwise the most recent.
func targetSketch(doc *host.Document, args map[string]any) (*host.Sketch, error) {
	if name := stringArg(args, "sketch_name", ""); name != "" {
		sketch, ok := doc.SketchByName(name)
		if !ok {
			return nil, fmt.Errorf("sketch not found: %s", name)
		}
		return sketch, nil
	}
	sketch, ok := doc.LastSketch()
	if !ok {
		return nil, fmt.Errorf("no sketch exists; call create_sketch first")
	}
	return sketch, nil
}
