package tools

import (
	"encoding/json"
	"fmt"

	"github.com/haasonsaas/fusebridge/internal/geometry"
	"github.com/haasonsaas/fusebridge/internal/host"
	"github.com/haasonsaas/fusebridge/internal/jis"
)

// sizeSchema is shared by every fastener tool: a JIS metric size like "M3".
const sizeSchema = `{"type": "string", "pattern": "^[Mm][0-9]+(\\.[0-9]+)?$"}`

func registerFastenerTools(r *Registry) error {
	defs := []Definition{
		{
			Name:        "create_jis_screw",
			Description: "Create a JIS B1111 machine screw (pan or flat head) from standard dimension tables.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"size": ` + sizeSchema + `,
					"length": {"type": "number", "exclusiveMinimum": 0, "description": "Shaft length in mm; snapped to the nearest standard length"},
					"head_type": {"type": "string", "enum": ["pan", "flat"]}
				},
				"required": ["size", "length"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				size, err := requireString(args, "size")
				if err != nil {
					return nil, err
				}
				length, err := requireFloat(args, "length")
				if err != nil {
					return nil, err
				}
				headType := stringArg(args, "head_type", "pan")
				var head jis.ScrewHead
				var ok bool
				switch headType {
				case "pan":
					head, ok = jis.PanHeadScrew(size)
				case "flat":
					head, ok = jis.FlatHeadScrew(size)
				default:
					return nil, fmt.Errorf("invalid head_type: %s (expected pan or flat)", headType)
				}
				if !ok {
					return nil, unknownSizeErr(size)
				}
				thread, _ := jis.CoarseThread(size)
				snapped := snapLength(size, length, jis.ScrewLengths)

				body := buildShaft(doc, fmt.Sprintf("%s %s head screw", size, headType),
					thread.NominalDiameter, snapped, head.HeadDiameter, head.HeadHeight)
				return fmt.Sprintf("Created JIS %s head screw %s x %gmm (head dia %gmm, pitch %gmm) -> '%s'",
					headType, normalized(size), snapped, head.HeadDiameter, thread.Pitch, body.Name), nil
			},
		},
		{
			Name:        "create_jis_bolt",
			Description: "Create a JIS hex head (B1180) or socket head (B1176) bolt from standard dimension tables.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"size": ` + sizeSchema + `,
					"length": {"type": "number", "exclusiveMinimum": 0, "description": "Shaft length in mm; snapped to the nearest standard length"},
					"bolt_type": {"type": "string", "enum": ["hex_head", "socket_head"]}
				},
				"required": ["size", "length"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				size, err := requireString(args, "size")
				if err != nil {
					return nil, err
				}
				length, err := requireFloat(args, "length")
				if err != nil {
					return nil, err
				}
				boltType := stringArg(args, "bolt_type", "hex_head")
				var head jis.BoltHead
				var ok bool
				switch boltType {
				case "hex_head":
					head, ok = jis.HexHeadBolt(size)
				case "socket_head":
					head, ok = jis.SocketHeadBolt(size)
				default:
					return nil, fmt.Errorf("invalid bolt_type: %s (expected hex_head or socket_head)", boltType)
				}
				if !ok {
					return nil, unknownSizeErr(size)
				}
				thread, _ := jis.CoarseThread(size)
				snapped := snapLength(size, length, jis.BoltLengths)

				headDia := head.WidthAcrossCorners
				if boltType == "socket_head" {
					headDia = head.HeadDiameter
				}
				body := buildShaft(doc, fmt.Sprintf("%s %s bolt", size, boltType),
					thread.NominalDiameter, snapped, headDia, head.HeadHeight)
				return fmt.Sprintf("Created JIS %s bolt %s x %gmm (head height %gmm, pitch %gmm) -> '%s'",
					boltType, normalized(size), snapped, head.HeadHeight, thread.Pitch, body.Name), nil
			},
		},
		{
			Name:        "create_jis_nut",
			Description: "Create a JIS B1181 hexagon nut from standard dimension tables.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"size": ` + sizeSchema + `,
					"style": {"type": "string", "enum": ["style1", "thin"]}
				},
				"required": ["size"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				size, err := requireString(args, "size")
				if err != nil {
					return nil, err
				}
				style := stringArg(args, "style", "style1")
				nut, ok := jis.HexNut(size, style)
				if !ok {
					return nil, unknownSizeErr(size)
				}
				thread, _ := jis.CoarseThread(size)

				sketch := doc.AddSketch("XY")
				sketch.AddEntity(host.Entity{
					Kind:   host.EntityPolygon,
					Radius: nut.WidthAcrossCorners / 2,
					Sides:  6,
					Points: geometry.PolygonVertices(0, 0, nut.WidthAcrossCorners/2, 6),
				})
				sketch.AddEntity(host.Entity{
					Kind:   host.EntityCircle,
					Radius: thread.NominalDiameter / 2,
				})
				body := doc.AddBody("", fmt.Sprintf("%s hex nut (%s): extrude %gmm", size, style, nut.Height))
				return fmt.Sprintf("Created JIS hex nut %s (%s): width %gmm, height %gmm -> '%s'",
					normalized(size), style, nut.WidthAcrossFlats, nut.Height, body.Name), nil
			},
		},
		{
			Name:        "create_jis_washer",
			Description: "Create a JIS B1256 plain washer from standard dimension tables.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"size": ` + sizeSchema + `,
					"series": {"type": "string", "enum": ["normal", "small"]}
				},
				"required": ["size"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				size, err := requireString(args, "size")
				if err != nil {
					return nil, err
				}
				series := stringArg(args, "series", "normal")
				washer, ok := jis.PlainWasher(size, series)
				if !ok {
					return nil, unknownSizeErr(size)
				}

				sketch := doc.AddSketch("XY")
				sketch.AddEntity(host.Entity{Kind: host.EntityCircle, Radius: washer.OuterDiameter / 2})
				sketch.AddEntity(host.Entity{Kind: host.EntityCircle, Radius: washer.InnerDiameter / 2})
				body := doc.AddBody("", fmt.Sprintf("%s plain washer (%s): extrude %gmm",
					size, series, washer.Thickness))
				return fmt.Sprintf("Created JIS plain washer %s (%s): %gmm od, %gmm id, %gmm thick -> '%s'",
					normalized(size), series, washer.OuterDiameter, washer.InnerDiameter,
					washer.Thickness, body.Name), nil
			},
		},
		{
			Name:        "get_fastener_dimensions",
			Description: "Look up JIS fastener dimensions for a size without creating geometry.",
			InputSchema: json.RawMessage(`{
				"type": "object",
				"properties": {
					"size": ` + sizeSchema + `
				},
				"required": ["size"]
			}`),
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				size, err := requireString(args, "size")
				if err != nil {
					return nil, err
				}
				thread, ok := jis.CoarseThread(size)
				if !ok {
					return nil, unknownSizeErr(size)
				}
				out := map[string]any{
					"size": normalized(size),
					"thread": map[string]any{
						"nominal_diameter": thread.NominalDiameter,
						"pitch":            thread.Pitch,
						"pitch_diameter":   thread.PitchDiameter,
						"minor_diameter":   thread.MinorDiameter,
					},
				}
				if head, ok := jis.PanHeadScrew(size); ok {
					out["pan_head_screw"] = map[string]any{
						"head_diameter": head.HeadDiameter, "head_height": head.HeadHeight,
					}
				}
				if head, ok := jis.HexHeadBolt(size); ok {
					out["hex_head_bolt"] = map[string]any{
						"width_across_flats": head.WidthAcrossFlats, "head_height": head.HeadHeight,
					}
				}
				if nut, ok := jis.HexNut(size, ""); ok {
					out["hex_nut"] = map[string]any{
						"width_across_flats": nut.WidthAcrossFlats, "height": nut.Height,
					}
				}
				if washer, ok := jis.PlainWasher(size, ""); ok {
					out["plain_washer"] = map[string]any{
						"inner_diameter": washer.InnerDiameter,
						"outer_diameter": washer.OuterDiameter,
						"thickness":      washer.Thickness,
					}
				}
				if lengths, ok := jis.BoltLengths(size); ok {
					out["standard_lengths"] = lengths
				}
				return out, nil
			},
		},
		{
			Name:        "list_fastener_sizes",
			Description: "List the JIS metric sizes available in the dimension tables.",
			Handler: func(doc *host.Document, args map[string]any) (any, error) {
				return map[string]any{"sizes": jis.Sizes()}, nil
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

func unknownSizeErr(size string) error {
	return fmt.Errorf("unknown JIS size: %s (available: %v)", size, jis.Sizes())
}

func normalized(size string) string {
	thread, ok := jis.CoarseThread(size)
	if !ok {
		return size
	}
	return fmt.Sprintf("M%g", thread.NominalDiameter)
}

// snapLength picks the closest standard length from the series for the
// size, falling back to the requested length when no series exists.
func snapLength(size string, requested float64, series func(string) ([]float64, bool)) float64 {
	lengths, ok := series(size)
	if !ok || len(lengths) == 0 {
		return requested
	}
	best := lengths[0]
	for _, l := range lengths[1:] {
		if diff(l, requested) < diff(best, requested) {
			best = l
		}
	}
	return best
}

func diff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// buildShaft creates the sketch-and-body pair shared by screws and
// bolts: a head profile and a shaft circle, extruded into one body.
func buildShaft(doc *host.Document, feature string, shaftDia, length, headDia, headHeight float64) *host.Body {
	sketch := doc.AddSketch("XY")
	sketch.AddEntity(host.Entity{Kind: host.EntityCircle, Radius: headDia / 2})
	sketch.AddEntity(host.Entity{Kind: host.EntityCircle, Radius: shaftDia / 2})
	body := doc.AddBody("", fmt.Sprintf("%s: head %gmm, shaft %gx%gmm",
		feature, headHeight, shaftDia, length))
	return body
}
