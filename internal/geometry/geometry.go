// Package geometry provides unit conversion and point helpers for
// measurement tools.
//
// The tool surface speaks millimeters (matching JIS dimension tables)
// while measurements are computed in a centimeter point space, so
// Point3D values are built via PointMM and converted back with CMToMM
// at the tool boundary.
package geometry

import "math"

// MMToCM converts millimeters to centimeters, the document-internal unit.
func MMToCM(mm float64) float64 {
	return mm * 0.1
}

// CMToMM converts centimeters back to millimeters for tool output.
func CMToMM(cm float64) float64 {
	return cm * 10.0
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// PolygonVertices returns the vertices of a regular polygon in sketch
// plane coordinates, winding counter-clockwise from angle zero.
func PolygonVertices(cx, cy, radius float64, sides int) [][2]float64 {
	verts := make([][2]float64, sides)
	for i := range verts {
		a := DegToRad(float64(i) * 360.0 / float64(sides))
		verts[i] = [2]float64{cx + radius*math.Cos(a), cy + radius*math.Sin(a)}
	}
	return verts
}

// Point3D is a document-space point in centimeters.
type Point3D struct {
	X float64
	Y float64
	Z float64
}

// PointMM builds a document-space point from millimeter coordinates.
func PointMM(xMM, yMM, zMM float64) Point3D {
	return Point3D{X: MMToCM(xMM), Y: MMToCM(yMM), Z: MMToCM(zMM)}
}

// Distance returns the distance between two points in document units.
func Distance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
