// Package jis holds JIS fastener dimension tables and lookup helpers.
//
// All dimensions are in millimeters. Sources: JIS B1111 (machine screws),
// JIS B1176/B1180 (bolts), JIS B1181 (hexagon nuts), JIS B1256 (plain
// washers), JIS B0205 (metric threads).
package jis

// ScrewHead holds machine screw head dimensions per JIS B1111.
type ScrewHead struct {
	HeadDiameter float64 // dk
	HeadHeight   float64 // k
	SlotDepth    float64 // t
	Angle        float64 // countersink angle in degrees, flat head only
}

// Pan head machine screws (JIS B1111).
var panHeadScrews = map[string]ScrewHead{
	"M2":   {HeadDiameter: 4.0, HeadHeight: 1.3, SlotDepth: 0.6},
	"M2.5": {HeadDiameter: 5.0, HeadHeight: 1.6, SlotDepth: 0.8},
	"M3":   {HeadDiameter: 6.0, HeadHeight: 2.0, SlotDepth: 0.9},
	"M4":   {HeadDiameter: 8.0, HeadHeight: 2.6, SlotDepth: 1.2},
	"M5":   {HeadDiameter: 10.0, HeadHeight: 3.3, SlotDepth: 1.5},
	"M6":   {HeadDiameter: 12.0, HeadHeight: 3.9, SlotDepth: 1.8},
	"M8":   {HeadDiameter: 16.0, HeadHeight: 5.0, SlotDepth: 2.4},
	"M10":  {HeadDiameter: 20.0, HeadHeight: 6.0, SlotDepth: 3.0},
}

// Flat (countersunk) head machine screws (JIS B1111).
var flatHeadScrews = map[string]ScrewHead{
	"M2":   {HeadDiameter: 3.8, HeadHeight: 1.2, SlotDepth: 0.5, Angle: 90},
	"M2.5": {HeadDiameter: 4.7, HeadHeight: 1.5, SlotDepth: 0.7, Angle: 90},
	"M3":   {HeadDiameter: 5.6, HeadHeight: 1.65, SlotDepth: 0.8, Angle: 90},
	"M4":   {HeadDiameter: 7.5, HeadHeight: 2.2, SlotDepth: 1.0, Angle: 90},
	"M5":   {HeadDiameter: 9.2, HeadHeight: 2.5, SlotDepth: 1.2, Angle: 90},
	"M6":   {HeadDiameter: 11.0, HeadHeight: 3.0, SlotDepth: 1.4, Angle: 90},
	"M8":   {HeadDiameter: 14.5, HeadHeight: 4.0, SlotDepth: 2.0, Angle: 90},
	"M10":  {HeadDiameter: 18.0, HeadHeight: 5.0, SlotDepth: 2.4, Angle: 90},
}

// Standard machine screw length series (mm).
var screwLengths = map[string][]float64{
	"M2":   {3, 4, 5, 6, 8, 10, 12, 16, 20},
	"M2.5": {4, 5, 6, 8, 10, 12, 16, 20, 25},
	"M3":   {5, 6, 8, 10, 12, 16, 20, 25, 30},
	"M4":   {6, 8, 10, 12, 16, 20, 25, 30, 35, 40},
	"M5":   {8, 10, 12, 16, 20, 25, 30, 35, 40},
	"M6":   {10, 12, 16, 20, 25, 30, 35, 40, 50},
	"M8":   {12, 16, 20, 25, 30, 35, 40, 50, 60},
	"M10":  {16, 20, 25, 30, 35, 40, 50, 60, 70, 80},
}

// PanHeadScrew returns pan head screw dimensions for a size like "M3".
func PanHeadScrew(size string) (ScrewHead, bool) {
	d, ok := panHeadScrews[normalizeSize(size)]
	return d, ok
}

// FlatHeadScrew returns flat (countersunk) head screw dimensions.
func FlatHeadScrew(size string) (ScrewHead, bool) {
	d, ok := flatHeadScrews[normalizeSize(size)]
	return d, ok
}

// ScrewLengths returns the standard length series for a screw size.
func ScrewLengths(size string) ([]float64, bool) {
	l, ok := screwLengths[normalizeSize(size)]
	return l, ok
}
