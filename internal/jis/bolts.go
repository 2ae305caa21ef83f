package jis

// BoltHead holds bolt head dimensions.
type BoltHead struct {
	WidthAcrossFlats   float64 // s
	WidthAcrossCorners float64 // e
	HeadHeight         float64 // k
	HeadDiameter       float64 // dk, socket head only
	SocketSize         float64 // s of the hex socket, socket head only
}

// Hexagon head bolts (JIS B1180).
var hexHeadBolts = map[string]BoltHead{
	"M2":   {WidthAcrossFlats: 4.0, WidthAcrossCorners: 4.62, HeadHeight: 1.4},
	"M2.5": {WidthAcrossFlats: 5.0, WidthAcrossCorners: 5.77, HeadHeight: 1.7},
	"M3":   {WidthAcrossFlats: 5.5, WidthAcrossCorners: 6.35, HeadHeight: 2.0},
	"M4":   {WidthAcrossFlats: 7.0, WidthAcrossCorners: 8.08, HeadHeight: 2.8},
	"M5":   {WidthAcrossFlats: 8.0, WidthAcrossCorners: 9.24, HeadHeight: 3.5},
	"M6":   {WidthAcrossFlats: 10.0, WidthAcrossCorners: 11.55, HeadHeight: 4.0},
	"M8":   {WidthAcrossFlats: 13.0, WidthAcrossCorners: 15.01, HeadHeight: 5.3},
	"M10":  {WidthAcrossFlats: 16.0, WidthAcrossCorners: 18.48, HeadHeight: 6.4},
	"M12":  {WidthAcrossFlats: 18.0, WidthAcrossCorners: 20.78, HeadHeight: 7.5},
}

// Socket head cap screws (JIS B1176).
var socketHeadBolts = map[string]BoltHead{
	"M2":   {HeadDiameter: 3.8, HeadHeight: 2.0, SocketSize: 1.5},
	"M2.5": {HeadDiameter: 4.5, HeadHeight: 2.5, SocketSize: 2.0},
	"M3":   {HeadDiameter: 5.5, HeadHeight: 3.0, SocketSize: 2.5},
	"M4":   {HeadDiameter: 7.0, HeadHeight: 4.0, SocketSize: 3.0},
	"M5":   {HeadDiameter: 8.5, HeadHeight: 5.0, SocketSize: 4.0},
	"M6":   {HeadDiameter: 10.0, HeadHeight: 6.0, SocketSize: 5.0},
	"M8":   {HeadDiameter: 13.0, HeadHeight: 8.0, SocketSize: 6.0},
	"M10":  {HeadDiameter: 16.0, HeadHeight: 10.0, SocketSize: 8.0},
	"M12":  {HeadDiameter: 18.0, HeadHeight: 12.0, SocketSize: 10.0},
}

// Standard bolt length series (mm).
var boltLengths = map[string][]float64{
	"M2":   {4, 5, 6, 8, 10, 12, 16, 20},
	"M2.5": {5, 6, 8, 10, 12, 16, 20, 25},
	"M3":   {5, 6, 8, 10, 12, 16, 20, 25, 30},
	"M4":   {6, 8, 10, 12, 16, 20, 25, 30, 35, 40},
	"M5":   {8, 10, 12, 16, 20, 25, 30, 35, 40, 45, 50},
	"M6":   {10, 12, 16, 20, 25, 30, 35, 40, 45, 50, 55, 60},
	"M8":   {12, 16, 20, 25, 30, 35, 40, 45, 50, 55, 60, 70, 80},
	"M10":  {16, 20, 25, 30, 35, 40, 45, 50, 55, 60, 70, 80, 90, 100},
	"M12":  {20, 25, 30, 35, 40, 45, 50, 55, 60, 70, 80, 90, 100, 110, 120},
}

// HexHeadBolt returns hexagon head bolt dimensions (JIS B1180).
func HexHeadBolt(size string) (BoltHead, bool) {
	d, ok := hexHeadBolts[normalizeSize(size)]
	return d, ok
}

// SocketHeadBolt returns socket head cap screw dimensions (JIS B1176).
func SocketHeadBolt(size string) (BoltHead, bool) {
	d, ok := socketHeadBolts[normalizeSize(size)]
	return d, ok
}

// BoltLengths returns the standard length series for a bolt size.
func BoltLengths(size string) ([]float64, bool) {
	l, ok := boltLengths[normalizeSize(size)]
	return l, ok
}
