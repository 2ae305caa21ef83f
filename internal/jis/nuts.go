package jis

// Nut holds hexagon nut dimensions per JIS B1181.
type Nut struct {
	WidthAcrossFlats   float64 // s
	WidthAcrossCorners float64 // e
	Height             float64 // m
}

// Style 1 hexagon nuts.
var hexNutsStyle1 = map[string]Nut{
	"M2":   {WidthAcrossFlats: 4.0, WidthAcrossCorners: 4.62, Height: 1.6},
	"M2.5": {WidthAcrossFlats: 5.0, WidthAcrossCorners: 5.77, Height: 2.0},
	"M3":   {WidthAcrossFlats: 5.5, WidthAcrossCorners: 6.35, Height: 2.4},
	"M4":   {WidthAcrossFlats: 7.0, WidthAcrossCorners: 8.08, Height: 3.2},
	"M5":   {WidthAcrossFlats: 8.0, WidthAcrossCorners: 9.24, Height: 4.7},
	"M6":   {WidthAcrossFlats: 10.0, WidthAcrossCorners: 11.55, Height: 5.2},
	"M8":   {WidthAcrossFlats: 13.0, WidthAcrossCorners: 15.01, Height: 6.8},
	"M10":  {WidthAcrossFlats: 16.0, WidthAcrossCorners: 18.48, Height: 8.4},
	"M12":  {WidthAcrossFlats: 18.0, WidthAcrossCorners: 20.78, Height: 10.8},
}

// Thin hexagon nuts.
var hexNutsThin = map[string]Nut{
	"M2":   {WidthAcrossFlats: 4.0, WidthAcrossCorners: 4.62, Height: 1.2},
	"M2.5": {WidthAcrossFlats: 5.0, WidthAcrossCorners: 5.77, Height: 1.6},
	"M3":   {WidthAcrossFlats: 5.5, WidthAcrossCorners: 6.35, Height: 1.8},
	"M4":   {WidthAcrossFlats: 7.0, WidthAcrossCorners: 8.08, Height: 2.2},
	"M5":   {WidthAcrossFlats: 8.0, WidthAcrossCorners: 9.24, Height: 2.7},
	"M6":   {WidthAcrossFlats: 10.0, WidthAcrossCorners: 11.55, Height: 3.2},
	"M8":   {WidthAcrossFlats: 13.0, WidthAcrossCorners: 15.01, Height: 4.0},
	"M10":  {WidthAcrossFlats: 16.0, WidthAcrossCorners: 18.48, Height: 5.0},
	"M12":  {WidthAcrossFlats: 18.0, WidthAcrossCorners: 20.78, Height: 6.0},
}

// HexNut returns hexagon nut dimensions. Style is "style1" or "thin";
// an empty style means style1.
func HexNut(size, style string) (Nut, bool) {
	switch style {
	case "", "style1":
		n, ok := hexNutsStyle1[normalizeSize(size)]
		return n, ok
	case "thin":
		n, ok := hexNutsThin[normalizeSize(size)]
		return n, ok
	default:
		return Nut{}, false
	}
}
