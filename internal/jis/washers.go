package jis

// Washer holds plain washer dimensions per JIS B1256.
type Washer struct {
	InnerDiameter float64 // d1
	OuterDiameter float64 // d2
	Thickness     float64 // t
}

// Plain washers, normal series.
var plainWashers = map[string]Washer{
	"M2":   {InnerDiameter: 2.2, OuterDiameter: 5.0, Thickness: 0.3},
	"M2.5": {InnerDiameter: 2.7, OuterDiameter: 6.0, Thickness: 0.5},
	"M3":   {InnerDiameter: 3.2, OuterDiameter: 7.0, Thickness: 0.5},
	"M4":   {InnerDiameter: 4.3, OuterDiameter: 9.0, Thickness: 0.8},
	"M5":   {InnerDiameter: 5.3, OuterDiameter: 10.0, Thickness: 1.0},
	"M6":   {InnerDiameter: 6.4, OuterDiameter: 12.0, Thickness: 1.6},
	"M8":   {InnerDiameter: 8.4, OuterDiameter: 16.0, Thickness: 1.6},
	"M10":  {InnerDiameter: 10.5, OuterDiameter: 20.0, Thickness: 2.0},
	"M12":  {InnerDiameter: 13.0, OuterDiameter: 24.0, Thickness: 2.5},
}

// Plain washers, small series.
var smallWashers = map[string]Washer{
	"M2":   {InnerDiameter: 2.2, OuterDiameter: 4.0, Thickness: 0.3},
	"M2.5": {InnerDiameter: 2.7, OuterDiameter: 5.0, Thickness: 0.5},
	"M3":   {InnerDiameter: 3.2, OuterDiameter: 6.0, Thickness: 0.5},
	"M4":   {InnerDiameter: 4.3, OuterDiameter: 8.0, Thickness: 0.5},
	"M5":   {InnerDiameter: 5.3, OuterDiameter: 9.0, Thickness: 1.0},
	"M6":   {InnerDiameter: 6.4, OuterDiameter: 11.0, Thickness: 1.6},
	"M8":   {InnerDiameter: 8.4, OuterDiameter: 15.0, Thickness: 1.6},
	"M10":  {InnerDiameter: 10.5, OuterDiameter: 18.0, Thickness: 1.6},
	"M12":  {InnerDiameter: 13.0, OuterDiameter: 20.0, Thickness: 2.0},
}

// PlainWasher returns plain washer dimensions. Series is "normal" or
// "small"; an empty series means normal.
func PlainWasher(size, series string) (Washer, bool) {
	switch series {
	case "", "normal":
		w, ok := plainWashers[normalizeSize(size)]
		return w, ok
	case "small":
		w, ok := smallWashers[normalizeSize(size)]
		return w, ok
	default:
		return Washer{}, false
	}
}
