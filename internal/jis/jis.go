package jis

import (
	"sort"
	"strings"
)

// Thread holds ISO metric coarse thread dimensions per JIS B0205.
type Thread struct {
	NominalDiameter float64 // d
	Pitch           float64 // p
	PitchDiameter   float64 // d2
	MinorDiameter   float64 // d1
}

var coarseThreads = map[string]Thread{
	"M2":   {NominalDiameter: 2.0, Pitch: 0.4, PitchDiameter: 1.740, MinorDiameter: 1.509},
	"M2.5": {NominalDiameter: 2.5, Pitch: 0.45, PitchDiameter: 2.208, MinorDiameter: 1.948},
	"M3":   {NominalDiameter: 3.0, Pitch: 0.5, PitchDiameter: 2.675, MinorDiameter: 2.387},
	"M4":   {NominalDiameter: 4.0, Pitch: 0.7, PitchDiameter: 3.545, MinorDiameter: 3.141},
	"M5":   {NominalDiameter: 5.0, Pitch: 0.8, PitchDiameter: 4.480, MinorDiameter: 4.019},
	"M6":   {NominalDiameter: 6.0, Pitch: 1.0, PitchDiameter: 5.350, MinorDiameter: 4.773},
	"M8":   {NominalDiameter: 8.0, Pitch: 1.25, PitchDiameter: 7.188, MinorDiameter: 6.466},
	"M10":  {NominalDiameter: 10.0, Pitch: 1.5, PitchDiameter: 9.026, MinorDiameter: 8.160},
	"M12":  {NominalDiameter: 12.0, Pitch: 1.75, PitchDiameter: 10.863, MinorDiameter: 9.853},
}

// CoarseThread returns coarse thread dimensions for a size like "M6".
func CoarseThread(size string) (Thread, bool) {
	t, ok := coarseThreads[normalizeSize(size)]
	return t, ok
}

// Sizes returns the thread sizes present in the coarse thread table,
// smallest first.
func Sizes() []string {
	sizes := make([]string, 0, len(coarseThreads))
	for size := range coarseThreads {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool {
		return coarseThreads[sizes[i]].NominalDiameter < coarseThreads[sizes[j]].NominalDiameter
	})
	return sizes
}

// normalizeSize uppercases a size designation so "m3" matches "M3".
func normalizeSize(size string) string {
	return strings.ToUpper(strings.TrimSpace(size))
}
