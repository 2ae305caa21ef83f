package geometry

import (
	"math"
	"testing"
)

func TestUnitConversionRoundTrip(t *testing.T) {
	values := []float64{0, 1, 2.5, 100, 0.05}
	for _, mm := range values {
		got := CMToMM(MMToCM(mm))
		if math.Abs(got-mm) > 1e-12 {
			t.Fatalf("round trip for %v mm: got %v", mm, got)
		}
	}
	if MMToCM(25) != 2.5 {
		t.Fatalf("expected 25mm = 2.5cm, got %v", MMToCM(25))
	}
}

func TestAngleConversion(t *testing.T) {
	if got := DegToRad(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Fatalf("expected pi, got %v", got)
	}
}

func TestPolygonVertices(t *testing.T) {
	verts := PolygonVertices(1, 1, 2, 4)
	if len(verts) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(verts))
	}
	want := [][2]float64{{3, 1}, {1, 3}, {-1, 1}, {1, -1}}
	for i, v := range verts {
		if math.Abs(v[0]-want[i][0]) > 1e-12 || math.Abs(v[1]-want[i][1]) > 1e-12 {
			t.Fatalf("vertex %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestPointMMConverts(t *testing.T) {
	p := PointMM(10, 20, 30)
	if p.X != 1 || p.Y != 2 || p.Z != 3 {
		t.Fatalf("expected (1,2,3)cm, got %+v", p)
	}
}

func TestDistance(t *testing.T) {
	a := Point3D{}
	b := Point3D{X: 3, Y: 4}
	if got := Distance(a, b); math.Abs(got-5) > 1e-12 {
		t.Fatalf("expected 5, got %v", got)
	}
}
