package coordinates

import (
	"math"
	"testing"
)

// TestBoundingBoxAroundContainsCenter tests that the box strictly contains
// the center point for typical latitudes and radii.
func TestBoundingBoxAroundContainsCenter(t *testing.T) {
	tests := []struct {
		name     string
		center   Coordinate
		radiusKm float64
	}{
		{"Paris 11km", Coordinate{48.8566, 2.3522}, 11.1},
		{"Equator 50km", Coordinate{0.0, 0.0}, 50.0},
		{"Southern hemisphere", Coordinate{-33.8688, 151.2093}, 25.0},
		{"High latitude", Coordinate{64.1466, -21.9426}, 100.0},
		{"Near antimeridian", Coordinate{-41.2866, 174.7756}, 200.0},
		{"Tiny radius", Coordinate{35.1871, -80.9218}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := BoundingBoxAround(tt.center, tt.radiusKm)

			if box.LatMin >= tt.center.Latitude || box.LatMax <= tt.center.Latitude {
				t.Errorf("latitude %f not inside [%f, %f]", tt.center.Latitude, box.LatMin, box.LatMax)
			}
			if box.LonMin >= tt.center.Longitude || box.LonMax <= tt.center.Longitude {
				t.Errorf("longitude %f not inside [%f, %f]", tt.center.Longitude, box.LonMin, box.LonMax)
			}
			if box.LatMin > box.LatMax {
				t.Errorf("LatMin %f > LatMax %f", box.LatMin, box.LatMax)
			}
			if box.LonMin > box.LonMax {
				t.Errorf("LonMin %f > LonMax %f", box.LonMin, box.LonMax)
			}
		})
	}
}

// TestBoundingBoxAroundSymmetry tests that the box is symmetric about the
// center within floating-point tolerance.
func TestBoundingBoxAroundSymmetry(t *testing.T) {
	const tolerance = 1e-9

	tests := []struct {
		name     string
		center   Coordinate
		radiusKm float64
	}{
		{"Paris", Coordinate{48.8566, 2.3522}, 11.1},
		{"Equator", Coordinate{0.0, -45.0}, 75.0},
		{"Mid latitude south", Coordinate{-45.0, 10.0}, 30.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := BoundingBoxAround(tt.center, tt.radiusKm)

			north := box.LatMax - tt.center.Latitude
			south := tt.center.Latitude - box.LatMin
			if math.Abs(north-south) > tolerance {
				t.Errorf("latitude spans asymmetric: north %g, south %g", north, south)
			}

			east := box.LonMax - tt.center.Longitude
			west := tt.center.Longitude - box.LonMin
			if math.Abs(east-west) > tolerance {
				t.Errorf("longitude spans asymmetric: east %g, west %g", east, west)
			}
		})
	}
}

// TestBoundingBoxAroundIdempotent tests that repeated calls with identical
// inputs produce bit-identical output.
func TestBoundingBoxAroundIdempotent(t *testing.T) {
	center := Coordinate{48.8566, 2.3522}

	first := BoundingBoxAround(center, 11.1)
	second := BoundingBoxAround(center, 11.1)

	if first != second {
		t.Errorf("expected identical boxes, got %+v and %+v", first, second)
	}
}

// TestBoundingBoxAroundLatitudeSpan tests that the latitude half-width
// matches the angular distance exactly.
func TestBoundingBoxAroundLatitudeSpan(t *testing.T) {
	center := Coordinate{10.0, 20.0}
	radiusKm := 111.0

	box := BoundingBoxAround(center, radiusKm)

	wantHalf := radiusKm / EarthRadiusKm * RadiansToDegrees
	gotHalf := box.LatMax - center.Latitude
	if math.Abs(gotHalf-wantHalf) > 1e-9 {
		t.Errorf("latitude half-width = %g, want %g", gotHalf, wantHalf)
	}
}

// TestBoundingBoxAroundPolarClamp tests the divergent cases: near a pole, or
// with a radius large enough to reach one, the longitude span is clamped to
// the full circle.
func TestBoundingBoxAroundPolarClamp(t *testing.T) {
	tests := []struct {
		name     string
		center   Coordinate
		radiusKm float64
	}{
		{"North pole", Coordinate{90.0, 0.0}, 10.0},
		{"South pole", Coordinate{-90.0, 45.0}, 10.0},
		{"Circle reaching the pole", Coordinate{89.5, 0.0}, 500.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := BoundingBoxAround(tt.center, tt.radiusKm)

			span := box.LonMax - box.LonMin
			if math.Abs(span-360.0) > 1e-6 {
				t.Errorf("longitude span = %f, want full 360", span)
			}
			if math.IsNaN(box.LonMin) || math.IsNaN(box.LonMax) {
				t.Error("longitude bounds must not be NaN")
			}
		})
	}
}

// TestBoundingBoxAroundNoWrapNormalization tests that a box crossing the
// antimeridian keeps raw values past 180 rather than wrapping.
func TestBoundingBoxAroundNoWrapNormalization(t *testing.T) {
	box := BoundingBoxAround(Coordinate{0.0, 179.9}, 50.0)

	if box.LonMax <= 180.0 {
		t.Errorf("expected LonMax past 180, got %f", box.LonMax)
	}
	if box.LonMin >= box.LonMax {
		t.Errorf("LonMin %f >= LonMax %f", box.LonMin, box.LonMax)
	}
}
