package coordinates

import (
	"fmt"
	"math"
)

// BoundingBox is a latitude/longitude box around a center point.
// Invariants: LatMin <= LatMax and LonMin <= LonMax. Bounds are NOT
// normalized to [-180, 180]; a box spanning the antimeridian keeps its raw
// values, which the state-vector API accepts as-is.
type BoundingBox struct {
	// LatMin is the southern edge in decimal degrees
	LatMin float64

	// LatMax is the northern edge in decimal degrees
	LatMax float64

	// LonMin is the western edge in decimal degrees
	LonMin float64

	// LonMax is the eastern edge in decimal degrees
	LonMax float64
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%.4f..%.4f, %.4f..%.4f]", b.LatMin, b.LatMax, b.LonMin, b.LonMax)
}

// BoundingBoxAround computes the box that contains every point within
// radiusKm of center, using a great-circle approximation on a spherical
// Earth. Pure function: identical inputs always produce identical output.
//
// The longitude half-width is asin(sin(d)/cos(lat)) for angular distance d.
// That expression diverges when the circle reaches a pole (cos(lat) near
// zero, or sin(d) >= cos(lat)); in that case the box spans all longitudes,
// so the half-width is clamped to 180°.
//
// radiusKm must be positive; callers validate their inputs.
func BoundingBoxAround(center Coordinate, radiusKm float64) BoundingBox {
	latRad := center.Latitude * DegreesToRadians
	lonRad := center.Longitude * DegreesToRadians

	angular := radiusKm / EarthRadiusKm

	deltaLon := math.Pi
	if ratio := math.Sin(angular) / math.Cos(latRad); ratio < 1 {
		deltaLon = math.Asin(ratio)
	}

	return BoundingBox{
		LatMin: (latRad - angular) * RadiansToDegrees,
		LatMax: (latRad + angular) * RadiansToDegrees,
		LonMin: (lonRad - deltaLon) * RadiansToDegrees,
		LonMax: (lonRad + deltaLon) * RadiansToDegrees,
	}
}
