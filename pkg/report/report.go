// Package report renders a flight snapshot for people: a styled console
// report, a standalone HTML document, or rows for other front ends.
package report

import (
	"fmt"

	"github.com/unklstewy/flyby/pkg/coordinates"
	"github.com/unklstewy/flyby/pkg/geoloc"
	"github.com/unklstewy/flyby/pkg/opensky"
)

// Row is one aircraft formatted for display. Missing wire fields render as
// "n/a" so every renderer shows the same thing.
type Row struct {
	// Label is the trimmed callsign (or ICAO24 fallback)
	Label string

	// ICAO24 is the transponder address
	ICAO24 string

	// Country is the state of registration
	Country string

	// Altitude like "10000m"
	Altitude string

	// Speed like "230m/s"
	Speed string

	// Track like "45° NE"
	Track string

	// Climb like "2.1m/s" (negative when descending)
	Climb string

	// Distance like "6.0km NE", measured from the search center; empty
	// when the report carried no position
	Distance string

	// Ground is true for surface reports
	Ground bool

	// Status is "airborne" or "on ground"
	Status string
}

// BuildRow formats one state vector relative to the search center.
func BuildRow(sv opensky.StateVector, center coordinates.Coordinate) Row {
	r := Row{
		Label:    sv.Label(),
		ICAO24:   sv.ICAO24,
		Country:  "n/a",
		Altitude: "n/a",
		Speed:    "n/a",
		Track:    "n/a",
		Climb:    "n/a",
		Status:   "airborne",
	}

	if sv.OriginCountry != nil {
		r.Country = *sv.OriginCountry
	}
	if sv.BaroAltitude != nil {
		r.Altitude = fmt.Sprintf("%.0fm", *sv.BaroAltitude)
	}
	if sv.Velocity != nil {
		r.Speed = fmt.Sprintf("%.0fm/s", *sv.Velocity)
	}
	if sv.TrueTrack != nil {
		r.Track = fmt.Sprintf("%.0f° %s", *sv.TrueTrack, coordinates.Cardinal(*sv.TrueTrack))
	}
	if sv.VerticalRate != nil {
		r.Climb = fmt.Sprintf("%.1fm/s", *sv.VerticalRate)
	}
	if sv.OnGround {
		r.Ground = true
		r.Status = "on ground"
	}
	if pos, ok := sv.Position(); ok {
		dist := coordinates.DistanceKm(center, pos)
		bearing := coordinates.Bearing(center, pos)
		r.Distance = fmt.Sprintf("%.1fkm %s", dist, coordinates.Cardinal(bearing))
	}

	return r
}

// BuildRows formats a whole snapshot, preserving API order.
func BuildRows(snap *opensky.Snapshot, center coordinates.Coordinate) []Row {
	rows := make([]Row, 0, len(snap.States))
	for _, sv := range snap.States {
		rows = append(rows, BuildRow(sv, center))
	}
	return rows
}

// countLine is the shared closing line of every renderer.
func countLine(n int) string {
	return fmt.Sprintf("%d aircraft detected", n)
}

// headline summarizes where and how wide the search was.
func headline(loc geoloc.Location, radiusKm float64) string {
	return fmt.Sprintf("%s (%s), radius %.1f km", loc.Coordinate, loc.Method, radiusKm)
}
