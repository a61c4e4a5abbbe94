// Package opensky provides a client for the OpenSky Network state-vectors API.
//
// The API exposes live ADS-B state vectors as fixed-order JSON arrays; this
// package parses them into named structs at the wire boundary so nothing else
// in the program indexes by position.
//
// API Documentation: https://openskynetwork.github.io/opensky-api/rest.html
// Rate Limits: anonymous access is limited to a small daily credit budget and
// answers HTTP 429 when it is exhausted.
package opensky

import (
	"strings"
	"time"

	"github.com/unklstewy/flyby/pkg/coordinates"
)

// StateVector is one aircraft report from the /states/all endpoint.
// Fields that the API may send as JSON null are pointers.
type StateVector struct {
	// ICAO24 is the unique 24-bit ICAO transponder address (e.g., "3c6444")
	ICAO24 string `json:"icao24"`

	// Callsign is the broadcast callsign, padded to 8 characters by the API
	Callsign *string `json:"callsign"`

	// OriginCountry is the country of registration (e.g., "France")
	OriginCountry *string `json:"origin_country"`

	// Longitude in decimal degrees (WGS84)
	Longitude *float64 `json:"longitude"`

	// Latitude in decimal degrees (WGS84)
	Latitude *float64 `json:"latitude"`

	// BaroAltitude is the barometric altitude in meters
	BaroAltitude *float64 `json:"baro_altitude"`

	// OnGround reports whether the position came from a surface report
	OnGround bool `json:"on_ground"`

	// Velocity is the ground speed in meters per second
	Velocity *float64 `json:"velocity"`

	// TrueTrack is the track over ground in degrees (0 = north, clockwise)
	TrueTrack *float64 `json:"true_track"`

	// VerticalRate in meters per second (positive = climbing)
	VerticalRate *float64 `json:"vertical_rate"`
}

// Label returns the trimmed callsign, or the ICAO24 address when the
// transponder broadcast no usable callsign.
func (s StateVector) Label() string {
	if s.Callsign != nil {
		if cs := strings.TrimSpace(*s.Callsign); cs != "" {
			return cs
		}
	}
	return s.ICAO24
}

// Position returns the aircraft coordinate when both latitude and longitude
// were present in the report.
func (s StateVector) Position() (coordinates.Coordinate, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return coordinates.Coordinate{}, false
	}
	return coordinates.Coordinate{Latitude: *s.Latitude, Longitude: *s.Longitude}, true
}

// Snapshot is the set of state vectors returned by a single API query,
// in the order the API sent them.
type Snapshot struct {
	// Time is the validity timestamp of the state vectors
	Time time.Time `json:"time"`

	// States are the aircraft reports inside the queried bounding box
	States []StateVector `json:"states"`
}

// emptySnapshot is the degraded result used when no flight data could be
// retrieved: valid, current, zero aircraft.
func emptySnapshot() *Snapshot {
	return &Snapshot{Time: time.Now().UTC(), States: []StateVector{}}
}

// stateFromArray converts one positional array from the wire into a
// StateVector. It reports false for malformed entries: arrays shorter than
// the 12 fields consumed here, or an icao24 that is not a string.
func stateFromArray(raw []interface{}) (StateVector, bool) {
	if len(raw) < 12 {
		return StateVector{}, false
	}

	icao, ok := raw[0].(string)
	if !ok {
		return StateVector{}, false
	}

	sv := StateVector{ICAO24: icao}
	sv.Callsign = asString(raw[1])
	sv.OriginCountry = asString(raw[2])
	sv.Longitude = asFloat(raw[5])
	sv.Latitude = asFloat(raw[6])
	sv.BaroAltitude = asFloat(raw[7])
	if onGround, ok := raw[8].(bool); ok {
		sv.OnGround = onGround
	}
	sv.Velocity = asFloat(raw[9])
	sv.TrueTrack = asFloat(raw[10])
	sv.VerticalRate = asFloat(raw[11])

	return sv, true
}

// asString extracts a string element, mapping JSON null (or a wrong type)
// to nil.
func asString(v interface{}) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// asFloat extracts a numeric element, mapping JSON null (or a wrong type)
// to nil.
func asFloat(v interface{}) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}
