package geoloc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/unklstewy/flyby/pkg/coordinates"
)

// DefaultProviders returns the geolocation fallback chain. Order matters:
// providers are tried front to back and the first valid answer wins.
func DefaultProviders() []Provider {
	return []Provider{
		{
			Name:  "ip-api.com",
			URL:   "http://ip-api.com/json/",
			Parse: parseIPAPI,
		},
		{
			Name:  "ipinfo.io",
			URL:   "https://ipinfo.io/json",
			Parse: parseIPInfo,
		},
		{
			Name:  "ipapi.co",
			URL:   "https://ipapi.co/json/",
			Parse: parseIPAPICo,
		},
	}
}

// parseIPAPI handles ip-api.com responses:
// {"status":"success","lat":48.8566,"lon":2.3522,...}
func parseIPAPI(body []byte) (coordinates.Coordinate, error) {
	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return coordinates.Coordinate{}, err
	}
	if payload.Status != "" && payload.Status != "success" {
		return coordinates.Coordinate{}, fmt.Errorf("provider status %q: %s", payload.Status, payload.Message)
	}
	return coordinates.Coordinate{Latitude: payload.Lat, Longitude: payload.Lon}, nil
}

// parseIPInfo handles ipinfo.io responses, where the position arrives as a
// combined "lat,lon" string:
// {"loc":"48.8566,2.3522",...}
func parseIPInfo(body []byte) (coordinates.Coordinate, error) {
	var payload struct {
		Loc string `json:"loc"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return coordinates.Coordinate{}, err
	}

	parts := strings.Split(payload.Loc, ",")
	if len(parts) != 2 {
		return coordinates.Coordinate{}, fmt.Errorf("malformed loc field %q", payload.Loc)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return coordinates.Coordinate{}, fmt.Errorf("malformed latitude in loc %q", payload.Loc)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return coordinates.Coordinate{}, fmt.Errorf("malformed longitude in loc %q", payload.Loc)
	}

	return coordinates.Coordinate{Latitude: lat, Longitude: lon}, nil
}

// parseIPAPICo handles ipapi.co responses:
// {"latitude":48.8566,"longitude":2.3522,...}
// Errors arrive as {"error":true,"reason":"..."}.
func parseIPAPICo(body []byte) (coordinates.Coordinate, error) {
	var payload struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Error     bool    `json:"error"`
		Reason    string  `json:"reason"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return coordinates.Coordinate{}, err
	}
	if payload.Error {
		return coordinates.Coordinate{}, fmt.Errorf("provider error: %s", payload.Reason)
	}
	return coordinates.Coordinate{Latitude: payload.Latitude, Longitude: payload.Longitude}, nil
}
