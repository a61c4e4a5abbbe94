// Package geoloc resolves the observer's position, either from manual
// coordinate input or by querying a fallback chain of IP geolocation
// services.
package geoloc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/unklstewy/flyby/pkg/coordinates"
)

// DefaultTimeout for geolocation requests
const DefaultTimeout = 10 * time.Second

// ErrNoLocation is returned when every provider in the chain failed. It is
// the only failure in the program that aborts the run.
var ErrNoLocation = errors.New("unable to determine location from any provider")

// Location is a resolved observer position.
type Location struct {
	// Coordinate is the resolved position
	Coordinate coordinates.Coordinate

	// Method records how the position was obtained (e.g., "Manual Input",
	// "ip-api.com Geolocation")
	Method string
}

// Provider is one IP geolocation service in the fallback chain.
type Provider struct {
	// Name identifies the service in logs and the location method label
	Name string

	// URL is the JSON endpoint queried with a plain GET
	URL string

	// Parse extracts a coordinate from the service's response body
	Parse func(body []byte) (coordinates.Coordinate, error)
}

// Resolver queries geolocation providers in order until one answers.
type Resolver struct {
	providers  []Provider
	httpClient *http.Client
}

// NewResolver creates a resolver over the given providers, or over the
// default chain when none are supplied.
func NewResolver(providers ...Provider) *Resolver {
	if len(providers) == 0 {
		providers = DefaultProviders()
	}
	return &Resolver{
		providers: providers,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Manual builds a location from user-supplied coordinate strings without any
// network access.
func Manual(lat, lon string) (Location, error) {
	latitude, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Location{}, fmt.Errorf("invalid latitude %q", lat)
	}
	longitude, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Location{}, fmt.Errorf("invalid longitude %q", lon)
	}

	coord := coordinates.Coordinate{Latitude: latitude, Longitude: longitude}
	if !coord.Valid() {
		return Location{}, fmt.Errorf("coordinate out of range: %s", coord)
	}

	return Location{Coordinate: coord, Method: "Manual Input"}, nil
}

// Resolve tries each provider in order and returns the first valid
// coordinate. Individual provider failures are logged and skipped; only when
// the whole chain is exhausted does it return ErrNoLocation.
func (r *Resolver) Resolve(ctx context.Context) (Location, error) {
	for _, p := range r.providers {
		coord, err := r.query(ctx, p)
		if err != nil {
			log.Printf("Warning: %s geolocation failed: %v", p.Name, err)
			continue
		}
		return Location{Coordinate: coord, Method: p.Name + " Geolocation"}, nil
	}
	return Location{}, ErrNoLocation
}

// query performs a single provider request. No retries: a failed provider
// simply hands over to the next one in the chain.
func (r *Resolver) query(ctx context.Context, p Provider) (coordinates.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.URL, nil)
	if err != nil {
		return coordinates.Coordinate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return coordinates.Coordinate{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return coordinates.Coordinate{}, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return coordinates.Coordinate{}, fmt.Errorf("read response: %w", err)
	}

	coord, err := p.Parse(body)
	if err != nil {
		return coordinates.Coordinate{}, fmt.Errorf("parse response: %w", err)
	}
	if !coord.Valid() {
		return coordinates.Coordinate{}, fmt.Errorf("out-of-range coordinate %s", coord)
	}

	return coord, nil
}
