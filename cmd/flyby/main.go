package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/unklstewy/flyby/internal/cache"
	"github.com/unklstewy/flyby/pkg/config"
	"github.com/unklstewy/flyby/pkg/coordinates"
	"github.com/unklstewy/flyby/pkg/geoloc"
	"github.com/unklstewy/flyby/pkg/opensky"
	"github.com/unklstewy/flyby/pkg/report"
)

// main wires the whole flyby pipeline:
// - location resolution (manual coordinates or IP geolocation fallback chain)
// - bounding box computation around the location
// - state-vector fetch from OpenSky (cached, rate limited, retried)
// - report rendering (console, HTML, or interactive TUI)
func main() {
	configPath := flag.String("config", "", "Path to JSON configuration file (optional)")
	radius := flag.Float64("radius", config.DefaultRadiusDegrees, "Search radius in decimal degrees (0.01-5)")
	lat := flag.String("lat", "", "Manual latitude in decimal degrees (requires -lon)")
	lon := flag.String("lon", "", "Manual longitude in decimal degrees (requires -lat)")
	htmlOut := flag.Bool("html", false, "Write an HTML report and open it in the default browser")
	tuiOut := flag.Bool("tui", false, "Browse the snapshot in an interactive terminal UI")
	noOpen := flag.Bool("no-open", false, "With -html, write the report without opening a browser")
	noCache := flag.Bool("no-cache", false, "Always fetch fresh data, bypassing the response cache")
	cacheMinutes := flag.Int("cache-minutes", config.DefaultCacheMinutes, "Cache lifetime in minutes (1-60)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags set on the command line win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "radius":
			cfg.Search.RadiusDegrees = *radius
		case "lat":
			cfg.Search.Latitude = *lat
		case "lon":
			cfg.Search.Longitude = *lon
		case "html":
			cfg.Output.HTML = *htmlOut
		case "tui":
			cfg.Output.TUI = *tuiOut
		case "no-open":
			cfg.Output.NoOpen = *noOpen
		case "no-cache":
			cfg.Cache.Disabled = *noCache
		case "cache-minutes":
			cfg.Cache.TTLMinutes = *cacheMinutes
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	// Resolve where "here" is. This is the only step that can abort the
	// run: without a location there is nothing to search around.
	var loc geoloc.Location
	if cfg.ManualCoordinates() {
		loc, err = geoloc.Manual(cfg.Search.Latitude, cfg.Search.Longitude)
	} else {
		resolver := geoloc.NewResolver(geoloc.DefaultProviders()...)
		loc, err = resolver.Resolve(ctx)
	}
	if err != nil {
		log.Fatalf("Failed to determine location: %v", err)
	}

	radiusKm := cfg.Search.RadiusDegrees * coordinates.KmPerDegree
	box := coordinates.BoundingBoxAround(loc.Coordinate, radiusKm)
	log.Printf("Location: %s (%s)", loc.Coordinate, loc.Method)
	log.Printf("Searching within %.1f km (%.2f°)", radiusKm, cfg.Search.RadiusDegrees)

	store := cache.New(cfg.Cache.FilePath, cfg.CacheTTL(), cfg.Cache.Disabled)
	snap := store.Load()
	if snap != nil {
		log.Printf("Using cached flight data (%d aircraft)", len(snap.States))
	} else {
		client := opensky.NewClient(opensky.Config{
			BaseURL:           cfg.OpenSky.BaseURL,
			Timeout:           cfg.OpenSkyTimeout(),
			RequestsPerMinute: cfg.OpenSky.RequestsPerMinute,
		})
		// Degraded snapshots are rendered but never cached.
		fetched, fresh := client.NearbySnapshot(ctx, box)
		if fresh {
			store.Store(fetched)
		}
		snap = fetched
	}

	switch {
	case cfg.Output.TUI:
		if err := runTUI(snap, loc, radiusKm); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cfg.Output.HTML:
		path, err := report.WriteHTMLFile(".", snap, loc, radiusKm)
		if err != nil {
			log.Printf("Warning: %v", err)
			report.Console(os.Stdout, snap, loc, radiusKm)
			return
		}
		log.Printf("Report written to %s", path)
		if !cfg.Output.NoOpen {
			if err := report.OpenInBrowser(path); err != nil {
				log.Printf("Warning: failed to open browser: %v", err)
			}
		}
	default:
		report.Console(os.Stdout, snap, loc, radiusKm)
	}
}
