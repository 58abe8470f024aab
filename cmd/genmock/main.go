// Command genmock generates mock data fixtures for the ETL test suites from a
// built-in table of city observations. It runs the actual domain scoring code
// so the scored fixture matches real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -raw-out data/mock/observations_raw.json \
//	  -scored-out data/mock/observations_scored.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/aqi"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
)

// baseTime is the fixed observation timestamp baked into every fixture record.
var baseTime = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

// cityReading defines one mock observation: a location plus provider component
// concentrations in µg/m³.
type cityReading struct {
	name       string
	lat, lon   float64
	components map[string]float64
}

// Component profiles span all six AQI categories so downstream tests can
// assert on every category level.
var cityReadings = []cityReading{
	{
		name: "Aracaju", lat: -10.9472, lon: -37.0731,
		components: map[string]float64{
			"co": 201.94, "no": 0.02, "no2": 0.77, "o3": 68.66,
			"so2": 0.64, "pm2_5": 0.5, "pm10": 0.54, "nh3": 0.12,
		},
	},
	{
		name: "Los Angeles", lat: 34.0522, lon: -118.2437,
		components: map[string]float64{
			"co": 450.61, "no2": 35.99, "o3": 92.98,
			"so2": 4.29, "pm2_5": 22.5, "pm10": 31.2,
		},
	},
	{
		name: "Mexico City", lat: 19.4326, lon: -99.1332,
		components: map[string]float64{
			"co": 834.47, "no2": 58.95, "o3": 147.34,
			"so2": 12.4, "pm2_5": 41.8, "pm10": 66.0,
		},
	},
	{
		name: "Delhi", lat: 28.7041, lon: 77.1025,
		components: map[string]float64{
			"co": 2216.34, "no2": 98.7, "o3": 54.36,
			"so2": 28.61, "pm2_5": 132.45, "pm10": 204.18,
		},
	},
	{
		name: "Lahore", lat: 31.5204, lon: 74.3587,
		components: map[string]float64{
			"co": 3471.37, "no2": 112.43, "o3": 21.46,
			"so2": 45.78, "pm2_5": 238.9, "pm10": 312.6,
		},
	},
	{
		name: "Wildfire Plume", lat: 45.5152, lon: -122.6784,
		components: map[string]float64{
			"co": 5340.58, "no2": 64.2, "o3": 38.62,
			"so2": 18.3, "pm2_5": 402.7, "pm10": 487.3,
		},
	},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	rawOut := flag.String("raw-out", "", "output path for raw observation JSON fixture")
	scoredOut := flag.String("scored-out", "", "output path for scored observation JSON fixture")
	flag.Parse()

	if *rawOut == "" || *scoredOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -raw-out, -scored-out")
	}

	// Set a fixed clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.August, 20, 12, 5, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	rawRecords := make([]domain.RawObservationRecord, 0, len(cityReadings))
	scored := make([]domain.ScoredObservation, 0, len(cityReadings))

	for _, city := range cityReadings {
		rec := domain.RawObservationRecord{
			Name:       city.name,
			Lat:        city.lat,
			Lon:        city.lon,
			Dt:         baseTime.Unix(),
			Components: city.components,
		}
		rawRecords = append(rawRecords, rec)

		// Run the actual ETL transformation.
		rawJSON, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal record for %s: %w", city.name, err)
		}

		obs, err := domain.ParseRawEvent(domain.RawEvent{
			Value:     rawJSON,
			Timestamp: baseTime,
		})
		if err != nil {
			return fmt.Errorf("parse raw event for %s: %w", city.name, err)
		}

		s, err := domain.ScoreObservation(obs)
		if err != nil {
			return fmt.Errorf("score observation for %s: %w", city.name, err)
		}
		scored = append(scored, s)
	}

	if err := writeJSON(*rawOut, rawRecords); err != nil {
		return fmt.Errorf("writing raw fixture: %w", err)
	}
	log.Printf("wrote raw fixture: %s (%d records)", *rawOut, len(rawRecords))

	if err := writeJSON(*scoredOut, scored); err != nil {
		return fmt.Errorf("writing scored fixture: %w", err)
	}
	log.Printf("wrote scored fixture: %s (%d records)", *scoredOut, len(scored))

	printStats(scored)
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(scored []domain.ScoredObservation) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(scored))

	categoryCounts := map[string]int{}
	dominantCounts := map[string]int{}
	for i := range scored {
		s := &scored[i]
		categoryCounts[s.Category.Level]++
		dominantCounts[s.Result.Dominant.String()]++
	}

	fmt.Printf("By category: %v\n", categoryCounts)
	fmt.Printf("By dominant pollutant: %v\n", dominantCounts)

	for i := range scored {
		s := &scored[i]
		fmt.Printf("\n%s:\n", s.Name)
		fmt.Printf("  ID: %s\n", s.ID)
		fmt.Printf("  Overall AQI: %d (%s)\n", s.Result.OverallAQI, s.Category.Level)
		fmt.Printf("  Dominant: %s\n", s.Result.Dominant)
		for _, p := range sortedPollutants(s) {
			sub := s.Result.PerPollutant[p]
			fmt.Printf("  %-6s conc=%g aqi=%d\n", p.String(), sub.Concentration, sub.AQI)
		}
	}
}

// sortedPollutants returns the observation's pollutants in canonical order so
// the report is stable between runs.
func sortedPollutants(s *domain.ScoredObservation) []aqi.Pollutant {
	keys := make([]aqi.Pollutant, 0, len(s.Result.PerPollutant))
	for _, p := range aqi.Pollutants() {
		if _, ok := s.Result.PerPollutant[p]; ok {
			keys = append(keys, p)
		}
	}
	return keys
}
