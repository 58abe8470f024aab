// Command validate performs data integrity checks across the mock data
// fixtures: it re-runs the scoring pipeline over the raw observation fixture
// and verifies the scored fixture matches, field by field.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -raw-json data/mock/observations_raw.json \
//	  -scored-json data/mock/observations_scored.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MiguelCorado/haxkthon-air-quality/internal/aqi"
	"github.com/MiguelCorado/haxkthon-air-quality/internal/domain"
)

var baseTime = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	rawJSON := flag.String("raw-json", "", "path to raw observation JSON fixture")
	scoredJSON := flag.String("scored-json", "", "path to scored observation JSON fixture")
	flag.Parse()

	if *rawJSON == "" || *scoredJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*rawJSON, *scoredJSON); code != 0 {
		os.Exit(code)
	}
}

func run(rawJSONPath, scoredJSONPath string) int {
	// Set a fixed clock matching genmock for ProcessedAt reproducibility.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2026, time.August, 20, 12, 5, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Air Quality Data Integrity Validation ===")
	fmt.Println()

	rawRecords, err := loadJSON[domain.RawObservationRecord](rawJSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load raw JSON: %v\n", err)
		return 1
	}

	scored, err := loadJSON[domain.ScoredObservation](scoredJSONPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load scored JSON: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRawIntegrity(rawRecords),
		validateScoringParity(rawRecords, scored),
		validateCategoryAlignment(scored),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d raw, %d scored\n", len(rawRecords), len(scored))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Phase 1: every raw record must carry coordinates, a timestamp, and at least
// one component the engine knows how to score.
func validateRawIntegrity(raw []domain.RawObservationRecord) *phase {
	p := &phase{name: "Phase 1: Raw Fixture Integrity"}

	for i := range raw {
		rec := &raw[i]
		if rec.Lat < -90 || rec.Lat > 90 {
			p.errorf("record %d (%s): lat %g out of range", i, rec.Name, rec.Lat)
		}
		if rec.Lon < -180 || rec.Lon > 180 {
			p.errorf("record %d (%s): lon %g out of range", i, rec.Name, rec.Lon)
		}
		if rec.Dt <= 0 {
			p.errorf("record %d (%s): dt is unset", i, rec.Name)
		}

		usable := 0
		for key := range rec.Components {
			if _, err := aqi.ParsePollutant(key); err == nil {
				usable++
			}
		}
		if usable == 0 {
			p.errorf("record %d (%s): no scorable components", i, rec.Name)
		}
	}
	return p
}

// Phase 2: re-run the scoring pipeline over the raw fixture and compare the
// result with the scored fixture.
func validateScoringParity(raw []domain.RawObservationRecord, scored []domain.ScoredObservation) *phase {
	p := &phase{name: "Phase 2: Scoring Parity (re-run pipeline)"}

	if len(raw) != len(scored) {
		p.errorf("count mismatch: %d raw, %d scored", len(raw), len(scored))
	}

	scoredByID := map[string]*domain.ScoredObservation{}
	for i := range scored {
		if scored[i].ID == "" {
			p.errorf("scored record %d: missing ID", i)
			continue
		}
		scoredByID[scored[i].ID] = &scored[i]
	}

	for i := range raw {
		expected, err := rescoreRecord(raw[i])
		if err != nil {
			p.errorf("raw record %d (%s): %v", i, raw[i].Name, err)
			continue
		}

		actual, ok := scoredByID[expected.ID]
		if !ok {
			p.errorf("raw record %d (%s): ID %q not found in scored JSON", i, raw[i].Name, expected.ID)
			continue
		}

		compareScored(p, expected, actual)
	}
	return p
}

// rescoreRecord runs the same parse and score steps the pipeline does.
func rescoreRecord(rec domain.RawObservationRecord) (domain.ScoredObservation, error) {
	rawJSON, err := json.Marshal(rec)
	if err != nil {
		return domain.ScoredObservation{}, fmt.Errorf("marshal: %w", err)
	}
	obs, err := domain.ParseRawEvent(domain.RawEvent{
		Value:     rawJSON,
		Timestamp: baseTime,
	})
	if err != nil {
		return domain.ScoredObservation{}, fmt.Errorf("parse: %w", err)
	}
	return domain.ScoreObservation(obs)
}

func compareScored(p *phase, expected domain.ScoredObservation, actual *domain.ScoredObservation) {
	id := expected.ID

	if actual.Result.OverallAQI != expected.Result.OverallAQI {
		p.errorf("ID %s: overall AQI: expected %d, got %d", id, expected.Result.OverallAQI, actual.Result.OverallAQI)
	}
	if actual.Result.Dominant != expected.Result.Dominant {
		p.errorf("ID %s: dominant: expected %s, got %s", id, expected.Result.Dominant, actual.Result.Dominant)
	}
	if actual.Category.Level != expected.Category.Level {
		p.errorf("ID %s: category: expected %q, got %q", id, expected.Category.Level, actual.Category.Level)
	}
	if !actual.ObservedAt.Equal(expected.ObservedAt) {
		p.errorf("ID %s: observed_at: expected %s, got %s", id,
			expected.ObservedAt.Format(time.RFC3339), actual.ObservedAt.Format(time.RFC3339))
	}

	if len(actual.Result.PerPollutant) != len(expected.Result.PerPollutant) {
		p.errorf("ID %s: sub-index count: expected %d, got %d", id,
			len(expected.Result.PerPollutant), len(actual.Result.PerPollutant))
		return
	}
	for pollutant, want := range expected.Result.PerPollutant {
		got, ok := actual.Result.PerPollutant[pollutant]
		if !ok {
			p.errorf("ID %s: missing sub-index for %s", id, pollutant)
			continue
		}
		if got.AQI != want.AQI {
			p.errorf("ID %s: %s AQI: expected %d, got %d", id, pollutant, want.AQI, got.AQI)
		}
		if !floatEq(got.Concentration, want.Concentration) {
			p.errorf("ID %s: %s concentration: expected %g, got %g", id, pollutant, want.Concentration, got.Concentration)
		}
	}
}

// Phase 3: every scored record's category fields must agree with the AQI
// guide and its dominant pollutant must be one of its own sub-indexes.
func validateCategoryAlignment(scored []domain.ScoredObservation) *phase {
	p := &phase{name: "Phase 3: Category Alignment (AQI guide)"}

	for i := range scored {
		s := &scored[i]
		pf := func(format string, args ...any) {
			p.errorf("record %d (ID %s): "+format, append([]any{i, s.ID}, args...)...)
		}

		if s.Result.OverallAQI < 0 {
			pf("overall AQI %d is negative", s.Result.OverallAQI)
		}
		if want := aqi.LookupCategory(s.Result.OverallAQI); s.Category.Level != want.Level {
			pf("category %q does not match guide level %q for AQI %d", s.Category.Level, want.Level, s.Result.OverallAQI)
		}
		if s.Result.OverallAQI < s.Category.AQILow || s.Result.OverallAQI > s.Category.AQIHigh {
			pf("overall AQI %d outside category range [%d, %d]", s.Result.OverallAQI, s.Category.AQILow, s.Category.AQIHigh)
		}

		sub, ok := s.Result.PerPollutant[s.Result.Dominant]
		if !ok {
			pf("dominant pollutant %s has no sub-index", s.Result.Dominant)
		} else if sub.AQI != s.Result.OverallAQI {
			pf("dominant sub-index %d != overall AQI %d", sub.AQI, s.Result.OverallAQI)
		}

		if s.ProcessedAt.IsZero() {
			pf("processed_at is zero")
		}
	}
	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
