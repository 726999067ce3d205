// Command genmock generates a synthetic hourly observation extract CSV for
// the known monitoring locations, in the format cmd/load expects. Values
// follow a seasonal and diurnal curve with a configurable fraction of
// missing cells and out-of-range spikes, so the quality layer has realistic
// work to do.
//
// Usage:
//
//	go run ./cmd/genmock -start 2024-01-01 -days 60 -out data/extracts/mock.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/monsoonlab/weather-marts-etl/internal/domain"
)

var header = []string{
	"record_id", "datetime", "location_name", "latitude", "longitude",
	"temperature", "humidity", "precipitation", "pressure",
	"wind_speed", "wind_direction", "cloud_cover", "extract_date",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	start := flag.String("start", "2024-01-01", "first observation date (YYYY-MM-DD)")
	days := flag.Int("days", 60, "number of days to generate")
	out := flag.String("out", "", "output CSV path")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	missingRate := flag.Float64("missing-rate", 0.02, "fraction of measurement cells left empty")
	spikeRate := flag.Float64("spike-rate", 0.01, "fraction of rows given an out-of-range spike")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		return fmt.Errorf("parse -start: %w", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	extractDate := startDate.AddDate(0, 0, *days)

	rows := generate(rng, startDate, *days, extractDate, *missingRate, *spikeRate)
	if err := writeCSV(*out, rows); err != nil {
		return err
	}

	log.Printf("wrote %d rows for %d locations over %d days: %s",
		len(rows), len(domain.KnownLocations), *days, *out)
	return nil
}

func generate(rng *rand.Rand, start time.Time, days int, extractDate time.Time, missingRate, spikeRate float64) [][]string {
	var rows [][]string
	for _, loc := range domain.KnownLocations {
		for d := 0; d < days; d++ {
			for h := 0; h < 24; h++ {
				ts := start.AddDate(0, 0, d).Add(time.Duration(h) * time.Hour)
				rows = append(rows, observationRow(rng, loc, ts, extractDate, missingRate, spikeRate))
			}
		}
	}
	return rows
}

// observationRow synthesizes one hourly row. Temperature rides a seasonal
// base plus a diurnal sine peaking mid-afternoon; humidity moves inversely;
// precipitation is bursty and mostly zero outside the rainy season.
func observationRow(rng *rand.Rand, loc domain.KnownLocation, ts, extractDate time.Time, missingRate, spikeRate float64) []string {
	seasonal := 3 * math.Cos(2*math.Pi*float64(ts.YearDay()-15)/365)
	diurnal := 4 * math.Sin(2*math.Pi*float64(ts.Hour()-9)/24)
	temp := 27 - (loc.Latitude-10)/3 + seasonal + diurnal + rng.NormFloat64()

	humidity := clampTo(78-2*diurnal+rng.NormFloat64()*6, 30, 100)
	pressure := 1010 + 3*math.Cos(2*math.Pi*float64(ts.YearDay())/365) + rng.NormFloat64()*2
	wind := math.Abs(rng.NormFloat64()*6 + 8)
	windDir := rng.Float64() * 360
	cloud := clampTo(50+2.5*humidity-170+rng.NormFloat64()*20, 0, 100)

	precip := 0.0
	rainy := domain.SeasonFor(ts.Month()) == domain.SeasonRainy
	if p := rng.Float64(); (rainy && p < 0.35) || (!rainy && p < 0.08) {
		precip = rng.ExpFloat64() * 3
	}

	if rng.Float64() < spikeRate {
		// Sensor fault: one measurement jumps far outside its valid range.
		switch rng.Intn(4) {
		case 0:
			temp = -999
		case 1:
			humidity = 150
		case 2:
			pressure = 400
		case 3:
			wind = 999
		}
	}

	cell := func(v float64, decimals int) string {
		if rng.Float64() < missingRate {
			return ""
		}
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}

	datetime := ts.Format("2006-01-02 15:04:05")
	return []string{
		loc.Name + "_" + datetime,
		datetime,
		loc.Name,
		strconv.FormatFloat(loc.Latitude, 'f', 4, 64),
		strconv.FormatFloat(loc.Longitude, 'f', 4, 64),
		cell(temp, 1),
		cell(humidity, 0),
		cell(precip, 2),
		cell(pressure, 1),
		cell(wind, 1),
		cell(windDir, 0),
		cell(cloud, 0),
		extractDate.Format("2006-01-02"),
	}
}

func clampTo(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
