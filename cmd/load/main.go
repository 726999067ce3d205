// Command load appends hourly observation CSV files to the raw warehouse
// layer. Rows whose record_id already exists are skipped, so re-loading the
// same extract is safe. With RETENTION_DAYS set, rows older than the
// retention window are pruned after loading.
//
// The expected CSV header is the extraction format:
//
//	record_id,datetime,location_name,latitude,longitude,temperature,
//	humidity,precipitation,pressure,wind_speed,wind_direction,cloud_cover,
//	extract_date
//
// Usage:
//
//	go run ./cmd/load data/extracts/*.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/monsoonlab/weather-marts-etl/internal/adapter/warehouse"
	"github.com/monsoonlab/weather-marts-etl/internal/config"
	"github.com/monsoonlab/weather-marts-etl/internal/domain"
	"github.com/monsoonlab/weather-marts-etl/internal/observability"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <csv-file> [csv-file...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, flag.Args()); err != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config, paths []string) error {
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)

	store, err := warehouse.Open(cfg)
	if err != nil {
		logger.Error("failed to open warehouse", "error", err)
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("warehouse close error", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var totalRead, totalInserted int
	for _, path := range paths {
		rows, err := readObservations(path)
		if err != nil {
			logger.Error("failed to read csv", "path", path, "error", err)
			return err
		}

		inserted, err := store.AppendRawObservations(ctx, rows)
		if err != nil {
			logger.Error("failed to append observations", "path", path, "error", err)
			return err
		}

		logger.Info("loaded csv",
			"path", path,
			"rows", len(rows),
			"inserted", inserted,
			"skipped", len(rows)-inserted,
		)
		totalRead += len(rows)
		totalInserted += inserted
	}

	if cfg.RetentionDays > 0 {
		cutoff := domain.RunDate().AddDate(0, 0, -cfg.RetentionDays)
		pruned, err := store.PruneRaw(ctx, cutoff)
		if err != nil {
			logger.Error("failed to prune raw layer", "error", err)
			return err
		}
		logger.Info("pruned raw layer", "cutoff", cutoff.Format("2006-01-02"), "rows", pruned)
	}

	logger.Info("load complete", "rows_read", totalRead, "rows_inserted", totalInserted)
	return nil
}

// readObservations parses one extract CSV into raw observation rows. Empty
// measurement cells become nil pointers; a malformed datetime or coordinate
// fails the whole file rather than silently dropping the row.
func readObservations(path string) ([]domain.RawObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(all) < 2 {
		return nil, fmt.Errorf("no data rows in %s", path)
	}

	colIdx := map[string]int{}
	for i, h := range all[0] {
		colIdx[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{"record_id", "datetime", "location_name"} {
		if _, ok := colIdx[required]; !ok {
			return nil, fmt.Errorf("missing column %q in %s", required, path)
		}
	}

	loadedAt := time.Now().UTC()
	rows := make([]domain.RawObservation, 0, len(all)-1)
	for i, row := range all[1:] {
		obs, err := parseRow(row, colIdx, loadedAt)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, i+2, err)
		}
		rows = append(rows, obs)
	}
	return rows, nil
}

func parseRow(row []string, colIdx map[string]int, loadedAt time.Time) (domain.RawObservation, error) {
	get := func(col string) string {
		i, ok := colIdx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	obs := domain.RawObservation{
		RecordID:     get("record_id"),
		LocationName: get("location_name"),
		LoadedAt:     loadedAt,
	}

	var err error
	if obs.Datetime, err = parseTimestamp(get("datetime")); err != nil {
		return obs, fmt.Errorf("datetime: %w", err)
	}
	if obs.Latitude, err = parseCoord(get("latitude")); err != nil {
		return obs, fmt.Errorf("latitude: %w", err)
	}
	if obs.Longitude, err = parseCoord(get("longitude")); err != nil {
		return obs, fmt.Errorf("longitude: %w", err)
	}
	if v := get("extract_date"); v != "" {
		if obs.ExtractDate, err = parseTimestamp(v); err != nil {
			return obs, fmt.Errorf("extract_date: %w", err)
		}
	}

	measurements := []struct {
		col  string
		dest **float64
	}{
		{"temperature", &obs.Temperature},
		{"humidity", &obs.Humidity},
		{"precipitation", &obs.Precipitation},
		{"pressure", &obs.Pressure},
		{"wind_speed", &obs.WindSpeed},
		{"wind_direction", &obs.WindDirection},
		{"cloud_cover", &obs.CloudCover},
	}
	for _, m := range measurements {
		v := get(m.col)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return obs, fmt.Errorf("%s: %w", m.col, err)
		}
		*m.dest = &parsed
	}

	return obs, nil
}

// parseTimestamp accepts both date-only and datetime cells.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func parseCoord(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
