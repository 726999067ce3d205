// Command validate runs the data-quality assertion battery against the
// materialized warehouse layers: statistical ordering and uniqueness of the
// daily fact table, quality score integrity, leakage checks on the feature
// table, and location/date coverage. It exits non-zero when any assertion
// fails, so it can gate a deploy or a notebook refresh.
//
// Usage:
//
//	go run ./cmd/validate [-max-violations 20]
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"

	"github.com/monsoonlab/weather-marts-etl/internal/adapter/warehouse"
	"github.com/monsoonlab/weather-marts-etl/internal/config"
	"github.com/monsoonlab/weather-marts-etl/internal/domain"
)

func main() {
	maxViolations := flag.Int("max-violations", 20, "max violations to print per check")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if code := run(cfg, *maxViolations); code != 0 {
		os.Exit(code)
	}
}

func run(cfg *config.Config, maxViolations int) int {
	store, err := warehouse.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: open warehouse: %v\n", err)
		return 1
	}
	defer store.Close() //nolint:errcheck // read-only session

	ctx := context.Background()

	fmt.Println("=== Weather Marts Validation ===")
	fmt.Println()

	quality, aggs, feats, err := fetchLayers(ctx, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		return 1
	}

	fmt.Printf("Rows: %d quality, %d daily, %d features\n\n", len(quality), len(aggs), len(feats))

	results := domain.RunChecks(quality, aggs, feats, domain.RunDate())

	var failures error
	for _, r := range results {
		status := "\033[32mPASS\033[0m"
		if !r.Passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d violations)\033[0m", len(r.Violations))
			failures = multierror.Append(failures,
				fmt.Errorf("%s: %d violations", r.Name, len(r.Violations)))
		}
		fmt.Printf("  %-36s %s\n", r.Name, status)
	}

	for _, r := range results {
		if r.Passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", r.Name)
		for i, v := range r.Violations {
			if i >= maxViolations {
				fmt.Printf("  ... and %d more\n", len(r.Violations)-maxViolations)
				break
			}
			fmt.Printf("  [%d] %s\n", i+1, v.Detail)
		}
	}

	if failures != nil {
		fmt.Printf("\nValidation FAILED: %v\n", failures)
		return 1
	}
	fmt.Println("\nAll checks passed.")
	return 0
}

func fetchLayers(ctx context.Context, store *warehouse.Store) ([]domain.QualityObservation, []domain.DailyAggregate, []domain.FeatureRow, error) {
	quality, err := store.FetchQuality(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch quality layer: %w", err)
	}
	aggs, err := store.FetchDailyAggregates(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch daily aggregates: %w", err)
	}
	feats, err := store.FetchFeatures(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("fetch feature table: %w", err)
	}
	return quality, aggs, feats, nil
}
