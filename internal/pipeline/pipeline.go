package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/monsoonlab/weather-marts-etl/internal/domain"
	"github.com/monsoonlab/weather-marts-etl/internal/observability"
)

// Store is the warehouse port: the raw layer is read-only and append-only
// from the pipeline's point of view; every derived layer is rebuilt in full
// on each run.
type Store interface {
	FetchRawObservations(ctx context.Context) ([]domain.RawObservation, error)
	ReplaceStaging(ctx context.Context, rows []domain.StagingObservation) error
	ReplaceQuality(ctx context.Context, rows []domain.QualityObservation) error
	ReplaceEnriched(ctx context.Context, rows []domain.EnrichedObservation) error
	ReplaceDailyAggregates(ctx context.Context, rows []domain.DailyAggregate) error
	ReplaceFeatures(ctx context.Context, rows []domain.FeatureRow) error
	ReplaceLocationDim(ctx context.Context, rows []domain.LocationDim) error
	ReplaceDateDim(ctx context.Context, rows []domain.DateDim) error
}

// Exporter writes the marts layer to an external format for notebook and BI
// consumers.
type Exporter interface {
	ExportMarts(ctx context.Context, aggs []domain.DailyAggregate, feats []domain.FeatureRow,
		locations []domain.LocationDim, dates []domain.DateDim) error
}

// Summary reports row counts for one completed run.
type Summary struct {
	RunID           string
	RunDate         time.Time
	RawRows         int
	StagingRows     int
	StructuralDrops int
	QualityRows     int
	QualityDrops    int
	DailyRows       int
	FeatureRows     int
	LocationRows    int
	DateRows        int
	Duration        time.Duration
}

// Pipeline rebuilds every derived layer from the raw store. Each run is
// idempotent: identical raw input yields identical tables.
type Pipeline struct {
	store      Store
	exporter   Exporter // nil disables export
	logger     *slog.Logger
	metrics    *observability.Metrics
	spineStart time.Time
	ready      atomic.Bool

	mu   sync.Mutex
	last *Summary
}

// New creates a Pipeline. Pass a nil exporter to disable marts export.
func New(store Store, exporter Exporter, logger *slog.Logger, metrics *observability.Metrics, spineStart time.Time) *Pipeline {
	return &Pipeline{
		store:      store,
		exporter:   exporter,
		logger:     logger,
		metrics:    metrics,
		spineStart: spineStart,
	}
}

// CheckReadiness returns nil once at least one run has completed successfully.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no pipeline run has completed yet")
	}
	return nil
}

// LastSummary returns the summary of the most recent successful run. The
// second return is false until one completes.
func (p *Pipeline) LastSummary() (Summary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Summary{}, false
	}
	return *p.last, true
}

// Run executes one full rebuild: raw → staging → quality → enrichment →
// daily aggregates → features, plus both dimensions, materializing each
// layer before the next one reads it.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()
	summary := Summary{
		RunID:   uuid.NewString(),
		RunDate: domain.RunDate(),
	}
	logger := p.logger.With("run_id", summary.RunID, "run_date", summary.RunDate.Format("2006-01-02"))

	logger.Info("pipeline run starting")
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	err := p.run(ctx, logger, &summary)
	summary.Duration = time.Since(start)
	if err != nil {
		p.metrics.RunsTotal.WithLabelValues("error").Inc()
		logger.Error("pipeline run failed", "error", err, "duration", summary.Duration)
		return summary, err
	}

	p.metrics.RunsTotal.WithLabelValues("success").Inc()
	p.metrics.RunDuration.Observe(summary.Duration.Seconds())
	p.metrics.LastRunUnixtime.SetToCurrentTime()
	p.ready.Store(true)

	p.mu.Lock()
	p.last = &summary
	p.mu.Unlock()

	logger.Info("pipeline run complete",
		"raw_rows", summary.RawRows,
		"staging_rows", summary.StagingRows,
		"quality_rows", summary.QualityRows,
		"daily_rows", summary.DailyRows,
		"feature_rows", summary.FeatureRows,
		"duration", summary.Duration,
	)
	return summary, nil
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, summary *Summary) error {
	raw, err := p.store.FetchRawObservations(ctx)
	if err != nil {
		return fmt.Errorf("fetch raw observations: %w", err)
	}
	summary.RawRows = len(raw)
	if len(raw) == 0 {
		logger.Warn("raw store is empty; downstream tables will be empty")
	}

	// Staging: type, derive calendar fields, drop structurally invalid rows.
	staged, structuralDrops, err := p.stageStaging(ctx, raw)
	if err != nil {
		return err
	}
	summary.StagingRows = len(staged)
	summary.StructuralDrops = structuralDrops

	// Quality: flag, clamp, gap-fill, score, filter.
	quality, qualityDrops, err := p.stageQuality(ctx, staged)
	if err != nil {
		return err
	}
	summary.QualityRows = len(quality)
	summary.QualityDrops = qualityDrops

	// Enrichment: per-row derivations only.
	enriched, err := p.stageEnrich(ctx, quality)
	if err != nil {
		return err
	}

	// Daily aggregates, then the leakage-safe feature table.
	aggs, err := p.stageAggregate(ctx, enriched, summary.RunDate)
	if err != nil {
		return err
	}
	summary.DailyRows = len(aggs)

	feats, err := p.stageFeatures(ctx, aggs)
	if err != nil {
		return err
	}
	summary.FeatureRows = len(feats)

	locations, dates, err := p.stageDimensions(ctx, raw, summary.RunDate)
	if err != nil {
		return err
	}
	summary.LocationRows = len(locations)
	summary.DateRows = len(dates)

	if p.exporter != nil {
		if err := p.exporter.ExportMarts(ctx, aggs, feats, locations, dates); err != nil {
			return fmt.Errorf("export marts: %w", err)
		}
		logger.Info("marts exported")
	}

	return nil
}

func (p *Pipeline) stageStaging(ctx context.Context, raw []domain.RawObservation) ([]domain.StagingObservation, int, error) {
	start := time.Now()
	staged, dropped := domain.NormalizeStaging(raw)
	if err := p.store.ReplaceStaging(ctx, staged); err != nil {
		return nil, 0, fmt.Errorf("materialize staging: %w", err)
	}
	p.observeStage("staging", len(raw), len(staged), start)
	if dropped > 0 {
		p.metrics.RowsDropped.WithLabelValues("staging", "structural").Add(float64(dropped))
		p.logger.Warn("dropped rows missing datetime or location", "count", dropped)
	}
	return staged, dropped, nil
}

func (p *Pipeline) stageQuality(ctx context.Context, staged []domain.StagingObservation) ([]domain.QualityObservation, int, error) {
	start := time.Now()
	quality, dropped := domain.CheckQuality(staged)
	if err := p.store.ReplaceQuality(ctx, quality); err != nil {
		return nil, 0, fmt.Errorf("materialize quality layer: %w", err)
	}
	p.observeStage("quality", len(staged), len(quality), start)
	if dropped > 0 {
		p.metrics.RowsDropped.WithLabelValues("quality", "quality_score").Add(float64(dropped))
	}
	p.countOutlierFlags(quality)
	return quality, dropped, nil
}

func (p *Pipeline) stageEnrich(ctx context.Context, quality []domain.QualityObservation) ([]domain.EnrichedObservation, error) {
	start := time.Now()
	enriched := domain.Enrich(quality)
	if err := p.store.ReplaceEnriched(ctx, enriched); err != nil {
		return nil, fmt.Errorf("materialize enriched layer: %w", err)
	}
	p.observeStage("enrich", len(quality), len(enriched), start)
	return enriched, nil
}

func (p *Pipeline) stageAggregate(ctx context.Context, enriched []domain.EnrichedObservation, runDate time.Time) ([]domain.DailyAggregate, error) {
	start := time.Now()
	aggs, futureRows := domain.AggregateDaily(enriched, runDate)
	if err := p.store.ReplaceDailyAggregates(ctx, aggs); err != nil {
		return nil, fmt.Errorf("materialize daily aggregates: %w", err)
	}
	p.observeStage("aggregate", len(enriched), len(aggs), start)
	if futureRows > 0 {
		p.metrics.RowsDropped.WithLabelValues("aggregate", "future_date").Add(float64(futureRows))
		p.logger.Warn("excluded rows dated after the run date", "count", futureRows)
	}
	return aggs, nil
}

func (p *Pipeline) stageFeatures(ctx context.Context, aggs []domain.DailyAggregate) ([]domain.FeatureRow, error) {
	start := time.Now()
	feats := domain.BuildFeatures(aggs)
	if err := p.store.ReplaceFeatures(ctx, feats); err != nil {
		return nil, fmt.Errorf("materialize feature table: %w", err)
	}
	p.observeStage("features", len(aggs), len(feats), start)
	if excluded := len(aggs) - len(feats); excluded > 0 {
		p.metrics.RowsDropped.WithLabelValues("features", "no_history").Add(float64(excluded))
	}
	return feats, nil
}

func (p *Pipeline) stageDimensions(ctx context.Context, raw []domain.RawObservation, runDate time.Time) ([]domain.LocationDim, []domain.DateDim, error) {
	start := time.Now()
	locations := domain.BuildLocationDim(raw)
	dates := domain.BuildDateDim(p.spineStart, runDate)
	if err := p.store.ReplaceLocationDim(ctx, locations); err != nil {
		return nil, nil, fmt.Errorf("materialize location dimension: %w", err)
	}
	if err := p.store.ReplaceDateDim(ctx, dates); err != nil {
		return nil, nil, fmt.Errorf("materialize date dimension: %w", err)
	}
	p.observeStage("dimensions", len(raw), len(locations)+len(dates), start)
	return locations, dates, nil
}

func (p *Pipeline) observeStage(stage string, in, out int, start time.Time) {
	p.metrics.RowsIn.WithLabelValues(stage).Add(float64(in))
	p.metrics.RowsOut.WithLabelValues(stage).Add(float64(out))
	p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	p.logger.Debug("stage complete", "stage", stage, "rows_in", in, "rows_out", out)
}

func (p *Pipeline) countOutlierFlags(rows []domain.QualityObservation) {
	counts := map[string]int{}
	for _, q := range rows {
		if q.TemperatureOutlier {
			counts["temperature"]++
		}
		if q.HumidityOutlier {
			counts["humidity"]++
		}
		if q.PrecipitationOutlier {
			counts["precipitation"]++
		}
		if q.PressureOutlier {
			counts["pressure"]++
		}
		if q.WindSpeedOutlier {
			counts["wind_speed"]++
		}
	}
	for measurement, n := range counts {
		p.metrics.OutlierFlags.WithLabelValues(measurement).Add(float64(n))
	}
}
