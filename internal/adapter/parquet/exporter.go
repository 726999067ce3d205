// Package parquet exports the marts layer as Parquet files for the
// statistics notebooks and the model-training process, which read columnar
// files instead of querying the warehouse directly.
package parquet

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/monsoonlab/weather-marts-etl/internal/domain"
)

const writerParallelism = 4

// Exporter writes one Parquet file per marts table into a directory.
type Exporter struct {
	dir    string
	logger *slog.Logger
}

// NewExporter creates an Exporter writing into dir, creating it if needed.
func NewExporter(dir string, logger *slog.Logger) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}
	return &Exporter{dir: dir, logger: logger}, nil
}

// ExportMarts writes fct_weather_daily, fct_weather_features, dim_location,
// and dim_date as Parquet files, replacing any previous export.
func (e *Exporter) ExportMarts(ctx context.Context, aggs []domain.DailyAggregate, feats []domain.FeatureRow,
	locations []domain.LocationDim, dates []domain.DateDim) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	exports := []struct {
		file  string
		write func(path string) (int, error)
	}{
		{file: "fct_weather_daily.parquet", write: func(p string) (int, error) {
			return writeParquet(p, dailyRows(aggs))
		}},
		{file: "fct_weather_features.parquet", write: func(p string) (int, error) {
			return writeParquet(p, featureRows(feats))
		}},
		{file: "dim_location.parquet", write: func(p string) (int, error) {
			return writeParquet(p, locationRows(locations))
		}},
		{file: "dim_date.parquet", write: func(p string) (int, error) {
			return writeParquet(p, dateRows(dates))
		}},
	}

	for _, ex := range exports {
		path := filepath.Join(e.dir, ex.file)
		n, err := ex.write(path)
		if err != nil {
			return fmt.Errorf("export %s: %w", ex.file, err)
		}
		e.logger.Debug("parquet file written", "file", ex.file, "rows", n)
	}
	return nil
}

func writeParquet[T any](path string, rows []T) (int, error) {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return 0, fmt.Errorf("open file writer: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(T), writerParallelism)
	if err != nil {
		return 0, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := pw.Write(rows[i]); err != nil {
			return 0, fmt.Errorf("write row %d: %w", i, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return 0, fmt.Errorf("finalize parquet file: %w", err)
	}
	return len(rows), nil
}
