// Package warehouse is the tabular-store adapter. It materializes each
// pipeline layer as a real table (drop and rebuild, never update in place)
// and gives the loader an append-only, deduplicated path into the raw layer.
package warehouse

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/monsoonlab/weather-marts-etl/internal/config"
	"github.com/monsoonlab/weather-marts-etl/internal/domain"
)

const insertBatchSize = 500

// Store wraps a GORM connection to the warehouse (SQLite for local runs,
// Postgres for a shared one) and implements the pipeline's Store port.
type Store struct {
	db      *gorm.DB
	driver  string
	schemas config.SchemaNames
}

// Open connects to the configured warehouse, creates the Postgres schemas
// when configured, and ensures the raw table exists.
func Open(cfg *config.Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.StoreDSN)
	case "postgres":
		dialector = postgres.Open(cfg.StoreDSN)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}

	s := &Store{db: db, driver: cfg.StoreDriver, schemas: cfg.Schemas}

	if err := s.ensureSchemas(); err != nil {
		return nil, err
	}
	if err := db.Table(s.rawTable()).AutoMigrate(&domain.RawObservation{}); err != nil {
		return nil, fmt.Errorf("migrate raw table: %w", err)
	}
	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ensureSchemas creates the configured Postgres schemas. SQLite has no
// schema support, so configured names are ignored there.
func (s *Store) ensureSchemas() error {
	if s.driver != "postgres" {
		return nil
	}
	seen := map[string]bool{}
	for _, schema := range []string{s.schemas.Raw, s.schemas.Staging, s.schemas.Intermediate, s.schemas.Marts} {
		if schema == "" || seen[schema] {
			continue
		}
		seen[schema] = true
		if err := s.db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", schema)).Error; err != nil {
			return fmt.Errorf("create schema %s: %w", schema, err)
		}
	}
	return nil
}

func (s *Store) qualify(schema, table string) string {
	if s.driver == "postgres" && schema != "" {
		return schema + "." + table
	}
	return table
}

func (s *Store) rawTable() string {
	return s.qualify(s.schemas.Raw, domain.RawObservation{}.TableName())
}

// AppendRawObservations inserts rows into the raw layer, silently skipping
// record IDs already present. Returns the number of rows actually inserted.
func (s *Store) AppendRawObservations(ctx context.Context, rows []domain.RawObservation) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	inserted := 0
	for start := 0; start < len(rows); start += insertBatchSize {
		end := min(start+insertBatchSize, len(rows))
		batch := rows[start:end]

		existing, err := s.existingRecordIDs(ctx, batch)
		if err != nil {
			return inserted, err
		}

		fresh := make([]domain.RawObservation, 0, len(batch))
		for _, r := range batch {
			if !existing[r.RecordID] {
				fresh = append(fresh, r)
			}
		}
		if len(fresh) == 0 {
			continue
		}
		if err := s.db.WithContext(ctx).Table(s.rawTable()).Create(&fresh).Error; err != nil {
			return inserted, fmt.Errorf("append raw observations: %w", err)
		}
		inserted += len(fresh)
	}
	return inserted, nil
}

func (s *Store) existingRecordIDs(ctx context.Context, batch []domain.RawObservation) (map[string]bool, error) {
	ids := make([]string, 0, len(batch))
	for _, r := range batch {
		ids = append(ids, r.RecordID)
	}
	var present []string
	err := s.db.WithContext(ctx).Table(s.rawTable()).
		Where("record_id IN ?", ids).
		Pluck("record_id", &present).Error
	if err != nil {
		return nil, fmt.Errorf("query existing record ids: %w", err)
	}
	out := make(map[string]bool, len(present))
	for _, id := range present {
		out[id] = true
	}
	return out, nil
}

// PruneRaw deletes raw rows observed before the cutoff. Retention is a
// loader concern; the transformation pipeline never writes the raw layer.
func (s *Store) PruneRaw(ctx context.Context, cutoff time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Table(s.rawTable()).
		Where("datetime < ?", cutoff).
		Delete(&domain.RawObservation{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune raw observations: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// FetchRawObservations reads the whole raw layer ordered by location and time.
func (s *Store) FetchRawObservations(ctx context.Context) ([]domain.RawObservation, error) {
	var rows []domain.RawObservation
	err := s.db.WithContext(ctx).Table(s.rawTable()).
		Order("location_name, datetime").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch raw observations: %w", err)
	}
	return rows, nil
}

// ReplaceStaging rebuilds the staging table.
func (s *Store) ReplaceStaging(ctx context.Context, rows []domain.StagingObservation) error {
	return replaceTable(ctx, s, s.schemas.Staging, rows)
}

// ReplaceQuality rebuilds the intermediate quality table.
func (s *Store) ReplaceQuality(ctx context.Context, rows []domain.QualityObservation) error {
	return replaceTable(ctx, s, s.schemas.Intermediate, rows)
}

// ReplaceEnriched rebuilds the intermediate enriched table.
func (s *Store) ReplaceEnriched(ctx context.Context, rows []domain.EnrichedObservation) error {
	return replaceTable(ctx, s, s.schemas.Intermediate, rows)
}

// ReplaceDailyAggregates rebuilds the daily fact table.
func (s *Store) ReplaceDailyAggregates(ctx context.Context, rows []domain.DailyAggregate) error {
	return replaceTable(ctx, s, s.schemas.Marts, rows)
}

// ReplaceFeatures rebuilds the feature fact table.
func (s *Store) ReplaceFeatures(ctx context.Context, rows []domain.FeatureRow) error {
	return replaceTable(ctx, s, s.schemas.Marts, rows)
}

// ReplaceLocationDim rebuilds the location dimension.
func (s *Store) ReplaceLocationDim(ctx context.Context, rows []domain.LocationDim) error {
	return replaceTable(ctx, s, s.schemas.Marts, rows)
}

// ReplaceDateDim rebuilds the date dimension.
func (s *Store) ReplaceDateDim(ctx context.Context, rows []domain.DateDim) error {
	return replaceTable(ctx, s, s.schemas.Marts, rows)
}

// FetchQuality reads the intermediate quality table for the assertion battery.
func (s *Store) FetchQuality(ctx context.Context) ([]domain.QualityObservation, error) {
	return fetchTable[domain.QualityObservation](ctx, s, s.schemas.Intermediate, "location_name, datetime")
}

// FetchDailyAggregates reads the daily fact table.
func (s *Store) FetchDailyAggregates(ctx context.Context) ([]domain.DailyAggregate, error) {
	return fetchTable[domain.DailyAggregate](ctx, s, s.schemas.Marts, "location_name, date")
}

// FetchFeatures reads the feature fact table.
func (s *Store) FetchFeatures(ctx context.Context) ([]domain.FeatureRow, error) {
	return fetchTable[domain.FeatureRow](ctx, s, s.schemas.Marts, "location_name, date")
}

type tabler interface {
	TableName() string
}

// replaceTable drops and recreates a layer table, then bulk-inserts the new
// rows. Rebuild-from-scratch keeps every stage idempotent without upsert
// bookkeeping.
func replaceTable[T tabler](ctx context.Context, s *Store, schema string, rows []T) error {
	var model T
	name := s.qualify(schema, model.TableName())

	db := s.db.WithContext(ctx)
	if db.Migrator().HasTable(name) {
		if err := db.Migrator().DropTable(name); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}
	if err := db.Table(name).AutoMigrate(&model); err != nil {
		return fmt.Errorf("migrate %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil
	}
	if err := db.Table(name).CreateInBatches(rows, insertBatchSize).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", name, err)
	}
	return nil
}

func fetchTable[T tabler](ctx context.Context, s *Store, schema, order string) ([]T, error) {
	var model T
	name := s.qualify(schema, model.TableName())

	var rows []T
	err := s.db.WithContext(ctx).Table(name).Order(order).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return rows, nil
}
