// Package domain models the layered weather transformation pipeline: hourly
// Open-Meteo observations for five Vietnam cities flow staging → quality →
// enrichment → daily aggregation → ML features, with location and date
// dimensions built alongside.
//
// # Layers
//
// Staging ([NormalizeStaging]) types raw rows, derives calendar fields from
// the observation timestamp, flags missing core measurements, and drops rows
// without a timestamp or location. Nothing else is filtered here.
//
// Quality ([CheckQuality]) validates each of the five core measurements
// against physical bounds:
//
//	temperature  [-50, 60] °C    → out of range is nulled, then gap-filled
//	humidity     [0, 100] %      → clamped to the nearest bound
//	precipitation ≥ 0 mm         → negative clamps to 0; missing fills as 0
//	pressure     [950, 1050] hPa → out of range is nulled, then gap-filled
//	wind speed   [0, 150] km/h   → negative clamps to 0; above 150 is nulled
//
// Every bound failure raises the measurement's outlier flag. Nulled values
// are recovered from the average of up to two preceding and two following
// observations of the same location and day (a centered 5-row window over
// pre-fill values). The quality score is 100 minus 20 per raised flag; rows
// scoring below 60 are excluded from all downstream layers.
//
// Enrichment ([Enrich]) is per-row only: monsoon season (Nov–Apr dry,
// May–Oct rainy), time-of-day buckets, threshold condition flags, two
// composite indices, and a precipitation intensity label.
//
// Aggregation ([AggregateDaily]) collapses hours to one row per (location,
// date) with count/mean/min/max/stddev summaries and condition-hour counts,
// dropping any rows dated beyond the run date.
//
// # Leakage contract
//
// [BuildFeatures] derives every lag and rolling feature strictly from rows
// dated before the current row. Rolling windows cover the k rows immediately
// preceding the current one, current row excluded. The current day's
// avg_temperature appears only as the prediction target. Rows without a
// 1-day temperature lag are excluded, so every emitted feature row carries
// at least one day of history.
//
// Lag offsets count rows, not calendar days: when a location is missing a
// day, temp_lag_7d refers to the 7th most recent present day. This matches
// the warehouse models this pipeline replaces.
//
// # Assertions
//
// [RunChecks] is the external data-quality contract. Assertions report
// violations ("detect and report") rather than aborting; referential gaps
// and duplicate keys are defects for an operator, not conditions the
// pipeline repairs.
package domain
