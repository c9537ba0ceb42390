// Package store persists derived series and response curves to the result
// cache.
//
// Tables:
//   - second_series: per-second midpoint and trade-sign grids per
//     (ticker, trading day)
//   - response_curves: per-lag response value and sample count per
//     (ticker, aggregation span)
//
// All writes are append-only batch inserts with ON CONFLICT DO NOTHING;
// keys are unique per pass, so a rerun is idempotent rather than
// duplicating rows. Every row carries the uuid of the run that produced it.
package store
