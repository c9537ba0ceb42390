// Package source loads raw per-day event files and normalizes the decoded
// records into model.Event values.
//
// The on-disk layout mirrors the exchange extract: one gzipped CSV per
// (ticker, day) at original_data_{year}/{yyyymmdd}_{TICKER}.csv.gz with
// columns Time, Seq, Order, T, Shares, Price. File order is the stable
// secondary sort key for same-millisecond events and is preserved as read.
package source
