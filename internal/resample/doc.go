// Package resample converts irregular, timestamp-ordered change series into
// dense per-second grids over the trading window.
//
// Price-like series use a last-observation / forward-fill policy; the
// leading gap is seeded from the nearest observation before the window
// start. Sign-like series take the sign of the per-second sum, with 0
// meaning "no trade this second".
package resample
