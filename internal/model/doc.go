// Package model defines shared data types used across the response pipeline.
//
// Conventions:
//   - Prices: int64 fixed-point at 1e-4 currency units (10000 = $1.00)
//   - Timestamps: int64 milliseconds since midnight, exchange local time
//   - One price tick = one cent = 100 fixed-point units
package model
