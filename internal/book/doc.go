// Package book implements the order book reconstruction engine.
//
// The engine replays one instrument-day of events in two passes:
//   - Pass 1 registers resting orders in a compact arena so later events
//     that reference an order id can recover its side and price, and bounds
//     the price range from fully-executed orders.
//   - Pass 2 maintains per-cent outstanding-order counts for both sides and
//     emits a BestQuoteChange whenever the top of book moves.
//
// Reconstruction is a pure function of the event sequence: identical input
// yields an identical change series.
package book
