// Package sign implements the trade-sign classification engine.
//
// Two interchangeable strategies implement the Classifier capability:
//   - Linkage matches each execution back to the resting order it consumed
//     via the order id; the trade is buyer-initiated when the resting order
//     was a sell.
//   - TickRule infers the sign from the direction of the price change
//     between consecutive trades, for sources that carry no order linkage.
//
// Sign convention: +1 buyer-initiated, -1 seller-initiated.
package sign
