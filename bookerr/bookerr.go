// Package bookerr defines the error taxonomy returned by the matching
// engine and its supporting pools.
package bookerr

import "errors"

// ErrPoolExhausted is returned by a pool's Acquire when its freelist is
// empty. The caller sized MaxOrders/MaxPrice below the workload's peak
// live-record count; this is a capacity issue, not a bug.
var ErrPoolExhausted = errors.New("bookerr: pool exhausted")

// ErrDuplicateOrder is returned when AddLimit/AddMarket is called with
// an OrderID that is already live in the engine.
var ErrDuplicateOrder = errors.New("bookerr: order id already live")

// ErrInvalidPrice is returned when a limit order's price falls outside
// [0, MaxPrice).
var ErrInvalidPrice = errors.New("bookerr: price out of range")

// ErrInvalidConfig is returned by NewEngine when EngineConfig's
// MaxOrders or MaxPrice is non-positive.
var ErrInvalidConfig = errors.New("bookerr: invalid engine config")
