//go:build !lobdebug

package book

// debugAssertNoOverfill is a no-op in release builds — the matching
// loop never actually overfills (trade_qty is always min(q,
// maker.Quantity)), so this only fires under a caller contract
// violation that debug builds choose to catch.
func debugAssertNoOverfill(remaining, qty Quantity) {}
