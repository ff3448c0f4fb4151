//go:build lobdebug

package book

// debugAssertNoOverfill panics if filling qty off of remaining would
// underflow, trapped only in debug builds (the lobdebug tag),
// mirroring the C++ reference's policy of trapping overfill in debug
// and skipping the check in release for hot-path speed. Order::fill in
// src/Order.cpp throws unconditionally; Go has no separate
// debug/release toolchain switch, so a build tag stands in for it.
func debugAssertNoOverfill(remaining, qty Quantity) {
	if qty > remaining {
		panic("book: overfill would underflow remaining quantity")
	}
}
