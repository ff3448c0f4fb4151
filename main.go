package main

import (
	"fmt"

	"limitbook/book"
	"limitbook/matching"
)

func main() {
	engine, err := matching.NewEngine(matching.EngineConfig{MaxOrders: 1024, MaxPrice: 100000})
	if err != nil {
		panic(err)
	}

	engine.SetTradeHook(func(tr book.Trade) {
		fmt.Printf("trade: taker=%d maker=%d price=%d qty=%d\n", tr.TakerID, tr.MakerID, tr.Price, tr.Qty)
	})

	// Sell 100 units at 50000, then buy 50 units at 50000 — partially
	// matches the resting sell, leaving 50 resting on the ask side.
	if err := engine.AddLimit(1, 50000, 100, book.Sell); err != nil {
		panic(err)
	}
	if err := engine.AddLimit(2, 50000, 50, book.Buy); err != nil {
		panic(err)
	}

	engine.Cancel(1) // cancels order 1's remaining 50 units, resting at 50000
}
