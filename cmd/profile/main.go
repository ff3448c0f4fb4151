// cmd/profile drives matching.Engine under pprof's CPU profiler from
// a single goroutine, since the engine is single-threaded and
// non-reentrant (see DESIGN.md).
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"limitbook/book"
	"limitbook/matching"
)

const (
	maxPrice = 20000
	midpoint = maxPrice / 2
)

func main() {
	cpuFile, err := os.Create("cpu.prof")
	if err != nil {
		panic(err)
	}
	defer cpuFile.Close()

	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		panic(err)
	}
	defer pprof.StopCPUProfile()

	fmt.Println("=== profiling matching.Engine ===")
	fmt.Println("writing CPU profile to cpu.prof")

	const numOrders = 2_000_000
	engine, err := matching.NewEngine(matching.EngineConfig{MaxOrders: numOrders + 1, MaxPrice: maxPrice})
	if err != nil {
		panic(err)
	}

	var trades int64
	engine.SetTradeHook(func(book.Trade) { trades++ })

	rng := rand.New(rand.NewSource(1))
	start := time.Now()
	for i := 0; i < numOrders; i++ {
		price := book.Price(midpoint + int(rng.NormFloat64()*150))
		if price < 0 {
			price = 0
		} else if int(price) >= maxPrice {
			price = maxPrice - 1
		}
		side := book.Buy
		if rng.Intn(2) == 1 {
			side = book.Sell
		}
		qty := book.Quantity(1 + rng.Intn(50))
		if err := engine.AddLimit(book.OrderID(i), price, qty, side); err != nil {
			continue
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("orders:  %d\n", numOrders)
	fmt.Printf("trades:  %d\n", trades)
	fmt.Printf("elapsed: %v\n", elapsed)
	fmt.Printf("QPS:     %.0f orders/sec\n", float64(numOrders)/elapsed.Seconds())
	fmt.Println("\nanalyze with: go tool pprof -http=:8080 cpu.prof")
}
