// cmd/benchmark is an external harness: it generates a pre-built
// action stream (70% limit, 25% cancel, 5% market; prices normally
// distributed around a midpoint; sides uniform; quantities
// log-normal) and drives one matching.Engine instance with it from a
// single goroutine, since the engine forbids concurrent mutation of
// one instance (see DESIGN.md for why this stays single-goroutine
// rather than fanning order generation out across producers).
package main

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"limitbook/book"
	"limitbook/book/bench"
	"limitbook/matching"

	"github.com/google/uuid"
)

const (
	maxPrice   = 20000
	midpoint   = maxPrice / 2
	priceStdev = 150.0
	numActions = 2_000_000
)

type action struct {
	kind   byte // 'L' limit, 'C' cancel, 'M' market
	id     book.OrderID
	price  book.Price
	side   book.Side
	qty    book.Quantity
	target book.OrderID // cancel only
}

// generateActions pre-builds the action stream up front — order
// generation is external to the engine, which only ever sees
// add_limit/add_market/cancel calls, never how they were produced.
func generateActions(rng *rand.Rand, n int) []action {
	actions := make([]action, 0, n)
	var nextID book.OrderID
	live := make([]book.OrderID, 0, n)

	for i := 0; i < n; i++ {
		roll := rng.Intn(100)
		switch {
		case roll < 70:
			price := int(math.Round(midpoint + rng.NormFloat64()*priceStdev))
			if price < 0 {
				price = 0
			} else if price >= maxPrice {
				price = maxPrice - 1
			}
			side := book.Buy
			if rng.Intn(2) == 1 {
				side = book.Sell
			}
			qty := logNormalQty(rng)
			id := nextID
			nextID++
			live = append(live, id)
			actions = append(actions, action{kind: 'L', id: id, price: book.Price(price), side: side, qty: qty})
		case roll < 95:
			if len(live) == 0 {
				continue
			}
			idx := rng.Intn(len(live))
			target := live[idx]
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
			actions = append(actions, action{kind: 'C', target: target})
		default:
			side := book.Buy
			if rng.Intn(2) == 1 {
				side = book.Sell
			}
			id := nextID
			nextID++
			actions = append(actions, action{kind: 'M', id: id, side: side, qty: logNormalQty(rng)})
		}
	}
	return actions
}

// logNormalQty skews quantities right, as real order flow does.
func logNormalQty(rng *rand.Rand) book.Quantity {
	q := math.Exp(rng.NormFloat64()*0.8 + 3) // median ~20 units
	if q < 1 {
		q = 1
	}
	if q > 100000 {
		q = 100000
	}
	return book.Quantity(q)
}

func main() {
	runID := uuid.New()
	rng := rand.New(rand.NewSource(1))

	fmt.Printf("benchmark run %s: generating %d actions\n", runID, numActions)
	actions := generateActions(rng, numActions)

	engine, err := matching.NewEngine(matching.EngineConfig{MaxOrders: numActions + 1, MaxPrice: maxPrice})
	if err != nil {
		panic(err)
	}

	var trades int64
	engine.SetTradeHook(func(book.Trade) { trades++ })

	start := time.Now()
	var limits, cancels, markets int64
	for _, a := range actions {
		switch a.kind {
		case 'L':
			if err := engine.AddLimit(a.id, a.price, a.qty, a.side); err != nil {
				continue
			}
			limits++
		case 'C':
			engine.Cancel(a.target)
			cancels++
		case 'M':
			if err := engine.AddMarket(a.id, a.qty, a.side); err != nil {
				continue
			}
			markets++
		}
	}
	elapsed := time.Since(start)

	qps := float64(len(actions)) / elapsed.Seconds()
	fmt.Println("=== engine throughput ===")
	fmt.Printf("actions:   %d (limit=%d cancel=%d market=%d)\n", len(actions), limits, cancels, markets)
	fmt.Printf("trades:    %d\n", trades)
	fmt.Printf("elapsed:   %v\n", elapsed)
	fmt.Printf("QPS:       %.0f actions/sec\n", qps)

	compareIndexChurn(rng)
}

// compareIndexChurn runs the same price-level churn pattern through
// book.PriceIndex (dense array + bitmap, what matching.Engine actually
// uses) and bench.ShardedIndex (a red-black-tree-of-buckets design kept
// as a comparison backend) and reports relative throughput.
func compareIndexChurn(rng *rand.Rand) {
	const n = 500_000
	dense := book.NewPriceIndex(book.Buy, maxPrice)
	sharded := bench.NewShardedIndex(book.Buy, maxPrice, 128)

	prices := make([]book.Price, n)
	for i := range prices {
		prices[i] = book.Price(rng.Intn(maxPrice))
	}

	start := time.Now()
	for _, p := range prices {
		if lvl := dense.Get(p); lvl != nil {
			dense.Evict(p)
		} else {
			dense.Install(p, &book.Limit{Price: p})
		}
	}
	denseElapsed := time.Since(start)

	start = time.Now()
	for _, p := range prices {
		if sharded.Has(p) {
			sharded.Evict(p)
		} else {
			sharded.Install(p, 1)
		}
	}
	shardedElapsed := time.Since(start)

	fmt.Println("\n=== price-index churn: dense array+bitmap vs sharded red-black tree ===")
	fmt.Printf("dense:     %v (%.0f ops/sec)\n", denseElapsed, float64(n)/denseElapsed.Seconds())
	fmt.Printf("sharded:   %v (%.0f ops/sec)\n", shardedElapsed, float64(n)/shardedElapsed.Seconds())
}
