// Package matching implements the engine's public surface —
// AddLimit, AddMarket, Cancel, SetTradeHook — orchestrating the
// price-time-priority matching algorithm against package book's
// price-level index and the fixed-capacity pools in package pool.
// Generalized onto a dense-array/bitmap price index in place of a
// hashmap-and-linked-list price tree; the matching algorithm follows
// include/Book.h's matchOrder in the original C++ reference this was
// distilled from.
package matching

import (
	"limitbook/book"
	"limitbook/bookerr"
	"limitbook/pool"

	"go.uber.org/zap"
)

// EngineConfig sizes the engine's fixed-capacity resources. Both
// fields are required; NewEngine rejects non-positive values.
type EngineConfig struct {
	// MaxOrders bounds the number of simultaneously live orders.
	MaxOrders int
	// MaxPrice bounds the price-index span: valid prices are
	// [0, MaxPrice).
	MaxPrice int
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger installs a structured logger for pool-exhaustion and
// contract-violation reporting. The engine never logs on the
// trade-matching hot path itself.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine is a single-instrument matching engine. It is not safe for
// concurrent use — every public method must be called from one
// goroutine at a time.
type Engine struct {
	cfg EngineConfig

	orders map[book.OrderID]*book.Order

	orderPool    *pool.Pool[book.Order]
	bidLimitPool *pool.Pool[book.Limit]
	askLimitPool *pool.Pool[book.Limit]

	bids *book.PriceIndex
	asks *book.PriceIndex

	hook book.TradeHook
	log  *zap.SugaredLogger
}

// NewEngine constructs an Engine with pools and price indices sized
// per cfg.
func NewEngine(cfg EngineConfig, opts ...Option) (*Engine, error) {
	if cfg.MaxOrders <= 0 || cfg.MaxPrice <= 0 {
		return nil, bookerr.ErrInvalidConfig
	}

	e := &Engine{
		cfg:          cfg,
		orders:       make(map[book.OrderID]*book.Order, cfg.MaxOrders),
		orderPool:    pool.New[book.Order](cfg.MaxOrders),
		bidLimitPool: pool.New[book.Limit](cfg.MaxPrice),
		askLimitPool: pool.New[book.Limit](cfg.MaxPrice),
		bids:         book.NewPriceIndex(book.Buy, cfg.MaxPrice),
		asks:         book.NewPriceIndex(book.Sell, cfg.MaxPrice),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = zap.NewNop().Sugar()
	}
	return e, nil
}

// SetTradeHook installs (or, passed nil, removes) the synchronous
// trade-observation callback. At most one hook is installed at a time.
func (e *Engine) SetTradeHook(hook book.TradeHook) {
	e.hook = hook
}

func (e *Engine) indexFor(side book.Side) *book.PriceIndex {
	if side == book.Buy {
		return e.bids
	}
	return e.asks
}

func (e *Engine) limitPoolFor(side book.Side) *pool.Pool[book.Limit] {
	if side == book.Buy {
		return e.bidLimitPool
	}
	return e.askLimitPool
}

// AddLimit submits a limit order: it matches against the opposing side
// up to price, then posts any residual to side at price.
func (e *Engine) AddLimit(id book.OrderID, price book.Price, qty book.Quantity, side book.Side) error {
	if qty == 0 {
		return nil
	}
	if price < 0 || int(price) >= e.cfg.MaxPrice {
		return bookerr.ErrInvalidPrice
	}
	if _, live := e.orders[id]; live {
		e.log.Warnw("duplicate order id rejected", "id", id)
		return bookerr.ErrDuplicateOrder
	}

	remaining, err := e.match(id, side, price, qty)
	if err != nil {
		return err
	}
	if remaining == 0 {
		return nil
	}
	return e.postResidual(id, price, remaining, side)
}

// AddMarket submits a market order: it matches against the opposing
// side with no price bound, discarding any unfilled residual
// (fill-and-kill).
func (e *Engine) AddMarket(id book.OrderID, qty book.Quantity, side book.Side) error {
	if qty == 0 {
		return nil
	}
	if _, live := e.orders[id]; live {
		e.log.Warnw("duplicate order id rejected", "id", id)
		return bookerr.ErrDuplicateOrder
	}

	lim := book.Price(e.cfg.MaxPrice) // BUY: +inf clamped to the index range
	if side == book.Sell {
		lim = -1 // SELL: -inf clamped below the index range
	}

	_, err := e.match(id, side, lim, qty)
	return err
}

// Cancel removes order id if it is live; unknown or already-resolved
// ids are a silent no-op.
func (e *Engine) Cancel(id book.OrderID) {
	order, live := e.orders[id]
	if !live {
		return
	}

	lvl := order.Level()
	price := order.Price
	side := order.Side

	lvl.Remove(order)
	delete(e.orders, id)
	e.orderPool.Release(order)

	if lvl.Size() == 0 {
		e.limitPoolFor(side).Release(lvl)
		e.indexFor(side).Evict(price)
	}
}

// match drains resting liquidity from the opposing side up to (and
// respecting) lim, returning whatever quantity remains unfilled.
func (e *Engine) match(takerID book.OrderID, side book.Side, lim book.Price, qty book.Quantity) (book.Quantity, error) {
	opposite := e.indexFor(side.Opposite())
	oppositePool := e.limitPoolFor(side.Opposite())
	q := qty

	for q > 0 {
		if !opposite.HasBest() {
			break
		}
		best := opposite.BestPrice()
		if !opposite.Crosses(side, lim) {
			break
		}

		level := opposite.Get(best)
		if level == nil {
			// Stale bit: bitmap says this price is live but the dense
			// slot was already cleared. Evict folds the unset + the
			// best-price refresh (since best == this price) into one
			// call; retry the loop from the new best.
			opposite.Evict(best)
			continue
		}

		for q > 0 && level.Size() > 0 {
			maker := level.Head()
			tradeQty := q
			if maker.Quantity < tradeQty {
				tradeQty = maker.Quantity
			}

			if e.hook != nil {
				e.hook(book.Trade{TakerID: takerID, MakerID: maker.ID, Price: best, Qty: tradeQty})
			}

			if maker.Quantity > tradeQty {
				level.PartialFill(maker, tradeQty)
				q = 0
			} else {
				q -= tradeQty
				level.Remove(maker)
				delete(e.orders, maker.ID)
				e.orderPool.Release(maker)
			}
		}

		if level.Size() == 0 {
			oppositePool.Release(level)
			opposite.Evict(best)
		}
	}

	return q, nil
}

// postResidual acquires a fresh order record for the unfilled
// remainder of a limit order and enqueues it at the tail of side's
// FIFO at price, creating the level if this is the first resting
// order there.
func (e *Engine) postResidual(id book.OrderID, price book.Price, qty book.Quantity, side book.Side) error {
	order, err := e.orderPool.Acquire()
	if err != nil {
		e.log.Warnw("order pool exhausted", "id", id)
		return err
	}
	*order = book.Order{ID: id, Price: price, Quantity: qty, Side: side, Kind: book.LimitKind}

	idx := e.indexFor(side)
	lvl := idx.Get(price)
	if lvl == nil {
		lvl, err = e.limitPoolFor(side).Acquire()
		if err != nil {
			e.orderPool.Release(order)
			e.log.Warnw("limit pool exhausted", "price", price)
			return err
		}
		*lvl = book.Limit{Price: price}
		idx.Install(price, lvl)
	}

	lvl.Enqueue(order)
	e.orders[id] = order
	return nil
}
