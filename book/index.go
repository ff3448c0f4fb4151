package book

// PriceIndex is one side's (bid or ask) dense price-level index: a
// direct-indexed []*Limit of length MaxPrice, a parallel summary
// bitmap, and the cached best price for that side. Mirrors
// include/Book.h's bids/asks vectors + bidsMask/asksMask +
// highestBid/lowestAsk, folded per-side into one type since both
// sides share every operation modulo direction.
type PriceIndex struct {
	side     Side
	maxPrice int
	levels   []*Limit
	bitmap   *Bitmap
	best     Price // sentinel 0 for Buy (no bid), MaxPrice for Sell (no ask)
}

// NewPriceIndex allocates a dense index spanning [0, maxPrice) for the
// given side, initialized to the side's empty-book sentinel.
func NewPriceIndex(side Side, maxPrice int) *PriceIndex {
	idx := &PriceIndex{
		side:     side,
		maxPrice: maxPrice,
		levels:   make([]*Limit, maxPrice),
		bitmap:   NewBitmap(maxPrice),
	}
	idx.best = idx.emptySentinel()
	return idx
}

func (idx *PriceIndex) emptySentinel() Price {
	if idx.side == Buy {
		return 0
	}
	return Price(idx.maxPrice)
}

// BestPrice returns the cached best price for this side (the
// empty-book sentinel if no level is live).
func (idx *PriceIndex) BestPrice() Price { return idx.best }

// HasBest reports whether a live level exists at all on this side.
func (idx *PriceIndex) HasBest() bool { return idx.best != idx.emptySentinel() }

// Get returns the level at p, or nil if absent (including the stale
// case of a set bit with a cleared slot, which the matching loop
// tolerates).
func (idx *PriceIndex) Get(p Price) *Limit {
	return idx.levels[p]
}

// Install places lvl at price p, marks the bit, and — if p improves on
// the cached best — raises/lowers best without a scan.
func (idx *PriceIndex) Install(p Price, lvl *Limit) {
	idx.levels[p] = lvl
	idx.bitmap.Set(p)
	idx.considerAsBest(p)
}

func (idx *PriceIndex) considerAsBest(p Price) {
	if idx.side == Buy {
		if p > idx.best {
			idx.best = p
		}
	} else {
		if p < idx.best {
			idx.best = p
		}
	}
}

// UnsetBit clears the bit at p without touching the dense slot or the
// best-price cache. The matching loop's stale-bit path does not call
// it; it uses Evict, which also refreshes the cache.
func (idx *PriceIndex) UnsetBit(p Price) {
	idx.bitmap.Unset(p)
}

// Evict clears the dense slot and the bit at p. If p was the cached
// best, the cache is refreshed by scanning from one tick past p. This
// only needs to happen in two cases: emptying the best level, or
// cancelling the last order at the best level.
func (idx *PriceIndex) Evict(p Price) {
	idx.levels[p] = nil
	idx.bitmap.Unset(p)

	if p == idx.best {
		idx.refreshBestAfterLosing(p)
	}
}

func (idx *PriceIndex) refreshBestAfterLosing(lost Price) {
	if idx.side == Buy {
		found := idx.bitmap.ScanDesc(lost - 1)
		if found == noPrice {
			idx.best = 0
		} else {
			idx.best = Price(found)
		}
		return
	}

	found := idx.bitmap.ScanAsc(lost + 1)
	if found == noPrice {
		idx.best = Price(idx.maxPrice)
	} else {
		idx.best = Price(found)
	}
}

// Crosses reports whether the taker's limit (lim) allows trading at
// the current best opposing price — the profitability check of spec
// §4.5 step 1b. idx is the *opposing* side's index; takerSide is the
// taker's own side. Callers must check HasBest (spec step 1a) first;
// Crosses alone does not distinguish "no liquidity" from "liquidity
// exists but is unprofitable" when lim is the market-order sentinel.
func (idx *PriceIndex) Crosses(takerSide Side, lim Price) bool {
	b := idx.best
	if takerSide == Buy {
		return b <= lim
	}
	return b >= lim
}
