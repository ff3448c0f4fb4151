// Package bench keeps a red-black-tree price structure alive as a
// comparison backend against the dense array plus summary bitmap that
// matching.Engine actually uses, exercised by compare_test.go and
// cmd/benchmark rather than sitting dead. matching.Engine never
// imports this package — it is wired exclusively to book.PriceIndex.
//
// A red-black tree of buckets (keyed by price/bucketSize) sits over
// fixed-size arrays of price levels, each a node in a doubly linked
// list ordered by price. This tracks a level's volume directly rather
// than a full order FIFO — the comparison here is about price-level
// churn and best-price tracking, not order matching.
package bench

import (
	"limitbook/book"

	rbt "github.com/emirpasic/gods/v2/trees/redblacktree"
)

// level is one non-empty price inside a bucket, threaded into a
// doubly linked list ordered best-first.
type level struct {
	price      book.Price
	volume     uint64
	next, prev *level
}

// bucket holds every live level whose price falls in
// [id*bucketSize, (id+1)*bucketSize), indexed directly by price within
// the bucket (bit-masked, since bucketSize is a power of two).
type bucket struct {
	id       int32
	mask     int32
	slots    []*level
	head     *level
	size     int
	better   func(a, b book.Price) bool
}

func newBucket(id int32, bucketSize int32, better func(a, b book.Price) bool) *bucket {
	return &bucket{
		id:     id,
		mask:   bucketSize - 1,
		slots:  make([]*level, bucketSize),
		better: better,
	}
}

func (b *bucket) insert(price book.Price, volume book.Quantity) *level {
	idx := int32(price) & b.mask
	if lv := b.slots[idx]; lv != nil {
		lv.volume += uint64(volume)
		return lv
	}

	lv := &level{price: price, volume: uint64(volume)}
	b.slots[idx] = lv
	b.size++

	if b.head == nil || b.better(price, b.head.price) {
		lv.next = b.head
		if b.head != nil {
			b.head.prev = lv
		}
		b.head = lv
		return lv
	}

	cur := b.head
	for cur.next != nil && !b.better(price, cur.next.price) {
		cur = cur.next
	}
	lv.next = cur.next
	lv.prev = cur
	if cur.next != nil {
		cur.next.prev = lv
	}
	cur.next = lv
	return lv
}

func (b *bucket) remove(price book.Price) {
	idx := int32(price) & b.mask
	lv := b.slots[idx]
	if lv == nil {
		return
	}
	b.slots[idx] = nil
	b.size--

	if lv.prev != nil {
		lv.prev.next = lv.next
	} else {
		b.head = lv.next
	}
	if lv.next != nil {
		lv.next.prev = lv.prev
	}
	lv.next, lv.prev = nil, nil
}

// ShardedIndex is a red-black tree of buckets, each a fixed-size array
// of price levels tracking bare (price, volume) pairs. Install/Evict
// cost O(log m) tree work in the number of live buckets (Install also
// walks the bucket's sorted level list when it adds a new price)
// versus book.PriceIndex's array writes; BestPrice is O(1) on both,
// via a cached pointer here and a cached scalar there.
type ShardedIndex struct {
	side       book.Side
	maxPrice   int
	bucketSize int32
	buckets    *rbt.Tree[int32, *bucket]
	bestBucket *bucket
	best       book.Price
}

// NewShardedIndex allocates a sharded-tree index spanning [0, maxPrice)
// for side, with buckets of bucketSize price slots (must be a power of
// two, so intra-bucket indexing can use a bit mask).
func NewShardedIndex(side book.Side, maxPrice int, bucketSize int32) *ShardedIndex {
	idx := &ShardedIndex{
		side:       side,
		maxPrice:   maxPrice,
		bucketSize: bucketSize,
	}

	// Bucket IDs order the same direction as prices on this side: bids
	// walk highest-bucket-first, asks lowest-bucket-first.
	if side == book.Buy {
		idx.buckets = rbt.NewWith[int32, *bucket](func(a, b int32) int {
			switch {
			case a > b:
				return -1
			case a < b:
				return 1
			default:
				return 0
			}
		})
	} else {
		idx.buckets = rbt.NewWith[int32, *bucket](func(a, b int32) int {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			default:
				return 0
			}
		})
	}

	idx.best = idx.emptySentinel()
	return idx
}

func (idx *ShardedIndex) emptySentinel() book.Price {
	if idx.side == book.Buy {
		return 0
	}
	return book.Price(idx.maxPrice)
}

func (idx *ShardedIndex) betterPrice(a, b book.Price) bool {
	if idx.side == book.Buy {
		return a > b
	}
	return a < b
}

func (idx *ShardedIndex) bucketID(price book.Price) int32 {
	return int32(price) / idx.bucketSize
}

// BestPrice returns the cached best price, or the side's empty-book
// sentinel if no level is live.
func (idx *ShardedIndex) BestPrice() book.Price { return idx.best }

// HasBest reports whether any level is live on this side.
func (idx *ShardedIndex) HasBest() bool { return idx.best != idx.emptySentinel() }

// Install posts volume at price, creating the level (and its bucket,
// if this is the bucket's first live price) when absent. O(log m) in
// the number of live buckets, plus a walk of the bucket's level list
// when a new price is linked in.
func (idx *ShardedIndex) Install(price book.Price, volume book.Quantity) {
	id := idx.bucketID(price)
	b, found := idx.buckets.Get(id)
	if !found {
		b = newBucket(id, idx.bucketSize, idx.betterPrice)
		idx.buckets.Put(id, b)
	}
	b.insert(price, volume)

	if idx.bestBucket == nil || idx.betterBucket(id, idx.bestBucket.id) {
		idx.bestBucket = b
		idx.best = b.head.price
	} else if b == idx.bestBucket {
		idx.best = b.head.price
	}
}

func (idx *ShardedIndex) betterBucket(a, b int32) bool {
	if idx.side == book.Buy {
		return a > b
	}
	return a < b
}

// Evict removes the level at price entirely. If it was the last level
// in its bucket, the bucket is dropped and, if it was the best bucket,
// the best is re-read from the tree; otherwise, if its bucket is the
// best bucket, the best is re-read from that bucket's head.
func (idx *ShardedIndex) Evict(price book.Price) {
	id := idx.bucketID(price)
	b, found := idx.buckets.Get(id)
	if !found {
		return
	}
	b.remove(price)

	if b.size == 0 {
		idx.buckets.Remove(id)
		if idx.bestBucket == b {
			idx.bestBucket = nil
			idx.refreshBestFromTree()
		}
		return
	}

	if idx.bestBucket == b {
		idx.best = b.head.price
	}
}

func (idx *ShardedIndex) refreshBestFromTree() {
	if idx.buckets.Empty() {
		idx.best = idx.emptySentinel()
		return
	}
	// The tree's comparator already orders buckets best-first, so the
	// leftmost node is the new best bucket.
	node := idx.buckets.Left()
	idx.bestBucket = node.Value
	idx.best = node.Value.head.price
}

// Has reports whether a level is currently live at price.
func (idx *ShardedIndex) Has(price book.Price) bool {
	b, found := idx.buckets.Get(idx.bucketID(price))
	if !found {
		return false
	}
	return b.slots[int32(price)&b.mask] != nil
}

// BucketCount reports the number of distinct live buckets (not price
// levels) — a proxy for the tree's O(log m) factor in benchmarking.
func (idx *ShardedIndex) BucketCount() int {
	return idx.buckets.Size()
}
