package book

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitEnqueueMaintainsFIFOOrderAndTotals(t *testing.T) {
	lvl := &Limit{Price: 100}
	o1 := &Order{ID: 1, Price: 100, Quantity: 10}
	o2 := &Order{ID: 2, Price: 100, Quantity: 5}
	o3 := &Order{ID: 3, Price: 100, Quantity: 7}

	lvl.Enqueue(o1)
	lvl.Enqueue(o2)
	lvl.Enqueue(o3)

	require.Equal(t, uint32(3), lvl.Size())
	require.Equal(t, uint32(22), lvl.TotalVolume())
	require.Same(t, o1, lvl.Head())
	require.Same(t, lvl, o1.Level())
}

func TestLimitRemoveMiddleReknitsNeighborsAndTotals(t *testing.T) {
	lvl := &Limit{Price: 100}
	o1 := &Order{ID: 1, Price: 100, Quantity: 10}
	o2 := &Order{ID: 2, Price: 100, Quantity: 10}
	o3 := &Order{ID: 3, Price: 100, Quantity: 10}
	lvl.Enqueue(o1)
	lvl.Enqueue(o2)
	lvl.Enqueue(o3)

	lvl.Remove(o2)

	require.Equal(t, uint32(2), lvl.Size())
	require.Equal(t, uint32(20), lvl.TotalVolume())
	require.Same(t, o1, lvl.Head())
	require.Same(t, o3, o1.next)
	require.Same(t, o1, o3.prev)
	require.Nil(t, o2.Level())
}

func TestLimitRemoveHeadAdvancesHead(t *testing.T) {
	lvl := &Limit{Price: 100}
	o1 := &Order{ID: 1, Price: 100, Quantity: 10}
	o2 := &Order{ID: 2, Price: 100, Quantity: 10}
	lvl.Enqueue(o1)
	lvl.Enqueue(o2)

	lvl.Remove(o1)
	require.Same(t, o2, lvl.Head())
	require.Nil(t, o2.prev)
}

func TestLimitRemoveLastOrderEmptiesLevel(t *testing.T) {
	lvl := &Limit{Price: 100}
	o1 := &Order{ID: 1, Price: 100, Quantity: 10}
	lvl.Enqueue(o1)
	lvl.Remove(o1)

	require.Equal(t, uint32(0), lvl.Size())
	require.Equal(t, uint32(0), lvl.TotalVolume())
	require.Nil(t, lvl.Head())
}

func TestLimitPartialFillReducesQuantityWithoutUnlinking(t *testing.T) {
	lvl := &Limit{Price: 100}
	o1 := &Order{ID: 1, Price: 100, Quantity: 10}
	lvl.Enqueue(o1)

	lvl.PartialFill(o1, 4)

	require.Equal(t, Quantity(6), o1.Quantity)
	require.Equal(t, uint32(6), lvl.TotalVolume())
	require.Equal(t, uint32(1), lvl.Size())
	require.Same(t, o1, lvl.Head())
}

func TestSideOppositeSwaps(t *testing.T) {
	require.Equal(t, Sell, Buy.Opposite())
	require.Equal(t, Buy, Sell.Opposite())
}
