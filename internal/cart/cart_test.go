package cart

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seaBreeze = HotelInfo{ID: "h1", Name: "Sea Breeze", Image: "https://img/h1.jpg", Address: "1 Ocean Dr"}

func dayPass(id, date string, qty int, price int64) LineItem {
	return LineItem{
		ID:       id,
		Name:     "Day Pass",
		Quantity: qty,
		Price:    decimal.NewFromInt(price),
		Hotel:    seaBreeze,
		Options:  &GuestOptions{Adults: 2, Date: date},
	}
}

func TestAddItemMergesSameProductAndDate(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("dp1", "2024-09-11", 1, 80)))
	require.NoError(t, c.AddItem(dayPass("dp1", "2024-09-11", 1, 80)))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(160)), "price %s", items[0].Price)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(160)), "total %s", c.Total())
}

func TestAddItemMergeReplacesOptions(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("dp1", "2024-09-11", 1, 80)))

	next := dayPass("dp1", "2024-09-11", 2, 120)
	next.Options = &GuestOptions{Adults: 1, Children: 2, Infants: 1, Date: "2024-09-11"}
	next.Name = "Day Pass (renamed)"
	require.NoError(t, c.AddItem(next))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, GuestOptions{Adults: 1, Children: 2, Infants: 1, Date: "2024-09-11"}, *items[0].Options)
	assert.Equal(t, "Day Pass (renamed)", items[0].Name)
}

func TestAddItemKeepsDistinctDatesApart(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("p1", "2024-09-01", 1, 50)))
	require.NoError(t, c.AddItem(dayPass("p1", "2024-09-02", 1, 50)))

	assert.Equal(t, 2, c.Len())
}

func TestAddItemWithoutOptionsOnlyMergesWithUndated(t *testing.T) {
	t.Parallel()

	c := New()
	undated := LineItem{ID: "cab1", Name: "Cabana", Quantity: 1, Price: decimal.NewFromInt(200), Hotel: seaBreeze}
	require.NoError(t, c.AddItem(dayPass("cab1", "2024-09-01", 1, 200)))
	require.NoError(t, c.AddItem(undated))
	require.NoError(t, c.AddItem(undated))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Nil(t, items[1].Options)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestAddItemEmptyDateOptionsStayApartFromNoOptions(t *testing.T) {
	t.Parallel()

	c := New()
	bare := LineItem{ID: "cab1", Name: "Cabana", Quantity: 1, Price: decimal.NewFromInt(200), Hotel: seaBreeze}
	withGuests := bare
	withGuests.Options = &GuestOptions{Adults: 2}

	require.NoError(t, c.AddItem(bare))
	require.NoError(t, c.AddItem(withGuests))
	require.NoError(t, c.AddItem(withGuests))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Nil(t, items[0].Options)
	assert.Equal(t, 1, items[0].Quantity)
	require.NotNil(t, items[1].Options)
	assert.Equal(t, 2, items[1].Quantity)
	assert.Equal(t, 3, c.ItemCount())

	assert.True(t, c.RemoveLine("cab1", ""))
	assert.Equal(t, 0, c.Len())
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	c := New()
	for _, id := range []string{"x", "y", "z"} {
		require.NoError(t, c.AddItem(dayPass(id, "2024-09-01", 1, 10)))
	}
	require.NoError(t, c.AddItem(dayPass("y", "2024-09-01", 1, 10)))

	assert.Equal(t, []string{"x", "y", "z"}, ids(c.Items()))
	assert.Equal(t, 2, c.Items()[1].Quantity)
}

func TestAddItemRejectsOtherHotel(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("dp1", "2024-09-01", 1, 80)))

	other := dayPass("dp9", "2024-09-01", 1, 90)
	other.Hotel = HotelInfo{ID: "h2", Name: "Palm Court"}
	require.ErrorIs(t, c.AddItem(other), ErrHotelMismatch)

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, "h1", c.HotelInfo().ID)
}

func TestReplaceWithStartsOverForNewHotel(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("dp1", "2024-09-01", 1, 80)))
	require.NoError(t, c.AddItem(dayPass("dp2", "2024-09-01", 1, 40)))

	other := dayPass("dp9", "2024-09-01", 1, 90)
	other.Hotel = HotelInfo{ID: "h2", Name: "Palm Court"}
	c.ReplaceWith(other)

	assert.Equal(t, []string{"dp9"}, ids(c.Items()))
	assert.Equal(t, "h2", c.HotelInfo().ID)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(90)))
}

func TestTotalTracksAddsAndRemovals(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 1, 25)))
	before := c.Total()

	added := dayPass("b", "2024-09-01", 1, 75)
	require.NoError(t, c.AddItem(added))
	assert.True(t, c.Total().Sub(before).Equal(added.Price))

	c.RemoveItem("b")
	assert.True(t, c.Total().Equal(before))
}

func TestTotalUsesExactDecimalArithmetic(t *testing.T) {
	t.Parallel()

	c := New()
	item := dayPass("a", "2024-09-01", 1, 0)
	item.Price = decimal.RequireFromString("0.1")
	require.NoError(t, c.AddItem(item))
	item.Options = &GuestOptions{Adults: 1, Date: "2024-09-02"}
	item.Price = decimal.RequireFromString("0.2")
	require.NoError(t, c.AddItem(item))

	assert.Equal(t, "0.3", c.Total().String())
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 1, 10)))
	require.NoError(t, c.AddItem(dayPass("b", "2024-09-01", 1, 10)))

	c.RemoveItem("a")
	first := c.Items()
	c.RemoveItem("a")

	assert.Equal(t, first, c.Items())
	assert.False(t, c.IsInCart("a"))
	assert.True(t, c.IsInCart("b"))
}

func TestRemoveItemDropsEveryDate(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("p1", "2024-09-01", 1, 50)))
	require.NoError(t, c.AddItem(dayPass("p2", "2024-09-01", 1, 20)))
	require.NoError(t, c.AddItem(dayPass("p1", "2024-09-02", 1, 50)))

	c.RemoveItem("p1")

	assert.Equal(t, []string{"p2"}, ids(c.Items()))
}

func TestRemoveLineUsesMergeKey(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("p1", "2024-09-01", 1, 50)))
	require.NoError(t, c.AddItem(dayPass("p1", "2024-09-02", 1, 60)))

	assert.True(t, c.RemoveLine("p1", "2024-09-01"))
	assert.False(t, c.RemoveLine("p1", "2024-09-01"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2024-09-02", items[0].Date())
	assert.True(t, c.IsInCart("p1"))
}

func TestEmptyCartBoundaries(t *testing.T) {
	t.Parallel()

	c := New()
	assert.Nil(t, c.HotelInfo())
	assert.True(t, c.Total().IsZero())
	assert.Equal(t, 0, c.ItemCount())
	assert.False(t, c.IsInCart("anything"))
	c.RemoveItem("anything")
	assert.Equal(t, 0, c.Len())
}

func TestItemCountSumsQuantities(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 2, 10)))
	require.NoError(t, c.AddItem(dayPass("b", "2024-09-01", 3, 10)))
	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 1, 10)))

	assert.Equal(t, 6, c.ItemCount())
}

func TestEscapeDateIsIndependentOfItems(t *testing.T) {
	t.Parallel()

	c := New()
	date := time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)
	c.UpdateEscapeDate(date)
	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 1, 10)))
	c.Clear()

	assert.True(t, c.EscapeDate().Equal(date))
	assert.Equal(t, 0, c.Len())
}

func TestItemsReturnsDetachedCopies(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 1, 10)))

	items := c.Items()
	items[0].Quantity = 99
	items[0].Options.Adults = 99

	stored := c.Items()[0]
	assert.Equal(t, 1, stored.Quantity)
	assert.Equal(t, 2, stored.Options.Adults)
}

func TestConcurrentMergesAreNotLost(t *testing.T) {
	t.Parallel()

	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.AddItem(dayPass("dp1", "2024-09-11", 1, 80))
		}()
	}
	wg.Wait()

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 50, c.ItemCount())
	assert.True(t, c.Total().Equal(decimal.NewFromInt(4000)))
}

func TestCheckoutSummary(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.Checkout(time.Now())
	require.ErrorIs(t, err, ErrNoHotelInfo)

	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 2, 30)))
	now := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	summary, err := c.Checkout(now)
	require.NoError(t, err)

	assert.Equal(t, seaBreeze, summary.Hotel)
	assert.Equal(t, 2, summary.ItemCount)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, now, summary.CapturedAt)
}

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	c := New()
	c.UpdateEscapeDate(time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC))
	require.NoError(t, c.AddItem(dayPass("a", "2024-09-01", 1, 10)))
	require.NoError(t, c.AddItem(dayPass("b", "2024-09-02", 1, 20)))

	restored := FromSnapshot(c.Snapshot())

	assert.Equal(t, c.Items(), restored.Items())
	assert.True(t, restored.EscapeDate().Equal(c.EscapeDate()))
	require.NoError(t, restored.AddItem(dayPass("a", "2024-09-01", 1, 10)))
	assert.Equal(t, 2, restored.Len())
}

func TestLinePrice(t *testing.T) {
	t.Parallel()

	unit := decimal.NewFromInt(40)
	assert.True(t, LinePrice(unit, &GuestOptions{Adults: 2}).Equal(decimal.NewFromInt(80)))
	assert.True(t, LinePrice(unit, &GuestOptions{Adults: 1, Children: 1, Infants: 1}).Equal(decimal.NewFromInt(120)))
	assert.True(t, LinePrice(unit, nil).Equal(unit))
	assert.True(t, LinePrice(unit, &GuestOptions{}).Equal(unit))
}

func ids(items []LineItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
