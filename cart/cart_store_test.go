package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newTestCart(t *testing.T) (*CartStore, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	return NewCartStore(mem, nil), mem
}

func TestAddTwiceIncrementsQuantity(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)
	mug := ProductRef{ProductID: "1", Name: "Mug", UnitPrice: price("19.99")}

	_, err := c.Add(ctx, mug, "10")
	require.NoError(t, err)
	lines, err := c.Add(ctx, mug, "10")
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "39.98", c.Total(ctx).String())
	assert.Equal(t, 2, c.Count(ctx))
}

func TestAddRequiresDetailID(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCart(t)

	_, err := c.Add(ctx, ProductRef{ProductID: "1"}, "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	_, found, _ := mem.Get(ctx, storage.KeyCart)
	assert.False(t, found)
}

func TestDifferentVariantsAreSeparateLines(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)
	shirt := ProductRef{ProductID: "2", Name: "Shirt", UnitPrice: price("10")}

	_, err := c.Add(ctx, shirt, "20")
	require.NoError(t, err)
	lines, err := c.Add(ctx, shirt, "21")
	require.NoError(t, err)

	assert.Len(t, lines, 2)
	assert.True(t, c.Contains(ctx, "2", ""))
	assert.True(t, c.Contains(ctx, "2", "21"))
	assert.False(t, c.Contains(ctx, "2", "22"))
	assert.False(t, c.Contains(ctx, "3", ""))
}

func TestTotalIndependentOfInsertionOrder(t *testing.T) {
	ctx := context.Background()
	a := ProductRef{ProductID: "1", UnitPrice: price("0.10")}
	b := ProductRef{ProductID: "2", UnitPrice: price("0.20")}

	ab, _ := newTestCart(t)
	_, _ = ab.Add(ctx, a, "10")
	_, _ = ab.Add(ctx, b, "20")
	_, _ = ab.AdjustQuantity(ctx, "20", 2)

	ba, _ := newTestCart(t)
	_, _ = ba.Add(ctx, b, "20")
	_, _ = ba.AdjustQuantity(ctx, "20", 2)
	_, _ = ba.Add(ctx, a, "10")

	assert.True(t, ab.Total(ctx).Equal(ba.Total(ctx)))
	assert.Equal(t, "0.7", ab.Total(ctx).String())
}

func TestAdjustQuantityToZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)
	_, err := c.Add(ctx, ProductRef{ProductID: "1", UnitPrice: price("5")}, "10")
	require.NoError(t, err)

	lines, err := c.AdjustQuantity(ctx, "10", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, lines[0].Quantity)

	lines, err = c.AdjustQuantity(ctx, "10", -10)
	require.NoError(t, err)
	assert.Empty(t, lines)

	lines, err = c.AdjustQuantity(ctx, "10", -1)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.True(t, c.Total(ctx).IsZero())
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)
	_, _ = c.Add(ctx, ProductRef{ProductID: "1", UnitPrice: price("5")}, "10")
	_, _ = c.Add(ctx, ProductRef{ProductID: "2", UnitPrice: price("6")}, "20")

	lines, err := c.Remove(ctx, "10")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, models.ID("20"), lines[0].ProductDetailID)

	lines, err = c.Remove(ctx, "10")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCart(t)
	_, _ = c.Add(ctx, ProductRef{ProductID: "1", UnitPrice: price("5")}, "10")

	require.NoError(t, c.Clear(ctx))
	assert.Empty(t, c.Lines(ctx))

	raw, found, err := mem.Get(ctx, storage.KeyCart)
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestWriteThroughPersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	first := NewCartStore(mem, nil)
	_, err := first.Add(ctx, ProductRef{ProductID: "1", Name: "Mug", UnitPrice: price("19.99")}, "10")
	require.NoError(t, err)

	// A second store over the same slot sees the write immediately.
	second := NewCartStore(mem, nil)
	lines := second.Lines(ctx)
	require.Len(t, lines, 1)
	assert.Equal(t, "Mug", lines[0].Name)
	assert.True(t, price("19.99").Equal(lines[0].UnitPrice))
}

func TestCorruptSlotReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCart(t)
	require.NoError(t, mem.Set(ctx, storage.KeyCart, []byte("{not json")))

	assert.Empty(t, c.Lines(ctx))

	lines, err := c.Add(ctx, ProductRef{ProductID: "1", UnitPrice: price("1")}, "10")
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestLegacyPersistedShape(t *testing.T) {
	ctx := context.Background()
	c, mem := newTestCart(t)
	require.NoError(t, mem.Set(ctx, storage.KeyCart, []byte(`[{"productId":1,"productDetailId":10,"name":"Mug","price":19.99,"quantity":2},{"productId":2,"quantity":1}]`)))

	lines := c.Lines(ctx)
	require.Len(t, lines, 1, "lines without a detail id are dropped")
	assert.Equal(t, "39.98", c.Total(ctx).String())
}

func TestOrderItems(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCart(t)
	_, _ = c.Add(ctx, ProductRef{ProductID: "1", UnitPrice: price("5")}, "10")
	_, _ = c.AdjustQuantity(ctx, "10", 1)

	assert.Equal(t, []models.OrderItemRequest{{ProductDetailID: "10", Quantity: 2}}, c.OrderItems(ctx))
}
