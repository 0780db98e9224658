package cart

import (
	"context"
	"strings"
	"sync"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductRef is what the cart needs to know about a product to add it.
type ProductRef struct {
	ProductID models.ID       `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// CartStore keeps the cart lines in one persisted slot. Every mutation reads
// the latest persisted list, applies the change and writes the whole list
// back before returning.
type CartStore struct {
	store storage.Store
	log   *zap.Logger
	mu    sync.Mutex
}

func NewCartStore(store storage.Store, log *zap.Logger) *CartStore {
	return &CartStore{store: store, log: logger.OrNop(log)}
}

// Lines returns the persisted lines in insertion order. A corrupt slot reads
// as an empty cart.
func (c *CartStore) Lines(ctx context.Context) []models.CartLine {
	var lines []models.CartLine
	if _, err := storage.GetJSON(ctx, c.store, storage.KeyCart, &lines); err != nil {
		logger.FromContext(ctx, c.log).Warn("unable to read cart", zap.Error(err))
		return []models.CartLine{}
	}
	out := lines[:0]
	for _, l := range lines {
		if l.ProductDetailID != "" && l.Quantity > 0 {
			out = append(out, l)
		}
	}
	if out == nil {
		return []models.CartLine{}
	}
	return out
}

func (c *CartStore) save(ctx context.Context, lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return storage.SetJSON(ctx, c.store, storage.KeyCart, lines)
}

// Add puts one unit of product into the cart. A line with the same product
// and detail id gets its quantity bumped; otherwise a new line with quantity
// 1 is appended.
func (c *CartStore) Add(ctx context.Context, product ProductRef, detailID models.ID) ([]models.CartLine, error) {
	detailID = models.ID(strings.TrimSpace(string(detailID)))
	if detailID == "" {
		return nil, apperrors.InvalidInput("product detail id is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	lines := c.Lines(ctx)
	found := false
	for i := range lines {
		if lines[i].ProductID == product.ProductID && lines[i].ProductDetailID == detailID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, models.CartLine{
			ProductID:       product.ProductID,
			ProductDetailID: detailID,
			Name:            product.Name,
			UnitPrice:       product.UnitPrice,
			Quantity:        1,
		})
	}

	if err := c.save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// AdjustQuantity adds delta to the line with detailID. A line whose quantity
// would drop to zero or below is removed. An absent line is left alone.
func (c *CartStore) AdjustQuantity(ctx context.Context, detailID models.ID, delta int) ([]models.CartLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := c.Lines(ctx)
	idx := indexOf(lines, detailID)
	if idx < 0 {
		return lines, nil
	}

	if q := lines[idx].Quantity + delta; q > 0 {
		lines[idx].Quantity = q
	} else {
		lines = append(lines[:idx], lines[idx+1:]...)
	}

	if err := c.save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Remove drops the line with detailID. Removing an absent line is a no-op.
func (c *CartStore) Remove(ctx context.Context, detailID models.ID) ([]models.CartLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := c.Lines(ctx)
	idx := indexOf(lines, detailID)
	if idx < 0 {
		return lines, nil
	}
	lines = append(lines[:idx], lines[idx+1:]...)

	if err := c.save(ctx, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Clear empties the cart.
func (c *CartStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, nil)
}

// Total is the exact sum of unit price times quantity over all lines.
func (c *CartStore) Total(ctx context.Context) decimal.Decimal {
	return Total(c.Lines(ctx))
}

// Count is the number of units in the cart.
func (c *CartStore) Count(ctx context.Context) int {
	n := 0
	for _, l := range c.Lines(ctx) {
		n += l.Quantity
	}
	return n
}

// Contains reports whether a line for productID exists. An empty detailID
// matches any variant of the product.
func (c *CartStore) Contains(ctx context.Context, productID, detailID models.ID) bool {
	for _, l := range c.Lines(ctx) {
		if l.ProductID != productID {
			continue
		}
		if detailID == "" || l.ProductDetailID == detailID {
			return true
		}
	}
	return false
}

// OrderItems turns the cart into checkout payload lines.
func (c *CartStore) OrderItems(ctx context.Context) []models.OrderItemRequest {
	lines := c.Lines(ctx)
	items := make([]models.OrderItemRequest, 0, len(lines))
	for _, l := range lines {
		items = append(items, models.OrderItemRequest{
			ProductDetailID: models.WireID(l.ProductDetailID),
			Quantity:        l.Quantity,
		})
	}
	return items
}

// Total sums lines. Decimal addition is exact, so the result does not depend
// on line order.
func Total(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func indexOf(lines []models.CartLine, detailID models.ID) int {
	for i, l := range lines {
		if l.ProductDetailID == detailID {
			return i
		}
	}
	return -1
}
