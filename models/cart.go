package models

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product variant in the local cart. (ProductID,
// ProductDetailID) is its key.
type CartLine struct {
	ProductID       ID              `json:"productId"`
	ProductDetailID ID              `json:"productDetailId"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Quantity        int             `json:"quantity"`
}

// Subtotal is UnitPrice * Quantity.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// UnmarshalJSON accepts the canonical shape and the older persisted one.
//
//	productId       <- productId | id
//	productDetailId <- productDetailId
//	name            <- name | productName
//	unitPrice       <- unitPrice | price
//	quantity        <- quantity (default 1)
func (l *CartLine) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	*l = CartLine{
		ProductID:       idFrom(o.first("productId", "id")),
		ProductDetailID: idFrom(o.first("productDetailId")),
		Name:            stringFrom(o.first("name", "productName")),
		UnitPrice:       decimalFrom(o.first("unitPrice", "price")),
		Quantity:        intFrom(o.first("quantity"), 1),
	}
	return nil
}

// OrderItemRequest is one line of a checkout payload.
type OrderItemRequest struct {
	ProductDetailID WireID `json:"productDetailId"`
	Quantity        int    `json:"quantity"`
}
