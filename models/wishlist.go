package models

import (
	"github.com/shopspring/decimal"
)

// WishlistLine is one saved product.
type WishlistLine struct {
	ProductID ID              `json:"productId"`
	Name      string          `json:"name"`
	ImageURL  *string         `json:"imageUrl"`
	Price     decimal.Decimal `json:"price"`
}

// UnmarshalJSON maps both the remote wishlist item shape and the locally
// persisted one.
//
//	productId <- productId | id | product.id
//	name      <- name | productName | product.name
//	imageUrl  <- imageUrl | image | mainImageUrl
//	price     <- price | unitPrice | product.price
func (w *WishlistLine) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	nested := o.obj("product")
	if nested == nil {
		nested = object{}
	}

	id := o.first("productId", "id")
	if id == nil {
		id = nested.first("productId", "id")
	}
	name := o.first("name", "productName")
	if name == nil {
		name = nested.first("name", "productName")
	}
	price := o.first("price", "unitPrice")
	if price == nil {
		price = nested.first("price", "unitPrice")
	}

	*w = WishlistLine{
		ProductID: idFrom(id),
		Name:      stringFrom(name),
		ImageURL:  optionalString(o.firstTruthy("imageUrl", "image", "mainImageUrl")),
		Price:     decimalFrom(price),
	}
	return nil
}
