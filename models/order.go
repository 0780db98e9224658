package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const unknownOrderStatus = "Unknown"

// OrderItem is one line of a placed order.
type OrderItem struct {
	ProductDetailID ID              `json:"productDetailId"`
	Name            string          `json:"name"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
}

// UnmarshalJSON aliases:
//
//	productDetailId <- productDetailId | productId | id
//	name            <- productName | name
//	quantity        <- quantity (default 1)
//	unitPrice       <- unitPrice | price
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	*i = OrderItem{
		ProductDetailID: idFrom(o.first("productDetailId", "productId", "id")),
		Name:            stringFrom(o.first("productName", "name")),
		Quantity:        intFrom(o.first("quantity"), 1),
		UnitPrice:       decimalFrom(o.first("unitPrice", "price")),
	}
	return nil
}

// Order is a placed customer or store order.
type Order struct {
	ID        ID              `json:"id"`
	Status    string          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
	Items     []OrderItem     `json:"items"`
}

// Cancellable reports whether the order is still in a state the API lets a
// customer cancel.
func (o Order) Cancellable() bool {
	switch strings.ToLower(o.Status) {
	case "pending", "processing", "confirmed":
		return true
	}
	return false
}

// UnmarshalJSON aliases:
//
//	id        <- orderId | id | referenceNumber
//	status    <- status | orderStatus | currentStatus (default "Unknown")
//	total     <- total | totalAmount | orderTotal (first non-zero) | sum of item subtotals
//	createdAt <- createdAt | orderDate | dateCreated
//	items     <- items | orderItems
func (ord *Order) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	rawItems := o.list("items", "orderItems")
	items := make([]OrderItem, 0, len(rawItems))
	for _, ri := range rawItems {
		var it OrderItem
		if err := remarshal(ri, &it); err != nil {
			return err
		}
		items = append(items, it)
	}

	status := stringFrom(o.firstTruthy("status", "orderStatus", "currentStatus"))
	if status == "" {
		status = unknownOrderStatus
	}

	var total decimal.Decimal
	if v := o.firstTruthy("total", "totalAmount", "orderTotal"); v != nil {
		total = decimalFrom(v)
	} else {
		for _, it := range items {
			total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}

	*ord = Order{
		ID:        idFrom(o.first("orderId", "id", "referenceNumber")),
		Status:    status,
		Total:     total,
		CreatedAt: timeFrom(o.first("createdAt", "orderDate", "dateCreated")),
		Items:     items,
	}
	return nil
}

// Tracking is the shipment state of an order.
type Tracking struct {
	OrderID        ID         `json:"orderId"`
	Status         string     `json:"status"`
	TrackingNumber string     `json:"trackingNumber,omitempty"`
	Carrier        string     `json:"carrier,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
}

// UnmarshalJSON aliases: orderId|id, status|orderStatus|currentStatus,
// trackingNumber|trackingCode, carrier|shippingCarrier, updatedAt|lastUpdated.
func (t *Tracking) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	status := stringFrom(o.firstTruthy("status", "orderStatus", "currentStatus"))
	if status == "" {
		status = unknownOrderStatus
	}
	*t = Tracking{
		OrderID:        idFrom(o.first("orderId", "id")),
		Status:         status,
		TrackingNumber: stringFrom(o.first("trackingNumber", "trackingCode")),
		Carrier:        stringFrom(o.first("carrier", "shippingCarrier")),
		UpdatedAt:      timeFrom(o.first("updatedAt", "lastUpdated")),
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// timeFrom parses the API's timestamps. Values without a zone are UTC.
func timeFrom(v any) *time.Time {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.UTC); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
