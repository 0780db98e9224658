package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const untitledProduct = "Untitled product"

// ProductDetail is a purchasable variant of a product.
type ProductDetail struct {
	ID                ID              `json:"productDetailId"`
	Price             decimal.Decimal `json:"price"`
	QuantityAvailable *int            `json:"quantityAvailable,omitempty"`
	StoreID           ID              `json:"storeId,omitempty"`
}

// UnmarshalJSON aliases:
//
//	productDetailId   <- productDetailId | id
//	price             <- price | priceValue
//	quantityAvailable <- quantityAvailable | quantity
func (d *ProductDetail) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	*d = ProductDetail{
		ID:      idFrom(o.first("productDetailId", "id")),
		Price:   decimalFrom(o.first("price", "priceValue")),
		StoreID: idFrom(o.first("storeId", "storeID")),
	}
	if q := o.first("quantityAvailable", "quantity"); q != nil {
		n := intFrom(q, 0)
		d.QuantityAvailable = &n
	}
	return nil
}

// Product is the canonical catalog record.
type Product struct {
	ID              ID              `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	ImageURL        string          `json:"imageUrl"`
	ProductDetailID ID              `json:"productDetailId,omitempty"`
	StoreID         ID              `json:"storeId,omitempty"`
	Details         []ProductDetail `json:"details"`
}

// UnmarshalJSON aliases:
//
//	id              <- productId | id | productID | product.id
//	name            <- productName | name (default "Untitled product")
//	description     <- productDescription | description
//	details         <- productDetails | details | variants
//	price           <- price | unitPrice | details[0].price | details[0].priceValue | productDetail.price
//	productDetailId <- details[0].productDetailId | details[0].id | productDetailId | productDetail.productDetailId
//	imageUrl        <- imageUrl | mainImageUrl | thumbnailUrl | imageUrls[0]
//	storeId         <- storeId | storeID | details[0].storeId
func (p *Product) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	rawDetails := o.list("productDetails", "details", "variants")
	details := make([]ProductDetail, 0, len(rawDetails))
	var first object
	for i, rd := range rawDetails {
		m, ok := rd.(map[string]any)
		if !ok {
			continue
		}
		if i == 0 {
			first = object(m)
		}
		var d ProductDetail
		if err := remarshal(m, &d); err != nil {
			return err
		}
		details = append(details, d)
	}
	if first == nil {
		first = object{}
	}
	single := o.obj("productDetail")
	if single == nil {
		single = object{}
	}
	nested := o.obj("product")
	if nested == nil {
		nested = object{}
	}

	id := o.first("productId", "id", "productID")
	if id == nil {
		id = nested.first("id")
	}
	price := o.first("price", "unitPrice")
	if price == nil {
		price = first.first("price", "priceValue")
	}
	if price == nil {
		price = single.first("price")
	}
	detailID := first.first("productDetailId", "id")
	if detailID == nil {
		detailID = o.first("productDetailId")
	}
	if detailID == nil {
		detailID = single.first("productDetailId")
	}
	storeID := o.first("storeId", "storeID")
	if storeID == nil {
		storeID = first.first("storeId")
	}

	name := stringFrom(o.first("productName", "name"))
	if name == "" {
		name = untitledProduct
	}

	image := stringFrom(o.firstTruthy("imageUrl", "mainImageUrl", "thumbnailUrl"))
	if image == "" {
		if urls := o.list("imageUrls"); len(urls) > 0 {
			image = stringFrom(urls[0])
		}
	}

	*p = Product{
		ID:              idFrom(id),
		Name:            name,
		Description:     stringFrom(o.first("productDescription", "description")),
		Price:           decimalFrom(price),
		ImageURL:        image,
		ProductDetailID: idFrom(detailID),
		StoreID:         idFrom(storeID),
		Details:         details,
	}
	return nil
}

// Category is a top-level catalog category.
type Category struct {
	ID          ID     `json:"categoryId"`
	Name        string `json:"categoryName"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// UnmarshalJSON aliases: categoryId|id, categoryName|name,
// categoryDescription|description, imageUrl|categoryImage.
func (c *Category) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	*c = Category{
		ID:          idFrom(o.first("categoryId", "CategoryId", "id")),
		Name:        stringFrom(o.first("categoryName", "CategoryName", "name")),
		Description: stringFrom(o.first("categoryDescription", "description")),
		ImageURL:    stringFrom(o.firstTruthy("imageUrl", "categoryImage")),
	}
	return nil
}

// SubCategory belongs to a Category.
type SubCategory struct {
	ID         ID     `json:"subCategoryId"`
	Name       string `json:"subCategoryName"`
	CategoryID ID     `json:"categoryId,omitempty"`
}

// UnmarshalJSON aliases: subCategoryId|id, subCategoryName|name, categoryId.
func (s *SubCategory) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	*s = SubCategory{
		ID:         idFrom(o.first("subCategoryId", "SubCategoryId", "id")),
		Name:       stringFrom(o.first("subCategoryName", "SubCategoryName", "name")),
		CategoryID: idFrom(o.first("categoryId", "CategoryId")),
	}
	return nil
}

// InventoryRecord is the stock of one product detail in one store.
type InventoryRecord struct {
	ProductDetailID   ID         `json:"productDetailId"`
	StoreID           ID         `json:"storeId,omitempty"`
	SerialNumber      string     `json:"serialNumber,omitempty"`
	QuantityAvailable int        `json:"quantityAvailable"`
	LowStockThreshold int        `json:"lowStockThreshold,omitempty"`
	CreatedAt         *time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON aliases:
//
//	productDetailId   <- productDetailId | detailId | id
//	serialNumber      <- serialNumber | serial
//	quantityAvailable <- quantityAvailable | stockQuantity | quantity | stock
//	lowStockThreshold <- lowStockThreshold | threshold
//	createdAt         <- createdAt | createdDate
func (r *InventoryRecord) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	*r = InventoryRecord{
		ProductDetailID:   idFrom(o.first("productDetailId", "detailId", "id")),
		StoreID:           idFrom(o.first("storeId", "storeID")),
		SerialNumber:      stringFrom(o.first("serialNumber", "serial")),
		QuantityAvailable: intFrom(o.first("quantityAvailable", "stockQuantity", "quantity", "stock"), 0),
		LowStockThreshold: intFrom(o.first("lowStockThreshold", "threshold"), 0),
		CreatedAt:         timeFrom(o.first("createdAt", "createdDate")),
	}
	return nil
}

// Raw keeps an unnormalized payload for endpoints with no canonical shape.
type Raw = json.RawMessage
