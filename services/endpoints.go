package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/shopspring/decimal"
)

// Remote API paths.
const (
	pathLogin                 = "/api/Users/Login"
	pathRegister              = "/api/Users/Register"
	pathCreateMerchantProfile = "/api/Users/CreateMerchantProfile"

	pathCategories          = "/api/Category"
	pathSubCategories       = "/api/Category/subcategory"
	pathCategoryProducts    = "/api/Category/{id}/products"
	pathSubCategoryProducts = "/api/Category/subcategory/{id}/products"
	pathProductSearch       = "/api/merchant/products/search"
	pathProduct             = "/api/merchant/products/{id}"

	pathMerchantProducts    = "/api/merchant/products/merchant/{id}"
	pathCreateProduct       = "/api/merchant/products"
	pathProductDetail       = "/api/merchant/products/details"
	pathAttributes          = "/api/merchant/attributes-measures/attributes"
	pathMeasures            = "/api/merchant/attributes-measures/measures"
	pathInventoryByDetail   = "/api/merchant/inventory/product-detail/{id}"
	pathUpdateStock         = "/api/merchant/inventory/product-detail/{id}/stock"
	pathInventoryByStore    = "/api/merchant/inventory/store/{id}"
	pathLowStock            = "/api/merchant/inventory/store/{id}/low-stock"
	pathStoreOrders         = "/api/merchant/orders/store/{id}"
	pathUpdateOrderStatus   = "/api/merchant/orders/{id}/status"
	pathCustomerOrders      = "/api/customer/orders"
	pathCustomerOrder       = "/api/customer/orders/{id}"
	pathCancelCustomerOrder = "/api/customer/orders/{id}/cancel"
	pathOrderTracking       = "/api/Orderstracking/{id}"
	pathOrderTrackingByUser = "/api/Orderstracking/user/{id}"
)

// Gateway is the request pipeline the services call through.
type Gateway interface {
	Do(ctx context.Context, path string, opts clients.RequestOptions) (*clients.Response, error)
	DoJSON(ctx context.Context, path string, opts clients.RequestOptions, out any) error
}

// PageRequest selects a page of a listing. Zero fields are left to the API.
type PageRequest struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"pageSize" json:"pageSize"`
}

func (p PageRequest) query() clients.Query {
	q := clients.Query{}
	if p.Page > 0 {
		q["page"] = p.Page
	}
	if p.PageSize > 0 {
		q["pageSize"] = p.PageSize
	}
	return q
}

func (p PageRequest) withDefaults(page, size int) PageRequest {
	if p.Page <= 0 {
		p.Page = page
	}
	if p.PageSize <= 0 {
		p.PageSize = size
	}
	return p
}

func withID(pattern, id string) string {
	return strings.Replace(pattern, "{id}", url.PathEscape(strings.TrimSpace(id)), 1)
}

// number renders d as a bare JSON number.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
