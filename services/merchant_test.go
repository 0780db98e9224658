package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMerchantEnv(t *testing.T) (*env, *MerchantService) {
	t.Helper()
	e := newEnv(t)
	e.signIn(t, jwt.MapClaims{"sub": "7", "role": RoleMerchant})
	return e, NewMerchantService(e.gw, e.prefs)
}

func TestMerchantProducts(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodGet, "/api/merchant/products/merchant/7", http.StatusOK, `{"items":[{"productId":1,"productName":"Desk"}]}`)

	page, err := svc.Products(context.Background(), "7", ProductQuery{Search: "de", SubCategoryID: "2"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "page=1&pageSize=20&search=de&subcategoryId=2", e.api.last(t).query)

	_, err = svc.Products(context.Background(), "", ProductQuery{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCreateProductSendsForm(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodPost, pathCreateProduct, http.StatusCreated, `{"productId":12}`)

	out, err := svc.CreateProduct(context.Background(), NewProduct{Name: "Desk", TypeID: "1", StoreID: "3", Image: []byte("png")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":12}`, string(out))

	c := e.api.last(t)
	assert.Equal(t, []string{"Desk"}, c.form["ProductName"])
	assert.Equal(t, []string{"1"}, c.form["TypeId"])
	assert.Equal(t, []string{"3"}, c.form["StoreId"])
	assert.NotContains(t, c.form, "ProductDescription")

	_, err = svc.CreateProduct(context.Background(), NewProduct{Name: "Desk"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestCreateProductUsesSavedStore(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodPost, pathCreateProduct, http.StatusCreated, `{"productId":13}`)
	ctx := context.Background()

	assert.Equal(t, "", svc.StoreID(ctx))
	assert.True(t, errors.Is(svc.SetStoreID(ctx, "  "), apperrors.ErrInvalidInput))
	require.NoError(t, svc.SetStoreID(ctx, " 5 "))
	assert.Equal(t, "5", svc.StoreID(ctx))
	assert.Equal(t, "5", e.prefs.String(ctx, "storeId"))

	_, err := svc.CreateProduct(ctx, NewProduct{Name: "Lamp", TypeID: "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"5"}, e.api.last(t).form["StoreId"])

	_, err = svc.CreateProduct(ctx, NewProduct{Name: "Lamp", TypeID: "2", StoreID: "9"})
	require.NoError(t, err)
	assert.Equal(t, []string{"9"}, e.api.last(t).form["StoreId"])
}

func TestMerchantWithoutPreferences(t *testing.T) {
	e := newEnv(t)
	svc := NewMerchantService(e.gw, nil)
	assert.NoError(t, svc.SetStoreID(context.Background(), "5"))
	assert.Equal(t, "", svc.StoreID(context.Background()))
}

func TestDeleteProduct(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodDelete, "/api/merchant/products/12", http.StatusNoContent, ``)

	require.NoError(t, svc.DeleteProduct(context.Background(), "12"))
	assert.Equal(t, http.MethodDelete, e.api.last(t).method)
}

func TestProductDetailPayloads(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodPost, pathProductDetail, http.StatusOK, `{"productDetailId":40}`)
	e.api.on(http.MethodPut, pathProductDetail, http.StatusOK, ``)
	ctx := context.Background()

	_, err := svc.CreateProductDetail(ctx, NewProductDetail{
		ProductID:         "12",
		SerialNumber:      "SN",
		Price:             decimal.RequireFromString("10.50"),
		QuantityAvailable: 4,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"productId":12,"serialNumber":"SN","price":10.5,"description":null,"quantityAvailable":4,"attributes":null}`, e.api.last(t).body)

	qty := 9
	err = svc.UpdateProductDetail(ctx, ProductDetailUpdate{
		ProductDetailID:   "40",
		QuantityAvailable: &qty,
		Attributes:        []AttributeMeasure{{AttributeID: "1", MeasureUnitID: "2"}},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"productDetailId":40,"price":null,"quantityAvailable":9,"description":null,"attributes":[{"attributeId":1,"measureUnitId":2}]}`, e.api.last(t).body)
}

func TestInventory(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodGet, "/api/merchant/inventory/product-detail/40", http.StatusOK, `[{"productDetailId":40,"serialNumber":"SN-1"}]`)
	e.api.on(http.MethodGet, "/api/merchant/inventory/store/3", http.StatusOK, `{"items":[{"detailId":40,"stockQuantity":2}]}`)
	e.api.on(http.MethodGet, "/api/merchant/inventory/store/3/low-stock", http.StatusOK, `{"items":[{"productDetailId":40,"quantity":1}]}`)
	e.api.on(http.MethodPut, "/api/merchant/inventory/product-detail/40/stock", http.StatusOK, ``)
	ctx := context.Background()

	byDetail, err := svc.InventoryByDetail(ctx, "40")
	require.NoError(t, err)
	require.Len(t, byDetail, 1)
	assert.Equal(t, "SN-1", byDetail[0].SerialNumber)

	byStore, err := svc.InventoryByStore(ctx, "3", PageRequest{})
	require.NoError(t, err)
	require.Len(t, byStore.Items, 1)
	assert.Equal(t, 2, byStore.Items[0].QuantityAvailable)
	assert.Equal(t, "page=1&pageSize=10", e.api.last(t).query)

	low, err := svc.LowStock(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, []models.InventoryRecord{{ProductDetailID: "40", QuantityAvailable: 1}}, low)

	require.NoError(t, svc.UpdateStock(ctx, "40", 0))
	assert.JSONEq(t, `{"newQuantity":0}`, e.api.last(t).body)

	assert.True(t, errors.Is(svc.UpdateStock(ctx, "40", -1), apperrors.ErrInvalidInput))
}

func TestStoreOrdersAndStatus(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodGet, "/api/merchant/orders/store/3", http.StatusOK, `{"items":[{"orderId":1,"totalAmount":12}]}`)
	e.api.on(http.MethodPut, "/api/merchant/orders/1/status", http.StatusOK, ``)
	ctx := context.Background()

	page, err := svc.StoreOrders(ctx, "3", PageRequest{Page: 2, PageSize: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "12", page.Items[0].Total.String())
	assert.Equal(t, "page=2&pageSize=5", e.api.last(t).query)

	require.NoError(t, svc.UpdateOrderStatus(ctx, "1", "Shipped"))
	assert.JSONEq(t, `{"status":"Shipped"}`, e.api.last(t).body)

	assert.True(t, errors.Is(svc.UpdateOrderStatus(ctx, "1", " "), apperrors.ErrInvalidInput))
	_, err = svc.StoreOrders(ctx, "", PageRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestAttributesAndMeasuresPassThrough(t *testing.T) {
	e, svc := newMerchantEnv(t)
	e.api.on(http.MethodGet, pathAttributes, http.StatusOK, `[{"id":1,"name":"Color"}]`)
	e.api.on(http.MethodGet, pathMeasures, http.StatusOK, `not json`)

	attrs, err := svc.Attributes(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"name":"Color"}]`, string(attrs))

	measures, err := svc.Measures(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "null", string(measures))
}
