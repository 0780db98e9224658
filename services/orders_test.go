package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/cart"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/preferences"
	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) orders() *OrderService {
	return NewOrderService(e.gw, e.tokens, e.cart, e.prefs, nil)
}

func (e *env) fillCart(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := e.cart.Add(ctx, cart.ProductRef{ProductID: "1", Name: "Mug", UnitPrice: decimal.RequireFromString("19.99")}, "10")
	require.NoError(t, err)
	_, err = e.cart.Add(ctx, cart.ProductRef{ProductID: "1", Name: "Mug", UnitPrice: decimal.RequireFromString("19.99")}, "10")
	require.NoError(t, err)
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, jwt.MapClaims{"sub": "1"})
	e.fillCart(t)
	e.api.on(http.MethodPost, pathCustomerOrders, http.StatusCreated, `{"orderId":99}`)

	tax := decimal.RequireFromString("1.50")
	out, err := e.orders().Checkout(context.Background(), CheckoutRequest{StoreID: "3", Tax: &tax})
	require.NoError(t, err)
	assert.JSONEq(t, `{"orderId":99}`, string(out))

	assert.JSONEq(t, `{"storeId":3,"paymentTypeId":1,"shipmentMethodId":1,"orderItems":[{"productDetailId":10,"quantity":2}],"tax":1.5}`, e.api.last(t).body)
	assert.Empty(t, e.cart.Lines(context.Background()))
	assert.Equal(t, "3", e.prefs.String(context.Background(), preferences.KeyLastStoreID))
}

func TestCheckoutUsesLastStore(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, jwt.MapClaims{"sub": "1"})
	e.fillCart(t)
	_, err := e.prefs.Set(context.Background(), preferences.KeyLastStoreID, "8")
	require.NoError(t, err)
	e.api.on(http.MethodPost, pathCustomerOrders, http.StatusOK, ``)

	out, err := e.orders().Checkout(context.Background(), CheckoutRequest{PaymentTypeID: 2})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
	assert.JSONEq(t, `{"storeId":8,"paymentTypeId":2,"shipmentMethodId":1,"orderItems":[{"productDetailId":10,"quantity":2}]}`, e.api.last(t).body)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, jwt.MapClaims{"sub": "1"})
	e.fillCart(t)
	e.api.on(http.MethodPost, pathCustomerOrders, http.StatusBadRequest, `{"message":"Out of stock"}`)

	_, err := e.orders().Checkout(context.Background(), CheckoutRequest{StoreID: "3"})
	require.Error(t, err)
	assert.Equal(t, "Out of stock", err.Error())
	assert.Len(t, e.cart.Lines(context.Background()), 1)
}

func TestCheckoutPreconditions(t *testing.T) {
	e := newEnv(t)

	_, err := e.orders().Checkout(context.Background(), CheckoutRequest{StoreID: "3"})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	e.signIn(t, jwt.MapClaims{"sub": "1"})
	_, err = e.orders().Checkout(context.Background(), CheckoutRequest{StoreID: "3"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, "Cart is empty.", err.Error())

	e.fillCart(t)
	_, err = e.orders().Checkout(context.Background(), CheckoutRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, "Store ID is required for checkout.", err.Error())

	assert.Empty(t, e.api.recorded())
}

func TestListOrders(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, jwt.MapClaims{"sub": "1"})
	e.api.on(http.MethodGet, pathCustomerOrders, http.StatusOK, `{"items":[{"id":1,"orderStatus":"Shipped","orderItems":[{"price":2,"quantity":3}]}]}`)

	page, err := e.orders().List(context.Background(), PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Shipped", page.Items[0].Status)
	assert.Equal(t, "6", page.Items[0].Total.String())
	assert.Equal(t, "page=1&pageSize=20", e.api.last(t).query)
	assert.Contains(t, e.api.last(t).auth, "Bearer ")
}

func TestGetCancelTrack(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, jwt.MapClaims{"sub": "1"})
	e.api.on(http.MethodGet, "/api/customer/orders/5", http.StatusOK, `{"orderId":5,"status":"Pending"}`)
	e.api.on(http.MethodPut, "/api/customer/orders/5/cancel", http.StatusNoContent, ``)
	e.api.on(http.MethodGet, "/api/Orderstracking/5", http.StatusOK, `{"orderStatus":"Cancelled"}`)
	ctx := context.Background()
	svc := e.orders()

	order, err := svc.Get(ctx, "5")
	require.NoError(t, err)
	assert.True(t, order.Cancellable())

	require.NoError(t, svc.Cancel(ctx, "5"))
	assert.Equal(t, http.MethodPut, e.api.last(t).method)

	tr, err := svc.Track(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, models.ID("5"), tr.OrderID)
	assert.Equal(t, "Cancelled", tr.Status)
}

func TestTrackAll(t *testing.T) {
	e := newEnv(t)
	_, err := e.orders().TrackAll(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))

	e.signIn(t, jwt.MapClaims{"sub": "42"})
	e.api.on(http.MethodGet, "/api/Orderstracking/user/42", http.StatusOK, `[{"orderId":1,"status":"Shipped"},{"orderId":2}]`)

	all, err := e.orders().TrackAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Unknown", all[1].Status)
}

func TestUnauthorizedOrderCallClearsSession(t *testing.T) {
	e := newEnv(t)
	e.signIn(t, jwt.MapClaims{"sub": "1"})
	e.api.on(http.MethodGet, pathCustomerOrders, http.StatusUnauthorized, ``)

	_, err := e.orders().List(context.Background(), PageRequest{})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized))
	assert.Nil(t, e.tokens.Session(context.Background()))
}
