package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/auth"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/preferences"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CheckoutCart is the cart as checkout sees it.
type CheckoutCart interface {
	OrderItems(ctx context.Context) []models.OrderItemRequest
	Clear(ctx context.Context) error
}

// StorePreference remembers the store used for the last order.
type StorePreference interface {
	String(ctx context.Context, key string) string
	Set(ctx context.Context, key string, value any) (map[string]any, error)
}

// SessionReader yields the current session or nil.
type SessionReader interface {
	Session(ctx context.Context) *auth.Session
}

type CheckoutRequest struct {
	StoreID          string           `json:"storeId"`
	PaymentTypeID    int              `json:"paymentTypeId"`
	ShipmentMethodID int              `json:"shipmentMethodId"`
	Tax              *decimal.Decimal `json:"tax,omitempty"`
}

type checkoutPayload struct {
	StoreID          models.WireID             `json:"storeId"`
	PaymentTypeID    int                       `json:"paymentTypeId"`
	ShipmentMethodID int                       `json:"shipmentMethodId"`
	OrderItems       []models.OrderItemRequest `json:"orderItems"`
	Tax              *json.Number              `json:"tax,omitempty"`
}

// OrderService places and follows customer orders.
type OrderService struct {
	gateway  Gateway
	sessions SessionReader
	cart     CheckoutCart
	prefs    StorePreference
	log      *zap.Logger
}

func NewOrderService(gateway Gateway, sessions SessionReader, cart CheckoutCart, prefs StorePreference, log *zap.Logger) *OrderService {
	return &OrderService{gateway: gateway, sessions: sessions, cart: cart, prefs: prefs, log: logger.OrNop(log)}
}

// Checkout places an order for the whole cart and clears the cart once the
// API accepts it. The store defaults to the last one used; payment type and
// shipment method default to 1.
func (s *OrderService) Checkout(ctx context.Context, req CheckoutRequest) (models.Raw, error) {
	if s.sessions.Session(ctx) == nil {
		return nil, apperrors.New(apperrors.KindUnauthorized, http.StatusUnauthorized, "Please log in before placing an order.", nil)
	}

	items := s.cart.OrderItems(ctx)
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("Cart is empty.")
	}
	for _, it := range items {
		if strings.TrimSpace(string(it.ProductDetailID)) == "" {
			return nil, apperrors.InvalidInput("Every cart item needs a product detail ID.")
		}
	}

	storeID := strings.TrimSpace(req.StoreID)
	if storeID == "" && s.prefs != nil {
		storeID = s.prefs.String(ctx, preferences.KeyLastStoreID)
	}
	if storeID == "" {
		return nil, apperrors.InvalidInput("Store ID is required for checkout.")
	}

	payload := checkoutPayload{
		StoreID:          models.WireID(storeID),
		PaymentTypeID:    req.PaymentTypeID,
		ShipmentMethodID: req.ShipmentMethodID,
		OrderItems:       items,
	}
	if payload.PaymentTypeID <= 0 {
		payload.PaymentTypeID = 1
	}
	if payload.ShipmentMethodID <= 0 {
		payload.ShipmentMethodID = 1
	}
	if req.Tax != nil {
		tax := number(*req.Tax)
		payload.Tax = &tax
	}

	resp, err := s.gateway.Do(ctx, pathCustomerOrders, clients.RequestOptions{
		Method: http.MethodPost,
		Body:   payload,
	})
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx, s.log)
	if err := s.cart.Clear(ctx); err != nil {
		log.Error("order placed but cart could not be cleared", zap.Error(err))
	}
	if s.prefs != nil {
		if _, err := s.prefs.Set(ctx, preferences.KeyLastStoreID, storeID); err != nil {
			log.Warn("failed to remember store", zap.Error(err))
		}
	}
	log.Info("order placed", zap.String("store_id", storeID), zap.Int("lines", len(items)))

	return raw(resp), nil
}

// List returns the signed-in customer's orders, 20 per page by default.
func (s *OrderService) List(ctx context.Context, page PageRequest) (models.Page[models.Order], error) {
	var out models.Page[models.Order]
	err := s.gateway.DoJSON(ctx, pathCustomerOrders, clients.RequestOptions{
		Query: page.withDefaults(1, 20).query(),
	}, &out)
	return out, err
}

func (s *OrderService) Get(ctx context.Context, orderID models.ID) (*models.Order, error) {
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}
	var out models.Order
	if err := s.gateway.DoJSON(ctx, withID(pathCustomerOrder, orderID.String()), clients.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) Cancel(ctx context.Context, orderID models.ID) error {
	if orderID == "" {
		return apperrors.InvalidInput("order id is required")
	}
	_, err := s.gateway.Do(ctx, withID(pathCancelCustomerOrder, orderID.String()), clients.RequestOptions{
		Method: http.MethodPut,
	})
	return err
}

func (s *OrderService) Track(ctx context.Context, orderID models.ID) (*models.Tracking, error) {
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}
	var out models.Tracking
	if err := s.gateway.DoJSON(ctx, withID(pathOrderTracking, orderID.String()), clients.RequestOptions{}, &out); err != nil {
		return nil, err
	}
	if out.OrderID == "" {
		out.OrderID = orderID
	}
	return &out, nil
}

// TrackAll returns the tracking state of every order of the signed-in user.
func (s *OrderService) TrackAll(ctx context.Context) ([]models.Tracking, error) {
	session := s.sessions.Session(ctx)
	if session == nil || session.UserID == "" {
		return nil, apperrors.Unauthorized()
	}
	resp, err := s.gateway.Do(ctx, withID(pathOrderTrackingByUser, session.UserID), clients.RequestOptions{})
	if err != nil {
		return nil, err
	}
	if len(resp.Raw) == 0 {
		return []models.Tracking{}, nil
	}
	out, err := models.List[models.Tracking](resp.Raw)
	if err != nil {
		return nil, apperrors.DecodeFailure("order tracking", err)
	}
	return out, nil
}
