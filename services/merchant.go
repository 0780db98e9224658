package services

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/preferences"
	"github.com/shopspring/decimal"
)

// RoleMerchant is the role claim that unlocks the merchant console.
const RoleMerchant = "Merchant"

type NewProduct struct {
	Name        string `json:"productName" binding:"required"`
	Description string `json:"productDescription"`
	TypeID      string `json:"typeId" binding:"required"`
	StoreID     string `json:"storeId"`
	// Image is optional; ImageName defaults to "image".
	Image     []byte `json:"-"`
	ImageName string `json:"-"`
}

// AttributeMeasure ties a detail to an attribute and its unit.
type AttributeMeasure struct {
	AttributeID   models.WireID `json:"attributeId"`
	MeasureUnitID models.WireID `json:"measureUnitId"`
}

type NewProductDetail struct {
	ProductID         models.ID          `json:"productId" binding:"required"`
	SerialNumber      string             `json:"serialNumber"`
	Price             decimal.Decimal    `json:"price"`
	Description       string             `json:"description"`
	QuantityAvailable int                `json:"quantityAvailable"`
	Attributes        []AttributeMeasure `json:"attributes"`
}

type ProductDetailUpdate struct {
	ProductDetailID   models.ID          `json:"productDetailId" binding:"required"`
	Price             *decimal.Decimal   `json:"price"`
	QuantityAvailable *int               `json:"quantityAvailable"`
	Description       string             `json:"description"`
	Attributes        []AttributeMeasure `json:"attributes"`
}

// MerchantService is the merchant console: products, details, inventory
// and store orders.
type MerchantService struct {
	gateway Gateway
	prefs   StorePreference
}

// NewMerchantService builds the console. prefs may be nil, in which case no
// store id is remembered.
func NewMerchantService(gateway Gateway, prefs StorePreference) *MerchantService {
	return &MerchantService{gateway: gateway, prefs: prefs}
}

// StoreID is the merchant's saved store, or "".
func (s *MerchantService) StoreID(ctx context.Context) string {
	if s.prefs == nil {
		return ""
	}
	return s.prefs.String(ctx, preferences.KeyStoreID)
}

// SetStoreID saves the store the console works on.
func (s *MerchantService) SetStoreID(ctx context.Context, storeID string) error {
	storeID = strings.TrimSpace(storeID)
	if storeID == "" {
		return apperrors.InvalidInput("store id is required")
	}
	if s.prefs == nil {
		return nil
	}
	_, err := s.prefs.Set(ctx, preferences.KeyStoreID, storeID)
	return err
}

// Products lists the merchant's own products, 20 per page by default.
func (s *MerchantService) Products(ctx context.Context, merchantID string, q ProductQuery) (models.Page[models.Product], error) {
	var out models.Page[models.Product]
	if strings.TrimSpace(merchantID) == "" {
		return out, apperrors.InvalidInput("merchant id is required")
	}
	q.PageRequest = q.PageRequest.withDefaults(1, 20)
	err := s.gateway.DoJSON(ctx, withID(pathMerchantProducts, merchantID), clients.RequestOptions{Query: q.query()}, &out)
	return out, err
}

// CreateProduct posts the product as a form, the way the API binds it.
// An empty StoreID falls back to the saved store.
func (s *MerchantService) CreateProduct(ctx context.Context, p NewProduct) (models.Raw, error) {
	if strings.TrimSpace(p.StoreID) == "" {
		p.StoreID = s.StoreID(ctx)
	}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.TypeID) == "" || strings.TrimSpace(p.StoreID) == "" {
		return nil, apperrors.InvalidInput("product name, type id and store id are required")
	}
	form := clients.NewMultipart().
		Field("ProductName", strings.TrimSpace(p.Name)).
		Field("TypeId", strings.TrimSpace(p.TypeID)).
		Field("StoreId", strings.TrimSpace(p.StoreID))
	if p.Description != "" {
		form.Field("ProductDescription", p.Description)
	}
	if len(p.Image) > 0 {
		name := p.ImageName
		if name == "" {
			name = "image"
		}
		form.File("Image", name, p.Image)
	}

	resp, err := s.gateway.Do(ctx, pathCreateProduct, clients.RequestOptions{Method: http.MethodPost, Body: form})
	if err != nil {
		return nil, err
	}
	return raw(resp), nil
}

func (s *MerchantService) DeleteProduct(ctx context.Context, productID models.ID) error {
	if productID == "" {
		return apperrors.InvalidInput("product id is required")
	}
	_, err := s.gateway.Do(ctx, withID(pathProduct, productID.String()), clients.RequestOptions{Method: http.MethodDelete})
	return err
}

func (s *MerchantService) CreateProductDetail(ctx context.Context, d NewProductDetail) (models.Raw, error) {
	if d.ProductID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	body := map[string]any{
		"productId":         models.WireID(d.ProductID),
		"serialNumber":      d.SerialNumber,
		"price":             number(d.Price),
		"description":       nullable(d.Description),
		"quantityAvailable": d.QuantityAvailable,
		"attributes":        attributes(d.Attributes),
	}
	resp, err := s.gateway.Do(ctx, pathProductDetail, clients.RequestOptions{Method: http.MethodPost, Body: body})
	if err != nil {
		return nil, err
	}
	return raw(resp), nil
}

// UpdateProductDetail sends only what changed; unset price, quantity and
// description go out as null and attributes are omitted when empty.
func (s *MerchantService) UpdateProductDetail(ctx context.Context, u ProductDetailUpdate) error {
	if u.ProductDetailID == "" {
		return apperrors.InvalidInput("product detail id is required")
	}
	body := map[string]any{
		"productDetailId":   models.WireID(u.ProductDetailID),
		"price":             nil,
		"quantityAvailable": u.QuantityAvailable,
		"description":       nullable(u.Description),
	}
	if u.Price != nil {
		body["price"] = number(*u.Price)
	}
	if len(u.Attributes) > 0 {
		body["attributes"] = u.Attributes
	}
	_, err := s.gateway.Do(ctx, pathProductDetail, clients.RequestOptions{Method: http.MethodPut, Body: body})
	return err
}

func (s *MerchantService) Attributes(ctx context.Context) (models.Raw, error) {
	resp, err := s.gateway.Do(ctx, pathAttributes, clients.RequestOptions{})
	if err != nil {
		return nil, err
	}
	return raw(resp), nil
}

func (s *MerchantService) Measures(ctx context.Context) (models.Raw, error) {
	resp, err := s.gateway.Do(ctx, pathMeasures, clients.RequestOptions{})
	if err != nil {
		return nil, err
	}
	return raw(resp), nil
}

func (s *MerchantService) InventoryByDetail(ctx context.Context, detailID models.ID) ([]models.InventoryRecord, error) {
	if detailID == "" {
		return nil, apperrors.InvalidInput("product detail id is required")
	}
	return s.inventoryList(ctx, withID(pathInventoryByDetail, detailID.String()), nil)
}

// InventoryByStore pages through a store's stock, 10 per page by default.
func (s *MerchantService) InventoryByStore(ctx context.Context, storeID string, page PageRequest) (models.Page[models.InventoryRecord], error) {
	var out models.Page[models.InventoryRecord]
	if strings.TrimSpace(storeID) == "" {
		return out, apperrors.InvalidInput("store id is required")
	}
	err := s.gateway.DoJSON(ctx, withID(pathInventoryByStore, storeID), clients.RequestOptions{
		Query: page.withDefaults(1, 10).query(),
	}, &out)
	return out, err
}

func (s *MerchantService) LowStock(ctx context.Context, storeID string) ([]models.InventoryRecord, error) {
	if strings.TrimSpace(storeID) == "" {
		return nil, apperrors.InvalidInput("store id is required")
	}
	return s.inventoryList(ctx, withID(pathLowStock, storeID), nil)
}

func (s *MerchantService) UpdateStock(ctx context.Context, detailID models.ID, quantity int) error {
	if detailID == "" {
		return apperrors.InvalidInput("product detail id is required")
	}
	if quantity < 0 {
		return apperrors.InvalidInput("quantity cannot be negative")
	}
	_, err := s.gateway.Do(ctx, withID(pathUpdateStock, detailID.String()), clients.RequestOptions{
		Method: http.MethodPut,
		Body:   map[string]int{"newQuantity": quantity},
	})
	return err
}

// StoreOrders pages through a store's orders, 10 per page by default.
func (s *MerchantService) StoreOrders(ctx context.Context, storeID string, page PageRequest) (models.Page[models.Order], error) {
	var out models.Page[models.Order]
	if strings.TrimSpace(storeID) == "" {
		return out, apperrors.InvalidInput("Store ID is required to load orders")
	}
	err := s.gateway.DoJSON(ctx, withID(pathStoreOrders, storeID), clients.RequestOptions{
		Query: page.withDefaults(1, 10).query(),
	}, &out)
	return out, err
}

func (s *MerchantService) UpdateOrderStatus(ctx context.Context, orderID models.ID, status string) error {
	status = strings.TrimSpace(status)
	if orderID == "" || status == "" {
		return apperrors.InvalidInput("order id and status are required")
	}
	_, err := s.gateway.Do(ctx, withID(pathUpdateOrderStatus, orderID.String()), clients.RequestOptions{
		Method: http.MethodPut,
		Body:   map[string]string{"status": status},
	})
	return err
}

func (s *MerchantService) inventoryList(ctx context.Context, path string, q clients.Query) ([]models.InventoryRecord, error) {
	resp, err := s.gateway.Do(ctx, path, clients.RequestOptions{Query: q})
	if err != nil {
		return nil, err
	}
	if len(resp.Raw) == 0 {
		return []models.InventoryRecord{}, nil
	}
	out, err := models.List[models.InventoryRecord](resp.Raw)
	if err != nil {
		return nil, apperrors.DecodeFailure("inventory", err)
	}
	return out, nil
}

func raw(resp *clients.Response) models.Raw {
	if resp == nil || len(resp.Raw) == 0 || !json.Valid(resp.Raw) {
		return models.Raw("null")
	}
	return models.Raw(resp.Raw)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// attributes is null when there are none.
func attributes(a []AttributeMeasure) any {
	if len(a) == 0 {
		return nil
	}
	return a
}
