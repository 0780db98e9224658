package controllers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/services"
	"github.com/gin-gonic/gin"
)

// MerchantController is the merchant console. Routes are mounted behind
// RequireRole, which puts the session's user id under "userID".
type MerchantController struct {
	merchant *services.MerchantService
}

func NewMerchantController(merchant *services.MerchantService) *MerchantController {
	return &MerchantController{merchant: merchant}
}

// Products handles GET /merchant/products. merchantId defaults to the
// signed-in user.
func (mc *MerchantController) Products(c *gin.Context) {
	merchantID := c.Query("merchantId")
	if merchantID == "" {
		merchantID = c.GetString("userID")
	}
	q := services.ProductQuery{
		PageRequest:   pageFromQuery(c),
		Search:        c.Query("search"),
		SubCategoryID: c.Query("subcategoryId"),
	}
	page, err := mc.merchant.Products(c.Request.Context(), merchantID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type createProductForm struct {
	Name        string                `form:"productName" json:"productName"`
	Description string                `form:"productDescription" json:"productDescription"`
	TypeID      string                `form:"typeId" json:"typeId"`
	StoreID     string                `form:"storeId" json:"storeId"`
	Image       *multipart.FileHeader `form:"image" json:"-"`
}

// CreateProduct handles POST /merchant/products, as JSON or as a form with an
// optional image file. A missing storeId uses the saved store.
func (mc *MerchantController) CreateProduct(c *gin.Context) {
	var form createProductForm
	if err := c.ShouldBind(&form); err != nil {
		badRequest(c, err)
		return
	}
	p := services.NewProduct{
		Name:        form.Name,
		Description: form.Description,
		TypeID:      form.TypeID,
		StoreID:     form.StoreID,
	}
	if form.Image != nil {
		content, err := readFile(form.Image)
		if err != nil {
			badRequest(c, err)
			return
		}
		p.Image = content
		p.ImageName = form.Image.Filename
	}

	out, err := mc.merchant.CreateProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": out})
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// Store handles GET /merchant/store.
func (mc *MerchantController) Store(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"storeId": mc.merchant.StoreID(c.Request.Context())})
}

// SaveStore handles PUT /merchant/store.
func (mc *MerchantController) SaveStore(c *gin.Context) {
	var req struct {
		StoreID string `json:"storeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := mc.merchant.SetStoreID(c.Request.Context(), req.StoreID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"storeId": mc.merchant.StoreID(c.Request.Context())})
}

// DeleteProduct handles DELETE /merchant/products/:id.
func (mc *MerchantController) DeleteProduct(c *gin.Context) {
	if err := mc.merchant.DeleteProduct(c.Request.Context(), models.ID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// CreateProductDetail handles POST /merchant/product-details.
func (mc *MerchantController) CreateProductDetail(c *gin.Context) {
	var req services.NewProductDetail
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := mc.merchant.CreateProductDetail(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"productDetail": out})
}

// UpdateProductDetail handles PUT /merchant/product-details.
func (mc *MerchantController) UpdateProductDetail(c *gin.Context) {
	var req services.ProductDetailUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := mc.merchant.UpdateProductDetail(c.Request.Context(), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product detail updated"})
}

// Attributes handles GET /merchant/attributes.
func (mc *MerchantController) Attributes(c *gin.Context) {
	out, err := mc.merchant.Attributes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// Measures handles GET /merchant/measures.
func (mc *MerchantController) Measures(c *gin.Context) {
	out, err := mc.merchant.Measures(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

// InventoryByDetail handles GET /merchant/inventory/:detailId.
func (mc *MerchantController) InventoryByDetail(c *gin.Context) {
	records, err := mc.merchant.InventoryByDetail(c.Request.Context(), models.ID(c.Param("detailId")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

// UpdateStock handles PUT /merchant/inventory/:detailId/stock with
// {"quantity": n}.
func (mc *MerchantController) UpdateStock(c *gin.Context) {
	var req struct {
		Quantity *int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := mc.merchant.UpdateStock(c.Request.Context(), models.ID(c.Param("detailId")), *req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
}

// StoreInventory handles GET /merchant/stores/:storeId/inventory.
func (mc *MerchantController) StoreInventory(c *gin.Context) {
	page, err := mc.merchant.InventoryByStore(c.Request.Context(), c.Param("storeId"), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// LowStock handles GET /merchant/stores/:storeId/low-stock.
func (mc *MerchantController) LowStock(c *gin.Context) {
	records, err := mc.merchant.LowStock(c.Request.Context(), c.Param("storeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": records})
}

// StoreOrders handles GET /merchant/stores/:storeId/orders.
func (mc *MerchantController) StoreOrders(c *gin.Context) {
	page, err := mc.merchant.StoreOrders(c.Request.Context(), c.Param("storeId"), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateOrderStatus handles PUT /merchant/orders/:id/status.
func (mc *MerchantController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := mc.merchant.UpdateOrderStatus(c.Request.Context(), models.ID(c.Param("id")), req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
}
