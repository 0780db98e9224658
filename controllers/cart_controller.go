package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/cart"
	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CartController serves the local cart and checkout.
type CartController struct {
	cart   *cart.CartStore
	orders *services.OrderService
}

func NewCartController(cart *cart.CartStore, orders *services.OrderService) *CartController {
	return &CartController{cart: cart, orders: orders}
}

type cartView struct {
	Lines []models.CartLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
	Count int               `json:"count"`
}

func newCartView(lines []models.CartLine) cartView {
	if lines == nil {
		lines = []models.CartLine{}
	}
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return cartView{Lines: lines, Total: cart.Total(lines), Count: count}
}

func (cc *CartController) current(ctx context.Context) cartView {
	return newCartView(cc.cart.Lines(ctx))
}

// Get handles GET /cart.
func (cc *CartController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, cc.current(c.Request.Context()))
}

// AddLine handles POST /cart/lines.
func (cc *CartController) AddLine(c *gin.Context) {
	var req struct {
		cart.ProductRef
		ProductDetailID models.ID `json:"productDetailId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lines, err := cc.cart.Add(c.Request.Context(), req.ProductRef, req.ProductDetailID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newCartView(lines))
}

// AdjustLine handles PATCH /cart/lines/:detailId with {"delta": n}.
func (cc *CartController) AdjustLine(c *gin.Context) {
	var req struct {
		Delta int `json:"delta"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	lines, err := cc.cart.AdjustQuantity(c.Request.Context(), models.ID(c.Param("detailId")), req.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(lines))
}

// RemoveLine handles DELETE /cart/lines/:detailId.
func (cc *CartController) RemoveLine(c *gin.Context) {
	lines, err := cc.cart.Remove(c.Request.Context(), models.ID(c.Param("detailId")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(lines))
}

// Clear handles DELETE /cart.
func (cc *CartController) Clear(c *gin.Context) {
	if err := cc.cart.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(nil))
}

// Checkout handles POST /checkout. An empty body checks out with defaults.
func (cc *CartController) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, err)
		return
	}
	order, err := cc.orders.Checkout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"order": order, "cart": cc.current(c.Request.Context())})
}
