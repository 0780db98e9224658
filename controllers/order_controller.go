package controllers

import (
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/services"
	"github.com/gin-gonic/gin"
)

// OrderController serves the signed-in customer's orders.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// List handles GET /orders.
func (oc *OrderController) List(c *gin.Context) {
	page, err := oc.orders.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /orders/:id.
func (oc *OrderController) Get(c *gin.Context) {
	order, err := oc.orders.Get(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order, "cancellable": order.Cancellable()})
}

// Cancel handles POST /orders/:id/cancel.
func (oc *OrderController) Cancel(c *gin.Context) {
	if err := oc.orders.Cancel(c.Request.Context(), models.ID(c.Param("id"))); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

// Track handles GET /orders/:id/tracking.
func (oc *OrderController) Track(c *gin.Context) {
	tracking, err := oc.orders.Track(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tracking)
}

// TrackAll handles GET /orders/tracking.
func (oc *OrderController) TrackAll(c *gin.Context) {
	all, err := oc.orders.TrackAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": all})
}
