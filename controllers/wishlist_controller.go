package controllers

import (
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/wishlist"
	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlist *wishlist.WishlistStore
}

func NewWishlistController(w *wishlist.WishlistStore) *WishlistController {
	return &WishlistController{wishlist: w}
}

func (wc *WishlistController) items(c *gin.Context) gin.H {
	items := wc.wishlist.Load(c.Request.Context())
	if items == nil {
		items = []models.WishlistLine{}
	}
	return gin.H{"items": items}
}

// Get handles GET /wishlist.
func (wc *WishlistController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, wc.items(c))
}

// Add handles POST /wishlist.
func (wc *WishlistController) Add(c *gin.Context) {
	var line models.WishlistLine
	if err := c.ShouldBindJSON(&line); err != nil {
		badRequest(c, err)
		return
	}
	if err := wc.wishlist.Add(c.Request.Context(), line); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wc.items(c))
}

// Remove handles DELETE /wishlist/:productId.
func (wc *WishlistController) Remove(c *gin.Context) {
	if err := wc.wishlist.Remove(c.Request.Context(), models.ID(c.Param("productId"))); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wc.items(c))
}

// MoveToCart handles POST /wishlist/:productId/move-to-cart.
func (wc *WishlistController) MoveToCart(c *gin.Context) {
	lines, err := wc.wishlist.MoveToCart(c.Request.Context(), models.ID(c.Param("productId")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCartView(lines))
}
