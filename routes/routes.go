package routes

import (
	"github.com/a7med3yad/Cartify-Frontend/controllers"
	"github.com/gin-gonic/gin"
)

// Handlers groups the controllers the local host serves.
type Handlers struct {
	Session     *controllers.SessionController
	Cart        *controllers.CartController
	Wishlist    *controllers.WishlistController
	Preferences *controllers.PreferencesController
	Catalog     *controllers.CatalogController
	Orders      *controllers.OrderController
	Merchant    *controllers.MerchantController
}

// RegisterRoutes mounts the JSON surface under /api/v1. requireMerchant
// guards the merchant console.
func RegisterRoutes(r *gin.Engine, h Handlers, requireMerchant gin.HandlerFunc) {
	r.GET("/health", controllers.Health)

	api := r.Group("/api/v1")
	{
		session := api.Group("/session")
		session.GET("", h.Session.Get)
		session.POST("/login", h.Session.Login)
		session.POST("/register", h.Session.Register)
		session.POST("/logout", h.Session.Logout)
		session.POST("/merchant-profile", h.Session.CreateMerchantProfile)

		cart := api.Group("/cart")
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/lines", h.Cart.AddLine)
		cart.PATCH("/lines/:detailId", h.Cart.AdjustLine)
		cart.DELETE("/lines/:detailId", h.Cart.RemoveLine)
		api.POST("/checkout", h.Cart.Checkout)

		wishlist := api.Group("/wishlist")
		wishlist.GET("", h.Wishlist.Get)
		wishlist.POST("", h.Wishlist.Add)
		wishlist.DELETE("/:productId", h.Wishlist.Remove)
		wishlist.POST("/:productId/move-to-cart", h.Wishlist.MoveToCart)

		api.GET("/preferences", h.Preferences.Get)
		api.PUT("/preferences", h.Preferences.Update)

		catalog := api.Group("/catalog")
		catalog.GET("/overview", h.Catalog.Overview)
		catalog.GET("/categories", h.Catalog.Categories)
		catalog.GET("/categories/:id/products", h.Catalog.CategoryProducts)
		catalog.GET("/subcategories", h.Catalog.SubCategories)
		catalog.GET("/subcategories/:id/products", h.Catalog.SubCategoryProducts)
		catalog.GET("/products", h.Catalog.SearchProducts)
		catalog.GET("/products/:id", h.Catalog.Product)

		orders := api.Group("/orders")
		orders.GET("", h.Orders.List)
		orders.GET("/tracking", h.Orders.TrackAll)
		orders.GET("/:id", h.Orders.Get)
		orders.POST("/:id/cancel", h.Orders.Cancel)
		orders.GET("/:id/tracking", h.Orders.Track)
	}

	merchant := api.Group("/merchant")
	merchant.Use(requireMerchant)
	{
		merchant.GET("/store", h.Merchant.Store)
		merchant.PUT("/store", h.Merchant.SaveStore)
		merchant.GET("/products", h.Merchant.Products)
		merchant.POST("/products", h.Merchant.CreateProduct)
		merchant.DELETE("/products/:id", h.Merchant.DeleteProduct)
		merchant.POST("/product-details", h.Merchant.CreateProductDetail)
		merchant.PUT("/product-details", h.Merchant.UpdateProductDetail)
		merchant.GET("/attributes", h.Merchant.Attributes)
		merchant.GET("/measures", h.Merchant.Measures)
		merchant.GET("/inventory/:detailId", h.Merchant.InventoryByDetail)
		merchant.PUT("/inventory/:detailId/stock", h.Merchant.UpdateStock)
		merchant.GET("/stores/:storeId/inventory", h.Merchant.StoreInventory)
		merchant.GET("/stores/:storeId/low-stock", h.Merchant.LowStock)
		merchant.GET("/stores/:storeId/orders", h.Merchant.StoreOrders)
		merchant.PUT("/orders/:id/status", h.Merchant.UpdateOrderStatus)
	}
}
