package controllers

import (
	"net/http"

	"github.com/a7med3yad/Cartify-Frontend/models"
	"github.com/a7med3yad/Cartify-Frontend/services"
	"github.com/gin-gonic/gin"
)

// CatalogController serves the public catalog views.
type CatalogController struct {
	catalog *services.CatalogService
}

func NewCatalogController(catalog *services.CatalogService) *CatalogController {
	return &CatalogController{catalog: catalog}
}

// Overview handles GET /catalog/overview.
func (cc *CatalogController) Overview(c *gin.Context) {
	o, err := cc.catalog.Overview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// Categories handles GET /catalog/categories.
func (cc *CatalogController) Categories(c *gin.Context) {
	page, err := cc.catalog.Categories(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SubCategories handles GET /catalog/subcategories.
func (cc *CatalogController) SubCategories(c *gin.Context) {
	subs, err := cc.catalog.SubCategories(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if subs == nil {
		subs = []models.SubCategory{}
	}
	c.JSON(http.StatusOK, gin.H{"items": subs})
}

// CategoryProducts handles GET /catalog/categories/:id/products. A search
// query narrows the page that came back.
func (cc *CatalogController) CategoryProducts(c *gin.Context) {
	page, err := cc.catalog.CategoryProducts(c.Request.Context(), models.ID(c.Param("id")), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	page.Items = services.FilterProducts(page.Items, c.Query("search"))
	c.JSON(http.StatusOK, page)
}

// SubCategoryProducts handles GET /catalog/subcategories/:id/products.
func (cc *CatalogController) SubCategoryProducts(c *gin.Context) {
	page, err := cc.catalog.SubCategoryProducts(c.Request.Context(), models.ID(c.Param("id")), pageFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	page.Items = services.FilterProducts(page.Items, c.Query("search"))
	c.JSON(http.StatusOK, page)
}

// SearchProducts handles GET /catalog/products.
func (cc *CatalogController) SearchProducts(c *gin.Context) {
	q := services.ProductQuery{
		PageRequest:   pageFromQuery(c),
		Search:        c.Query("search"),
		SubCategoryID: c.Query("subcategoryId"),
	}
	page, err := cc.catalog.SearchProducts(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Product handles GET /catalog/products/:id.
func (cc *CatalogController) Product(c *gin.Context) {
	p, err := cc.catalog.Product(c.Request.Context(), models.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
