package services

import (
	"context"
	"strings"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/clients"
	"github.com/a7med3yad/Cartify-Frontend/models"
)

// ProductQuery filters a product listing.
type ProductQuery struct {
	PageRequest
	Search        string `form:"search" json:"search"`
	SubCategoryID string `form:"subcategoryId" json:"subcategoryId"`
}

func (q ProductQuery) query() clients.Query {
	out := q.PageRequest.query()
	out["search"] = strings.TrimSpace(q.Search)
	out["subcategoryId"] = q.SubCategoryID
	return out
}

// CatalogService reads the public catalog. Every call is anonymous.
type CatalogService struct {
	gateway Gateway
}

func NewCatalogService(gateway Gateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

func (s *CatalogService) get(ctx context.Context, path string, q clients.Query, out any) error {
	return s.gateway.DoJSON(ctx, path, clients.RequestOptions{Query: q, Anonymous: true}, out)
}

// Categories lists top-level categories, 50 per page unless asked otherwise.
func (s *CatalogService) Categories(ctx context.Context, page PageRequest) (models.Page[models.Category], error) {
	var out models.Page[models.Category]
	err := s.get(ctx, pathCategories, page.withDefaults(1, 50).query(), &out)
	return out, err
}

// SubCategories lists every subcategory, 100 per page unless asked otherwise.
func (s *CatalogService) SubCategories(ctx context.Context, page PageRequest) ([]models.SubCategory, error) {
	var out models.Page[models.SubCategory]
	if err := s.get(ctx, pathSubCategories, page.withDefaults(1, 100).query(), &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

func (s *CatalogService) CategoryProducts(ctx context.Context, categoryID models.ID, page PageRequest) (models.Page[models.Product], error) {
	var out models.Page[models.Product]
	if categoryID == "" {
		return out, apperrors.InvalidInput("category id is required")
	}
	err := s.get(ctx, withID(pathCategoryProducts, categoryID.String()), page.withDefaults(1, 12).query(), &out)
	return out, err
}

func (s *CatalogService) SubCategoryProducts(ctx context.Context, subCategoryID models.ID, page PageRequest) (models.Page[models.Product], error) {
	var out models.Page[models.Product]
	if subCategoryID == "" {
		return out, apperrors.InvalidInput("subcategory id is required")
	}
	err := s.get(ctx, withID(pathSubCategoryProducts, subCategoryID.String()), page.withDefaults(1, 12).query(), &out)
	return out, err
}

func (s *CatalogService) SearchProducts(ctx context.Context, q ProductQuery) (models.Page[models.Product], error) {
	var out models.Page[models.Product]
	q.PageRequest = q.PageRequest.withDefaults(1, 12)
	err := s.get(ctx, pathProductSearch, q.query(), &out)
	return out, err
}

func (s *CatalogService) Product(ctx context.Context, productID models.ID) (*models.Product, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	var out models.Product
	if err := s.get(ctx, withID(pathProduct, productID.String()), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Overview is what the storefront landing view needs in one call.
type Overview struct {
	Categories    []models.Category    `json:"categories"`
	SubCategories []models.SubCategory `json:"subCategories"`
}

// Overview loads categories, then subcategories. The first failure fails
// the whole call and the second request is not made.
func (s *CatalogService) Overview(ctx context.Context) (*Overview, error) {
	categories, err := s.Categories(ctx, PageRequest{})
	if err != nil {
		return nil, err
	}
	subCategories, err := s.SubCategories(ctx, PageRequest{})
	if err != nil {
		return nil, err
	}
	return &Overview{Categories: categories.Items, SubCategories: subCategories}, nil
}

// FilterProducts keeps products whose name or description contains search,
// case-insensitively. An empty search keeps everything.
func FilterProducts(products []models.Product, search string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return products
	}
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), search) || strings.Contains(strings.ToLower(p.Description), search) {
			out = append(out, p)
		}
	}
	return out
}
