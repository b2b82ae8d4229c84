package routes

import (
	"time"

	"catalog/models"
	"catalog/repository"
)

type categoryResource struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	ProductsCount *int64    `json:"products_count,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type productResource struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Price       string            `json:"price"`
	Description *string           `json:"description"`
	CategoryID  uint              `json:"category_id"`
	Stock       int               `json:"stock"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Category    *categoryResource `json:"category,omitempty"`
}

type productListResponse struct {
	Products   []productResource     `json:"products"`
	Pagination repository.Pagination `json:"pagination"`
}

type categoryListResponse struct {
	Categories []categoryResource    `json:"categories"`
	Pagination repository.Pagination `json:"pagination"`
}

type productResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Product productResource `json:"product"`
}

type categoryResponse struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Category categoryResource `json:"category"`
}

// newCategoryResource includes products_count only when the query loaded it.
func newCategoryResource(c models.Category, withCount bool) categoryResource {
	r := categoryResource{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if withCount {
		count := c.ProductsCount
		r.ProductsCount = &count
	}
	return r
}

func newProductResource(p models.Product) productResource {
	r := productResource{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		CategoryID:  p.CategoryID,
		Stock:       p.Stock,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category.ID != 0 {
		category := newCategoryResource(p.Category, false)
		r.Category = &category
	}
	return r
}

func newProductResources(products []models.Product) []productResource {
	out := make([]productResource, 0, len(products))
	for _, p := range products {
		out = append(out, newProductResource(p))
	}
	return out
}

func newCategoryResources(categories []models.Category) []categoryResource {
	out := make([]categoryResource, 0, len(categories))
	for _, c := range categories {
		out = append(out, newCategoryResource(c, true))
	}
	return out
}
