package validation

import (
	"strconv"

	"catalog/models"

	"github.com/shopspring/decimal"
)

// methodOverride absorbs the "_method" field used by form style clients.
type methodOverride struct {
	Method string `json:"_method,omitempty"`
}

type ProductRequest struct {
	methodOverride `validate:"-"`

	Name        Scalar  `json:"name" validate:"required,max=255"`
	Price       Scalar  `json:"price" validate:"required,numeric,decimal_min=0,decimal_places=2"`
	Description *string `json:"description"`
	CategoryID  Scalar  `json:"category_id" validate:"required,integer,category_exists"`
	Stock       Scalar  `json:"stock" validate:"required,integer,int_min=0"`
	Status      Scalar  `json:"status" validate:"required,oneof=Active Inactive"`
}

var productMessages = map[string]string{
	"name.required":               "Product name is required.",
	"name.max":                    "Product name must not exceed 255 characters.",
	"price.required":              "Price is required.",
	"price.numeric":               "Price must be a valid number.",
	"price.decimal_min":           "Price must be at least 0.",
	"price.decimal_places":        "Price must have at most 2 decimal places.",
	"description.string":          "Description must be a string.",
	"category_id.required":        "Category is required.",
	"category_id.integer":         "Selected category does not exist.",
	"category_id.category_exists": "Selected category does not exist.",
	"stock.required":              "Stock quantity is required.",
	"stock.integer":               "Stock must be a whole number.",
	"stock.int_min":               "Stock must be at least 0.",
	"status.required":             "Status is required.",
	"status.oneof":                "Status must be either Active or Inactive.",
}

func (r *ProductRequest) Messages() map[string]string {
	return productMessages
}

func (r *ProductRequest) Normalize() {
	r.Description = nullableText(r.Description)
}

// Product converts a validated request into a model.
func (r *ProductRequest) Product() models.Product {
	categoryID, _ := strconv.ParseUint(r.CategoryID.String(), 10, 64)
	stock, _ := strconv.Atoi(r.Stock.String())

	return models.Product{
		Name:        r.Name.String(),
		Price:       decimal.RequireFromString(r.Price.String()).Round(2),
		Description: r.Description,
		CategoryID:  uint(categoryID),
		Stock:       stock,
		Status:      r.Status.String(),
	}
}

type CategoryRequest struct {
	methodOverride `validate:"-"`

	Name        Scalar  `json:"name" validate:"required,max=255"`
	Description *string `json:"description"`
}

var categoryMessages = map[string]string{
	"name.required":      "Category name is required.",
	"name.max":           "Category name must not exceed 255 characters.",
	"description.string": "Description must be a string.",
}

func (r *CategoryRequest) Messages() map[string]string {
	return categoryMessages
}

func (r *CategoryRequest) Normalize() {
	r.Description = nullableText(r.Description)
}

func (r *CategoryRequest) Category() models.Category {
	return models.Category{
		Name:        r.Name.String(),
		Description: r.Description,
	}
}
