package views

import (
	"bytes"
	"strings"
	"testing"

	"catalog/models"
	"catalog/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPageListsCategories(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Page(&buf, PageData{
		AppName:    "Product Management System",
		Categories: []models.Category{{ID: 4, Name: "Books & Co"}},
	}))

	html := buf.String()
	assert.Contains(t, html, "<title>Product Management System</title>")
	assert.Contains(t, html, `<option value="4">Books &amp; Co</option>`)
	assert.Contains(t, html, `id="product-form-template"`)
	assert.Contains(t, html, `id="toast-container"`)
}

func TestProductsFragment(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	page := &repository.ProductPage{
		Products: []models.Product{{
			ID:          7,
			Name:        "<b>Lamp</b>",
			Price:       decimal.RequireFromString("99.99"),
			Description: strPtr(strings.Repeat("a", 120)),
			Stock:       3,
			Status:      models.StatusInactive,
			Category:    models.Category{Name: "Home"},
		}},
		Pagination: repository.Pagination{CurrentPage: 1, PerPage: 12, Total: 13, LastPage: 2, HasMore: true, From: 1, To: 12},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Products(&buf, page))
	html := buf.String()

	assert.Contains(t, html, `data-product-id="7"`)
	assert.Contains(t, html, "&lt;b&gt;Lamp&lt;/b&gt;")
	assert.Contains(t, html, "$99.99")
	assert.Contains(t, html, "status-inactive")
	assert.Contains(t, html, strings.Repeat("a", 100)+"...")
	assert.Contains(t, html, "Showing 1 to 12 of 13 results")
	assert.Contains(t, html, `data-page="2">Next</a>`)
	assert.Contains(t, html, "load-more-btn")
}

func TestEmptyFragments(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Products(&buf, &repository.ProductPage{Pagination: repository.Pagination{CurrentPage: 3, LastPage: 1}}))
	assert.Contains(t, buf.String(), "No products found")
	assert.NotContains(t, buf.String(), "pagination")

	buf.Reset()
	require.NoError(t, r.Categories(&buf, &repository.CategoryPage{Pagination: repository.Pagination{CurrentPage: 1, LastPage: 1}}))
	assert.Contains(t, buf.String(), "No categories found")
}

func TestCategoriesFragment(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Categories(&buf, &repository.CategoryPage{
		Categories: []models.Category{{ID: 2, Name: "Tools", ProductsCount: 5}},
		Pagination: repository.Pagination{CurrentPage: 1, PerPage: 12, Total: 1, LastPage: 1, From: 1, To: 1},
	}))
	html := buf.String()
	assert.Contains(t, html, "5 products")
	assert.Contains(t, html, `data-products-count="5"`)
}

func TestPageNumbers(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, pageNumbers(repository.Pagination{CurrentPage: 1, LastPage: 9}))
	assert.Equal(t, []int{3, 4, 5, 6, 7}, pageNumbers(repository.Pagination{CurrentPage: 5, LastPage: 9}))
	assert.Equal(t, []int{7, 8, 9}, pageNumbers(repository.Pagination{CurrentPage: 9, LastPage: 9}))
}
