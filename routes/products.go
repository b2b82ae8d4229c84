package routes

import (
	"errors"
	"io"

	"catalog/repository"
	"catalog/validation"
	"catalog/views"

	"github.com/gofiber/fiber/v2"
)

// productsPage - GET /products
func (h *Handler) productsPage(c *fiber.Ctx) error {
	categories, err := h.categories.All(c.UserContext())
	if err != nil {
		return err
	}
	return renderHTML(c, func(w io.Writer) error {
		return h.views.Page(w, views.PageData{
			AppName:    h.appName,
			Categories: categories,
		})
	})
}

// listProducts - GET /products/list
func (h *Handler) listProducts(c *fiber.Ctx) error {
	q := repository.ParseProductQuery(func(key string) string {
		return c.Query(key)
	})

	page, err := h.products.List(c.UserContext(), q)
	if err != nil {
		return err
	}

	setPaginationHeaders(c, page.Pagination)
	if wantsJSON(c) {
		return c.JSON(productListResponse{
			Products:   newProductResources(page.Products),
			Pagination: page.Pagination,
		})
	}
	return renderHTML(c, func(w io.Writer) error {
		return h.views.Products(w, page)
	})
}

// createProduct - POST /products
func (h *Handler) createProduct(c *fiber.Ctx) error {
	var req validation.ProductRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	product := req.Product()
	created, err := h.products.Create(c.UserContext(), &product)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(productResponse{
		Success: true,
		Message: "Product created successfully.",
		Product: newProductResource(*created),
	})
}

// editProduct - GET /products/:id/edit
func (h *Handler) editProduct(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return notFound(c, "Product not found.")
	}

	product, err := h.products.Find(c.UserContext(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return notFound(c, "Product not found.")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"product": newProductResource(*product),
	})
}

// updateProduct - PUT /products/:id
func (h *Handler) updateProduct(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return notFound(c, "Product not found.")
	}

	// Check if product exists
	if _, err := h.products.Find(c.UserContext(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return notFound(c, "Product not found.")
		}
		return err
	}

	var req validation.ProductRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	product := req.Product()
	product.ID = id
	updated, err := h.products.Update(c.UserContext(), &product)
	if errors.Is(err, repository.ErrProductNotFound) {
		return notFound(c, "Product not found.")
	}
	if err != nil {
		return err
	}

	return c.JSON(productResponse{
		Success: true,
		Message: "Product updated successfully.",
		Product: newProductResource(*updated),
	})
}

// deleteProduct - DELETE /products/:id
func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return notFound(c, "Product not found.")
	}

	err := h.products.Delete(c.UserContext(), id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return notFound(c, "Product not found.")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully.",
	})
}
