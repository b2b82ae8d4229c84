package routes

import (
	"errors"
	"io"
	"strconv"

	"catalog/repository"
	"catalog/validation"

	"github.com/gofiber/fiber/v2"
)

// listCategories - GET /categories/list
func (h *Handler) listCategories(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page"))

	result, err := h.categories.List(c.UserContext(), page)
	if err != nil {
		return err
	}

	setPaginationHeaders(c, result.Pagination)
	if wantsJSON(c) {
		return c.JSON(categoryListResponse{
			Categories: newCategoryResources(result.Categories),
			Pagination: result.Pagination,
		})
	}
	return renderHTML(c, func(w io.Writer) error {
		return h.views.Categories(w, result)
	})
}

// createCategory - POST /categories
func (h *Handler) createCategory(c *fiber.Ctx) error {
	var req validation.CategoryRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	category := req.Category()
	created, err := h.categories.Create(c.UserContext(), &category)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(categoryResponse{
		Success:  true,
		Message:  "Category created successfully.",
		Category: newCategoryResource(*created, true),
	})
}

// editCategory - GET /categories/:id/edit
func (h *Handler) editCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return notFound(c, "Category not found.")
	}

	category, err := h.categories.Find(c.UserContext(), id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return notFound(c, "Category not found.")
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"category": newCategoryResource(*category, true),
	})
}

// updateCategory - PUT /categories/:id
func (h *Handler) updateCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return notFound(c, "Category not found.")
	}

	// Check if category exists
	if _, err := h.categories.Find(c.UserContext(), id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return notFound(c, "Category not found.")
		}
		return err
	}

	var req validation.CategoryRequest
	if ok, err := h.bind(c, &req); !ok {
		return err
	}

	category := req.Category()
	category.ID = id
	updated, err := h.categories.Update(c.UserContext(), &category)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return notFound(c, "Category not found.")
	}
	if err != nil {
		return err
	}

	return c.JSON(categoryResponse{
		Success:  true,
		Message:  "Category updated successfully.",
		Category: newCategoryResource(*updated, true),
	})
}

// deleteCategory - DELETE /categories/:id
func (h *Handler) deleteCategory(c *fiber.Ctx) error {
	id, ok := idParam(c)
	if !ok {
		return notFound(c, "Category not found.")
	}

	err := h.categories.Delete(c.UserContext(), id)
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		return notFound(c, "Category not found.")
	case errors.Is(err, repository.ErrCategoryHasProducts):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"success": false,
			"message": "Cannot delete category with existing products.",
		})
	case err != nil:
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Category deleted successfully.",
	})
}
