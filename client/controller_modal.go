package client

import (
	"context"
	"errors"
	"fmt"
)

// Modal returns the open modal, if any.
func (c *Controller) Modal() (Modal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Modal{}, false
	}
	return c.session.modal.clone(), true
}

func (c *Controller) OpenCreateProduct() {
	s := newModalSession(Modal{
		Kind:   ModalCreateProduct,
		Title:  "Add Product",
		Values: FormValues{"status": "Active"},
	})
	s.on(ActionSubmit, func(ctx context.Context, values FormValues) {
		c.submitProduct(ctx, s, 0, values)
	})
	c.openModal(s)
}

func (c *Controller) OpenEditProduct(ctx context.Context, id uint) {
	product, err := c.api.GetProduct(ctx, id)
	if err != nil {
		c.log.Errorf("Failed to load product %d: %v", id, err)
		c.notifier.Error("Failed to load product data")
		return
	}

	s := newModalSession(Modal{
		Kind:     ModalEditProduct,
		Title:    "Edit Product",
		EntityID: id,
		Values:   product.FormValues(),
	})
	s.on(ActionSubmit, func(ctx context.Context, values FormValues) {
		c.submitProduct(ctx, s, id, values)
	})
	c.openModal(s)
}

func (c *Controller) OpenCreateCategory() {
	s := newModalSession(Modal{
		Kind:  ModalCreateCategory,
		Title: "Add Category",
	})
	s.on(ActionSubmit, func(ctx context.Context, values FormValues) {
		c.submitCategory(ctx, s, 0, values)
	})
	c.openModal(s)
}

func (c *Controller) OpenEditCategory(ctx context.Context, id uint) {
	category, err := c.api.GetCategory(ctx, id)
	if err != nil {
		c.log.Errorf("Failed to load category %d: %v", id, err)
		c.notifier.Error("Failed to load category data")
		return
	}

	s := newModalSession(Modal{
		Kind:     ModalEditCategory,
		Title:    "Edit Category",
		EntityID: id,
		Values:   category.FormValues(),
	})
	s.on(ActionSubmit, func(ctx context.Context, values FormValues) {
		c.submitCategory(ctx, s, id, values)
	})
	c.openModal(s)
}

func (c *Controller) OpenDeleteProduct(id uint, name string) {
	c.openDelete(DeleteTarget{Type: TargetProduct, ID: id, Name: name}, "Delete Product")
}

// OpenDeleteCategory refuses to open when the category still has products.
func (c *Controller) OpenDeleteCategory(id uint, name string, productsCount int64) {
	if productsCount > 0 {
		c.notifier.Error("Cannot delete category with existing products")
		return
	}
	c.openDelete(DeleteTarget{Type: TargetCategory, ID: id, Name: name}, "Delete Category")
}

func (c *Controller) openDelete(target DeleteTarget, title string) {
	s := newModalSession(Modal{
		Kind:     ModalDeleteConfirm,
		Title:    title,
		EntityID: target.ID,
		Target:   &target,
	})
	s.on(ActionConfirm, func(ctx context.Context, _ FormValues) {
		c.confirmDelete(ctx, s, target)
	})
	c.openModal(s)
}

// Submit sends the open form. Validation failures keep the modal open with
// the submitted values and the server's field errors.
func (c *Controller) Submit(ctx context.Context, values FormValues) error {
	return c.trigger(ctx, ActionSubmit, values)
}

func (c *Controller) Confirm(ctx context.Context) error {
	return c.trigger(ctx, ActionConfirm, nil)
}

// CloseModal dismisses the open modal without sending anything.
func (c *Controller) CloseModal() {
	c.mu.Lock()
	s := c.session
	c.mu.Unlock()
	if s != nil {
		c.closeModal(s)
	}
}

func (c *Controller) trigger(ctx context.Context, action ModalAction, values FormValues) error {
	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return ErrNoModal
	}
	h, ok := s.handler(action)
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%s: %w", action, ErrNoHandler)
	}

	h(ctx, values.clone())
	return nil
}

func (c *Controller) openModal(s *modalSession) {
	c.mu.Lock()
	if c.session != nil {
		c.session.teardown()
	}
	c.session = s
	m := s.modal.clone()
	c.mu.Unlock()

	c.render(func(v View) { v.ShowModal(m) })
}

// closeModal hides s if it is still the open modal.
func (c *Controller) closeModal(s *modalSession) bool {
	c.mu.Lock()
	if c.session != s {
		c.mu.Unlock()
		return false
	}
	s.teardown()
	c.session = nil
	c.mu.Unlock()

	c.render(func(v View) { v.HideModal() })
	return true
}

func (c *Controller) failModal(s *modalSession, values FormValues, err error) {
	var fields map[string][]string
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		fields = apiErr.Fields
	}

	c.mu.Lock()
	current := c.session == s
	if current {
		s.modal.Values = values.clone()
		s.modal.FieldErrors = fields
	}
	c.mu.Unlock()

	if current && len(fields) > 0 {
		c.render(func(v View) { v.ShowFieldErrors(fields) })
	}
	c.notifier.Error(errorMessage(err, "An error occurred"))
}

func (c *Controller) submitProduct(ctx context.Context, s *modalSession, id uint, values FormValues) {
	input := values.ProductInput()

	var (
		result   *ProductResult
		err      error
		fallback = "Product created successfully"
	)
	if id == 0 {
		result, err = c.api.CreateProduct(ctx, input)
	} else {
		fallback = "Product updated successfully"
		result, err = c.api.UpdateProduct(ctx, id, input)
	}
	if err != nil {
		c.log.Warnf("Product save failed: %v", err)
		c.failModal(s, values, err)
		return
	}

	c.closeModal(s)
	c.notifier.Success(messageOr(result.Message, fallback))
	c.LoadProducts(ctx)
}

func (c *Controller) submitCategory(ctx context.Context, s *modalSession, id uint, values FormValues) {
	input := values.CategoryInput()

	var (
		result   *CategoryResult
		err      error
		fallback = "Category created successfully"
	)
	if id == 0 {
		result, err = c.api.CreateCategory(ctx, input)
	} else {
		fallback = "Category updated successfully"
		result, err = c.api.UpdateCategory(ctx, id, input)
	}
	if err != nil {
		c.log.Warnf("Category save failed: %v", err)
		c.failModal(s, values, err)
		return
	}

	c.closeModal(s)
	c.notifier.Success(messageOr(result.Message, fallback))
	// Product cards show category names and the filter lists categories.
	c.LoadCategories(ctx)
	c.LoadProducts(ctx)
}

// confirmDelete keeps the modal open when the server refuses.
func (c *Controller) confirmDelete(ctx context.Context, s *modalSession, target DeleteTarget) {
	var (
		message string
		err     error
	)
	switch target.Type {
	case TargetCategory:
		message, err = c.api.DeleteCategory(ctx, target.ID)
	default:
		message, err = c.api.DeleteProduct(ctx, target.ID)
	}
	if err != nil {
		c.log.Warnf("Delete %s %d failed: %v", target.Type, target.ID, err)
		c.notifier.Error(errorMessage(err, "An error occurred"))
		return
	}

	c.closeModal(s)
	if target.Type == TargetCategory {
		c.notifier.Success(messageOr(message, "Category deleted successfully"))
		c.LoadCategories(ctx)
		return
	}
	c.notifier.Success(messageOr(message, "Product deleted successfully"))
	c.LoadProducts(ctx)
}
