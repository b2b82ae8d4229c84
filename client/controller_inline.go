package client

import (
	"context"
	"strings"
)

// InlineEditor returns the editor open on a product field, if any.
func (c *Controller) InlineEditor(productID uint, field Field) (InlineEditor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.inline[inlineKey{productID, field}]
	if !ok {
		return InlineEditor{}, false
	}
	return *e, true
}

// BeginInlineEdit turns a displayed field into an input seeded with its
// current text. Prices are stripped of currency formatting.
func (c *Controller) BeginInlineEdit(productID uint, field Field, displayed string) {
	key := inlineKey{productID, field}

	c.mu.Lock()
	if e, ok := c.inline[key]; ok && e.State == InlineSaving {
		c.mu.Unlock()
		return
	}
	e := newInlineEditor(productID, field, displayed)
	c.inline[key] = e
	snapshot := *e
	c.mu.Unlock()

	c.render(func(v View) { v.ShowInlineEditor(snapshot) })
}

func (c *Controller) SetInlineInput(productID uint, field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.inline[inlineKey{productID, field}]; ok && e.State == InlineEditing {
		e.Input = value
	}
}

// CancelInlineEdit restores the original text.
func (c *Controller) CancelInlineEdit(productID uint, field Field) {
	key := inlineKey{productID, field}

	c.mu.Lock()
	e, ok := c.inline[key]
	if !ok || e.State != InlineEditing {
		c.mu.Unlock()
		return
	}
	delete(c.inline, key)
	original := e.Original
	c.mu.Unlock()

	c.render(func(v View) { v.RenderField(productID, field, original) })
}

// BlurInlineEdit saves, as leaving the input does.
func (c *Controller) BlurInlineEdit(ctx context.Context, productID uint, field Field) {
	c.SaveInlineEdit(ctx, productID, field)
}

// SaveInlineEdit sends the edited field as part of a full product update.
// An unchanged value cancels; an invalid one keeps the editor open.
func (c *Controller) SaveInlineEdit(ctx context.Context, productID uint, field Field) {
	key := inlineKey{productID, field}

	c.mu.Lock()
	e, ok := c.inline[key]
	if !ok || e.State != InlineEditing {
		c.mu.Unlock()
		return
	}
	if strings.TrimSpace(e.Input) == e.seed() {
		c.mu.Unlock()
		c.CancelInlineEdit(productID, field)
		return
	}
	value, problem := e.validate()
	if problem != "" {
		c.mu.Unlock()
		c.notifier.Error(problem)
		return
	}
	e.State = InlineSaving
	snapshot := *e
	c.mu.Unlock()

	c.render(func(v View) { v.ShowInlineEditor(snapshot) })

	var result *ProductResult
	product, err := c.api.GetProduct(ctx, productID)
	if err == nil {
		input := product.Input()
		field.apply(&input, value)
		result, err = c.api.UpdateProduct(ctx, productID, input)
	}

	c.mu.Lock()
	if c.inline[key] == e {
		delete(c.inline, key)
	}
	c.mu.Unlock()

	if err != nil {
		c.log.Warnf("Inline %s update of product %d failed: %v", field, productID, err)
		c.render(func(v View) { v.RenderField(productID, field, snapshot.Original) })
		c.notifier.Error(errorMessage(err, "An error occurred"))
		return
	}

	c.replaceProduct(result.Product)
	display := field.display(result.Product)
	c.render(func(v View) { v.RenderField(productID, field, display) })
	c.notifier.Success(field.label() + " updated successfully")
}

// replaceProduct refreshes the cached list entry for a saved product.
func (c *Controller) replaceProduct(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.products == nil {
		return
	}
	for i := range c.products.Products {
		if c.products.Products[i].ID == p.ID {
			products := append([]Product(nil), c.products.Products...)
			products[i] = p
			c.products = &ProductPage{Products: products, Pagination: c.products.Pagination}
			return
		}
	}
}
