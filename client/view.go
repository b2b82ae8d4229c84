package client

// View renders controller output. Calls are serialized by the controller.
type View interface {
	ShowTab(tab Tab)
	SetLoading(tab Tab, loading bool)
	// RenderProducts receives the full list shown so far; appended is true
	// when the newest page was added below the previous ones.
	RenderProducts(page *ProductPage, appended bool)
	RenderCategories(page *CategoryPage)

	ShowModal(m Modal)
	ShowFieldErrors(fields map[string][]string)
	HideModal()

	ShowNotification(n Notification)
	DismissNotification(id string)

	ShowInlineEditor(e InlineEditor)
	RenderField(productID uint, field Field, display string)
}
