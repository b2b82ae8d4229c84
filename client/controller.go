package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const SearchDelay = 300 * time.Millisecond

type ControllerConfig struct {
	API     API
	View    View
	Storage Storage
	Clock   Clock
	Logger  *logrus.Logger
}

// Controller drives the product and category screens: it fetches lists for
// the current State, runs the modal and inline edit state machines and
// reports outcomes as notifications. Errors never escape an action.
type Controller struct {
	api      API
	view     View
	store    *Store
	clock    Clock
	notifier *Notifier
	search   *Debouncer
	log      *logrus.Logger

	viewMu sync.Mutex

	mu         sync.Mutex
	session    *modalSession
	inline     map[inlineKey]*InlineEditor
	products   *ProductPage
	categories *CategoryPage
}

func NewController(cfg ControllerConfig) *Controller {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Storage == nil {
		cfg.Storage = NewMemoryStorage()
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	c := &Controller{
		api:    cfg.API,
		view:   cfg.View,
		store:  NewStore(cfg.Storage, cfg.Logger),
		clock:  cfg.Clock,
		search: NewDebouncer(cfg.Clock, SearchDelay),
		log:    cfg.Logger,
		inline: map[inlineKey]*InlineEditor{},
	}
	c.notifier = NewNotifier(cfg.Clock, NotificationTTL,
		func(n Notification) {
			c.render(func(v View) { v.ShowNotification(n) })
		},
		func(id string) {
			c.render(func(v View) { v.DismissNotification(id) })
		},
	)
	return c
}

func (c *Controller) render(fn func(v View)) {
	c.viewMu.Lock()
	defer c.viewMu.Unlock()
	fn(c.view)
}

func (c *Controller) State() State {
	return c.store.State()
}

func (c *Controller) Notifications() []Notification {
	return c.notifier.Active()
}

func (c *Controller) DismissNotification(id string) {
	c.notifier.Dismiss(id)
}

// Products returns the product list currently shown.
func (c *Controller) Products() *ProductPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products
}

func (c *Controller) Categories() *CategoryPage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.categories
}

// Start shows the persisted tab and loads its list.
func (c *Controller) Start(ctx context.Context) {
	state := c.store.State()
	if state.PaginationType == PaginationLoadMore && state.CurrentPage > 1 {
		state = c.store.Update(func(s *State) { s.SetPage(1) })
	}
	c.render(func(v View) { v.ShowTab(state.ActiveTab) })
	c.loadTab(ctx, state.ActiveTab)
}

// Close stops pending timers.
func (c *Controller) Close() {
	c.search.Cancel()
}

func (c *Controller) SwitchTab(ctx context.Context, tab Tab) {
	state := c.store.Update(func(s *State) { s.SetActiveTab(tab) })
	c.render(func(v View) { v.ShowTab(state.ActiveTab) })
	c.loadTab(ctx, state.ActiveTab)
}

func (c *Controller) loadTab(ctx context.Context, tab Tab) {
	if tab == TabCategories {
		c.LoadCategories(ctx)
		return
	}
	c.LoadProducts(ctx)
}

// LoadProducts fetches the current page and replaces the shown list.
func (c *Controller) LoadProducts(ctx context.Context) {
	c.loadProducts(ctx, false)
}

func (c *Controller) loadProducts(ctx context.Context, appendItems bool) {
	state := c.store.State()

	c.render(func(v View) { v.SetLoading(TabProducts, true) })
	page, err := c.api.ListProducts(ctx, state.ListParams())
	c.render(func(v View) { v.SetLoading(TabProducts, false) })
	if err != nil {
		c.log.Errorf("Failed to load products: %v", err)
		c.notifier.Error("Failed to load products")
		return
	}

	c.mu.Lock()
	if appendItems && c.products != nil {
		merged := &ProductPage{
			Products:   append(append([]Product(nil), c.products.Products...), page.Products...),
			Pagination: page.Pagination,
		}
		page = merged
	}
	c.products = page
	c.mu.Unlock()

	c.render(func(v View) { v.RenderProducts(page, appendItems) })
}

// GoToPage shows one page of products in numbered mode.
func (c *Controller) GoToPage(ctx context.Context, page int) {
	c.store.Update(func(s *State) { s.SetPage(page) })
	c.loadProducts(ctx, false)
}

// LoadMore appends the next page while the server reports more.
func (c *Controller) LoadMore(ctx context.Context) {
	c.mu.Lock()
	current := c.products
	c.mu.Unlock()
	if current == nil || !current.Pagination.HasMore {
		return
	}

	c.store.Update(func(s *State) { s.SetPage(current.Pagination.CurrentPage + 1) })
	c.loadProducts(ctx, true)
}

func (c *Controller) SetCategoryFilter(ctx context.Context, categoryID string) {
	c.store.Update(func(s *State) { s.SetFilter(FilterCategory, strings.TrimSpace(categoryID)) })
	c.LoadProducts(ctx)
}

func (c *Controller) SetSortBy(ctx context.Context, column string) {
	c.store.Update(func(s *State) { s.SetFilter(FilterSortBy, column) })
	c.LoadProducts(ctx)
}

func (c *Controller) ToggleSortOrder(ctx context.Context) {
	c.store.Update(func(s *State) { s.ToggleSortOrder() })
	c.LoadProducts(ctx)
}

func (c *Controller) SetPaginationType(ctx context.Context, t PaginationType) {
	c.store.Update(func(s *State) { s.SetPaginationType(t) })
	c.LoadProducts(ctx)
}

func (c *Controller) TogglePaginationType(ctx context.Context) {
	next := PaginationLoadMore
	if c.store.State().PaginationType == PaginationLoadMore {
		next = PaginationNumbered
	}
	c.SetPaginationType(ctx, next)
}

// TypeSearch records a keystroke in the search box. The filter is applied
// and products fetched once typing pauses for SearchDelay.
func (c *Controller) TypeSearch(text string) {
	c.search.Call(func() {
		c.store.Update(func(s *State) { s.SetFilter(FilterSearch, strings.TrimSpace(text)) })
		c.LoadProducts(context.Background())
	})
}

func (c *Controller) LoadCategories(ctx context.Context) {
	state := c.store.State()

	c.render(func(v View) { v.SetLoading(TabCategories, true) })
	page, err := c.api.ListCategories(ctx, state.CategoriesPage)
	c.render(func(v View) { v.SetLoading(TabCategories, false) })
	if err != nil {
		c.log.Errorf("Failed to load categories: %v", err)
		c.notifier.Error("Failed to load categories")
		return
	}

	c.mu.Lock()
	c.categories = page
	c.mu.Unlock()

	c.render(func(v View) { v.RenderCategories(page) })
}

func (c *Controller) GoToCategoriesPage(ctx context.Context, page int) {
	c.store.Update(func(s *State) { s.SetCategoriesPage(page) })
	c.LoadCategories(ctx)
}

// errorMessage prefers the server's message over fallback.
func errorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}
