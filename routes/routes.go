package routes

import (
	"context"

	"catalog/models"
	"catalog/repository"
	"catalog/validation"
	"catalog/views"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ProductStore interface {
	List(ctx context.Context, q repository.ProductQuery) (*repository.ProductPage, error)
	Find(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	Update(ctx context.Context, product *models.Product) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
}

type CategoryStore interface {
	List(ctx context.Context, page int) (*repository.CategoryPage, error)
	All(ctx context.Context) ([]models.Category, error)
	Find(ctx context.Context, id uint) (*models.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) (*models.Category, error)
	Delete(ctx context.Context, id uint) error
}

type HandlerConfig struct {
	AppName    string
	Products   ProductStore
	Categories CategoryStore
	Views      *views.Renderer
	// Ping checks the database for the health endpoint.
	Ping   func(ctx context.Context) error
	Logger *logrus.Logger
}

type Handler struct {
	appName    string
	products   ProductStore
	categories CategoryStore
	validator  *validation.Validator
	views      *views.Renderer
	ping       func(ctx context.Context) error
	log        *logrus.Logger
}

func NewHandler(cfg HandlerConfig) *Handler {
	ping := cfg.Ping
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	return &Handler{
		appName:    cfg.AppName,
		products:   cfg.Products,
		categories: cfg.Categories,
		validator:  validation.New(cfg.Categories.Exists, cfg.Logger),
		views:      cfg.Views,
		ping:       ping,
		log:        cfg.Logger,
	}
}

func SetupRoutes(app *fiber.App, h *Handler) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/products")
	})
	app.Get("/health", h.health)

	// Product routes
	products := app.Group("/products")
	products.Get("/", h.productsPage)
	products.Get("/list", h.listProducts)
	products.Post("/", h.createProduct)
	products.Get("/:id/edit", h.editProduct)
	products.Put("/:id", h.updateProduct)
	products.Patch("/:id", h.updateProduct)
	products.Delete("/:id", h.deleteProduct)

	// Category routes
	categories := app.Group("/categories")
	categories.Get("/list", h.listCategories)
	categories.Post("/", h.createCategory)
	categories.Get("/:id/edit", h.editCategory)
	categories.Put("/:id", h.updateCategory)
	categories.Patch("/:id", h.updateCategory)
	categories.Delete("/:id", h.deleteCategory)
}

func (h *Handler) health(c *fiber.Ctx) error {
	if err := h.ping(c.UserContext()); err != nil {
		h.log.Errorf("Health check failed: %v", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"status": "ok",
	})
}
