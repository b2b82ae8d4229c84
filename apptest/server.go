// Package apptest starts the full HTTP application over an in-memory
// database for client side tests.
package apptest

import (
	"io"
	"net/http/httptest"
	"testing"

	"catalog/db"
	"catalog/models"
	"catalog/repository"
	"catalog/routes"
	"catalog/views"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type Server struct {
	URL    string
	DB     *gorm.DB
	Logger *logrus.Logger
}

// NewServer serves a fresh application until the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	conn, err := db.OpenInMemory(logger)
	require.NoError(t, err)
	renderer, err := views.New()
	require.NoError(t, err)

	app := routes.NewApp(routes.NewHandler(routes.HandlerConfig{
		AppName:    "Product Management System",
		Products:   repository.NewProductRepository(conn, logger),
		Categories: repository.NewCategoryRepository(conn, logger),
		Views:      renderer,
		Logger:     logger,
	}))
	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(func() {
		srv.Close()
		_ = db.Close(conn)
	})

	return &Server{URL: srv.URL, DB: conn, Logger: logger}
}

func (s *Server) Category(t testing.TB, name string) models.Category {
	t.Helper()
	category := models.Category{Name: name}
	require.NoError(t, s.DB.Create(&category).Error)
	return category
}

func (s *Server) Product(t testing.TB, name, price string, categoryID uint, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
		Stock:      stock,
		Status:     models.StatusActive,
	}
	require.NoError(t, s.DB.Omit("Category").Create(&product).Error)
	return product
}
