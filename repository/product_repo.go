package repository

import (
	"context"
	"errors"
	"fmt"

	"catalog/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductPage struct {
	Products   []models.Product
	Pagination Pagination
}

type ProductRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewProductRepository(db *gorm.DB, logger *logrus.Logger) *ProductRepository {
	return &ProductRepository{
		db:  db,
		log: logger,
	}
}

// List returns one page of products matching q, each with its category loaded.
// A page past the end yields no products and no error.
func (r *ProductRepository) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	q = q.Normalize()
	base := func() *gorm.DB {
		return q.filter(r.db.WithContext(ctx).Model(&models.Product{}))
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		r.log.Errorf("Failed to count products: %v", err)
		return nil, fmt.Errorf("could not count products: %w", err)
	}

	products := make([]models.Product, 0, PerPage)
	err := q.order(base()).
		Preload("Category").
		Offset(offset(q.Page)).
		Limit(PerPage).
		Find(&products).Error
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"category": q.CategoryID,
		"search":   q.Search,
		"sort_by":  q.SortBy,
		"page":     q.Page,
		"total":    total,
	}).Debug("Listed products")

	return &ProductPage{
		Products:   products,
		Pagination: newPagination(q.Page, total, len(products)),
	}, nil
}

func (r *ProductRepository) Find(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	return &product, nil
}

// Create stores product and reloads it with its category.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %d", product.ID)
	return r.Find(ctx, product.ID)
}

// Update replaces every attribute of the stored product with product's.
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) (*models.Product, error) {
	var existing models.Product
	if err := r.db.WithContext(ctx).Select("id", "created_at").First(&existing, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	product.CreatedAt = existing.CreatedAt
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error; err != nil {
		r.log.Errorf("Failed to update product ID %d: %v", product.ID, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}
	r.log.Infof("Product updated successfully with ID: %d", product.ID)
	return r.Find(ctx, product.ID)
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if result.Error != nil {
		r.log.Errorf("Failed to delete product ID %d: %v", id, result.Error)
		return fmt.Errorf("could not delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
		return ErrProductNotFound
	}
	r.log.Infof("Product deleted successfully with ID: %d", id)
	return nil
}
