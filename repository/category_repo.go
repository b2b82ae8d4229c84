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

const productsCountColumn = "(SELECT COUNT(*) FROM products WHERE products.category_id = categories.id) AS products_count"

type CategoryPage struct {
	Categories []models.Category
	Pagination Pagination
}

type CategoryRepository struct {
	db  *gorm.DB
	log *logrus.Logger
}

func NewCategoryRepository(db *gorm.DB, logger *logrus.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:  db,
		log: logger,
	}
}

// List returns one page of categories ordered by name, with products_count.
func (r *CategoryRepository) List(ctx context.Context, page int) (*CategoryPage, error) {
	page = NormalizePage(page)

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Count(&total).Error; err != nil {
		r.log.Errorf("Failed to count categories: %v", err)
		return nil, fmt.Errorf("could not count categories: %w", err)
	}

	categories := make([]models.Category, 0, PerPage)
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.*, " + productsCountColumn).
		Order("name ASC").Order("id ASC").
		Offset(offset(page)).
		Limit(PerPage).
		Find(&categories).Error
	if err != nil {
		r.log.Errorf("Failed to list categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}

	return &CategoryPage{
		Categories: categories,
		Pagination: newPagination(page, total, len(categories)),
	}, nil
}

// All returns every category ordered by name, for filters and forms.
func (r *CategoryRepository) All(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&categories).Error; err != nil {
		r.log.Errorf("Failed to list all categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) Find(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select("categories.*, "+productsCountColumn).
		Where("categories.id = ?", id).
		Take(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		r.log.Errorf("Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	return &category, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("could not check category: %w", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error; err != nil {
		r.log.Errorf("Failed to create category '%s': %v", category.Name, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	r.log.Infof("Category created successfully with ID: %d", category.ID)
	return r.Find(ctx, category.ID)
}

func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) (*models.Category, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Category{ID: category.ID}).
		Select("name", "description").
		Updates(category)
	if result.Error != nil {
		r.log.Errorf("Failed to update category ID %d: %v", category.ID, result.Error)
		return nil, fmt.Errorf("could not update category: %w", result.Error)
	}
	// RowsAffected is not used for existence: some drivers report 0 for an
	// update that changes nothing.
	updated, err := r.Find(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	r.log.Infof("Category updated successfully with ID: %d", category.ID)
	return updated, nil
}

// Delete removes the category unless a product still references it.
func (r *CategoryRepository) Delete(ctx context.Context, id uint) error {
	category, err := r.Find(ctx, id)
	if err != nil {
		return err
	}
	if category.ProductsCount > 0 {
		r.log.Warnf("Refusing to delete category ID %d with %d products", id, category.ProductsCount)
		return ErrCategoryHasProducts
	}

	if err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		r.log.Errorf("Failed to delete category ID %d: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}
	r.log.Infof("Category deleted successfully with ID: %d", id)
	return nil
}
