package db

import (
	"context"
	"fmt"

	"catalog/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type SeedOptions struct {
	Categories          int
	ProductsPerCategory int
	// Seed makes the generated data reproducible; zero picks a random seed.
	Seed int64
}

// Seed fills the store with fake categories and products.
func Seed(ctx context.Context, conn *gorm.DB, opts SeedOptions, logger *logrus.Logger) error {
	faker := gofakeit.New(opts.Seed)

	return conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := 0; i < opts.Categories; i++ {
			category := models.Category{
				Name:        fmt.Sprintf("%s %d", faker.ProductCategory(), i+1),
				Description: optionalText(faker, faker.Sentence(8)),
			}
			if err := tx.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category: %w", err)
			}

			products := make([]models.Product, 0, opts.ProductsPerCategory)
			for j := 0; j < opts.ProductsPerCategory; j++ {
				status := models.StatusActive
				if faker.Number(1, 5) == 1 {
					status = models.StatusInactive
				}
				products = append(products, models.Product{
					Name:        faker.ProductName(),
					Price:       decimal.NewFromFloat(faker.Price(1, 999)).Round(2),
					Description: optionalText(faker, faker.ProductDescription()),
					CategoryID:  category.ID,
					Stock:       faker.Number(0, 100),
					Status:      status,
				})
			}
			if len(products) > 0 {
				if err := tx.Omit("Category").Create(&products).Error; err != nil {
					return fmt.Errorf("failed to seed products: %w", err)
				}
			}

			logger.WithFields(logrus.Fields{
				"category": category.Name,
				"products": len(products),
			}).Debug("Seeded category")
		}
		return nil
	})
}

func optionalText(faker *gofakeit.Faker, text string) *string {
	if faker.Bool() {
		return nil
	}
	return &text
}
