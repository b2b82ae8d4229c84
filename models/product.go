package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Description *string         `gorm:"type:text" json:"description"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"` // Foreign key to Category
	Stock       int             `gorm:"not null" json:"stock"`
	Status      string          `gorm:"type:varchar(16);not null" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Category    Category        `gorm:"foreignKey:CategoryID" json:"category"` // Belongs to one Category
}

// BeforeSave keeps the stored price at exactly two fractional digits.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.Price = p.Price.Round(2)
	return nil
}
