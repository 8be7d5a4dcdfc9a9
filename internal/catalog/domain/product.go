package domain

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Product represents a sellable catalog item
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Price       float64        `json:"price" gorm:"not null"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	SKU         string         `json:"sku" gorm:"uniqueIndex"`
	IsActive    bool           `json:"is_active" gorm:"default:true"`
	BrandID     *uint          `json:"brand_id,omitempty" gorm:"index"`
	CategoryID  *uint          `json:"category_id,omitempty" gorm:"index"`
	Brand       *Brand         `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Category    *Category      `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// IsAvailable checks if product is in stock
func (p *Product) IsAvailable() bool {
	return p.Stock > 0 && p.IsActive
}

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSKUExists        = errors.New("sku already exists")
	ErrBrandNotFound    = errors.New("brand not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductFilter narrows a product listing
type ProductFilter struct {
	CategoryID *uint
	BrandID    *uint
	ActiveOnly bool
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter, limit, offset int) ([]Product, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context, filter ProductFilter) (int64, error)
	UpdateStock(ctx context.Context, id uint, stock int) error
}

// EventPublisher broadcasts product mutations. Publishing is best-effort:
// commands log failures but never roll back a committed write over a
// broker outage.
type EventPublisher interface {
	ProductCreated(ctx context.Context, product *Product) error
	ProductUpdated(ctx context.Context, product *Product) error
	ProductDeleted(ctx context.Context, productID uint) error
}
