package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Dilshan221/bakery-management/domain"
)

// ProductRepositoryImpl implements domain.ProductRepository using GORM
type ProductRepositoryImpl struct {
	db *gorm.DB
}

// DBProduct represents the database model for Product (with GORM tags)
type DBProduct struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	Description string  `gorm:"size:1024;not null"`
	Price       float64 `gorm:"not null;check:price >= 0"`
	Image       string  `gorm:"size:512;not null"`
	Quantity    int     `gorm:"not null;check:quantity >= 0"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBProduct) TableName() string {
	return "products"
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domain.ProductRepository {
	return &ProductRepositoryImpl{db: db}
}

// Create implements domain.ProductRepository
func (r *ProductRepositoryImpl) Create(ctx context.Context, product *domain.Product) error {
	dbProduct := r.domainToDB(product)
	if err := r.db.WithContext(ctx).Create(dbProduct).Error; err != nil {
		return err
	}
	product.ID = dbProduct.ID
	product.CreatedAt = dbProduct.CreatedAt
	product.UpdatedAt = dbProduct.UpdatedAt
	return nil
}

// List implements domain.ProductRepository, newest first
func (r *ProductRepositoryImpl) List(ctx context.Context) ([]*domain.Product, error) {
	var dbProducts []DBProduct
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbProducts).Error; err != nil {
		return nil, err
	}

	products := make([]*domain.Product, 0, len(dbProducts))
	for i := range dbProducts {
		products = append(products, r.dbToDomain(&dbProducts[i]))
	}
	return products, nil
}

// FindByID implements domain.ProductRepository
func (r *ProductRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var dbProduct DBProduct
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbProduct).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbProduct), nil
}

// Update implements domain.ProductRepository
func (r *ProductRepositoryImpl) Update(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).
		Model(&DBProduct{ID: product.ID}).
		Select("name", "description", "price", "image", "quantity").
		Updates(r.domainToDB(product))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete implements domain.ProductRepository, returning the removed product
func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(&DBProduct{}, id).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepositoryImpl) domainToDB(p *domain.Product) *DBProduct {
	return &DBProduct{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *ProductRepositoryImpl) dbToDomain(p *DBProduct) *domain.Product {
	return &domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
