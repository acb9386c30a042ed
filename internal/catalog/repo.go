package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

type ListFilter struct {
	CategoryID int
	Search     string
}

type PatchProductRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	UnitsInStock *uint    `json:"units_in_stock"`
	CategoryID   *int     `json:"category_id"`
	SupplierID   *int     `json:"supplier_id"`
	Image        *string  `json:"image"`
}

func (r *GormRepo) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	product := models.Product{}
	if err := r.DB.WithContext(ctx).Where("ID=?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) GetProducts(ctx context.Context, f ListFilter, offset, limit int) (int64, []models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Product
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}

	return total, items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, req PatchProductRequest, id int) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).First(&prod, id).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.UnitsInStock != nil {
		prod.UnitsInStock = *req.UnitsInStock
	}
	if req.CategoryID != nil {
		prod.CategoryID = *req.CategoryID
	}
	if req.SupplierID != nil {
		prod.SupplierID = *req.SupplierID
	}
	if req.Image != nil {
		prod.Image = *req.Image
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}

	return &prod, nil
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id int) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
