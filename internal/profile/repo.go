package profile

import (
	"context"

	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) GetByUserID(ctx context.Context, userID uint) (*models.UserDetail, error) {
	detail := models.UserDetail{}
	if err := r.DB.WithContext(ctx).Where("user_id=?", userID).First(&detail).Error; err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *GormRepo) Upsert(ctx context.Context, detail *models.UserDetail) error {
	return r.DB.WithContext(ctx).Save(detail).Error
}
