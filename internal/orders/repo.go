package orders

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

// CreateOrderWithLines persists the order and all its lines in one
// transaction: either the whole aggregate lands in the database or nothing
// does. Each line's price is read from the product row inside that
// transaction, so the stored snapshot is the price at commit time.
func (r *GormRepo) CreateOrderWithLines(ctx context.Context, order *models.Order, lines []models.OrderLine) (uint, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		for i := range lines {
			var p models.Product
			if err := tx.First(&p, lines[i].ProductID).Error; err != nil {
				return fmt.Errorf("product %d: %w", lines[i].ProductID, err)
			}
			lines[i].OrderID = order.ID
			lines[i].ProductPrice = p.Price
			if err := tx.Create(&lines[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	order.Lines = lines
	return order.ID, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint, userID uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&order).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Where("order_id = ?", order.ID).Order("id ASC").Find(&order.Lines).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, limit, offset int) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var orders []models.Order
	if err := q.Order("order_date DESC").Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
