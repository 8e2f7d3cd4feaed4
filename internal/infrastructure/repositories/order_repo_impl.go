package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	domainRepos "collex.backend/internal/domain/repositories"
	"collex.backend/internal/infrastructure/models"
)

var activeOrderStatuses = []string{
	string(entities.OrderStatusPending),
	string(entities.OrderStatusConfirmed),
	string(entities.OrderStatusInProgress),
}

// OrderRepository implements order data operations
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create creates a new order
func (r *OrderRepository) Create(ctx context.Context, order *entities.Order) error {
	m := orderToModel(order)
	if err := getDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	order.ID = m.ID
	return nil
}

// GetByID gets an order. With the lock flag on ctx the row is read FOR UPDATE.
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	var m models.Order
	q := lockScope(ctx, getDB(ctx, r.db).WithContext(ctx))
	if err := q.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return orderToEntity(&m), nil
}

// UpdateIfStatus persists status, settlement and completion fields with a
// compare-and-set on the stored status. Zero rows affected means another
// writer got there first.
func (r *OrderRepository) UpdateIfStatus(ctx context.Context, order *entities.Order, expected entities.OrderStatus) error {
	updates := map[string]interface{}{
		"status":         string(order.Status),
		"payment_status": string(order.PaymentStatus),
		"completed_at":   order.CompletedAt,
		"updated_at":     time.Now(),
	}

	result := getDB(ctx, r.db).WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, string(expected)).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

// CountActiveByProductID counts non-terminal orders for a product
func (r *OrderRepository) CountActiveByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).WithContext(ctx).Model(&models.Order{}).
		Where("product_id = ? AND status IN ?", productID, activeOrderStatuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List returns orders matching the filter, newest first
func (r *OrderRepository) List(ctx context.Context, filter domainRepos.OrderFilter, limit, offset int) ([]*entities.Order, int64, error) {
	db := getDB(ctx, r.db).WithContext(ctx).Model(&models.Order{})

	if filter.BuyerID != uuid.Nil {
		db = db.Where("buyer_id = ?", filter.BuyerID)
	}
	if filter.SellerID != uuid.Nil {
		db = db.Where("seller_id = ?", filter.SellerID)
	}
	if filter.ProductID != uuid.Nil {
		db = db.Where("product_id = ?", filter.ProductID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", string(filter.Status))
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db = db.Order("created_at DESC")
	if limit > 0 {
		db = db.Limit(limit).Offset(offset)
	}

	var orderModels []models.Order
	if err := db.Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*entities.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, orderToEntity(&orderModels[i]))
	}
	return orders, total, nil
}

func orderToModel(o *entities.Order) *models.Order {
	return &models.Order{
		ID:              o.ID,
		ProductID:       o.ProductID,
		BuyerID:         o.BuyerID,
		SellerID:        o.SellerID,
		Price:           o.Price,
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   string(o.PaymentStatus),
		DeliveryAddress: o.DeliveryAddress,
		ContactNumber:   o.ContactNumber,
		Notes:           o.Notes.Ptr(),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		CompletedAt:     o.CompletedAt,
	}
}

func orderToEntity(m *models.Order) *entities.Order {
	return &entities.Order{
		ID:              m.ID,
		ProductID:       m.ProductID,
		BuyerID:         m.BuyerID,
		SellerID:        m.SellerID,
		Price:           m.Price,
		Status:          entities.OrderStatus(m.Status),
		PaymentMethod:   m.PaymentMethod,
		PaymentStatus:   entities.PaymentStatus(m.PaymentStatus),
		DeliveryAddress: m.DeliveryAddress,
		ContactNumber:   m.ContactNumber,
		Notes:           null.StringFromPtr(m.Notes),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		CompletedAt:     m.CompletedAt,
	}
}
