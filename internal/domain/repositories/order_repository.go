package repositories

import (
	"context"

	"github.com/google/uuid"
	"collex.backend/internal/domain/entities"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	BuyerID   uuid.UUID
	SellerID  uuid.UUID
	ProductID uuid.UUID
	Status    entities.OrderStatus
}

// OrderRepository defines order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	// UpdateIfStatus persists status, settlement and completion fields
	// only while the stored status still equals expected. A losing
	// concurrent writer gets ErrConflict instead of a lost update.
	UpdateIfStatus(ctx context.Context, order *entities.Order, expected entities.OrderStatus) error
	// CountActiveByProductID counts orders in a non-terminal status
	// (PENDING, CONFIRMED, IN_PROGRESS) for the product. Callers that
	// need the check-then-create sequence to be atomic run it inside a
	// UnitOfWork with the product row locked.
	CountActiveByProductID(ctx context.Context, productID uuid.UUID) (int64, error)
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]*entities.Order, int64, error)
}
