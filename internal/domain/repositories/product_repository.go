package repositories

import (
	"context"

	"github.com/google/uuid"
	"collex.backend/internal/domain/entities"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	Status   entities.ProductStatus
	Category entities.ProductCategory
	SellerID uuid.UUID
}

// ProductRepository defines listing data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entities.Product) error
	// GetByID returns the product; when the lock flag is set on ctx the
	// row is read FOR UPDATE so concurrent callers serialize on it.
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Product, error)
	Update(ctx context.Context, product *entities.Product) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProductStatus, reason string) error
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]*entities.Product, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
