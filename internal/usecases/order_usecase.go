package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"collex.backend/internal/config"
	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/domain/repositories"
)

// OrderUsecase manages the transaction lifecycle: placement, seller
// confirmation, fulfillment and cancellation, plus settlement bookkeeping.
type OrderUsecase struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
	payment     config.PaymentConfig
}

// NewOrderUsecase creates a new order usecase
func NewOrderUsecase(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	payment config.PaymentConfig,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		uow:         uow,
		payment:     payment,
	}
}

// PlaceOrder creates a PENDING order against an APPROVED product. The
// availability check and the insert run atomically with the product row
// locked, so of two concurrent calls exactly one wins and the other
// fails with Conflict. SellerID and price are snapshotted from the
// product at this instant.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, buyerID uuid.UUID, input *entities.PlaceOrderInput) (*entities.Order, error) {
	if _, err := requireActor(ctx, u.userRepo, buyerID, entities.UserRoleBuyer); err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		return nil, domainerrors.Validation("productId must be a valid UUID")
	}

	var order *entities.Order
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		product, err := u.productRepo.GetByID(lockCtx, productID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("product not found")
			}
			return err
		}
		if product.Status != entities.ProductStatusApproved {
			return domainerrors.Conflict("product is not available for ordering")
		}
		if product.SellerID == buyerID {
			return domainerrors.Forbidden("sellers cannot order their own listing")
		}

		active, err := u.orderRepo.CountActiveByProductID(lockCtx, productID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domainerrors.Conflict("an active order already exists for this product")
		}

		order = &entities.Order{
			ProductID:       productID,
			BuyerID:         buyerID,
			SellerID:        product.SellerID,
			Price:           product.Price,
			Status:          entities.OrderStatusPending,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   entities.PaymentStatusPending,
			DeliveryAddress: input.DeliveryAddress,
			ContactNumber:   input.ContactNumber,
		}
		if input.Notes != "" {
			order.Notes = null.StringFrom(input.Notes)
		}

		return u.orderRepo.Create(lockCtx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Confirm moves a PENDING order to CONFIRMED. Only the snapshotted seller may confirm.
func (u *OrderUsecase) Confirm(ctx context.Context, orderID, actorID uuid.UUID) (*entities.Order, error) {
	return u.transition(ctx, orderID, actorID, func(order *entities.Order, actorID uuid.UUID) error {
		if order.SellerID != actorID {
			return domainerrors.Forbidden("only the seller may confirm an order")
		}
		if !order.Status.CanTransitionTo(entities.OrderStatusConfirmed) {
			return domainerrors.InvalidTransition("order is " + string(order.Status) + ", expected PENDING")
		}
		order.Status = entities.OrderStatusConfirmed
		return nil
	})
}

// Advance moves the order one monotonic step forward:
// CONFIRMED -> IN_PROGRESS -> COMPLETED. Seller only. On completion the
// order settles immediately when the payment method is an online one.
func (u *OrderUsecase) Advance(ctx context.Context, orderID, actorID uuid.UUID) (*entities.Order, error) {
	return u.transition(ctx, orderID, actorID, func(order *entities.Order, actorID uuid.UUID) error {
		if order.SellerID != actorID {
			return domainerrors.Forbidden("only the seller may advance an order")
		}
		next, ok := order.Status.NextStatus()
		if !ok {
			return domainerrors.InvalidTransition("order is " + string(order.Status) + " and cannot advance")
		}
		order.Status = next
		if next == entities.OrderStatusCompleted {
			now := time.Now()
			order.CompletedAt = &now
			if order.PaymentStatus == entities.PaymentStatusPending && u.payment.IsImmediateSettlement(order.PaymentMethod) {
				order.PaymentStatus = entities.PaymentStatusPaid
			}
		}
		return nil
	})
}

// Cancel moves a PENDING or CONFIRMED order to CANCELLED at the buyer's
// or seller's request. A PAID order is marked REFUNDED; executing the
// refund is an external concern.
func (u *OrderUsecase) Cancel(ctx context.Context, orderID, actorID uuid.UUID) (*entities.Order, error) {
	return u.transition(ctx, orderID, actorID, func(order *entities.Order, actorID uuid.UUID) error {
		if order.BuyerID != actorID && order.SellerID != actorID {
			return domainerrors.Forbidden("only the buyer or seller may cancel an order")
		}
		if !order.Status.CanTransitionTo(entities.OrderStatusCancelled) {
			return domainerrors.InvalidTransition("order is " + string(order.Status) + " and cannot be cancelled")
		}
		order.Status = entities.OrderStatusCancelled
		if order.PaymentStatus == entities.PaymentStatusPaid {
			order.PaymentStatus = entities.PaymentStatusRefunded
		}
		return nil
	})
}

// transition runs a guarded order status change: the row is locked inside
// the transaction, the gates run against the committed state, and the
// write is compare-and-set on the pre-state so a racing writer fails with
// Conflict instead of silently losing its update.
func (u *OrderUsecase) transition(ctx context.Context, orderID, actorID uuid.UUID, apply func(order *entities.Order, actorID uuid.UUID) error) (*entities.Order, error) {
	var order *entities.Order
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		var err error
		order, err = u.orderRepo.GetByID(lockCtx, orderID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("order not found")
			}
			return err
		}

		expected := order.Status
		if err := apply(order, actorID); err != nil {
			return err
		}

		if err := u.orderRepo.UpdateIfStatus(lockCtx, order, expected); err != nil {
			if errors.Is(err, domainerrors.ErrConflict) {
				return domainerrors.Conflict("order was modified concurrently")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder returns an order to one of its participants or an admin
func (u *OrderUsecase) GetOrder(ctx context.Context, orderID, actorID uuid.UUID, actorRole entities.UserRole) (*entities.Order, error) {
	order, err := u.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("order not found")
		}
		return nil, err
	}

	if order.BuyerID != actorID && order.SellerID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not a participant of this order")
	}
	return order, nil
}

// ListByBuyer returns the buyer's own orders, optionally filtered by status
func (u *OrderUsecase) ListByBuyer(ctx context.Context, buyerID uuid.UUID, status entities.OrderStatus, limit, offset int) ([]*entities.Order, int64, error) {
	return u.orderRepo.List(ctx, repositories.OrderFilter{BuyerID: buyerID, Status: status}, limit, offset)
}

// ListBySeller returns the seller's incoming orders, optionally filtered by status
func (u *OrderUsecase) ListBySeller(ctx context.Context, sellerID uuid.UUID, status entities.OrderStatus, limit, offset int) ([]*entities.Order, int64, error) {
	return u.orderRepo.List(ctx, repositories.OrderFilter{SellerID: sellerID, Status: status}, limit, offset)
}
