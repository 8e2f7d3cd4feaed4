package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/domain/repositories"
)

// ListingUsecase manages the product lifecycle: submission, moderation
// and withdrawal.
type ListingUsecase struct {
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
}

// NewListingUsecase creates a new listing usecase
func NewListingUsecase(
	productRepo repositories.ProductRepository,
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *ListingUsecase {
	return &ListingUsecase{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		uow:         uow,
	}
}

func validateProductFields(title string, category entities.ProductCategory, condition entities.ProductCondition, price *float64, mrp *float64, ageInMonths *int) error {
	if strings.TrimSpace(title) == "" {
		return domainerrors.Validation("title is required")
	}
	if !entities.ValidCategory(category) {
		return domainerrors.Validation("unknown category")
	}
	if !entities.ValidCondition(condition) {
		return domainerrors.Validation("unknown condition")
	}
	if price == nil || *price < 0 {
		return domainerrors.Validation("price must be zero or positive")
	}
	if mrp != nil && *mrp < 0 {
		return domainerrors.Validation("mrp must be zero or positive")
	}
	if ageInMonths != nil && *ageInMonths < 0 {
		return domainerrors.Validation("ageInMonths must be zero or positive")
	}
	return nil
}

// Submit creates a new PENDING listing for the seller
func (u *ListingUsecase) Submit(ctx context.Context, sellerID uuid.UUID, input *entities.SubmitProductInput) (*entities.Product, error) {
	if _, err := requireActor(ctx, u.userRepo, sellerID, entities.UserRoleSeller); err != nil {
		return nil, err
	}

	if err := validateProductFields(input.Title, input.Category, input.Condition, input.Price, input.MRP, input.AgeInMonths); err != nil {
		return nil, err
	}

	product := &entities.Product{
		SellerID:    sellerID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Category:    input.Category,
		Condition:   input.Condition,
		MRP:         input.MRP,
		Price:       *input.Price,
		AgeInMonths: input.AgeInMonths,
		Images:      input.Images,
		Status:      entities.ProductStatusPending,
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update edits the content fields of the seller's own PENDING listing.
// APPROVED and REJECTED listings are frozen.
func (u *ListingUsecase) Update(ctx context.Context, productID, sellerID uuid.UUID, input *entities.UpdateProductInput) (*entities.Product, error) {
	if _, err := requireActor(ctx, u.userRepo, sellerID, entities.UserRoleSeller); err != nil {
		return nil, err
	}

	if err := validateProductFields(input.Title, input.Category, input.Condition, input.Price, input.MRP, input.AgeInMonths); err != nil {
		return nil, err
	}

	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("product not found")
		}
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, domainerrors.Forbidden("only the listing owner may edit it")
	}
	if product.Status != entities.ProductStatusPending {
		return nil, domainerrors.InvalidTransition("only pending listings can be edited")
	}

	product.Title = strings.TrimSpace(input.Title)
	product.Description = input.Description
	product.Category = input.Category
	product.Condition = input.Condition
	product.MRP = input.MRP
	product.Price = *input.Price
	product.AgeInMonths = input.AgeInMonths
	product.Images = input.Images

	if err := u.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Approve moves a PENDING listing to APPROVED. Admin only.
func (u *ListingUsecase) Approve(ctx context.Context, productID, adminID uuid.UUID) (*entities.Product, error) {
	return u.moderate(ctx, productID, adminID, entities.ProductStatusApproved, "")
}

// Reject moves a PENDING listing to REJECTED with a mandatory reason. Admin only.
func (u *ListingUsecase) Reject(ctx context.Context, productID, adminID uuid.UUID, reason string) (*entities.Product, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, domainerrors.Validation("rejection reason is required")
	}
	return u.moderate(ctx, productID, adminID, entities.ProductStatusRejected, reason)
}

// moderate serializes concurrent moderation on the product row so two
// admins cannot both win.
func (u *ListingUsecase) moderate(ctx context.Context, productID, adminID uuid.UUID, target entities.ProductStatus, reason string) (*entities.Product, error) {
	if _, err := requireActor(ctx, u.userRepo, adminID, entities.UserRoleAdmin); err != nil {
		return nil, err
	}

	var product *entities.Product
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		var err error
		product, err = u.productRepo.GetByID(lockCtx, productID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("product not found")
			}
			return err
		}

		if !product.Status.CanTransitionTo(target) {
			return domainerrors.InvalidTransition("product is " + string(product.Status) + ", expected PENDING")
		}

		return u.productRepo.UpdateStatus(lockCtx, productID, target, reason)
	})
	if err != nil {
		return nil, err
	}

	refreshed, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return refreshed, nil
}

// Withdraw removes the seller's own PENDING or APPROVED listing. Blocked
// while an active order references the product; the check and the delete
// run atomically against concurrent placeOrder calls.
func (u *ListingUsecase) Withdraw(ctx context.Context, productID, sellerID uuid.UUID) error {
	if _, err := requireActor(ctx, u.userRepo, sellerID, entities.UserRoleSeller); err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		lockCtx := u.uow.WithLock(txCtx)

		product, err := u.productRepo.GetByID(lockCtx, productID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.NotFound("product not found")
			}
			return err
		}
		if product.SellerID != sellerID {
			return domainerrors.Forbidden("only the listing owner may withdraw it")
		}
		if product.Status == entities.ProductStatusRejected {
			return domainerrors.InvalidTransition("rejected listings cannot be withdrawn")
		}

		active, err := u.orderRepo.CountActiveByProductID(lockCtx, productID)
		if err != nil {
			return err
		}
		if active > 0 {
			return domainerrors.Conflict("an active order exists for this product")
		}

		return u.productRepo.SoftDelete(lockCtx, productID)
	})
}

// GetProduct returns a listing. Non-approved listings are visible only to
// their owner and admins.
func (u *ListingUsecase) GetProduct(ctx context.Context, productID, actorID uuid.UUID, actorRole entities.UserRole) (*entities.Product, error) {
	product, err := u.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("product not found")
		}
		return nil, err
	}

	if product.Status != entities.ProductStatusApproved &&
		product.SellerID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.NotFound("product not found")
	}
	return product, nil
}

// ListApproved returns the public catalogue, optionally filtered by category
func (u *ListingUsecase) ListApproved(ctx context.Context, category entities.ProductCategory, limit, offset int) ([]*entities.Product, int64, error) {
	if category != "" && !entities.ValidCategory(category) {
		return nil, 0, domainerrors.Validation("unknown category")
	}
	return u.productRepo.List(ctx, repositories.ProductFilter{
		Status:   entities.ProductStatusApproved,
		Category: category,
	}, limit, offset)
}

// ListBySeller returns all of one seller's listings, any status
func (u *ListingUsecase) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]*entities.Product, int64, error) {
	return u.productRepo.List(ctx, repositories.ProductFilter{SellerID: sellerID}, limit, offset)
}

// ListPendingReview returns the moderation queue. Admin only.
func (u *ListingUsecase) ListPendingReview(ctx context.Context, adminID uuid.UUID, limit, offset int) ([]*entities.Product, int64, error) {
	if _, err := requireActor(ctx, u.userRepo, adminID, entities.UserRoleAdmin); err != nil {
		return nil, 0, err
	}
	return u.productRepo.List(ctx, repositories.ProductFilter{Status: entities.ProductStatusPending}, limit, offset)
}
