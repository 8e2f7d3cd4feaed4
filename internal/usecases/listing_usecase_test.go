package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/domain/repositories"
	"collex.backend/internal/usecases"
)

func activeSeller(id uuid.UUID) *entities.User {
	return &entities.User{ID: id, Role: entities.UserRoleSeller, IsActive: true}
}

func activeAdmin(id uuid.UUID) *entities.User {
	return &entities.User{ID: id, Role: entities.UserRoleAdmin, IsActive: true}
}

func activeBuyer(id uuid.UUID) *entities.User {
	return &entities.User{ID: id, Role: entities.UserRoleBuyer, IsActive: true}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func validSubmitInput() *entities.SubmitProductInput {
	return &entities.SubmitProductInput{
		Title:       "Scientific Calculator",
		Description: "FX-991ES, works fine",
		Category:    entities.CategoryCalculators,
		Condition:   entities.ConditionUsed,
		MRP:         floatPtr(1500),
		Price:       floatPtr(700),
		AgeInMonths: intPtr(18),
		Images:      []string{"https://img/calc.jpg"},
	}
}

func newListingUsecase() (*usecases.ListingUsecase, *MockProductRepository, *MockOrderRepository, *MockUserRepository, *MockUnitOfWork) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewListingUsecase(productRepo, orderRepo, userRepo, uow)
	return uc, productRepo, orderRepo, userRepo, uow
}

func TestListingUsecase_Submit(t *testing.T) {
	uc, productRepo, _, userRepo, _ := newListingUsecase()
	sellerID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil).Once()
	productRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Product")).Return(nil).Once()

	product, err := uc.Submit(context.Background(), sellerID, validSubmitInput())
	assert.NoError(t, err)
	assert.Equal(t, entities.ProductStatusPending, product.Status)
	assert.Equal(t, sellerID, product.SellerID)
	assert.Equal(t, 700.0, product.Price)
	productRepo.AssertExpectations(t)
}

func TestListingUsecase_Submit_BuyerForbidden(t *testing.T) {
	uc, productRepo, _, userRepo, _ := newListingUsecase()
	buyerID := uuid.New()

	userRepo.On("GetByID", mock.Anything, buyerID).Return(activeBuyer(buyerID), nil).Once()

	_, err := uc.Submit(context.Background(), buyerID, validSubmitInput())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	productRepo.AssertNotCalled(t, "Create")
}

func TestListingUsecase_Submit_ValidationFailures(t *testing.T) {
	uc, _, _, userRepo, _ := newListingUsecase()
	sellerID := uuid.New()
	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil)

	tests := []struct {
		name   string
		mutate func(in *entities.SubmitProductInput)
	}{
		{"blank title", func(in *entities.SubmitProductInput) { in.Title = "   " }},
		{"unknown category", func(in *entities.SubmitProductInput) { in.Category = "FURNITURE" }},
		{"unknown condition", func(in *entities.SubmitProductInput) { in.Condition = "BROKEN" }},
		{"missing price", func(in *entities.SubmitProductInput) { in.Price = nil }},
		{"negative price", func(in *entities.SubmitProductInput) { in.Price = floatPtr(-1) }},
		{"negative mrp", func(in *entities.SubmitProductInput) { in.MRP = floatPtr(-1) }},
		{"negative age", func(in *entities.SubmitProductInput) { in.AgeInMonths = intPtr(-1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validSubmitInput()
			tt.mutate(in)
			_, err := uc.Submit(context.Background(), sellerID, in)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}

func TestListingUsecase_Update_PendingOnly(t *testing.T) {
	uc, productRepo, _, userRepo, _ := newListingUsecase()
	sellerID := uuid.New()
	productID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil)

	approved := &entities.Product{ID: productID, SellerID: sellerID, Status: entities.ProductStatusApproved}
	productRepo.On("GetByID", mock.Anything, productID).Return(approved, nil).Once()

	in := &entities.UpdateProductInput{
		Title:     "New Title",
		Category:  entities.CategoryBooks,
		Condition: entities.ConditionUsed,
		Price:     floatPtr(100),
	}
	_, err := uc.Update(context.Background(), productID, sellerID, in)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	productRepo.AssertNotCalled(t, "Update")
}

func TestListingUsecase_Update_NotOwner(t *testing.T) {
	uc, productRepo, _, userRepo, _ := newListingUsecase()
	sellerID := uuid.New()
	productID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil)

	other := &entities.Product{ID: productID, SellerID: uuid.New(), Status: entities.ProductStatusPending}
	productRepo.On("GetByID", mock.Anything, productID).Return(other, nil).Once()

	in := &entities.UpdateProductInput{
		Title:     "New Title",
		Category:  entities.CategoryBooks,
		Condition: entities.ConditionUsed,
		Price:     floatPtr(100),
	}
	_, err := uc.Update(context.Background(), productID, sellerID, in)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestListingUsecase_Approve(t *testing.T) {
	uc, productRepo, _, userRepo, uow := newListingUsecase()
	adminID := uuid.New()
	productID := uuid.New()

	userRepo.On("GetByID", mock.Anything, adminID).Return(activeAdmin(adminID), nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	uow.On("WithLock", mock.Anything).Return().Once()

	pending := &entities.Product{ID: productID, Status: entities.ProductStatusPending}
	approved := &entities.Product{ID: productID, Status: entities.ProductStatusApproved}
	productRepo.On("GetByID", mock.Anything, productID).Return(pending, nil).Once()
	productRepo.On("UpdateStatus", mock.Anything, productID, entities.ProductStatusApproved, "").Return(nil).Once()
	productRepo.On("GetByID", mock.Anything, productID).Return(approved, nil).Once()

	product, err := uc.Approve(context.Background(), productID, adminID)
	assert.NoError(t, err)
	assert.Equal(t, entities.ProductStatusApproved, product.Status)
	productRepo.AssertExpectations(t)
}

func TestListingUsecase_Approve_NonAdminForbidden(t *testing.T) {
	uc, productRepo, _, userRepo, _ := newListingUsecase()
	sellerID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil).Once()

	_, err := uc.Approve(context.Background(), uuid.New(), sellerID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	productRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestListingUsecase_Reject_RequiresReason(t *testing.T) {
	uc, _, _, _, _ := newListingUsecase()

	_, err := uc.Reject(context.Background(), uuid.New(), uuid.New(), "   ")
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestListingUsecase_Reject_AfterApproveIllegal(t *testing.T) {
	uc, productRepo, _, userRepo, uow := newListingUsecase()
	adminID := uuid.New()
	productID := uuid.New()

	userRepo.On("GetByID", mock.Anything, adminID).Return(activeAdmin(adminID), nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	uow.On("WithLock", mock.Anything).Return().Once()

	approved := &entities.Product{ID: productID, Status: entities.ProductStatusApproved}
	productRepo.On("GetByID", mock.Anything, productID).Return(approved, nil).Once()

	_, err := uc.Reject(context.Background(), productID, adminID, "late change of mind")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
	productRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestListingUsecase_Withdraw(t *testing.T) {
	uc, productRepo, orderRepo, userRepo, uow := newListingUsecase()
	sellerID := uuid.New()
	productID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	uow.On("WithLock", mock.Anything).Return().Once()

	product := &entities.Product{ID: productID, SellerID: sellerID, Status: entities.ProductStatusApproved}
	productRepo.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
	orderRepo.On("CountActiveByProductID", mock.Anything, productID).Return(int64(0), nil).Once()
	productRepo.On("SoftDelete", mock.Anything, productID).Return(nil).Once()

	assert.NoError(t, uc.Withdraw(context.Background(), productID, sellerID))
	productRepo.AssertExpectations(t)
}

func TestListingUsecase_Withdraw_BlockedByActiveOrder(t *testing.T) {
	uc, productRepo, orderRepo, userRepo, uow := newListingUsecase()
	sellerID := uuid.New()
	productID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	uow.On("WithLock", mock.Anything).Return().Once()

	product := &entities.Product{ID: productID, SellerID: sellerID, Status: entities.ProductStatusApproved}
	productRepo.On("GetByID", mock.Anything, productID).Return(product, nil).Once()
	orderRepo.On("CountActiveByProductID", mock.Anything, productID).Return(int64(1), nil).Once()

	err := uc.Withdraw(context.Background(), productID, sellerID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	productRepo.AssertNotCalled(t, "SoftDelete")
}

func TestListingUsecase_Withdraw_RejectedFrozen(t *testing.T) {
	uc, productRepo, _, userRepo, uow := newListingUsecase()
	sellerID := uuid.New()
	productID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	uow.On("WithLock", mock.Anything).Return().Once()

	product := &entities.Product{ID: productID, SellerID: sellerID, Status: entities.ProductStatusRejected}
	productRepo.On("GetByID", mock.Anything, productID).Return(product, nil).Once()

	err := uc.Withdraw(context.Background(), productID, sellerID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidTransition)
}

func TestListingUsecase_GetProduct_Visibility(t *testing.T) {
	uc, productRepo, _, _, _ := newListingUsecase()
	sellerID := uuid.New()
	productID := uuid.New()

	pending := &entities.Product{ID: productID, SellerID: sellerID, Status: entities.ProductStatusPending}
	productRepo.On("GetByID", mock.Anything, productID).Return(pending, nil)

	// owner sees it
	got, err := uc.GetProduct(context.Background(), productID, sellerID, entities.UserRoleSeller)
	assert.NoError(t, err)
	assert.Equal(t, productID, got.ID)

	// admin sees it
	_, err = uc.GetProduct(context.Background(), productID, uuid.New(), entities.UserRoleAdmin)
	assert.NoError(t, err)

	// anyone else gets not found, not forbidden
	_, err = uc.GetProduct(context.Background(), productID, uuid.New(), entities.UserRoleBuyer)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	// anonymous gets not found
	_, err = uc.GetProduct(context.Background(), productID, uuid.Nil, "")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestListingUsecase_ListApproved(t *testing.T) {
	uc, productRepo, _, _, _ := newListingUsecase()

	expected := []*entities.Product{{ID: uuid.New(), Status: entities.ProductStatusApproved}}
	productRepo.On("List", mock.Anything, repositories.ProductFilter{
		Status:   entities.ProductStatusApproved,
		Category: entities.CategoryBooks,
	}, 10, 0).Return(expected, int64(1), nil).Once()

	products, total, err := uc.ListApproved(context.Background(), entities.CategoryBooks, 10, 0)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, products, 1)

	_, _, err = uc.ListApproved(context.Background(), entities.ProductCategory("FURNITURE"), 10, 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestListingUsecase_ListPendingReview_AdminOnly(t *testing.T) {
	uc, productRepo, _, userRepo, _ := newListingUsecase()
	sellerID := uuid.New()

	userRepo.On("GetByID", mock.Anything, sellerID).Return(activeSeller(sellerID), nil).Once()

	_, _, err := uc.ListPendingReview(context.Background(), sellerID, 10, 0)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	productRepo.AssertNotCalled(t, "List")
}
