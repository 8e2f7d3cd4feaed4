package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"collex.backend/internal/config"
	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/domain/repositories"
	"collex.backend/internal/usecases"
)

func newOrderHandler(orderRepo *orderRepoStub, productRepo *productRepoStub, userRepo *userRepoStub) *OrderHandler {
	uc := usecases.NewOrderUsecase(orderRepo, productRepo, userRepo, uowStub{}, config.PaymentConfig{
		OnlineMethods: []string{"ONLINE", "UPI"},
	})
	return NewOrderHandler(uc)
}

func TestOrderHandler_Place(t *testing.T) {
	buyerID := uuid.New()
	product := &entities.Product{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Price:    450,
		Status:   entities.ProductStatusApproved,
	}

	userRepo := &userRepoStub{
		getByID: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			return activeUser(buyerID, entities.UserRoleBuyer), nil
		},
	}
	productRepo := &productRepoStub{
		getByID: func(context.Context, uuid.UUID) (*entities.Product, error) { return product, nil },
	}
	h := newOrderHandler(&orderRepoStub{}, productRepo, userRepo)

	r := gin.New()
	r.POST("/orders", asUser(buyerID, entities.UserRoleBuyer), h.Place)

	rec := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"productId":       product.ID.String(),
		"paymentMethod":   "UPI",
		"deliveryAddress": "Hostel Block C",
		"contactNumber":   "9876543210",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	order := body["order"].(map[string]interface{})
	require.Equal(t, "PENDING", order["status"])
	require.Equal(t, "PENDING", order["paymentStatus"])
	require.EqualValues(t, 450, order["price"])
}

func TestOrderHandler_Place_MissingFields(t *testing.T) {
	buyerID := uuid.New()
	h := newOrderHandler(&orderRepoStub{}, &productRepoStub{}, &userRepoStub{})

	r := gin.New()
	r.POST("/orders", asUser(buyerID, entities.UserRoleBuyer), h.Place)

	rec := doJSON(t, r, http.MethodPost, "/orders", gin.H{"productId": uuid.NewString()})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_Place_ProductTaken(t *testing.T) {
	buyerID := uuid.New()
	product := &entities.Product{
		ID:       uuid.New(),
		SellerID: uuid.New(),
		Status:   entities.ProductStatusApproved,
	}

	userRepo := &userRepoStub{
		getByID: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			return activeUser(buyerID, entities.UserRoleBuyer), nil
		},
	}
	productRepo := &productRepoStub{
		getByID: func(context.Context, uuid.UUID) (*entities.Product, error) { return product, nil },
	}
	orderRepo := &orderRepoStub{
		countActive: func(context.Context, uuid.UUID) (int64, error) { return 1, nil },
	}
	h := newOrderHandler(orderRepo, productRepo, userRepo)

	r := gin.New()
	r.POST("/orders", asUser(buyerID, entities.UserRoleBuyer), h.Place)

	rec := doJSON(t, r, http.MethodPost, "/orders", gin.H{
		"productId":       product.ID.String(),
		"paymentMethod":   "CASH",
		"deliveryAddress": "Hostel Block C",
		"contactNumber":   "9876543210",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, domainerrors.CodeConflict, decodeBody(t, rec)["code"])
}

func TestOrderHandler_Confirm_WrongState(t *testing.T) {
	sellerID := uuid.New()
	order := &entities.Order{
		ID:       uuid.New(),
		BuyerID:  uuid.New(),
		SellerID: sellerID,
		Status:   entities.OrderStatusCompleted,
	}

	orderRepo := &orderRepoStub{
		getByID: func(context.Context, uuid.UUID) (*entities.Order, error) { return order, nil },
	}
	h := newOrderHandler(orderRepo, &productRepoStub{}, &userRepoStub{})

	r := gin.New()
	r.POST("/orders/:id/confirm", asUser(sellerID, entities.UserRoleSeller), h.Confirm)

	rec := doJSON(t, r, http.MethodPost, "/orders/"+order.ID.String()+"/confirm", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, domainerrors.CodeInvalidTransition, decodeBody(t, rec)["code"])
}

func TestOrderHandler_Cancel_ByStranger(t *testing.T) {
	strangerID := uuid.New()
	order := &entities.Order{
		ID:       uuid.New(),
		BuyerID:  uuid.New(),
		SellerID: uuid.New(),
		Status:   entities.OrderStatusPending,
	}

	orderRepo := &orderRepoStub{
		getByID: func(context.Context, uuid.UUID) (*entities.Order, error) { return order, nil },
	}
	h := newOrderHandler(orderRepo, &productRepoStub{}, &userRepoStub{})

	r := gin.New()
	r.POST("/orders/:id/cancel", asUser(strangerID, entities.UserRoleBuyer), h.Cancel)

	rec := doJSON(t, r, http.MethodPost, "/orders/"+order.ID.String()+"/cancel", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrderHandler_Get_Participant(t *testing.T) {
	buyerID := uuid.New()
	order := &entities.Order{
		ID:       uuid.New(),
		BuyerID:  buyerID,
		SellerID: uuid.New(),
		Status:   entities.OrderStatusPending,
	}

	orderRepo := &orderRepoStub{
		getByID: func(context.Context, uuid.UUID) (*entities.Order, error) { return order, nil },
	}
	h := newOrderHandler(orderRepo, &productRepoStub{}, &userRepoStub{})

	r := gin.New()
	r.GET("/orders/:id", asUser(buyerID, entities.UserRoleBuyer), h.Get)

	rec := doJSON(t, r, http.MethodGet, "/orders/"+order.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderHandler_MyOrders_StatusFilter(t *testing.T) {
	buyerID := uuid.New()
	orderRepo := &orderRepoStub{
		list: func(_ context.Context, filter repositories.OrderFilter, limit, offset int) ([]*entities.Order, int64, error) {
			require.Equal(t, buyerID, filter.BuyerID)
			require.Equal(t, entities.OrderStatusCancelled, filter.Status)
			return []*entities.Order{}, 0, nil
		},
	}
	h := newOrderHandler(orderRepo, &productRepoStub{}, &userRepoStub{})

	r := gin.New()
	r.GET("/orders/mine", asUser(buyerID, entities.UserRoleBuyer), h.MyOrders)

	rec := doJSON(t, r, http.MethodGet, "/orders/mine?status=CANCELLED", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/orders/mine?status=BOGUS", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
