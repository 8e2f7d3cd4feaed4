package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/interfaces/http/middleware"
	"collex.backend/internal/interfaces/http/response"
	"collex.backend/internal/usecases"
	"collex.backend/pkg/utils"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderUsecase *usecases.OrderUsecase
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderUsecase *usecases.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

func parseStatusFilter(c *gin.Context) (entities.OrderStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status := entities.OrderStatus(raw)
	switch status {
	case entities.OrderStatusPending, entities.OrderStatusConfirmed,
		entities.OrderStatusInProgress, entities.OrderStatusCompleted,
		entities.OrderStatusCancelled:
		return status, true
	}
	response.Error(c, domainerrors.Validation("Invalid status"))
	return "", false
}

// Place creates a new PENDING order against an approved product
// POST /api/v1/orders
func (h *OrderHandler) Place(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	order, err := h.orderUsecase.PlaceOrder(c.Request.Context(), buyerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Order placed",
		"order":   order,
	})
}

// Get returns a single order visible to its participants or an admin
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)
	order, err := h.orderUsecase.GetOrder(c.Request.Context(), orderID, actorID, entities.UserRole(role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

// Confirm moves a PENDING order to CONFIRMED
// POST /api/v1/orders/:id/confirm
func (h *OrderHandler) Confirm(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderUsecase.Confirm(c.Request.Context(), orderID, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Order confirmed",
		"order":   order,
	})
}

// Advance moves an order one step forward in its lifecycle
// POST /api/v1/orders/:id/advance
func (h *OrderHandler) Advance(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderUsecase.Advance(c.Request.Context(), orderID, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Order advanced",
		"order":   order,
	})
}

// Cancel cancels a PENDING or CONFIRMED order
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderUsecase.Cancel(c.Request.Context(), orderID, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Order cancelled",
		"order":   order,
	})
}

// MyOrders returns orders the caller placed as a buyer
// GET /api/v1/orders/mine
func (h *OrderHandler) MyOrders(c *gin.Context) {
	buyerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	status, ok := parseStatusFilter(c)
	if !ok {
		return
	}

	pagination := parsePagination(c)
	orders, total, err := h.orderUsecase.ListByBuyer(c.Request.Context(), buyerID, status, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Received returns orders placed against the caller's listings
// GET /api/v1/orders/received
func (h *OrderHandler) Received(c *gin.Context) {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	status, ok := parseStatusFilter(c)
	if !ok {
		return
	}

	pagination := parsePagination(c)
	orders, total, err := h.orderUsecase.ListBySeller(c.Request.Context(), sellerID, status, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}
