package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collex.backend/internal/domain/entities"
	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/internal/interfaces/http/middleware"
	"collex.backend/internal/interfaces/http/response"
	"collex.backend/internal/usecases"
	"collex.backend/pkg/utils"
)

// ProductHandler handles listing endpoints
type ProductHandler struct {
	listingUsecase *usecases.ListingUsecase
}

// NewProductHandler creates a new product handler
func NewProductHandler(listingUsecase *usecases.ListingUsecase) *ProductHandler {
	return &ProductHandler{listingUsecase: listingUsecase}
}

func parsePagination(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return utils.GetPaginationParams(page, limit)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.Validation("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// List returns approved listings, optionally filtered by category
// GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	var category entities.ProductCategory
	if raw := c.Query("category"); raw != "" {
		category = entities.ProductCategory(raw)
		if !entities.ValidCategory(category) {
			response.Error(c, domainerrors.Validation("Invalid category"))
			return
		}
	}

	pagination := parsePagination(c)
	products, total, err := h.listingUsecase.ListApproved(c.Request.Context(), category, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"products":   products,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Get returns a single listing
// GET /api/v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	// The route is public; an authenticated owner or admin can also see
	// non-approved listings.
	actorID, _ := middleware.GetUserID(c)
	role, _ := middleware.GetUserRole(c)

	product, err := h.listingUsecase.GetProduct(c.Request.Context(), productID, actorID, entities.UserRole(role))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// Submit creates a new listing in PENDING state
// POST /api/v1/products
func (h *ProductHandler) Submit(c *gin.Context) {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	var input entities.SubmitProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	product, err := h.listingUsecase.Submit(c.Request.Context(), sellerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Product submitted for review",
		"product": product,
	})
}

// Update edits a PENDING listing owned by the caller
// PUT /api/v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	product, err := h.listingUsecase.Update(c.Request.Context(), productID, sellerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"product": product})
}

// Withdraw removes a listing owned by the caller
// DELETE /api/v1/products/:id
func (h *ProductHandler) Withdraw(c *gin.Context) {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.listingUsecase.Withdraw(c.Request.Context(), productID, sellerID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Product withdrawn"})
}

// MyProducts returns the caller's listings in any status
// GET /api/v1/products/mine
func (h *ProductHandler) MyProducts(c *gin.Context) {
	sellerID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	pagination := parsePagination(c)
	products, total, err := h.listingUsecase.ListBySeller(c.Request.Context(), sellerID, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"products":   products,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// PendingReview returns listings awaiting moderation
// GET /api/v1/admin/products/pending
func (h *ProductHandler) PendingReview(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	pagination := parsePagination(c)
	products, total, err := h.listingUsecase.ListPendingReview(c.Request.Context(), adminID, pagination.Limit, pagination.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"products":   products,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Approve moves a PENDING listing to APPROVED
// POST /api/v1/admin/products/:id/approve
func (h *ProductHandler) Approve(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.listingUsecase.Approve(c.Request.Context(), productID, adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Product approved",
		"product": product,
	})
}

// Reject moves a PENDING listing to REJECTED with a reason
// POST /api/v1/admin/products/:id/reject
func (h *ProductHandler) Reject(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Unauthorized"))
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input entities.RejectProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Validation(err.Error()))
		return
	}

	product, err := h.listingUsecase.Reject(c.Request.Context(), productID, adminID, input.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Product rejected",
		"product": product,
	})
}
