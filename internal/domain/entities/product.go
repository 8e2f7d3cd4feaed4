package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ProductCategory represents the closed set of listing categories
type ProductCategory string

const (
	CategoryBooks       ProductCategory = "BOOKS"
	CategoryElectronics ProductCategory = "ELECTRONICS"
	CategoryNotes       ProductCategory = "NOTES_STUDY_MATERIAL"
	CategoryAccessories ProductCategory = "ACCESSORIES"
	CategoryCalculators ProductCategory = "CALCULATORS"
	CategoryOthers      ProductCategory = "OTHERS"
)

// ProductCondition represents the closed set of item conditions
type ProductCondition string

const (
	ConditionNew     ProductCondition = "NEW"
	ConditionLikeNew ProductCondition = "LIKE_NEW"
	ConditionUsed    ProductCondition = "USED"
	ConditionOld     ProductCondition = "OLD"
)

// ProductStatus represents the listing lifecycle status
type ProductStatus string

const (
	ProductStatusPending  ProductStatus = "PENDING"
	ProductStatusApproved ProductStatus = "APPROVED"
	ProductStatusRejected ProductStatus = "REJECTED"
)

// ValidCategory reports whether c is a member of the closed category set.
func ValidCategory(c ProductCategory) bool {
	switch c {
	case CategoryBooks, CategoryElectronics, CategoryNotes,
		CategoryAccessories, CategoryCalculators, CategoryOthers:
		return true
	}
	return false
}

// ValidCondition reports whether c is a member of the closed condition set.
func ValidCondition(c ProductCondition) bool {
	switch c {
	case ConditionNew, ConditionLikeNew, ConditionUsed, ConditionOld:
		return true
	}
	return false
}

// productTransitions is the listing state machine. A REJECTED product is
// terminal; resubmission means creating a new listing.
var productTransitions = map[ProductStatus][]ProductStatus{
	ProductStatusPending:  {ProductStatusApproved, ProductStatusRejected},
	ProductStatusApproved: {},
	ProductStatusRejected: {},
}

// CanTransitionTo reports whether the status change is legal.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	for _, allowed := range productTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Product represents one listing
type Product struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	SellerID        uuid.UUID        `json:"sellerId"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Category        ProductCategory  `json:"category"`
	Condition       ProductCondition `json:"condition"`
	MRP             *float64         `json:"mrp,omitempty"`
	Price           float64          `json:"price"`
	AgeInMonths     *int             `json:"ageInMonths,omitempty"`
	Images          []string         `json:"images" gorm:"-"`
	Status          ProductStatus    `json:"status"`
	RejectionReason null.String      `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	ApprovedAt      *time.Time       `json:"approvedAt,omitempty"`
	RejectedAt      *time.Time       `json:"rejectedAt,omitempty"`
	DeletedAt       *time.Time       `json:"-"`
}

// SubmitProductInput represents input for creating a listing
type SubmitProductInput struct {
	Title       string           `json:"title" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Category    ProductCategory  `json:"category" binding:"required"`
	Condition   ProductCondition `json:"condition" binding:"required"`
	MRP         *float64         `json:"mrp"`
	Price       *float64         `json:"price" binding:"required"`
	AgeInMonths *int             `json:"ageInMonths"`
	Images      []string         `json:"images"`
}

// UpdateProductInput represents input for editing a PENDING listing
type UpdateProductInput struct {
	Title       string           `json:"title" binding:"required,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	Category    ProductCategory  `json:"category" binding:"required"`
	Condition   ProductCondition `json:"condition" binding:"required"`
	MRP         *float64         `json:"mrp"`
	Price       *float64         `json:"price" binding:"required"`
	AgeInMonths *int             `json:"ageInMonths"`
	Images      []string         `json:"images"`
}

// RejectProductInput carries the mandatory moderation reason
type RejectProductInput struct {
	Reason string `json:"reason" binding:"required"`
}
