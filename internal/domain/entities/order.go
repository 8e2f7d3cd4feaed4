package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// OrderStatus represents the transaction lifecycle status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentStatus represents payment settlement status
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// orderTransitions is the transaction state machine. COMPLETED and
// CANCELLED are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// CanTransitionTo reports whether the status change is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition out of s exists.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// IsActive reports whether an order in this status blocks the product.
// At most one active order may exist per product.
func (s OrderStatus) IsActive() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProgress:
		return true
	}
	return false
}

// NextStatus returns the single monotonic step forward used by Advance.
func (s OrderStatus) NextStatus() (OrderStatus, bool) {
	switch s {
	case OrderStatusConfirmed:
		return OrderStatusInProgress, true
	case OrderStatusInProgress:
		return OrderStatusCompleted, true
	}
	return "", false
}

// Order represents one transaction against a product. SellerID and Price
// are snapshots taken at order-creation time, not live joins.
type Order struct {
	ID              uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProductID       uuid.UUID     `json:"productId"`
	BuyerID         uuid.UUID     `json:"buyerId"`
	SellerID        uuid.UUID     `json:"sellerId"`
	Price           float64       `json:"price"`
	Status          OrderStatus   `json:"status"`
	PaymentMethod   string        `json:"paymentMethod"`
	PaymentStatus   PaymentStatus `json:"paymentStatus"`
	DeliveryAddress string        `json:"deliveryAddress"`
	ContactNumber   string        `json:"contactNumber"`
	Notes           null.String   `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
	CompletedAt     *time.Time    `json:"completedAt,omitempty"`
	DeletedAt       *time.Time    `json:"-"`
}

// PlaceOrderInput represents input for placing an order
type PlaceOrderInput struct {
	ProductID       string `json:"productId" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
	DeliveryAddress string `json:"deliveryAddress" binding:"required"`
	ContactNumber   string `json:"contactNumber" binding:"required"`
	Notes           string `json:"notes"`
}
