package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProductID       uuid.UUID `gorm:"type:uuid;not null;index"`
	BuyerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	SellerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Price           float64   `gorm:"not null"`
	Status          string    `gorm:"type:varchar(20);not null;index"`
	PaymentMethod   string    `gorm:"type:varchar(50)"`
	PaymentStatus   string    `gorm:"type:varchar(20);not null"`
	DeliveryAddress string    `gorm:"type:varchar(500)"`
	ContactNumber   string    `gorm:"type:varchar(20)"`
	Notes           *string   `gorm:"type:varchar(1000)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time     `gorm:"type:timestamp"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}
