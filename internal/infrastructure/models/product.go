package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SellerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"type:varchar(200);not null"`
	Description     string    `gorm:"type:varchar(2000)"`
	Category        string    `gorm:"type:varchar(50);not null;index"`
	Condition       string    `gorm:"type:varchar(20);not null"`
	MRP             *float64
	Price           float64 `gorm:"not null"`
	AgeInMonths     *int
	Status          string `gorm:"type:varchar(20);not null;index"`
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ApprovedAt      *time.Time `gorm:"type:timestamp"`
	RejectedAt      *time.Time `gorm:"type:timestamp"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	Images []ProductImage `gorm:"foreignKey:ProductID"`
}

// ProductImage keeps the ordered image references for a listing.
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	URL       string    `gorm:"type:varchar(2000);not null"`
	Position  int       `gorm:"not null"`
	CreatedAt time.Time
}
