package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle is a single inventory row. Like classifications, vehicles start
// unapproved and stay off public pages until an admin approves them.
type Vehicle struct {
	ID               uint            `json:"inv_id" gorm:"primaryKey"`
	ClassificationID uint            `json:"classification_id" gorm:"not null;index"`
	Make             string          `json:"inv_make" gorm:"size:100;not null"`
	Model            string          `json:"inv_model" gorm:"size:100;not null"`
	Year             int             `json:"inv_year" gorm:"not null"`
	Description      string          `json:"inv_description" gorm:"type:text;not null"`
	Image            string          `json:"inv_image" gorm:"size:255"`
	Thumbnail        string          `json:"inv_thumbnail" gorm:"size:255"`
	Price            decimal.Decimal `json:"inv_price" gorm:"type:decimal(10,2);not null"`
	Miles            int             `json:"inv_miles" gorm:"not null"`
	Color            string          `json:"inv_color" gorm:"size:50;not null"`
	Approved         bool            `json:"approved" gorm:"not null;default:false;index"`
	ApprovedBy       *uint           `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Relations
	Classification Classification `json:"-" gorm:"foreignKey:ClassificationID"`
}

// VehicleWithClassification carries the joined classification name for
// listing views and the approval dashboard.
type VehicleWithClassification struct {
	Vehicle
	ClassificationName string `json:"classification_name"`
}
