package model

import "time"

// Classification is a vehicle category (e.g. "Sedan"). Rows are created
// unapproved by staff and only become publicly visible once an admin approves
// them and at least one approved vehicle references them.
type Classification struct {
	ID         uint       `json:"classification_id" gorm:"primaryKey"`
	Name       string     `json:"classification_name" gorm:"size:100;not null"`
	Approved   bool       `json:"approved" gorm:"not null;default:false;index"`
	ApprovedBy *uint      `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	// Relations
	Vehicles []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:ClassificationID"`
}
