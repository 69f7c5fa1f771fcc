package model

import "time"

// AccountType is the role assigned to an account.
type AccountType string

const (
	TypeClient   AccountType = "Client"
	TypeEmployee AccountType = "Employee"
	TypeAdmin    AccountType = "Admin"
)

// roleRank orders account types for minimum-role checks.
var roleRank = map[AccountType]int{
	TypeClient:   1,
	TypeEmployee: 2,
	TypeAdmin:    3,
}

// HasMinimumRole reports whether t grants at least the privileges of min.
// Unknown types rank below Client.
func (t AccountType) HasMinimumRole(min AccountType) bool {
	return roleRank[t] >= roleRank[min]
}

// Account represents a site account. New registrations are always Clients;
// Employee and Admin accounts are promoted out of band.
type Account struct {
	ID           uint        `json:"account_id" gorm:"primaryKey"`
	Firstname    string      `json:"firstname" gorm:"size:100;not null"`
	Lastname     string      `json:"lastname" gorm:"size:100;not null"`
	Email        string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Type         AccountType `json:"type" gorm:"type:varchar(20);not null;default:'Client';index"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
