package auth

import "carlot/internal/model"

// Identity is the verified account snapshot attached to a request once the
// jwt cookie checks out. Absent identity means an anonymous visitor.
type Identity struct {
	AccountID uint              `json:"account_id"`
	Firstname string            `json:"firstname"`
	Lastname  string            `json:"lastname"`
	Email     string            `json:"email"`
	Type      model.AccountType `json:"account_type"`
}

// IsStaff reports whether the identity may manage inventory.
func (i *Identity) IsStaff() bool {
	return i != nil && i.Type.HasMinimumRole(model.TypeEmployee)
}

// IsAdmin reports whether the identity may approve and reject submissions.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Type.HasMinimumRole(model.TypeAdmin)
}
