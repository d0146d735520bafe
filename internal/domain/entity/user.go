package entity

import "github.com/barberoil/fuelpos/internal/domain/enum"

// User is an operator of the device. The PIN only selects who is using the
// app; it is not a credential.
type User struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	PIN  string        `json:"pin"`
	Role enum.UserRole `json:"role"`
}

// IsAdmin reports whether the user may manage products, users and settings.
func (u *User) IsAdmin() bool {
	return u.Role == enum.UserRoleAdmin
}
