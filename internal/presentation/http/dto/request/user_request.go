package request

// UserRequest represents a user create or update request
type UserRequest struct {
	ID   string `json:"id" binding:"omitempty,max=64"`
	Name string `json:"name" binding:"required,max=255"`
	PIN  string `json:"pin" binding:"required,max=16"`
	Role string `json:"role" binding:"omitempty,oneof=admin driver"`
}
