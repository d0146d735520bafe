package request

// LoginRequest selects a user by id and PIN
type LoginRequest struct {
	UserID string `json:"userId" binding:"required"`
	PIN    string `json:"pin" binding:"required"`
}
