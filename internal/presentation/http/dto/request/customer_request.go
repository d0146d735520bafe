package request

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	AccountNumber string `json:"accountNumber" binding:"omitempty,max=64"`
	Name          string `json:"name" binding:"required,max=255"`
	Address       string `json:"address" binding:"max=255"`
	City          string `json:"city" binding:"max=100"`
	State         string `json:"state" binding:"max=2"`
	Zip           string `json:"zip" binding:"max=20"`
	Phone         string `json:"phone" binding:"max=50"`
	Email         string `json:"email" binding:"omitempty,email"`
	TaxExempt     bool   `json:"taxExempt"`
	Notes         string `json:"notes"`
}

// CustomerFilterRequest represents customer list parameters
type CustomerFilterRequest struct {
	Search  string `form:"search"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
