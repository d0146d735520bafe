package request

import "encoding/json"

// BusinessProfileRequest updates the business block printed on tickets
type BusinessProfileRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Location string `json:"location" binding:"max=255"`
	Phone    string `json:"phone" binding:"max=50"`
}

// SettingRequest stores a free-form value under a key
type SettingRequest struct {
	Value json.RawMessage `json:"value" binding:"required"`
}
