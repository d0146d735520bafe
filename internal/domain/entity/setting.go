package entity

import "encoding/json"

// SettingBusiness is the settings key of the business profile.
const SettingBusiness = "business"

// Setting is a free-form value stored under a key.
type Setting struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// BusinessProfile is printed at the top of delivery tickets.
type BusinessProfile struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Phone    string `json:"phone,omitempty"`
}
