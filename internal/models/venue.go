package models

// Venue represents a store or restaurant location
type Venue struct {
	BaseModel

	Name     string `json:"name" db:"name"`
	Address  string `json:"address" db:"address"`
	Timezone string `json:"timezone" db:"timezone"`
	Currency string `json:"currency" db:"currency"`

	IsActive bool `json:"is_active" db:"is_active"`

	// Statistics
	DeviceCount int `json:"device_count,omitempty"`
	TableCount  int `json:"table_count,omitempty"`
}
