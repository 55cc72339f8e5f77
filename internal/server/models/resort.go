package models

// Resort is a geographic resort record.
type Resort struct {
	ID            int64   `json:"resort_id"`
	Name          string  `json:"name"`
	Lat           float64 `json:"lat"`
	Longitude     float64 `json:"longitude"`
	Description   string  `json:"description,omitempty"`
	Address       string  `json:"address,omitempty"`
	ContactNumber string  `json:"contact_number,omitempty"`
	Email         string  `json:"email,omitempty"`
	Website       string  `json:"website,omitempty"`
}
