package models

import "time"

// LocationPing is one position report sent by an authenticated user.
type LocationPing struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Lat        float64   `json:"lat"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}
