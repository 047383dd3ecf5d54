package models

import "time"

// Income represents a recurring income source
type Income struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Amount    float64   `json:"amount"`
	Source    string    `json:"source"`
	Frequency string    `json:"frequency"` // weekly, biweekly, monthly, annual
	CreatedAt time.Time `json:"created_at"`
}
