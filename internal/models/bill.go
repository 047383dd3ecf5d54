package models

import "time"

// Bill represents a recurring bill
type Bill struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Amount    float64   `json:"amount"`
	DueDate   int       `json:"due_date"` // day of month
	Frequency string    `json:"frequency"`
	Category  string    `json:"category"`
	AutoPay   bool      `json:"auto_pay"`
	CreatedAt time.Time `json:"created_at"`
}
