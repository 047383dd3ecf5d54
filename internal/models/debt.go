package models

import "time"

// Debt represents an outstanding debt
type Debt struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Name           string    `json:"name"`
	Balance        float64   `json:"balance"`
	InterestRate   float64   `json:"interest_rate"`
	MinimumPayment float64   `json:"minimum_payment"`
	DueDate        int       `json:"due_date"` // day of month
	Type           string    `json:"type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
