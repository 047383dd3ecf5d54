package models

import "time"

// SavingsGoal represents a savings target
type SavingsGoal struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"user_id"`
	Name                string    `json:"name"`
	TargetAmount        float64   `json:"target_amount"`
	CurrentAmount       float64   `json:"current_amount"`
	TargetDate          string    `json:"target_date,omitempty"` // Format: YYYY-MM-DD
	MonthlyContribution float64   `json:"monthly_contribution"`
	CreatedAt           time.Time `json:"created_at"`
}
