package models

import "time"

// Expense represents a single expense entry
type Expense struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // Format: YYYY-MM-DD
	Recurring   bool      `json:"recurring"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpenseCategories enumerates the categories offered by the UI.
// The store itself does not enforce them.
var ExpenseCategories = []string{
	"Housing", "Transportation", "Food", "Utilities", "Insurance",
	"Healthcare", "Entertainment", "Shopping", "Personal",
	"Debt Payments", "Other",
}
