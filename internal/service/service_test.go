package service

import (
	"testing"

	"financial-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyIncomeTotal(t *testing.T) {
	income := []models.Income{
		{Amount: 5000, Frequency: "monthly"},
		{Amount: 1000, Frequency: "biweekly"},
		{Amount: 200, Frequency: "weekly"},
		{Amount: 12000, Frequency: "annual"},
	}

	// 5000 + 1000*2.17 + 200*4.33 + 12000/12 = 9036
	assert.InDelta(t, 9036.0, MonthlyIncomeTotal(income), 0.001)
}

func TestMonthlyIncomeTotalTreatsUnknownAsAnnual(t *testing.T) {
	assert.InDelta(t, 100.0, MonthlyIncomeTotal([]models.Income{{Amount: 1200, Frequency: "quarterly"}}), 0.001)
}

func TestMonthlyIncomeTotalEmpty(t *testing.T) {
	assert.Zero(t, MonthlyIncomeTotal(nil))
}

func TestExpenseBreakdownGroupsByCategory(t *testing.T) {
	expenses := []models.Expense{
		{Amount: 1500, Category: "Housing"},
		{Amount: 300, Category: "Food"},
		{Amount: 100, Category: "Food"},
	}

	breakdown := ExpenseBreakdown(expenses)

	assert.Equal(t, 1900.0, breakdown.Total)
	require.Len(t, breakdown.ByCategory, 2)
	assert.Equal(t, "Housing", breakdown.ByCategory[0].Name)
	assert.Equal(t, 1500.0, breakdown.ByCategory[0].Amount)
	assert.Equal(t, "Food", breakdown.ByCategory[1].Name)
	assert.Equal(t, 400.0, breakdown.ByCategory[1].Amount)
}

func TestDebtSummaryTotals(t *testing.T) {
	debts := []models.Debt{
		{Name: "Credit Card", Balance: 8000, InterestRate: 18, MinimumPayment: 160},
		{Name: "Car Loan", Balance: 12000, InterestRate: 6.5, MinimumPayment: 300},
	}

	summary := DebtSummary(debts)

	assert.Equal(t, 20000.0, summary.Total)
	assert.Equal(t, 460.0, summary.MonthlyPayment)
	require.Len(t, summary.List, 2)
	assert.Equal(t, "Credit Card", summary.List[0].Name)
	assert.Equal(t, 18.0, summary.List[0].InterestRate)
}
