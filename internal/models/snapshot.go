package models

// FinancialSnapshot is the aggregate read of all record kinds for one
// user at a point in time.
type FinancialSnapshot struct {
	Income   []Income      `json:"income"`
	Expenses []Expense     `json:"expenses"`
	Debts    []Debt        `json:"debts"`
	Savings  []SavingsGoal `json:"savings"`
	Bills    []Bill        `json:"bills"`
}

// FinancialSummary holds counts and totals derived from a snapshot, used
// as numeric context for the conversational model.
type FinancialSummary struct {
	IncomeCount      int     `json:"incomeCount"`
	TotalIncome      float64 `json:"totalIncome"`
	ExpenseCount     int     `json:"expenseCount"`
	TotalExpenses    float64 `json:"totalExpenses"`
	DebtCount        int     `json:"debtCount"`
	TotalDebt        float64 `json:"totalDebt"`
	SavingsGoalCount int     `json:"savingsGoalCount"`
	TotalSavings     float64 `json:"totalSavings"`
	NetCashFlow      float64 `json:"netCashFlow"`
}

// BudgetPlan is a persisted AI-generated plan.
type BudgetPlan struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	PlanType  string `json:"plan_type"`
	PlanData  string `json:"plan_data"`
	CreatedAt string `json:"created_at"`
}
