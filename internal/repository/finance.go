package repository

import (
	"fmt"
	"time"

	"financial-hub/internal/models"
)

// CreateIncome inserts an income source
func (r *Repository) CreateIncome(income *models.Income) error {
	income.CreatedAt = time.Now()
	query := `
		INSERT INTO income (user_id, amount, source, frequency, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.db.QueryRow(query, income.UserID, income.Amount, income.Source, income.Frequency, income.CreatedAt).
		Scan(&income.ID)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// ListIncome returns all income sources for a user
func (r *Repository) ListIncome(userID int64) ([]models.Income, error) {
	query := `
		SELECT id, user_id, amount, source, frequency, created_at
		FROM income
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list income: %w", err)
	}
	defer rows.Close()

	incomes := make([]models.Income, 0)
	for rows.Next() {
		var i models.Income
		if err := rows.Scan(&i.ID, &i.UserID, &i.Amount, &i.Source, &i.Frequency, &i.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		incomes = append(incomes, i)
	}
	return incomes, rows.Err()
}

// UpdateIncome updates an income source by id
func (r *Repository) UpdateIncome(income *models.Income) error {
	query := `
		UPDATE income SET amount = $1, source = $2, frequency = $3
		WHERE id = $4`
	if _, err := r.db.Exec(query, income.Amount, income.Source, income.Frequency, income.ID); err != nil {
		return fmt.Errorf("failed to update income: %w", err)
	}
	return nil
}

// DeleteIncome removes an income source by id
func (r *Repository) DeleteIncome(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM income WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return nil
}

// CreateExpense inserts an expense entry
func (r *Repository) CreateExpense(expense *models.Expense) error {
	expense.CreatedAt = time.Now()
	query := `
		INSERT INTO expenses (user_id, amount, category, description, date, recurring, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRow(query, expense.UserID, expense.Amount, expense.Category,
		expense.Description, expense.Date, expense.Recurring, expense.CreatedAt).
		Scan(&expense.ID)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListExpenses returns all expenses for a user
func (r *Repository) ListExpenses(userID int64) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, amount, category, description, date, recurring, created_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.Recurring, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense updates an expense by id
func (r *Repository) UpdateExpense(expense *models.Expense) error {
	query := `
		UPDATE expenses SET amount = $1, category = $2, description = $3, date = $4, recurring = $5
		WHERE id = $6`
	if _, err := r.db.Exec(query, expense.Amount, expense.Category, expense.Description,
		expense.Date, expense.Recurring, expense.ID); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by id
func (r *Repository) DeleteExpense(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// CreateDebt inserts a debt entry
func (r *Repository) CreateDebt(debt *models.Debt) error {
	debt.CreatedAt = time.Now()
	query := `
		INSERT INTO debts (user_id, name, balance, interest_rate, minimum_payment, due_date, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.db.QueryRow(query, debt.UserID, debt.Name, debt.Balance, debt.InterestRate,
		debt.MinimumPayment, debt.DueDate, debt.Type, debt.CreatedAt).
		Scan(&debt.ID)
	if err != nil {
		return fmt.Errorf("failed to create debt: %w", err)
	}
	return nil
}

// ListDebts returns all debts for a user, highest interest rate first
func (r *Repository) ListDebts(userID int64) ([]models.Debt, error) {
	query := `
		SELECT id, user_id, name, balance, interest_rate, minimum_payment, due_date, type, created_at
		FROM debts
		WHERE user_id = $1
		ORDER BY interest_rate DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	defer rows.Close()

	debts := make([]models.Debt, 0)
	for rows.Next() {
		var d models.Debt
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Balance, &d.InterestRate,
			&d.MinimumPayment, &d.DueDate, &d.Type, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

// UpdateDebt updates a debt by id
func (r *Repository) UpdateDebt(debt *models.Debt) error {
	query := `
		UPDATE debts SET name = $1, balance = $2, interest_rate = $3, minimum_payment = $4, type = $5
		WHERE id = $6`
	if _, err := r.db.Exec(query, debt.Name, debt.Balance, debt.InterestRate,
		debt.MinimumPayment, debt.Type, debt.ID); err != nil {
		return fmt.Errorf("failed to update debt: %w", err)
	}
	return nil
}

// DeleteDebt removes a debt by id
func (r *Repository) DeleteDebt(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM debts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete debt: %w", err)
	}
	return nil
}

// CreateSavingsGoal inserts a savings goal
func (r *Repository) CreateSavingsGoal(goal *models.SavingsGoal) error {
	goal.CreatedAt = time.Now()
	query := `
		INSERT INTO savings_goals (user_id, name, target_amount, current_amount, target_date, monthly_contribution, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.db.QueryRow(query, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount,
		goal.TargetDate, goal.MonthlyContribution, goal.CreatedAt).
		Scan(&goal.ID)
	if err != nil {
		return fmt.Errorf("failed to create savings goal: %w", err)
	}
	return nil
}

// ListSavingsGoals returns all savings goals for a user
func (r *Repository) ListSavingsGoals(userID int64) ([]models.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, monthly_contribution, created_at
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list savings goals: %w", err)
	}
	defer rows.Close()

	goals := make([]models.SavingsGoal, 0)
	for rows.Next() {
		var g models.SavingsGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.TargetDate, &g.MonthlyContribution, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateSavingsGoal updates a savings goal by id
func (r *Repository) UpdateSavingsGoal(goal *models.SavingsGoal) error {
	query := `
		UPDATE savings_goals SET name = $1, target_amount = $2, current_amount = $3, target_date = $4
		WHERE id = $5`
	if _, err := r.db.Exec(query, goal.Name, goal.TargetAmount, goal.CurrentAmount,
		goal.TargetDate, goal.ID); err != nil {
		return fmt.Errorf("failed to update savings goal: %w", err)
	}
	return nil
}

// DeleteSavingsGoal removes a savings goal by id
func (r *Repository) DeleteSavingsGoal(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM savings_goals WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete savings goal: %w", err)
	}
	return nil
}

// CreateBill inserts a bill
func (r *Repository) CreateBill(bill *models.Bill) error {
	bill.CreatedAt = time.Now()
	query := `
		INSERT INTO bills (user_id, name, amount, due_date, frequency, category, auto_pay, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.db.QueryRow(query, bill.UserID, bill.Name, bill.Amount, bill.DueDate,
		bill.Frequency, bill.Category, bill.AutoPay, bill.CreatedAt).
		Scan(&bill.ID)
	if err != nil {
		return fmt.Errorf("failed to create bill: %w", err)
	}
	return nil
}

// ListBills returns all bills for a user ordered by due date
func (r *Repository) ListBills(userID int64) ([]models.Bill, error) {
	query := `
		SELECT id, user_id, name, amount, due_date, frequency, category, auto_pay, created_at
		FROM bills
		WHERE user_id = $1
		ORDER BY due_date`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills := make([]models.Bill, 0)
	for rows.Next() {
		var b models.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate,
			&b.Frequency, &b.Category, &b.AutoPay, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// UpdateBill updates a bill by id
func (r *Repository) UpdateBill(bill *models.Bill) error {
	query := `
		UPDATE bills SET name = $1, amount = $2, due_date = $3, frequency = $4, category = $5, auto_pay = $6
		WHERE id = $7`
	if _, err := r.db.Exec(query, bill.Name, bill.Amount, bill.DueDate, bill.Frequency,
		bill.Category, bill.AutoPay, bill.ID); err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	return nil
}

// DeleteBill removes a bill by id
func (r *Repository) DeleteBill(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM bills WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	return nil
}

// BillWithOwner pairs a bill with its owner's contact details, used by the
// reminder job.
type BillWithOwner struct {
	Bill      models.Bill
	UserName  string
	UserEmail string
}

// ListBillsWithOwners returns every bill joined with its owner
func (r *Repository) ListBillsWithOwners() ([]BillWithOwner, error) {
	query := `
		SELECT b.id, b.user_id, b.name, b.amount, b.due_date, b.frequency, b.category, b.auto_pay, b.created_at,
		       u.name, u.email
		FROM bills b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.user_id, b.due_date`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills with owners: %w", err)
	}
	defer rows.Close()

	result := make([]BillWithOwner, 0)
	for rows.Next() {
		var bo BillWithOwner
		b := &bo.Bill
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate,
			&b.Frequency, &b.Category, &b.AutoPay, &b.CreatedAt,
			&bo.UserName, &bo.UserEmail); err != nil {
			return nil, fmt.Errorf("failed to scan bill with owner: %w", err)
		}
		result = append(result, bo)
	}
	return result, rows.Err()
}
