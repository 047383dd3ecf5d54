// Package executor maps structured commands onto store mutations and
// reads. Failures are reported in the result, never raised to the
// caller, so one bad command cannot abort its siblings.
package executor

import (
	"fmt"
	"time"

	"financial-hub/internal/interpreter"
	"financial-hub/internal/models"
	"github.com/sirupsen/logrus"
)

// Store is the persistence surface the executor needs. Implemented by
// repository.Repository.
type Store interface {
	CreateIncome(*models.Income) error
	CreateExpense(*models.Expense) error
	CreateDebt(*models.Debt) error
	CreateSavingsGoal(*models.SavingsGoal) error
	CreateBill(*models.Bill) error
	ListIncome(userID int64) ([]models.Income, error)
	ListExpenses(userID int64) ([]models.Expense, error)
	ListDebts(userID int64) ([]models.Debt, error)
	ListSavingsGoals(userID int64) ([]models.SavingsGoal, error)
	ListBills(userID int64) ([]models.Bill, error)
}

// Executor executes commands against the store
type Executor struct {
	store Store
	log   *logrus.Logger

	// strictValidation rejects commands with missing required fields
	// before execution. Off reproduces the historical main path, which
	// relied on per-create checks only.
	strictValidation bool
}

// NewExecutor initializes a new executor
func NewExecutor(store Store, log *logrus.Logger, strictValidation bool) *Executor {
	return &Executor{store: store, log: log, strictValidation: strictValidation}
}

// ExecuteCommand runs a single command for a user
func (e *Executor) ExecuteCommand(cmd models.Command, userID int64) models.ActionResult {
	if userID <= 0 {
		return models.ActionResult{Success: false, Error: "User ID is required"}
	}

	e.log.Infof("Executing %s with confidence %.2f for user %d", cmd.Action, cmd.Confidence, userID)

	if e.strictValidation {
		if v := interpreter.ValidateCommand(cmd); !v.Valid {
			return models.ActionResult{
				Success: false,
				Action:  cmd.Action,
				Message: v.Message,
			}
		}
	}

	switch cmd.Action {
	case models.ActionCreateIncome:
		return e.createIncome(userID, cmd.Data)
	case models.ActionCreateExpense:
		return e.createExpense(userID, cmd.Data)
	case models.ActionCreateDebt:
		return e.createDebt(userID, cmd.Data)
	case models.ActionCreateSavingsGoal:
		return e.createSavingsGoal(userID, cmd.Data)
	case models.ActionCreateBill:
		return e.createBill(userID, cmd.Data)
	case models.ActionGenerateBudgetAnalysis:
		return e.generateBudgetAnalysis(userID)
	case models.ActionGenerateDebtPlan:
		return e.generateDebtPlan(userID)
	case models.ActionGenerateSavingsPlan:
		return e.generateSavingsPlan(userID)
	case models.ActionAskQuestion:
		question := cmd.Data.Question
		if question == "" {
			question = "I need more information. Can you provide more details?"
		}
		return models.ActionResult{
			Success:       true,
			Action:        models.ActionAskQuestion,
			Message:       question,
			NeedsResponse: true,
		}
	case models.ActionConversation:
		return models.ActionResult{
			Success:         true,
			Action:          models.ActionConversation,
			Message:         "I understand. How can I help you with your finances?",
			NeedsAIResponse: true,
		}
	default:
		return models.ActionResult{
			Success: false,
			Error:   fmt.Sprintf("Unknown action: %s", cmd.Action),
		}
	}
}

// ExecuteCommands runs commands in sequence. Each command commits (or
// fails) independently; there is no rollback across commands.
func (e *Executor) ExecuteCommands(commands []models.Command, userID int64) []models.ActionResult {
	results := make([]models.ActionResult, 0, len(commands))
	for _, cmd := range commands {
		result := e.ExecuteCommand(cmd, userID)
		result.Command = cmd.Action
		result.Confidence = cmd.Confidence
		results = append(results, result)
	}
	return results
}

func (e *Executor) createIncome(userID int64, data models.CommandData) models.ActionResult {
	source := data.Source
	if source == "" {
		source = "Income"
	}
	frequency := data.Frequency
	if frequency == "" {
		frequency = "monthly"
	}

	if data.Amount == nil || *data.Amount <= 0 {
		return models.ActionResult{
			Success: false,
			Action:  models.ActionCreateIncome,
			Message: "❌ Income amount is required and must be greater than 0",
		}
	}

	income := &models.Income{
		UserID:    userID,
		Amount:    *data.Amount,
		Source:    source,
		Frequency: frequency,
	}
	if err := e.store.CreateIncome(income); err != nil {
		e.log.Errorf("Error executing CREATE_INCOME: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionCreateIncome, Error: err.Error()}
	}

	return models.ActionResult{
		Success: true,
		Action:  models.ActionCreateIncome,
		ID:      income.ID,
		Message: fmt.Sprintf("✅ Added income: $%v/%s from %s", *data.Amount, frequency, source),
		Data: map[string]interface{}{
			"id": income.ID, "source": source, "amount": *data.Amount, "frequency": frequency,
		},
	}
}

func (e *Executor) createExpense(userID int64, data models.CommandData) models.ActionResult {
	date := data.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	if data.Amount == nil || *data.Amount <= 0 {
		return models.ActionResult{
			Success: false,
			Action:  models.ActionCreateExpense,
			Message: "❌ Expense amount is required and must be greater than 0",
		}
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      *data.Amount,
		Category:    data.Category,
		Description: data.Description,
		Date:        date,
		Recurring:   data.Recurring,
	}
	if err := e.store.CreateExpense(expense); err != nil {
		e.log.Errorf("Error executing CREATE_EXPENSE: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionCreateExpense, Error: err.Error()}
	}

	return models.ActionResult{
		Success: true,
		Action:  models.ActionCreateExpense,
		ID:      expense.ID,
		Message: fmt.Sprintf("✅ Added expense: $%v for %s (%s)", *data.Amount, data.Description, data.Category),
		Data: map[string]interface{}{
			"id": expense.ID, "description": data.Description, "amount": *data.Amount,
			"category": data.Category, "date": date,
		},
	}
}

func (e *Executor) createDebt(userID int64, data models.CommandData) models.ActionResult {
	if data.Balance == nil || *data.Balance <= 0 {
		return models.ActionResult{
			Success: false,
			Action:  models.ActionCreateDebt,
			Message: "❌ Debt balance is required and must be greater than 0",
		}
	}

	balance := *data.Balance
	interestRate := 0.0
	if data.InterestRate != nil {
		interestRate = *data.InterestRate
	}
	// Default minimum payment is 2% of the balance.
	minimumPayment := balance * 0.02
	if data.MinimumPayment != nil {
		minimumPayment = *data.MinimumPayment
	}
	dueDate := 1
	if data.DueDate != nil {
		dueDate = *data.DueDate
	}

	debt := &models.Debt{
		UserID:         userID,
		Name:           data.Name,
		Balance:        balance,
		InterestRate:   interestRate,
		MinimumPayment: minimumPayment,
		DueDate:        dueDate,
	}
	if err := e.store.CreateDebt(debt); err != nil {
		e.log.Errorf("Error executing CREATE_DEBT: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionCreateDebt, Error: err.Error()}
	}

	message := fmt.Sprintf("✅ Added debt: %s - $%v", data.Name, balance)
	if interestRate > 0 {
		message += fmt.Sprintf(" at %v%% APR", interestRate)
	}

	return models.ActionResult{
		Success: true,
		Action:  models.ActionCreateDebt,
		ID:      debt.ID,
		Message: message,
		Data: map[string]interface{}{
			"id": debt.ID, "name": data.Name, "balance": balance,
			"interestRate": interestRate, "minimumPayment": minimumPayment,
		},
	}
}

func (e *Executor) createSavingsGoal(userID int64, data models.CommandData) models.ActionResult {
	// Unlike income/expense/debt, savings goals are not amount-checked
	// here; the original never enforced targetAmount > 0.
	var targetAmount, currentAmount, monthlyContribution float64
	if data.TargetAmount != nil {
		targetAmount = *data.TargetAmount
	}
	if data.CurrentAmount != nil {
		currentAmount = *data.CurrentAmount
	}
	if data.MonthlyContribution != nil {
		monthlyContribution = *data.MonthlyContribution
	}

	goal := &models.SavingsGoal{
		UserID:              userID,
		Name:                data.Name,
		TargetAmount:        targetAmount,
		CurrentAmount:       currentAmount,
		TargetDate:          data.TargetDate,
		MonthlyContribution: monthlyContribution,
	}
	if err := e.store.CreateSavingsGoal(goal); err != nil {
		e.log.Errorf("Error executing CREATE_SAVINGS_GOAL: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionCreateSavingsGoal, Error: err.Error()}
	}

	return models.ActionResult{
		Success: true,
		Action:  models.ActionCreateSavingsGoal,
		ID:      goal.ID,
		Message: fmt.Sprintf("✅ Added savings goal: %s - Target $%v", data.Name, targetAmount),
		Data: map[string]interface{}{
			"id": goal.ID, "name": data.Name, "targetAmount": targetAmount,
			"currentAmount": currentAmount, "targetDate": data.TargetDate,
		},
	}
}

func (e *Executor) createBill(userID int64, data models.CommandData) models.ActionResult {
	name := data.Name
	if name == "" {
		name = "Unnamed Bill"
	}
	var amount float64
	if data.Amount != nil {
		amount = *data.Amount
	}
	dueDate := 1
	if data.DueDate != nil {
		dueDate = *data.DueDate
	}
	frequency := data.Frequency
	if frequency == "" {
		frequency = "monthly"
	}
	category := data.Category
	if category == "" {
		category = "Other"
	}

	bill := &models.Bill{
		UserID:    userID,
		Name:      name,
		Amount:    amount,
		DueDate:   dueDate,
		Frequency: frequency,
		Category:  category,
		AutoPay:   data.AutoPay,
	}
	if err := e.store.CreateBill(bill); err != nil {
		e.log.Errorf("Error executing CREATE_BILL: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionCreateBill, Error: err.Error()}
	}

	return models.ActionResult{
		Success: true,
		Action:  models.ActionCreateBill,
		ID:      bill.ID,
		Message: fmt.Sprintf("✅ Added bill: %s - $%v/%s (Due: %dth)", name, amount, frequency, dueDate),
		Data: map[string]interface{}{
			"id": bill.ID, "name": name, "amount": amount,
			"dueDate": dueDate, "frequency": frequency,
		},
	}
}

// monthlyMultiplier normalizes an income frequency to a per-month factor.
// Anything unrecognized is treated as annual.
func monthlyMultiplier(frequency string) float64 {
	switch frequency {
	case "monthly":
		return 1
	case "biweekly":
		return 2.17
	case "weekly":
		return 4.33
	default:
		return 1.0 / 12
	}
}

func (e *Executor) generateBudgetAnalysis(userID int64) models.ActionResult {
	income, err := e.store.ListIncome(userID)
	if err != nil {
		e.log.Errorf("Error executing GENERATE_BUDGET_ANALYSIS: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionGenerateBudgetAnalysis, Error: err.Error()}
	}
	expenses, err := e.store.ListExpenses(userID)
	if err != nil {
		e.log.Errorf("Error executing GENERATE_BUDGET_ANALYSIS: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionGenerateBudgetAnalysis, Error: err.Error()}
	}

	var totalIncome float64
	for _, i := range income {
		totalIncome += i.Amount * monthlyMultiplier(i.Frequency)
	}
	var totalExpenses float64
	for _, ex := range expenses {
		totalExpenses += ex.Amount
	}

	direction := "surplus"
	if totalIncome <= totalExpenses {
		direction = "deficit"
	}
	diff := totalIncome - totalExpenses
	if diff < 0 {
		diff = -diff
	}

	return models.ActionResult{
		Success: true,
		Action:  models.ActionGenerateBudgetAnalysis,
		Message: fmt.Sprintf("📊 Budget Analysis: Monthly income $%.2f, expenses $%.2f, %s $%.2f",
			totalIncome, totalExpenses, direction, diff),
		Data: map[string]interface{}{
			"totalIncome":   totalIncome,
			"totalExpenses": totalExpenses,
			"balance":       totalIncome - totalExpenses,
		},
		NeedsAIResponse: true,
	}
}

func (e *Executor) generateDebtPlan(userID int64) models.ActionResult {
	debts, err := e.store.ListDebts(userID)
	if err != nil {
		e.log.Errorf("Error executing GENERATE_DEBT_PLAN: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionGenerateDebtPlan, Error: err.Error()}
	}

	if len(debts) == 0 {
		return models.ActionResult{
			Success:       false,
			Action:        models.ActionGenerateDebtPlan,
			Message:       "❌ No debts found. Add your debts first.",
			NeedsMoreData: true,
		}
	}

	return models.ActionResult{
		Success:         true,
		Action:          models.ActionGenerateDebtPlan,
		Message:         fmt.Sprintf("📋 Generating debt payoff plan for %d debt(s)...", len(debts)),
		Data:            map[string]interface{}{"debtCount": len(debts), "debts": debts},
		NeedsAIResponse: true,
	}
}

func (e *Executor) generateSavingsPlan(userID int64) models.ActionResult {
	goals, err := e.store.ListSavingsGoals(userID)
	if err != nil {
		e.log.Errorf("Error executing GENERATE_SAVINGS_PLAN: %v", err)
		return models.ActionResult{Success: false, Action: models.ActionGenerateSavingsPlan, Error: err.Error()}
	}

	if len(goals) == 0 {
		return models.ActionResult{
			Success:       false,
			Action:        models.ActionGenerateSavingsPlan,
			Message:       "❌ No savings goals found. Add your goals first.",
			NeedsMoreData: true,
		}
	}

	return models.ActionResult{
		Success:         true,
		Action:          models.ActionGenerateSavingsPlan,
		Message:         fmt.Sprintf("💰 Generating savings plan for %d goal(s)...", len(goals)),
		Data:            map[string]interface{}{"goalCount": len(goals), "goals": goals},
		NeedsAIResponse: true,
	}
}

// GetFinancialSnapshot reads every record kind for a user. Always a
// fresh read; nothing is cached.
func (e *Executor) GetFinancialSnapshot(userID int64) (*models.FinancialSnapshot, error) {
	income, err := e.store.ListIncome(userID)
	if err != nil {
		return nil, err
	}
	expenses, err := e.store.ListExpenses(userID)
	if err != nil {
		return nil, err
	}
	debts, err := e.store.ListDebts(userID)
	if err != nil {
		return nil, err
	}
	savings, err := e.store.ListSavingsGoals(userID)
	if err != nil {
		return nil, err
	}
	bills, err := e.store.ListBills(userID)
	if err != nil {
		return nil, err
	}

	return &models.FinancialSnapshot{
		Income:   income,
		Expenses: expenses,
		Debts:    debts,
		Savings:  savings,
		Bills:    bills,
	}, nil
}
