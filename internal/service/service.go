// Package service holds the business logic between the HTTP handlers and
// the repository: record validation, monthly normalization, and assembly
// of the financial picture handed to the analysis prompts.
package service

import (
	"fmt"
	"strings"

	"financial-hub/internal/models"
	"financial-hub/internal/prompts"
	"financial-hub/internal/repository"
	"github.com/sirupsen/logrus"
)

// Service handles business logic
type Service struct {
	repo *repository.Repository
	log  *logrus.Logger
}

// NewService initializes a new service
func NewService(repo *repository.Repository, log *logrus.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// RegisterUser creates a new user; email must be unique
func (s *Service) RegisterUser(name, email string) (*models.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required")
	}

	existing, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user with email %s already exists", email)
	}

	user := &models.User{Name: name, Email: email}
	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// GetUser returns a user by id, or an error when absent
func (s *Service) GetUser(id int64) (*models.User, error) {
	user, err := s.repo.FindUserByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d not found", id)
	}
	return user, nil
}

// AddIncome validates and stores an income source
func (s *Service) AddIncome(income *models.Income) error {
	if income.Amount <= 0 {
		return fmt.Errorf("income amount must be greater than 0")
	}
	if income.Source == "" {
		income.Source = "Income"
	}
	if income.Frequency == "" {
		income.Frequency = "monthly"
	}
	if err := s.repo.CreateIncome(income); err != nil {
		return err
	}
	s.log.Infof("Income added for user %d: $%.2f/%s from %s", income.UserID, income.Amount, income.Frequency, income.Source)
	return nil
}

// ListIncome returns all income sources for a user
func (s *Service) ListIncome(userID int64) ([]models.Income, error) {
	return s.repo.ListIncome(userID)
}

// UpdateIncome updates an income source
func (s *Service) UpdateIncome(income *models.Income) error {
	if income.Amount <= 0 {
		return fmt.Errorf("income amount must be greater than 0")
	}
	return s.repo.UpdateIncome(income)
}

// DeleteIncome removes an income source
func (s *Service) DeleteIncome(id int64) error {
	return s.repo.DeleteIncome(id)
}

// AddExpense validates and stores an expense
func (s *Service) AddExpense(expense *models.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("expense amount must be greater than 0")
	}
	if expense.Category == "" {
		expense.Category = "Other"
	}
	if err := s.repo.CreateExpense(expense); err != nil {
		return err
	}
	s.log.Infof("Expense added for user %d: $%.2f for %s", expense.UserID, expense.Amount, expense.Description)
	return nil
}

// ListExpenses returns all expenses for a user
func (s *Service) ListExpenses(userID int64) ([]models.Expense, error) {
	return s.repo.ListExpenses(userID)
}

// UpdateExpense updates an expense
func (s *Service) UpdateExpense(expense *models.Expense) error {
	if expense.Amount <= 0 {
		return fmt.Errorf("expense amount must be greater than 0")
	}
	return s.repo.UpdateExpense(expense)
}

// DeleteExpense removes an expense
func (s *Service) DeleteExpense(id int64) error {
	return s.repo.DeleteExpense(id)
}

// AddDebt validates and stores a debt
func (s *Service) AddDebt(debt *models.Debt) error {
	if debt.Balance <= 0 {
		return fmt.Errorf("debt balance must be greater than 0")
	}
	if debt.MinimumPayment == 0 {
		debt.MinimumPayment = debt.Balance * 0.02
	}
	if debt.DueDate == 0 {
		debt.DueDate = 1
	}
	if err := s.repo.CreateDebt(debt); err != nil {
		return err
	}
	s.log.Infof("Debt added for user %d: %s $%.2f at %.2f%%", debt.UserID, debt.Name, debt.Balance, debt.InterestRate)
	return nil
}

// ListDebts returns all debts for a user
func (s *Service) ListDebts(userID int64) ([]models.Debt, error) {
	return s.repo.ListDebts(userID)
}

// UpdateDebt updates a debt
func (s *Service) UpdateDebt(debt *models.Debt) error {
	if debt.Balance <= 0 {
		return fmt.Errorf("debt balance must be greater than 0")
	}
	return s.repo.UpdateDebt(debt)
}

// DeleteDebt removes a debt
func (s *Service) DeleteDebt(id int64) error {
	return s.repo.DeleteDebt(id)
}

// AddSavingsGoal stores a savings goal
func (s *Service) AddSavingsGoal(goal *models.SavingsGoal) error {
	if goal.Name == "" {
		return fmt.Errorf("savings goal name is required")
	}
	if err := s.repo.CreateSavingsGoal(goal); err != nil {
		return err
	}
	s.log.Infof("Savings goal added for user %d: %s target $%.2f", goal.UserID, goal.Name, goal.TargetAmount)
	return nil
}

// ListSavingsGoals returns all savings goals for a user
func (s *Service) ListSavingsGoals(userID int64) ([]models.SavingsGoal, error) {
	return s.repo.ListSavingsGoals(userID)
}

// UpdateSavingsGoal updates a savings goal
func (s *Service) UpdateSavingsGoal(goal *models.SavingsGoal) error {
	return s.repo.UpdateSavingsGoal(goal)
}

// DeleteSavingsGoal removes a savings goal
func (s *Service) DeleteSavingsGoal(id int64) error {
	return s.repo.DeleteSavingsGoal(id)
}

// AddBill stores a bill with defaults filled in
func (s *Service) AddBill(bill *models.Bill) error {
	if bill.Name == "" {
		bill.Name = "Unnamed Bill"
	}
	if bill.DueDate == 0 {
		bill.DueDate = 1
	}
	if bill.Frequency == "" {
		bill.Frequency = "monthly"
	}
	if bill.Category == "" {
		bill.Category = "Other"
	}
	if err := s.repo.CreateBill(bill); err != nil {
		return err
	}
	s.log.Infof("Bill added for user %d: %s $%.2f due day %d", bill.UserID, bill.Name, bill.Amount, bill.DueDate)
	return nil
}

// ListBills returns all bills for a user
func (s *Service) ListBills(userID int64) ([]models.Bill, error) {
	return s.repo.ListBills(userID)
}

// UpdateBill updates a bill
func (s *Service) UpdateBill(bill *models.Bill) error {
	return s.repo.UpdateBill(bill)
}

// DeleteBill removes a bill
func (s *Service) DeleteBill(id int64) error {
	return s.repo.DeleteBill(id)
}

// SaveChat persists a chat exchange for a user
func (s *Service) SaveChat(userID int64, message, response string) error {
	return s.repo.SaveConversation(userID, message, response)
}

// ChatHistory returns recent chat exchanges, oldest first
func (s *Service) ChatHistory(userID int64, limit int) ([]models.Conversation, error) {
	conversations, err := s.repo.ListConversations(userID, limit)
	if err != nil {
		return nil, err
	}
	// The repository returns newest first; prompts want chronological order.
	for i, j := 0, len(conversations)-1; i < j; i, j = i+1, j-1 {
		conversations[i], conversations[j] = conversations[j], conversations[i]
	}
	return conversations, nil
}

// SavePlan persists an AI-generated plan for later retrieval
func (s *Service) SavePlan(userID int64, planType, planData string) error {
	return s.repo.SaveBudgetPlan(userID, planType, planData)
}

// MonthlyIncomeTotal normalizes income sources to a monthly figure.
// Unrecognized frequencies are treated as annual.
func MonthlyIncomeTotal(income []models.Income) float64 {
	var total float64
	for _, i := range income {
		switch i.Frequency {
		case "monthly":
			total += i.Amount
		case "biweekly":
			total += i.Amount * 2.17
		case "weekly":
			total += i.Amount * 4.33
		default:
			total += i.Amount / 12
		}
	}
	return total
}

// ExpenseBreakdown totals expenses and groups them by category
func ExpenseBreakdown(expenses []models.Expense) prompts.ExpenseBreakdown {
	byCategory := make(map[string]float64)
	var total float64
	var order []string

	for _, e := range expenses {
		if _, seen := byCategory[e.Category]; !seen {
			order = append(order, e.Category)
		}
		byCategory[e.Category] += e.Amount
		total += e.Amount
	}

	breakdown := prompts.ExpenseBreakdown{Total: total}
	for _, name := range order {
		breakdown.ByCategory = append(breakdown.ByCategory, prompts.CategoryAmount{
			Name:   name,
			Amount: byCategory[name],
		})
	}
	return breakdown
}

// DebtSummary totals balances and minimum payments across debts
func DebtSummary(debts []models.Debt) prompts.DebtSummary {
	summary := prompts.DebtSummary{}
	for _, d := range debts {
		summary.Total += d.Balance
		summary.MonthlyPayment += d.MinimumPayment
		summary.List = append(summary.List, prompts.DebtInfo{
			Name:           d.Name,
			Balance:        d.Balance,
			InterestRate:   d.InterestRate,
			MinimumPayment: d.MinimumPayment,
		})
	}
	return summary
}

// BuildPromptData assembles the complete financial picture used by the
// budget, debt, and savings analysis prompts.
func (s *Service) BuildPromptData(userID int64) (prompts.PromptData, error) {
	var data prompts.PromptData

	income, err := s.repo.ListIncome(userID)
	if err != nil {
		return data, err
	}
	expenses, err := s.repo.ListExpenses(userID)
	if err != nil {
		return data, err
	}
	debts, err := s.repo.ListDebts(userID)
	if err != nil {
		return data, err
	}
	goals, err := s.repo.ListSavingsGoals(userID)
	if err != nil {
		return data, err
	}
	bills, err := s.repo.ListBills(userID)
	if err != nil {
		return data, err
	}

	data.Income = MonthlyIncomeTotal(income)
	data.Expenses = ExpenseBreakdown(expenses)
	data.Debts = DebtSummary(debts)

	for _, b := range bills {
		data.Bills.Count++
		data.Bills.Total += b.Amount
	}

	for _, g := range goals {
		if strings.Contains(strings.ToLower(g.Name), "emergency") {
			data.Emergency = &prompts.GoalProgress{
				Target:  g.TargetAmount,
				Current: g.CurrentAmount,
			}
			break
		}
	}

	return data, nil
}

// UserOverview builds the compact financial picture for chat prompts.
// Returns nil when the user has no data at all.
func (s *Service) UserOverview(userID int64) (*prompts.UserOverview, error) {
	income, err := s.repo.ListIncome(userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpenses(userID)
	if err != nil {
		return nil, err
	}
	debts, err := s.repo.ListDebts(userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.repo.ListSavingsGoals(userID)
	if err != nil {
		return nil, err
	}

	if len(income) == 0 && len(expenses) == 0 && len(debts) == 0 && len(goals) == 0 {
		return nil, nil
	}

	overview := &prompts.UserOverview{Income: MonthlyIncomeTotal(income)}
	for _, e := range expenses {
		overview.Expenses += e.Amount
	}
	for _, d := range debts {
		overview.Debt += d.Balance
	}
	for _, g := range goals {
		overview.Savings += g.CurrentAmount
	}
	return overview, nil
}
