package repository

import (
	"database/sql"
	"testing"

	"financial-hub/internal/models"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSchema mirrors the production tables with SQLite column types so
// the repository's queries run unchanged against an in-memory database.
const testSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL
);
CREATE TABLE income (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	amount REAL NOT NULL,
	source TEXT NOT NULL,
	frequency TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE expenses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	amount REAL NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	date TEXT NOT NULL,
	recurring BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE TABLE debts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	balance REAL NOT NULL,
	interest_rate REAL NOT NULL DEFAULT 0,
	minimum_payment REAL NOT NULL DEFAULT 0,
	due_date INTEGER NOT NULL DEFAULT 1,
	type TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL
);
CREATE TABLE savings_goals (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	target_amount REAL NOT NULL DEFAULT 0,
	current_amount REAL NOT NULL DEFAULT 0,
	target_date TEXT NOT NULL DEFAULT '',
	monthly_contribution REAL NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE TABLE bills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	amount REAL NOT NULL DEFAULT 0,
	due_date INTEGER NOT NULL DEFAULT 1,
	frequency TEXT NOT NULL DEFAULT 'monthly',
	category TEXT NOT NULL DEFAULT 'Other',
	auto_pay BOOLEAN NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);
CREATE TABLE budget_plans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	plan_type TEXT NOT NULL,
	plan_data TEXT NOT NULL,
	created_at DATETIME NOT NULL
);
CREATE TABLE conversations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL,
	message TEXT NOT NULL,
	response TEXT NOT NULL,
	created_at DATETIME NOT NULL
);`

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(testSchema)
	require.NoError(t, err)

	return NewRepository(db)
}

func TestCreateAndFindUser(t *testing.T) {
	repo := newTestRepo(t)

	user := &models.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repo.CreateUser(user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.FindUserByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "Ada", byEmail.Name)

	byID, err := repo.FindUserByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "ada@example.com", byID.Email)
}

func TestFindUserMissReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	user, err := repo.FindUserByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = repo.FindUserByID(404)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestIncomeCRUD(t *testing.T) {
	repo := newTestRepo(t)

	income := &models.Income{UserID: 1, Amount: 5000, Source: "Employment", Frequency: "monthly"}
	require.NoError(t, repo.CreateIncome(income))
	assert.NotZero(t, income.ID)

	list, err := repo.ListIncome(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 5000.0, list[0].Amount)

	income.Amount = 5500
	require.NoError(t, repo.UpdateIncome(income))
	list, err = repo.ListIncome(1)
	require.NoError(t, err)
	assert.Equal(t, 5500.0, list[0].Amount)

	require.NoError(t, repo.DeleteIncome(income.ID))
	list, err = repo.ListIncome(1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListIncomeScopedToUser(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.CreateIncome(&models.Income{UserID: 1, Amount: 5000, Source: "Job", Frequency: "monthly"}))
	require.NoError(t, repo.CreateIncome(&models.Income{UserID: 2, Amount: 100, Source: "Side", Frequency: "weekly"}))

	list, err := repo.ListIncome(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Job", list[0].Source)
}

func TestExpenseCRUD(t *testing.T) {
	repo := newTestRepo(t)

	expense := &models.Expense{
		UserID: 1, Amount: 1500, Category: "Housing",
		Description: "Rent", Date: "2026-09-01", Recurring: true,
	}
	require.NoError(t, repo.CreateExpense(expense))

	list, err := repo.ListExpenses(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Rent", list[0].Description)
	assert.True(t, list[0].Recurring)
	assert.Equal(t, "2026-09-01", list[0].Date)

	expense.Amount = 1600
	require.NoError(t, repo.UpdateExpense(expense))
	list, _ = repo.ListExpenses(1)
	assert.Equal(t, 1600.0, list[0].Amount)

	require.NoError(t, repo.DeleteExpense(expense.ID))
	list, _ = repo.ListExpenses(1)
	assert.Empty(t, list)
}

func TestDebtsOrderedByInterestRate(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.CreateDebt(&models.Debt{UserID: 1, Name: "Car Loan", Balance: 12000, InterestRate: 6.5, MinimumPayment: 300}))
	require.NoError(t, repo.CreateDebt(&models.Debt{UserID: 1, Name: "Credit Card", Balance: 8000, InterestRate: 18, MinimumPayment: 160}))

	list, err := repo.ListDebts(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Credit Card", list[0].Name)
	assert.Equal(t, "Car Loan", list[1].Name)
}

func TestSavingsGoalCRUD(t *testing.T) {
	repo := newTestRepo(t)

	goal := &models.SavingsGoal{
		UserID: 1, Name: "Emergency Fund", TargetAmount: 10000,
		CurrentAmount: 2500, TargetDate: "2027-06-01", MonthlyContribution: 500,
	}
	require.NoError(t, repo.CreateSavingsGoal(goal))

	list, err := repo.ListSavingsGoals(1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10000.0, list[0].TargetAmount)

	goal.CurrentAmount = 3000
	require.NoError(t, repo.UpdateSavingsGoal(goal))
	list, _ = repo.ListSavingsGoals(1)
	assert.Equal(t, 3000.0, list[0].CurrentAmount)

	require.NoError(t, repo.DeleteSavingsGoal(goal.ID))
	list, _ = repo.ListSavingsGoals(1)
	assert.Empty(t, list)
}

func TestBillsOrderedByDueDate(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.CreateBill(&models.Bill{UserID: 1, Name: "Rent", Amount: 1500, DueDate: 28, Frequency: "monthly", Category: "Housing"}))
	require.NoError(t, repo.CreateBill(&models.Bill{UserID: 1, Name: "Electric", Amount: 120, DueDate: 5, Frequency: "monthly", Category: "Utilities", AutoPay: true}))

	list, err := repo.ListBills(1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Electric", list[0].Name)
	assert.True(t, list[0].AutoPay)
	assert.Equal(t, "Rent", list[1].Name)
}

func TestListBillsWithOwners(t *testing.T) {
	repo := newTestRepo(t)

	user := &models.User{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repo.CreateUser(user))
	require.NoError(t, repo.CreateBill(&models.Bill{UserID: user.ID, Name: "Electric", Amount: 120, DueDate: 5, Frequency: "monthly", Category: "Utilities"}))

	list, err := repo.ListBillsWithOwners()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Electric", list[0].Bill.Name)
	assert.Equal(t, "Ada", list[0].UserName)
	assert.Equal(t, "ada@example.com", list[0].UserEmail)
}

func TestConversationsNewestFirst(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveConversation(1, "first message", "first reply"))
	require.NoError(t, repo.SaveConversation(1, "second message", "second reply"))

	list, err := repo.ListConversations(1, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, c := range list {
		assert.Equal(t, int64(1), c.UserID)
	}

	limited, err := repo.ListConversations(1, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSaveBudgetPlan(t *testing.T) {
	repo := newTestRepo(t)

	require.NoError(t, repo.SaveBudgetPlan(1, "debt_payoff", `{"strategy":"avalanche"}`))

	var count int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM budget_plans WHERE user_id = 1`).Scan(&count))
	assert.Equal(t, 1, count)
}
