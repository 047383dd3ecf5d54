package conversation

import (
	"context"
	"errors"
	"testing"
	"time"

	"financial-hub/internal/ai"
	"financial-hub/internal/models"
	"financial-hub/internal/prompts"
	"financial-hub/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	commands []models.Command
	lastCtx  *models.ConversationContext
}

func (f *fakeParser) ParseCommands(_ context.Context, _ string, convCtx *models.ConversationContext) []models.Command {
	f.lastCtx = convCtx
	return f.commands
}

type fakeRunner struct {
	results  []models.ActionResult
	snapshot *models.FinancialSnapshot
	err      error
}

func (f *fakeRunner) ExecuteCommands([]models.Command, int64) []models.ActionResult {
	return f.results
}

func (f *fakeRunner) GetFinancialSnapshot(int64) (*models.FinancialSnapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.snapshot == nil {
		return &models.FinancialSnapshot{}, nil
	}
	return f.snapshot, nil
}

type fakeResponder struct {
	reply   string
	err     error
	called  bool
	message string
}

func (f *fakeResponder) Chat(_ context.Context, message string, _ []models.Conversation, _ *prompts.UserOverview) (*ai.Response, error) {
	f.called = true
	f.message = message
	if f.err != nil {
		return nil, f.err
	}
	return &ai.Response{Text: f.reply}, nil
}

type fakeSaver struct {
	saved [][2]string
}

func (f *fakeSaver) SaveConversation(_ int64, message, response string) error {
	f.saved = append(f.saved, [2]string{message, response})
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestManager(parser Parser, runner Runner, responder Responder, saver Saver) *Manager {
	return NewManager(parser, runner, responder, session.NewMemoryStore(time.Hour), saver, testLogger())
}

func TestProcessMessageExecutesAndConfirms(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{
		{Action: models.ActionCreateIncome, Confidence: 0.95},
		{Action: models.ActionCreateExpense, Confidence: 0.9},
	}}
	runner := &fakeRunner{results: []models.ActionResult{
		{Success: true, Action: models.ActionCreateIncome, Message: "✅ Added income: $5000/monthly from Employment"},
		{Success: true, Action: models.ActionCreateExpense, Message: "✅ Added expense: $1500 for Rent (Housing)"},
	}}
	responder := &fakeResponder{reply: "Great start! You have $3500 left each month."}

	m := newTestManager(parser, runner, responder, &fakeSaver{})
	resp := m.ProcessMessage(context.Background(), 1, "I make $5000 per month and my rent is $1500")

	require.True(t, resp.Success)
	assert.Equal(t, 2, resp.ActionCount)
	assert.Contains(t, resp.Message, "✅ Added income: $5000/monthly from Employment")
	assert.Contains(t, resp.Message, "✅ Added expense: $1500 for Rent (Housing)")
	assert.Empty(t, resp.Errors)
	// No CONVERSATION command and no needsAIResponse flag, so the
	// narrative reply is skipped.
	assert.False(t, responder.called)
}

func TestProcessMessageGeneratesNarrativeWhenFlagged(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{{Action: models.ActionGenerateBudgetAnalysis}}}
	runner := &fakeRunner{
		results: []models.ActionResult{{
			Success: true, Action: models.ActionGenerateBudgetAnalysis,
			Message: "📊 Budget Analysis: Monthly income $5000.00, expenses $3000.00, surplus $2000.00",
			NeedsAIResponse: true,
		}},
		snapshot: &models.FinancialSnapshot{
			Income:   []models.Income{{Amount: 5000}},
			Expenses: []models.Expense{{Amount: 3000}},
		},
	}
	responder := &fakeResponder{reply: "Your surplus gives you room to save."}

	m := newTestManager(parser, runner, responder, &fakeSaver{})
	resp := m.ProcessMessage(context.Background(), 1, "analyze my budget")

	require.True(t, resp.Success)
	assert.True(t, responder.called)
	assert.Contains(t, resp.Message, "📊 Budget Analysis")
	assert.Contains(t, resp.Message, "Your surplus gives you room to save.")
	assert.Contains(t, responder.message, "Actions just taken:")
}

func TestProcessMessageConversationCommandTriggersNarrative(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{{Action: models.ActionConversation}}}
	runner := &fakeRunner{results: []models.ActionResult{}}
	responder := &fakeResponder{reply: "Hello! How can I help with your finances?"}

	m := newTestManager(parser, runner, responder, &fakeSaver{})
	resp := m.ProcessMessage(context.Background(), 1, "hi")

	require.True(t, resp.Success)
	assert.Equal(t, "Hello! How can I help with your finances?", resp.Message)
}

func TestProcessMessageFallbackWhenNothingHappens(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{}}
	runner := &fakeRunner{results: []models.ActionResult{}}
	responder := &fakeResponder{}

	m := newTestManager(parser, runner, responder, &fakeSaver{})
	resp := m.ProcessMessage(context.Background(), 1, "…")

	require.True(t, resp.Success)
	assert.Equal(t, "I understand. How else can I help you?", resp.Message)
}

func TestProcessMessageCollectsFailureErrors(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{{Action: models.ActionCreateIncome}}}
	runner := &fakeRunner{results: []models.ActionResult{
		{Success: false, Action: models.ActionCreateIncome, Error: "db down"},
	}}

	m := newTestManager(parser, runner, &fakeResponder{}, &fakeSaver{})
	resp := m.ProcessMessage(context.Background(), 1, "I make $5000")

	require.True(t, resp.Success)
	assert.Equal(t, 0, resp.ActionCount)
	assert.Equal(t, []string{"db down"}, resp.Errors)
}

func TestProcessMessageApologizesOnNarrativeFailure(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{{Action: models.ActionConversation}}}
	runner := &fakeRunner{results: []models.ActionResult{}}
	responder := &fakeResponder{err: errors.New("model unavailable")}

	m := newTestManager(parser, runner, responder, &fakeSaver{})
	resp := m.ProcessMessage(context.Background(), 1, "hi")

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "I'm sorry, I encountered an error")
}

func TestConversationContextAccumulates(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{}}
	runner := &fakeRunner{results: []models.ActionResult{}}

	m := newTestManager(parser, runner, &fakeResponder{}, &fakeSaver{})
	m.ProcessMessage(context.Background(), 1, "first")
	m.ProcessMessage(context.Background(), 1, "second")

	messages, err := m.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, messages, 4) // two user turns, two assistant turns
	assert.Equal(t, "user", messages[0].Role)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "assistant", messages[1].Role)
	assert.Equal(t, "second", messages[2].Content)

	// The second parse sees the context with the first exchange in it.
	require.NotNil(t, parser.lastCtx)
	assert.GreaterOrEqual(t, len(parser.lastCtx.Messages), 3)
}

func TestClearConversation(t *testing.T) {
	m := newTestManager(&fakeParser{}, &fakeRunner{}, &fakeResponder{}, &fakeSaver{})
	m.ProcessMessage(context.Background(), 1, "hello")

	require.NoError(t, m.ClearConversation(context.Background(), 1))

	messages, err := m.History(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSaveConversationPersistsPairs(t *testing.T) {
	parser := &fakeParser{commands: []models.Command{}}
	runner := &fakeRunner{results: []models.ActionResult{}}
	saver := &fakeSaver{}

	m := newTestManager(parser, runner, &fakeResponder{}, saver)
	m.ProcessMessage(context.Background(), 1, "hello")

	require.NoError(t, m.SaveConversation(context.Background(), 1))
	require.Len(t, saver.saved, 1)
	assert.Equal(t, "hello", saver.saved[0][0])
}

func TestSaveConversationNoopWithoutContext(t *testing.T) {
	saver := &fakeSaver{}
	m := newTestManager(&fakeParser{}, &fakeRunner{}, &fakeResponder{}, saver)

	require.NoError(t, m.SaveConversation(context.Background(), 42))
	assert.Empty(t, saver.saved)
}

func TestGuideNewUser(t *testing.T) {
	m := newTestManager(&fakeParser{}, &fakeRunner{}, &fakeResponder{}, &fakeSaver{})

	welcome, err := m.GuideNewUser(1)
	require.NoError(t, err)
	assert.True(t, welcome.IsNewUser)
	assert.Contains(t, welcome.Message, "Welcome")
}

func TestGuideNewUserWithData(t *testing.T) {
	runner := &fakeRunner{snapshot: &models.FinancialSnapshot{
		Income: []models.Income{{Amount: 5000}},
	}}
	m := newTestManager(&fakeParser{}, runner, &fakeResponder{}, &fakeSaver{})

	welcome, err := m.GuideNewUser(1)
	require.NoError(t, err)
	assert.False(t, welcome.IsNewUser)
	assert.Empty(t, welcome.Message)
}

func TestSuggestNextActions(t *testing.T) {
	runner := &fakeRunner{snapshot: &models.FinancialSnapshot{
		Income:   []models.Income{{Amount: 5000}},
		Expenses: []models.Expense{{Amount: 1500}},
		Debts:    []models.Debt{{Balance: 8000}},
	}}
	m := newTestManager(&fakeParser{}, runner, &fakeResponder{}, &fakeSaver{})

	suggestions, err := m.SuggestNextActions(1)
	require.NoError(t, err)
	assert.Contains(t, suggestions, "Generate a debt payoff plan")
	assert.Contains(t, suggestions, "Set savings goals")
	assert.Contains(t, suggestions, "Analyze your budget")
	assert.NotContains(t, suggestions, "Add your income sources")
}

func TestBuildFinancialSummary(t *testing.T) {
	summary := BuildFinancialSummary(&models.FinancialSnapshot{
		Income:   []models.Income{{Amount: 5000}, {Amount: 500}},
		Expenses: []models.Expense{{Amount: 3000}},
		Debts:    []models.Debt{{Balance: 8000}},
		Savings:  []models.SavingsGoal{{CurrentAmount: 1200}},
	})

	assert.Equal(t, 2, summary.IncomeCount)
	assert.Equal(t, 5500.0, summary.TotalIncome)
	assert.Equal(t, 3000.0, summary.TotalExpenses)
	assert.Equal(t, 8000.0, summary.TotalDebt)
	assert.Equal(t, 1200.0, summary.TotalSavings)
	assert.Equal(t, 2500.0, summary.NetCashFlow)
}
