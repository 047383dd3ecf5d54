// Package conversation runs the agent pipeline: parse the message into
// commands, execute them, optionally generate a narrative reply, and
// maintain the per-user conversation context.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"financial-hub/internal/ai"
	"financial-hub/internal/models"
	"financial-hub/internal/prompts"
	"financial-hub/internal/session"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Parser turns user input into commands. Implemented by
// interpreter.Interpreter.
type Parser interface {
	ParseCommands(ctx context.Context, userInput string, convCtx *models.ConversationContext) []models.Command
}

// Runner executes commands and reads financial state. Implemented by
// executor.Executor.
type Runner interface {
	ExecuteCommands(commands []models.Command, userID int64) []models.ActionResult
	GetFinancialSnapshot(userID int64) (*models.FinancialSnapshot, error)
}

// Responder generates conversational replies. Implemented by ai.Service.
type Responder interface {
	Chat(ctx context.Context, message string, history []models.Conversation, userData *prompts.UserOverview) (*ai.Response, error)
}

// Saver persists message/response pairs. Implemented by
// repository.Repository.
type Saver interface {
	SaveConversation(userID int64, message, response string) error
}

// Manager orchestrates the agent pipeline
type Manager struct {
	parser    Parser
	runner    Runner
	responder Responder
	sessions  session.Store
	saver     Saver
	log       *logrus.Logger
}

// NewManager initializes a new conversation manager
func NewManager(parser Parser, runner Runner, responder Responder, sessions session.Store, saver Saver, log *logrus.Logger) *Manager {
	return &Manager{
		parser:    parser,
		runner:    runner,
		responder: responder,
		sessions:  sessions,
		saver:     saver,
		log:       log,
	}
}

// ProcessMessage runs a user message through the full agent pipeline.
// Errors never escape as errors: any failure collapses to an apologetic
// response so the front end always has something to render.
func (m *Manager) ProcessMessage(ctx context.Context, userID int64, userMessage string) *models.AgentResponse {
	convCtx, err := m.getContext(ctx, userID)
	if err != nil {
		m.log.Errorf("Error processing message: %v", err)
		return errorResponse(err)
	}

	convCtx.Messages = append(convCtx.Messages, models.ConversationMessage{
		ID:        uuid.NewString(),
		Role:      "user",
		Content:   userMessage,
		Timestamp: time.Now(),
	})

	commands := m.parser.ParseCommands(ctx, userMessage, convCtx)
	results := m.runner.ExecuteCommands(commands, userID)

	needsAIResponse := false
	for _, r := range results {
		if r.NeedsAIResponse {
			needsAIResponse = true
			break
		}
	}
	if !needsAIResponse {
		for _, c := range commands {
			if c.Action == models.ActionConversation {
				needsAIResponse = true
				break
			}
		}
	}

	var aiMessage string
	if needsAIResponse {
		aiMessage, err = m.generateContextualResponse(ctx, userID, userMessage, results, convCtx)
		if err != nil {
			m.log.Errorf("Error generating response: %v", err)
			return errorResponse(err)
		}
	}

	response := buildResponse(results, aiMessage)

	convCtx.Messages = append(convCtx.Messages, models.ConversationMessage{
		ID:        uuid.NewString(),
		Role:      "assistant",
		Content:   response.Message,
		Actions:   results,
		Timestamp: time.Now(),
	})
	convCtx.LastActivity = time.Now()

	if err := m.sessions.Put(ctx, userID, convCtx); err != nil {
		// Losing the session only costs continuity, not the reply.
		m.log.Errorf("Error saving conversation context for user %d: %v", userID, err)
	}

	return response
}

// generateContextualResponse asks the model for a narrative reply with
// executed actions and the current financial state attached.
func (m *Manager) generateContextualResponse(ctx context.Context, userID int64, userMessage string, results []models.ActionResult, convCtx *models.ConversationContext) (string, error) {
	snapshot, err := m.runner.GetFinancialSnapshot(userID)
	if err != nil {
		return "", fmt.Errorf("failed to load financial snapshot: %w", err)
	}

	summary := BuildFinancialSummary(snapshot)

	message := userMessage
	if len(results) > 0 {
		var actions strings.Builder
		for _, r := range results {
			fmt.Fprintf(&actions, "- %s (success=%t): %s\n", r.Action, r.Success, r.Message)
		}
		message = fmt.Sprintf("%s\n\nActions just taken:\n%s\nFinancial summary: %d income sources totaling $%.2f, %d expenses totaling $%.2f, %d debts totaling $%.2f, net cash flow $%.2f",
			userMessage, actions.String(),
			summary.IncomeCount, summary.TotalIncome,
			summary.ExpenseCount, summary.TotalExpenses,
			summary.DebtCount, summary.TotalDebt,
			summary.NetCashFlow)
	}

	resp, err := m.responder.Chat(ctx, message, historyPairs(convCtx, 5), &prompts.UserOverview{
		Income:   summary.TotalIncome,
		Expenses: summary.TotalExpenses,
		Debt:     summary.TotalDebt,
		Savings:  summary.TotalSavings,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// historyPairs converts context messages into user/assistant exchange
// pairs, most recent last, keeping at most limit pairs.
func historyPairs(convCtx *models.ConversationContext, limit int) []models.Conversation {
	var pairs []models.Conversation
	var pending string
	hasPending := false

	for _, msg := range convCtx.Messages {
		switch msg.Role {
		case "user":
			pending = msg.Content
			hasPending = true
		case "assistant":
			if hasPending {
				pairs = append(pairs, models.Conversation{Message: pending, Response: msg.Content})
				hasPending = false
			}
		}
	}

	if len(pairs) > limit {
		pairs = pairs[len(pairs)-limit:]
	}
	return pairs
}

// BuildFinancialSummary aggregates a snapshot into counts and totals
func BuildFinancialSummary(data *models.FinancialSnapshot) models.FinancialSummary {
	var summary models.FinancialSummary

	summary.IncomeCount = len(data.Income)
	for _, i := range data.Income {
		summary.TotalIncome += i.Amount
	}
	summary.ExpenseCount = len(data.Expenses)
	for _, e := range data.Expenses {
		summary.TotalExpenses += e.Amount
	}
	summary.DebtCount = len(data.Debts)
	for _, d := range data.Debts {
		summary.TotalDebt += d.Balance
	}
	summary.SavingsGoalCount = len(data.Savings)
	for _, s := range data.Savings {
		summary.TotalSavings += s.CurrentAmount
	}
	summary.NetCashFlow = summary.TotalIncome - summary.TotalExpenses

	return summary
}

// buildResponse combines action confirmations with the narrative reply
func buildResponse(results []models.ActionResult, aiMessage string) *models.AgentResponse {
	var successful, failed []models.ActionResult
	for _, r := range results {
		if r.Success {
			successful = append(successful, r)
		} else {
			failed = append(failed, r)
		}
	}

	var actionMessages []string
	for _, r := range successful {
		if r.Message != "" {
			actionMessages = append(actionMessages, r.Message)
		}
	}

	var message string
	if len(actionMessages) > 0 {
		message = strings.Join(actionMessages, "\n") + "\n\n"
	}
	if aiMessage != "" {
		message += aiMessage
	} else if len(actionMessages) == 0 && len(failed) == 0 {
		message = "I understand. How else can I help you?"
	}

	var errs []string
	for _, f := range failed {
		if f.Error != "" {
			errs = append(errs, f.Error)
		} else if f.Message != "" {
			errs = append(errs, f.Message)
		}
	}

	return &models.AgentResponse{
		Success:     true,
		Message:     strings.TrimSpace(message),
		Actions:     results,
		ActionCount: len(successful),
		Errors:      errs,
	}
}

func errorResponse(err error) *models.AgentResponse {
	return &models.AgentResponse{
		Success: false,
		Message: "I'm sorry, I encountered an error processing your request. Could you try rephrasing that?",
		Errors:  []string{err.Error()},
	}
}

// getContext returns the stored conversation context for a user,
// creating a fresh one when none exists.
func (m *Manager) getContext(ctx context.Context, userID int64) (*models.ConversationContext, error) {
	convCtx, err := m.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation context: %w", err)
	}
	if convCtx == nil {
		now := time.Now()
		convCtx = &models.ConversationContext{
			UserID:       userID,
			Messages:     []models.ConversationMessage{},
			StartedAt:    now,
			LastActivity: now,
			Stage:        "initial",
		}
	}
	return convCtx, nil
}

// ClearConversation drops the stored context for a user
func (m *Manager) ClearConversation(ctx context.Context, userID int64) error {
	return m.sessions.Delete(ctx, userID)
}

// History returns the messages of the active conversation, or an empty
// slice when there is none.
func (m *Manager) History(ctx context.Context, userID int64) ([]models.ConversationMessage, error) {
	convCtx, err := m.sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation context: %w", err)
	}
	if convCtx == nil {
		return []models.ConversationMessage{}, nil
	}
	return convCtx.Messages, nil
}

// SaveConversation persists the active context's exchange pairs. The
// caller decides when a conversation is worth keeping; the pipeline does
// not save automatically.
func (m *Manager) SaveConversation(ctx context.Context, userID int64) error {
	convCtx, err := m.sessions.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load conversation context: %w", err)
	}
	if convCtx == nil {
		return nil
	}

	for _, pair := range historyPairs(convCtx, len(convCtx.Messages)) {
		if err := m.saver.SaveConversation(userID, pair.Message, pair.Response); err != nil {
			return fmt.Errorf("failed to save conversation: %w", err)
		}
	}
	return nil
}

// WelcomeResult reports whether a user has any financial data yet
type WelcomeResult struct {
	IsNewUser bool   `json:"isNewUser"`
	Message   string `json:"message,omitempty"`
}

const welcomeMessage = `👋 Welcome! I'm your AI financial assistant. I can help you manage your budget, track expenses, plan for debt payoff, and reach your savings goals.

To get started, just tell me about your financial situation in your own words. For example:
• "I make $5000 per month from my job"
• "My rent is $1500 and I spend about $400 on groceries"
• "I have a credit card with $8000 balance at 18% interest"

What would you like to start with?`

// GuideNewUser returns the onboarding message for users with no data
func (m *Manager) GuideNewUser(userID int64) (*WelcomeResult, error) {
	snapshot, err := m.runner.GetFinancialSnapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load financial snapshot: %w", err)
	}

	hasData := len(snapshot.Income) > 0 || len(snapshot.Expenses) > 0 || len(snapshot.Debts) > 0
	if !hasData {
		return &WelcomeResult{IsNewUser: true, Message: welcomeMessage}, nil
	}
	return &WelcomeResult{IsNewUser: false}, nil
}

// SuggestNextActions proposes follow-ups based on what data exists
func (m *Manager) SuggestNextActions(userID int64) ([]string, error) {
	snapshot, err := m.runner.GetFinancialSnapshot(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load financial snapshot: %w", err)
	}

	suggestions := []string{}
	if len(snapshot.Income) == 0 {
		suggestions = append(suggestions, "Add your income sources")
	}
	if len(snapshot.Expenses) == 0 {
		suggestions = append(suggestions, "Track your expenses")
	}
	if len(snapshot.Debts) > 0 {
		suggestions = append(suggestions, "Generate a debt payoff plan")
	}
	if len(snapshot.Savings) == 0 {
		suggestions = append(suggestions, "Set savings goals")
	}
	if len(snapshot.Income) > 0 && len(snapshot.Expenses) > 0 {
		suggestions = append(suggestions, "Analyze your budget")
	}

	return suggestions, nil
}
