// Package ai is the LLM-facing service layer: it renders prompts, calls
// the completion client, and optionally extracts structured data from the
// reply. The financial reasoning itself lives in the model's output.
package ai

import (
	"context"
	"fmt"
	"strings"

	"financial-hub/internal/llm"
	"financial-hub/internal/models"
	"financial-hub/internal/prompts"
	"github.com/sirupsen/logrus"
)

// Response is a model reply with optional structured data extracted from it.
type Response struct {
	Text string                 `json:"text"`
	Data map[string]interface{} `json:"data,omitempty"`
}

// Service handles all LLM interactions
type Service struct {
	client llm.Client
	log    *logrus.Logger
}

// NewService initializes a new AI service
func NewService(client llm.Client, log *logrus.Logger) *Service {
	return &Service{client: client, log: log}
}

// getResponse renders the prompt for an action and completes it. When
// structured is set, the first JSON object in the reply is decoded too.
func (s *Service) getResponse(ctx context.Context, action string, data prompts.PromptData, structured bool) (*Response, error) {
	prompt := prompts.GeneratePrompt(action, data)

	s.log.Debugf("Sending %s request to model", action)

	text, err := s.client.Complete(ctx, prompts.SystemContext, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai service error: %w", err)
	}

	resp := &Response{Text: text}
	if structured {
		resp.Data = prompts.ExtractJSON(text)
	}
	return resp, nil
}

// AnalyzeBudget generates a prose budget analysis
func (s *Service) AnalyzeBudget(ctx context.Context, data prompts.PromptData) (*Response, error) {
	return s.getResponse(ctx, prompts.ActionAnalyzeBudget, data, false)
}

// DebtPayoffPlan generates a payoff plan; the reply carries a JSON
// projection block which is extracted into Data.
func (s *Service) DebtPayoffPlan(ctx context.Context, data prompts.PromptData, strategy string) (*Response, error) {
	data.Strategy = strategy
	return s.getResponse(ctx, prompts.ActionCreateDebtPlan, data, true)
}

// SavingsGoalPlan generates a savings strategy for a goal type
func (s *Service) SavingsGoalPlan(ctx context.Context, data prompts.PromptData, goalType string) (*Response, error) {
	data.GoalType = goalType
	return s.getResponse(ctx, prompts.ActionCreateSavingsPlan, data, false)
}

// Chat handles a conversational turn with financial context attached
func (s *Service) Chat(ctx context.Context, message string, history []models.Conversation, userData *prompts.UserOverview) (*Response, error) {
	return s.getResponse(ctx, prompts.ActionConversation, prompts.PromptData{
		Message:  message,
		History:  history,
		UserData: userData,
	}, false)
}

// FlippedInteraction has the model interview the user for missing data
func (s *Service) FlippedInteraction(ctx context.Context, goal string, informationNeeded []string) (*Response, error) {
	return s.getResponse(ctx, prompts.ActionFlippedInteraction, prompts.PromptData{
		Goal:              goal,
		InformationNeeded: informationNeeded,
	}, false)
}

// FinancialOverview generates a full health report over the snapshot
func (s *Service) FinancialOverview(ctx context.Context, snapshot *models.FinancialSnapshot) (*Response, error) {
	var b strings.Builder

	var totalIncome float64
	for _, i := range snapshot.Income {
		totalIncome += i.Amount
	}
	fmt.Fprintf(&b, "INCOME:\nTotal Monthly: $%.2f\n", totalIncome)
	for _, i := range snapshot.Income {
		fmt.Fprintf(&b, "- %s: $%.2f\n", i.Source, i.Amount)
	}

	var totalExpenses float64
	for _, e := range snapshot.Expenses {
		totalExpenses += e.Amount
	}
	fmt.Fprintf(&b, "\nEXPENSES:\nTotal Monthly: $%.2f\n", totalExpenses)
	for _, e := range snapshot.Expenses {
		fmt.Fprintf(&b, "- %s: $%.2f\n", e.Category, e.Amount)
	}

	var totalDebt float64
	for _, d := range snapshot.Debts {
		totalDebt += d.Balance
	}
	fmt.Fprintf(&b, "\nDEBTS:\nTotal Balance: $%.2f\n", totalDebt)
	for _, d := range snapshot.Debts {
		fmt.Fprintf(&b, "- %s: $%.2f at %.2f%%\n", d.Name, d.Balance, d.InterestRate)
	}

	b.WriteString("\nSAVINGS GOALS:\n")
	for _, g := range snapshot.Savings {
		fmt.Fprintf(&b, "- %s: $%.2f/$%.2f\n", g.Name, g.CurrentAmount, g.TargetAmount)
	}

	b.WriteString("\nBILLS (Next 30 days):\n")
	for _, bill := range snapshot.Bills {
		fmt.Fprintf(&b, "- %s: $%.2f due on day %d\n", bill.Name, bill.Amount, bill.DueDate)
	}

	prompt := fmt.Sprintf(`%s

Generate a comprehensive financial snapshot for this user:

%s
Provide:
1. Overall Financial Health Score (1-10)
2. Key Insights (3-5 bullet points)
3. Top 3 Priorities
4. Monthly Cash Flow Analysis
5. 3-Month Action Plan

Format the response clearly with sections and actionable items.`, prompts.SystemContext, b.String())

	return s.getResponse(ctx, prompts.ActionConversation, prompts.PromptData{Message: prompt}, false)
}

// AnalyzeBillPayments asks for a payment schedule over upcoming bills
func (s *Service) AnalyzeBillPayments(ctx context.Context, bills []models.Bill, monthlyIncome, monthlyExpenses float64) (*Response, error) {
	var list strings.Builder
	for _, b := range bills {
		fmt.Fprintf(&list, "- %s: $%.2f due on day %d (%s)\n", b.Name, b.Amount, b.DueDate, b.Frequency)
	}

	prompt := fmt.Sprintf(`Analyze these upcoming bills and provide recommendations:

Monthly Income: $%.2f
Monthly Expenses: $%.2f
Available: $%.2f

Upcoming Bills:
%s
Provide:
1. Optimal payment schedule to avoid overdraft
2. Bills that should be prioritized
3. Suggestions for reducing bill amounts
4. Recommended buffer amount to maintain`,
		monthlyIncome, monthlyExpenses, monthlyIncome-monthlyExpenses, list.String())

	return s.getResponse(ctx, prompts.ActionConversation, prompts.PromptData{Message: prompt}, false)
}

// CompareDebtStrategies asks for an avalanche/snowball/hybrid comparison
func (s *Service) CompareDebtStrategies(ctx context.Context, data prompts.PromptData) (*Response, error) {
	var debts strings.Builder
	for _, d := range data.Debts.List {
		fmt.Fprintf(&debts, "\n- %s\n  Balance: $%.2f\n  Interest Rate: %.2f%%\n  Minimum Payment: $%.2f\n",
			d.Name, d.Balance, d.InterestRate, d.MinimumPayment)
	}

	prompt := fmt.Sprintf(`Compare debt payoff strategies for this scenario:

Monthly Surplus: $%.2f

Debts:
%s
Provide a detailed comparison of:
1. AVALANCHE METHOD (highest interest first)
2. SNOWBALL METHOD (lowest balance first)
3. HYBRID APPROACH

For each method, show:
- Total time to debt freedom
- Total interest paid
- Psychological pros and cons
- Recommended approach based on this specific situation

Format with clear tables and a final recommendation.`,
		data.Income-data.Expenses.Total, debts.String())

	return s.getResponse(ctx, prompts.ActionConversation, prompts.PromptData{Message: prompt}, true)
}
