// Package prompts holds the prompt templates sent to the language model.
// Everything here is pure string building; no prompt performs I/O.
package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"financial-hub/internal/models"
)

// FinancialPersona frames every interaction.
const FinancialPersona = `Act as a certified financial planner with 15 years of experience specializing
in debt management and personal savings strategies. You prioritize actionable,
realistic advice tailored to middle-income individuals. When analyzing financial
situations, you:
- Always consider cash flow sustainability
- Provide pros and cons for different strategies
- Use encouraging but realistic language
- Break down complex financial concepts simply
- Focus on practical, achievable steps
- Consider the psychological aspects of money management`

// SystemContext is the system string for analysis and chat calls.
const SystemContext = `You are an AI-powered financial assistant integrated into a comprehensive budget tracking application.
You have access to the user's complete financial profile including income, expenses, debts, savings goals, and bills.
Your role is to provide personalized financial guidance, create actionable plans, and help users achieve their financial goals.

IMPORTANT GUIDELINES:
1. Always output structured data when requested using exact JSON formats
2. Be empathetic but honest about financial realities
3. Prioritize debt with high interest rates (avalanche method) unless user prefers psychological wins (snowball)
4. Recommend emergency fund of 3-6 months expenses before aggressive debt payoff
5. Consider the user's entire financial picture, not isolated components`

// DebtPlanTemplate shapes the prose output of a debt payoff plan.
const DebtPlanTemplate = `Format your debt repayment plan exactly as follows:

DEBT NAME: [name]
Current Balance: $[amount]
Interest Rate: [rate]%
Minimum Payment: $[amount]
Recommended Payment: $[amount]
Payoff Date: [date]
Total Interest Paid: $[amount]

---
STRATEGY: [Avalanche/Snowball/Hybrid]
RATIONALE: [why this works for your situation]
MONTHLY BREAKDOWN: [detailed payment schedule]`

// BudgetPlanTemplate shapes the prose output of a budget analysis.
const BudgetPlanTemplate = `Format your monthly budget plan as follows:

MONTHLY INCOME: $[amount]

EXPENSES BY CATEGORY:
- Housing: $[amount] ([percent]%)
- Transportation: $[amount] ([percent]%)
- Food: $[amount] ([percent]%)
- Utilities: $[amount] ([percent]%)
- Insurance: $[amount] ([percent]%)
- Debt Payments: $[amount] ([percent]%)
- Savings: $[amount] ([percent]%)
- Discretionary: $[amount] ([percent]%)

TOTAL EXPENSES: $[amount]
SURPLUS/DEFICIT: $[amount]

RECOMMENDATIONS:
[List specific, actionable recommendations]`

// SavingsPlanTemplate shapes the prose output of a savings plan.
const SavingsPlanTemplate = `Format your savings goal plan as follows:

GOAL: [name]
Target Amount: $[amount]
Current Amount: $[amount]
Amount Remaining: $[amount]
Target Date: [date]
Months Until Target: [number]

REQUIRED MONTHLY CONTRIBUTION: $[amount]

STRATEGY:
[Detailed strategy for reaching this goal]

MILESTONES:
[List key milestones and dates]`

// CategoryAmount is one category line in an expense breakdown.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// ExpenseBreakdown summarizes expenses for prompt building.
type ExpenseBreakdown struct {
	Total      float64
	ByCategory []CategoryAmount
}

// DebtInfo is one debt line in a payoff prompt.
type DebtInfo struct {
	Name           string
	Balance        float64
	InterestRate   float64
	MinimumPayment float64
}

// DebtSummary summarizes debts for prompt building.
type DebtSummary struct {
	Total          float64
	MonthlyPayment float64
	List           []DebtInfo
}

// BillSummary summarizes bills for prompt building.
type BillSummary struct {
	Count int
	Total float64
}

// GoalProgress is a savings goal's progress toward its target.
type GoalProgress struct {
	Target  float64
	Current float64
}

// UserOverview is the compact financial picture attached to
// conversational prompts. Nil means no data recorded yet.
type UserOverview struct {
	Income   float64
	Expenses float64
	Debt     float64
	Savings  float64
}

// PromptData carries the inputs for every prompt kind; each builder reads
// only the fields it needs.
type PromptData struct {
	Message  string
	History  []models.Conversation
	UserData *UserOverview

	Income       float64
	Expenses     ExpenseBreakdown
	Debts        DebtSummary
	Bills        BillSummary
	Emergency    *GoalProgress
	Strategy     string
	GoalType     string

	Goal              string
	InformationNeeded []string
	KnownSteps        []string
}

// Action names understood by GeneratePrompt.
const (
	ActionAnalyzeBudget      = "ANALYZE_BUDGET"
	ActionCreateDebtPlan     = "CREATE_DEBT_PLAN"
	ActionCreateSavingsPlan  = "CREATE_SAVINGS_PLAN"
	ActionConversation       = "CONVERSATION"
	ActionFlippedInteraction = "FLIPPED_INTERACTION"
	ActionRecipe             = "RECIPE"
)

// GeneratePrompt selects the builder for an action
func GeneratePrompt(action string, data PromptData) string {
	switch action {
	case ActionAnalyzeBudget:
		return BudgetAnalysisPrompt(data)
	case ActionCreateDebtPlan:
		return DebtPayoffPrompt(data, data.Strategy)
	case ActionCreateSavingsPlan:
		return SavingsGoalPrompt(data, data.GoalType)
	case ActionConversation:
		return ConversationalPrompt(data.Message, data.History, data.UserData)
	case ActionFlippedInteraction:
		return FlippedInteractionPrompt(data.Goal, data.InformationNeeded)
	case ActionRecipe:
		return RecipePrompt(data.Goal, data.KnownSteps)
	default:
		return data.Message
	}
}

// BudgetAnalysisPrompt asks for a spending analysis over the current snapshot
func BudgetAnalysisPrompt(data PromptData) string {
	var breakdown strings.Builder
	for _, cat := range data.Expenses.ByCategory {
		fmt.Fprintf(&breakdown, "- %s: $%.2f\n", cat.Name, cat.Amount)
	}

	return fmt.Sprintf(`%s

CURRENT FINANCIAL SNAPSHOT:
Monthly Income: $%.2f
Total Monthly Expenses: $%.2f
Total Debt: $%.2f
Monthly Debt Payments: $%.2f
Upcoming Bills: %d bills totaling $%.2f

Expense Breakdown:
%s
Based on this information, provide:
1. An analysis of current spending patterns
2. Areas where spending can be optimized
3. Recommended budget allocations following the 50/30/20 rule (adjusted for debt)
4. Specific action items to improve financial health

%s`, SystemContext, data.Income, data.Expenses.Total, data.Debts.Total,
		data.Debts.MonthlyPayment, data.Bills.Count, data.Bills.Total,
		breakdown.String(), BudgetPlanTemplate)
}

// DebtPayoffPrompt asks for a payoff plan; the strategy preference is
// avalanche, snowball, or anything else for "recommend optimal".
func DebtPayoffPrompt(data PromptData, strategy string) string {
	availableForDebt := data.Income - data.Expenses.Total

	var debts strings.Builder
	for _, d := range data.Debts.List {
		fmt.Fprintf(&debts, "\n- %s: $%.2f at %.2f%% APR\n  Minimum Payment: $%.2f\n",
			d.Name, d.Balance, d.InterestRate, d.MinimumPayment)
	}

	var preference string
	switch strategy {
	case "avalanche":
		preference = "Minimize interest (Avalanche)"
	case "snowball":
		preference = "Quick wins (Snowball)"
	default:
		preference = "Recommend optimal strategy"
	}

	emergency := "No emergency fund set"
	if data.Emergency != nil {
		emergency = fmt.Sprintf("Emergency Fund Goal: $%.2f (Current: $%.2f)",
			data.Emergency.Target, data.Emergency.Current)
	}

	return fmt.Sprintf(`%s

DEBT REPAYMENT SCENARIO:
Monthly Income: $%.2f
Monthly Expenses: $%.2f
Available for Debt: $%.2f

DEBTS:
%s
User Preference: %s

%s

Create a comprehensive debt payoff plan that:
1. Considers the available monthly surplus
2. Balances debt payoff with emergency fund building (if needed)
3. Applies the chosen strategy (or recommends the best one)
4. Provides month-by-month projections
5. Shows total interest saved

%s

Also provide the data in JSON format for system processing:
{
  "strategy": "avalanche|snowball|hybrid",
  "totalMonthsToPayoff": number,
  "totalInterestPaid": number,
  "monthlyPlan": [
    {
      "month": number,
      "debts": [
        {"name": "string", "payment": number, "remainingBalance": number}
      ],
      "totalPayment": number
    }
  ]
}`, SystemContext, data.Income, data.Expenses.Total, availableForDebt,
		debts.String(), preference, emergency, DebtPlanTemplate)
}

// SavingsGoalPrompt asks for a savings plan toward a goal type
func SavingsGoalPrompt(data PromptData, goalType string) string {
	availableFunds := data.Income - data.Expenses.Total - data.Debts.MonthlyPayment

	return fmt.Sprintf(`%s

SAVINGS GOAL PLANNING:
Monthly Surplus: $%.2f
Goal Type: %s

Create a realistic savings plan that:
1. Accounts for current financial obligations
2. Provides a sustainable monthly contribution
3. Includes milestone targets
4. Offers strategies to accelerate savings if possible

%s`, SystemContext, availableFunds, goalType, SavingsPlanTemplate)
}

// ConversationalPrompt builds a free-form chat prompt with the user's
// financial context and the tail of the conversation history.
func ConversationalPrompt(userMessage string, history []models.Conversation, userData *UserOverview) string {
	financialContext := "No financial data available yet"
	if userData != nil {
		financialContext = fmt.Sprintf(`
Monthly Income: $%.2f
Monthly Expenses: $%.2f
Total Debt: $%.2f
Savings: $%.2f`, userData.Income, userData.Expenses, userData.Debt, userData.Savings)
	}

	var historySection string
	if len(history) > 0 {
		tail := history
		if len(tail) > 5 {
			tail = tail[len(tail)-5:]
		}
		var b strings.Builder
		for i, conv := range tail {
			if i > 0 {
				b.WriteString("\n\n")
			}
			fmt.Fprintf(&b, "User: %s\nAssistant: %s", conv.Message, conv.Response)
		}
		historySection = fmt.Sprintf("\nCONVERSATION HISTORY:\n%s\n", b.String())
	}

	return fmt.Sprintf(`%s

%s

USER'S FINANCIAL CONTEXT:
%s
%s
USER MESSAGE: %s

Respond naturally and helpfully. If the user is asking for a specific analysis or plan, provide it with detailed, actionable advice.
If you need more information, ask clarifying questions.`,
		SystemContext, FinancialPersona, financialContext, historySection, userMessage)
}

// FlippedInteractionPrompt asks the model to interview the user
func FlippedInteractionPrompt(goal string, informationNeeded []string) string {
	var info strings.Builder
	for _, item := range informationNeeded {
		fmt.Fprintf(&info, "- %s\n", item)
	}

	return fmt.Sprintf(`I would like you to ask me questions to %s.
Ask questions one at a time until you have enough information about:
%s
After gathering all information, provide a comprehensive analysis and plan.
Ask me the first question now.`, goal, info.String())
}

// RecipePrompt asks the model to complete a partially known plan
func RecipePrompt(goal string, knownSteps []string) string {
	var steps strings.Builder
	for i, step := range knownSteps {
		fmt.Fprintf(&steps, "%d. %s\n", i+1, step)
	}

	return fmt.Sprintf(`I would like to %s.
I know I need to perform these steps:
%s
Provide a complete sequence of steps for me. Fill in any missing steps. Identify any unnecessary steps.
Present the plan in a clear, actionable format.`, goal, steps.String())
}

// ExtractJSON locates the first top-level JSON object in a model response
// and decodes it. Returns nil when no decodable object is present.
func ExtractJSON(response string) map[string]interface{} {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil
	}

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return nil
	}
	return result
}
