package models

// Action names recognized by the command interpreter.
const (
	ActionCreateIncome           = "CREATE_INCOME"
	ActionCreateExpense          = "CREATE_EXPENSE"
	ActionCreateDebt             = "CREATE_DEBT"
	ActionCreateSavingsGoal      = "CREATE_SAVINGS_GOAL"
	ActionCreateBill             = "CREATE_BILL"
	ActionGenerateBudgetAnalysis = "GENERATE_BUDGET_ANALYSIS"
	ActionGenerateDebtPlan       = "GENERATE_DEBT_PLAN"
	ActionGenerateSavingsPlan    = "GENERATE_SAVINGS_PLAN"
	ActionAskQuestion            = "ASK_QUESTION"
	ActionConversation           = "CONVERSATION"
)

// Command is a structured action parsed from natural language.
// The wire shape (action, confidence, data) must match the JSON array
// the interpreter requests from the model.
type Command struct {
	Action        string      `json:"action"`
	Confidence    float64     `json:"confidence"`
	Data          CommandData `json:"data"`
	OriginalInput string      `json:"originalInput,omitempty"`
}

// CommandData carries the union of fields any action may supply. Pointer
// fields distinguish "absent" from zero so defaults apply correctly.
type CommandData struct {
	// CREATE_INCOME
	Source    string   `json:"source,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Frequency string   `json:"frequency,omitempty"`

	// CREATE_EXPENSE
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
	Recurring   bool   `json:"recurring,omitempty"`

	// CREATE_DEBT
	Name           string   `json:"name,omitempty"`
	Balance        *float64 `json:"balance,omitempty"`
	InterestRate   *float64 `json:"interestRate,omitempty"`
	MinimumPayment *float64 `json:"minimumPayment,omitempty"`
	DueDate        *int     `json:"dueDate,omitempty"`

	// CREATE_SAVINGS_GOAL
	TargetAmount        *float64 `json:"targetAmount,omitempty"`
	CurrentAmount       *float64 `json:"currentAmount,omitempty"`
	TargetDate          string   `json:"targetDate,omitempty"`
	MonthlyContribution *float64 `json:"monthlyContribution,omitempty"`

	// CREATE_BILL
	AutoPay bool `json:"autoPay,omitempty"`

	// ASK_QUESTION / CONVERSATION
	Question string `json:"question,omitempty"`
	Message  string `json:"message,omitempty"`
}

// ActionResult is the outcome of executing a single command.
type ActionResult struct {
	Success         bool                   `json:"success"`
	Action          string                 `json:"action,omitempty"`
	Command         string                 `json:"command,omitempty"`
	Confidence      float64                `json:"confidence,omitempty"`
	ID              int64                  `json:"id,omitempty"`
	Message         string                 `json:"message,omitempty"`
	Error           string                 `json:"error,omitempty"`
	Data            map[string]interface{} `json:"data,omitempty"`
	NeedsAIResponse bool                   `json:"needsAIResponse,omitempty"`
	NeedsResponse   bool                   `json:"needsResponse,omitempty"`
	NeedsMoreData   bool                   `json:"needsMoreData,omitempty"`
}
