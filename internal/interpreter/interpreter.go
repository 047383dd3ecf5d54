// Package interpreter turns natural-language input into structured
// commands by prompting the model for a strict JSON array and validating
// the decode.
package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"financial-hub/internal/llm"
	"financial-hub/internal/models"
	"github.com/sirupsen/logrus"
)

// parsePrompt enumerates the recognized actions, their field
// requirements, and the category vocabulary. The model must answer with
// only the JSON array.
const parsePrompt = `You are a financial command interpreter for an AI agent system. Your job is to parse natural language into structured JSON commands that can be executed.

AVAILABLE ACTIONS:
1. CREATE_INCOME - Add income source
2. CREATE_EXPENSE - Add expense
3. CREATE_DEBT - Add debt
4. CREATE_SAVINGS_GOAL - Add savings goal
5. CREATE_BILL - Add recurring bill
   REQUIRED: name (string - bill name like "Electric Bill" or "Cell Phone")
   REQUIRED: amount (number)
   Example: "cell phone bill $40" should create:
   {"action": "CREATE_BILL", "data": {"name": "Cell Phone Bill", "amount": 40, "dueDate": 1, "frequency": "monthly"}}
6. GENERATE_BUDGET_ANALYSIS - Analyze current budget
7. GENERATE_DEBT_PLAN - Create debt payoff plan
8. GENERATE_SAVINGS_PLAN - Create savings strategy
9. ASK_QUESTION - Need more information from user
10. CONVERSATION - General conversation/greeting

PARSING RULES:
- Extract ALL actionable items from the input
- If user mentions multiple items, create multiple commands
- Always include confidence score (0-1)
- If unclear, use ASK_QUESTION action
- Recognize variations: "I make", "income is", "salary of", etc.
- For expenses, infer category from context
- For debts, extract balance, interest rate, minimum payment if mentioned

CATEGORIES:
Expenses: Housing, Transportation, Food, Utilities, Insurance, Healthcare, Entertainment, Shopping, Personal, Debt Payments, Other
Income: Salary, Freelance, Business, Investments, Other

OUTPUT FORMAT (strict JSON array):
[
  {
    "action": "CREATE_INCOME",
    "confidence": 0.95,
    "data": {
      "source": "Employment",
      "amount": 5000,
      "frequency": "monthly"
    }
  },
  {
    "action": "CREATE_EXPENSE",
    "confidence": 0.9,
    "data": {
      "description": "Rent",
      "amount": 1500,
      "category": "Housing",
      "recurring": true
    }
  }
]

Current conversation context: %s

User input: "%s"

Parse this input and return ONLY the JSON array of commands. No other text.`

// Interpreter parses user utterances into command lists
type Interpreter struct {
	client llm.Client
	log    *logrus.Logger
}

// NewInterpreter initializes a new interpreter
func NewInterpreter(client llm.Client, log *logrus.Logger) *Interpreter {
	return &Interpreter{client: client, log: log}
}

// ParseCommands parses user input into executable commands. It never
// fails: any model or decode error collapses to a single CONVERSATION
// command carrying the original input.
func (i *Interpreter) ParseCommands(ctx context.Context, userInput string, convCtx *models.ConversationContext) []models.Command {
	contextJSON := "{}"
	if convCtx != nil {
		if encoded, err := json.Marshal(convCtx); err == nil {
			contextJSON = string(encoded)
		}
	}

	prompt := fmt.Sprintf(parsePrompt, contextJSON, userInput)

	response, err := i.client.Complete(ctx, "", prompt)
	if err != nil {
		i.log.Errorf("Error parsing commands: %v", err)
		return fallbackCommands(userInput)
	}

	commands, err := decodeCommands(response)
	if err != nil {
		i.log.Errorf("Error decoding commands: %v", err)
		return fallbackCommands(userInput)
	}

	// Normalize: every command gets an action, a confidence, and the
	// original input attached.
	for idx := range commands {
		if commands[idx].Action == "" {
			commands[idx].Action = models.ActionConversation
		}
		if commands[idx].Confidence == 0 {
			commands[idx].Confidence = 0.5
		}
		commands[idx].OriginalInput = userInput
	}

	return commands
}

// decodeCommands strips markdown code fences if present and decodes the
// strict JSON array.
func decodeCommands(response string) ([]models.Command, error) {
	jsonText := strings.TrimSpace(response)
	if strings.Contains(jsonText, "```json") {
		jsonText = strings.ReplaceAll(jsonText, "```json", "")
		jsonText = strings.ReplaceAll(jsonText, "```", "")
		jsonText = strings.TrimSpace(jsonText)
	} else if strings.Contains(jsonText, "```") {
		jsonText = strings.ReplaceAll(jsonText, "```", "")
		jsonText = strings.TrimSpace(jsonText)
	}

	var commands []models.Command
	if err := json.Unmarshal([]byte(jsonText), &commands); err != nil {
		return nil, fmt.Errorf("commands must be a JSON array: %w", err)
	}
	return commands, nil
}

func fallbackCommands(userInput string) []models.Command {
	return []models.Command{
		{
			Action:        models.ActionConversation,
			Confidence:    1.0,
			Data:          models.CommandData{Message: userInput},
			OriginalInput: userInput,
		},
	}
}

// ValidationResult reports whether a command carries the fields its
// action requires.
type ValidationResult struct {
	Valid         bool
	MissingFields []string
	Message       string
}

// ValidateCommand checks required fields per action. Actions without
// field requirements always validate.
func ValidateCommand(cmd models.Command) ValidationResult {
	var missing []string

	switch cmd.Action {
	case models.ActionCreateIncome:
		if cmd.Data.Source == "" {
			missing = append(missing, "source")
		}
		if cmd.Data.Amount == nil {
			missing = append(missing, "amount")
		}
		if cmd.Data.Frequency == "" {
			missing = append(missing, "frequency")
		}
	case models.ActionCreateExpense:
		if cmd.Data.Description == "" {
			missing = append(missing, "description")
		}
		if cmd.Data.Amount == nil {
			missing = append(missing, "amount")
		}
		if cmd.Data.Category == "" {
			missing = append(missing, "category")
		}
	case models.ActionCreateDebt:
		if cmd.Data.Name == "" {
			missing = append(missing, "name")
		}
		if cmd.Data.Balance == nil {
			missing = append(missing, "balance")
		}
	case models.ActionCreateSavingsGoal:
		if cmd.Data.Name == "" {
			missing = append(missing, "name")
		}
		if cmd.Data.TargetAmount == nil {
			missing = append(missing, "targetAmount")
		}
	case models.ActionCreateBill:
		if cmd.Data.Name == "" {
			missing = append(missing, "name")
		}
		if cmd.Data.Amount == nil {
			missing = append(missing, "amount")
		}
	default:
		return ValidationResult{Valid: true}
	}

	if len(missing) > 0 {
		return ValidationResult{
			Valid:         false,
			MissingFields: missing,
			Message:       "Missing required fields: " + strings.Join(missing, ", "),
		}
	}
	return ValidationResult{Valid: true}
}
