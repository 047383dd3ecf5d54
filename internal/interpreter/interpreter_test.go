package interpreter

import (
	"context"
	"errors"
	"testing"

	"financial-hub/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeClient) Complete(_ context.Context, _, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.response, f.err
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestParseCommandsDecodesArray(t *testing.T) {
	client := &fakeClient{response: `[
		{"action": "CREATE_INCOME", "confidence": 0.95, "data": {"source": "Employment", "amount": 5000, "frequency": "monthly"}},
		{"action": "CREATE_EXPENSE", "confidence": 0.9, "data": {"description": "Rent", "amount": 1500, "category": "Housing", "recurring": true}}
	]`}
	interp := NewInterpreter(client, testLogger())

	commands := interp.ParseCommands(context.Background(), "I make $5000 per month and my rent is $1500", nil)

	require.Len(t, commands, 2)
	assert.Equal(t, models.ActionCreateIncome, commands[0].Action)
	assert.Equal(t, 0.95, commands[0].Confidence)
	require.NotNil(t, commands[0].Data.Amount)
	assert.Equal(t, 5000.0, *commands[0].Data.Amount)
	assert.Equal(t, models.ActionCreateExpense, commands[1].Action)
	assert.True(t, commands[1].Data.Recurring)

	for _, cmd := range commands {
		assert.Equal(t, "I make $5000 per month and my rent is $1500", cmd.OriginalInput)
	}
}

func TestParseCommandsStripsCodeFences(t *testing.T) {
	client := &fakeClient{response: "```json\n[{\"action\": \"CREATE_DEBT\", \"confidence\": 0.8, \"data\": {\"name\": \"Credit Card\", \"balance\": 8000}}]\n```"}
	interp := NewInterpreter(client, testLogger())

	commands := interp.ParseCommands(context.Background(), "I owe $8000 on my credit card", nil)

	require.Len(t, commands, 1)
	assert.Equal(t, models.ActionCreateDebt, commands[0].Action)
	require.NotNil(t, commands[0].Data.Balance)
	assert.Equal(t, 8000.0, *commands[0].Data.Balance)
}

func TestParseCommandsFallsBackOnClientError(t *testing.T) {
	client := &fakeClient{err: errors.New("connection refused")}
	interp := NewInterpreter(client, testLogger())

	commands := interp.ParseCommands(context.Background(), "hello there", nil)

	require.Len(t, commands, 1)
	assert.Equal(t, models.ActionConversation, commands[0].Action)
	assert.Equal(t, 1.0, commands[0].Confidence)
	assert.Equal(t, "hello there", commands[0].Data.Message)
	assert.Equal(t, "hello there", commands[0].OriginalInput)
}

func TestParseCommandsFallsBackOnMalformedJSON(t *testing.T) {
	client := &fakeClient{response: "Sure! Here is what I found: not json at all"}
	interp := NewInterpreter(client, testLogger())

	commands := interp.ParseCommands(context.Background(), "track my spending", nil)

	require.Len(t, commands, 1)
	assert.Equal(t, models.ActionConversation, commands[0].Action)
	assert.Equal(t, "track my spending", commands[0].Data.Message)
}

func TestParseCommandsNormalizesMissingFields(t *testing.T) {
	client := &fakeClient{response: `[{"data": {"message": "hi"}}]`}
	interp := NewInterpreter(client, testLogger())

	commands := interp.ParseCommands(context.Background(), "hi", nil)

	require.Len(t, commands, 1)
	assert.Equal(t, models.ActionConversation, commands[0].Action)
	assert.Equal(t, 0.5, commands[0].Confidence)
}

func TestParseCommandsIncludesContextInPrompt(t *testing.T) {
	client := &fakeClient{response: `[]`}
	interp := NewInterpreter(client, testLogger())

	convCtx := &models.ConversationContext{UserID: 7, Stage: "collecting"}
	interp.ParseCommands(context.Background(), "what next", convCtx)

	assert.Contains(t, client.lastPrompt, `"collecting"`)
	assert.Contains(t, client.lastPrompt, `User input: "what next"`)
}

func floatPtr(v float64) *float64 { return &v }

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name    string
		cmd     models.Command
		valid   bool
		missing []string
	}{
		{
			name: "income complete",
			cmd: models.Command{Action: models.ActionCreateIncome, Data: models.CommandData{
				Source: "Employment", Amount: floatPtr(5000), Frequency: "monthly",
			}},
			valid: true,
		},
		{
			name:    "income missing everything",
			cmd:     models.Command{Action: models.ActionCreateIncome},
			valid:   false,
			missing: []string{"source", "amount", "frequency"},
		},
		{
			name: "expense missing category",
			cmd: models.Command{Action: models.ActionCreateExpense, Data: models.CommandData{
				Description: "Rent", Amount: floatPtr(1500),
			}},
			valid:   false,
			missing: []string{"category"},
		},
		{
			name: "debt complete",
			cmd: models.Command{Action: models.ActionCreateDebt, Data: models.CommandData{
				Name: "Credit Card", Balance: floatPtr(8000),
			}},
			valid: true,
		},
		{
			name:    "savings goal missing target",
			cmd:     models.Command{Action: models.ActionCreateSavingsGoal, Data: models.CommandData{Name: "Emergency Fund"}},
			valid:   false,
			missing: []string{"targetAmount"},
		},
		{
			name:  "bill complete",
			cmd:   models.Command{Action: models.ActionCreateBill, Data: models.CommandData{Name: "Electric", Amount: floatPtr(120)}},
			valid: true,
		},
		{
			name:  "conversation has no requirements",
			cmd:   models.Command{Action: models.ActionConversation},
			valid: true,
		},
		{
			name:  "unknown action passes",
			cmd:   models.Command{Action: "SOMETHING_ELSE"},
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCommand(tt.cmd)
			assert.Equal(t, tt.valid, result.Valid)
			assert.Equal(t, tt.missing, result.MissingFields)
			if !tt.valid {
				assert.Contains(t, result.Message, "Missing required fields")
			}
		})
	}
}
