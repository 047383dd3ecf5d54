// Package handler exposes the HTTP API. Every response uses a
// {"success": bool, ...} envelope; errors carry an "error" field.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"financial-hub/internal/conversation"
	"financial-hub/internal/executor"
	"financial-hub/internal/interpreter"
	"financial-hub/internal/service"

	"financial-hub/internal/ai"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Handler holds the dependencies of all HTTP endpoints
type Handler struct {
	svc     *service.Service
	ai      *ai.Service
	manager *conversation.Manager
	interp  *interpreter.Interpreter
	exec    *executor.Executor
	log     *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, aiSvc *ai.Service, manager *conversation.Manager, interp *interpreter.Interpreter, exec *executor.Executor, log *logrus.Logger) *Handler {
	return &Handler{
		svc:     svc,
		ai:      aiSvc,
		manager: manager,
		interp:  interp,
		exec:    exec,
		log:     log,
	}
}

// Routes registers every endpoint on the router
func (h *Handler) Routes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/user", h.CreateUser).Methods("POST")
	api.HandleFunc("/user/{userId}", h.GetUser).Methods("GET")

	api.HandleFunc("/income", h.CreateIncome).Methods("POST")
	api.HandleFunc("/income/{userId}", h.ListIncome).Methods("GET")
	api.HandleFunc("/income/{id}", h.UpdateIncome).Methods("PUT")
	api.HandleFunc("/income/{id}", h.DeleteIncome).Methods("DELETE")

	api.HandleFunc("/expenses", h.CreateExpense).Methods("POST")
	api.HandleFunc("/expenses/{userId}", h.ListExpenses).Methods("GET")
	api.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods("PUT")
	api.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods("DELETE")

	api.HandleFunc("/debts", h.CreateDebt).Methods("POST")
	api.HandleFunc("/debts/{userId}", h.ListDebts).Methods("GET")
	api.HandleFunc("/debts/{id}", h.UpdateDebt).Methods("PUT")
	api.HandleFunc("/debts/{id}", h.DeleteDebt).Methods("DELETE")

	api.HandleFunc("/savings", h.CreateSavingsGoal).Methods("POST")
	api.HandleFunc("/savings/{userId}", h.ListSavingsGoals).Methods("GET")
	api.HandleFunc("/savings/{id}", h.UpdateSavingsGoal).Methods("PUT")
	api.HandleFunc("/savings/{id}", h.DeleteSavingsGoal).Methods("DELETE")

	api.HandleFunc("/bills", h.CreateBill).Methods("POST")
	api.HandleFunc("/bills/{userId}", h.ListBills).Methods("GET")
	api.HandleFunc("/bills/{id}", h.UpdateBill).Methods("PUT")
	api.HandleFunc("/bills/{id}", h.DeleteBill).Methods("DELETE")

	api.HandleFunc("/financial-snapshot/{userId}", h.FinancialSnapshot).Methods("GET")
	api.HandleFunc("/analyze-budget", h.AnalyzeBudget).Methods("POST")
	api.HandleFunc("/debt-payoff-plan", h.DebtPayoffPlan).Methods("POST")
	api.HandleFunc("/compare-debt-strategies", h.CompareDebtStrategies).Methods("POST")
	api.HandleFunc("/chat", h.Chat).Methods("POST")

	agent := api.PathPrefix("/agent").Subrouter()
	agent.HandleFunc("/message", h.AgentMessage).Methods("POST")
	agent.HandleFunc("/parse", h.AgentParse).Methods("POST")
	agent.HandleFunc("/execute", h.AgentExecute).Methods("POST")
	agent.HandleFunc("/conversation/{userId}", h.AgentConversation).Methods("GET")
	agent.HandleFunc("/conversation/{userId}", h.AgentClearConversation).Methods("DELETE")
	agent.HandleFunc("/snapshot/{userId}", h.AgentSnapshot).Methods("GET")
	agent.HandleFunc("/suggestions/{userId}", h.AgentSuggestions).Methods("GET")
	agent.HandleFunc("/welcome/{userId}", h.AgentWelcome).Methods("POST")
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "financial-hub",
	})
}

// CreateUser creates a user, or returns the existing one for the email
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.svc.RegisterUser(req.Name, req.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// GetUser returns a user by id
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	user, err := h.svc.GetUser(userID)
	if err != nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// pathID parses an int64 path variable and writes a 400 on failure
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
