package handler

import (
	"encoding/json"
	"net/http"

	"financial-hub/internal/conversation"
)

// FinancialSnapshot returns all records plus an AI health report
func (h *Handler) FinancialSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	snapshot, err := h.exec.GetFinancialSnapshot(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	analysis, err := h.ai.FinancialOverview(r.Context(), snapshot)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"snapshot": snapshot,
		"summary":  conversation.BuildFinancialSummary(snapshot),
		"analysis": analysis.Text,
	})
}

// AnalyzeBudget generates and persists a budget analysis
func (h *Handler) AnalyzeBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	data, err := h.svc.BuildPromptData(req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	analysis, err := h.ai.AnalyzeBudget(r.Context(), data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if encoded, err := json.Marshal(analysis); err == nil {
		if err := h.svc.SavePlan(req.UserID, "budget_analysis", string(encoded)); err != nil {
			h.log.Errorf("Failed to save budget analysis for user %d: %v", req.UserID, err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": analysis.Text,
	})
}

// DebtPayoffPlan generates and persists a debt payoff plan
func (h *Handler) DebtPayoffPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   int64  `json:"userId"`
		Strategy string `json:"strategy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	data, err := h.svc.BuildPromptData(req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	plan, err := h.ai.DebtPayoffPlan(r.Context(), data, req.Strategy)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if encoded, err := json.Marshal(plan); err == nil {
		if err := h.svc.SavePlan(req.UserID, "debt_payoff", string(encoded)); err != nil {
			h.log.Errorf("Failed to save debt plan for user %d: %v", req.UserID, err)
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"plan":    plan.Text,
		"data":    plan.Data,
	})
}

// CompareDebtStrategies returns an avalanche/snowball/hybrid comparison
func (h *Handler) CompareDebtStrategies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID int64 `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 {
		respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	data, err := h.svc.BuildPromptData(req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	comparison, err := h.ai.CompareDebtStrategies(r.Context(), data)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"comparison": comparison.Text,
		"data":       comparison.Data,
	})
}

// Chat is the direct chat endpoint. Unlike the agent pipeline it always
// persists the exchange.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  int64  `json:"userId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 || req.Message == "" {
		respondError(w, http.StatusBadRequest, "userId and message are required")
		return
	}

	history, err := h.svc.ChatHistory(req.UserID, 10)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	overview, err := h.svc.UserOverview(req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response, err := h.ai.Chat(r.Context(), req.Message, history, overview)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.svc.SaveChat(req.UserID, req.Message, response.Text); err != nil {
		h.log.Errorf("Failed to save chat for user %d: %v", req.UserID, err)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"response": response.Text,
	})
}
