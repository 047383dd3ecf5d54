package handler

import (
	"encoding/json"
	"net/http"

	"financial-hub/internal/models"
)

// AgentMessage runs a natural-language message through the agent pipeline
func (h *Handler) AgentMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  int64  `json:"userId"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 || req.Message == "" {
		respondError(w, http.StatusBadRequest, "userId and message are required")
		return
	}

	response := h.manager.ProcessMessage(r.Context(), req.UserID, req.Message)
	respondJSON(w, http.StatusOK, response)
}

// AgentParse parses a message into commands without executing them
func (h *Handler) AgentParse(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string                      `json:"message"`
		Context *models.ConversationContext `json:"context,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	commands := h.interp.ParseCommands(r.Context(), req.Message, req.Context)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"commands": commands,
		"count":    len(commands),
	})
}

// AgentExecute runs one command directly, bypassing the interpreter
func (h *Handler) AgentExecute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID  int64           `json:"userId"`
		Command *models.Command `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID <= 0 || req.Command == nil {
		respondError(w, http.StatusBadRequest, "userId and command are required")
		return
	}

	result := h.exec.ExecuteCommand(*req.Command, req.UserID)
	respondJSON(w, http.StatusOK, result)
}

// AgentConversation returns the active conversation's messages
func (h *Handler) AgentConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	messages, err := h.manager.History(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"messages": messages,
		"count":    len(messages),
	})
}

// AgentClearConversation drops the active conversation
func (h *Handler) AgentClearConversation(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	if err := h.manager.ClearConversation(r.Context(), userID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation cleared",
	})
}

// AgentSnapshot returns the raw financial snapshot for a user
func (h *Handler) AgentSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	snapshot, err := h.exec.GetFinancialSnapshot(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    snapshot,
	})
}

// AgentSuggestions returns suggested next actions for a user
func (h *Handler) AgentSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	suggestions, err := h.manager.SuggestNextActions(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"suggestions": suggestions,
	})
}

// AgentWelcome reports whether a user is new and returns the onboarding
// message when they are
func (h *Handler) AgentWelcome(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	welcome, err := h.manager.GuideNewUser(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"isNewUser": welcome.IsNewUser,
		"message":   welcome.Message,
	})
}
