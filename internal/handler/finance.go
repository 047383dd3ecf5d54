package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"financial-hub/internal/models"
	"financial-hub/internal/service"
)

// CreateIncome adds an income source
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var income models.Income
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddIncome(&income); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"income":  income,
	})
}

// ListIncome returns a user's income sources with the monthly total
func (h *Handler) ListIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	incomes, err := h.svc.ListIncome(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"incomes":      incomes,
		"totalMonthly": fmt.Sprintf("%.2f", service.MonthlyIncomeTotal(incomes)),
	})
}

// UpdateIncome updates an income source by id
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var income models.Income
	if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	income.ID = id

	if err := h.svc.UpdateIncome(&income); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Income updated",
		"income":  income,
	})
}

// DeleteIncome removes an income source by id
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteIncome(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Income deleted",
	})
}

// CreateExpense adds an expense
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddExpense(&expense); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"expense": expense,
	})
}

// ListExpenses returns a user's expenses with a category breakdown
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	expenses, err := h.svc.ListExpenses(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	breakdown := service.ExpenseBreakdown(expenses)
	byCategory := make([]map[string]interface{}, 0, len(breakdown.ByCategory))
	for _, cat := range breakdown.ByCategory {
		percentage := 0.0
		if breakdown.Total > 0 {
			percentage = cat.Amount / breakdown.Total * 100
		}
		byCategory = append(byCategory, map[string]interface{}{
			"name":       cat.Name,
			"amount":     fmt.Sprintf("%.2f", cat.Amount),
			"percentage": fmt.Sprintf("%.1f", percentage),
		})
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"expenses":   expenses,
		"byCategory": byCategory,
		"total":      fmt.Sprintf("%.2f", breakdown.Total),
	})
}

// UpdateExpense updates an expense by id
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var expense models.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	expense.ID = id

	if err := h.svc.UpdateExpense(&expense); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Expense updated",
		"expense": expense,
	})
}

// DeleteExpense removes an expense by id
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteExpense(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Expense deleted",
	})
}

// CreateDebt adds a debt
func (h *Handler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var debt models.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddDebt(&debt); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"debt":    debt,
	})
}

// ListDebts returns a user's debts with totals
func (h *Handler) ListDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	debts, err := h.svc.ListDebts(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	summary := service.DebtSummary(debts)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"debts":          debts,
		"total":          fmt.Sprintf("%.2f", summary.Total),
		"monthlyPayment": fmt.Sprintf("%.2f", summary.MonthlyPayment),
	})
}

// UpdateDebt updates a debt by id
func (h *Handler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var debt models.Debt
	if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	debt.ID = id

	if err := h.svc.UpdateDebt(&debt); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Debt updated",
		"debt":    debt,
	})
}

// DeleteDebt removes a debt by id
func (h *Handler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteDebt(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Debt deleted",
	})
}

// CreateSavingsGoal adds a savings goal
func (h *Handler) CreateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	var goal models.SavingsGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddSavingsGoal(&goal); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"goal":    goal,
	})
}

// ListSavingsGoals returns a user's savings goals with totals
func (h *Handler) ListSavingsGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	goals, err := h.svc.ListSavingsGoals(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var total, targetTotal float64
	for _, g := range goals {
		total += g.CurrentAmount
		targetTotal += g.TargetAmount
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"goals":       goals,
		"total":       fmt.Sprintf("%.2f", total),
		"targetTotal": fmt.Sprintf("%.2f", targetTotal),
	})
}

// UpdateSavingsGoal updates a savings goal by id
func (h *Handler) UpdateSavingsGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var goal models.SavingsGoal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	goal.ID = id

	if err := h.svc.UpdateSavingsGoal(&goal); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Savings goal updated",
		"goal":    goal,
	})
}

// DeleteSavingsGoal removes a savings goal by id
func (h *Handler) DeleteSavingsGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSavingsGoal(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Savings goal deleted",
	})
}

// CreateBill adds a bill
func (h *Handler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var bill models.Bill
	if err := json.NewDecoder(r.Body).Decode(&bill); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.AddBill(&bill); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"bill":    bill,
	})
}

// ListBills returns a user's bills with the total
func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	bills, err := h.svc.ListBills(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var total float64
	for _, b := range bills {
		total += b.Amount
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"bills":   bills,
		"total":   fmt.Sprintf("%.2f", total),
	})
}

// UpdateBill updates a bill by id
func (h *Handler) UpdateBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var bill models.Bill
	if err := json.NewDecoder(r.Body).Decode(&bill); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	bill.ID = id

	if err := h.svc.UpdateBill(&bill); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Bill updated",
		"bill":    bill,
	})
}

// DeleteBill removes a bill by id
func (h *Handler) DeleteBill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBill(id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Bill deleted",
	})
}
