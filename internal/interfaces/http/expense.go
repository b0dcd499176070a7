package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"smartspend/internal/domain/expense"
	"smartspend/internal/shared/middleware"
)

type ExpenseHandler struct {
	expenseRepo expense.Repository
}

func NewExpenseHandler(expenseRepo expense.Repository) *ExpenseHandler {
	return &ExpenseHandler{expenseRepo: expenseRepo}
}

// Request/Response DTOs

type CreateExpenseRequest struct {
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Date          time.Time `json:"date"`
	PaymentMethod *string   `json:"paymentMethod,omitempty"`
	ReceiptURL    *string   `json:"receiptUrl,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
}

type UpdateExpenseRequest struct {
	Amount        *float64   `json:"amount,omitempty"`
	Description   *string    `json:"description,omitempty"`
	Category      *string    `json:"category,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	ReceiptURL    *string    `json:"receiptUrl,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

type ExpenseListResponse struct {
	Expenses   []*expense.Expense `json:"expenses"`
	Pagination Pagination         `json:"pagination"`
}

// HandleExpenses routes requests to the appropriate handler based on method
func (h *ExpenseHandler) HandleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListExpenses(w, r)
	case http.MethodPost:
		h.handleCreateExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleExpenseByID routes requests for a specific expense
func (h *ExpenseHandler) HandleExpenseByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetExpense(w, r)
	case http.MethodPut:
		h.handleUpdateExpense(w, r)
	case http.MethodDelete:
		h.handleDeleteExpense(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *ExpenseHandler) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := expense.ListFilter{}
	q := r.URL.Query()

	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	if v := q.Get("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid from date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "Invalid to date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		filter.To = &to
	}

	page := 1
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			page = p
		}
	}
	limit := 20
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	expenses, total, err := h.expenseRepo.ListByUserID(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing expenses for user %d: %v", userID, err)
		http.Error(w, "Failed to list expenses", http.StatusInternalServerError)
		return
	}

	if expenses == nil {
		expenses = []*expense.Expense{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ExpenseListResponse{
		Expenses:   expenses,
		Pagination: Pagination{Page: page, Limit: limit, Total: total},
	})
}

func (h *ExpenseHandler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create expense request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := expense.CreateParams{
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		ReceiptURL:    req.ReceiptURL,
		Notes:         req.Notes,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.expenseRepo.Create(r.Context(), userID, params)
	if err != nil {
		log.Printf("Error creating expense for user %d: %v", userID, err)
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(e)
}

// getOwnedExpense loads an expense and verifies ownership. A missing
// expense and someone else's expense are indistinguishable to the caller.
func (h *ExpenseHandler) getOwnedExpense(r *http.Request, userID int64) (*expense.Expense, error) {
	e, err := h.expenseRepo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if e == nil || e.UserID != userID {
		return nil, expense.ErrExpenseNotFound
	}
	return e, nil
}

func (h *ExpenseHandler) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	e, err := h.getOwnedExpense(r, userID)
	if err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting expense: %v", err)
		http.Error(w, "Failed to get expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

func (h *ExpenseHandler) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := expense.UpdateParams{
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		ReceiptURL:    req.ReceiptURL,
		Notes:         req.Notes,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.getOwnedExpense(r, userID); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting expense: %v", err)
		http.Error(w, "Failed to update expense", http.StatusInternalServerError)
		return
	}

	e, err := h.expenseRepo.Update(r.Context(), r.PathValue("id"), params)
	if err != nil {
		log.Printf("Error updating expense: %v", err)
		http.Error(w, "Failed to update expense", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(e)
}

func (h *ExpenseHandler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := h.getOwnedExpense(r, userID); err != nil {
		if errors.Is(err, expense.ErrExpenseNotFound) {
			http.Error(w, "Expense not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting expense: %v", err)
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	if err := h.expenseRepo.Delete(r.Context(), r.PathValue("id")); err != nil {
		log.Printf("Error deleting expense: %v", err)
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
