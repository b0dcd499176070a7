package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"smartspend/internal/domain/bill"
	"smartspend/internal/shared/middleware"
)

type BillHandler struct {
	billService *bill.Service
}

func NewBillHandler(billService *bill.Service) *BillHandler {
	return &BillHandler{billService: billService}
}

// Request/Response DTOs

type CreateBillRequest struct {
	Name            string     `json:"name"`
	Amount          float64    `json:"amount"`
	DueDate         time.Time  `json:"dueDate"`
	Category        string     `json:"category"`
	IsRecurring     bool       `json:"isRecurring"`
	RecurringPeriod *string    `json:"recurringPeriod,omitempty"`
	ReminderDate    *time.Time `json:"reminderDate,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

type UpdateBillRequest struct {
	Name            *string    `json:"name,omitempty"`
	Amount          *float64   `json:"amount,omitempty"`
	DueDate         *time.Time `json:"dueDate,omitempty"`
	Category        *string    `json:"category,omitempty"`
	IsPaid          *bool      `json:"isPaid,omitempty"`
	IsRecurring     *bool      `json:"isRecurring,omitempty"`
	RecurringPeriod *string    `json:"recurringPeriod,omitempty"`
	ReminderDate    *time.Time `json:"reminderDate,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

type BillResponse struct {
	*bill.Bill
	Status bill.Status `json:"status"`
}

type BillListResponse struct {
	Bills      []BillResponse `json:"bills"`
	Pagination Pagination     `json:"pagination"`
}

type PayBillResponse struct {
	Bill     BillResponse  `json:"bill"`
	NextBill *BillResponse `json:"nextBill,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func toBillResponse(b *bill.Bill, now time.Time) BillResponse {
	return BillResponse{
		Bill:   b,
		Status: bill.Classify(b.DueDate, b.IsPaid, now),
	}
}

func toBillResponses(bills []*bill.Bill, now time.Time) []BillResponse {
	out := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, toBillResponse(b, now))
	}
	return out
}

// HandleBills routes requests to the appropriate handler based on method
func (h *BillHandler) HandleBills(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListBills(w, r)
	case http.MethodPost:
		h.handleCreateBill(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleBillByID routes requests for a specific bill
func (h *BillHandler) HandleBillByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetBill(w, r)
	case http.MethodPut:
		h.handleUpdateBill(w, r)
	case http.MethodDelete:
		h.handleDeleteBill(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BillHandler) handleListBills(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := bill.ListFilter{}
	q := r.URL.Query()

	if v := q.Get("isPaid"); v != "" {
		isPaid, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "Invalid isPaid value", http.StatusBadRequest)
			return
		}
		filter.IsPaid = &isPaid
	}
	if v := q.Get("category"); v != "" {
		filter.Category = &v
	}
	filter.Upcoming = q.Get("upcoming") == "true"

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

	bills, total, err := h.billService.ListBills(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing bills for user %d: %v", userID, err)
		http.Error(w, "Failed to list bills", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillListResponse{
		Bills:      toBillResponses(bills, time.Now()),
		Pagination: Pagination{Page: page, Limit: limit, Total: total},
	})
}

func (h *BillHandler) handleCreateBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create bill request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := bill.CreateParams{
		Name:            req.Name,
		Amount:          req.Amount,
		DueDate:         req.DueDate,
		Category:        req.Category,
		IsRecurring:     req.IsRecurring,
		RecurringPeriod: req.RecurringPeriod,
		ReminderDate:    req.ReminderDate,
		Notes:           req.Notes,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.billService.CreateBill(r.Context(), userID, params)
	if err != nil {
		log.Printf("Error creating bill for user %d: %v", userID, err)
		http.Error(w, "Failed to create bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toBillResponse(b, time.Now()))
}

func (h *BillHandler) handleGetBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	b, err := h.billService.GetBill(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting bill: %v", err)
		http.Error(w, "Failed to get bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toBillResponse(b, time.Now()))
}

func (h *BillHandler) handleUpdateBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := bill.UpdateParams{
		Name:            req.Name,
		Amount:          req.Amount,
		DueDate:         req.DueDate,
		Category:        req.Category,
		IsPaid:          req.IsPaid,
		IsRecurring:     req.IsRecurring,
		RecurringPeriod: req.RecurringPeriod,
		ReminderDate:    req.ReminderDate,
		Notes:           req.Notes,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.billService.UpdateBill(r.Context(), r.PathValue("id"), userID, params)
	if err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating bill: %v", err)
		http.Error(w, "Failed to update bill", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toBillResponse(b, time.Now()))
}

func (h *BillHandler) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.billService.DeleteBill(r.Context(), r.PathValue("id"), userID); err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting bill: %v", err)
		http.Error(w, "Failed to delete bill", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandlePayBill marks a bill paid and returns the successor for
// recurring bills.
func (h *BillHandler) HandlePayBill(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	result, err := h.billService.Pay(r.Context(), r.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, bill.ErrBillNotFound) {
			http.Error(w, "Bill not found", http.StatusNotFound)
			return
		}
		log.Printf("Error paying bill: %v", err)
		http.Error(w, "Failed to pay bill", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	resp := PayBillResponse{Bill: toBillResponse(result.Bill, now)}
	if result.Successor != nil {
		next := toBillResponse(result.Successor, now)
		resp.NextBill = &next
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleUpcomingReminders lists unpaid bills due within the next week.
func (h *BillHandler) HandleUpcomingReminders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now()
	bills, err := h.billService.UpcomingReminders(r.Context(), userID, now)
	if err != nil {
		log.Printf("Error listing upcoming reminders for user %d: %v", userID, err)
		http.Error(w, "Failed to list reminders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]BillResponse{
		"bills": toBillResponses(bills, now),
	})
}

type BillSummaryResponse struct {
	Bills        []BillResponse `json:"bills"`
	TotalAmount  float64        `json:"totalAmount"`
	OverdueCount int            `json:"overdueCount"`
}

// HandleBillSummary returns a filtered, sorted view of the user's bills
// with totals.
func (h *BillHandler) HandleBillSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	f := bill.Filter{
		Status: q.Get("status"),
		Search: q.Get("search"),
	}
	sortSpec := bill.Sort{
		Key:  q.Get("sortBy"),
		Desc: q.Get("sortDir") == "desc",
	}

	now := time.Now()
	projection, err := h.billService.Summary(r.Context(), userID, f, sortSpec, now)
	if err != nil {
		log.Printf("Error building bill summary for user %d: %v", userID, err)
		http.Error(w, "Failed to build summary", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BillSummaryResponse{
		Bills:        toBillResponses(projection.Visible, now),
		TotalAmount:  projection.TotalAmount,
		OverdueCount: projection.OverdueCount,
	})
}
