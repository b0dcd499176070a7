package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"smartspend/internal/domain/warranty"
	"smartspend/internal/shared/middleware"
)

type WarrantyHandler struct {
	warrantyRepo warranty.Repository
}

func NewWarrantyHandler(warrantyRepo warranty.Repository) *WarrantyHandler {
	return &WarrantyHandler{warrantyRepo: warrantyRepo}
}

// Request/Response DTOs

type CreateWarrantyRequest struct {
	ProductName    string     `json:"productName"`
	PurchaseDate   time.Time  `json:"purchaseDate"`
	ExpirationDate time.Time  `json:"expirationDate"`
	Category       string     `json:"category"`
	Retailer       *string    `json:"retailer,omitempty"`
	PurchasePrice  *float64   `json:"purchasePrice,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	DocumentURLs   []string   `json:"documentUrls,omitempty"`
	ReminderDate   *time.Time `json:"reminderDate,omitempty"`
}

type UpdateWarrantyRequest struct {
	ProductName    *string    `json:"productName,omitempty"`
	PurchaseDate   *time.Time `json:"purchaseDate,omitempty"`
	ExpirationDate *time.Time `json:"expirationDate,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Retailer       *string    `json:"retailer,omitempty"`
	PurchasePrice  *float64   `json:"purchasePrice,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	DocumentURLs   []string   `json:"documentUrls,omitempty"`
	ReminderDate   *time.Time `json:"reminderDate,omitempty"`
}

type WarrantyResponse struct {
	*warranty.Warranty
	Status          string `json:"status"`
	DaysUntilExpiry int    `json:"daysUntilExpiry"`
}

type WarrantyListResponse struct {
	Warranties []WarrantyResponse `json:"warranties"`
	Pagination Pagination         `json:"pagination"`
}

func toWarrantyResponse(w *warranty.Warranty, now time.Time) WarrantyResponse {
	return WarrantyResponse{
		Warranty:        w,
		Status:          warranty.Classify(w.ExpirationDate, now),
		DaysUntilExpiry: warranty.DaysUntilExpiry(w.ExpirationDate, now),
	}
}

func toWarrantyResponses(warranties []*warranty.Warranty, now time.Time) []WarrantyResponse {
	out := make([]WarrantyResponse, 0, len(warranties))
	for _, w := range warranties {
		out = append(out, toWarrantyResponse(w, now))
	}
	return out
}

// HandleWarranties routes requests to the appropriate handler based on method
func (h *WarrantyHandler) HandleWarranties(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleListWarranties(w, r)
	case http.MethodPost:
		h.handleCreateWarranty(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// HandleWarrantyByID routes requests for a specific warranty
func (h *WarrantyHandler) HandleWarrantyByID(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetWarranty(w, r)
	case http.MethodPut:
		h.handleUpdateWarranty(w, r)
	case http.MethodDelete:
		h.handleDeleteWarranty(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *WarrantyHandler) handleListWarranties(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	filter := warranty.ListFilter{}
	q := r.URL.Query()

	if v := q.Get("category"); v != "" {
		filter.Category = &v
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

	warranties, total, err := h.warrantyRepo.ListByUserID(r.Context(), userID, filter)
	if err != nil {
		log.Printf("Error listing warranties for user %d: %v", userID, err)
		http.Error(w, "Failed to list warranties", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(WarrantyListResponse{
		Warranties: toWarrantyResponses(warranties, time.Now()),
		Pagination: Pagination{Page: page, Limit: limit, Total: total},
	})
}

func (h *WarrantyHandler) handleCreateWarranty(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req CreateWarrantyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("Error decoding create warranty request: %v", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := warranty.CreateParams{
		ProductName:    req.ProductName,
		PurchaseDate:   req.PurchaseDate,
		ExpirationDate: req.ExpirationDate,
		Category:       req.Category,
		Retailer:       req.Retailer,
		PurchasePrice:  req.PurchasePrice,
		Notes:          req.Notes,
		DocumentURLs:   req.DocumentURLs,
		ReminderDate:   req.ReminderDate,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.warrantyRepo.Create(r.Context(), userID, params)
	if err != nil {
		log.Printf("Error creating warranty for user %d: %v", userID, err)
		http.Error(w, "Failed to create warranty", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toWarrantyResponse(created, time.Now()))
}

func (h *WarrantyHandler) getOwnedWarranty(r *http.Request, userID int64) (*warranty.Warranty, error) {
	wty, err := h.warrantyRepo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		return nil, err
	}
	if wty == nil || wty.UserID != userID {
		return nil, warranty.ErrWarrantyNotFound
	}
	return wty, nil
}

func (h *WarrantyHandler) handleGetWarranty(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wty, err := h.getOwnedWarranty(r, userID)
	if err != nil {
		if errors.Is(err, warranty.ErrWarrantyNotFound) {
			http.Error(w, "Warranty not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting warranty: %v", err)
		http.Error(w, "Failed to get warranty", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toWarrantyResponse(wty, time.Now()))
}

func (h *WarrantyHandler) handleUpdateWarranty(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdateWarrantyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	params := warranty.UpdateParams{
		ProductName:    req.ProductName,
		PurchaseDate:   req.PurchaseDate,
		ExpirationDate: req.ExpirationDate,
		Category:       req.Category,
		Retailer:       req.Retailer,
		PurchasePrice:  req.PurchasePrice,
		Notes:          req.Notes,
		DocumentURLs:   req.DocumentURLs,
		ReminderDate:   req.ReminderDate,
	}

	if err := params.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.getOwnedWarranty(r, userID); err != nil {
		if errors.Is(err, warranty.ErrWarrantyNotFound) {
			http.Error(w, "Warranty not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting warranty: %v", err)
		http.Error(w, "Failed to update warranty", http.StatusInternalServerError)
		return
	}

	updated, err := h.warrantyRepo.Update(r.Context(), r.PathValue("id"), params)
	if err != nil {
		log.Printf("Error updating warranty: %v", err)
		http.Error(w, "Failed to update warranty", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toWarrantyResponse(updated, time.Now()))
}

func (h *WarrantyHandler) handleDeleteWarranty(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if _, err := h.getOwnedWarranty(r, userID); err != nil {
		if errors.Is(err, warranty.ErrWarrantyNotFound) {
			http.Error(w, "Warranty not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting warranty: %v", err)
		http.Error(w, "Failed to delete warranty", http.StatusInternalServerError)
		return
	}

	if err := h.warrantyRepo.Delete(r.Context(), r.PathValue("id")); err != nil {
		log.Printf("Error deleting warranty: %v", err)
		http.Error(w, "Failed to delete warranty", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleExpiringSoon lists the user's warranties expiring within the
// next thirty days, soonest first.
func (h *WarrantyHandler) HandleExpiringSoon(w http.ResponseWriter, r *http.Request) {
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
	to := now.Add(warranty.ExpiringSoonDays * 24 * time.Hour)

	warranties, err := h.warrantyRepo.ListExpiringBetween(r.Context(), userID, now, to)
	if err != nil {
		log.Printf("Error listing expiring warranties for user %d: %v", userID, err)
		http.Error(w, "Failed to list expiring warranties", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]WarrantyResponse{
		"warranties": toWarrantyResponses(warranties, now),
	})
}
