package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"smartspend/internal/domain/notification"
	"smartspend/internal/shared/middleware"
)

type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type RegisterDeviceRequest struct {
	Token    string `json:"token"`
	Platform string `json:"platform"`
}

type UpdatePreferenceRequest struct {
	BillsEnabled      *bool `json:"billsEnabled,omitempty"`
	WarrantiesEnabled *bool `json:"warrantiesEnabled,omitempty"`
	GeneralEnabled    *bool `json:"generalEnabled,omitempty"`
}

// HandleRegisterDevice records a push token for the authenticated user
func (h *NotificationHandler) HandleRegisterDevice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req RegisterDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	device, err := h.service.RegisterDevice(r.Context(), userID, &notification.RegisterDeviceParams{
		Token:    req.Token,
		Platform: req.Platform,
	})
	if err != nil {
		if errors.Is(err, notification.ErrEmptyToken) || errors.Is(err, notification.ErrInvalidPlatform) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Printf("Error registering device for user %d: %v", userID, err)
		http.Error(w, "Failed to register device", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(device)
}

// HandlePreferences serves and updates notification preferences
func (h *NotificationHandler) HandlePreferences(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleGetPreferences(w, r)
	case http.MethodPut:
		h.handleUpdatePreferences(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *NotificationHandler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	pref, err := h.service.GetPreference(r.Context(), userID)
	if err != nil {
		log.Printf("Error getting notification preferences for user %d: %v", userID, err)
		http.Error(w, "Failed to get preferences", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}

func (h *NotificationHandler) handleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req UpdatePreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pref, err := h.service.UpdatePreference(r.Context(), userID, &notification.UpdatePreferenceParams{
		BillsEnabled:      req.BillsEnabled,
		WarrantiesEnabled: req.WarrantiesEnabled,
		GeneralEnabled:    req.GeneralEnabled,
	})
	if err != nil {
		log.Printf("Error updating notification preferences for user %d: %v", userID, err)
		http.Error(w, "Failed to update preferences", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pref)
}
