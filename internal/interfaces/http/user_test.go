package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartspend/internal/domain/user"
	"smartspend/internal/shared/middleware"
)

func TestHandleMe_Get(t *testing.T) {
	repo := &MockUserRepo{
		GetByIDFunc: func(ctx context.Context, id int64) (*user.User, error) {
			return &user.User{ID: id, Email: "u@example.com", Name: "U", Preferences: user.DefaultPreferences()}, nil
		},
	}
	handler := NewUserHandler(repo)

	req := authedRequest(http.MethodGet, "/api/users/me", nil)
	rr := httptest.NewRecorder()
	handler.HandleMe(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp user.User
	json.NewDecoder(rr.Body).Decode(&resp)
	if resp.Email != "u@example.com" {
		t.Errorf("email = %q, want u@example.com", resp.Email)
	}
	if resp.Preferences.ReminderLeadDays != 3 {
		t.Errorf("reminderLeadDays = %d, want 3", resp.Preferences.ReminderLeadDays)
	}
}

func TestHandleMe_GetUnauthorized(t *testing.T) {
	handler := NewUserHandler(&MockUserRepo{})

	req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
	rr := httptest.NewRecorder()
	handler.HandleMe(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestHandleMe_Update(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name:           "Update Name",
			body:           map[string]any{"name": "Renamed"},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Update Preferences",
			body: map[string]any{
				"preferences": map[string]any{"currency": "EUR", "reminderLeadDays": 5, "theme": "dark"},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Invalid Theme",
			body: map[string]any{
				"preferences": map[string]any{"currency": "EUR", "reminderLeadDays": 5, "theme": "neon"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Lead Days Out Of Range",
			body: map[string]any{
				"preferences": map[string]any{"currency": "EUR", "reminderLeadDays": 90, "theme": "dark"},
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockUserRepo{
				UpdateFunc: func(ctx context.Context, id int64, params *user.UpdateParams) (*user.User, error) {
					u := &user.User{ID: id, Email: "u@example.com", Name: "U", Preferences: user.DefaultPreferences()}
					if params.Name != nil {
						u.Name = *params.Name
					}
					if params.Preferences != nil {
						u.Preferences = *params.Preferences
					}
					return u, nil
				},
			}
			handler := NewUserHandler(repo)

			body, _ := json.Marshal(tt.body)
			req := authedRequest(http.MethodPut, "/api/users/me", body)
			rr := httptest.NewRecorder()
			handler.HandleMe(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestHandleAvatar_Delete(t *testing.T) {
	var gotParams *user.UpdateParams
	repo := &MockUserRepo{
		UpdateFunc: func(ctx context.Context, id int64, params *user.UpdateParams) (*user.User, error) {
			gotParams = params
			return &user.User{ID: id, Email: "u@example.com", Name: "U"}, nil
		},
	}
	handler := NewUserHandler(repo)

	req := authedRequest(http.MethodDelete, "/api/users/me/avatar", nil)
	rr := httptest.NewRecorder()
	handler.HandleAvatar(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if gotParams == nil || !gotParams.ClearAvatar {
		t.Error("expected update with ClearAvatar set")
	}
}

func TestHandleAvatar_MethodNotAllowed(t *testing.T) {
	handler := NewUserHandler(&MockUserRepo{})

	req := authedRequest(http.MethodGet, "/api/users/me/avatar", nil)
	rr := httptest.NewRecorder()
	handler.HandleAvatar(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusMethodNotAllowed)
	}
}

func TestHandleMe_NotFound(t *testing.T) {
	handler := NewUserHandler(&MockUserRepo{})

	req, _ := http.NewRequest(http.MethodGet, "/api/users/me", nil)
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, int64(99))
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.HandleMe(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNotFound)
	}
}
