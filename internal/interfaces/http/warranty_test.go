package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartspend/internal/domain/warranty"
)

// MockWarrantyRepo implements warranty.Repository for testing
type MockWarrantyRepo struct {
	CreateFunc              func(ctx context.Context, userID int64, params warranty.CreateParams) (*warranty.Warranty, error)
	GetByIDFunc             func(ctx context.Context, id string) (*warranty.Warranty, error)
	ListByUserIDFunc        func(ctx context.Context, userID int64, filter warranty.ListFilter) ([]*warranty.Warranty, int, error)
	UpdateFunc              func(ctx context.Context, id string, params warranty.UpdateParams) (*warranty.Warranty, error)
	DeleteFunc              func(ctx context.Context, id string) error
	ListExpiringBetweenFunc func(ctx context.Context, userID int64, from, to time.Time) ([]*warranty.Warranty, error)
}

func (m *MockWarrantyRepo) Create(ctx context.Context, userID int64, params warranty.CreateParams) (*warranty.Warranty, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockWarrantyRepo) GetByID(ctx context.Context, id string) (*warranty.Warranty, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockWarrantyRepo) ListByUserID(ctx context.Context, userID int64, filter warranty.ListFilter) ([]*warranty.Warranty, int, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, filter)
	}
	return nil, 0, nil
}

func (m *MockWarrantyRepo) Update(ctx context.Context, id string, params warranty.UpdateParams) (*warranty.Warranty, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockWarrantyRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockWarrantyRepo) ListExpiringBetween(ctx context.Context, userID int64, from, to time.Time) ([]*warranty.Warranty, error) {
	if m.ListExpiringBetweenFunc != nil {
		return m.ListExpiringBetweenFunc(ctx, userID, from, to)
	}
	return nil, nil
}

func TestHandleWarranties_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"productName":    "Laptop",
				"purchaseDate":   time.Now().AddDate(-1, 0, 0).Format(time.RFC3339),
				"expirationDate": time.Now().AddDate(1, 0, 0).Format(time.RFC3339),
				"category":       "Electronics & Appliances",
				"documentUrls":   []string{"https://example.com/receipt.pdf"},
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Product Name",
			body: map[string]any{
				"purchaseDate":   time.Now().AddDate(-1, 0, 0).Format(time.RFC3339),
				"expirationDate": time.Now().AddDate(1, 0, 0).Format(time.RFC3339),
				"category":       "Electronics & Appliances",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Category",
			body: map[string]any{
				"productName":    "Laptop",
				"purchaseDate":   time.Now().AddDate(-1, 0, 0).Format(time.RFC3339),
				"expirationDate": time.Now().AddDate(1, 0, 0).Format(time.RFC3339),
				"category":       "Groceries",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockWarrantyRepo{
				CreateFunc: func(ctx context.Context, userID int64, params warranty.CreateParams) (*warranty.Warranty, error) {
					return &warranty.Warranty{
						ID: "w1", UserID: userID,
						ProductName:    params.ProductName,
						ExpirationDate: params.ExpirationDate,
						Category:       params.Category,
						DocumentURLs:   params.DocumentURLs,
					}, nil
				},
			}
			handler := NewWarrantyHandler(repo)

			body, _ := json.Marshal(tt.body)
			req := authedRequest(http.MethodPost, "/api/warranties/", body)
			rr := httptest.NewRecorder()
			handler.HandleWarranties(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp WarrantyResponse
				json.NewDecoder(rr.Body).Decode(&resp)
				if resp.Status != warranty.StatusActive {
					t.Errorf("status = %q, want %q", resp.Status, warranty.StatusActive)
				}
				if resp.DaysUntilExpiry <= warranty.ExpiringSoonDays {
					t.Errorf("daysUntilExpiry = %d, expected beyond the expiring window", resp.DaysUntilExpiry)
				}
			}
		})
	}
}

func TestHandleWarrantyByID_Get(t *testing.T) {
	tests := []struct {
		name           string
		expiresIn      time.Duration
		owner          int64
		expectedStatus int
		expectedLabel  string
	}{
		{
			name:           "Active",
			expiresIn:      90 * 24 * time.Hour,
			owner:          1,
			expectedStatus: http.StatusOK,
			expectedLabel:  warranty.StatusActive,
		},
		{
			name:           "Expiring Soon",
			expiresIn:      10 * 24 * time.Hour,
			owner:          1,
			expectedStatus: http.StatusOK,
			expectedLabel:  warranty.StatusExpiringSoon,
		},
		{
			name:           "Expired",
			expiresIn:      -24 * time.Hour,
			owner:          1,
			expectedStatus: http.StatusOK,
			expectedLabel:  warranty.StatusExpired,
		},
		{
			name:           "Owned By Another User",
			expiresIn:      90 * 24 * time.Hour,
			owner:          9,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockWarrantyRepo{
				GetByIDFunc: func(ctx context.Context, id string) (*warranty.Warranty, error) {
					return &warranty.Warranty{
						ID: id, UserID: tt.owner,
						ProductName:    "Laptop",
						ExpirationDate: time.Now().Add(tt.expiresIn),
					}, nil
				},
			}
			handler := NewWarrantyHandler(repo)

			mux := http.NewServeMux()
			mux.HandleFunc("/api/warranties/{id}", handler.HandleWarrantyByID)

			req := authedRequest(http.MethodGet, "/api/warranties/w1", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				var resp WarrantyResponse
				json.NewDecoder(rr.Body).Decode(&resp)
				if resp.Status != tt.expectedLabel {
					t.Errorf("status label = %q, want %q", resp.Status, tt.expectedLabel)
				}
			}
		})
	}
}

func TestHandleExpiringSoon(t *testing.T) {
	repo := &MockWarrantyRepo{
		ListExpiringBetweenFunc: func(ctx context.Context, userID int64, from, to time.Time) ([]*warranty.Warranty, error) {
			window := to.Sub(from)
			if window != warranty.ExpiringSoonDays*24*time.Hour {
				t.Errorf("window = %v, want %d days", window, warranty.ExpiringSoonDays)
			}
			return []*warranty.Warranty{
				{ID: "w1", UserID: userID, ProductName: "Laptop", ExpirationDate: from.Add(5 * 24 * time.Hour)},
			}, nil
		},
	}
	handler := NewWarrantyHandler(repo)

	req := authedRequest(http.MethodGet, "/api/warranties/expiring/soon", nil)
	rr := httptest.NewRecorder()
	handler.HandleExpiringSoon(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}

	var resp map[string][]WarrantyResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if len(resp["warranties"]) != 1 {
		t.Fatalf("warranties = %d, want 1", len(resp["warranties"]))
	}
	if resp["warranties"][0].Status != warranty.StatusExpiringSoon {
		t.Errorf("status = %q, want %q", resp["warranties"][0].Status, warranty.StatusExpiringSoon)
	}
}
