package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartspend/internal/domain/expense"
)

// MockExpenseRepo implements expense.Repository for testing
type MockExpenseRepo struct {
	CreateFunc           func(ctx context.Context, userID int64, params expense.CreateParams) (*expense.Expense, error)
	GetByIDFunc          func(ctx context.Context, id string) (*expense.Expense, error)
	ListByUserIDFunc     func(ctx context.Context, userID int64, filter expense.ListFilter) ([]*expense.Expense, int, error)
	UpdateFunc           func(ctx context.Context, id string, params expense.UpdateParams) (*expense.Expense, error)
	DeleteFunc           func(ctx context.Context, id string) error
	TotalsByCategoryFunc func(ctx context.Context, userID int64, from, to time.Time) ([]expense.CategoryTotal, error)
}

func (m *MockExpenseRepo) Create(ctx context.Context, userID int64, params expense.CreateParams) (*expense.Expense, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockExpenseRepo) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockExpenseRepo) ListByUserID(ctx context.Context, userID int64, filter expense.ListFilter) ([]*expense.Expense, int, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID, filter)
	}
	return nil, 0, nil
}

func (m *MockExpenseRepo) Update(ctx context.Context, id string, params expense.UpdateParams) (*expense.Expense, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockExpenseRepo) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockExpenseRepo) TotalsByCategory(ctx context.Context, userID int64, from, to time.Time) ([]expense.CategoryTotal, error) {
	if m.TotalsByCategoryFunc != nil {
		return m.TotalsByCategoryFunc(ctx, userID, from, to)
	}
	return nil, nil
}

func TestHandleExpenses_List(t *testing.T) {
	t.Run("Date Range Is Forwarded", func(t *testing.T) {
		var gotFilter expense.ListFilter
		repo := &MockExpenseRepo{
			ListByUserIDFunc: func(ctx context.Context, userID int64, filter expense.ListFilter) ([]*expense.Expense, int, error) {
				gotFilter = filter
				return []*expense.Expense{
					{ID: "e1", UserID: 1, Description: "Lunch", Amount: 14.50, Category: "Dining Out"},
				}, 1, nil
			},
		}
		handler := NewExpenseHandler(repo)

		req := authedRequest(http.MethodGet, "/api/expenses/?from=2026-03-01&to=2026-03-31&category=Dining+Out", nil)
		rr := httptest.NewRecorder()
		handler.HandleExpenses(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
		}
		if gotFilter.From == nil || gotFilter.From.Day() != 1 {
			t.Errorf("from filter not forwarded: %v", gotFilter.From)
		}
		if gotFilter.Category == nil || *gotFilter.Category != "Dining Out" {
			t.Errorf("category filter not forwarded: %v", gotFilter.Category)
		}

		var resp ExpenseListResponse
		json.NewDecoder(rr.Body).Decode(&resp)
		if len(resp.Expenses) != 1 {
			t.Errorf("response length = %d, want 1", len(resp.Expenses))
		}
	})

	t.Run("Bad Date", func(t *testing.T) {
		handler := NewExpenseHandler(&MockExpenseRepo{})

		req := authedRequest(http.MethodGet, "/api/expenses/?from=03-01-2026", nil)
		rr := httptest.NewRecorder()
		handler.HandleExpenses(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("Repository Error", func(t *testing.T) {
		repo := &MockExpenseRepo{
			ListByUserIDFunc: func(ctx context.Context, userID int64, filter expense.ListFilter) ([]*expense.Expense, int, error) {
				return nil, 0, errors.New("db error")
			},
		}
		handler := NewExpenseHandler(repo)

		req := authedRequest(http.MethodGet, "/api/expenses/", nil)
		rr := httptest.NewRecorder()
		handler.HandleExpenses(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want %d", rr.Code, http.StatusInternalServerError)
		}
	})
}

func TestHandleExpenses_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]any{
				"amount":      32.80,
				"description": "Weekly shop",
				"category":    "Groceries",
				"date":        time.Now().Format(time.RFC3339),
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Description",
			body: map[string]any{
				"amount":   32.80,
				"category": "Groceries",
				"date":     time.Now().Format(time.RFC3339),
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Category",
			body: map[string]any{
				"amount":      32.80,
				"description": "Weekly shop",
				"category":    "Rent / Mortgage",
				"date":        time.Now().Format(time.RFC3339),
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockExpenseRepo{
				CreateFunc: func(ctx context.Context, userID int64, params expense.CreateParams) (*expense.Expense, error) {
					return &expense.Expense{
						ID: "e1", UserID: userID,
						Amount: params.Amount, Description: params.Description, Category: params.Category,
					}, nil
				},
			}
			handler := NewExpenseHandler(repo)

			body, _ := json.Marshal(tt.body)
			req := authedRequest(http.MethodPost, "/api/expenses/", body)
			rr := httptest.NewRecorder()
			handler.HandleExpenses(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestHandleExpenseByID(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		mockRepo       func() *MockExpenseRepo
		expectedStatus int
	}{
		{
			name:   "Get Success",
			method: http.MethodGet,
			mockRepo: func() *MockExpenseRepo {
				return &MockExpenseRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*expense.Expense, error) {
						return &expense.Expense{ID: id, UserID: 1, Description: "Lunch"}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Get Owned By Another User",
			method: http.MethodGet,
			mockRepo: func() *MockExpenseRepo {
				return &MockExpenseRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*expense.Expense, error) {
						return &expense.Expense{ID: id, UserID: 7, Description: "Lunch"}, nil
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Delete Success",
			method: http.MethodDelete,
			mockRepo: func() *MockExpenseRepo {
				return &MockExpenseRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*expense.Expense, error) {
						return &expense.Expense{ID: id, UserID: 1, Description: "Lunch"}, nil
					},
				}
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "Delete Missing",
			method: http.MethodDelete,
			mockRepo: func() *MockExpenseRepo {
				return &MockExpenseRepo{
					GetByIDFunc: func(ctx context.Context, id string) (*expense.Expense, error) {
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewExpenseHandler(tt.mockRepo())

			mux := http.NewServeMux()
			mux.HandleFunc("/api/expenses/{id}", handler.HandleExpenseByID)

			req := authedRequest(tt.method, "/api/expenses/e1", nil)
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
		})
	}
}
