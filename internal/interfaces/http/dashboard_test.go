package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartspend/internal/domain/bill"
	"smartspend/internal/domain/expense"
	"smartspend/internal/domain/warranty"
)

func TestHandleDashboardSummary(t *testing.T) {
	now := time.Now()

	billRepo := &MockBillRepo{
		ListByUserIDFunc: func(ctx context.Context, userID int64, filter bill.ListFilter) ([]*bill.Bill, int, error) {
			return []*bill.Bill{
				{ID: "b1", UserID: 1, Name: "Rent", Amount: 1200, DueDate: now.AddDate(0, 0, 20)},
				{ID: "b2", UserID: 1, Name: "Internet", Amount: 60, DueDate: now.AddDate(0, 0, -3)},
				{ID: "b3", UserID: 1, Name: "Phone", Amount: 40, DueDate: now.AddDate(0, 0, 2), IsPaid: true},
			}, 3, nil
		},
		ListDueBetweenFunc: func(ctx context.Context, userID int64, from, to time.Time) ([]*bill.Bill, error) {
			return []*bill.Bill{
				{ID: "b4", UserID: 1, Name: "Water", Amount: 25, DueDate: now.AddDate(0, 0, 2)},
			}, nil
		},
	}
	expenseRepo := &MockExpenseRepo{
		TotalsByCategoryFunc: func(ctx context.Context, userID int64, from, to time.Time) ([]expense.CategoryTotal, error) {
			if from.Day() != 1 {
				t.Errorf("expected range starting at the first of the month, got %v", from)
			}
			return []expense.CategoryTotal{
				{Category: "Groceries", Total: 320.50, Count: 8},
				{Category: "Dining Out", Total: 120, Count: 4},
			}, nil
		},
	}
	warrantyRepo := &MockWarrantyRepo{
		ListExpiringBetweenFunc: func(ctx context.Context, userID int64, from, to time.Time) ([]*warranty.Warranty, error) {
			return []*warranty.Warranty{
				{ID: "w1", UserID: 1, ProductName: "Laptop", ExpirationDate: now.AddDate(0, 0, 12)},
			}, nil
		},
	}

	handler := NewDashboardHandler(bill.NewService(billRepo), expenseRepo, warrantyRepo)

	req := authedRequest(http.MethodGet, "/api/dashboard/summary", nil)
	rr := httptest.NewRecorder()
	handler.HandleSummary(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body: %s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp DashboardResponse
	json.NewDecoder(rr.Body).Decode(&resp)

	// unpaid bills only: 1200 + 60, one of them overdue
	if resp.Bills.TotalUnpaid != 1260 {
		t.Errorf("totalUnpaid = %v, want 1260", resp.Bills.TotalUnpaid)
	}
	if resp.Bills.OverdueCount != 1 {
		t.Errorf("overdueCount = %d, want 1", resp.Bills.OverdueCount)
	}
	if len(resp.Bills.DueSoon) != 1 {
		t.Errorf("dueSoon = %d, want 1", len(resp.Bills.DueSoon))
	}
	if resp.Expenses.MonthTotal != 440.50 {
		t.Errorf("monthTotal = %v, want 440.50", resp.Expenses.MonthTotal)
	}
	if len(resp.Expenses.ByCategory) != 2 {
		t.Errorf("byCategory = %d, want 2", len(resp.Expenses.ByCategory))
	}
	if len(resp.Warranties.ExpiringSoon) != 1 {
		t.Fatalf("expiringSoon = %d, want 1", len(resp.Warranties.ExpiringSoon))
	}
	if resp.Warranties.ExpiringSoon[0].Status != warranty.StatusExpiringSoon {
		t.Errorf("warranty status = %q, want %q", resp.Warranties.ExpiringSoon[0].Status, warranty.StatusExpiringSoon)
	}
}
