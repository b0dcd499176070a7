package http

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"smartspend/internal/domain/bill"
	"smartspend/internal/domain/expense"
	"smartspend/internal/domain/warranty"
	"smartspend/internal/shared/middleware"
)

type DashboardHandler struct {
	billService  *bill.Service
	expenseRepo  expense.Repository
	warrantyRepo warranty.Repository
}

func NewDashboardHandler(billService *bill.Service, expenseRepo expense.Repository, warrantyRepo warranty.Repository) *DashboardHandler {
	return &DashboardHandler{
		billService:  billService,
		expenseRepo:  expenseRepo,
		warrantyRepo: warrantyRepo,
	}
}

type DashboardResponse struct {
	Bills struct {
		TotalUnpaid  float64        `json:"totalUnpaid"`
		OverdueCount int            `json:"overdueCount"`
		DueSoon      []BillResponse `json:"dueSoon"`
	} `json:"bills"`
	Expenses struct {
		MonthTotal float64                 `json:"monthTotal"`
		ByCategory []expense.CategoryTotal `json:"byCategory"`
	} `json:"expenses"`
	Warranties struct {
		ExpiringSoon []WarrantyResponse `json:"expiringSoon"`
	} `json:"warranties"`
}

// HandleSummary aggregates bills, current-month spending and expiring
// warranties into a single dashboard payload.
func (h *DashboardHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	now := time.Now()
	var resp DashboardResponse

	projection, err := h.billService.Summary(ctx, userID, bill.Filter{Status: bill.FilterUnpaid}, bill.Sort{Key: bill.SortByDueDate}, now)
	if err != nil {
		log.Printf("Error building dashboard bills for user %d: %v", userID, err)
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}
	resp.Bills.TotalUnpaid = projection.TotalAmount
	resp.Bills.OverdueCount = projection.OverdueCount

	dueSoon, err := h.billService.UpcomingReminders(ctx, userID, now)
	if err != nil {
		log.Printf("Error listing due-soon bills for user %d: %v", userID, err)
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}
	resp.Bills.DueSoon = toBillResponses(dueSoon, now)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	totals, err := h.expenseRepo.TotalsByCategory(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		log.Printf("Error aggregating expenses for user %d: %v", userID, err)
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}
	if totals == nil {
		totals = []expense.CategoryTotal{}
	}
	resp.Expenses.ByCategory = totals
	for _, t := range totals {
		resp.Expenses.MonthTotal += t.Total
	}

	expiring, err := h.warrantyRepo.ListExpiringBetween(ctx, userID, now, now.Add(warranty.ExpiringSoonDays*24*time.Hour))
	if err != nil {
		log.Printf("Error listing expiring warranties for user %d: %v", userID, err)
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}
	resp.Warranties.ExpiringSoon = toWarrantyResponses(expiring, now)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
