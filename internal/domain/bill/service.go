package bill

import (
	"context"
	"errors"
	"time"
)

// upcomingWindow is the lookahead used for the upcoming-reminders listing.
const upcomingWindow = 7 * 24 * time.Hour

// summaryPageSize is the page size used when loading the full bill set
// for projection.
const summaryPageSize = 500

// Service contains the business logic for bill operations
type Service struct {
	repo Repository
}

// NewService creates a new bill service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateBill creates a new bill for a user, deriving the reminder date from
// the due date when none is supplied.
func (s *Service) CreateBill(ctx context.Context, userID int64, params CreateParams) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.ReminderDate == nil {
		reminder := ReminderFor(params.DueDate)
		params.ReminderDate = &reminder
	}

	return s.repo.Create(ctx, userID, params)
}

// GetBill retrieves a bill by ID scoped to its owner. A bill owned by a
// different user is reported as not found, never as forbidden.
func (s *Service) GetBill(ctx context.Context, id string, userID int64) (*Bill, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil || b.UserID != userID {
		return nil, ErrBillNotFound
	}
	return b, nil
}

// ListBills returns a page of the user's bills plus the total matching count.
func (s *Service) ListBills(ctx context.Context, userID int64, filter ListFilter) ([]*Bill, int, error) {
	if userID <= 0 {
		return nil, 0, errors.New("valid user ID is required")
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListByUserID(ctx, userID, filter)
}

// UpdateBill applies a partial update to a bill after verifying ownership.
func (s *Service) UpdateBill(ctx context.Context, id string, userID int64, params UpdateParams) (*Bill, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.GetBill(ctx, id, userID); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, params)
}

// DeleteBill deletes a bill after verifying ownership.
func (s *Service) DeleteBill(ctx context.Context, id string, userID int64) error {
	if _, err := s.GetBill(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// PayResult is the outcome of paying a bill.
type PayResult struct {
	Bill      *Bill `json:"bill"`
	Successor *Bill `json:"nextBill,omitempty"`
}

// Pay marks a bill as paid. For a recurring bill it also creates the next
// occurrence: due date advanced by the recurring period, reminder three days
// before, unpaid, carrying forward name, amount, category and notes. Both
// writes happen in a single transaction; if the successor insert fails the
// paid flag is rolled back.
//
// Paying an already-paid recurring bill creates another successor. Callers
// that want idempotency must check IsPaid first.
func (s *Service) Pay(ctx context.Context, id string, userID int64) (*PayResult, error) {
	b, err := s.GetBill(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	paid, successor, err := s.repo.Pay(ctx, id, userID, Successor(b))
	if err != nil {
		return nil, err
	}

	return &PayResult{Bill: paid, Successor: successor}, nil
}

// UpcomingReminders returns the user's unpaid bills due within the next
// seven days, ordered by due date.
func (s *Service) UpcomingReminders(ctx context.Context, userID int64, now time.Time) ([]*Bill, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.repo.ListDueBetween(ctx, userID, now, now.Add(upcomingWindow))
}

// Summary loads all of the user's bills, paging through the repository, and
// projects them through the given filter and sort, returning the visible set
// with its aggregates.
func (s *Service) Summary(ctx context.Context, userID int64, f Filter, sortSpec Sort, now time.Time) (*Projection, error) {
	var bills []*Bill
	for offset := 0; ; offset += summaryPageSize {
		page, _, err := s.repo.ListByUserID(ctx, userID, ListFilter{Limit: summaryPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		bills = append(bills, page...)
		if len(page) < summaryPageSize {
			break
		}
	}

	p := Project(bills, f, sortSpec, now)
	return &p, nil
}
