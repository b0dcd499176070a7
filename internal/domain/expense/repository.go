package expense

import (
	"context"
	"time"
)

// Repository defines the interface for expense data access
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Expense, error)
	GetByID(ctx context.Context, id string) (*Expense, error)
	ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Expense, int, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Expense, error)
	Delete(ctx context.Context, id string) error

	// TotalsByCategory aggregates the user's expenses with a date in
	// [from, to) into per-category totals, largest first.
	TotalsByCategory(ctx context.Context, userID int64, from, to time.Time) ([]CategoryTotal, error)
}
