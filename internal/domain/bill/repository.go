package bill

import (
	"context"
	"time"
)

// Repository defines the interface for bill data access
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Bill, error)
	GetByID(ctx context.Context, id string) (*Bill, error)
	ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Bill, int, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Bill, error)
	Delete(ctx context.Context, id string) error

	// ListDueBetween returns unpaid bills for a user with a due date in
	// [from, to), ordered by due date.
	ListDueBetween(ctx context.Context, userID int64, from, to time.Time) ([]*Bill, error)

	// Pay marks a bill paid and, when successor is non-nil, inserts the
	// successor in the same database transaction. Either both writes commit
	// or neither does.
	Pay(ctx context.Context, id string, userID int64, successor *CreateParams) (*Bill, *Bill, error)
}
