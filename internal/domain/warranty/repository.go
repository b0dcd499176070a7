package warranty

import (
	"context"
	"time"
)

// Repository defines the interface for warranty data access
type Repository interface {
	Create(ctx context.Context, userID int64, params CreateParams) (*Warranty, error)
	GetByID(ctx context.Context, id string) (*Warranty, error)
	ListByUserID(ctx context.Context, userID int64, filter ListFilter) ([]*Warranty, int, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Warranty, error)
	Delete(ctx context.Context, id string) error

	// ListExpiringBetween returns the user's warranties whose expiration
	// date falls in [from, to), soonest first.
	ListExpiringBetween(ctx context.Context, userID int64, from, to time.Time) ([]*Warranty, error)
}
