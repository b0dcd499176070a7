package user

import "context"

// Repository defines the interface for user data access
type Repository interface {
	Create(ctx context.Context, params *CreateParams) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByOAuth(ctx context.Context, provider, oauthID string) (*User, error)
	Update(ctx context.Context, id int64, params *UpdateParams) (*User, error)
	// ListIDs returns the ids of every user, used by scheduled jobs
	// to fan out per-user work.
	ListIDs(ctx context.Context) ([]int64, error)
}
