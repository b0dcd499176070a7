package scheduler

import "context"

// Job is a unit of work the pool runs on a user's behalf. Reminder
// delivery is the main implementation; anything implementing the
// interface can be submitted.
type Job interface {
	// Execute runs the job. The context carries the per-job timeout
	// and must be honored for cancellation.
	Execute(ctx context.Context) error

	// UserID identifies whose data the job touches, for logs and spans.
	UserID() string

	// Description is a short human-readable label for logs.
	Description() string
}
