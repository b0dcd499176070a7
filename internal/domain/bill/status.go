package bill

import "time"

// Status labels
const (
	StatusPaid     = "Paid"
	StatusInvalid  = "Invalid Date"
	StatusOverdue  = "Overdue"
	StatusDueSoon  = "Due Soon"
	StatusUpcoming = "Upcoming"
)

// dueSoonWindow is how far ahead of the due date a bill counts as "Due Soon".
const dueSoonWindow = 3 * 24 * time.Hour

// Status is a derived bill status. Priority orders statuses for
// "sort by status": lower values sort first ascending.
type Status struct {
	Label    string `json:"label"`
	Priority int    `json:"priority"`
}

// Classify derives the status of a bill from its due date and paid flag
// relative to now. It is pure: the same inputs always yield the same status.
// A zero due date is treated as unparseable.
func Classify(dueDate time.Time, isPaid bool, now time.Time) Status {
	if isPaid {
		return Status{Label: StatusPaid, Priority: 4}
	}
	if dueDate.IsZero() {
		return Status{Label: StatusInvalid, Priority: 0}
	}
	if dueDate.Before(now) {
		return Status{Label: StatusOverdue, Priority: 1}
	}
	if dueDate.Add(-dueSoonWindow).Before(now) {
		return Status{Label: StatusDueSoon, Priority: 2}
	}
	return Status{Label: StatusUpcoming, Priority: 3}
}
