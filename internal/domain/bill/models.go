package bill

import (
	"errors"
	"time"
)

// Recurring period values
const (
	PeriodWeekly    = "Weekly"
	PeriodMonthly   = "Monthly"
	PeriodQuarterly = "Quarterly"
	PeriodAnnually  = "Annually"
)

var validPeriods = map[string]struct{}{
	PeriodWeekly:    {},
	PeriodMonthly:   {},
	PeriodQuarterly: {},
	PeriodAnnually:  {},
}

// Categories is the fixed set of bill categories accepted by the API.
var Categories = []string{
	"Rent / Mortgage",
	"Electricity",
	"Water",
	"Gas",
	"Internet",
	"Phone",
	"Insurance",
	"Subscription",
	"Credit Card",
	"Loan",
	"Other Utilities",
}

var categorySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		set[c] = struct{}{}
	}
	return set
}()

// Domain errors
var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrInvalidCategory = errors.New("invalid bill category")
	ErrInvalidPeriod   = errors.New("invalid recurring period")
)

// Bill represents a payment obligation owned by a single user.
type Bill struct {
	ID              string     `json:"id"`
	UserID          int64      `json:"-"`
	Name            string     `json:"name"`
	Amount          float64    `json:"amount"`
	DueDate         time.Time  `json:"dueDate"`
	Category        string     `json:"category"`
	IsPaid          bool       `json:"isPaid"`
	IsRecurring     bool       `json:"isRecurring"`
	RecurringPeriod *string    `json:"recurringPeriod,omitempty"` // Meaningful only when IsRecurring
	ReminderDate    *time.Time `json:"reminderDate,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new bill
type CreateParams struct {
	Name            string
	Amount          float64
	DueDate         time.Time
	Category        string
	IsRecurring     bool
	RecurringPeriod *string
	ReminderDate    *time.Time
	Notes           *string
}

// Validate validates the create parameters
func (p *CreateParams) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if len(p.Name) > 128 {
		return errors.New("name must be 128 characters or less")
	}
	if p.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if p.DueDate.IsZero() {
		return errors.New("due date is required")
	}
	if !IsValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	if p.RecurringPeriod != nil && !IsValidPeriod(*p.RecurringPeriod) {
		return ErrInvalidPeriod
	}
	if p.Notes != nil && len(*p.Notes) > 1024 {
		return errors.New("notes must be 1024 characters or less")
	}
	return nil
}

// UpdateParams contains parameters for a partial bill update.
// Nil fields are left unchanged.
type UpdateParams struct {
	Name            *string
	Amount          *float64
	DueDate         *time.Time
	Category        *string
	IsPaid          *bool
	IsRecurring     *bool
	RecurringPeriod *string
	ReminderDate    *time.Time
	Notes           *string
}

// Validate validates the update parameters
func (p *UpdateParams) Validate() error {
	if p.Name != nil {
		if *p.Name == "" {
			return errors.New("name must not be empty")
		}
		if len(*p.Name) > 128 {
			return errors.New("name must be 128 characters or less")
		}
	}
	if p.Amount != nil && *p.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if p.Category != nil && !IsValidCategory(*p.Category) {
		return ErrInvalidCategory
	}
	if p.RecurringPeriod != nil && !IsValidPeriod(*p.RecurringPeriod) {
		return ErrInvalidPeriod
	}
	if p.Notes != nil && len(*p.Notes) > 1024 {
		return errors.New("notes must be 1024 characters or less")
	}
	return nil
}

// ListFilter narrows a bill listing. Nil/zero fields are ignored.
type ListFilter struct {
	IsPaid   *bool
	Upcoming bool // unpaid, due within the next 7 days
	Category *string
	Limit    int
	Offset   int
}

// IsValidCategory checks if the provided category is one of the fixed set
func IsValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}

// IsValidPeriod checks if the provided recurring period is valid
func IsValidPeriod(p string) bool {
	_, ok := validPeriods[p]
	return ok
}
