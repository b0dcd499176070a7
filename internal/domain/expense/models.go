package expense

import (
	"errors"
	"time"
)

// Categories is the fixed set of expense categories accepted by the API.
var Categories = []string{
	"Groceries",
	"Dining Out",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Healthcare",
	"Travel",
	"Education",
	"Personal Care",
	"Miscellaneous",
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
	ErrExpenseNotFound = errors.New("expense not found")
	ErrInvalidCategory = errors.New("invalid expense category")
)

// Expense represents a single recorded spend owned by one user.
type Expense struct {
	ID            string    `json:"id"`
	UserID        int64     `json:"-"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Date          time.Time `json:"date"`
	PaymentMethod *string   `json:"paymentMethod,omitempty"`
	ReceiptURL    *string   `json:"receiptUrl,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CategoryTotal is a per-category aggregate over a date range.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

// CreateParams contains parameters for creating a new expense
type CreateParams struct {
	Amount        float64
	Description   string
	Category      string
	Date          time.Time
	PaymentMethod *string
	ReceiptURL    *string
	Notes         *string
}

// Validate validates the create parameters
func (p *CreateParams) Validate() error {
	if p.Description == "" {
		return errors.New("description is required")
	}
	if len(p.Description) > 255 {
		return errors.New("description must be 255 characters or less")
	}
	if p.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	if !IsValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// UpdateParams contains parameters for a partial expense update.
// Nil fields are left unchanged.
type UpdateParams struct {
	Amount        *float64
	Description   *string
	Category      *string
	Date          *time.Time
	PaymentMethod *string
	ReceiptURL    *string
	Notes         *string
}

// Validate validates the update parameters
func (p *UpdateParams) Validate() error {
	if p.Description != nil {
		if *p.Description == "" {
			return errors.New("description must not be empty")
		}
		if len(*p.Description) > 255 {
			return errors.New("description must be 255 characters or less")
		}
	}
	if p.Amount != nil && *p.Amount < 0 {
		return errors.New("amount must not be negative")
	}
	if p.Category != nil && !IsValidCategory(*p.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// ListFilter narrows an expense listing. Nil/zero fields are ignored.
type ListFilter struct {
	Category *string
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// IsValidCategory checks if the provided category is one of the fixed set
func IsValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}
