package warranty

import (
	"errors"
	"time"
)

// Categories is the fixed set of warranty categories accepted by the API.
var Categories = []string{
	"Electronics & Appliances",
	"Furniture",
	"Automotive",
	"Home Improvement",
	"Jewelry & Watches",
	"Sports & Outdoors",
	"Tools",
	"Office Equipment",
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
	ErrWarrantyNotFound = errors.New("warranty not found")
	ErrInvalidCategory  = errors.New("invalid warranty category")
)

// Warranty tracks product coverage owned by one user.
type Warranty struct {
	ID             string     `json:"id"`
	UserID         int64      `json:"-"`
	ProductName    string     `json:"productName"`
	PurchaseDate   time.Time  `json:"purchaseDate"`
	ExpirationDate time.Time  `json:"expirationDate"`
	Category       string     `json:"category"`
	Retailer       *string    `json:"retailer,omitempty"`
	PurchasePrice  *float64   `json:"purchasePrice,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	DocumentURLs   []string   `json:"documentUrls,omitempty"`
	ReminderDate   *time.Time `json:"reminderDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new warranty
type CreateParams struct {
	ProductName    string
	PurchaseDate   time.Time
	ExpirationDate time.Time
	Category       string
	Retailer       *string
	PurchasePrice  *float64
	Notes          *string
	DocumentURLs   []string
	ReminderDate   *time.Time
}

// Validate validates the create parameters
func (p *CreateParams) Validate() error {
	if p.ProductName == "" {
		return errors.New("product name is required")
	}
	if len(p.ProductName) > 128 {
		return errors.New("product name must be 128 characters or less")
	}
	if p.PurchaseDate.IsZero() {
		return errors.New("purchase date is required")
	}
	if p.ExpirationDate.IsZero() {
		return errors.New("expiration date is required")
	}
	if p.ExpirationDate.Before(p.PurchaseDate) {
		return errors.New("expiration date must not precede purchase date")
	}
	if !IsValidCategory(p.Category) {
		return ErrInvalidCategory
	}
	if p.PurchasePrice != nil && *p.PurchasePrice < 0 {
		return errors.New("purchase price must not be negative")
	}
	return nil
}

// UpdateParams contains parameters for a partial warranty update.
// Nil fields are left unchanged.
type UpdateParams struct {
	ProductName    *string
	PurchaseDate   *time.Time
	ExpirationDate *time.Time
	Category       *string
	Retailer       *string
	PurchasePrice  *float64
	Notes          *string
	DocumentURLs   []string
	ReminderDate   *time.Time
}

// Validate validates the update parameters
func (p *UpdateParams) Validate() error {
	if p.ProductName != nil {
		if *p.ProductName == "" {
			return errors.New("product name must not be empty")
		}
		if len(*p.ProductName) > 128 {
			return errors.New("product name must be 128 characters or less")
		}
	}
	if p.Category != nil && !IsValidCategory(*p.Category) {
		return ErrInvalidCategory
	}
	if p.PurchasePrice != nil && *p.PurchasePrice < 0 {
		return errors.New("purchase price must not be negative")
	}
	return nil
}

// ListFilter narrows a warranty listing. Nil/zero fields are ignored.
type ListFilter struct {
	Category *string
	Limit    int
	Offset   int
}

// IsValidCategory checks if the provided category is one of the fixed set
func IsValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}
