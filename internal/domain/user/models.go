package user

import (
	"errors"
	"time"
)

// Theme values accepted in preferences
var validThemes = map[string]struct{}{
	"light":  {},
	"dark":   {},
	"system": {},
}

// Domain errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidTheme    = errors.New("theme must be light, dark or system")
	ErrInvalidLead     = errors.New("reminder lead must be between 1 and 30 days")
	ErrInvalidCurrency = errors.New("currency must be a 3-letter ISO code")
)

// Preferences holds per-user display and reminder settings.
type Preferences struct {
	Currency         string `json:"currency"`
	ReminderLeadDays int    `json:"reminderLeadDays"`
	Theme            string `json:"theme"`
}

// DefaultPreferences returns the preferences applied to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{Currency: "USD", ReminderLeadDays: 3, Theme: "system"}
}

// User owns bills, expenses and warranties.
type User struct {
	ID            int64       `json:"id"`
	Email         string      `json:"email"`
	Name          string      `json:"name"`
	PasswordHash  *string     `json:"-"` // Nil for OAuth-created accounts
	OAuthProvider *string     `json:"oauthProvider,omitempty"`
	OAuthID       *string     `json:"-"`
	AvatarURL     *string     `json:"avatarUrl,omitempty"`
	Preferences   Preferences `json:"preferences"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// CreateParams contains parameters for creating a user
type CreateParams struct {
	Email         string
	Name          string
	PasswordHash  *string
	OAuthProvider *string
	OAuthID       *string
	AvatarURL     *string
}

// UpdateParams contains parameters for a partial profile update.
// Nil fields are left unchanged. ClearAvatar removes the stored
// avatar and takes precedence over AvatarURL.
type UpdateParams struct {
	Name        *string
	AvatarURL   *string
	ClearAvatar bool
	Preferences *Preferences
}

// Validate validates the update parameters
func (p *UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("name must not be empty")
	}
	if p.Preferences != nil {
		if len(p.Preferences.Currency) != 3 {
			return ErrInvalidCurrency
		}
		if p.Preferences.ReminderLeadDays < 1 || p.Preferences.ReminderLeadDays > 30 {
			return ErrInvalidLead
		}
		if _, ok := validThemes[p.Preferences.Theme]; !ok {
			return ErrInvalidTheme
		}
	}
	return nil
}
