package notification

import (
	"errors"
	"time"
)

// Notification categories
const (
	CategoryBills      = "bills"
	CategoryWarranties = "warranties"
	CategoryGeneral    = "general"
)

// Domain errors
var (
	ErrDeviceNotFound  = errors.New("device token not found")
	ErrInvalidPlatform = errors.New("platform must be ios, android or web")
	ErrEmptyToken      = errors.New("device token must not be empty")
)

var validPlatforms = map[string]struct{}{
	"ios":     {},
	"android": {},
	"web":     {},
}

// DeviceToken is a push-capable device registered by a user.
type DeviceToken struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"-"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preference controls which notification categories a user receives.
type Preference struct {
	UserID             int64     `json:"-"`
	BillsEnabled       bool      `json:"billsEnabled"`
	WarrantiesEnabled  bool      `json:"warrantiesEnabled"`
	GeneralEnabled     bool      `json:"generalEnabled"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultPreference returns the opt-in defaults for a new user.
func DefaultPreference(userID int64) *Preference {
	return &Preference{
		UserID:            userID,
		BillsEnabled:      true,
		WarrantiesEnabled: true,
		GeneralEnabled:    true,
	}
}

// Message is a single push payload addressed to one user.
type Message struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Category string            `json:"category"`
	Data     map[string]string `json:"data,omitempty"`
}

// RegisterDeviceParams contains parameters for registering a device
type RegisterDeviceParams struct {
	Token    string
	Platform string
}

// Validate validates the device registration parameters
func (p *RegisterDeviceParams) Validate() error {
	if p.Token == "" {
		return ErrEmptyToken
	}
	if _, ok := validPlatforms[p.Platform]; !ok {
		return ErrInvalidPlatform
	}
	return nil
}

// UpdatePreferenceParams contains parameters for a partial preference
// update. Nil fields are left unchanged.
type UpdatePreferenceParams struct {
	BillsEnabled      *bool
	WarrantiesEnabled *bool
	GeneralEnabled    *bool
}
