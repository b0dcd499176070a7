package notification

import "context"

// Repository defines the interface for notification data access
type Repository interface {
	// UpsertDevice registers a token, reactivating it if it was
	// previously deactivated.
	UpsertDevice(ctx context.Context, userID int64, params *RegisterDeviceParams) (*DeviceToken, error)
	ListActiveDevices(ctx context.Context, userID int64) ([]*DeviceToken, error)
	DeactivateDevice(ctx context.Context, token string) error
	GetPreference(ctx context.Context, userID int64) (*Preference, error)
	SavePreference(ctx context.Context, pref *Preference) (*Preference, error)
}
