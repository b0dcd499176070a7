package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// Service handles notification business logic
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice records a device token for push delivery.
func (s *Service) RegisterDevice(ctx context.Context, userID int64, params *RegisterDeviceParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	device, err := s.repo.UpsertDevice(ctx, userID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to register device: %w", err)
	}
	return device, nil
}

// GetPreference returns the user's notification preference, falling
// back to the defaults when none has been saved yet.
func (s *Service) GetPreference(ctx context.Context, userID int64) (*Preference, error) {
	pref, err := s.repo.GetPreference(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultPreference(userID), nil
		}
		return nil, fmt.Errorf("failed to get notification preference: %w", err)
	}
	return pref, nil
}

// UpdatePreference applies a partial preference update.
func (s *Service) UpdatePreference(ctx context.Context, userID int64, params *UpdatePreferenceParams) (*Preference, error) {
	pref, err := s.GetPreference(ctx, userID)
	if err != nil {
		return nil, err
	}
	if params.BillsEnabled != nil {
		pref.BillsEnabled = *params.BillsEnabled
	}
	if params.WarrantiesEnabled != nil {
		pref.WarrantiesEnabled = *params.WarrantiesEnabled
	}
	if params.GeneralEnabled != nil {
		pref.GeneralEnabled = *params.GeneralEnabled
	}
	saved, err := s.repo.SavePreference(ctx, pref)
	if err != nil {
		return nil, fmt.Errorf("failed to save notification preference: %w", err)
	}
	return saved, nil
}

// SendToUser pushes a message to every active device of a user,
// honoring the user's category preference. Tokens rejected by the
// push provider are deactivated.
func (s *Service) SendToUser(ctx context.Context, userID int64, msg *Message) error {
	pref, err := s.GetPreference(ctx, userID)
	if err != nil {
		return err
	}
	if !categoryEnabled(pref, msg.Category) {
		return nil
	}

	devices, err := s.repo.ListActiveDevices(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list devices: %w", err)
	}
	if len(devices) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(devices))
	for _, d := range devices {
		tokens = append(tokens, d.Token)
	}

	invalid, err := s.messenger.SendMulticast(ctx, tokens, msg)
	for _, token := range invalid {
		if derr := s.repo.DeactivateDevice(ctx, token); derr != nil {
			log.Printf("Failed to deactivate stale device token: %v", derr)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

func categoryEnabled(pref *Preference, category string) bool {
	switch category {
	case CategoryBills:
		return pref.BillsEnabled
	case CategoryWarranties:
		return pref.WarrantiesEnabled
	default:
		return pref.GeneralEnabled
	}
}
