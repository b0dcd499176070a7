package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"smartspend/internal/domain/notification"
)

type NotificationRepository struct {
	db *DB
}

func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) UpsertDevice(ctx context.Context, userID int64, params *notification.RegisterDeviceParams) (*notification.DeviceToken, error) {
	query := `
		INSERT INTO device_tokens (id, user_id, token, platform, active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    platform = EXCLUDED.platform,
		    active = TRUE,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id, user_id, token, platform, active, created_at, updated_at
	`

	var d notification.DeviceToken
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Token, params.Platform,
	).Scan(&d.ID, &d.UserID, &d.Token, &d.Platform, &d.Active, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}

	return &d, nil
}

func (r *NotificationRepository) ListActiveDevices(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	query := `
		SELECT id, user_id, token, platform, active, created_at, updated_at
		FROM device_tokens
		WHERE user_id = $1 AND active = TRUE
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	var devices []*notification.DeviceToken
	for rows.Next() {
		var d notification.DeviceToken
		err := rows.Scan(&d.ID, &d.UserID, &d.Token, &d.Platform, &d.Active, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		devices = append(devices, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device tokens: %w", err)
	}

	return devices, nil
}

func (r *NotificationRepository) DeactivateDevice(ctx context.Context, token string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE device_tokens SET active = FALSE, updated_at = CURRENT_TIMESTAMP WHERE token = $1`,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return notification.ErrDeviceNotFound
	}

	return nil
}

func (r *NotificationRepository) GetPreference(ctx context.Context, userID int64) (*notification.Preference, error) {
	query := `
		SELECT user_id, bills_enabled, warranties_enabled, general_enabled, updated_at
		FROM notification_preferences
		WHERE user_id = $1
	`

	var p notification.Preference
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID, &p.BillsEnabled, &p.WarrantiesEnabled, &p.GeneralEnabled, &p.UpdatedAt,
	)
	if err != nil {
		// sql.ErrNoRows deliberately passes through, the service maps it
		// to the defaults.
		return nil, err
	}

	return &p, nil
}

func (r *NotificationRepository) SavePreference(ctx context.Context, pref *notification.Preference) (*notification.Preference, error) {
	query := `
		INSERT INTO notification_preferences (user_id, bills_enabled, warranties_enabled, general_enabled)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET bills_enabled = EXCLUDED.bills_enabled,
		    warranties_enabled = EXCLUDED.warranties_enabled,
		    general_enabled = EXCLUDED.general_enabled,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING user_id, bills_enabled, warranties_enabled, general_enabled, updated_at
	`

	var p notification.Preference
	err := r.db.QueryRowContext(
		ctx, query,
		pref.UserID, pref.BillsEnabled, pref.WarrantiesEnabled, pref.GeneralEnabled,
	).Scan(&p.UserID, &p.BillsEnabled, &p.WarrantiesEnabled, &p.GeneralEnabled, &p.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to save notification preference: %w", err)
	}

	return &p, nil
}
