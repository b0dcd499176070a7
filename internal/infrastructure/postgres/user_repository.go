package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"smartspend/internal/domain/user"
)

const userColumns = `id, email, name, password_hash, oauth_provider, oauth_id,
	avatar_url, currency, reminder_lead_days, theme, created_at, updated_at`

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, params *user.CreateParams) (*user.User, error) {
	prefs := user.DefaultPreferences()

	query := `
		INSERT INTO users (email, name, password_hash, oauth_provider, oauth_id,
			avatar_url, currency, reminder_lead_days, theme)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns

	var u user.User
	err := r.db.QueryRowContext(
		ctx, query,
		params.Email, params.Name, params.PasswordHash, params.OAuthProvider,
		params.OAuthID, params.AvatarURL, prefs.Currency,
		prefs.ReminderLeadDays, prefs.Theme,
	).Scan(userFields(&u)...)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, user.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(userFields(&u)...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(userFields(&u)...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) GetByOAuth(ctx context.Context, provider, oauthID string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE oauth_provider = $1 AND oauth_id = $2`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, provider, oauthID).Scan(userFields(&u)...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by oauth identity: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) Update(ctx context.Context, id int64, params *user.UpdateParams) (*user.User, error) {
	var currency *string
	var leadDays *int
	var theme *string
	if params.Preferences != nil {
		currency = &params.Preferences.Currency
		leadDays = &params.Preferences.ReminderLeadDays
		theme = &params.Preferences.Theme
	}

	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    avatar_url = CASE WHEN $2::boolean THEN NULL ELSE COALESCE($3, avatar_url) END,
		    currency = COALESCE($4, currency),
		    reminder_lead_days = COALESCE($5, reminder_lead_days),
		    theme = COALESCE($6, theme),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $7
		RETURNING ` + userColumns

	var u user.User
	err := r.db.QueryRowContext(
		ctx, query,
		params.Name, params.ClearAvatar, params.AvatarURL, currency, leadDays, theme, id,
	).Scan(userFields(&u)...)

	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &u, nil
}

func (r *UserRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list user ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user ids: %w", err)
	}

	return ids, nil
}

func userFields(u *user.User) []any {
	return []any{
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.OAuthProvider,
		&u.OAuthID, &u.AvatarURL, &u.Preferences.Currency,
		&u.Preferences.ReminderLeadDays, &u.Preferences.Theme,
		&u.CreatedAt, &u.UpdatedAt,
	}
}
