package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"smartspend/internal/domain/warranty"
)

const warrantyColumns = `id, user_id, product_name, purchase_date, expiration_date,
	category, retailer, purchase_price, notes, document_urls, reminder_date,
	created_at, updated_at`

type WarrantyRepository struct {
	db *DB
}

func NewWarrantyRepository(db *DB) *WarrantyRepository {
	return &WarrantyRepository{db: db}
}

func (r *WarrantyRepository) Create(ctx context.Context, userID int64, params warranty.CreateParams) (*warranty.Warranty, error) {
	query := `
		INSERT INTO warranties (id, user_id, product_name, purchase_date,
			expiration_date, category, retailer, purchase_price, notes,
			document_urls, reminder_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + warrantyColumns

	var w warranty.Warranty
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.ProductName, params.PurchaseDate,
		params.ExpirationDate, params.Category, params.Retailer,
		params.PurchasePrice, params.Notes, pq.Array(params.DocumentURLs),
		params.ReminderDate,
	).Scan(warrantyFields(&w)...)

	if err != nil {
		return nil, fmt.Errorf("failed to create warranty: %w", err)
	}

	return &w, nil
}

func (r *WarrantyRepository) GetByID(ctx context.Context, id string) (*warranty.Warranty, error) {
	query := `SELECT ` + warrantyColumns + ` FROM warranties WHERE id = $1`

	var w warranty.Warranty
	err := r.db.QueryRowContext(ctx, query, id).Scan(warrantyFields(&w)...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get warranty: %w", err)
	}

	return &w, nil
}

func (r *WarrantyRepository) ListByUserID(ctx context.Context, userID int64, filter warranty.ListFilter) ([]*warranty.Warranty, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM warranties " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count warranties: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM warranties %s ORDER BY expiration_date ASC LIMIT $%d OFFSET $%d",
		warrantyColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list warranties: %w", err)
	}
	defer rows.Close()

	warranties, err := scanWarranties(rows)
	if err != nil {
		return nil, 0, err
	}

	return warranties, total, nil
}

func (r *WarrantyRepository) Update(ctx context.Context, id string, params warranty.UpdateParams) (*warranty.Warranty, error) {
	// document_urls is replaced wholesale when provided, a nil slice
	// leaves the stored list unchanged.
	query := `
		UPDATE warranties
		SET product_name = COALESCE($1, product_name),
		    purchase_date = COALESCE($2, purchase_date),
		    expiration_date = COALESCE($3, expiration_date),
		    category = COALESCE($4, category),
		    retailer = COALESCE($5, retailer),
		    purchase_price = COALESCE($6, purchase_price),
		    notes = COALESCE($7, notes),
		    document_urls = COALESCE($8, document_urls),
		    reminder_date = COALESCE($9, reminder_date),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING ` + warrantyColumns

	var urls any
	if params.DocumentURLs != nil {
		urls = pq.Array(params.DocumentURLs)
	}

	var w warranty.Warranty
	err := r.db.QueryRowContext(
		ctx, query,
		params.ProductName, params.PurchaseDate, params.ExpirationDate,
		params.Category, params.Retailer, params.PurchasePrice, params.Notes,
		urls, params.ReminderDate, id,
	).Scan(warrantyFields(&w)...)

	if err == sql.ErrNoRows {
		return nil, warranty.ErrWarrantyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update warranty: %w", err)
	}

	return &w, nil
}

func (r *WarrantyRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM warranties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete warranty: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return warranty.ErrWarrantyNotFound
	}

	return nil
}

func (r *WarrantyRepository) ListExpiringBetween(ctx context.Context, userID int64, from, to time.Time) ([]*warranty.Warranty, error) {
	query := `
		SELECT ` + warrantyColumns + `
		FROM warranties
		WHERE user_id = $1 AND expiration_date >= $2 AND expiration_date < $3
		ORDER BY expiration_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expiring warranties: %w", err)
	}
	defer rows.Close()

	return scanWarranties(rows)
}

func warrantyFields(w *warranty.Warranty) []any {
	return []any{
		&w.ID, &w.UserID, &w.ProductName, &w.PurchaseDate, &w.ExpirationDate,
		&w.Category, &w.Retailer, &w.PurchasePrice, &w.Notes,
		pq.Array(&w.DocumentURLs), &w.ReminderDate, &w.CreatedAt, &w.UpdatedAt,
	}
}

func scanWarranties(rows *sql.Rows) ([]*warranty.Warranty, error) {
	var warranties []*warranty.Warranty
	for rows.Next() {
		var w warranty.Warranty
		if err := rows.Scan(warrantyFields(&w)...); err != nil {
			return nil, fmt.Errorf("failed to scan warranty: %w", err)
		}
		warranties = append(warranties, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating warranties: %w", err)
	}

	return warranties, nil
}
