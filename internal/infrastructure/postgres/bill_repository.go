package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartspend/internal/domain/bill"
)

const billColumns = `id, user_id, name, amount, due_date, category, is_paid,
	is_recurring, recurring_period, reminder_date, notes, created_at, updated_at`

type BillRepository struct {
	db *DB
}

func NewBillRepository(db *DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, userID int64, params bill.CreateParams) (*bill.Bill, error) {
	query := `
		INSERT INTO bills (id, user_id, name, amount, due_date, category,
			is_recurring, recurring_period, reminder_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + billColumns

	var b bill.Bill
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Name, params.Amount, params.DueDate,
		params.Category, params.IsRecurring, params.RecurringPeriod,
		params.ReminderDate, params.Notes,
	).Scan(billFields(&b)...)

	if err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return &b, nil
}

func (r *BillRepository) GetByID(ctx context.Context, id string) (*bill.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1`

	var b bill.Bill
	err := r.db.QueryRowContext(ctx, query, id).Scan(billFields(&b)...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return &b, nil
}

func (r *BillRepository) ListByUserID(ctx context.Context, userID int64, filter bill.ListFilter) ([]*bill.Bill, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}

	if filter.IsPaid != nil {
		args = append(args, *filter.IsPaid)
		where += fmt.Sprintf(" AND is_paid = $%d", len(args))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Upcoming {
		args = append(args, time.Now(), time.Now().Add(7*24*time.Hour))
		where += fmt.Sprintf(" AND is_paid = FALSE AND due_date >= $%d AND due_date < $%d", len(args)-1, len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM bills " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bills: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM bills %s ORDER BY due_date ASC, name ASC LIMIT $%d OFFSET $%d",
		billColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	bills, err := scanBills(rows)
	if err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

func (r *BillRepository) Update(ctx context.Context, id string, params bill.UpdateParams) (*bill.Bill, error) {
	query := `
		UPDATE bills
		SET name = COALESCE($1, name),
		    amount = COALESCE($2, amount),
		    due_date = COALESCE($3, due_date),
		    category = COALESCE($4, category),
		    is_paid = COALESCE($5, is_paid),
		    is_recurring = COALESCE($6, is_recurring),
		    recurring_period = COALESCE($7, recurring_period),
		    reminder_date = COALESCE($8, reminder_date),
		    notes = COALESCE($9, notes),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $10
		RETURNING ` + billColumns

	var b bill.Bill
	err := r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Amount, params.DueDate, params.Category,
		params.IsPaid, params.IsRecurring, params.RecurringPeriod,
		params.ReminderDate, params.Notes, id,
	).Scan(billFields(&b)...)

	if err == sql.ErrNoRows {
		return nil, bill.ErrBillNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return &b, nil
}

func (r *BillRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bills WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return bill.ErrBillNotFound
	}

	return nil
}

func (r *BillRepository) ListDueBetween(ctx context.Context, userID int64, from, to time.Time) ([]*bill.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE user_id = $1 AND is_paid = FALSE AND due_date >= $2 AND due_date < $3
		ORDER BY due_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list due bills: %w", err)
	}
	defer rows.Close()

	return scanBills(rows)
}

// Pay marks a bill as paid and inserts its successor, when given, in a
// single transaction so a recurring bill can never lose its next cycle.
func (r *BillRepository) Pay(ctx context.Context, id string, userID int64, successor *bill.CreateParams) (*bill.Bill, *bill.Bill, error) {
	var paid, next *bill.Bill

	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		payQuery := `
			UPDATE bills
			SET is_paid = TRUE, updated_at = CURRENT_TIMESTAMP
			WHERE id = $1 AND user_id = $2
			RETURNING ` + billColumns

		var b bill.Bill
		err := tx.QueryRowContext(ctx, payQuery, id, userID).Scan(billFields(&b)...)
		if err == sql.ErrNoRows {
			return bill.ErrBillNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to mark bill paid: %w", err)
		}
		paid = &b

		if successor == nil {
			return nil
		}

		insertQuery := `
			INSERT INTO bills (id, user_id, name, amount, due_date, category,
				is_recurring, recurring_period, reminder_date, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING ` + billColumns

		var s bill.Bill
		err = tx.QueryRowContext(
			ctx, insertQuery,
			uuid.New().String(), userID, successor.Name, successor.Amount,
			successor.DueDate, successor.Category, successor.IsRecurring,
			successor.RecurringPeriod, successor.ReminderDate, successor.Notes,
		).Scan(billFields(&s)...)
		if err != nil {
			return fmt.Errorf("failed to create next bill: %w", err)
		}
		next = &s

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return paid, next, nil
}

func billFields(b *bill.Bill) []any {
	return []any{
		&b.ID, &b.UserID, &b.Name, &b.Amount, &b.DueDate, &b.Category,
		&b.IsPaid, &b.IsRecurring, &b.RecurringPeriod, &b.ReminderDate,
		&b.Notes, &b.CreatedAt, &b.UpdatedAt,
	}
}

func scanBills(rows *sql.Rows) ([]*bill.Bill, error) {
	var bills []*bill.Bill
	for rows.Next() {
		var b bill.Bill
		if err := rows.Scan(billFields(&b)...); err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}

	return bills, nil
}
