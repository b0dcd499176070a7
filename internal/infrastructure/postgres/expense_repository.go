package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartspend/internal/domain/expense"
)

const expenseColumns = `id, user_id, amount, description, category, date,
	payment_method, receipt_url, notes, created_at, updated_at`

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, userID int64, params expense.CreateParams) (*expense.Expense, error) {
	query := `
		INSERT INTO expenses (id, user_id, amount, description, category, date,
			payment_method, receipt_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + expenseColumns

	var e expense.Expense
	err := r.db.QueryRowContext(
		ctx, query,
		uuid.New().String(), userID, params.Amount, params.Description,
		params.Category, params.Date, params.PaymentMethod, params.ReceiptURL,
		params.Notes,
	).Scan(expenseFields(&e)...)

	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &e, nil
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id string) (*expense.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`

	var e expense.Expense
	err := r.db.QueryRowContext(ctx, query, id).Scan(expenseFields(&e)...)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &e, nil
}

func (r *ExpenseRepository) ListByUserID(ctx context.Context, userID int64, filter expense.ListFilter) ([]*expense.Expense, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}

	if filter.Category != nil {
		args = append(args, *filter.Category)
		where += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND date < $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM expenses " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	args = append(args, filter.Limit, filter.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM expenses %s ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		expenseColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*expense.Expense
	for rows.Next() {
		var e expense.Expense
		if err := rows.Scan(expenseFields(&e)...); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, total, nil
}

func (r *ExpenseRepository) Update(ctx context.Context, id string, params expense.UpdateParams) (*expense.Expense, error) {
	query := `
		UPDATE expenses
		SET amount = COALESCE($1, amount),
		    description = COALESCE($2, description),
		    category = COALESCE($3, category),
		    date = COALESCE($4, date),
		    payment_method = COALESCE($5, payment_method),
		    receipt_url = COALESCE($6, receipt_url),
		    notes = COALESCE($7, notes),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $8
		RETURNING ` + expenseColumns

	var e expense.Expense
	err := r.db.QueryRowContext(
		ctx, query,
		params.Amount, params.Description, params.Category, params.Date,
		params.PaymentMethod, params.ReceiptURL, params.Notes, id,
	).Scan(expenseFields(&e)...)

	if err == sql.ErrNoRows {
		return nil, expense.ErrExpenseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}

	return &e, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return expense.ErrExpenseNotFound
	}

	return nil
}

func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, userID int64, from, to time.Time) ([]expense.CategoryTotal, error) {
	query := `
		SELECT category, SUM(amount), COUNT(*)
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date < $3
		GROUP BY category
		ORDER BY SUM(amount) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate expenses: %w", err)
	}
	defer rows.Close()

	var totals []expense.CategoryTotal
	for rows.Next() {
		var t expense.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return totals, nil
}

func expenseFields(e *expense.Expense) []any {
	return []any{
		&e.ID, &e.UserID, &e.Amount, &e.Description, &e.Category, &e.Date,
		&e.PaymentMethod, &e.ReceiptURL, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	}
}
