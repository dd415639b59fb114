package sales

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Sale) error {
	linesJSON, err := json.Marshal(s.Lines)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sales
		  (id, store_id, number, cashier_id, lines, total, currency, tender_type, status, occurred_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.StoreID, s.Number, s.CashierID, linesJSON, s.Total, s.Currency,
		s.TenderType, s.Status, s.OccurredAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Sale, error) {
	return scanSale(r.db.QueryRowContext(ctx, `
		SELECT id, store_id, number, cashier_id, lines, total, currency, tender_type,
		       status, occurred_at, created_at, updated_at
		FROM sales WHERE id = $1`, id))
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string, filter ListFilter) ([]*Sale, error) {
	query := `
		SELECT id, store_id, number, cashier_id, lines, total, currency, tender_type,
		       status, occurred_at, created_at, updated_at
		FROM sales WHERE store_id = $1`
	args := []interface{}{storeID}

	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND occurred_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND occurred_at < $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []*Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sales SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now(), id)
	return err
}

func (r *postgresRepo) Summarize(ctx context.Context, storeID string, from, to time.Time) (int, float64, error) {
	var count int
	var gross sql.NullFloat64
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM sales
		WHERE store_id = $1 AND status = 'COMPLETED' AND occurred_at >= $2 AND occurred_at < $3`,
		storeID, from, to).Scan(&count, &gross)
	return count, gross.Float64, err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanSale(row rowScanner) (*Sale, error) {
	var s Sale
	var linesJSON []byte
	err := row.Scan(&s.ID, &s.StoreID, &s.Number, &s.CashierID, &linesJSON, &s.Total,
		&s.Currency, &s.TenderType, &s.Status, &s.OccurredAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(linesJSON) > 0 {
		if err := json.Unmarshal(linesJSON, &s.Lines); err != nil {
			return nil, err
		}
	}
	return &s, nil
}
