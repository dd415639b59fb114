package tender

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Tender) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenders (id, store_id, type, label, enabled, sort_order)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		t.ID, t.StoreID, t.Type, t.Label, t.Enabled, t.SortOrder)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Tender, error) {
	return scanTender(r.db.QueryRowContext(ctx, `
		SELECT id, store_id, type, label, enabled, sort_order, created_at, updated_at
		FROM tenders WHERE id = $1`, id))
}

func (r *postgresRepo) GetByStoreAndType(ctx context.Context, storeID string, typ Type) (*Tender, error) {
	return scanTender(r.db.QueryRowContext(ctx, `
		SELECT id, store_id, type, label, enabled, sort_order, created_at, updated_at
		FROM tenders WHERE store_id = $1 AND type = $2`, storeID, typ))
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]*Tender, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, type, label, enabled, sort_order, created_at, updated_at
		FROM tenders WHERE store_id = $1 ORDER BY sort_order, type`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tenders []*Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, t)
	}
	return tenders, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, t *Tender) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tenders SET label=$1, enabled=$2, sort_order=$3, updated_at=$4 WHERE id=$5`,
		t.Label, t.Enabled, t.SortOrder, time.Now(), t.ID)
	return err
}

func (r *postgresRepo) SetEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tenders SET enabled=$1, updated_at=$2 WHERE id=$3`, enabled, time.Now(), id)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tenders WHERE id=$1`, id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanTender(row rowScanner) (*Tender, error) {
	var t Tender
	err := row.Scan(&t.ID, &t.StoreID, &t.Type, &t.Label, &t.Enabled, &t.SortOrder, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
