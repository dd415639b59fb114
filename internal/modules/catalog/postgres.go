package catalog

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, store_id, name, description, sort_order, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		c.ID, c.StoreID, c.Name, c.Description, c.SortOrder, c.IsActive)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Category, error) {
	return scanCategory(r.db.QueryRowContext(ctx, `
		SELECT id, store_id, name, description, sort_order, is_active, created_at, updated_at
		FROM categories WHERE id = $1`, id))
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]*Category, error) {
	query := `
		SELECT id, store_id, name, description, sort_order, is_active, created_at, updated_at
		FROM categories WHERE store_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY sort_order, name`

	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var cats []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name=$1, description=$2, sort_order=$3, is_active=$4, updated_at=$5
		WHERE id=$6`,
		c.Name, c.Description, c.SortOrder, c.IsActive, time.Now(), c.ID)
	return err
}

func (r *postgresRepo) UpdateSortOrder(ctx context.Context, id string, sortOrder int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE categories SET sort_order=$1, updated_at=$2 WHERE id=$3`, sortOrder, time.Now(), id)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanCategory(row rowScanner) (*Category, error) {
	var c Category
	err := row.Scan(&c.ID, &c.StoreID, &c.Name, &c.Description, &c.SortOrder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
