package tenant

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, t *Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tenants (id, owner_user_id, name, contact_email, status)
		VALUES ($1,$2,$3,$4,$5)`,
		t.ID, t.OwnerUserID, t.Name, t.ContactEmail, t.Status)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Tenant, error) {
	return scanTenant(r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, name, contact_email, status, created_at, updated_at
		FROM tenants WHERE id = $1`, id))
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]*Tenant, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, name, contact_email, status, created_at, updated_at
		FROM tenants WHERE owner_user_id = $1 ORDER BY name`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tenants []*Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, t *Tenant) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tenants SET name=$1, contact_email=$2, updated_at=$3 WHERE id=$4`,
		t.Name, t.ContactEmail, time.Now(), t.ID)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tenants SET status=$1, updated_at=$2 WHERE id=$3`,
		status, time.Now(), id)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanTenant(row rowScanner) (*Tenant, error) {
	var t Tenant
	err := row.Scan(&t.ID, &t.OwnerUserID, &t.Name, &t.ContactEmail, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
