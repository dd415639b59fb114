package store

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const storeColumns = `id, tenant_id, name, status, location_type, plan,
	pending_plan, downgrade_effective_at, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (id, tenant_id, name, status, location_type, plan)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.TenantID, s.Name, s.Status, s.LocationType, s.Plan)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Store, error) {
	return scanStore(r.db.QueryRowContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE id = $1`, id))
}

func (r *postgresRepo) ListByTenant(ctx context.Context, tenantID string) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+storeColumns+` FROM stores WHERE tenant_id = $1 ORDER BY name`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStores(rows)
}

func (r *postgresRepo) Update(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stores SET name=$1, location_type=$2, updated_at=$3 WHERE id=$4`,
		s.Name, s.LocationType, time.Now(), s.ID)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE stores SET status=$1, updated_at=$2 WHERE id=$3`, status, time.Now(), id)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id=$1`, id)
	return err
}

func (r *postgresRepo) SetPlan(ctx context.Context, id string, plan Plan) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stores
		SET plan=$1, pending_plan=NULL, downgrade_effective_at=NULL, updated_at=$2
		WHERE id=$3`, plan, time.Now(), id)
	return err
}

func (r *postgresRepo) ScheduleDowngrade(ctx context.Context, id string, pending Plan, effectiveAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stores SET pending_plan=$1, downgrade_effective_at=$2, updated_at=$3 WHERE id=$4`,
		pending, effectiveAt, time.Now(), id)
	return err
}

func (r *postgresRepo) ClearPendingDowngrade(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stores SET pending_plan=NULL, downgrade_effective_at=NULL, updated_at=$1 WHERE id=$2`,
		time.Now(), id)
	return err
}

func (r *postgresRepo) CountByTenantAndPlan(ctx context.Context, tenantID string, plan Plan) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stores WHERE tenant_id=$1 AND plan=$2`, tenantID, plan).Scan(&n)
	return n, err
}

func (r *postgresRepo) ListDueDowngrades(ctx context.Context, asOf time.Time) ([]*Store, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+storeColumns+` FROM stores
		WHERE pending_plan IS NOT NULL AND downgrade_effective_at <= $1`, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStores(rows)
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanStore(row rowScanner) (*Store, error) {
	var s Store
	var pending sql.NullString
	var effective sql.NullTime
	err := row.Scan(&s.ID, &s.TenantID, &s.Name, &s.Status, &s.LocationType, &s.Plan,
		&pending, &effective, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if pending.Valid {
		p := Plan(pending.String)
		s.PendingPlan = &p
	}
	if effective.Valid {
		t := effective.Time
		s.DowngradeEffectiveAt = &t
	}
	return &s, nil
}

func collectStores(rows *sql.Rows) ([]*Store, error) {
	var stores []*Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
