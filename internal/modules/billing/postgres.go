package billing

import (
	"context"
	"database/sql"
	"time"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) GetProfile(ctx context.Context, tenantID string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT tenant_id, subscription_status, has_payment_method, current_period_end,
		       created_at, updated_at
		FROM billing_profiles WHERE tenant_id = $1`, tenantID).
		Scan(&p.TenantID, &p.SubscriptionStatus, &p.HasPaymentMethod, &p.CurrentPeriodEnd,
			&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) SaveProfile(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO billing_profiles (tenant_id, subscription_status, has_payment_method, current_period_end)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (tenant_id) DO UPDATE
		SET subscription_status=EXCLUDED.subscription_status,
		    has_payment_method=EXCLUDED.has_payment_method,
		    current_period_end=EXCLUDED.current_period_end,
		    updated_at=NOW()`,
		p.TenantID, p.SubscriptionStatus, p.HasPaymentMethod, p.CurrentPeriodEnd)
	return err
}

func (r *postgresRepo) SetPaymentMethod(ctx context.Context, tenantID string, onFile bool) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE billing_profiles SET has_payment_method=$1, updated_at=$2 WHERE tenant_id=$3`,
		onFile, time.Now(), tenantID)
	return err
}

func (r *postgresRepo) SetSubscriptionStatus(ctx context.Context, tenantID string, status SubscriptionStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE billing_profiles SET subscription_status=$1, updated_at=$2 WHERE tenant_id=$3`,
		status, time.Now(), tenantID)
	return err
}
