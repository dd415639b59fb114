package billing

import "context"

// Repository defines data access for tenant billing profiles.
type Repository interface {
	GetProfile(ctx context.Context, tenantID string) (*Profile, error)
	SaveProfile(ctx context.Context, p *Profile) error
	SetPaymentMethod(ctx context.Context, tenantID string, onFile bool) error
	SetSubscriptionStatus(ctx context.Context, tenantID string, status SubscriptionStatus) error
}
