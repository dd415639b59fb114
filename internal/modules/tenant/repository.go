package tenant

import "context"

// Repository defines data access for tenants.
type Repository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}
