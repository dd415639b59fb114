package store

import (
	"context"
	"time"
)

// Repository defines data access for stores, including the plan fields the
// billing module writes through.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id string) (*Store, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Store, error)
	Update(ctx context.Context, s *Store) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error

	// Plan persistence (billing)
	SetPlan(ctx context.Context, id string, plan Plan) error
	ScheduleDowngrade(ctx context.Context, id string, pending Plan, effectiveAt time.Time) error
	ClearPendingDowngrade(ctx context.Context, id string) error
	CountByTenantAndPlan(ctx context.Context, tenantID string, plan Plan) (int, error)
	ListDueDowngrades(ctx context.Context, asOf time.Time) ([]*Store, error)
}
