package sales

import (
	"context"
	"time"
)

// Repository defines data access for sales.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	ListByStore(ctx context.Context, storeID string, filter ListFilter) ([]*Sale, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Summarize(ctx context.Context, storeID string, from, to time.Time) (count int, gross float64, err error)
}
