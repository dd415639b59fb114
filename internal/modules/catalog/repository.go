package catalog

import "context"

// Repository defines data access for categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id string) (*Category, error)
	ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	UpdateSortOrder(ctx context.Context, id string, sortOrder int) error
	Delete(ctx context.Context, id string) error
}
