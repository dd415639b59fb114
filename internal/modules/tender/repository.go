package tender

import "context"

// Repository defines data access for store tenders.
type Repository interface {
	Create(ctx context.Context, t *Tender) error
	GetByID(ctx context.Context, id string) (*Tender, error)
	GetByStoreAndType(ctx context.Context, storeID string, typ Type) (*Tender, error)
	ListByStore(ctx context.Context, storeID string) ([]*Tender, error)
	Update(ctx context.Context, t *Tender) error
	SetEnabled(ctx context.Context, id string, enabled bool) error
	Delete(ctx context.Context, id string) error
}
