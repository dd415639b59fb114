package tender

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines tender configuration logic.
type Service interface {
	Configure(ctx context.Context, storeID string, req ConfigureRequest) (*Tender, error)
	ListByStore(ctx context.Context, storeID string) ([]*Tender, error)
	SetEnabled(ctx context.Context, id string, enabled bool) (*Tender, error)
	Delete(ctx context.Context, id string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

// Configure is create-or-update keyed on (store, type), so re-submitting a
// tender screen never produces duplicates.
func (s *service) Configure(ctx context.Context, storeID string, req ConfigureRequest) (*Tender, error) {
	typ := Type(strings.ToUpper(req.Type))
	if !typ.Valid() {
		return nil, fmt.Errorf("unknown tender type %q", req.Type)
	}
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("store id is not a valid id")
	}

	label := strings.TrimSpace(req.Label)
	if label == "" {
		label = defaultLabel(typ)
	}

	existing, err := s.repo.GetByStoreAndType(ctx, storeID, typ)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		existing.Label = label
		existing.SortOrder = req.SortOrder
		if req.Enabled != nil {
			existing.Enabled = *req.Enabled
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return s.repo.GetByID(ctx, existing.ID.String())
	}

	t := &Tender{
		ID:        uuid.New(),
		StoreID:   sid,
		Type:      typ,
		Label:     label,
		Enabled:   true,
		SortOrder: req.SortOrder,
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) ListByStore(ctx context.Context, storeID string) ([]*Tender, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func (s *service) SetEnabled(ctx context.Context, id string, enabled bool) (*Tender, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, fmt.Errorf("tender not found: %w", err)
	}
	if err := s.repo.SetEnabled(ctx, id, enabled); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("tender not found: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func defaultLabel(typ Type) string {
	switch typ {
	case TypeCash:
		return "Cash"
	case TypeCard:
		return "Card"
	case TypeMobileMoney:
		return "Mobile Money"
	case TypeVoucher:
		return "Voucher"
	case TypeGiftCard:
		return "Gift Card"
	}
	return string(typ)
}
