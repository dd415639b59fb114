package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vendahq/backoffice/internal/modules/tenant"
)

// Service defines store business logic.
type Service interface {
	Create(ctx context.Context, tenantID string, req CreateStoreRequest) (*Store, error)
	Get(ctx context.Context, id string) (*Store, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*Store, error)
	Update(ctx context.Context, id string, req UpdateStoreRequest) (*Store, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Store, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo    Repository
	tenants tenant.Repository
}

func NewService(repo Repository, tenants tenant.Repository) Service {
	return &service{repo: repo, tenants: tenants}
}

func (s *service) Create(ctx context.Context, tenantID string, req CreateStoreRequest) (*Store, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}

	t, err := s.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}
	if t.Status != tenant.StatusActive {
		return nil, fmt.Errorf("cannot create a store under a %s tenant", t.Status)
	}

	loc := LocationType(strings.ToUpper(req.LocationType))
	switch loc {
	case LocationRetail, LocationOnline, LocationPopup, LocationWarehouse:
	case "":
		loc = LocationRetail
	default:
		return nil, fmt.Errorf("unknown location type %q", req.LocationType)
	}

	// New stores start on the free plan until billing changes it.
	st := &Store{
		ID:           uuid.New(),
		TenantID:     t.ID,
		Name:         strings.TrimSpace(req.Name),
		Status:       StatusActive,
		LocationType: loc,
		Plan:         PlanFree,
	}
	if err := s.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Get(ctx context.Context, id string) (*Store, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	return st, nil
}

func (s *service) ListByTenant(ctx context.Context, tenantID string) ([]*Store, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateStoreRequest) (*Store, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	if req.Name != "" {
		st.Name = strings.TrimSpace(req.Name)
	}
	if req.LocationType != "" {
		loc := LocationType(strings.ToUpper(req.LocationType))
		switch loc {
		case LocationRetail, LocationOnline, LocationPopup, LocationWarehouse:
			st.LocationType = loc
		default:
			return nil, fmt.Errorf("unknown location type %q", req.LocationType)
		}
	}
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Store, error) {
	st, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	next := Status(strings.ToUpper(req.Status))
	if next != StatusActive && next != StatusInactive {
		return nil, fmt.Errorf("unknown store status %q", req.Status)
	}
	if st.Status == next {
		return st, nil
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("store not found: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
