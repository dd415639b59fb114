package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines tenant business logic.
type Service interface {
	Create(ctx context.Context, req CreateTenantRequest) (*Tenant, error)
	Get(ctx context.Context, id string) (*Tenant, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]*Tenant, error)
	Update(ctx context.Context, id string, req UpdateTenantRequest) (*Tenant, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Tenant, error)
	Delete(ctx context.Context, id string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, req CreateTenantRequest) (*Tenant, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.OwnerUserID == "" {
		return nil, fmt.Errorf("owner_user_id is required")
	}
	ownerID, err := uuid.Parse(req.OwnerUserID)
	if err != nil {
		return nil, fmt.Errorf("owner_user_id is not a valid id")
	}

	t := &Tenant{
		ID:           uuid.New(),
		OwnerUserID:  ownerID,
		Name:         strings.TrimSpace(req.Name),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Status:       StatusActive,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, fmt.Errorf("a tenant named %q already exists", t.Name)
		}
		return nil, err
	}
	return t, nil
}

func (s *service) Get(ctx context.Context, id string) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}
	return t, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerUserID string) ([]*Tenant, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

func (s *service) Update(ctx context.Context, id string, req UpdateTenantRequest) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}
	if req.Name != "" {
		t.Name = strings.TrimSpace(req.Name)
	}
	if req.ContactEmail != "" {
		t.ContactEmail = strings.TrimSpace(req.ContactEmail)
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}
	next := Status(strings.ToUpper(req.Status))
	if next != StatusActive && next != StatusSuspended {
		return nil, fmt.Errorf("unknown tenant status %q", req.Status)
	}
	if t.Status == next {
		return t, nil
	}
	if !CanTransition(t.Status, next) {
		return nil, fmt.Errorf("cannot transition tenant from %s to %s", t.Status, next)
	}
	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("tenant not found: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
