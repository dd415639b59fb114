package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines category business logic.
type Service interface {
	Create(ctx context.Context, storeID string, req CreateCategoryRequest) (*Category, error)
	Get(ctx context.Context, id string) (*Category, error)
	ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]*Category, error)
	Update(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error)
	Reorder(ctx context.Context, storeID string, req ReorderRequest) error
	Delete(ctx context.Context, id string) error
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, storeID string, req CreateCategoryRequest) (*Category, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("store id is not a valid id")
	}
	c := &Category{
		ID:          uuid.New(),
		StoreID:     sid,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, id string) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}
	return c, nil
}

func (s *service) ListByStore(ctx context.Context, storeID string, activeOnly bool) ([]*Category, error) {
	return s.repo.ListByStore(ctx, storeID, activeOnly)
}

func (s *service) Update(ctx context.Context, id string, req UpdateCategoryRequest) (*Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("category not found: %w", err)
	}
	if req.Name != "" {
		c.Name = strings.TrimSpace(req.Name)
	}
	if req.Description != "" {
		c.Description = req.Description
	}
	if req.SortOrder != nil {
		c.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Reorder(ctx context.Context, storeID string, req ReorderRequest) error {
	if len(req.CategoryIDs) == 0 {
		return fmt.Errorf("category_ids is required")
	}
	// Position in the submitted list becomes the sort order. Each id is
	// checked against the store before writing.
	for pos, id := range req.CategoryIDs {
		c, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("category not found: %w", err)
		}
		if c.StoreID.String() != storeID {
			return fmt.Errorf("category %s does not belong to store %s", id, storeID)
		}
		if err := s.repo.UpdateSortOrder(ctx, id, pos); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("category not found: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
