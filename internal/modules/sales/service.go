package sales

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service defines sales business logic.
type Service interface {
	Record(ctx context.Context, storeID string, req RecordSaleRequest) (*Sale, error)
	Get(ctx context.Context, id string) (*Sale, error)
	ListByStore(ctx context.Context, storeID string, filter ListFilter) ([]*Sale, error)
	Refund(ctx context.Context, id string, req RefundRequest) (*Sale, error)
	Summary(ctx context.Context, storeID string, from, to time.Time) (*Metrics, error)
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Record(ctx context.Context, storeID string, req RecordSaleRequest) (*Sale, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("store id is not a valid id")
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("at least one line is required")
	}
	if strings.TrimSpace(req.TenderType) == "" {
		return nil, fmt.Errorf("tender_type is required")
	}

	var total float64
	for i, line := range req.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %d: quantity must be greater than 0", i+1)
		}
		if line.UnitPrice < 0 {
			return nil, fmt.Errorf("line %d: unit_price must not be negative", i+1)
		}
		amount := float64(line.Quantity) * line.UnitPrice
		req.Lines[i].Amount = amount
		total += amount
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	occurred := time.Now()
	if req.OccurredAt != nil {
		occurred = *req.OccurredAt
	}

	sale := &Sale{
		ID:         uuid.New(),
		StoreID:    sid,
		Number:     generateSaleNumber(occurred),
		Lines:      req.Lines,
		Total:      total,
		Currency:   currency,
		TenderType: strings.ToUpper(req.TenderType),
		Status:     StatusCompleted,
		OccurredAt: occurred,
	}
	if req.CashierID != "" {
		cid, err := uuid.Parse(req.CashierID)
		if err != nil {
			return nil, fmt.Errorf("cashier_id is not a valid id")
		}
		sale.CashierID = &cid
	}

	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) Get(ctx context.Context, id string) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sale not found: %w", err)
	}
	return sale, nil
}

func (s *service) ListByStore(ctx context.Context, storeID string, filter ListFilter) ([]*Sale, error) {
	return s.repo.ListByStore(ctx, storeID, filter)
}

func (s *service) Refund(ctx context.Context, id string, req RefundRequest) (*Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sale not found: %w", err)
	}
	if sale.Status == StatusRefunded {
		return nil, fmt.Errorf("sale is already refunded")
	}
	if sale.Status == StatusVoided {
		return nil, fmt.Errorf("cannot refund a voided sale")
	}
	if err := s.repo.UpdateStatus(ctx, id, StatusRefunded); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) Summary(ctx context.Context, storeID string, from, to time.Time) (*Metrics, error) {
	sid, err := uuid.Parse(storeID)
	if err != nil {
		return nil, fmt.Errorf("store id is not a valid id")
	}
	count, gross, err := s.repo.Summarize(ctx, storeID, from, to)
	if err != nil {
		return nil, err
	}
	m := &Metrics{
		StoreID:     sid,
		From:        from,
		To:          to,
		SaleCount:   count,
		GrossAmount: gross,
		RefreshedAt: time.Now(),
	}
	if count > 0 {
		m.AvgAmount = gross / float64(count)
	}
	return m, nil
}

func generateSaleNumber(t time.Time) string {
	return fmt.Sprintf("SALE-%s-%04d", t.Format("20060102"), rand.Intn(10000))
}
