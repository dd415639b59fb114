package sales

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the state of a recorded sale.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusRefunded  Status = "REFUNDED"
	StatusVoided    Status = "VOIDED"
)

// SaleLine is a single line on a sale.
type SaleLine struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

// Sale records a completed transaction at a store.
type Sale struct {
	ID         uuid.UUID  `json:"id"`
	StoreID    uuid.UUID  `json:"store_id"`
	Number     string     `json:"number"`
	CashierID  *uuid.UUID `json:"cashier_id,omitempty"`
	Lines      []SaleLine `json:"lines"`
	Total      float64    `json:"total"`
	Currency   string     `json:"currency"`
	TenderType string     `json:"tender_type"`
	Status     Status     `json:"status"`
	OccurredAt time.Time  `json:"occurred_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// RecordSaleRequest is the payload for recording a sale.
type RecordSaleRequest struct {
	CashierID  string     `json:"cashier_id,omitempty"`
	Lines      []SaleLine `json:"lines"`
	Currency   string     `json:"currency,omitempty"` // defaults to USD
	TenderType string     `json:"tender_type"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"` // defaults to now
}

// RefundRequest is the payload for refunding a sale.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// ListFilter narrows a sales listing.
type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Status Status // empty = all
	Limit  int    // 0 = default page size
}

// Metrics summarizes completed sales for a store over a window.
type Metrics struct {
	StoreID     uuid.UUID `json:"store_id"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	SaleCount   int       `json:"sale_count"`
	GrossAmount float64   `json:"gross_amount"`
	AvgAmount   float64   `json:"avg_amount"`
	RefreshedAt time.Time `json:"refreshed_at"`
}
