package tender

import (
	"time"

	"github.com/google/uuid"
)

// Type identifies the kind of payment a tender accepts at the counter.
type Type string

const (
	TypeCash        Type = "CASH"
	TypeCard        Type = "CARD"
	TypeMobileMoney Type = "MOBILE_MONEY"
	TypeVoucher     Type = "VOUCHER"
	TypeGiftCard    Type = "GIFT_CARD"
)

// Valid reports whether t is a recognized tender type.
func (t Type) Valid() bool {
	switch t {
	case TypeCash, TypeCard, TypeMobileMoney, TypeVoucher, TypeGiftCard:
		return true
	}
	return false
}

// Tender is a configured payment method available at checkout for a store.
// Each store has at most one tender per type.
type Tender struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Type      Type      `json:"type"`
	Label     string    `json:"label"`
	Enabled   bool      `json:"enabled"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConfigureRequest creates or updates the tender of a given type for a store.
type ConfigureRequest struct {
	Type      string `json:"type"`
	Label     string `json:"label,omitempty"` // defaults to a title-cased type name
	Enabled   *bool  `json:"enabled,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}
