package store

import (
	"time"

	"github.com/google/uuid"
)

// Plan is the billing tier assigned to a store.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
)

// Rank orders plans for upgrade/downgrade decisions. Unknown plans rank -1.
func (p Plan) Rank() int {
	switch p {
	case PlanFree:
		return 0
	case PlanStarter:
		return 1
	case PlanPro:
		return 2
	}
	return -1
}

// Valid reports whether p is a recognized plan.
func (p Plan) Valid() bool { return p.Rank() >= 0 }

// Status represents whether a store is trading.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// LocationType classifies a store's sales channel.
type LocationType string

const (
	LocationRetail    LocationType = "RETAIL"
	LocationOnline    LocationType = "ONLINE"
	LocationPopup     LocationType = "POPUP"
	LocationWarehouse LocationType = "WAREHOUSE"
)

// Store is a single retail location or sales channel under a tenant.
// PendingPlan and DowngradeEffectiveAt are set only while a downgrade is
// scheduled; they are cleared together.
type Store struct {
	ID                   uuid.UUID    `json:"id"`
	TenantID             uuid.UUID    `json:"tenant_id"`
	Name                 string       `json:"name"`
	Status               Status       `json:"status"`
	LocationType         LocationType `json:"location_type"`
	Plan                 Plan         `json:"plan"`
	PendingPlan          *Plan        `json:"pending_plan,omitempty"`
	DowngradeEffectiveAt *time.Time   `json:"downgrade_effective_at,omitempty"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

// DowngradePending reports whether a scheduled downgrade is recorded.
func (s *Store) DowngradePending() bool {
	return s.PendingPlan != nil && s.DowngradeEffectiveAt != nil
}

// CreateStoreRequest is the payload for opening a new store under a tenant.
type CreateStoreRequest struct {
	Name         string `json:"name"`
	LocationType string `json:"location_type,omitempty"` // defaults to RETAIL
}

// UpdateStoreRequest is the payload for editing store details.
type UpdateStoreRequest struct {
	Name         string `json:"name,omitempty"`
	LocationType string `json:"location_type,omitempty"`
}

// UpdateStatusRequest is the payload for activating or deactivating a store.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
