package tenant

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a tenant account.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSuspended Status = "SUSPENDED"
)

// validTransitions defines allowed tenant status changes.
var validTransitions = map[Status][]Status{
	StatusActive:    {StatusSuspended},
	StatusSuspended: {StatusActive},
}

// CanTransition returns true if the tenant status change is valid.
func CanTransition(current, next Status) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// Tenant is a top-level account grouping one or more stores.
type Tenant struct {
	ID           uuid.UUID `json:"id"`
	OwnerUserID  uuid.UUID `json:"owner_user_id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contact_email"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateTenantRequest is the payload for registering a new tenant.
type CreateTenantRequest struct {
	OwnerUserID  string `json:"owner_user_id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
}

// UpdateTenantRequest is the payload for editing tenant details.
type UpdateTenantRequest struct {
	Name         string `json:"name,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
}

// UpdateStatusRequest is the payload for suspending or reactivating a tenant.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
