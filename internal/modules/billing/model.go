package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/vendahq/backoffice/internal/modules/store"
)

// PlanInfo describes one billing tier offered per store.
type PlanInfo struct {
	Plan         store.Plan `json:"plan"`
	MonthlyPrice float64    `json:"monthly_price"`
	MaxRegisters int        `json:"max_registers"`
}

// Plans is the fixed plan catalog, cheapest first.
var Plans = []PlanInfo{
	{Plan: store.PlanFree, MonthlyPrice: 0, MaxRegisters: 1},
	{Plan: store.PlanStarter, MonthlyPrice: 29, MaxRegisters: 3},
	{Plan: store.PlanPro, MonthlyPrice: 79, MaxRegisters: 10},
}

// PlanByName looks up a plan in the catalog.
func PlanByName(name string) (PlanInfo, bool) {
	for _, p := range Plans {
		if string(p.Plan) == name {
			return p, true
		}
	}
	return PlanInfo{}, false
}

// Error codes and slugs of the plan-change contract.
const (
	CodeFreePlanStoreLimit = 3032 // free plan allows one store per tenant
	CodeStoreNotActive     = 3031
	CodePlanNotRecognized  = 1406

	SlugSubscriptionInactive = "SUBSCRIPTION_INACTIVE"
)

// SubscriptionStatus is the billing standing of a tenant.
type SubscriptionStatus string

const (
	SubActive   SubscriptionStatus = "ACTIVE"
	SubInactive SubscriptionStatus = "INACTIVE"
)

// Profile is a tenant's billing profile: subscription standing, whether a
// payment method is on file, and the current billing period.
type Profile struct {
	TenantID           uuid.UUID          `json:"tenant_id"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
	HasPaymentMethod   bool               `json:"has_payment_method"`
	CurrentPeriodEnd   time.Time          `json:"current_period_end"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ChangePlanRequest is the payload for changing a store's plan.
type ChangePlanRequest struct {
	Plan string `json:"plan"`
}

// PlanChangeResult is the single outcome of one plan-change submission.
// Exactly one of the three shapes is populated: checkout-required,
// downgrade-scheduled, or a plain immediate change carrying the store.
type PlanChangeResult struct {
	CheckoutRequired bool   `json:"checkout_required,omitempty"`
	CheckoutURL      string `json:"checkout_url,omitempty"`

	DowngradeScheduled   bool       `json:"downgrade_scheduled,omitempty"`
	PendingPlan          store.Plan `json:"pending_plan,omitempty"`
	DowngradeEffectiveAt *time.Time `json:"downgrade_effective_at,omitempty"`

	Store *store.Store `json:"store,omitempty"`
}
