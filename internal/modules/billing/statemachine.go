package billing

import (
	"sync"

	"github.com/vendahq/backoffice/internal/apierr"
	"github.com/vendahq/backoffice/internal/modules/store"
)

// ChangeState is the state of one plan-change screen.
type ChangeState string

const (
	StateIdle                  ChangeState = "IDLE"
	StateSubmitting            ChangeState = "SUBMITTING"
	StateRedirectingToCheckout ChangeState = "REDIRECTING_TO_CHECKOUT"
	StateUpgraded              ChangeState = "UPGRADED"
	StateDowngradeScheduled    ChangeState = "DOWNGRADE_SCHEDULED"
	StateDowngradeCancelled    ChangeState = "DOWNGRADE_CANCELLED"
	StateError                 ChangeState = "ERROR"
)

// planChangeMessages maps the plan-change contract's error codes and slugs to
// user-facing copy.
var planChangeMessages = apierr.Messages{
	ByCode: map[int]string{
		CodeFreePlanStoreLimit: "The free plan is limited to one store per tenant.",
		CodeStoreNotActive:     "This store is not active, so its plan cannot be changed.",
		CodePlanNotRecognized:  "That plan is not available.",
	},
	BySlug: map[string]string{
		SlugSubscriptionInactive: "Your subscription is not active. Update your billing details first.",
	},
}

const planChangeFallback = "Could not change the plan. Please try again."

// ChangeMachine tracks a plan-change submission through its lifecycle. It is
// an injectable container: construct one per screen, with the redirect
// side effect supplied by the caller.
type ChangeMachine struct {
	mu sync.Mutex

	state    ChangeState
	message  string
	redirect func(url string)

	// CurrentPlan and PendingDowngrade describe the store as last known to
	// the screen; the machine needs them to tell an upgrade apart from a
	// cancelled downgrade.
	currentPlan      store.Plan
	pendingDowngrade bool

	pendingPlan store.Plan
	effectiveAt string
}

// NewChangeMachine builds a machine for a store currently on currentPlan.
// redirect performs the external checkout hand-off; it may be nil for stores
// that never reach checkout.
func NewChangeMachine(currentPlan store.Plan, pendingDowngrade bool, redirect func(url string)) *ChangeMachine {
	return &ChangeMachine{
		state:            StateIdle,
		currentPlan:      currentPlan,
		pendingDowngrade: pendingDowngrade,
		redirect:         redirect,
	}
}

// State returns the machine's current state.
func (m *ChangeMachine) State() ChangeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Message returns the user-facing error message, set only in StateError.
func (m *ChangeMachine) Message() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.message
}

// Begin marks a submission in flight. It returns false when a submission is
// already running; the caller must not issue the remote call in that case.
func (m *ChangeMachine) Begin() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateSubmitting {
		return false
	}
	m.state = StateSubmitting
	m.message = ""
	return true
}

// Apply consumes the remote result for the submitted target plan. Exactly one
// of the four terminal branches fires:
//
//  1. checkout required   → redirecting_to_checkout, then the redirect runs
//  2. scheduled downgrade → downgrade_scheduled
//  3. target == current plan while a downgrade was pending → downgrade_cancelled
//  4. anything else       → upgraded
func (m *ChangeMachine) Apply(submitted store.Plan, result *PlanChangeResult) ChangeState {
	m.mu.Lock()

	switch {
	case result.CheckoutRequired:
		m.state = StateRedirectingToCheckout
		redirect, url := m.redirect, result.CheckoutURL
		m.mu.Unlock()
		if redirect != nil {
			redirect(url)
		}
		return StateRedirectingToCheckout

	case result.DowngradeScheduled:
		m.state = StateDowngradeScheduled
		m.pendingPlan = result.PendingPlan
		if result.DowngradeEffectiveAt != nil {
			m.effectiveAt = result.DowngradeEffectiveAt.Format("2006-01-02")
		}
		m.pendingDowngrade = true

	case submitted == m.currentPlan && m.pendingDowngrade:
		m.state = StateDowngradeCancelled
		m.pendingDowngrade = false
		m.pendingPlan = ""
		m.effectiveAt = ""

	default:
		m.state = StateUpgraded
		m.currentPlan = submitted
		m.pendingDowngrade = false
	}

	state := m.state
	m.mu.Unlock()
	return state
}

// Fail records a submission failure with its mapped user-facing message.
// The machine stays in StateError until the user edits their selection.
func (m *ChangeMachine) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateError
	m.message = planChangeMessages.Lookup(err, planChangeFallback)
}

// Edit resets an errored machine to idle; the next selection starts clean.
func (m *ChangeMachine) Edit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == StateError {
		m.state = StateIdle
		m.message = ""
	}
}

// PendingDowngrade reports whether the screen should offer the one-click
// keep-current-plan affordance.
func (m *ChangeMachine) PendingDowngrade() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pendingDowngrade
}
