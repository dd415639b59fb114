package billing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendahq/backoffice/internal/apierr"
	"github.com/vendahq/backoffice/internal/modules/store"
)

func TestApplyOutcomesAreExclusive(t *testing.T) {
	effective := time.Now().AddDate(0, 1, 0)

	tests := []struct {
		name             string
		currentPlan      store.Plan
		pendingDowngrade bool
		submitted        store.Plan
		result           *PlanChangeResult
		want             ChangeState
	}{
		{
			name:        "checkout required wins over everything",
			currentPlan: store.PlanFree,
			submitted:   store.PlanPro,
			result:      &PlanChangeResult{CheckoutRequired: true, CheckoutURL: "https://pay.example/cs_1"},
			want:        StateRedirectingToCheckout,
		},
		{
			name:        "scheduled downgrade",
			currentPlan: store.PlanPro,
			submitted:   store.PlanStarter,
			result: &PlanChangeResult{
				DowngradeScheduled:   true,
				PendingPlan:          store.PlanStarter,
				DowngradeEffectiveAt: &effective,
			},
			want: StateDowngradeScheduled,
		},
		{
			name:             "keeping current plan cancels a pending downgrade",
			currentPlan:      store.PlanPro,
			pendingDowngrade: true,
			submitted:        store.PlanPro,
			result:           &PlanChangeResult{},
			want:             StateDowngradeCancelled,
		},
		{
			name:        "immediate upgrade",
			currentPlan: store.PlanStarter,
			submitted:   store.PlanPro,
			result:      &PlanChangeResult{},
			want:        StateUpgraded,
		},
		{
			name:        "resubmitting current plan with nothing pending is an upgrade outcome",
			currentPlan: store.PlanStarter,
			submitted:   store.PlanStarter,
			result:      &PlanChangeResult{},
			want:        StateUpgraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewChangeMachine(tt.currentPlan, tt.pendingDowngrade, func(string) {})
			require.True(t, m.Begin())
			got := m.Apply(tt.submitted, tt.result)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, m.State())
		})
	}
}

func TestCancelSymmetryNeverUpgrades(t *testing.T) {
	// Submitting the current plan while a downgrade is pending must always
	// land on cancelled, regardless of how the downgrade was scheduled.
	m := NewChangeMachine(store.PlanPro, false, nil)

	require.True(t, m.Begin())
	effective := time.Now().AddDate(0, 1, 0)
	m.Apply(store.PlanStarter, &PlanChangeResult{
		DowngradeScheduled:   true,
		PendingPlan:          store.PlanStarter,
		DowngradeEffectiveAt: &effective,
	})
	require.True(t, m.PendingDowngrade())

	require.True(t, m.Begin())
	got := m.Apply(store.PlanPro, &PlanChangeResult{})
	assert.Equal(t, StateDowngradeCancelled, got)
	assert.False(t, m.PendingDowngrade())
}

func TestCheckoutRedirectFires(t *testing.T) {
	var gotURL string
	m := NewChangeMachine(store.PlanFree, false, func(url string) { gotURL = url })

	require.True(t, m.Begin())
	m.Apply(store.PlanPro, &PlanChangeResult{CheckoutRequired: true, CheckoutURL: "https://pay.example/cs_42"})

	assert.Equal(t, "https://pay.example/cs_42", gotURL)
}

func TestBeginBlocksConcurrentSubmission(t *testing.T) {
	m := NewChangeMachine(store.PlanFree, false, nil)
	require.True(t, m.Begin())
	assert.False(t, m.Begin(), "a second submit while in flight must be refused")
}

func TestFailMapsKnownErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "free plan store limit",
			err:  apierr.New(CodeFreePlanStoreLimit, "FREE_PLAN_STORE_LIMIT", "the free plan is limited to one store per tenant"),
			want: "The free plan is limited to one store per tenant.",
		},
		{
			name: "store not active",
			err:  apierr.New(CodeStoreNotActive, "STORE_NOT_ACTIVE", "store is not active"),
			want: "This store is not active, so its plan cannot be changed.",
		},
		{
			name: "subscription inactive by slug",
			err:  apierr.New(0, SlugSubscriptionInactive, "subscription is not active"),
			want: "Your subscription is not active. Update your billing details first.",
		},
		{
			name: "unrecognized code falls back to server message",
			err:  apierr.New(9999, "MYSTERY", "the server said something specific"),
			want: "the server said something specific",
		},
		{
			name: "plain error falls back to generic copy",
			err:  fmt.Errorf("connection reset"),
			want: planChangeFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewChangeMachine(store.PlanFree, false, nil)
			require.True(t, m.Begin())
			m.Fail(tt.err)
			assert.Equal(t, StateError, m.State())
			assert.Equal(t, tt.want, m.Message())
		})
	}
}

func TestEditResetsErrorToIdle(t *testing.T) {
	m := NewChangeMachine(store.PlanFree, false, nil)
	require.True(t, m.Begin())
	m.Fail(fmt.Errorf("boom"))
	require.Equal(t, StateError, m.State())

	m.Edit()
	assert.Equal(t, StateIdle, m.State())
	assert.Empty(t, m.Message())

	// Edit only resets an errored machine.
	require.True(t, m.Begin())
	m.Apply(store.PlanStarter, &PlanChangeResult{})
	m.Edit()
	assert.Equal(t, StateUpgraded, m.State())
}
