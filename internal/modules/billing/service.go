package billing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vendahq/backoffice/internal/apierr"
	"github.com/vendahq/backoffice/internal/modules/store"
)

// Service defines billing business logic.
type Service interface {
	// ChangePlan resolves a plan-change submission for a store into exactly
	// one outcome: checkout-required, downgrade-scheduled, or an immediate
	// change. Cancelling a pending downgrade is the immediate-change shape
	// with target == current plan.
	ChangePlan(ctx context.Context, storeID string, target string) (*PlanChangeResult, error)

	// CancelDowngrade submits the store's current plan through ChangePlan.
	CancelDowngrade(ctx context.Context, storeID string) (*PlanChangeResult, error)

	GetProfile(ctx context.Context, tenantID string) (*Profile, error)
	SaveProfile(ctx context.Context, p *Profile) (*Profile, error)

	// ApplyDueDowngrades applies every scheduled downgrade whose effective
	// date has passed and returns how many were applied.
	ApplyDueDowngrades(ctx context.Context, asOf time.Time) (int, error)
}

type service struct {
	repo     Repository
	stores   store.Repository
	checkout CheckoutGateway
}

func NewService(repo Repository, stores store.Repository, checkout CheckoutGateway) Service {
	return &service{repo: repo, stores: stores, checkout: checkout}
}

func (s *service) ChangePlan(ctx context.Context, storeID string, target string) (*PlanChangeResult, error) {
	plan, ok := PlanByName(target)
	if !ok {
		return nil, apierr.New(CodePlanNotRecognized, "PLAN_NOT_RECOGNIZED",
			fmt.Sprintf("plan %q is not recognized", target))
	}

	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	if st.Status != store.StatusActive {
		return nil, apierr.New(CodeStoreNotActive, "STORE_NOT_ACTIVE",
			fmt.Sprintf("store %s is not active", storeID))
	}

	profile, err := s.profileOrDefault(ctx, st.TenantID.String())
	if err != nil {
		return nil, err
	}
	if profile.SubscriptionStatus != SubActive {
		return nil, apierr.New(0, SlugSubscriptionInactive,
			"subscription is not active for this tenant")
	}

	// Free plan allows a single store per tenant.
	if plan.Plan == store.PlanFree && st.Plan != store.PlanFree {
		n, err := s.stores.CountByTenantAndPlan(ctx, st.TenantID.String(), store.PlanFree)
		if err != nil {
			return nil, err
		}
		if n >= 1 {
			return nil, apierr.New(CodeFreePlanStoreLimit, "FREE_PLAN_STORE_LIMIT",
				"the free plan is limited to one store per tenant")
		}
	}

	current := st.Plan
	switch {
	case plan.Plan.Rank() > current.Rank() && !profile.HasPaymentMethod:
		// Paid upgrade without a payment method on file: hand off to the
		// hosted checkout page. No local plan change happens here; the
		// processor's webhook completes the upgrade out of band.
		url, err := s.checkout.CreateSession(ctx, storeID, plan.Plan)
		if err != nil {
			return nil, fmt.Errorf("create checkout session: %w", err)
		}
		return &PlanChangeResult{CheckoutRequired: true, CheckoutURL: url}, nil

	case plan.Plan.Rank() < current.Rank():
		// Downgrades take effect at the end of the paid period.
		effectiveAt := profile.CurrentPeriodEnd
		if effectiveAt.IsZero() || effectiveAt.Before(time.Now()) {
			effectiveAt = time.Now().AddDate(0, 1, 0)
		}
		if err := s.stores.ScheduleDowngrade(ctx, storeID, plan.Plan, effectiveAt); err != nil {
			return nil, err
		}
		fresh, err := s.stores.GetByID(ctx, storeID)
		if err != nil {
			return nil, err
		}
		return &PlanChangeResult{
			DowngradeScheduled:   true,
			PendingPlan:          plan.Plan,
			DowngradeEffectiveAt: &effectiveAt,
			Store:                fresh,
		}, nil

	case plan.Plan == current && st.DowngradePending():
		// Keeping the current plan cancels the scheduled downgrade.
		if err := s.stores.ClearPendingDowngrade(ctx, storeID); err != nil {
			return nil, err
		}
		fresh, err := s.stores.GetByID(ctx, storeID)
		if err != nil {
			return nil, err
		}
		return &PlanChangeResult{Store: fresh}, nil

	default:
		// Immediate change: upgrades apply at once, and re-submitting the
		// current plan with nothing pending is a no-op write.
		if err := s.stores.SetPlan(ctx, storeID, plan.Plan); err != nil {
			return nil, err
		}
		fresh, err := s.stores.GetByID(ctx, storeID)
		if err != nil {
			return nil, err
		}
		return &PlanChangeResult{Store: fresh}, nil
	}
}

func (s *service) CancelDowngrade(ctx context.Context, storeID string) (*PlanChangeResult, error) {
	st, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}
	if !st.DowngradePending() {
		return nil, fmt.Errorf("no downgrade is pending for store %s", storeID)
	}
	return s.ChangePlan(ctx, storeID, string(st.Plan))
}

func (s *service) GetProfile(ctx context.Context, tenantID string) (*Profile, error) {
	return s.profileOrDefault(ctx, tenantID)
}

func (s *service) SaveProfile(ctx context.Context, p *Profile) (*Profile, error) {
	if p.SubscriptionStatus == "" {
		p.SubscriptionStatus = SubActive
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return s.repo.GetProfile(ctx, p.TenantID.String())
}

func (s *service) ApplyDueDowngrades(ctx context.Context, asOf time.Time) (int, error) {
	due, err := s.stores.ListDueDowngrades(ctx, asOf)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, st := range due {
		if st.PendingPlan == nil {
			continue
		}
		// SetPlan clears the pending fields in the same write.
		if err := s.stores.SetPlan(ctx, st.ID.String(), *st.PendingPlan); err != nil {
			return applied, err
		}
		applied++
	}
	return applied, nil
}

// profileOrDefault treats a tenant without a billing profile as active on
// self-serve terms with no payment method on file.
func (s *service) profileOrDefault(ctx context.Context, tenantID string) (*Profile, error) {
	p, err := s.repo.GetProfile(ctx, tenantID)
	if errors.Is(err, sql.ErrNoRows) {
		return &Profile{SubscriptionStatus: SubActive}, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
