package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendahq/backoffice/internal/modules/tenant"
)

type fakeStoreRepo struct {
	stores map[string]*Store
}

func newFakeStoreRepo() *fakeStoreRepo { return &fakeStoreRepo{stores: map[string]*Store{}} }

func (f *fakeStoreRepo) Create(ctx context.Context, s *Store) error {
	f.stores[s.ID.String()] = s
	return nil
}

func (f *fakeStoreRepo) GetByID(ctx context.Context, id string) (*Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeStoreRepo) ListByTenant(ctx context.Context, tenantID string) ([]*Store, error) {
	var out []*Store
	for _, s := range f.stores {
		if s.TenantID.String() == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoreRepo) Update(ctx context.Context, s *Store) error {
	f.stores[s.ID.String()] = s
	return nil
}

func (f *fakeStoreRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	f.stores[id].Status = status
	return nil
}

func (f *fakeStoreRepo) Delete(ctx context.Context, id string) error {
	delete(f.stores, id)
	return nil
}

func (f *fakeStoreRepo) SetPlan(ctx context.Context, id string, plan Plan) error {
	f.stores[id].Plan = plan
	return nil
}

func (f *fakeStoreRepo) ScheduleDowngrade(ctx context.Context, id string, pending Plan, effectiveAt time.Time) error {
	f.stores[id].PendingPlan = &pending
	f.stores[id].DowngradeEffectiveAt = &effectiveAt
	return nil
}

func (f *fakeStoreRepo) ClearPendingDowngrade(ctx context.Context, id string) error {
	f.stores[id].PendingPlan = nil
	f.stores[id].DowngradeEffectiveAt = nil
	return nil
}

func (f *fakeStoreRepo) CountByTenantAndPlan(ctx context.Context, tenantID string, plan Plan) (int, error) {
	n := 0
	for _, s := range f.stores {
		if s.TenantID.String() == tenantID && s.Plan == plan {
			n++
		}
	}
	return n, nil
}

func (f *fakeStoreRepo) ListDueDowngrades(ctx context.Context, asOf time.Time) ([]*Store, error) {
	return nil, nil
}

type fakeTenantRepo struct {
	tenants map[string]*tenant.Tenant
}

func newFakeTenantRepo(tenants ...*tenant.Tenant) *fakeTenantRepo {
	f := &fakeTenantRepo{tenants: map[string]*tenant.Tenant{}}
	for _, t := range tenants {
		f.tenants[t.ID.String()] = t
	}
	return f
}

func (f *fakeTenantRepo) Create(ctx context.Context, t *tenant.Tenant) error {
	f.tenants[t.ID.String()] = t
	return nil
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return t, nil
}

func (f *fakeTenantRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]*tenant.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) Update(ctx context.Context, t *tenant.Tenant) error { return nil }

func (f *fakeTenantRepo) UpdateStatus(ctx context.Context, id string, status tenant.Status) error {
	f.tenants[id].Status = status
	return nil
}

func (f *fakeTenantRepo) Delete(ctx context.Context, id string) error { return nil }

func activeTenant() *tenant.Tenant {
	return &tenant.Tenant{ID: uuid.New(), OwnerUserID: uuid.New(), Name: "Acme", Status: tenant.StatusActive}
}

func TestCreateStoreStartsOnFreePlan(t *testing.T) {
	tn := activeTenant()
	svc := NewService(newFakeStoreRepo(), newFakeTenantRepo(tn))

	st, err := svc.Create(context.Background(), tn.ID.String(), CreateStoreRequest{Name: "  Main Street  "})
	require.NoError(t, err)

	assert.Equal(t, "Main Street", st.Name)
	assert.Equal(t, tn.ID, st.TenantID)
	assert.Equal(t, PlanFree, st.Plan)
	assert.Equal(t, StatusActive, st.Status)
	assert.Equal(t, LocationRetail, st.LocationType)
}

func TestCreateStoreGuards(t *testing.T) {
	tn := activeTenant()

	t.Run("name required", func(t *testing.T) {
		svc := NewService(newFakeStoreRepo(), newFakeTenantRepo(tn))
		_, err := svc.Create(context.Background(), tn.ID.String(), CreateStoreRequest{Name: "   "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("unknown tenant", func(t *testing.T) {
		svc := NewService(newFakeStoreRepo(), newFakeTenantRepo())
		_, err := svc.Create(context.Background(), uuid.NewString(), CreateStoreRequest{Name: "Main"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tenant not found")
	})

	t.Run("suspended tenant", func(t *testing.T) {
		suspended := activeTenant()
		suspended.Status = tenant.StatusSuspended
		svc := NewService(newFakeStoreRepo(), newFakeTenantRepo(suspended))
		_, err := svc.Create(context.Background(), suspended.ID.String(), CreateStoreRequest{Name: "Main"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SUSPENDED")
	})

	t.Run("unknown location type", func(t *testing.T) {
		svc := NewService(newFakeStoreRepo(), newFakeTenantRepo(tn))
		_, err := svc.Create(context.Background(), tn.ID.String(), CreateStoreRequest{Name: "Main", LocationType: "kiosk"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown location type")
	})
}

func TestUpdateStatusValidatesAndSkipsNoOp(t *testing.T) {
	tn := activeTenant()
	repo := newFakeStoreRepo()
	svc := NewService(repo, newFakeTenantRepo(tn))
	st, err := svc.Create(context.Background(), tn.ID.String(), CreateStoreRequest{Name: "Main"})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), st.ID.String(), UpdateStatusRequest{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), st.ID.String(), UpdateStatusRequest{Status: "ARCHIVED"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store status")

	same, err := svc.UpdateStatus(context.Background(), st.ID.String(), UpdateStatusRequest{Status: "INACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, same.Status)
}

func TestDowngradePending(t *testing.T) {
	st := &Store{Plan: PlanPro}
	assert.False(t, st.DowngradePending())

	pending := PlanStarter
	at := time.Now().AddDate(0, 0, 7)
	st.PendingPlan = &pending
	st.DowngradeEffectiveAt = &at
	assert.True(t, st.DowngradePending())
}

func TestPlanRankOrdering(t *testing.T) {
	assert.Less(t, PlanFree.Rank(), PlanStarter.Rank())
	assert.Less(t, PlanStarter.Rank(), PlanPro.Rank())
	assert.True(t, PlanPro.Valid())
	assert.False(t, Plan("platinum").Valid())
}
