package selection

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendahq/backoffice/internal/modules/store"
	"github.com/vendahq/backoffice/internal/modules/tenant"
)

type fakeOrgDir struct {
	orgs  []*tenant.Tenant
	err   error
	calls int
}

func (f *fakeOrgDir) ListByOwner(ctx context.Context, ownerUserID string) ([]*tenant.Tenant, error) {
	f.calls++
	return f.orgs, f.err
}

type fakeStoreDir struct {
	stores map[string][]*store.Store
	err    error
	calls  int
}

func (f *fakeStoreDir) ListByTenant(ctx context.Context, tenantID string) ([]*store.Store, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.stores[tenantID], nil
}

func okIdentity(ctx context.Context) (string, error) { return uuid.NewString(), nil }

func newOrg(name string) *tenant.Tenant {
	return &tenant.Tenant{ID: uuid.New(), Name: name, Status: tenant.StatusActive}
}

func newStore(org *tenant.Tenant, name string) *store.Store {
	return &store.Store{ID: uuid.New(), TenantID: org.ID, Name: name, Status: store.StatusActive, Plan: store.PlanFree}
}

func TestInitializeClearsPriorSelection(t *testing.T) {
	org := newOrg("Acme")
	st := newStore(org, "Downtown")
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{org}}
	stores := &fakeStoreDir{stores: map[string][]*store.Store{org.ID.String(): {st}}}

	flow := New(orgs, stores, okIdentity, func(string) {})
	flow.Initialize(context.Background(), "")
	require.NoError(t, flow.SelectOrganization(context.Background(), org.ID.String()))
	require.NoError(t, flow.SelectStore(st.ID.String()))
	require.Equal(t, StateComplete, flow.State())

	// Re-entering the screen forces a fresh choice every time.
	flow.Initialize(context.Background(), "")
	assert.Nil(t, flow.ChosenOrganization())
	assert.Nil(t, flow.ChosenStore())
	assert.Equal(t, StateChoosingOrganization, flow.State())
}

func TestInitializeFetchesOnce(t *testing.T) {
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{newOrg("Acme")}}
	flow := New(orgs, &fakeStoreDir{}, okIdentity, nil)

	flow.Initialize(context.Background(), "")
	flow.Initialize(context.Background(), "")
	flow.Initialize(context.Background(), "")

	assert.Equal(t, 1, orgs.calls, "rapid re-entry must not refetch a cached list")
}

func TestInitializeWithoutIdentitySkipsFetch(t *testing.T) {
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{newOrg("Acme")}}
	flow := New(orgs, &fakeStoreDir{}, func(ctx context.Context) (string, error) {
		return "", fmt.Errorf("no session")
	}, nil)

	flow.Initialize(context.Background(), "")

	assert.Zero(t, orgs.calls)
	assert.Empty(t, flow.Organizations())
	assert.Equal(t, StateChoosingOrganization, flow.State(), "flow advances even without a user")
}

func TestSelectedStoreBelongsToSelectedOrganization(t *testing.T) {
	orgA := newOrg("Acme")
	orgB := newOrg("Bolt")
	stA := newStore(orgA, "Acme Main")
	stB := newStore(orgB, "Bolt Main")
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{orgA, orgB}}
	stores := &fakeStoreDir{stores: map[string][]*store.Store{
		orgA.ID.String(): {stA},
		orgB.ID.String(): {stB},
	}}

	flow := New(orgs, stores, okIdentity, func(string) {})
	flow.Initialize(context.Background(), "")
	require.NoError(t, flow.SelectOrganization(context.Background(), orgA.ID.String()))

	// A store of another organization is never selectable.
	require.Error(t, flow.SelectStore(stB.ID.String()))
	require.NoError(t, flow.SelectStore(stA.ID.String()))
	assert.Equal(t, flow.ChosenOrganization().ID, flow.ChosenStore().TenantID)
}

func TestStoreFetchFailureSoftFails(t *testing.T) {
	org := newOrg("Acme")
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{org}}
	stores := &fakeStoreDir{err: fmt.Errorf("gateway timeout")}

	flow := New(orgs, stores, okIdentity, nil)
	flow.Initialize(context.Background(), "")

	require.NoError(t, flow.SelectOrganization(context.Background(), org.ID.String()))
	assert.Equal(t, StateChoosingStore, flow.State(), "fetch failure must not lock up the flow")
	assert.Empty(t, flow.Stores())
	assert.Error(t, flow.StoresErr())
}

func TestEmptyStoreListIsNotAnError(t *testing.T) {
	org := newOrg("Acme")
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{org}}
	stores := &fakeStoreDir{stores: map[string][]*store.Store{}}

	flow := New(orgs, stores, okIdentity, nil)
	flow.Initialize(context.Background(), "")

	require.NoError(t, flow.SelectOrganization(context.Background(), org.ID.String()))
	assert.Equal(t, StateChoosingStore, flow.State())
	assert.Empty(t, flow.Stores())
	assert.NoError(t, flow.StoresErr(), "a storeless organization renders the create-one empty state")
}

func TestGoBackClearsChoicesWithoutRefetch(t *testing.T) {
	org := newOrg("Acme")
	st := newStore(org, "Downtown")
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{org}}
	stores := &fakeStoreDir{stores: map[string][]*store.Store{org.ID.String(): {st}}}

	flow := New(orgs, stores, okIdentity, nil)
	flow.Initialize(context.Background(), "")
	require.NoError(t, flow.SelectOrganization(context.Background(), org.ID.String()))

	flow.GoBackToOrganizations()

	assert.Nil(t, flow.ChosenOrganization())
	assert.Nil(t, flow.ChosenStore())
	assert.Equal(t, StateChoosingOrganization, flow.State())
	assert.Equal(t, 1, orgs.calls, "going back reuses the in-memory organization list")
	assert.Len(t, flow.Organizations(), 1)
}

func TestCompletionNavigatesOnceToIntendedDestination(t *testing.T) {
	org := newOrg("Acme")
	st := newStore(org, "Downtown")
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{org}}
	stores := &fakeStoreDir{stores: map[string][]*store.Store{org.ID.String(): {st}}}

	var destinations []string
	flow := New(orgs, stores, okIdentity, func(dest string) {
		destinations = append(destinations, dest)
	})

	flow.Initialize(context.Background(), "/settings/billing")
	require.NoError(t, flow.SelectOrganization(context.Background(), org.ID.String()))
	require.NoError(t, flow.SelectStore(st.ID.String()))

	assert.Equal(t, StateComplete, flow.State())
	assert.Equal(t, []string{"/settings/billing"}, destinations)

	// A second select must not navigate again.
	_ = flow.SelectStore(st.ID.String())
	assert.Len(t, destinations, 1)
}

func TestCompletionDefaultsToDashboard(t *testing.T) {
	org := newOrg("Acme")
	st := newStore(org, "Downtown")
	orgs := &fakeOrgDir{orgs: []*tenant.Tenant{org}}
	stores := &fakeStoreDir{stores: map[string][]*store.Store{org.ID.String(): {st}}}

	var dest string
	flow := New(orgs, stores, okIdentity, func(d string) { dest = d })

	flow.Initialize(context.Background(), "")
	require.NoError(t, flow.SelectOrganization(context.Background(), org.ID.String()))
	require.NoError(t, flow.SelectStore(st.ID.String()))

	assert.Equal(t, DefaultDestination, dest)
}
