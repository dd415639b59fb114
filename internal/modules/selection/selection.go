// Package selection implements the organization → store selection flow that
// gates the rest of the back office: an admin picks one of their
// organizations, then one of its stores, and is sent on to their intended
// destination. The flow is an injectable container, never a package-level
// singleton, so every caller (and every test) owns an isolated instance.
package selection

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/vendahq/backoffice/internal/modules/store"
	"github.com/vendahq/backoffice/internal/modules/tenant"
)

// State is the position in the selection flow.
type State string

const (
	StateUninitialized        State = "UNINITIALIZED"
	StateChoosingOrganization State = "CHOOSING_ORGANIZATION"
	StateChoosingStore        State = "CHOOSING_STORE"
	StateComplete             State = "COMPLETE"
)

// DefaultDestination is where a completed selection navigates when the
// caller supplied no intended destination.
const DefaultDestination = "/dashboard"

// OrganizationDirectory lists the organizations an admin belongs to.
type OrganizationDirectory interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]*tenant.Tenant, error)
}

// StoreDirectory lists the stores under an organization.
type StoreDirectory interface {
	ListByTenant(ctx context.Context, tenantID string) ([]*store.Store, error)
}

// Identity resolves the current authenticated user. An error means there is
// no usable session; the flow then skips fetching and shows an empty state.
type Identity func(ctx context.Context) (userID string, err error)

// Navigator performs the hand-off once selection completes. It runs after
// the chosen organization and store are committed to the container, so no
// timer-based settling is needed.
type Navigator func(destination string)

// Flow is the selection state machine.
type Flow struct {
	orgs     OrganizationDirectory
	stores   StoreDirectory
	identity Identity
	navigate Navigator

	mu            sync.Mutex
	state         State
	fetching      bool
	orgsLoaded    bool
	organizations []*tenant.Tenant
	storeList     []*store.Store
	storesErr     error
	chosenOrg     *tenant.Tenant
	chosenStore   *store.Store
	destination   string
	navigated     bool
}

// New builds a flow. navigate may be nil when the caller only inspects state.
func New(orgs OrganizationDirectory, stores StoreDirectory, identity Identity, navigate Navigator) *Flow {
	return &Flow{
		orgs:     orgs,
		stores:   stores,
		identity: identity,
		navigate: navigate,
		state:    StateUninitialized,
	}
}

// Initialize enters the flow. It unconditionally clears any previously chosen
// organization and store (re-entering the screen always forces a fresh
// choice), then fetches the caller's organizations unless the list is already
// cached or a fetch is in flight, so rapid repeat calls trigger at most one
// fetch. When the current user cannot be resolved the fetch is skipped and
// the flow shows an empty state. The flow advances to choosing-organization
// regardless of fetch outcome.
func (f *Flow) Initialize(ctx context.Context, intendedDestination string) {
	f.mu.Lock()
	f.chosenOrg = nil
	f.chosenStore = nil
	f.navigated = false
	f.destination = intendedDestination
	f.state = StateChoosingOrganization

	if f.orgsLoaded || f.fetching {
		f.mu.Unlock()
		return
	}
	f.fetching = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.fetching = false
		f.mu.Unlock()
	}()

	userID, err := f.identity(ctx)
	if err != nil {
		log.Printf("selection: no authenticated user, skipping organization fetch: %v", err)
		return
	}

	orgs, err := f.orgs.ListByOwner(ctx, userID)
	if err != nil {
		// Soft fail: an empty organization list, never a dead screen.
		log.Printf("selection: organization fetch failed: %v", err)
		return
	}

	f.mu.Lock()
	f.organizations = orgs
	f.orgsLoaded = true
	f.mu.Unlock()
}

// SelectOrganization records the chosen organization and fetches its stores.
// A store-fetch failure is recorded and logged but still advances the flow to
// choosing-store with an empty list; the screen decides whether to render it
// as "no stores yet" or as a degraded fetch (StoresErr disambiguates).
func (f *Flow) SelectOrganization(ctx context.Context, id string) error {
	f.mu.Lock()
	var chosen *tenant.Tenant
	for _, org := range f.organizations {
		if org.ID.String() == id {
			chosen = org
			break
		}
	}
	if chosen == nil {
		f.mu.Unlock()
		return fmt.Errorf("organization %s is not in the selectable list", id)
	}
	f.chosenOrg = chosen
	f.chosenStore = nil
	f.storeList = nil
	f.storesErr = nil
	f.mu.Unlock()

	stores, err := f.stores.ListByTenant(ctx, id)

	f.mu.Lock()
	if err != nil {
		log.Printf("selection: store fetch for organization %s failed: %v", id, err)
		f.storesErr = err
	} else {
		f.storeList = stores
	}
	f.state = StateChoosingStore
	f.mu.Unlock()
	return nil
}

// SelectStore records the chosen store. Only stores fetched for the currently
// chosen organization are selectable, which keeps the parent invariant: the
// selected store's tenant is always the selected organization. Completion is
// observed immediately after the choice commits.
func (f *Flow) SelectStore(id string) error {
	f.mu.Lock()
	if f.state != StateChoosingStore || f.chosenOrg == nil {
		f.mu.Unlock()
		return fmt.Errorf("no organization is selected")
	}
	var chosen *store.Store
	for _, st := range f.storeList {
		if st.ID.String() == id {
			chosen = st
			break
		}
	}
	if chosen == nil {
		f.mu.Unlock()
		return fmt.Errorf("store %s is not in the selectable list", id)
	}
	f.chosenStore = chosen
	f.mu.Unlock()

	f.observeCompletion()
	return nil
}

// GoBackToOrganizations returns to the organization step, clearing both
// choices. The organization list is kept; going back never refetches it.
func (f *Flow) GoBackToOrganizations() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chosenOrg = nil
	f.chosenStore = nil
	f.storeList = nil
	f.storesErr = nil
	f.state = StateChoosingOrganization
}

// observeCompletion transitions to complete and navigates exactly once when
// both an organization and a store are chosen. The navigator runs after the
// state is committed and outside the lock.
func (f *Flow) observeCompletion() {
	f.mu.Lock()
	if f.chosenOrg == nil || f.chosenStore == nil || f.navigated {
		f.mu.Unlock()
		return
	}
	f.state = StateComplete
	f.navigated = true
	dest := f.destination
	if dest == "" {
		dest = DefaultDestination
	}
	navigate := f.navigate
	f.mu.Unlock()

	if navigate != nil {
		navigate(dest)
	}
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Organizations returns the fetched organization list.
func (f *Flow) Organizations() []*tenant.Tenant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.organizations
}

// Stores returns the store list fetched for the chosen organization.
func (f *Flow) Stores() []*store.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.storeList
}

// StoresErr reports whether the last store fetch failed, letting the screen
// tell a degraded fetch apart from a genuinely storeless organization.
func (f *Flow) StoresErr() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.storesErr
}

// ChosenOrganization returns the selected organization, or nil.
func (f *Flow) ChosenOrganization() *tenant.Tenant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chosenOrg
}

// ChosenStore returns the selected store, or nil.
func (f *Flow) ChosenStore() *store.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.chosenStore
}
