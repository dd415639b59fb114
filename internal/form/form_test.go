package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendahq/backoffice/internal/apierr"
)

func TestSetAndGetDotPaths(t *testing.T) {
	f := New()

	f.Set("name", "Main Street")
	f.Set("address.city", "Lusaka")
	f.Set("address.geo.lat", 12.5)

	assert.Equal(t, "Main Street", f.Get("name"))
	assert.Equal(t, "Lusaka", f.Get("address.city"))
	assert.Equal(t, 12.5, f.Get("address.geo.lat"))
	assert.Nil(t, f.Get("address.postcode"))
	assert.Nil(t, f.Get("missing.deep.path"))
}

func TestSetReplacesScalarIntermediate(t *testing.T) {
	f := New()

	f.Set("address", "just a string")
	f.Set("address.city", "Kitwe")

	assert.Equal(t, "Kitwe", f.Get("address.city"))
}

func TestInvalidFormNeverCallsRemote(t *testing.T) {
	f := New(
		Field{Path: "name", Validators: []Validator{Required("Name")}},
		Field{Path: "contactEmail", Validators: []Validator{Required("Email"), Email("Email")}},
	)

	called := 0
	err := f.Submit(context.Background(), func(ctx context.Context, values map[string]any) error {
		called++
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, 0, called)
	assert.Equal(t, PhaseFailed, f.Phase)
	assert.Equal(t, "Name is required", f.Errs["name"])
	assert.Equal(t, "Email is required", f.Errs["contactEmail"])
}

func TestValidatorsStopAtFirstFailurePerField(t *testing.T) {
	f := New(
		Field{Path: "email", Validators: []Validator{Required("Email"), Email("Email")}},
	)
	f.Set("email", "not-an-email")

	assert.False(t, f.Validate())
	assert.Equal(t, "Email must be a valid email address", f.Errs["email"])
}

func TestEditingClearsFieldErrorAndResetsPhase(t *testing.T) {
	f := New(Field{Path: "name", Validators: []Validator{Required("Name")}})

	_ = f.Submit(context.Background(), func(ctx context.Context, values map[string]any) error { return nil })
	require.Equal(t, PhaseFailed, f.Phase)
	require.NotEmpty(t, f.Errs["name"])

	f.Set("name", "Corner Shop")

	assert.Empty(t, f.Errs["name"])
	assert.Empty(t, f.TopErr)
	assert.Equal(t, PhaseIdle, f.Phase)
}

func TestSubmitSucceeds(t *testing.T) {
	f := New(Field{Path: "name", Validators: []Validator{Required("Name")}})
	f.Set("name", "Corner Shop")

	var got map[string]any
	err := f.Submit(context.Background(), func(ctx context.Context, values map[string]any) error {
		got = values
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, PhaseSucceeded, f.Phase)
	assert.Equal(t, "Corner Shop", got["name"])
}

func TestSubmitReentryWhileInFlightIsNoOp(t *testing.T) {
	f := New()
	f.Phase = PhaseSubmitting

	called := 0
	err := f.Submit(context.Background(), func(ctx context.Context, values map[string]any) error {
		called++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 0, called)
}

func TestRemoteFieldErrorsMapThroughAPIFields(t *testing.T) {
	f := New(Field{Path: "contactEmail"}).
		MapAPIFields(map[string]string{"contact_email": "contactEmail"})
	f.Set("contactEmail", "taken@example.com")

	remote := apierr.New(1062, "DUPLICATE", "Validation failed").
		WithDetails(map[string]string{"contact_email": "email is already in use"})

	err := f.Submit(context.Background(), func(ctx context.Context, values map[string]any) error {
		return remote
	})

	require.Error(t, err)
	assert.Equal(t, PhaseFailed, f.Phase)
	assert.Equal(t, "Validation failed", f.TopErr)
	assert.Equal(t, "email is already in use", f.Errs["contactEmail"])
}

func TestUnstructuredRemoteErrorBecomesTopLevelMessage(t *testing.T) {
	f := New()

	err := f.Submit(context.Background(), func(ctx context.Context, values map[string]any) error {
		return errors.New("dial tcp: connection refused")
	})

	require.Error(t, err)
	assert.Equal(t, PhaseFailed, f.Phase)
	assert.Equal(t, "Something went wrong. Please try again.", f.TopErr)
	assert.Empty(t, f.Errs)
}
