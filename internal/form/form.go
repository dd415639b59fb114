// Package form implements the shared form-container pattern used by every
// create/edit screen: field values, a field-name → error map, and a submission
// phase. Validation runs fully client-side before submit; a validation failure
// blocks the remote call entirely. Nested fields are addressed by dot-path
// ("address.city") and written through a generic deep-set.
package form

import (
	"context"
	"fmt"
	"strings"

	"github.com/vendahq/backoffice/internal/apierr"
)

// Phase is the submission lifecycle of a form.
type Phase string

const (
	PhaseIdle       Phase = "IDLE"
	PhaseSubmitting Phase = "SUBMITTING"
	PhaseSucceeded  Phase = "SUCCEEDED"
	PhaseFailed     Phase = "FAILED"
)

// Validator checks a single field value and returns an error message,
// or "" when the value is acceptable.
type Validator func(value string) string

// Required rejects empty and whitespace-only values.
func Required(label string) Validator {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return fmt.Sprintf("%s is required", label)
		}
		return ""
	}
}

// Email rejects values without a plausible user@host shape.
func Email(label string) Validator {
	return func(value string) string {
		if value == "" {
			return ""
		}
		at := strings.Index(value, "@")
		if at <= 0 || at == len(value)-1 || !strings.Contains(value[at+1:], ".") {
			return fmt.Sprintf("%s must be a valid email address", label)
		}
		return ""
	}
}

// MinLen rejects values shorter than n characters.
func MinLen(label string, n int) Validator {
	return func(value string) string {
		if value != "" && len(value) < n {
			return fmt.Sprintf("%s must be at least %d characters", label, n)
		}
		return ""
	}
}

// Field declares one form field by dot-path with its validators.
type Field struct {
	Path       string
	Validators []Validator
}

// SubmitFunc performs the remote call for a form's current values.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Form holds the state of one create/edit screen.
type Form struct {
	fields []Field
	values map[string]any

	// Errs maps field dot-path → message. A field's entry is cleared the
	// moment the field is next written.
	Errs map[string]string

	// TopErr is the single top-level message for non-field failures.
	TopErr string

	Phase Phase

	// apiFields maps remote detail keys to form field dot-paths.
	apiFields map[string]string
}

// New builds a form from its field declarations.
func New(fields ...Field) *Form {
	return &Form{
		fields: fields,
		values: map[string]any{},
		Errs:   map[string]string{},
		Phase:  PhaseIdle,
	}
}

// MapAPIFields declares how remote per-field error details translate to form
// fields, e.g. {"contact_email": "contactEmail"}.
func (f *Form) MapAPIFields(m map[string]string) *Form {
	f.apiFields = m
	return f
}

// Set writes a field value by dot-path, creating intermediate objects as
// needed, and clears that field's stored error. Editing after a failed submit
// resets the form to idle.
func (f *Form) Set(path string, value any) {
	deepSet(f.values, path, value)
	delete(f.Errs, path)
	if f.Phase == PhaseFailed {
		f.TopErr = ""
		f.Phase = PhaseIdle
	}
}

// Get reads a field value by dot-path. Missing paths return nil.
func (f *Form) Get(path string) any {
	return deepGet(f.values, path)
}

// Values returns the current value tree.
func (f *Form) Values() map[string]any { return f.values }

// Validate runs every field's validators and records failures.
// It returns true when the form is submittable.
func (f *Form) Validate() bool {
	ok := true
	for _, fd := range f.fields {
		val, _ := f.Get(fd.Path).(string)
		for _, v := range fd.Validators {
			if msg := v(val); msg != "" {
				f.Errs[fd.Path] = msg
				ok = false
				break
			}
		}
	}
	return ok
}

// Submit validates and, only if every field passes, invokes the remote call.
// An invalid form never reaches the remote layer. Re-entry while a submission
// is in flight is a no-op.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	if f.Phase == PhaseSubmitting {
		return nil
	}
	if !f.Validate() {
		f.Phase = PhaseFailed
		return fmt.Errorf("form has %d invalid field(s)", len(f.Errs))
	}
	f.Phase = PhaseSubmitting
	if err := fn(ctx, f.values); err != nil {
		f.applyRemoteError(err)
		f.Phase = PhaseFailed
		return err
	}
	f.Phase = PhaseSucceeded
	return nil
}

// applyRemoteError surfaces a remote failure: structured detail maps onto
// individual fields through the declared mapping, everything else becomes the
// single top-level message.
func (f *Form) applyRemoteError(err error) {
	apiErr, ok := apierr.As(err)
	if !ok {
		f.TopErr = "Something went wrong. Please try again."
		return
	}
	f.TopErr = apiErr.Message
	for apiField, msg := range apiErr.Details {
		path := apiField
		if mapped, ok := f.apiFields[apiField]; ok {
			path = mapped
		}
		f.Errs[path] = msg
	}
}

// deepSet writes value at a dot-path, materializing intermediate maps.
// A non-map intermediate is replaced; the path author owns the shape.
func deepSet(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}

func deepGet(m map[string]any, path string) any {
	parts := strings.Split(path, ".")
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			return nil
		}
		m = next
	}
	return m[parts[len(parts)-1]]
}
