package form

import (
	"context"
	"reflect"

	"github.com/vango-dev/formkit/pkg/reactive"
	"github.com/vango-dev/formkit/pkg/schema"
)

// SubmitFunc is the external submission callback. It receives the typed
// values snapshot captured after validation succeeded and reports failure
// by returning an error; the message is surfaced as State.SubmitError.
type SubmitFunc[T any] func(ctx context.Context, values T) error

// State is an immutable snapshot of the full form state, handed to UI
// layers on every change.
type State struct {
	// Values holds the current field values keyed by field name. A field
	// may hold a value of a different type than its struct declaration
	// while the user is editing (a cleared numeric input holds "").
	Values map[string]any

	// Errors maps each currently-failing field to its first violation
	// message. Fields without a violation are absent.
	Errors map[string]string

	// Touched marks fields the user has interacted with and left.
	Touched map[string]bool

	// Submitting is true only while the submit callback is in flight.
	Submitting bool

	// Valid is the outcome of the most recent validation pass.
	Valid bool

	// SubmitCount is incremented once per submission attempt, regardless
	// of outcome.
	SubmitCount int

	// SubmitError is the last submission failure message, cleared when a
	// new attempt begins.
	SubmitError string
}

// Form is the state store for a single form instance. T is the record of
// named field values; its `form` struct tags declare the field names.
//
// A Form is created with New, mutated through its handle, and discarded
// with the owning component. All mutation replaces state snapshots rather
// than editing them in place.
type Form[T any] struct {
	initial map[string]any
	schema  schema.Parser
	submit  SubmitFunc[T]

	values      *reactive.Signal[map[string]any]
	errors      *reactive.Signal[map[string]string]
	touched     *reactive.Signal[map[string]bool]
	submitting  *reactive.Signal[bool]
	valid       *reactive.Signal[bool]
	submitCount *reactive.Signal[int]
	submitError *reactive.Signal[string]

	// version is bumped once per state-changing operation; subscribers
	// listen here so one operation means one notification, however many
	// signals it wrote.
	version *reactive.Signal[uint64]

	fields []string
	meta   map[string]fieldMeta
}

// Option configures a Form at construction.
type Option[T any] func(*Form[T])

// WithSchema configures the validation schema. Without one, every
// validation pass reports valid.
func WithSchema[T any](p schema.Parser) Option[T] {
	return func(f *Form[T]) {
		f.schema = p
	}
}

// WithSubmit configures the asynchronous submit callback.
func WithSubmit[T any](fn SubmitFunc[T]) Option[T] {
	return func(f *Form[T]) {
		f.submit = fn
	}
}

// New creates a Form with the given initial values. The construction-time
// snapshot is what ResetForm restores, regardless of later mutation.
func New[T any](initial T, opts ...Option[T]) *Form[T] {
	order, meta := parseFields(reflect.TypeOf(initial))
	initialValues := structToMap(initial, order, meta)

	f := &Form[T]{
		initial:     initialValues,
		values:      reactive.NewSignal(copyValues(initialValues)),
		errors:      reactive.NewSignal(map[string]string{}),
		touched:     reactive.NewSignal(map[string]bool{}),
		submitting:  reactive.NewSignal(false),
		valid:       reactive.NewSignal(true),
		submitCount: reactive.NewSignal(0),
		submitError: reactive.NewSignal(""),
		version:     reactive.NewSignal(uint64(0)),
		fields:      order,
		meta:        meta,
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Snapshot returns the full current state. The returned maps are copies;
// later mutations never alias into them.
func (f *Form[T]) Snapshot() State {
	return State{
		Values:      copyValues(f.values.Get()),
		Errors:      copyStringMap(f.errors.Get()),
		Touched:     copyBoolMap(f.touched.Get()),
		Submitting:  f.submitting.Get(),
		Valid:       f.valid.Get(),
		SubmitCount: f.submitCount.Get(),
		SubmitError: f.submitError.Get(),
	}
}

// Values materializes the typed values struct from the current state.
// Entries mid-edit (e.g. a cleared numeric input holding "") leave their
// struct field at the zero value.
func (f *Form[T]) Values() T {
	return mapToStruct[T](f.values.Get(), f.meta)
}

// Get returns a single field's current value, or nil for unknown fields.
func (f *Form[T]) Get(field string) any {
	return f.values.Get()[field]
}

// Fields returns the declared field names in struct order.
func (f *Form[T]) Fields() []string {
	out := make([]string, len(f.fields))
	copy(out, f.fields)
	return out
}

// Subscribe registers a callback invoked once after each state-changing
// operation completes. The returned function removes the subscription.
func (f *Form[T]) Subscribe(fn func()) (unsubscribe func()) {
	return f.version.Subscribe(fn)
}

// bump marks the end of one state-changing operation. Must run inside
// the operation's batch so it coalesces with the signal writes.
func (f *Form[T]) bump() {
	f.version.Update(func(n uint64) uint64 { return n + 1 })
}

// SetFieldValue writes a value into one field and, when a schema is
// configured, immediately revalidates the entire values object.
//
// On a passing validation only the written field's error is cleared;
// validity is then derived from whether any field in the resulting error
// map still holds a message, so a stale error on another field keeps the
// form invalid. On a failing validation only the written field's first
// violation is recorded (other fields' errors are left as they were, not
// recomputed) and the form is marked invalid.
//
// Unknown field names are ignored.
func (f *Form[T]) SetFieldValue(field string, value any) {
	if _, ok := f.meta[field]; !ok {
		return
	}

	reactive.Batch(func() {
		defer f.bump()

		f.values.Update(func(values map[string]any) map[string]any {
			next := copyValues(values)
			next[field] = value
			return next
		})

		if f.schema == nil {
			return
		}

		result := schema.Validate(f.schema, f.values.Get())
		if result.Valid {
			next := copyStringMap(f.errors.Get())
			delete(next, field)
			f.errors.Set(next)
			f.valid.Set(!hasAnyError(next))
			return
		}

		if msg, ok := result.FieldErrors[field]; ok {
			next := copyStringMap(f.errors.Get())
			next[field] = msg
			f.errors.Set(next)
		}
		f.valid.Set(false)
	})
}

// SetFieldTouched marks a field as touched (or untouched). Unknown field
// names are ignored.
func (f *Form[T]) SetFieldTouched(field string, isTouched bool) {
	if _, ok := f.meta[field]; !ok {
		return
	}
	reactive.Batch(func() {
		f.touched.Update(func(touched map[string]bool) map[string]bool {
			next := copyBoolMap(touched)
			next[field] = isTouched
			return next
		})
		f.bump()
	})
}

// HandleBlur marks the field as touched. Convenience for blur events.
func (f *Form[T]) HandleBlur(field string) {
	f.SetFieldTouched(field, true)
}

// SetValues shallow-merges the partial values into the current values.
// Errors, touched flags and validity are left untouched. Unknown field
// names in the partial are dropped.
func (f *Form[T]) SetValues(partial map[string]any) {
	if len(partial) == 0 {
		return
	}
	reactive.Batch(func() {
		f.values.Update(func(values map[string]any) map[string]any {
			next := copyValues(values)
			for k, v := range partial {
				if _, ok := f.meta[k]; ok {
					next[k] = v
				}
			}
			return next
		})
		f.bump()
	})
}

// ValidateForm runs the schema against the full current values, replaces
// the entire error map with the fresh result, updates validity and
// returns it. Without a schema the form is always valid and errors are
// cleared.
func (f *Form[T]) ValidateForm() bool {
	valid := false
	reactive.Batch(func() {
		valid = f.validate()
		f.bump()
	})
	return valid
}

// validate is ValidateForm without the batch wrapper, for composition
// inside other batched operations.
func (f *Form[T]) validate() bool {
	result := schema.Validate(f.schema, f.values.Get())
	if result.Valid {
		f.errors.Set(map[string]string{})
		f.valid.Set(true)
		return true
	}
	f.errors.Set(copyStringMap(result.FieldErrors))
	f.valid.Set(false)
	return false
}

// ResetForm restores the form to its construction-time state: the
// original initial values, no errors, nothing touched, counters and flags
// reset. Resetting twice is the same as resetting once.
func (f *Form[T]) ResetForm() {
	reactive.Batch(func() {
		f.values.Set(copyValues(f.initial))
		f.errors.Set(map[string]string{})
		f.touched.Set(map[string]bool{})
		f.submitting.Set(false)
		f.valid.Set(true)
		f.submitCount.Set(0)
		f.submitError.Set("")
		f.bump()
	})
}

// hasAnyError reports whether any field in the error map holds a
// non-empty message.
func hasAnyError(errors map[string]string) bool {
	for _, msg := range errors {
		if msg != "" {
			return true
		}
	}
	return false
}
