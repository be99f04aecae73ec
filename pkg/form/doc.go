// Package form provides reactive form-state management for component UIs.
//
// # Overview
//
// Form[T] owns the full state of one form instance: current values,
// per-field error messages, touched flags, validity, and the submission
// lifecycle (in-flight flag, attempt counter, last failure message). It is
// a thin convenience wrapper: state lives in reactive signals, a caller-
// supplied schema.Parser decides validity, and a caller-supplied submit
// callback performs the actual submission.
//
// # Basic Usage
//
//	type SignupValues struct {
//	    Email    string `form:"email"`
//	    Password string `form:"password"`
//	    Age      int    `form:"age"`
//	    Terms    bool   `form:"terms"`
//	}
//
//	f := form.New(SignupValues{},
//	    form.WithSchema[SignupValues](signupSchema),
//	    form.WithSubmit(func(ctx context.Context, v SignupValues) error {
//	        return api.CreateAccount(ctx, v)
//	    }),
//	)
//
//	f.HandleChange("email", "bob@example.com", form.InputText)
//	f.HandleBlur("email")
//	f.HandleSubmit(ctx)
//
//	state := f.Snapshot()
//	if msg, ok := state.Errors["email"]; ok && state.Touched["email"] { ... }
//
// # Ownership
//
// A Form is owned by exactly one UI component instance and mutated only
// from that component's event loop. Mutations replace snapshots rather
// than aliasing them, so a snapshot handed to a renderer never changes
// underneath it. The store does not guard against overlapping HandleSubmit
// calls; hosts are expected to disable re-submission while
// State.Submitting is true.
//
// # Error model
//
// Validation failures are data, never errors: they land in State.Errors
// (field level) or State.SubmitError (submission failure). No operation
// on a Form returns an error or panics on unknown field names.
package form
