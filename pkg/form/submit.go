package form

import (
	"context"

	"github.com/vango-dev/formkit/pkg/reactive"
)

// FallbackSubmitError is recorded when the submit callback fails without
// a message of its own.
const FallbackSubmitError = "Submission failed"

// HandleSubmit runs one submission attempt:
//
//  1. increments SubmitCount (every attempt counts, valid or not)
//  2. marks every declared field as touched
//  3. validates the whole values object
//  4. stops if validation failed or no submit callback is configured;
//     Submitting is never set in that case
//  5. otherwise sets Submitting, clears SubmitError, and invokes the
//     callback with the typed values snapshot captured after validation
//     succeeded
//
// The callback's failure is caught here and summarized into SubmitError;
// it is never propagated. Whatever happens, the form returns to a
// not-submitting state when the attempt settles.
//
// Reports whether the callback was invoked and succeeded.
//
// Overlapping calls are not guarded against: a second HandleSubmit while
// one is in flight proceeds independently. Hosts disable re-submission
// via State.Submitting.
func (f *Form[T]) HandleSubmit(ctx context.Context) bool {
	valid := false
	reactive.Batch(func() {
		f.submitCount.Update(func(n int) int { return n + 1 })

		touched := make(map[string]bool, len(f.fields))
		for _, name := range f.fields {
			touched[name] = true
		}
		f.touched.Set(touched)

		valid = f.validate()
		f.bump()
	})

	if !valid || f.submit == nil {
		return false
	}

	// Snapshot taken after validation succeeded, so the callback sees
	// exactly the values that passed.
	values := f.Values()

	reactive.Batch(func() {
		f.submitting.Set(true)
		f.submitError.Set("")
		f.bump()
	})

	err := f.invokeSubmit(ctx, values)

	reactive.Batch(func() {
		f.submitting.Set(false)
		if err != nil {
			msg := err.Error()
			if msg == "" {
				msg = FallbackSubmitError
			}
			f.submitError.Set(msg)
		}
		f.bump()
	})

	return err == nil
}

// invokeSubmit calls the submit callback, converting a panic into an
// ordinary failure so the store always settles.
func (f *Form[T]) invokeSubmit(ctx context.Context, values T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = submitPanicError{}
		}
	}()
	return f.submit(ctx, values)
}

// submitPanicError is recorded when the callback panics with a
// non-error value; it deliberately carries no message so the fallback
// text is used.
type submitPanicError struct{}

func (submitPanicError) Error() string { return "" }
