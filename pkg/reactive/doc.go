// Package reactive provides the small reactive substrate formkit's form
// state is built on.
//
// Signal[T] is a thread-safe value container with explicit subscription:
//
//	count := reactive.NewSignal(0)
//	stop := count.Subscribe(func() { fmt.Println("changed") })
//	count.Set(5)
//	stop()
//
// Unlike a full fine-grained reactivity system there is no automatic
// dependency tracking; UI integration layers subscribe explicitly and
// re-render from snapshots. Batch coalesces notifications from a group of
// writes into one callback per subscriber:
//
//	reactive.Batch(func() {
//	    values.Set(v)
//	    errors.Set(e)
//	})
package reactive
