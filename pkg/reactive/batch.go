package reactive

import "sync"

// batchState tracks nesting depth and the subscribers queued while a batch
// is open. A single global batch is enough here: form mutations happen on
// one logical writer at a time by construction of the UI event model.
var batch struct {
	mu      sync.Mutex
	depth   int
	pending []subscriber
	queued  map[uint64]bool
}

// Batch runs fn and coalesces all signal notifications produced inside it
// into at most one callback per subscriber, delivered when the outermost
// batch ends. Batches nest.
func Batch(fn func()) {
	batch.mu.Lock()
	batch.depth++
	if batch.queued == nil {
		batch.queued = make(map[uint64]bool)
	}
	batch.mu.Unlock()

	defer func() {
		batch.mu.Lock()
		batch.depth--
		var flush []subscriber
		if batch.depth == 0 {
			flush = batch.pending
			batch.pending = nil
			batch.queued = nil
		}
		batch.mu.Unlock()

		for _, sub := range flush {
			sub.fn()
		}
	}()

	fn()
}

// batchDepth reports the current nesting depth.
func batchDepth() int {
	batch.mu.Lock()
	defer batch.mu.Unlock()
	return batch.depth
}

// queuePending records a subscriber for notification at batch end.
// Deduplicates by subscriber ID so each callback runs once per batch.
func queuePending(sub subscriber) {
	batch.mu.Lock()
	if batch.depth == 0 {
		// Batch ended between the depth check and the queue attempt;
		// deliver directly.
		batch.mu.Unlock()
		sub.fn()
		return
	}
	if batch.queued[sub.id] {
		batch.mu.Unlock()
		return
	}
	batch.queued[sub.id] = true
	batch.pending = append(batch.pending, sub)
	batch.mu.Unlock()
}
