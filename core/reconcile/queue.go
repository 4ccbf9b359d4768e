package reconcile

import "container/list"

// BatchQueue is a FIFO of generators waiting for their first apply.
// Entries may go stale before they are drained; Drain discards them.
// The queue is not safe for concurrent use.
type BatchQueue struct {
	pending *list.List
}

// NewBatchQueue creates an empty BatchQueue.
func NewBatchQueue() *BatchQueue {
	return &BatchQueue{pending: list.New()}
}

// Enqueue appends obj to the back of the queue.
func (q *BatchQueue) Enqueue(obj Object) {
	q.pending.PushBack(obj)
}

// Len returns the number of pending entries, stale ones included.
func (q *BatchQueue) Len() int {
	return q.pending.Len()
}

// DrainStats summarizes one Drain call.
type DrainStats struct {
	// Processed counts dequeued entries, stale and failed ones included.
	Processed int
	// Applied counts entries whose apply succeeded.
	Applied int
	// Failed counts entries whose apply returned an error.
	Failed int
	// Stale counts entries discarded because the generator was dead or untracked.
	Stale int
}

// Drain removes up to maxCount entries in FIFO order. Entries that are dead,
// or that tracked rejects, are dropped; the rest are passed to apply. A nil
// tracked only checks liveness. Failed applies are not requeued.
// Drain never waits for more entries.
func (q *BatchQueue) Drain(maxCount int, tracked func(Object) bool, apply func(Object) ApplyResult) DrainStats {
	var stats DrainStats
	for stats.Processed < maxCount {
		front := q.pending.Front()
		if front == nil {
			break
		}
		q.pending.Remove(front)
		stats.Processed++

		obj, _ := front.Value.(Object)
		if !isLive(obj) || (tracked != nil && !tracked(obj)) {
			stats.Stale++
			continue
		}
		if res := apply(obj); res.OK() {
			stats.Applied++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// Clear drops every pending entry and returns how many were dropped.
func (q *BatchQueue) Clear() int {
	n := q.pending.Len()
	q.pending.Init()
	return n
}
