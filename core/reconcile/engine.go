package reconcile

import (
	"time"

	"go.uber.org/zap"
)

// TickReport summarizes one scheduler tick.
type TickReport struct {
	Drain   DrainStats
	Swept   bool
	Removed int
}

// ReconcileReport summarizes a full or targeted reconciliation.
type ReconcileReport struct {
	// Removed counts dead entries evicted before applying.
	Removed int `json:"removed"`
	// Applied counts generators whose apply succeeded.
	Applied int `json:"applied"`
	// Failed counts generators whose apply returned an error.
	Failed int `json:"failed"`
}

// Status is a read-only view of the engine state.
type Status struct {
	Tracked          int       `json:"tracked"`
	Queued           int       `json:"queued"`
	LastSweep        time.Time `json:"last_sweep"`
	LastSweepRemoved int       `json:"last_sweep_removed"`
	Settings         Settings  `json:"settings"`
}

// Engine owns the tracked set, the batch queue and the sweeper.
// It is not safe for concurrent use; drive it through a Loop.
type Engine struct {
	settings Settings
	tracked  *TrackedSet
	queue    *BatchQueue
	sweeper  *Sweeper
	applier  *Applier
	logger   *zap.Logger
	now      func() time.Time

	lastSweep        time.Time
	lastSweepRemoved int
}

// NewEngine creates an Engine using settings.
func NewEngine(settings Settings, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		settings: settings.Clone(),
		tracked:  NewTrackedSet(),
		queue:    NewBatchQueue(),
		sweeper:  NewSweeper(settings.CleanupInterval),
		logger:   logger,
		now:      time.Now,
	}
	e.applier = NewApplier(e.resolve, logger)
	return e
}

func (e *Engine) resolve(obj Object) int {
	return e.settings.Resolve(obj)
}

// Settings returns a copy of the current settings.
func (e *Engine) Settings() Settings {
	return e.settings.Clone()
}

// SetSettings swaps the settings. Already applied generators keep their
// limits until they are reapplied.
// Turning batching off drops the pending queue; its entries stay tracked and
// are covered by the next full reconcile.
func (e *Engine) SetSettings(settings Settings) {
	if e.settings.BatchEnabled && !settings.BatchEnabled {
		if dropped := e.queue.Clear(); dropped > 0 {
			e.logger.Info("Batching disabled, dropped pending queue", zap.Int("dropped", dropped))
		}
	}
	e.settings = settings.Clone()
	if e.sweeper.Interval() != settings.CleanupInterval {
		e.sweeper.SetInterval(settings.CleanupInterval)
	}
}

// Tracked returns the tracked set.
func (e *Engine) Tracked() *TrackedSet {
	return e.tracked
}

// Queue returns the batch queue.
func (e *Engine) Queue() *BatchQueue {
	return e.queue
}

// Apply applies the resolved limit to obj immediately.
func (e *Engine) Apply(obj Object) ApplyResult {
	return e.applier.Apply(obj)
}

// Scan tracks every object returned by a full host scan.
// It returns how many of them were newly tracked.
func (e *Engine) Scan(objs []Object) int {
	added := 0
	for _, obj := range objs {
		if e.admit(obj) {
			added++
		}
	}
	e.logger.Info("Startup scan complete",
		zap.Int("scanned", len(objs)),
		zap.Int("tracked", added),
		zap.Int("queued", e.queue.Len()),
	)
	return added
}

// Spawned handles a host spawn notification.
func (e *Engine) Spawned(obj Object) {
	e.admit(obj)
}

// Destroyed handles a host destroy notification. Pending queue entries for obj
// are discarded when they are drained, even if the host still reports it alive.
func (e *Engine) Destroyed(obj Object) {
	e.tracked.Remove(obj)
}

// admit tracks obj and either applies it now or queues it for the tick loop.
func (e *Engine) admit(obj Object) bool {
	if !e.tracked.Add(obj) {
		return false
	}
	if e.settings.BatchEnabled {
		e.queue.Enqueue(obj)
		return true
	}
	e.applier.Apply(obj)
	return true
}

// Tick runs one scheduler step: drain a bounded slice of the queue when
// batching is enabled, then sweep once the cleanup interval has elapsed.
func (e *Engine) Tick(dt time.Duration) TickReport {
	var report TickReport
	if e.settings.BatchEnabled {
		report.Drain = e.queue.Drain(e.settings.BatchSize, e.tracked.Contains, e.applier.Apply)
		if report.Drain.Processed > 0 {
			e.logger.Debug("Drained batch queue",
				zap.Int("processed", report.Drain.Processed),
				zap.Int("stale", report.Drain.Stale),
				zap.Int("failed", report.Drain.Failed),
				zap.Int("remaining", e.queue.Len()),
			)
		}
	}

	report.Swept, report.Removed = e.sweeper.Advance(dt, e.tracked)
	if report.Swept {
		e.recordSweep(report.Removed)
	}
	return report
}

// Sweep evicts dead generators immediately.
func (e *Engine) Sweep() int {
	removed := Sweep(e.tracked)
	e.recordSweep(removed)
	return removed
}

func (e *Engine) recordSweep(removed int) {
	e.lastSweep = e.now()
	e.lastSweepRemoved = removed
	if removed > 0 {
		e.logger.Info("Removed destroyed generators", zap.Int("removed", removed), zap.Int("tracked", e.tracked.Len()))
	}
}

// ReconcileAll sweeps dead generators, then applies every live tracked generator.
func (e *Engine) ReconcileAll() ReconcileReport {
	report := ReconcileReport{Removed: e.Sweep()}
	e.applyAll(e.tracked.Snapshot(), &report)
	e.logger.Info("Full reconciliation complete",
		zap.Int("removed", report.Removed),
		zap.Int("applied", report.Applied),
		zap.Int("failed", report.Failed),
	)
	return report
}

// Reapply applies the current limit to every tracked generator addressed by key.
func (e *Engine) Reapply(key Key) ReconcileReport {
	var report ReconcileReport
	e.applyAll(e.tracked.Matching(key), &report)
	return report
}

func (e *Engine) applyAll(objs []Object, report *ReconcileReport) {
	for _, obj := range objs {
		if !isLive(obj) {
			continue
		}
		if res := e.applier.Apply(obj); res.OK() {
			report.Applied++
		} else {
			report.Failed++
		}
	}
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	return Status{
		Tracked:          e.tracked.Len(),
		Queued:           e.queue.Len(),
		LastSweep:        e.lastSweep,
		LastSweepRemoved: e.lastSweepRemoved,
		Settings:         e.Settings(),
	}
}
