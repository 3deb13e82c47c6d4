package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change emitted by a processing
// run. Fields are signed so a caller may also roll counters back.
type Delta struct {
	Total    int
	Appended int
}

// Progress keeps the playback counters of a single processing run. It is
// safe for concurrent use.
type Progress struct {
	RunID     string
	RFPID     string
	StartedAt time.Time

	// Total is the number of log entries returned by the backend, Appended
	// how many of them have been replayed into the session so far.
	Total    int
	Appended int

	sync.Mutex
	onChange func(Progress)
}

// Done reports whether every received entry has been replayed.
func (p *Progress) Done() bool {
	if p == nil {
		return false
	}
	p.Lock()
	defer p.Unlock()
	return p.Total > 0 && p.Appended >= p.Total
}

// Update applies the delta. The onChange callback, if any, receives a copy
// of the tracker outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.Total += d.Total
	p.Appended += d.Appended
	snapshot := Progress{RunID: p.RunID, RFPID: p.RFPID, StartedAt: p.StartedAt, Total: p.Total, Appended: p.Appended}
	cb := p.onChange
	p.Unlock()

	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy suitable for read-only inspection.
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return Progress{RunID: p.RunID, RFPID: p.RFPID, StartedAt: p.StartedAt, Total: p.Total, Appended: p.Appended}
}

// OnChange registers a callback invoked after every Update. Passing nil
// disables it; only one callback can be active.
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

// New creates a tracker for the given run.
func New(runID, rfpID string, onChange func(Progress)) *Progress {
	return &Progress{
		RunID:     runID,
		RFPID:     rfpID,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithTracker embeds tracker in a derived context.
func WithTracker(ctx context.Context, tracker *Progress) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, trackerKey, tracker)
}

// FromContext extracts the tracker from ctx.
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker carried by ctx, if any.
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
