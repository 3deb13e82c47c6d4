package workflow

import (
	"context"

	"github.com/viant/bidflow/progress"
)

// Run is a single processing attempt for an RFP
type Run struct {
	ID       string
	RFPID    string
	done     chan struct{}
	err      error
	cancel   context.CancelFunc
	progress *progress.Progress
}

// Done is closed when the run has finished.
func (r *Run) Done() <-chan struct{} { return r.done }

// Err returns the run outcome once Done is closed: nil when a bid awaits
// approval, ErrSuperseded when another selection replaced the run.
func (r *Run) Err() error {
	select {
	case <-r.done:
		return r.err
	default:
		return nil
	}
}

// Wait blocks until the run finishes or ctx is done.
func (r *Run) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Progress returns the replay counters.
func (r *Run) Progress() progress.Progress {
	return r.progress.Snapshot()
}

func (r *Run) finish(err error) {
	r.err = err
	close(r.done)
}

func newRun(id, rfpID string, cancel context.CancelFunc, onChange func(progress.Progress)) *Run {
	return &Run{
		ID:       id,
		RFPID:    rfpID,
		done:     make(chan struct{}),
		cancel:   cancel,
		progress: progress.New(id, rfpID, onChange),
	}
}
