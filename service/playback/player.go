// Package playback replays a completed agent log at a fixed pace so that a
// response received at once is presented as progressive narration.
package playback

import (
	"context"
	"time"

	"github.com/viant/bidflow/internal/clock"
	"github.com/viant/bidflow/model"
)

// DefaultInterval separates two consecutive entries.
const DefaultInterval = 100 * time.Millisecond

// Append is a single replayed entry.
type Append struct {
	Index int
	Entry model.AgentLogEntry
}

// Player emits log entries one by one. It holds no session state and can be
// shared.
type Player struct {
	interval time.Duration
}

// Interval returns the pacing interval.
func (p *Player) Interval() time.Duration { return p.interval }

// Play calls emit for every entry in order, waiting the interval between
// consecutive entries. It returns ctx.Err() as soon as cancellation is
// observed and never emits afterwards; an emit error stops playback and is
// returned as is.
func (p *Player) Play(ctx context.Context, entries []model.AgentLogEntry, emit func(Append) error) error {
	for i, entry := range entries {
		if i > 0 && p.interval > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-clock.After(p.interval):
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(Append{Index: i, Entry: entry}); err != nil {
			return err
		}
	}
	return nil
}

// Stream exposes Play as a channel closed after the last entry or on
// cancellation. Sends block on the consumer so nothing is skipped.
func (p *Player) Stream(ctx context.Context, entries []model.AgentLogEntry) <-chan Append {
	ch := make(chan Append)
	go func() {
		defer close(ch)
		_ = p.Play(ctx, entries, func(item Append) error {
			select {
			case ch <- item:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}()
	return ch
}

// New creates a player; a negative interval is treated as zero.
func New(interval time.Duration) *Player {
	if interval < 0 {
		interval = 0
	}
	return &Player{interval: interval}
}
