package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress_Update(t *testing.T) {
	var seen []Progress
	tracker := New("run-1", "RFP-1", func(p Progress) { seen = append(seen, p) })
	ctx := WithTracker(context.Background(), tracker)

	UpdateCtx(ctx, Delta{Total: 3})
	assert.False(t, tracker.Done())
	for i := 0; i < 3; i++ {
		UpdateCtx(ctx, Delta{Appended: 1})
	}
	assert.True(t, tracker.Done())

	require.Len(t, seen, 4)
	assert.Equal(t, 3, seen[3].Appended)
	assert.Equal(t, "RFP-1", seen[3].RFPID)

	snap := tracker.Snapshot()
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, "run-1", snap.RunID)
}

func TestProgress_NoTracker(t *testing.T) {
	UpdateCtx(context.Background(), Delta{Total: 1})
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	var p *Progress
	p.Update(Delta{Total: 1})
	assert.False(t, p.Done())
	assert.Equal(t, Progress{}, p.Snapshot())
}
