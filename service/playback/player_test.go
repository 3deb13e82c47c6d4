package playback

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bidflow/internal/clock"
	"github.com/viant/bidflow/model"
)

func entries(n int) []model.AgentLogEntry {
	var ret []model.AgentLogEntry
	for i := 0; i < n; i++ {
		ret = append(ret, model.AgentLogEntry{Agent: "Agent", Message: fmt.Sprintf("step %d", i), Timestamp: "10:00:00"})
	}
	return ret
}

func TestPlayer_Play(t *testing.T) {
	testCases := []struct {
		name  string
		count int
	}{
		{name: "empty log", count: 0},
		{name: "single entry", count: 1},
		{name: "three entries", count: 3},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			input := entries(testCase.count)
			var received []Append
			err := New(0).Play(context.Background(), input, func(item Append) error {
				received = append(received, item)
				return nil
			})
			require.NoError(t, err)
			require.Len(t, received, testCase.count)
			for i, item := range received {
				assert.Equal(t, i, item.Index)
				assert.Equal(t, input[i], item.Entry)
			}
		})
	}
}

func TestPlayer_Pacing(t *testing.T) {
	var waits []time.Duration
	clock.AfterFunc = func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		ch := make(chan time.Time, 1)
		ch <- time.Time{}
		return ch
	}
	defer func() { clock.AfterFunc = time.After }()

	count := 0
	err := New(DefaultInterval).Play(context.Background(), entries(4), func(Append) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	assert.Equal(t, []time.Duration{DefaultInterval, DefaultInterval, DefaultInterval}, waits)
}

func TestPlayer_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	count := 0
	err := New(time.Hour).Play(ctx, entries(3), func(Append) error {
		count++
		cancel()
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, count)

	count = 0
	err = New(0).Play(ctx, entries(3), func(Append) error {
		count++
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, count)
}

func TestPlayer_EmitError(t *testing.T) {
	stop := errors.New("stop")
	count := 0
	err := New(0).Play(context.Background(), entries(3), func(Append) error {
		count++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, count)
}

func TestPlayer_Stream(t *testing.T) {
	input := entries(5)
	var received []Append
	for item := range New(time.Millisecond).Stream(context.Background(), input) {
		time.Sleep(2 * time.Millisecond)
		received = append(received, item)
	}
	require.Len(t, received, 5)
	for i, item := range received {
		assert.Equal(t, input[i].Message, item.Entry.Message)
	}
}
