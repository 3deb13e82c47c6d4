package memory

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bidflow/model"
	approval "github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/dao"
	qmem "github.com/viant/bidflow/service/messaging/memory"
)

func TestService_Record(t *testing.T) {
	ctx := context.Background()
	svc := New()
	bid := &model.Bid{RFPID: "RFP-1", Confidence: 90, Pricing: model.PricingBreakdown{Total: 900}}
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

	_, err := svc.Lookup(ctx, "RFP-1")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	require.NoError(t, svc.Record(ctx, approval.NewDecision(bid, true, "", now)))
	require.NoError(t, svc.Record(ctx, approval.NewDecision(&model.Bid{RFPID: "RFP-2"}, false, "price", now)))
	require.NoError(t, svc.Record(ctx, approval.NewDecision(bid, false, "changed mind", now)))

	decision, err := svc.Lookup(ctx, "RFP-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, decision.Status())
	assert.EqualValues(t, 900, decision.Total)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "RFP-1", list[0].RFPID)

	var topics []string
	for i := 0; i < 3; i++ {
		msg, err := svc.Queue().Consume(ctx)
		require.NoError(t, err)
		topics = append(topics, msg.T().Topic)
		require.NoError(t, msg.Ack())
	}
	assert.Equal(t, []string{approval.TopicDecisionCreated, approval.TopicDecisionCreated, approval.TopicDecisionReplaced}, topics)

	assert.Error(t, svc.Record(ctx, nil))
	assert.ErrorIs(t, svc.Record(ctx, &approval.Decision{}), dao.ErrInvalidID)
}

func TestService_RecordWithFullQueue(t *testing.T) {
	ctx := context.Background()
	logs := &bytes.Buffer{}
	queue := qmem.NewQueue[approval.Event](qmem.Config{QueueBuffer: 1, DropWhenFull: true})
	svc := New(WithQueue(queue), WithLogger(slog.New(slog.NewTextHandler(logs, nil))))
	now := time.Date(2024, 12, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, svc.Record(ctx, approval.NewDecision(&model.Bid{RFPID: "RFP-1"}, true, "", now)))
	require.NoError(t, svc.Record(ctx, approval.NewDecision(&model.Bid{RFPID: "RFP-2"}, false, "", now)))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, 1, queue.Dropped())
	assert.Contains(t, logs.String(), "decision event dropped")
	assert.Contains(t, logs.String(), "rfp=RFP-2")
}
