package bidflow_test

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/bidflow"
	"github.com/viant/bidflow/model"
	"github.com/viant/bidflow/service/approval"
	"github.com/viant/bidflow/service/event"
	"github.com/viant/bidflow/service/remote/remotetest"
	"github.com/viant/bidflow/service/workflow"
)

func TestService_EndToEnd(t *testing.T) {
	srv := remotetest.NewServer(nil)
	defer srv.Close()

	config := bidflow.DefaultConfig()
	config.Remote.BaseURL = srv.URL
	config.Playback.IntervalMs = 0
	config.Export.BaseURL = "mem://localhost/e2e"
	config.Export.Format = "md"
	service, err := bidflow.New(config)
	require.NoError(t, err)
	defer service.Shutdown(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mux sync.Mutex
	var received []workflow.Notification
	listener := service.Listen(ctx, func(evt *event.Event[workflow.Notification]) {
		mux.Lock()
		received = append(received, evt.Data)
		mux.Unlock()
	})

	machine := service.Machine()
	require.NoError(t, machine.Refresh(ctx))
	run, err := machine.Select(ctx, "RFP-1")
	require.NoError(t, err)
	require.NoError(t, run.Wait(ctx))
	require.NoError(t, machine.Approve(ctx))

	result, err := machine.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/e2e/Bid_Proposal_RFP-1.md", result.URL)
	ok, err := afs.New().Exists(ctx, result.URL)
	require.NoError(t, err)
	assert.True(t, ok)

	decisions, err := service.Ledger().List(ctx)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.True(t, decisions[0].Approved)

	require.Eventually(t, func() bool {
		mux.Lock()
		defer mux.Unlock()
		return len(received) >= 7
	}, 2*time.Second, 10*time.Millisecond)
	listener.Stop()

	mux.Lock()
	defer mux.Unlock()
	assert.Equal(t, workflow.Notification{Kind: workflow.NotifyPhase, Phase: workflow.PhaseProcessing}, received[0])
	assert.Equal(t, workflow.NotifyLog, received[1].Kind)
	assert.Equal(t, workflow.Notification{Kind: workflow.NotifyPhase, Phase: workflow.PhaseAwaitingApproval}, received[4])
	assert.Equal(t, workflow.Notification{Kind: workflow.NotifyPhase, Phase: workflow.PhaseApproved}, received[5])
	assert.Equal(t, workflow.NotifyNotice, received[6].Kind)
}

func TestService_InvalidConfig(t *testing.T) {
	config := bidflow.DefaultConfig()
	config.Export.Format = "docx"
	_, err := bidflow.New(config)
	assert.Error(t, err)
}

func TestService_LoadFile(t *testing.T) {
	service, err := bidflow.New(nil, bidflow.WithFS(afs.New()))
	require.NoError(t, err)
	file, err := service.LoadFile(context.Background(), "testdata/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", file.Name)
	assert.False(t, file.IsPDF())
}

func newService(t *testing.T, srv *remotetest.Server) *bidflow.Service {
	t.Helper()
	config := bidflow.DefaultConfig()
	config.Remote.BaseURL = srv.URL
	config.Playback.IntervalMs = 0
	config.Export.BaseURL = "mem://localhost/service"
	service, err := bidflow.New(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Shutdown(context.Background()) })
	return service
}

func TestService_SlowListenerSeesEveryLog(t *testing.T) {
	srv := remotetest.NewServer(nil)
	defer srv.Close()
	result := remotetest.SampleResult()
	result.Logs = nil
	for i := 0; i < 400; i++ {
		result.Logs = append(result.Logs, model.AgentLogEntry{Agent: "Sales Agent", Message: fmt.Sprintf("step %d", i), Timestamp: "10:00:00"})
	}
	srv.SetResult("RFP-1", result)
	service := newService(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var messages []string
	listener := service.Listen(ctx, func(evt *event.Event[workflow.Notification]) {
		if evt.Data.Kind != workflow.NotifyLog {
			return
		}
		time.Sleep(time.Millisecond)
		messages = append(messages, evt.Data.Entry.Message)
	})

	machine := service.Machine()
	require.NoError(t, machine.Refresh(ctx))
	run, err := machine.Select(ctx, "RFP-1")
	require.NoError(t, err)
	require.NoError(t, run.Wait(ctx))
	listener.Stop()

	assert.Len(t, machine.Session().Logs, 400)
	require.Len(t, messages, 400)
	assert.Equal(t, "step 0", messages[0])
	assert.Equal(t, "step 399", messages[399])
}

func TestService_FailureNotificationsReachListener(t *testing.T) {
	srv := remotetest.NewServer(nil)
	defer srv.Close()
	srv.Fail(remotetest.OpStartProcessing, http.StatusInternalServerError, "pipeline crashed")
	service := newService(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var received []workflow.Notification
	listener := service.Listen(ctx, func(evt *event.Event[workflow.Notification]) {
		time.Sleep(5 * time.Millisecond)
		received = append(received, evt.Data)
	})

	machine := service.Machine()
	require.NoError(t, machine.Refresh(ctx))
	run, err := machine.Select(ctx, "RFP-1")
	require.NoError(t, err)
	require.Error(t, run.Wait(ctx))
	listener.Stop()

	require.Len(t, received, 4)
	assert.Equal(t, workflow.Notification{Kind: workflow.NotifyPhase, Phase: workflow.PhaseProcessing}, received[0])
	assert.Equal(t, workflow.NotifyLog, received[1].Kind)
	assert.Equal(t, model.SystemAgent, received[1].Entry.Agent)
	assert.Equal(t, workflow.CommunicationFailureMessage, received[1].Entry.Message)
	assert.Equal(t, workflow.Notification{Kind: workflow.NotifyPhase, Phase: workflow.PhaseError}, received[2])
	assert.Equal(t, workflow.NotifyError, received[3].Kind)
	assert.Contains(t, received[3].Message, "pipeline crashed")
}

func TestService_WatchDecisions(t *testing.T) {
	srv := remotetest.NewServer(nil)
	defer srv.Close()
	service := newService(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	events := make(chan *approval.Event, 1)
	stop := service.WatchDecisions(ctx, func(evt *approval.Event) { events <- evt })
	defer stop()

	machine := service.Machine()
	require.NoError(t, machine.Refresh(ctx))
	run, err := machine.Select(ctx, "RFP-1")
	require.NoError(t, err)
	require.NoError(t, run.Wait(ctx))
	require.NoError(t, machine.Reject(ctx))

	select {
	case evt := <-events:
		assert.Equal(t, approval.TopicDecisionCreated, evt.Topic)
		assert.Equal(t, "RFP-1", evt.Data.RFPID)
		assert.Equal(t, model.StatusRejected, evt.Data.Status())
	case <-ctx.Done():
		t.Fatal("decision event was not delivered")
	}
}
