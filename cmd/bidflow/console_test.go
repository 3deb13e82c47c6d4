package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bidflow"
	"github.com/viant/bidflow/service/remote/remotetest"
)

func newTestService(t *testing.T) (*bidflow.Service, *remotetest.Server) {
	srv := remotetest.NewServer(nil)
	t.Cleanup(srv.Close)
	config := bidflow.DefaultConfig()
	config.Remote.BaseURL = srv.URL
	config.Playback.IntervalMs = 0
	config.Export.BaseURL = "mem://localhost/console"
	config.Export.Format = "md"
	service, err := bidflow.New(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Shutdown(context.Background()) })
	return service, srv
}

func TestConsole_Browse(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()
	out := &bytes.Buffer{}
	err := console(ctx, service, strings.NewReader("list\nstatus\nbogus\napprove\nquit\nlist\n"), out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "RFP-1")
	assert.Contains(t, text, "RFP-2")
	assert.Contains(t, text, "phase: idle")
	assert.Contains(t, text, `unknown command "bogus"`)
	assert.Contains(t, text, "error: ")
	assert.Equal(t, 1, strings.Count(text, "CLIENT"), "input after quit must be ignored")
}

func TestConsole_ReviewFlow(t *testing.T) {
	service, srv := newTestService(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, service.Machine().Refresh(ctx))

	out := &bytes.Buffer{}
	require.NoError(t, console(ctx, service, strings.NewReader("select RFP-1\n"), out))
	run := service.Machine().Run()
	require.NotNil(t, run)
	require.NoError(t, run.Wait(ctx))

	out.Reset()
	require.NoError(t, console(ctx, service, strings.NewReader("approve\nexport\nstatus\n"), out))
	text := out.String()
	assert.Contains(t, text, "Proposal written to mem://localhost/console/Bid_Proposal_RFP-1.md")
	assert.Contains(t, text, "phase: approved")
	assert.Contains(t, text, "900.00")
	assert.Equal(t, "approved", string(srv.RFP("RFP-1").Status))
}
