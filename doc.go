// Package bidflow drives the human-in-the-loop review of AI generated
// procurement bids.
//
// An RFP is uploaded to the bid backend, processed by its agents, the agent
// log is replayed progressively and the resulting bid is approved, rejected
// or exported as a proposal document. The root package wires the building
// blocks together:
//
//   - service/remote    – HTTP/JSON client of the bid backend
//   - service/playback  – paced agent log replay
//   - service/workflow  – review state machine
//   - service/document  – proposal layout with Markdown and PDF backends
//   - service/export    – proposal storage through afs
//   - service/approval  – decision ledger and auto-review policies
//
// Typical use:
//
//	srv, _ := bidflow.New(bidflow.DefaultConfig())
//	machine := srv.Machine()
//	_ = machine.Refresh(ctx)
//	run, _ := machine.Select(ctx, "RFP-2024-001")
//	_ = run.Wait(ctx)
//	_ = machine.Approve(ctx)
package bidflow
