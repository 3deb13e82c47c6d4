// Package workflow implements the review state machine: selecting an RFP
// starts a processing run whose agent log is replayed into the session, the
// resulting bid is approved or rejected, and can be exported at any time.
//
// The Machine is the only mutator of the session. Every run carries a tag and
// an effect is applied only while that tag is current, so selecting another
// RFP deterministically discards whatever the previous run still delivers.
package workflow
