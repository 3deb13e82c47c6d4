package workflow

import (
	"github.com/viant/bidflow/model"
)

// Session is the review state of the single selected RFP.
type Session struct {
	SelectedRFP *model.RFP
	Phase       Phase
	Logs        []model.AgentLogEntry
	Bid         *model.Bid
	// RunID tags the run that owns the session
	RunID string
	// Err is the last surfaced error
	Err error
	// StagedFile names the file waiting for upload
	StagedFile string
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	ret := *s
	ret.SelectedRFP = s.SelectedRFP.Clone()
	ret.Bid = s.Bid.Clone()
	if s.Logs != nil {
		ret.Logs = append(make([]model.AgentLogEntry, 0, len(s.Logs)), s.Logs...)
	}
	return &ret
}

func (s *Session) reset(rfp *model.RFP, runID string) {
	s.SelectedRFP = rfp
	s.Phase = PhaseProcessing
	s.Logs = nil
	s.Bid = nil
	s.Err = nil
	s.RunID = runID
}
