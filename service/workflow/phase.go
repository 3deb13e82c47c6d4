package workflow

// Phase represents the session lifecycle stage
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseProcessing       Phase = "processing"
	PhaseAwaitingApproval Phase = "awaiting_approval"
	PhaseApproved         Phase = "approved"
	PhaseRejected         Phase = "rejected"
	PhaseError            Phase = "error"
)

// HasBid returns true for phases that always carry a bid.
func (p Phase) HasBid() bool {
	switch p {
	case PhaseAwaitingApproval, PhaseApproved, PhaseRejected:
		return true
	}
	return false
}

// IsDecided returns true once the bid was approved or rejected.
func (p Phase) IsDecided() bool {
	return p == PhaseApproved || p == PhaseRejected
}

// Affordances lists the operations currently valid.
type Affordances struct {
	CanSelect  bool
	CanApprove bool
	CanReject  bool
	CanExport  bool
	CanUpload  bool
}
