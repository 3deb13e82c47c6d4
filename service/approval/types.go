package approval

import (
	"time"

	"github.com/viant/bidflow/model"
)

// Event envelope published on every recorded decision.
type Event struct {
	Topic   string            // see topic constants below
	Data    *Decision         // recorded decision
	Headers map[string]string `json:"headers,omitempty"`
}

// Standard event topics
const (
	TopicDecisionCreated  = "decision.created"
	TopicDecisionReplaced = "decision.replaced"
)

// Decision represents a review outcome acknowledged by the backend.
type Decision struct {
	RFPID      string    `json:"rfpId"`
	Approved   bool      `json:"approved"`
	Reason     string    `json:"reason,omitempty"`
	Confidence float64   `json:"confidence"`
	Total      float64   `json:"total"`
	DecidedAt  time.Time `json:"decidedAt"`
}

// Status returns the RFP status the decision corresponds to.
func (d *Decision) Status() model.Status {
	if d.Approved {
		return model.StatusApproved
	}
	return model.StatusRejected
}

// NewDecision creates a decision for the bid.
func NewDecision(bid *model.Bid, approved bool, reason string, at time.Time) *Decision {
	ret := &Decision{Approved: approved, Reason: reason, DecidedAt: at}
	if bid != nil {
		ret.RFPID = bid.RFPID
		ret.Confidence = bid.Confidence
		ret.Total = bid.Pricing.Total
	}
	return ret
}
