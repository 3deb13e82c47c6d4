package approval

import (
	"context"

	"github.com/viant/bidflow/service/messaging"
)

// Service defines the decision ledger.
type Service interface {
	// Record stores the decision, replacing an earlier one for the same RFP.
	Record(ctx context.Context, d *Decision) error
	// Lookup returns the latest decision for the RFP or dao.ErrNotFound.
	Lookup(ctx context.Context, rfpID string) (*Decision, error)
	// List returns decisions in the order they were first recorded.
	List(ctx context.Context) ([]*Decision, error)
	Queue() messaging.Queue[Event]
}
