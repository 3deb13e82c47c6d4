package workflow

import "errors"

var (
	// ErrInvalidTransition is returned when an operation is not valid in the
	// current phase.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrBusy is returned when the same kind of operation is already in flight.
	ErrBusy = errors.New("operation already in progress")
	// ErrNoBid is returned when processing completed without a bid.
	ErrNoBid = errors.New("processing completed without a bid")
	// ErrSuperseded ends a run replaced by a later selection.
	ErrSuperseded = errors.New("run superseded")
	// ErrUnknownRFP is returned when selecting an RFP that is not cached.
	ErrUnknownRFP = errors.New("unknown rfp")
	// ErrNoBidToExport is returned by Export when the session holds no bid.
	ErrNoBidToExport = errors.New("no bid to export")
)

// CommunicationFailureMessage is appended as a System entry when the backend
// cannot process an RFP.
const CommunicationFailureMessage = "Error communicating with backend server."
