package approval

import (
	"fmt"
	"strconv"

	"github.com/viant/bidflow/model"
)

// DecisionFunc decides what to do with a compiled bid.
// Return (true,  "") to approve
//
//	(false, "…") to reject with reason.
type DecisionFunc func(bid *model.Bid) (approved bool, reason string)

// ApproveAll approves every bid.
func ApproveAll() DecisionFunc {
	return func(*model.Bid) (bool, string) { return true, "" }
}

// RejectAll rejects every bid with the given reason.
func RejectAll(reason string) DecisionFunc {
	return func(*model.Bid) (bool, string) { return false, reason }
}

// ConfidenceAtLeast approves bids whose match confidence reaches min percent.
func ConfidenceAtLeast(min float64) DecisionFunc {
	return func(bid *model.Bid) (bool, string) {
		if bid == nil {
			return false, "no bid"
		}
		if bid.Confidence >= min {
			return true, ""
		}
		return false, fmt.Sprintf("confidence %s%% below %s%%",
			strconv.FormatFloat(bid.Confidence, 'f', -1, 64),
			strconv.FormatFloat(min, 'f', -1, 64))
	}
}
