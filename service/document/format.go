package document

import (
	"strconv"
	"strings"
)

// Money formats an amount with exactly two decimals and no digit grouping.
func Money(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}

// Number formats a quantity or percentage in its shortest exact form.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Percent formats v as "<v>%".
func Percent(v float64) string {
	return Number(v) + "%"
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", " ", "_")

// FileName returns the exported artifact name for the RFP.
func FileName(rfpID, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	return "Bid_Proposal_" + fileNameReplacer.Replace(rfpID) + "." + ext
}
