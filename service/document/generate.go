package document

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/viant/bidflow/model"
)

// ErrInvalidBid is returned when a bid cannot be laid out
var ErrInvalidBid = errors.New("invalid bid")

// Section titles
const (
	SectionSummary    = "Executive Summary"
	SectionSolution   = "Proposed Solution"
	SectionCommercial = "Commercial Proposal"
)

// DateLayout formats the proposal date
const DateLayout = "2006-01-02"

// GrandTotalLabel labels the emphasized totals row
const GrandTotalLabel = "Grand Total"

// Generate builds the proposal document for the bid. It is a pure function
// of its inputs; pricing figures are taken verbatim.
func Generate(bid *model.Bid, date time.Time, branding Branding) (*Document, error) {
	if bid == nil {
		return nil, fmt.Errorf("%w: bid was nil", ErrInvalidBid)
	}
	if bid.Product == nil {
		return nil, fmt.Errorf("%w: bid %v has no product", ErrInvalidBid, bid.RFPID)
	}
	if bid.Quantity <= 0 {
		return nil, fmt.Errorf("%w: bid %v has non-positive quantity %v", ErrInvalidBid, bid.RFPID, bid.Quantity)
	}
	product := bid.Product
	quantity := Number(bid.Quantity)
	pricing := bid.Pricing

	doc := &Document{RFPID: bid.RFPID, Date: date}
	doc.Blocks = append(doc.Blocks, &Header{
		Title:     branding.Title,
		Subtitle:  branding.Subtitle,
		Date:      "Date: " + date.Format(DateLayout),
		Reference: "Ref: " + bid.RFPID,
	})
	doc.Blocks = append(doc.Blocks, &Section{
		Title: SectionSummary,
		Summary: &Summary{
			PreparedFor: "Prepared for: " + bid.Client,
			Text: "Based on your requirements for " + quantity + " liters, we have identified an optimal solution " +
				"from our catalog that meets all technical specifications including: " + product.Specs + ".",
		},
	})
	doc.Blocks = append(doc.Blocks, &Section{
		Title: SectionSolution,
		Table: &Table{
			Style:  StyleGrid,
			Head:   []string{"Specification", "Details"},
			Widths: []float64{50, 120},
			Rows: []*Row{
				{Cells: []string{"Product Name", product.Name}},
				{Cells: []string{"SKU", product.SKU}},
				{Cells: []string{"Technical Specs", product.Specs}},
				{Cells: []string{"Stock Availability", strconv.Itoa(product.Stock) + " Liters (Immediate)"}},
				{Cells: []string{"Confidence Match", Percent(bid.Confidence)}},
			},
		},
	})
	commercial := &Table{
		Style:  StyleStriped,
		Head:   []string{"Item", "Rate", "Quantity", "Total"},
		Widths: []float64{70, 35, 30, 35},
		Rows: []*Row{
			{Cells: []string{product.Name, Money(pricing.UnitPrice) + " / L", quantity + " L", Money(pricing.BasePrice)}},
		},
	}
	if pricing.HasDiscount() {
		commercial.Rows = append(commercial.Rows, &Row{
			Cells: []string{"Volume Discount (" + Percent(pricing.Discount) + ")", "", "", "-" + Money(pricing.DiscountAmount)},
		})
	}
	commercial.Rows = append(commercial.Rows, &Row{
		Cells:      []string{GrandTotalLabel, "", "", Money(pricing.Total)},
		Emphasized: true,
	})
	doc.Blocks = append(doc.Blocks, &Section{Title: SectionCommercial, Table: commercial})
	doc.Blocks = append(doc.Blocks, &Footer{Text: branding.Footer})
	return doc, nil
}
