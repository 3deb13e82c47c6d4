package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/bidflow/model"
)

func sampleBid() *model.Bid {
	return &model.Bid{
		RFPID:    "RFP-1",
		Client:   "Coastal Construction Ltd",
		Quantity: 100,
		Product: &model.Product{
			SKU:   "PT-001",
			Name:  "Premium Exterior Gloss Paint",
			Specs: "Water-resistant, high-gloss, UV protection, exterior grade",
			Price: 10,
			Stock: 5000,
		},
		Pricing: model.PricingBreakdown{
			UnitPrice:      10,
			BasePrice:      1000,
			Discount:       10,
			DiscountAmount: 100,
			Total:          900,
		},
		Confidence: 92.5,
	}
}

var sampleDate = time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

func TestGenerate_Blocks(t *testing.T) {
	doc, err := Generate(sampleBid(), sampleDate, DefaultBranding())
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 5)

	var kinds []Kind
	for _, block := range doc.Blocks {
		kinds = append(kinds, block.Kind())
	}
	assert.Equal(t, []Kind{KindHeader, KindSection, KindSection, KindSection, KindFooter}, kinds)

	header := doc.Header()
	assert.Equal(t, "Date: 2024-12-01", header.Date)
	assert.Equal(t, "Ref: RFP-1", header.Reference)
	assert.Equal(t, "Generated by Neural Ninjas AI Agent System | EY Techathon 5.0", doc.Footer().Text)

	solution := doc.Section(SectionSolution).Table
	require.Len(t, solution.Rows, 5)
	assert.Equal(t, []string{"Stock Availability", "5000 Liters (Immediate)"}, solution.Rows[3].Cells)
	assert.Equal(t, []string{"Confidence Match", "92.5%"}, solution.Rows[4].Cells)
}

func TestGenerate_Commercial(t *testing.T) {
	testCases := []struct {
		name     string
		pricing  model.PricingBreakdown
		quantity float64
		expected [][]string
	}{
		{
			name:     "with discount",
			quantity: 100,
			pricing:  model.PricingBreakdown{UnitPrice: 10, BasePrice: 1000, Discount: 10, DiscountAmount: 100, Total: 900},
			expected: [][]string{
				{"Premium Exterior Gloss Paint", "$10.00 / L", "100 L", "$1000.00"},
				{"Volume Discount (10%)", "", "", "-$100.00"},
				{"Grand Total", "", "", "$900.00"},
			},
		},
		{
			name:     "without discount",
			quantity: 12.5,
			pricing:  model.PricingBreakdown{UnitPrice: 45.99, BasePrice: 574.88, Total: 574.88},
			expected: [][]string{
				{"Premium Exterior Gloss Paint", "$45.99 / L", "12.5 L", "$574.88"},
				{"Grand Total", "", "", "$574.88"},
			},
		},
		{
			name:     "inconsistent figures rendered verbatim",
			quantity: 2000,
			pricing:  model.PricingBreakdown{UnitPrice: 95.25, BasePrice: 190500, Discount: 12.5, DiscountAmount: 1, Total: 5},
			expected: [][]string{
				{"Premium Exterior Gloss Paint", "$95.25 / L", "2000 L", "$190500.00"},
				{"Volume Discount (12.5%)", "", "", "-$1.00"},
				{"Grand Total", "", "", "$5.00"},
			},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			bid := sampleBid()
			bid.Pricing = testCase.pricing
			bid.Quantity = testCase.quantity
			doc, err := Generate(bid, sampleDate, DefaultBranding())
			require.NoError(t, err)
			table := doc.Section(SectionCommercial).Table
			var actual [][]string
			for _, row := range table.Rows {
				actual = append(actual, row.Cells)
			}
			assert.Equal(t, testCase.expected, actual)
			last := table.Rows[len(table.Rows)-1]
			assert.True(t, last.Emphasized)
			assert.Equal(t, Money(testCase.pricing.Total), last.Cells[3])
		})
	}
}

func TestGenerate_Invalid(t *testing.T) {
	noProduct := sampleBid()
	noProduct.Product = nil
	zeroQuantity := sampleBid()
	zeroQuantity.Quantity = 0

	for _, bid := range []*model.Bid{nil, noProduct, zeroQuantity} {
		_, err := Generate(bid, sampleDate, DefaultBranding())
		assert.ErrorIs(t, err, ErrInvalidBid)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "$900.00", Money(900))
	assert.Equal(t, "$1234567.50", Money(1234567.5))
	assert.Equal(t, "$0.10", Money(0.1))
	assert.Equal(t, "12.5%", Percent(12.5))
	assert.Equal(t, "Bid_Proposal_RFP-1.pdf", FileName("RFP-1", "pdf"))
	assert.Equal(t, "Bid_Proposal_a_b.md", FileName("a/b", ".md"))
}
