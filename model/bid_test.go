package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPricingBreakdown_Consistent(t *testing.T) {
	testCases := []struct {
		name    string
		pricing PricingBreakdown
		expect  bool
	}{
		{
			name:    "discounted",
			pricing: PricingBreakdown{UnitPrice: 2, BasePrice: 1000, Discount: 10, DiscountAmount: 100, Total: 900},
			expect:  true,
		},
		{
			name:    "no discount",
			pricing: PricingBreakdown{UnitPrice: 45.99, BasePrice: 22995, Total: 22995},
			expect:  true,
		},
		{
			name:    "total mismatch",
			pricing: PricingBreakdown{BasePrice: 1000, Discount: 10, DiscountAmount: 100, Total: 950},
			expect:  false,
		},
		{
			name:    "discount amount mismatch",
			pricing: PricingBreakdown{BasePrice: 1000, Discount: 10, DiscountAmount: 50, Total: 950},
			expect:  false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := tc.pricing
			assert.Equal(t, tc.expect, tc.pricing.Consistent())
			assert.Equal(t, before, tc.pricing)
		})
	}
}

func TestBid_Clone(t *testing.T) {
	bid := &Bid{RFPID: "RFP-1", Product: &Product{SKU: "PT-001"}}
	clone := bid.Clone()
	clone.Product.SKU = "changed"
	assert.Equal(t, "PT-001", bid.Product.SKU)
	assert.Nil(t, (*Bid)(nil).Clone())
}

func TestSystemEntry(t *testing.T) {
	at := time.Date(2024, 12, 1, 9, 5, 7, 0, time.UTC)
	entry := SystemEntry("Error communicating with backend server.", at)
	assert.Equal(t, AgentLogEntry{Agent: "System", Message: "Error communicating with backend server.", Timestamp: "09:05:07"}, entry)
}

func TestAnalytics_Count(t *testing.T) {
	analytics := &Analytics{StatusDistribution: []StatusCount{{Name: "Pending", Value: 3}, {Name: "Approved", Value: 1}}}
	assert.Equal(t, 3, analytics.Count("pending"))
	assert.Equal(t, 0, analytics.Count("rejected"))
	assert.Equal(t, 0, (*Analytics)(nil).Count("pending"))
}
