package remotetest

import "github.com/viant/bidflow/model"

// Fixture seeds a fake backend.
type Fixture struct {
	RFPs     []*model.RFP
	Products []*model.Product
	Results  map[string]*model.ProcessResult
}

// SampleProduct is the catalog item matched by the RFP-1 fixture.
func SampleProduct() *model.Product {
	return &model.Product{
		SKU:   "PT-001",
		Name:  "Premium Exterior Gloss Paint",
		Specs: "Water-resistant, high-gloss, UV protection, exterior grade",
		Price: 10,
		Stock: 5000,
	}
}

// SampleBid is the bid compiled for RFP-1: 100 liters at 10.00 with a 10%
// volume discount.
func SampleBid() *model.Bid {
	return &model.Bid{
		RFPID:    "RFP-1",
		Client:   "Coastal Construction Ltd",
		Quantity: 100,
		Product:  SampleProduct(),
		Pricing: model.PricingBreakdown{
			UnitPrice:      10,
			BasePrice:      1000,
			Discount:       10,
			DiscountAmount: 100,
			Total:          900,
		},
		Confidence:  92.5,
		Reasoning:   "Matches exterior grade and UV protection requirements",
		GeneratedAt: "2024-12-01T10:00:00",
	}
}

// SampleResult is the processing outcome for RFP-1.
func SampleResult() *model.ProcessResult {
	return &model.ProcessResult{
		Success: true,
		Logs: []model.AgentLogEntry{
			{Agent: "Sales Agent", Message: "Analyzing RFP RFP-1", Timestamp: "10:00:01"},
			{Agent: "Technical Agent", Message: "Matched PT-001 with 92.5% confidence", Timestamp: "10:00:02"},
			{Agent: "Pricing Agent", Message: "Final bid total: $900.00", Timestamp: "10:00:03"},
		},
		Bid: SampleBid(),
	}
}

// NewFixture returns the default fixture: RFP-1 that processes into
// SampleResult, RFP-2 without a bid and a two item catalog.
func NewFixture() *Fixture {
	return &Fixture{
		RFPs: []*model.RFP{
			{ID: "RFP-1", Client: "Coastal Construction Ltd", Content: "We require 100 liters of high-gloss exterior paint.", Date: "2024-12-01", Status: model.StatusPending},
			{ID: "RFP-2", Client: "Marine Industries Corp", Content: "Looking for 800 liters of marine-grade coating.", Date: "2024-12-03", Status: model.StatusPending},
		},
		Products: []*model.Product{
			SampleProduct(),
			{SKU: "CT-001", Name: "Marine Grade Protective Coating", Specs: "Saltwater-resistant, high-durability, weatherproof, marine grade", Price: 125, Stock: 1500},
		},
		Results: map[string]*model.ProcessResult{
			"RFP-1": SampleResult(),
		},
	}
}
