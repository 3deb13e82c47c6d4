package model

import "math"

// PricingBreakdown carries the commercial figures computed upstream. Values
// are rendered as received; nothing in this module recomputes them.
type PricingBreakdown struct {
	UnitPrice float64 `json:"unit_price" yaml:"unitPrice"`
	BasePrice float64 `json:"base_price" yaml:"basePrice"`
	// Discount is a percentage in the 0-100 range
	Discount       float64 `json:"discount" yaml:"discount"`
	DiscountAmount float64 `json:"discount_amount" yaml:"discountAmount"`
	Total          float64 `json:"total" yaml:"total"`
}

// HasDiscount returns true if a discount row applies
func (p *PricingBreakdown) HasDiscount() bool {
	return p.Discount > 0
}

// Consistent reports whether total and discount amount agree with the base
// price within half a cent. It never alters the breakdown.
func (p *PricingBreakdown) Consistent() bool {
	const tolerance = 0.005
	expectedDiscount := p.BasePrice * p.Discount / 100
	if math.Abs(expectedDiscount-p.DiscountAmount) > tolerance {
		return false
	}
	return math.Abs(p.BasePrice-p.DiscountAmount-p.Total) <= tolerance
}

// Bid represents the proposed commercial response to an RFP
type Bid struct {
	RFPID    string  `json:"rfp_id" yaml:"rfpId"`
	Client   string  `json:"client" yaml:"client"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
	// Product is the matched catalog item
	Product    *Product         `json:"product" yaml:"product"`
	Pricing    PricingBreakdown `json:"pricing" yaml:"pricing"`
	Confidence float64          `json:"confidence" yaml:"confidence"`
	// Reasoning is the optional agent explanation of the match
	Reasoning   string `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	GeneratedAt string `json:"generated_at,omitempty" yaml:"generatedAt,omitempty"`
}

// Clone returns a deep copy of the bid
func (b *Bid) Clone() *Bid {
	if b == nil {
		return nil
	}
	ret := *b
	if b.Product != nil {
		product := *b.Product
		ret.Product = &product
	}
	return &ret
}
