package document

// Color is an RGB triple
type Color struct {
	R, G, B int
}

// Branding carries the fixed texts and palette of the proposal
type Branding struct {
	Title    string
	Subtitle string
	Footer   string
	// Primary fills the header band and table heads
	Primary Color
	// Accent colors the grand total figure
	Accent Color
	// Highlight fills emphasized rows
	Highlight Color
	// Stripe fills every other row of striped tables
	Stripe Color
}

// DefaultBranding returns the stock proposal branding.
func DefaultBranding() Branding {
	return Branding{
		Title:     "NEURAL NINJAS",
		Subtitle:  "AI-Powered Bid Proposal",
		Footer:    "Generated by Neural Ninjas AI Agent System | EY Techathon 5.0",
		Primary:   Color{R: 15, G: 23, B: 42},
		Accent:    Color{R: 34, G: 197, B: 94},
		Highlight: Color{R: 240, G: 253, B: 244},
		Stripe:    Color{R: 241, G: 245, B: 249},
	}
}
