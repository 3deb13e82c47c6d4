package model

// Product represents a catalog item matched against RFP requirements.
type Product struct {
	SKU   string  `json:"sku" yaml:"sku"`
	Name  string  `json:"name" yaml:"name"`
	Specs string  `json:"specs" yaml:"specs"`
	Price float64 `json:"price" yaml:"price"`
	Stock int     `json:"stock" yaml:"stock"`
}

// ProductKey is the store key selector for products.
func ProductKey(p *Product) string { return p.SKU }
