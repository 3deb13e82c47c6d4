package dao

// Parameter restricts List results to items whose named attribute equals
// one of Values.
type Parameter struct {
	Name   string
	Values []string
}

// Match returns true if value is one of the parameter values.
func (p *Parameter) Match(value string) bool {
	for _, candidate := range p.Values {
		if candidate == value {
			return true
		}
	}
	return false
}

// NewParameter creates a parameter; several values mean any of them.
func NewParameter(name string, values ...string) *Parameter {
	return &Parameter{Name: name, Values: values}
}
