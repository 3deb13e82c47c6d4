package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier. Tests replace it to get
// predictable run tags.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier as string.
func New() string { return NewFunc() }
