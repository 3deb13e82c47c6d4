package dao

import (
	"context"
)

// Service is a generic keyed repository.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)

	// Replace swaps the whole content for values, keeping their order.
	Replace(ctx context.Context, values []*T) error
}
