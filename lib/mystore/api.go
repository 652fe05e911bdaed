package mystore

import (
	"context"
	"os"
)

// Stores of different kinds share the transaction that travels in the context under this key
type ctxTransactionKey struct{}

const CompareEqual = "="

type Filter struct {
	Field   string
	Compare string
	Value   any
}

func Equal(field string, value any) Filter {
	return Filter{Field: field, Compare: CompareEqual, Value: value}
}

type Store[T any] interface {
	// RunInTransaction may run f more than once when it collides with a concurrent transaction
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	List(c context.Context) ([]T, error)
	// Query sorts descending when orderByField starts with a "-"
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// New returns a Datastore backed store on Google Cloud, an in-memory one elsewhere
func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	return NewInMemoryStore[T](c)
}
