package mystore

import (
	"context"
	"os"
)

type ctxTransactionKey struct{}

// Filter restricts a Query. The in-memory store only supports "=".
type Filter struct {
	Field   string
	Compare string
	Value   any
}

// Store keeps one kind of record per instance, keyed by uid. Calls made with the
// context handed to RunInTransaction take part in that transaction.
type Store[T any] interface {
	RunInTransaction(c context.Context, f func(c context.Context) error) error
	Put(c context.Context, uid string, value T) error
	Get(c context.Context, uid string) (T, bool, error)
	List(c context.Context) ([]T, error)
	Query(c context.Context, filters []Filter, orderByField string) ([]T, error)
}

// New picks datastore when GOOGLE_CLOUD_PROJECT is set and an in-memory store otherwise.
func New[T any](c context.Context) (Store[T], func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newGcloudStore[T](c)
	}

	return NewInMemoryStore[T](c)
}
