package mystore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/datastore"

	"github.com/MarcGrol/shopreconciler/lib/mylog"
)

const (
	maxListSize = 100
	// Commits colliding with a concurrent transaction are retried, f re-runs and re-reads
	maxTransactionAttempts = 3
)

type gcloudStore[T any] struct {
	logger mylog.Logger
	client *datastore.Client
	kind   string
}

func newGcloudStore[T any](c context.Context) (*gcloudStore[T], func(), error) {
	client, err := datastore.NewClient(c, os.Getenv("GOOGLE_CLOUD_PROJECT"))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating datastore-client: %s", err)
	}

	return &gcloudStore[T]{
			logger: mylog.New("datastore"),
			client: client,
			kind:   kindOf[T](),
		}, func() {
			client.Close()
		}, nil
}

// kindOf names the entity kind after the type without its package: orders.Order becomes Order
func kindOf[T any]() string {
	kind := fmt.Sprintf("%T", *new(T))
	if idx := strings.LastIndex(kind, "."); idx >= 0 {
		kind = kind[idx+1:]
	}
	return kind
}

func (s *gcloudStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if transactionFrom(c) != nil {
		// Already inside the transaction of another store: join it
		return f(c)
	}

	attempt := 0
	_, err := s.client.RunInTransaction(c, func(tx *datastore.Transaction) error {
		attempt++
		if attempt > 1 {
			s.logger.Log(c, s.kind, mylog.SeverityWarn, "Concurrent transaction on %s, attempt %d of %d", s.kind, attempt, maxTransactionAttempts)
		}
		return f(context.WithValue(c, ctxTransactionKey{}, tx))
	}, datastore.MaxAttempts(maxTransactionAttempts))
	if err != nil {
		if errors.Is(err, datastore.ErrConcurrentTransaction) {
			s.logger.Log(c, s.kind, mylog.SeverityError, "Giving up transaction on %s after %d attempts", s.kind, maxTransactionAttempts)
		}
		return err
	}

	return nil
}

func transactionFrom(c context.Context) *datastore.Transaction {
	tx, _ := c.Value(ctxTransactionKey{}).(*datastore.Transaction)
	return tx
}

func (s *gcloudStore[T]) key(uid string) *datastore.Key {
	return datastore.NameKey(s.kind, uid, nil)
}

func (s *gcloudStore[T]) Put(c context.Context, uid string, value T) error {
	var err error
	if tx := transactionFrom(c); tx != nil {
		_, err = tx.Put(s.key(uid), &value)
	} else {
		_, err = s.client.Put(c, s.key(uid), &value)
	}
	if err != nil {
		return fmt.Errorf("error storing %s %s: %s", s.kind, uid, err)
	}

	return nil
}

func (s *gcloudStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	var err error
	if tx := transactionFrom(c); tx != nil {
		err = tx.Get(s.key(uid), value)
	} else {
		err = s.client.Get(c, s.key(uid), value)
	}
	if err != nil {
		if errors.Is(err, datastore.ErrNoSuchEntity) {
			return *value, false, nil
		}
		return *value, false, fmt.Errorf("error fetching %s %s: %s", s.kind, uid, err)
	}

	return *value, true, nil
}

func (s *gcloudStore[T]) List(c context.Context) ([]T, error) {
	return s.getAll(c, datastore.NewQuery(s.kind).Limit(maxListSize))
}

func (s *gcloudStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	q := datastore.NewQuery(s.kind)
	for _, f := range filters {
		q = q.FilterField(f.Field, f.Compare, f.Value)
	}
	if orderByField != "" {
		q = q.Order(orderByField)
	}

	return s.getAll(c, q.Limit(maxListSize))
}

func (s *gcloudStore[T]) getAll(c context.Context, q *datastore.Query) ([]T, error) {
	if tx := transactionFrom(c); tx != nil {
		q = q.Transaction(tx)
	}

	values := []T{}
	_, err := s.client.GetAll(c, q, &values)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %s", s.kind, err)
	}
	return values, nil
}
