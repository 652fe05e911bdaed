package mystore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/shopreconciler/lib/mytime"
)

type receipt struct {
	UID       string
	UserID    string
	Paid      bool
	CreatedAt time.Time
}

var (
	receipt1 = receipt{UID: "R1", UserID: "user_1", Paid: true, CreatedAt: mytime.ExampleTime}
	receipt2 = receipt{UID: "R2", UserID: "user_2", Paid: false, CreatedAt: mytime.ExampleTime.Add(time.Minute)}
	receipt3 = receipt{UID: "R3", UserID: "user_1", Paid: false, CreatedAt: mytime.ExampleTime.Add(time.Hour)}
)

func TestStore(t *testing.T) {
	c := context.TODO()
	rs, cleanup, err := NewInMemoryStore[receipt](c)
	assert.NoError(t, err)
	defer cleanup()

	t.Run("Get not found", func(t *testing.T) {
		_, found, err := rs.Get(c, receipt1.UID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Put", func(t *testing.T) {
		err = rs.Put(c, receipt1.UID, receipt1)
		assert.NoError(t, err)
	})

	t.Run("Get found", func(t *testing.T) {
		r, found, err := rs.Get(c, receipt1.UID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, receipt1, r)
	})

	t.Run("List", func(t *testing.T) {
		all, err := rs.List(c)
		assert.NoError(t, err)
		assert.Equal(t, []receipt{receipt1}, all)
	})
}

func TestQuery(t *testing.T) {
	c := context.TODO()
	rs, _, _ := NewInMemoryStore[receipt](c)
	_ = rs.Put(c, receipt1.UID, receipt1)
	_ = rs.Put(c, receipt2.UID, receipt2)
	_ = rs.Put(c, receipt3.UID, receipt3)

	t.Run("Filter on string, newest first", func(t *testing.T) {
		found, err := rs.Query(c, []Filter{{Field: "UserID", Compare: "=", Value: "user_1"}}, "-CreatedAt")
		assert.NoError(t, err)
		assert.Equal(t, []receipt{receipt3, receipt1}, found)
	})

	t.Run("Filter on bool, oldest first", func(t *testing.T) {
		found, err := rs.Query(c, []Filter{Equal("Paid", false)}, "CreatedAt")
		assert.NoError(t, err)
		assert.Equal(t, []receipt{receipt2, receipt3}, found)
	})

	t.Run("No match", func(t *testing.T) {
		found, err := rs.Query(c, []Filter{{Field: "UserID", Compare: "=", Value: "user_9"}}, "")
		assert.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("Unsupported comparison", func(t *testing.T) {
		_, err := rs.Query(c, []Filter{{Field: "UserID", Compare: ">", Value: "a"}}, "")
		assert.Error(t, err)
	})

	t.Run("Unknown field", func(t *testing.T) {
		_, err := rs.Query(c, []Filter{{Field: "Colour", Compare: "=", Value: "red"}}, "")
		assert.Error(t, err)
	})
}

func TestTransaction(t *testing.T) {
	c := context.TODO()

	t.Run("Nested stores do not share a lock", func(t *testing.T) {
		rs, _, _ := NewInMemoryStore[receipt](c)
		other, _, _ := NewInMemoryStore[string](c)

		err := rs.RunInTransaction(c, func(c context.Context) error {
			err := rs.Put(c, receipt1.UID, receipt1)
			if err != nil {
				return err
			}
			return other.Put(c, "x", "y")
		})
		assert.NoError(t, err)

		_, found, _ := other.Get(c, "x")
		assert.True(t, found)
	})

	t.Run("Check-then-write is serialized", func(t *testing.T) {
		rs, _, _ := NewInMemoryStore[receipt](c)

		created := 0
		mutex := sync.Mutex{}
		wg := sync.WaitGroup{}
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = rs.RunInTransaction(c, func(c context.Context) error {
					_, found, _ := rs.Get(c, receipt1.UID)
					if found {
						return nil
					}
					mutex.Lock()
					created++
					mutex.Unlock()
					return rs.Put(c, receipt1.UID, receipt1)
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, created)
	})
}

func TestRollback(t *testing.T) {
	c := context.TODO()
	rs, _, _ := NewInMemoryStore[receipt](c)
	_ = rs.Put(c, receipt1.UID, receipt1)

	err := rs.RunInTransaction(c, func(c context.Context) error {
		_ = rs.Put(c, receipt2.UID, receipt2)
		return fmt.Errorf("abort")
	})
	assert.Error(t, err)

	all, _ := rs.List(c)
	assert.Equal(t, []receipt{receipt1}, all)
}
