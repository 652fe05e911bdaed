package mypubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInMemoryPubSub(t *testing.T) {
	c := context.TODO()

	t.Run("Publish on created topic", func(t *testing.T) {
		// given
		sut := NewInMemoryPubSub()
		err := sut.CreateTopic(c, "order")
		assert.NoError(t, err)
		err = sut.CreateTopic(c, "order")
		assert.NoError(t, err)

		// when
		err = sut.Publish(c, "order", []byte(`{"reference":"R1"}`), map[string]string{"eventType": "order.created"})

		// then
		assert.NoError(t, err)
		messages := sut.Messages("order")
		assert.Len(t, messages, 1)
		assert.Equal(t, `{"reference":"R1"}`, string(messages[0].Data))
		assert.Equal(t, "order.created", messages[0].Attributes["eventType"])
	})

	t.Run("Publish on unknown topic", func(t *testing.T) {
		// when
		err := NewInMemoryPubSub().Publish(c, "order", []byte(`{}`), nil)

		// then
		assert.Error(t, err)
	})
}
