package mypubsub

import (
	"context"
	"fmt"
	"os"
	"sync"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = func(c context.Context) (PubSub, func(), error) {
			return NewInMemoryPubSub(), func() {}, nil
		}
	}
}

type Message struct {
	Data       []byte
	Attributes map[string]string
}

// InMemoryPubSub keeps published messages per topic, like the real thing it refuses unknown topics
type InMemoryPubSub struct {
	sync.Mutex
	topics map[string][]Message
}

func NewInMemoryPubSub() *InMemoryPubSub {
	return &InMemoryPubSub{
		topics: map[string][]Message{},
	}
}

func (ps *InMemoryPubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	if _, exists := ps.topics[topic]; !exists {
		ps.topics[topic] = []Message{}
	}
	return nil
}

func (ps *InMemoryPubSub) Publish(c context.Context, topic string, data []byte, attributes map[string]string) error {
	ps.Lock()
	defer ps.Unlock()

	messages, exists := ps.topics[topic]
	if !exists {
		return fmt.Errorf("topic %s does not exist", topic)
	}
	ps.topics[topic] = append(messages, Message{Data: data, Attributes: attributes})

	return nil
}

func (ps *InMemoryPubSub) Messages(topic string) []Message {
	ps.Lock()
	defer ps.Unlock()

	return append([]Message{}, ps.topics[topic]...)
}
