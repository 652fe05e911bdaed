package mypubsub

import "context"

//go:generate mockgen -source=pubsub_api.go -package mypubsub -destination pubsub_mock.go PubSub
type PubSub interface {
	// CreateTopic succeeds when the topic already exists
	CreateTopic(c context.Context, topic string) error
	Publish(c context.Context, topic string, data []byte, attributes map[string]string) error
}

var New func(c context.Context) (PubSub, func(), error)
