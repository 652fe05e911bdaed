package mypublisher

import (
	"context"

	"github.com/MarcGrol/shopreconciler/lib/myevents"
)

//go:generate mockgen -source=api.go -package mypublisher -destination publisher_mock.go Publisher
type Publisher interface {
	// Publish joins the transaction in c when there is one: the event is only sent when that commits
	Publish(c context.Context, topic string, event myevents.Event) error
}

type TopicCreator interface {
	CreateTopic(c context.Context, topic string) error
}
