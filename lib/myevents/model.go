package myevents

import (
	"encoding/json"
	"time"
)

// Event is anything that happened to a payment reference or order and is worth telling others about
type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}

// EventEnvelope is how an event is kept in the outbox until it reached pubsub
type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string `datastore:",noindex"`
	Published     bool
	PublishedAt   time.Time
}

func (e EventEnvelope) String() string {
	return e.Topic + "." + e.EventTypeName + "." + e.AggregateUID
}

// Attributes allow subscribers to filter without decoding the payload
func (e EventEnvelope) Attributes() map[string]string {
	return map[string]string{
		"eventType": e.EventTypeName,
		"aggregate": e.AggregateUID,
	}
}

func (e EventEnvelope) DecodePayload(event Event) error {
	return json.Unmarshal([]byte(e.EventPayload), event)
}
