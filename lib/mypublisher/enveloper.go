package mypublisher

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/shopreconciler/lib/myevents"
	"github.com/MarcGrol/shopreconciler/lib/mytime"
)

type enveloper struct {
	nower mytime.Nower
}

func newEnveloper(nower mytime.Nower) enveloper {
	return enveloper{
		nower: nower,
	}
}

// wrap derives the envelope uid from its content: publishing the same event twice yields the same envelope
func (e enveloper) wrap(topic string, event myevents.Event) (myevents.EventEnvelope, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return myevents.EventEnvelope{}, fmt.Errorf("error marshalling %s: %s", event.GetEventTypeName(), err)
	}

	return myevents.EventEnvelope{
		UID:           contentUID(topic, event.GetEventTypeName(), event.GetAggregateName(), payload),
		CreatedAt:     e.nower.Now(),
		Topic:         topic,
		AggregateUID:  event.GetAggregateName(),
		EventTypeName: event.GetEventTypeName(),
		EventPayload:  string(payload),
	}, nil
}

func contentUID(topic string, eventTypeName string, aggregateUID string, payload []byte) string {
	h := sha256.New()
	for _, part := range [][]byte{[]byte(topic), []byte(eventTypeName), []byte(aggregateUID), payload} {
		h.Write(part)
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
