package mypublisher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopreconciler/lib/mycontext"
	"github.com/MarcGrol/shopreconciler/lib/myerrors"
	"github.com/MarcGrol/shopreconciler/lib/myevents"
	"github.com/MarcGrol/shopreconciler/lib/myhttp"
	"github.com/MarcGrol/shopreconciler/lib/mylog"
	"github.com/MarcGrol/shopreconciler/lib/mypubsub"
	"github.com/MarcGrol/shopreconciler/lib/myqueue"
	"github.com/MarcGrol/shopreconciler/lib/mystore"
	"github.com/MarcGrol/shopreconciler/lib/mytime"
)

// Gives the transaction that published the event time to commit
const triggerDelay = 5 * time.Second

// transactionalPublisher stores events in an outbox within the callers transaction.
// A queued task later flushes the outbox to pubsub.
type transactionalPublisher struct {
	logger    mylog.Logger
	nower     mytime.Nower
	outbox    mystore.Store[myevents.EventEnvelope]
	queue     myqueue.TaskQueuer
	enveloper enveloper
	pubsub    mypubsub.PubSub
}

func New(c context.Context, outbox mystore.Store[myevents.EventEnvelope], pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower) *transactionalPublisher {
	return &transactionalPublisher{
		logger:    mylog.New("publisher"),
		nower:     nower,
		outbox:    outbox,
		queue:     queue,
		enveloper: newEnveloper(nower),
		pubsub:    pubsub,
	}
}

func (p *transactionalPublisher) RegisterEndpoints(c context.Context, router *mux.Router) {
	// Called by the task queue
	router.HandleFunc("/pubsub/{topic}/{uid}", p.processTriggerPage()).Methods("PUT")
}

func (p *transactionalPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

func (p *transactionalPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.wrap(topic, event)
	if err != nil {
		return err
	}

	_, exists, err := p.outbox.Get(c, envelope.UID)
	if err != nil {
		return fmt.Errorf("error fetching envelope %s: %s", envelope, err)
	}
	if exists {
		p.logger.Log(c, envelope.AggregateUID, mylog.SeverityDebug, "Event %s already in outbox", envelope)
		return nil
	}

	err = p.outbox.Put(c, envelope.UID, envelope)
	if err != nil {
		return fmt.Errorf("error storing envelope %s: %s", envelope, err)
	}

	err = p.queue.Enqueue(c, myqueue.Task{
		UID:     envelope.UID,
		URLPath: fmt.Sprintf("/pubsub/%s/%s", envelope.Topic, envelope.UID),
		Delay:   triggerDelay,
	})
	if err != nil {
		return fmt.Errorf("error enqueueing trigger for %s: %s", envelope, err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Event %s stored in outbox", envelope)

	return nil
}

func (p *transactionalPublisher) processTriggerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(p.logger)

		topicName := mux.Vars(r)["topic"]
		eventUID := mux.Vars(r)["uid"]

		published, err := p.flush(c, topicName, eventUID)
		if err != nil {
			attempts, attemptsErr := p.queue.Attempts(c, eventUID)
			if attemptsErr == nil && attempts.IsLast() {
				p.logger.Log(c, eventUID, mylog.SeverityError, "Giving up flushing outbox after %d attempts: %s", attempts.Dispatched, err)
			}
			// non-2xx makes the queue retry
			errorWriter.WriteError(c, w, 1, myerrors.NewUnavailableError(err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			OK:      true,
			Message: fmt.Sprintf("Published %d events", published),
		})
	}
}

// flush publishes every pending envelope, not just the one that triggered it
func (p *transactionalPublisher) flush(c context.Context, topicName string, uid string) (int, error) {
	p.logger.Log(c, uid, mylog.SeverityDebug, "Flushing outbox, triggered by %s on topic %s", uid, topicName)

	published := 0
	err := p.outbox.RunInTransaction(c, func(c context.Context) error {
		published = 0

		envelopes, err := p.outbox.Query(c, []mystore.Filter{mystore.Equal("Published", false)}, "CreatedAt")
		if err != nil {
			return fmt.Errorf("error fetching pending envelopes: %s", err)
		}

		for _, envelope := range envelopes {
			err = p.pubsub.Publish(c, envelope.Topic, []byte(envelope.EventPayload), envelope.Attributes())
			if err != nil {
				return fmt.Errorf("error publishing %s: %s", envelope, err)
			}

			envelope.Published = true
			envelope.PublishedAt = p.nower.Now()
			err = p.outbox.Put(c, envelope.UID, envelope)
			if err != nil {
				return fmt.Errorf("error marking %s as published: %s", envelope, err)
			}
			published++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return published, nil
}
