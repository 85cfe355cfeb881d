package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mediakasir/apotekpos/lib/mycontext"
	"github.com/mediakasir/apotekpos/lib/myerrors"
	"github.com/mediakasir/apotekpos/lib/myevents"
	"github.com/mediakasir/apotekpos/lib/myhttp"
	"github.com/mediakasir/apotekpos/lib/mylog"
	"github.com/mediakasir/apotekpos/lib/mypubsub"
	"github.com/mediakasir/apotekpos/lib/myqueue"
	"github.com/mediakasir/apotekpos/lib/mystore"
	"github.com/mediakasir/apotekpos/lib/mytime"
)

// transactionalPublisher stores events in an outbox first; a queued task
// later pushes every unpublished envelope to pubsub.
type transactionalPublisher struct {
	outbox    mystore.Store[myevents.EventEnvelope]
	queue     myqueue.TaskQueuer
	enveloper enveloper
	pubsub    mypubsub.PubSub
	nower     mytime.Nower
	logger    mylog.Logger
}

func New(outbox mystore.Store[myevents.EventEnvelope], pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower, logger mylog.Logger) *transactionalPublisher {
	return &transactionalPublisher{
		outbox:    outbox,
		queue:     queue,
		enveloper: newEnveloper(nower),
		pubsub:    pubsub,
		nower:     nower,
		logger:    logger,
	}
}

func (p *transactionalPublisher) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/pubsub/{topic}/{uid}", p.processTriggerPage()).Methods("PUT")
}

func (p *transactionalPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

func (p *transactionalPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %w", err)
	}

	err = p.outbox.Put(c, envelope.UID, envelope)
	if err != nil {
		return fmt.Errorf("error storing envelope: %w", err)
	}

	err = p.queue.Enqueue(c, myqueue.Task{
		UID:            envelope.UID,
		WebhookURLPath: fmt.Sprintf("/pubsub/%s/%s", envelope.Topic, envelope.UID),
	})
	if err != nil {
		return fmt.Errorf("error queueing publication-trigger %s: %w", envelope.UID, err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Enqueued event %s", envelope)

	return nil
}

func (p *transactionalPublisher) processTriggerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(p.logger)

		topicName := mux.Vars(r)["topic"]
		eventUID := mux.Vars(r)["uid"]

		published, err := p.processTrigger(c, topicName, eventUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Published %d event(s)", published),
		})
	}
}

// processTrigger flushes the whole outbox; the triggering uid is only used for logging.
func (p *transactionalPublisher) processTrigger(c context.Context, topicName string, uid string) (int, error) {
	published := 0
	err := p.outbox.RunInTransaction(c, func(c context.Context) error {
		envelopes, err := p.outbox.Query(c, []mystore.Filter{{Field: "Published", Compare: "=", Value: false}}, "CreatedAt")
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching envelopes: %w", err))
		}

		for _, envelope := range envelopes {
			jsonBytes, err := json.Marshal(envelope)
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error serializing envelope: %w", err))
			}

			err = p.pubsub.Publish(c, envelope.Topic, string(jsonBytes))
			if err != nil {
				return myerrors.NewUnavailableError(err)
			}

			envelope.Published = true
			envelope.PublishedAt = p.nower.Now()
			err = p.outbox.Put(c, envelope.UID, envelope)
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error storing envelope: %w", err))
			}
			published++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	p.logger.Log(c, uid, mylog.SeverityInfo, "Trigger %s/%s published %d event(s)", topicName, uid, published)

	return published, nil
}
