package mypubsub

import "context"

// PubSub delivers serialized outbox envelopes; topics are created at warmup.
type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
}

// New is set by init of the gcloud or fake implementation, depending on GOOGLE_CLOUD_PROJECT.
var New func(c context.Context) (PubSub, func(), error)
