// Package myevents holds the outbox envelope that carries domain events to pubsub.
package myevents

import "time"

// EventEnvelope is stored in the outbox until a trigger marks it Published.
type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string `datastore:",noindex"`
	Published     bool
	PublishedAt   time.Time `datastore:",noindex"`
}

func (e EventEnvelope) String() string {
	return e.Topic + "." + e.EventTypeName + "." + e.AggregateUID
}

// Event is implemented by every payload that can be published; the aggregate
// name is the id of the sale or terminal the event is about.
type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}
