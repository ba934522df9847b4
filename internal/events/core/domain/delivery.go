package domain

import "time"

type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"
	OutcomeFailed    Outcome = "failed"
	OutcomeSkipped   Outcome = "skipped" // identify without traits, nothing sent
)

// Delivery records what happened to one dispatched event.
type Delivery struct {
	ID          string
	Operation   EventType
	Path        string
	Actor       string
	ActionName  string
	Outcome     Outcome
	StatusCode  int
	Error       string
	Payload     Payload
	DeliveredAt time.Time
}
