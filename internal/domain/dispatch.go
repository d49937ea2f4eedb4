package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationTransition moves one pending notification into a terminal
// state. Responder coordinates are only kept for technician responses.
type NotificationTransition struct {
	NotificationID uuid.UUID
	To             NotificationState
	At             time.Time
	ResponderLat   *float64
	ResponderLng   *float64
}

// RespondedState reports whether the transition is a technician answer, which
// is the only case that stamps the response time.
func (t NotificationTransition) RespondedState() bool {
	return t.To == NotificationAccepted || t.To == NotificationRejected
}
