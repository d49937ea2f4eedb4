package domain

import (
	"time"

	"github.com/google/uuid"
)

type PushKind string

const (
	PushTechnicianOffer PushKind = "technician_offer"
	PushClientAccepted  PushKind = "client_accepted"
)

// PushMessage is the best-effort side effect emitted by dispatch. Delivery
// failures never reach the operation that produced the message.
type PushMessage struct {
	ID             uuid.UUID `json:"id"`
	Kind           PushKind  `json:"kind"`
	RecipientID    uuid.UUID `json:"recipient_id"`
	RequestID      uuid.UUID `json:"request_id"`
	NotificationID uuid.UUID `json:"notification_id,omitempty"`
	TechnicianID   uuid.UUID `json:"technician_id,omitempty"`
	Summary        string    `json:"summary"`
	DistanceMeters float64   `json:"distance_meters,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
