package domain

import (
	"time"

	"github.com/google/uuid"
)

type NotificationState string

const (
	NotificationPending   NotificationState = "pending"
	NotificationAccepted  NotificationState = "accepted"
	NotificationRejected  NotificationState = "rejected"
	NotificationTimedOut  NotificationState = "timed_out"
	NotificationCancelled NotificationState = "cancelled"
)

// IsTerminal reports whether no further transition may leave the state.
func (s NotificationState) IsTerminal() bool {
	switch s {
	case NotificationAccepted, NotificationRejected, NotificationTimedOut, NotificationCancelled:
		return true
	}
	return false
}

func (s NotificationState) Valid() bool {
	return s == NotificationPending || s.IsTerminal()
}

// CanTransition allows only pending -> terminal.
func (s NotificationState) CanTransition(to NotificationState) bool {
	return s == NotificationPending && to.IsTerminal()
}

// Notification is one offer of a request to one technician. Rows are never
// deleted and form the audit trail of the dispatch.
type Notification struct {
	ID             uuid.UUID         `json:"id"`
	RequestID      uuid.UUID         `json:"request_id"`
	TechnicianID   uuid.UUID         `json:"technician_id"`
	State          NotificationState `json:"state"`
	Round          int               `json:"round"`
	ContactOrder   int               `json:"contact_order"`
	DistanceMeters float64           `json:"distance_meters"`
	SentAt         time.Time         `json:"sent_at"`
	RespondedAt    *time.Time        `json:"responded_at,omitempty"`
	TimeoutAt      time.Time         `json:"timeout_at"`
	ResponderLat   *float64          `json:"responder_lat,omitempty"`
	ResponderLng   *float64          `json:"responder_lng,omitempty"`
}

// Outstanding is true while the offer can still be answered.
func (n *Notification) Outstanding(now time.Time) bool {
	return n.State == NotificationPending && !n.TimeoutAt.Before(now)
}

func (n *Notification) Expired(now time.Time) bool {
	return n.State == NotificationPending && n.TimeoutAt.Before(now)
}
