package service

import (
	"context"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type EmergencyRepository interface {
	CreateRequest(ctx context.Context, req *domain.EmergencyRequest) error
	GetRequest(ctx context.Context, id uuid.UUID) (*domain.EmergencyRequest, error)
	// RecordRound stores the radius searched and, when notifications are given,
	// inserts them as the next dispatch round. It fails with e.ErrConflict once
	// the request has left the pending state.
	RecordRound(ctx context.Context, requestID uuid.UUID, radiusKM float64, notifications []*domain.Notification) (int, error)
	GetNotification(ctx context.Context, id uuid.UUID) (*domain.Notification, error)
	ListNotifications(ctx context.Context, requestID uuid.UUID) ([]*domain.Notification, error)
	ListPendingByTechnician(ctx context.Context, technicianID uuid.UUID, asOf time.Time) ([]*domain.Notification, error)
	FindExpiredPending(ctx context.Context, asOf time.Time) ([]*domain.Notification, error)
	// ListStranded returns pending requests created before createdBefore that
	// hold no pending notification and have not searched up to maxRadiusKM.
	ListStranded(ctx context.Context, createdBefore time.Time, maxRadiusKM float64) ([]uuid.UUID, error)
	Transition(ctx context.Context, t domain.NotificationTransition) (*domain.Notification, error)
	// Accept commits the accepted notification, the request assignment and the
	// cancellation of every sibling pending notification as one unit.
	Accept(ctx context.Context, t domain.NotificationTransition) (*domain.EmergencyRequest, error)
}

type Directory interface {
	UserExists(ctx context.Context, id uuid.UUID) (bool, error)
	GetSubcategory(ctx context.Context, id uuid.UUID) (*domain.Subcategory, error)
	GetTechnician(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	ListEligible(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Technician, error)
}

type CandidateSource interface {
	ListEligible(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Technician, error)
}

type CandidateFinder interface {
	FindCandidates(ctx context.Context, lat, lng float64, subcategoryID uuid.UUID, radiusKM float64) ([]domain.Candidate, error)
}

// Locker serialises dispatch decisions for one request.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// PushDispatcher must not block the caller.
type PushDispatcher interface {
	Dispatch(msg domain.PushMessage)
}

type PushTransport interface {
	Deliver(ctx context.Context, msg domain.PushMessage) error
}

type Recorder interface {
	EmergencyCreated()
	NotificationsIssued(n int)
	NotificationResolved(state domain.NotificationState)
	DispatchRound(outcome string)
	Accepted(latency time.Duration)
	SweepExpired(n int)
	PushResult(kind domain.PushKind, ok bool)
}

// Публичные use-case'ы
type EmergencyService interface {
	CreateEmergency(ctx context.Context, req domain.CreateEmergencyRequest) (*domain.EmergencyStatus, error)
	Respond(ctx context.Context, req domain.RespondRequest) (*domain.EmergencyStatus, error)
	GetStatus(ctx context.Context, requestID uuid.UUID) (*domain.EmergencyStatus, error)
	PendingForTechnician(ctx context.Context, technicianID uuid.UUID) ([]domain.Notification, error)
}

const (
	RoundNotified  = "notified"
	RoundEmpty     = "empty"
	RoundExhausted = "exhausted"
)

type NoopRecorder struct{}

func (NoopRecorder) EmergencyCreated() {}
func (NoopRecorder) NotificationsIssued(int) {}
func (NoopRecorder) NotificationResolved(domain.NotificationState) {}
func (NoopRecorder) DispatchRound(string) {}
func (NoopRecorder) Accepted(time.Duration) {}
func (NoopRecorder) SweepExpired(int) {}
func (NoopRecorder) PushResult(domain.PushKind, bool) {}
