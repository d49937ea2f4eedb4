package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/google/uuid"
)

type DispatchOptions struct {
	NotificationTimeout time.Duration
	InitialRadiusKM     float64
	RadiusStepKM        float64
	MaxRadiusKM         float64
	// StrandedAfter is how old a pending request without any open offer must
	// be before the sweeper restarts its search.
	StrandedAfter       time.Duration
}

func DefaultDispatchOptions() DispatchOptions {
	return DispatchOptions{
		NotificationTimeout: 90 * time.Second,
		InitialRadiusKM:     5.0,
		RadiusStepKM:        2.0,
		MaxRadiusKM:         50.0,
		StrandedAfter:       30 * time.Second,
	}
}

// DispatchService drives emergency requests from intake to assignment.
type DispatchService struct {
	repo      EmergencyRepository
	directory Directory
	finder    CandidateFinder
	locker    Locker
	push      PushDispatcher
	metrics   Recorder
	logger    *slog.Logger
	opts      DispatchOptions
	now       func() time.Time
}

func NewDispatchService(
	repo EmergencyRepository,
	directory Directory,
	finder CandidateFinder,
	locker Locker,
	push PushDispatcher,
	metrics Recorder,
	logger *slog.Logger,
	opts DispatchOptions,
) *DispatchService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if metrics == nil {
		metrics = NoopRecorder{}
	}
	if opts.StrandedAfter <= 0 {
		opts.StrandedAfter = DefaultDispatchOptions().StrandedAfter
	}
	return &DispatchService{
		repo:      repo,
		directory: directory,
		finder:    finder,
		locker:    locker,
		push:      push,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the time source; tests use it to move deadlines.
func (s *DispatchService) WithClock(now func() time.Time) *DispatchService {
	s.now = now
	return s
}

func (s *DispatchService) CreateEmergency(ctx context.Context, req domain.CreateEmergencyRequest) (*domain.EmergencyStatus, error) {
	const op = "service.Dispatch.CreateEmergency"

	if req.RequesterID == uuid.Nil || req.SubcategoryID == uuid.Nil || req.Lat == nil || req.Lng == nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	lat, lng := *req.Lat, *req.Lng
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%s: %w: %w", op, e.ErrInvalidInput, e.ErrInvalidCoordinates)
	}

	exists, err := s.directory.UserExists(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%s: requester %s: %w", op, req.RequesterID, e.ErrNotFound)
	}

	sub, err := s.directory.GetSubcategory(ctx, req.SubcategoryID)
	if err != nil {
		return nil, err
	}

	request := &domain.EmergencyRequest{
		ID:            uuid.New(),
		RequesterID:   req.RequesterID,
		SubcategoryID: sub.ID,
		Title:         "EMERGENCY: " + sub.Name,
		Description:   req.Description,
		Address:       req.Address,
		Phone:         req.Phone,
		Notes:         req.Notes,
		Lat:           lat,
		Lng:           lng,
		State:         domain.RequestPending,
		Priority:      domain.PriorityUrgent,
		Urgent:        true,
		CreatedAt:     s.now(),
	}
	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	s.metrics.EmergencyCreated()

	s.logger.Info("emergency created",
		slog.String("request_id", request.ID.String()),
		slog.String("requester_id", request.RequesterID.String()),
		slog.String("subcategory", sub.Name),
	)

	// the request exists from here on; a failed search leaves it pending
	// and is visible through the status projection
	if err := s.dispatchRound(ctx, request, s.opts.InitialRadiusKM, nil); err != nil {
		s.logger.Error("initial dispatch round failed",
			slog.String("request_id", request.ID.String()),
			slog.Any("error", err),
		)
	}

	return s.GetStatus(ctx, request.ID)
}

// dispatchRound searches outward from radiusKM until it finds technicians not
// yet contacted for the request, or the maximum radius is searched.
func (s *DispatchService) dispatchRound(ctx context.Context, req *domain.EmergencyRequest, radiusKM float64, contacted map[uuid.UUID]struct{}) error {
	radiusKM = math.Min(radiusKM, s.opts.MaxRadiusKM)

	for {
		candidates, err := s.finder.FindCandidates(ctx, req.Lat, req.Lng, req.SubcategoryID, radiusKM)
		if err != nil {
			return err
		}

		fresh := candidates[:0:0]
		for _, c := range candidates {
			if _, seen := contacted[c.TechnicianID]; !seen {
				fresh = append(fresh, c)
			}
		}

		if len(fresh) > 0 {
			return s.issueNotifications(ctx, req, radiusKM, fresh)
		}

		if radiusKM >= s.opts.MaxRadiusKM {
			s.metrics.DispatchRound(RoundExhausted)
			s.logger.Warn("no technicians found at max radius",
				slog.String("request_id", req.ID.String()),
				slog.Float64("radius_km", radiusKM),
			)
			if _, err := s.repo.RecordRound(ctx, req.ID, radiusKM, nil); err != nil && !errors.Is(err, e.ErrConflict) {
				return err
			}
			req.SearchRadiusKM = radiusKM
			return nil
		}

		s.metrics.DispatchRound(RoundEmpty)
		next := s.nextRadius(radiusKM)
		s.logger.Info("no technicians in radius, expanding search",
			slog.String("request_id", req.ID.String()),
			slog.Float64("radius_km", radiusKM),
			slog.Float64("next_radius_km", next),
		)
		radiusKM = next
	}
}

func (s *DispatchService) issueNotifications(ctx context.Context, req *domain.EmergencyRequest, radiusKM float64, candidates []domain.Candidate) error {
	now := s.now()
	notifications := make([]*domain.Notification, 0, len(candidates))
	for i, c := range candidates {
		notifications = append(notifications, &domain.Notification{
			ID:             uuid.New(),
			RequestID:      req.ID,
			TechnicianID:   c.TechnicianID,
			State:          domain.NotificationPending,
			ContactOrder:   i + 1,
			DistanceMeters: c.DistanceMeters,
			SentAt:         now,
			TimeoutAt:      now.Add(s.opts.NotificationTimeout),
		})
	}

	round, err := s.repo.RecordRound(ctx, req.ID, radiusKM, notifications)
	if err != nil {
		if errors.Is(err, e.ErrConflict) {
			s.logger.Info("request left pending before round was issued", slog.String("request_id", req.ID.String()))
			return nil
		}
		return err
	}
	req.SearchRadiusKM = radiusKM
	req.DispatchRound = round

	s.metrics.DispatchRound(RoundNotified)
	s.metrics.NotificationsIssued(len(notifications))

	for _, n := range notifications {
		s.logger.Info("technician notified",
			slog.String("request_id", req.ID.String()),
			slog.String("technician_id", n.TechnicianID.String()),
			slog.Int("round", round),
			slog.Int("contact_order", n.ContactOrder),
			slog.Float64("distance_m", n.DistanceMeters),
		)
		s.dispatchPush(domain.PushMessage{
			ID:             uuid.New(),
			Kind:           domain.PushTechnicianOffer,
			RecipientID:    n.TechnicianID,
			RequestID:      req.ID,
			NotificationID: n.ID,
			TechnicianID:   n.TechnicianID,
			Summary:        req.Title + " - " + req.Address,
			DistanceMeters: n.DistanceMeters,
			CreatedAt:      now,
		})
	}
	return nil
}

func (s *DispatchService) nextRadius(radiusKM float64) float64 {
	return math.Min(radiusKM+s.opts.RadiusStepKM, s.opts.MaxRadiusKM)
}

func (s *DispatchService) Respond(ctx context.Context, req domain.RespondRequest) (*domain.EmergencyStatus, error) {
	const op = "service.Dispatch.Respond"

	if req.NotificationID == uuid.Nil || req.TechnicianID == uuid.Nil || req.Accept == nil {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	n, err := s.repo.GetNotification(ctx, req.NotificationID)
	if err != nil {
		return nil, err
	}
	if n.TechnicianID != req.TechnicianID {
		return nil, fmt.Errorf("%s: notification belongs to another technician: %w", op, e.ErrInvalidInput)
	}

	unlock, err := s.locker.Lock(ctx, requestLockKey(n.RequestID.String()))
	if err != nil {
		return nil, e.Wrap(op+": lock request", err)
	}
	defer unlock()

	request, err := s.repo.GetRequest(ctx, n.RequestID)
	if err != nil {
		return nil, err
	}
	if !request.IsPending() {
		return nil, fmt.Errorf("%s: request is %s: %w", op, request.State, e.ErrConflict)
	}
	if n.State.IsTerminal() {
		return nil, fmt.Errorf("%s: notification is %s: %w", op, n.State, e.ErrConflict)
	}

	t := domain.NotificationTransition{
		NotificationID: n.ID,
		At:             s.now(),
		ResponderLat:   req.CurrentLat,
		ResponderLng:   req.CurrentLng,
	}

	if *req.Accept {
		t.To = domain.NotificationAccepted
		assigned, err := s.repo.Accept(ctx, t)
		if err != nil {
			return nil, err
		}
		s.metrics.NotificationResolved(domain.NotificationAccepted)
		s.metrics.Accepted(t.At.Sub(n.SentAt))

		s.logger.Info("emergency accepted",
			slog.String("request_id", assigned.ID.String()),
			slog.String("technician_id", n.TechnicianID.String()),
		)
		s.dispatchPush(domain.PushMessage{
			ID:             uuid.New(),
			Kind:           domain.PushClientAccepted,
			RecipientID:    assigned.RequesterID,
			RequestID:      assigned.ID,
			NotificationID: n.ID,
			TechnicianID:   n.TechnicianID,
			Summary:        assigned.Title,
			DistanceMeters: n.DistanceMeters,
			CreatedAt:      t.At,
		})
		return s.GetStatus(ctx, assigned.ID)
	}

	t.To = domain.NotificationRejected
	if _, err := s.repo.Transition(ctx, t); err != nil {
		return nil, err
	}
	s.metrics.NotificationResolved(domain.NotificationRejected)
	s.logger.Info("emergency rejected",
		slog.String("request_id", n.RequestID.String()),
		slog.String("technician_id", n.TechnicianID.String()),
	)

	if err := s.reassignLocked(ctx, n.RequestID); err != nil {
		s.logger.Error("reassign after rejection failed",
			slog.String("request_id", n.RequestID.String()),
			slog.Any("error", err),
		)
	}
	return s.GetStatus(ctx, n.RequestID)
}

// Reassign starts the next dispatch round when the request has no
// outstanding offer left.
func (s *DispatchService) Reassign(ctx context.Context, requestID uuid.UUID) error {
	unlock, err := s.locker.Lock(ctx, requestLockKey(requestID.String()))
	if err != nil {
		return e.Wrap("service.Dispatch.Reassign: lock request", err)
	}
	defer unlock()

	return s.reassignLocked(ctx, requestID)
}

func (s *DispatchService) reassignLocked(ctx context.Context, requestID uuid.UUID) error {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return err
	}
	if !request.IsPending() {
		return nil
	}

	notifications, err := s.repo.ListNotifications(ctx, requestID)
	if err != nil {
		return err
	}

	now := s.now()
	contacted := make(map[uuid.UUID]struct{}, len(notifications))
	for _, n := range notifications {
		if n.Outstanding(now) {
			s.logger.Debug("offers still outstanding, no reassignment", slog.String("request_id", requestID.String()))
			return nil
		}
		contacted[n.TechnicianID] = struct{}{}
	}

	if request.SearchRadiusKM >= s.opts.MaxRadiusKM {
		s.metrics.DispatchRound(RoundExhausted)
		s.logger.Warn("search radius exhausted, request stays pending", slog.String("request_id", requestID.String()))
		return nil
	}

	next := s.opts.InitialRadiusKM
	if request.SearchRadiusKM > 0 {
		next = s.nextRadius(request.SearchRadiusKM)
	}

	s.logger.Info("reassigning emergency",
		slog.String("request_id", requestID.String()),
		slog.Float64("radius_km", next),
	)
	return s.dispatchRound(ctx, request, next, contacted)
}

// SweepExpired times out every pending notification past its deadline and
// reassigns each affected request once. Notifications resolved concurrently
// are skipped by the storage guard. Requests left without an open offer, for
// instance after a failed search, are picked up again once StrandedAfter has
// passed.
func (s *DispatchService) SweepExpired(ctx context.Context) (int, error) {
	now := s.now()

	expired, err := s.repo.FindExpiredPending(ctx, now)
	if err != nil {
		return 0, err
	}

	timedOut := 0
	requests := make([]uuid.UUID, 0, len(expired))
	seen := make(map[uuid.UUID]struct{}, len(expired))

	for _, n := range expired {
		_, err := s.repo.Transition(ctx, domain.NotificationTransition{
			NotificationID: n.ID,
			To:             domain.NotificationTimedOut,
			At:             now,
		})
		if err != nil {
			if errors.Is(err, e.ErrConflict) {
				continue
			}
			s.logger.Error("timeout transition failed", slog.String("notification_id", n.ID.String()), slog.Any("error", err))
			continue
		}
		timedOut++
		s.metrics.NotificationResolved(domain.NotificationTimedOut)
		s.logger.Info("notification timed out",
			slog.String("notification_id", n.ID.String()),
			slog.String("request_id", n.RequestID.String()),
		)
		if _, ok := seen[n.RequestID]; !ok {
			seen[n.RequestID] = struct{}{}
			requests = append(requests, n.RequestID)
		}
	}
	s.metrics.SweepExpired(timedOut)

	stranded, err := s.repo.ListStranded(ctx, now.Add(-s.opts.StrandedAfter), s.opts.MaxRadiusKM)
	if err != nil {
		s.logger.Error("stranded lookup failed", slog.Any("error", err))
	}
	for _, id := range stranded {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		requests = append(requests, id)
		s.logger.Info("restarting search for stranded request", slog.String("request_id", id.String()))
	}

	for _, id := range requests {
		if err := s.Reassign(ctx, id); err != nil {
			s.logger.Error("reassign after timeout failed", slog.String("request_id", id.String()), slog.Any("error", err))
		}
	}
	return timedOut, nil
}

func (s *DispatchService) GetStatus(ctx context.Context, requestID uuid.UUID) (*domain.EmergencyStatus, error) {
	request, err := s.repo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	notifications, err := s.repo.ListNotifications(ctx, requestID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	technicians := make(map[uuid.UUID]*domain.Technician)
	lookup := func(id uuid.UUID) *domain.Technician {
		if t, ok := technicians[id]; ok {
			return t
		}
		t, err := s.directory.GetTechnician(ctx, id)
		if err != nil {
			s.logger.Warn("technician lookup failed", slog.String("technician_id", id.String()), slog.Any("error", err))
			t = nil
		}
		technicians[id] = t
		return t
	}

	status := &domain.EmergencyStatus{
		Request:       *request,
		Notifications: make([]domain.NotificationView, 0, len(notifications)),
		AsOf:          now,
	}
	for _, n := range notifications {
		view := domain.NotificationView{Notification: *n}
		if t := lookup(n.TechnicianID); t != nil {
			view.TechnicianName = t.FullName()
		}
		if n.Outstanding(now) {
			status.Outstanding++
		}
		status.Notifications = append(status.Notifications, view)
	}

	if request.TechnicianID != nil {
		assigned := &domain.AssignedTechnician{ID: *request.TechnicianID, Status: domain.TechnicianEnRoute}
		if t := lookup(*request.TechnicianID); t != nil {
			assigned.Name = t.FullName()
			assigned.Phone = t.Phone
			assigned.Lat = t.Lat
			assigned.Lng = t.Lng
		}
		status.Technician = assigned
	}

	status.SearchExhausted = request.IsPending() &&
		status.Outstanding == 0 &&
		request.SearchRadiusKM >= s.opts.MaxRadiusKM

	return status, nil
}

func (s *DispatchService) PendingForTechnician(ctx context.Context, technicianID uuid.UUID) ([]domain.Notification, error) {
	if technicianID == uuid.Nil {
		return nil, fmt.Errorf("service.Dispatch.PendingForTechnician: %w", e.ErrInvalidInput)
	}
	if _, err := s.directory.GetTechnician(ctx, technicianID); err != nil {
		return nil, err
	}

	pending, err := s.repo.ListPendingByTechnician(ctx, technicianID, s.now())
	if err != nil {
		return nil, err
	}
	out := make([]domain.Notification, 0, len(pending))
	for _, n := range pending {
		out = append(out, *n)
	}
	return out, nil
}

func (s *DispatchService) dispatchPush(msg domain.PushMessage) {
	if s.push == nil {
		return
	}
	s.push.Dispatch(msg)
}
