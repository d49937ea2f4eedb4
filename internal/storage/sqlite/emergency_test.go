package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

type fixture struct {
	store       *SQLite
	requester   uuid.UUID
	subcategory uuid.UUID
	technicians []uuid.UUID
}

func newFixture(t *testing.T, technicians int) *fixture {
	t.Helper()
	ctx := context.Background()

	store, err := NewSQLite(ctx, ":memory:", logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	f := &fixture{store: store}

	client := &domain.User{FirstName: "Ana", Active: true}
	require.NoError(t, store.Directory.CreateUser(ctx, client))
	f.requester = client.ID

	sub := &domain.Subcategory{CategoryID: uuid.New(), Name: "Plumbing", Active: true}
	require.NoError(t, store.Directory.CreateSubcategory(ctx, sub))
	f.subcategory = sub.ID

	for i := 0; i < technicians; i++ {
		u := &domain.User{FirstName: "Tech", LastName: string(rune('A' + i)), Phone: "555", Active: true}
		require.NoError(t, store.Directory.CreateUser(ctx, u))
		lat, lng := -33.45, -70.66
		tech := &domain.Technician{UserID: u.ID, SubcategoryID: sub.ID, Lat: &lat, Lng: &lng, Available: true, Active: true}
		require.NoError(t, store.Directory.CreateTechnician(ctx, tech))
		f.technicians = append(f.technicians, tech.ID)
	}
	return f
}

func (f *fixture) newRequest(t *testing.T) *domain.EmergencyRequest {
	t.Helper()
	req := &domain.EmergencyRequest{
		RequesterID:   f.requester,
		SubcategoryID: f.subcategory,
		Title:         "EMERGENCY: Plumbing",
		Lat:           -33.45,
		Lng:           -70.66,
		State:         domain.RequestPending,
		Priority:      domain.PriorityUrgent,
		Urgent:        true,
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, f.store.Emergency.CreateRequest(context.Background(), req))
	return req
}

func (f *fixture) round(t *testing.T, req *domain.EmergencyRequest, sentAt time.Time) []*domain.Notification {
	t.Helper()
	ns := make([]*domain.Notification, 0, len(f.technicians))
	for i, tech := range f.technicians {
		ns = append(ns, &domain.Notification{
			TechnicianID:   tech,
			State:          domain.NotificationPending,
			ContactOrder:   i + 1,
			DistanceMeters: float64(1000 * (i + 1)),
			SentAt:         sentAt,
			TimeoutAt:      sentAt.Add(90 * time.Second),
		})
	}
	round, err := f.store.Emergency.RecordRound(context.Background(), req.ID, 5, ns)
	require.NoError(t, err)
	require.Equal(t, 1, round)
	return ns
}

func TestRecordRound_PersistsRadiusAndOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 3)
	req := f.newRequest(t)
	f.round(t, req, time.Now().UTC())

	got, err := f.store.Emergency.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.SearchRadiusKM)
	assert.Equal(t, 1, got.DispatchRound)

	ns, err := f.store.Emergency.ListNotifications(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, ns, 3)
	for i, n := range ns {
		assert.Equal(t, i+1, n.ContactOrder)
		assert.Equal(t, domain.NotificationPending, n.State)
		assert.Equal(t, 90*time.Second, n.TimeoutAt.Sub(n.SentAt))
	}

	// an empty round only moves the radius
	round, err := f.store.Emergency.RecordRound(ctx, req.ID, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, round)
}

func TestRecordRound_ConflictOnceAssigned(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 1)
	req := f.newRequest(t)
	ns := f.round(t, req, time.Now().UTC())

	_, err := f.store.Emergency.Accept(ctx, domain.NotificationTransition{NotificationID: ns[0].ID, At: time.Now().UTC()})
	require.NoError(t, err)

	_, err = f.store.Emergency.RecordRound(ctx, req.ID, 7, nil)
	assert.True(t, errors.Is(err, e.ErrConflict), "got %v", err)
}

func TestAccept_AssignsAndCancelsSiblings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 3)
	req := f.newRequest(t)
	ns := f.round(t, req, time.Now().UTC())

	lat, lng := -33.46, -70.67
	at := time.Now().UTC()
	assigned, err := f.store.Emergency.Accept(ctx, domain.NotificationTransition{
		NotificationID: ns[1].ID, At: at, ResponderLat: &lat, ResponderLng: &lng,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAssigned, assigned.State)
	require.NotNil(t, assigned.TechnicianID)
	assert.Equal(t, f.technicians[1], *assigned.TechnicianID)
	require.NotNil(t, assigned.AssignedAt)

	all, err := f.store.Emergency.ListNotifications(ctx, req.ID)
	require.NoError(t, err)
	for _, n := range all {
		if n.ID == ns[1].ID {
			assert.Equal(t, domain.NotificationAccepted, n.State)
			require.NotNil(t, n.RespondedAt)
			require.NotNil(t, n.ResponderLat)
			assert.Equal(t, lat, *n.ResponderLat)
			continue
		}
		assert.Equal(t, domain.NotificationCancelled, n.State)
		assert.Nil(t, n.RespondedAt)
	}
}

func TestAccept_ConcurrentOnlyOneWins(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 2)
	req := f.newRequest(t)
	ns := f.round(t, req, time.Now().UTC())

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for _, n := range ns {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := f.store.Emergency.Accept(ctx, domain.NotificationTransition{NotificationID: id, At: time.Now().UTC()})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case errors.Is(err, e.ErrConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(n.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, conflicts)

	all, err := f.store.Emergency.ListNotifications(ctx, req.ID)
	require.NoError(t, err)
	accepted := 0
	for _, n := range all {
		if n.State == domain.NotificationAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestTransition_GuardsTerminalStates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 1)
	req := f.newRequest(t)
	ns := f.round(t, req, time.Now().UTC())

	n, err := f.store.Emergency.Transition(ctx, domain.NotificationTransition{
		NotificationID: ns[0].ID, To: domain.NotificationRejected, At: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.NotificationRejected, n.State)
	assert.NotNil(t, n.RespondedAt)

	_, err = f.store.Emergency.Transition(ctx, domain.NotificationTransition{
		NotificationID: ns[0].ID, To: domain.NotificationTimedOut, At: time.Now().UTC(),
	})
	assert.True(t, errors.Is(err, e.ErrConflict), "got %v", err)

	_, err = f.store.Emergency.Transition(ctx, domain.NotificationTransition{
		NotificationID: ns[0].ID, To: domain.NotificationAccepted,
	})
	assert.True(t, errors.Is(err, e.ErrInvalidInput), "got %v", err)

	_, err = f.store.Emergency.Transition(ctx, domain.NotificationTransition{
		NotificationID: uuid.New(), To: domain.NotificationTimedOut,
	})
	assert.True(t, errors.Is(err, e.ErrNotFound), "got %v", err)
}

func TestFindExpiredPending_AndPendingByTechnician(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 2)
	req := f.newRequest(t)
	sent := time.Now().UTC().Add(-time.Hour)
	ns := f.round(t, req, sent)

	deadline := sent.Add(90 * time.Second)

	expired, err := f.store.Emergency.FindExpiredPending(ctx, deadline)
	require.NoError(t, err)
	assert.Empty(t, expired, "deadline equal to asOf is not expired")

	expired, err = f.store.Emergency.FindExpiredPending(ctx, deadline.Add(time.Millisecond))
	require.NoError(t, err)
	assert.Len(t, expired, 2)

	pending, err := f.store.Emergency.ListPendingByTechnician(ctx, f.technicians[0], sent)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, ns[0].ID, pending[0].ID)

	pending, err = f.store.Emergency.ListPendingByTechnician(ctx, f.technicians[0], deadline.Add(time.Second))
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestListStranded(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 1)
	idle := f.newRequest(t)

	offered := f.newRequest(t)
	f.round(t, offered, time.Now().UTC())

	exhausted := f.newRequest(t)
	_, err := f.store.Emergency.RecordRound(ctx, exhausted.ID, 50, nil)
	require.NoError(t, err)

	later := time.Now().UTC().Add(time.Minute)

	ids, err := f.store.Emergency.ListStranded(ctx, later, 50)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{idle.ID}, ids)

	ids, err = f.store.Emergency.ListStranded(ctx, idle.CreatedAt.Add(-time.Second), 50)
	require.NoError(t, err)
	assert.Empty(t, ids, "requests inside the grace period are skipped")

	// once every offer is resolved the request is stranded again
	ns, err := f.store.Emergency.ListNotifications(ctx, offered.ID)
	require.NoError(t, err)
	_, err = f.store.Emergency.Transition(ctx, domain.NotificationTransition{
		NotificationID: ns[0].ID, To: domain.NotificationRejected, At: time.Now().UTC(),
	})
	require.NoError(t, err)

	ids, err = f.store.Emergency.ListStranded(ctx, later, 50)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{idle.ID, offered.ID}, ids)
}

func TestDirectory_ListEligible(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newFixture(t, 1)

	u := &domain.User{FirstName: "Off", Active: true}
	require.NoError(t, f.store.Directory.CreateUser(ctx, u))
	lat, lng := -33.45, -70.66
	require.NoError(t, f.store.Directory.CreateTechnician(ctx, &domain.Technician{
		UserID: u.ID, SubcategoryID: f.subcategory, Lat: &lat, Lng: &lng, Available: false, Active: true,
	}))
	require.NoError(t, f.store.Directory.CreateTechnician(ctx, &domain.Technician{
		UserID: u.ID, SubcategoryID: f.subcategory, Available: true, Active: true,
	}))

	eligible, err := f.store.Directory.ListEligible(ctx, f.subcategory)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, f.technicians[0], eligible[0].ID)
	assert.Equal(t, "Tech A", eligible[0].FullName())

	ok, err := f.store.Directory.UserExists(ctx, f.requester)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.store.Directory.UserExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.store.Directory.GetSubcategory(ctx, uuid.New())
	assert.True(t, errors.Is(err, e.ErrNotFound), "got %v", err)
}
