package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/internal/service"
	mock_service "github.com/Neb-Ur/service-app-backend/internal/service/mocks"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

func offer() domain.PushMessage {
	return domain.PushMessage{
		ID:          uuid.New(),
		Kind:        domain.PushTechnicianOffer,
		RecipientID: uuid.New(),
		RequestID:   uuid.New(),
		Summary:     "EMERGENCY: Plumbing",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPushSender_Send_RetriesThenSucceeds(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	msg := offer()
	transport := mock_service.NewMockPushTransport(ctrl)
	recorder := mock_service.NewMockRecorder(ctrl)

	gomock.InOrder(
		transport.EXPECT().Deliver(gomock.Any(), msg).Return(errors.New("broker away")),
		transport.EXPECT().Deliver(gomock.Any(), msg).Return(nil),
	)
	recorder.EXPECT().PushResult(domain.PushTechnicianOffer, true).Times(1)

	s := service.NewPushSender(logger.Discard(), nil, transport, recorder).WithBackoff(time.Millisecond)
	if err := s.Send(context.Background(), msg); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestPushSender_Send_GivesUpAfterThreeAttempts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("unreachable")
	transport := mock_service.NewMockPushTransport(ctrl)
	transport.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(boom).Times(3)

	recorder := mock_service.NewMockRecorder(ctrl)
	recorder.EXPECT().PushResult(domain.PushTechnicianOffer, false).Times(1)

	s := service.NewPushSender(logger.Discard(), nil, transport, recorder).WithBackoff(time.Millisecond)
	if err := s.Send(context.Background(), offer()); !errors.Is(err, boom) {
		t.Fatalf("expected last transport error, got %v", err)
	}
}

func TestWebhookTransport_Deliver(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&hits, 1)
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected content type %q", r.Header.Get("Content-Type"))
		}
		var got domain.PushMessage
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		if n == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	tr := service.NewWebhookTransport(srv.URL)

	if err := tr.Deliver(context.Background(), offer()); err == nil {
		t.Fatalf("expected error on 502")
	}
	if err := tr.Deliver(context.Background(), offer()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

type chanQueue struct {
	ch chan domain.PushMessage
}

func (q *chanQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.PushMessage, error) {
	select {
	case m := <-q.ch:
		return m, nil
	case <-ctx.Done():
		return domain.PushMessage{}, ctx.Err()
	}
}

func TestPushSender_Run_DrainsQueue(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	q := &chanQueue{ch: make(chan domain.PushMessage, 2)}
	q.ch <- offer()
	q.ch <- offer()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var delivered int32
	transport := mock_service.NewMockPushTransport(ctrl)
	transport.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, domain.PushMessage) error {
			if atomic.AddInt32(&delivered, 1) == 2 {
				cancel()
			}
			return nil
		}).
		Times(2)

	done := make(chan struct{})
	go func() {
		service.NewPushSender(logger.Discard(), q, transport, nil).Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("sender did not stop")
	}
}
