package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/goleak"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func msg() domain.PushMessage {
	return domain.PushMessage{ID: uuid.New(), Kind: domain.PushTechnicianOffer, RecipientID: uuid.New()}
}

func TestPushPool_DeliversAndStops(t *testing.T) {
	var processed atomic.Int64
	sink := func(ctx context.Context, m domain.PushMessage) error {
		processed.Add(1)
		return nil
	}

	pool := NewPushPool(2, 10, sink, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	for i := 0; i < 5; i++ {
		pool.Dispatch(msg())
	}
	pool.Stop()

	if processed.Load() != 5 {
		t.Errorf("expected 5 messages processed, got %d", processed.Load())
	}

	// dispatch after stop is dropped, not a panic
	pool.Dispatch(msg())
	pool.Stop()
}

func TestPushPool_FullBufferDrops(t *testing.T) {
	release := make(chan struct{})
	var processed atomic.Int64
	sink := func(ctx context.Context, m domain.PushMessage) error {
		<-release
		processed.Add(1)
		return errors.New("ignored")
	}

	pool := NewPushPool(1, 1, sink, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	pool.Start(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			pool.Dispatch(msg())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Dispatch blocked on a full buffer")
	}

	close(release)
	pool.Stop()

	if n := processed.Load(); n < 1 || n > 2 {
		t.Errorf("expected at most worker+buffer messages, got %d", n)
	}
}

type countingSweeper struct {
	calls atomic.Int64
}

func (s *countingSweeper) SweepExpired(ctx context.Context) (int, error) {
	s.calls.Add(1)
	return 1, nil
}

func TestTimeoutSweeper_RunsOnInterval(t *testing.T) {
	s := &countingSweeper{}
	w := NewTimeoutSweeper(s, 5*time.Millisecond, logger.Discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for s.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("sweeper ran %d times", s.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

type failingSweeper struct{}

func (failingSweeper) SweepExpired(context.Context) (int, error) { return 0, errors.New("db down") }

func TestTimeoutSweeper_RunOnceSwallowsErrors(t *testing.T) {
	w := NewTimeoutSweeper(failingSweeper{}, time.Second, logger.Discard())
	if n := w.RunOnce(context.Background()); n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
}
