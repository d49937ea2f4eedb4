//go:build integration

package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

var (
	testClient *goredis.Client
	tc         testcontainers.Container
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}

	var err error
	tc, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	host, _ := tc.Host(ctx)
	port, _ := tc.MappedPort(ctx, "6379/tcp")

	testClient = goredis.NewClient(&goredis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	if err := testClient.Ping(ctx).Err(); err != nil {
		fmt.Println("redis ping:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	_ = testClient.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func TestPushQueue_FIFO(t *testing.T) {
	ctx := context.Background()
	q := NewPushQueue(testClient, "test:push:"+uuid.NewString())

	first := domain.PushMessage{ID: uuid.New(), Kind: domain.PushTechnicianOffer, Summary: "first"}
	second := domain.PushMessage{ID: uuid.New(), Kind: domain.PushClientAccepted, Summary: "second"}

	if err := q.Enqueue(ctx, first); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := q.Enqueue(ctx, second); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	got, err := q.BRPop(ctx, time.Second)
	if err != nil {
		t.Fatalf("brpop: %v", err)
	}
	if got.ID != first.ID {
		t.Fatalf("expected first message, got %+v", got)
	}
	got, err = q.BRPop(ctx, time.Second)
	if err != nil || got.ID != second.ID {
		t.Fatalf("expected second message, got %+v err=%v", got, err)
	}

	if _, err := q.BRPop(ctx, time.Second); !errors.Is(err, e.ErrPushQueueEmpty) {
		t.Fatalf("expected empty queue, got %v", err)
	}
}

type countingSource struct {
	calls int32
	techs []domain.Technician
}

func (s *countingSource) ListEligible(context.Context, uuid.UUID) ([]domain.Technician, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.techs, nil
}

func TestCandidateCache_ReadThrough(t *testing.T) {
	ctx := context.Background()
	sub := uuid.New()
	lat, lng := -33.45, -70.66
	src := &countingSource{techs: []domain.Technician{{ID: uuid.New(), SubcategoryID: sub, Lat: &lat, Lng: &lng, Available: true, Active: true}}}

	cache := NewCandidateCache(testClient, src, 500*time.Millisecond, logger.Discard())

	for i := 0; i < 3; i++ {
		got, err := cache.ListEligible(ctx, sub)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 1 || got[0].ID != src.techs[0].ID || *got[0].Lat != lat {
			t.Fatalf("unexpected technicians: %+v", got)
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected one source call, got %d", src.calls)
	}

	time.Sleep(700 * time.Millisecond)
	if _, err := cache.ListEligible(ctx, sub); err != nil {
		t.Fatalf("list: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected refetch after ttl, got %d calls", src.calls)
	}
}

func TestLocker_MutualExclusion(t *testing.T) {
	l := NewLocker(testClient, 5*time.Second, logger.Discard())
	key := "test:lock:" + uuid.NewString()

	var (
		inside  int32
		overlap int32
		wg      sync.WaitGroup
	)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), key)
			if err != nil {
				t.Errorf("lock: %v", err)
				return
			}
			if atomic.AddInt32(&inside, 1) > 1 {
				atomic.StoreInt32(&overlap, 1)
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}()
	}
	wg.Wait()

	if overlap != 0 {
		t.Fatalf("two holders inside the critical section")
	}
}

func TestLocker_ContextTimeout(t *testing.T) {
	l := NewLocker(testClient, 5*time.Second, logger.Discard())
	key := "test:lock:" + uuid.NewString()

	unlock, err := l.Lock(context.Background(), key)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx, key); !errors.Is(err, e.ErrLockNotAcquired) {
		t.Fatalf("expected ErrLockNotAcquired, got %v", err)
	}
}
