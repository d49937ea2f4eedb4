package components

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neb-Ur/service-app-backend/internal/config"
	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/internal/workers"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:     "test",
		Http:    config.HttpConfig{Port: ":0", ShutdownTimeout: time.Second},
		Storage: config.StorageConfig{Driver: config.DriverSQLite},
		SQLite:  config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "dispatch.db")},
		Dispatch: config.DispatchConfig{
			NotificationTimeout: 90 * time.Second,
			InitialRadiusKM:     5,
			RadiusStepKM:        2,
			MaxRadiusKM:         50,
			SweepInterval:       time.Hour,
		},
		Push:      config.PushConfig{Transport: config.PushTransportLog, Workers: 1, Buffer: 4},
		Metrics:   config.MetricsConfig{Enabled: true},
		RateLimit: config.RateLimitConfig{RPS: 10, Burst: 10},
	}
}

func TestInitComponents_SQLiteWithoutRedis(t *testing.T) {
	cfg := sqliteConfig(t)
	require.NoError(t, cfg.Validate())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	comps, err := InitComponents(ctx, cfg, logger.Discard())
	require.NoError(t, err)

	comps.StartWorkers(ctx)
	assert.Equal(t, 0, comps.Sweeper.RunOnce(ctx))

	h := comps.HttpServer.Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	comps.ShutdownAll()
}

func TestMigrate_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)
	require.NoError(t, Migrate(context.Background(), cfg, logger.Discard()))
	// second run is a no-op
	require.NoError(t, Migrate(context.Background(), cfg, logger.Discard()))
}

func TestRun_DeliversBufferedPushesAfterServerStops(t *testing.T) {
	comps, err := InitComponents(context.Background(), sqliteConfig(t), logger.Discard())
	require.NoError(t, err)

	gate := make(chan struct{})
	var delivered atomic.Int32
	comps.pushPool = workers.NewPushPool(1, 8, func(ctx context.Context, msg domain.PushMessage) error {
		<-gate
		if err := ctx.Err(); err != nil {
			return err
		}
		delivered.Add(1)
		return nil
	}, logger.Discard())

	for i := 0; i < 3; i++ {
		comps.pushPool.Dispatch(domain.PushMessage{Kind: domain.PushTechnicianOffer, RecipientID: uuid.New()})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- comps.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	close(gate)
	comps.ShutdownAll()

	assert.Equal(t, int32(3), delivered.Load())
}
