package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neb-Ur/service-app-backend/internal/api/handlers/http/system"
	"github.com/Neb-Ur/service-app-backend/internal/config"
	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/internal/service"
	"github.com/Neb-Ur/service-app-backend/internal/storage/sqlite"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

// TestRouter_EndToEnd drives the HTTP surface against the real dispatch
// service on an in-memory store.
func TestRouter_EndToEnd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lg := logger.Discard()
	store, err := sqlite.NewSQLite(ctx, ":memory:", lg)
	require.NoError(t, err)
	defer store.Close()

	client := &domain.User{FirstName: "Client", Active: true}
	require.NoError(t, store.Directory.CreateUser(ctx, client))
	sub := &domain.Subcategory{CategoryID: uuid.New(), Name: "Locksmith", Active: true}
	require.NoError(t, store.Directory.CreateSubcategory(ctx, sub))
	techUser := &domain.User{FirstName: "Leo", LastName: "Tech", Phone: "+5690000", Active: true}
	require.NoError(t, store.Directory.CreateUser(ctx, techUser))
	lat, lng := -33.44, -70.65
	tech := &domain.Technician{UserID: techUser.ID, SubcategoryID: sub.ID, Lat: &lat, Lng: &lng, Available: true, Active: true}
	require.NoError(t, store.Directory.CreateTechnician(ctx, tech))

	svc := service.NewDispatchService(store.Emergency, store.Directory, service.NewFinder(store.Directory, lg),
		nil, nil, nil, lg, service.DefaultDispatchOptions())

	cfg := &config.Config{RateLimit: config.RateLimitConfig{RPS: 100, Burst: 100}}
	srv := NewServer(ctx, cfg, lg, svc, map[string]system.Pinger{"storage": store}, nil)
	h := srv.Handler()

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.RemoteAddr = "127.0.0.1:5555"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	rr := do(http.MethodPost, "/api/v1/emergencies/",
		fmt.Sprintf(`{"requester_id":%q,"subcategory_id":%q,"description":"locked out","address":"Av 1","lat":-33.45,"lng":-70.66}`, client.ID, sub.ID))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created domain.EmergencyStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	require.Len(t, created.Notifications, 1)

	rr = do(http.MethodGet, "/api/v1/emergencies/technicians/"+tech.ID.String()+"/pending", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var pending domain.PendingNotificationsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &pending))
	assert.Equal(t, 1, pending.Count)

	rr = do(http.MethodPost, "/api/v1/emergencies/respond",
		fmt.Sprintf(`{"notification_id":%q,"technician_id":%q,"accept":true,"current_lat":-33.441,"current_lng":-70.651}`,
			created.Notifications[0].ID, tech.ID))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(http.MethodGet, "/api/v1/emergencies/"+created.Request.ID.String(), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var status domain.EmergencyStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	assert.Equal(t, domain.RequestAssigned, status.Request.State)
	require.NotNil(t, status.Technician)
	assert.Equal(t, "Leo Tech", status.Technician.Name)

	// second answer on the same offer conflicts
	rr = do(http.MethodPost, "/api/v1/emergencies/respond",
		fmt.Sprintf(`{"notification_id":%q,"technician_id":%q,"accept":true}`, created.Notifications[0].ID, tech.ID))
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
