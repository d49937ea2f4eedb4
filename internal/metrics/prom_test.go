package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/internal/service"
)

var _ service.Recorder = (*Prom)(nil)

func TestProm_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewProm(reg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p.EmergencyCreated()
	p.NotificationsIssued(3)
	p.NotificationResolved(domain.NotificationAccepted)
	p.NotificationResolved(domain.NotificationCancelled)
	p.DispatchRound(service.RoundEmpty)
	p.DispatchRound(service.RoundNotified)
	p.SweepExpired(2)
	p.PushResult(domain.PushTechnicianOffer, true)
	p.PushResult(domain.PushTechnicianOffer, false)
	p.Accepted(12 * time.Second)

	expected := `
# HELP servicedesk_notifications_total Notifications issued (pending) and resolved, by state
# TYPE servicedesk_notifications_total counter
servicedesk_notifications_total{state="accepted"} 1
servicedesk_notifications_total{state="cancelled"} 1
servicedesk_notifications_total{state="pending"} 3
`
	if err := testutil.CollectAndCompare(p.notifications, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}

	if got := testutil.ToFloat64(p.created); got != 1 {
		t.Errorf("created: got %v", got)
	}
	if got := testutil.ToFloat64(p.swept); got != 2 {
		t.Errorf("swept: got %v", got)
	}
	if got := testutil.ToFloat64(p.push.WithLabelValues("technician_offer", "failed")); got != 1 {
		t.Errorf("push failed: got %v", got)
	}
	if c := testutil.CollectAndCount(p.rounds); c != 2 {
		t.Errorf("rounds series: got %d", c)
	}
	if c := testutil.CollectAndCount(p.acceptance); c == 0 {
		t.Errorf("latency not recorded")
	}
}

func TestProm_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewProm(reg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := NewProm(reg)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	first.EmergencyCreated()
	second.EmergencyCreated()

	if got := testutil.ToFloat64(first.created); got != 2 {
		t.Fatalf("expected shared counter, got %v", got)
	}
}

func TestProm_Handler(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := NewProm(reg)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p.EmergencyCreated()

	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "servicedesk_emergencies_created_total 1") {
		t.Fatalf("metric missing from output:\n%s", rr.Body.String())
	}
}
