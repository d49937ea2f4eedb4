package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/internal/service"
	mock_service "github.com/Neb-Ur/service-app-backend/internal/service/mocks"
	"github.com/Neb-Ur/service-app-backend/pkg/e"
	"github.com/Neb-Ur/service-app-backend/pkg/logger"
)

func technician(sub uuid.UUID, km float64) domain.Technician {
	lat, lng := originLat+km/kmPerDegree, originLng
	return domain.Technician{
		ID:            uuid.New(),
		SubcategoryID: sub,
		Lat:           &lat,
		Lng:           &lng,
		Available:     true,
		Active:        true,
	}
}

func TestFinder_FindCandidates_OneWithinRadius(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sub := uuid.New()
	tech := technician(sub, 3)

	source := mock_service.NewMockCandidateSource(ctrl)
	source.EXPECT().
		ListEligible(gomock.Any(), sub).
		Return([]domain.Technician{tech}, nil).
		Times(1)

	f := service.NewFinder(source, logger.Discard())

	got, err := f.FindCandidates(context.Background(), originLat, originLng, sub, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	if got[0].TechnicianID != tech.ID {
		t.Fatalf("unexpected technician: %s", got[0].TechnicianID)
	}
	if d := got[0].DistanceMeters; d < 2999 || d > 3001 {
		t.Fatalf("expected ~3000m, got %f", d)
	}
}

func TestFinder_FindCandidates_SortedAndFiltered(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sub := uuid.New()
	far := technician(sub, 4)
	near := technician(sub, 2)
	outside := technician(sub, 8)

	busy := technician(sub, 1)
	busy.Available = false
	otherTrade := technician(uuid.New(), 1)
	noLocation := technician(sub, 1)
	noLocation.Lat = nil

	narrow := technician(sub, 3)
	cov := 2.5
	narrow.CoverageRadiusKM = &cov

	source := mock_service.NewMockCandidateSource(ctrl)
	source.EXPECT().
		ListEligible(gomock.Any(), sub).
		Return([]domain.Technician{far, outside, busy, otherTrade, noLocation, narrow, near}, nil)

	f := service.NewFinder(source, logger.Discard())

	got, err := f.FindCandidates(context.Background(), originLat, originLng, sub, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %+v", got)
	}
	if got[0].TechnicianID != near.ID || got[1].TechnicianID != far.ID {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[0].DistanceMeters >= got[1].DistanceMeters {
		t.Fatalf("distances must increase: %+v", got)
	}
}

func TestFinder_FindCandidates_TiesBrokenByID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sub := uuid.New()
	a := technician(sub, 2)
	b := technician(sub, 2)
	a.ID = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

	source := mock_service.NewMockCandidateSource(ctrl)
	source.EXPECT().ListEligible(gomock.Any(), sub).Return([]domain.Technician{a, b}, nil)

	got, err := service.NewFinder(source, logger.Discard()).FindCandidates(context.Background(), originLat, originLng, sub, 5)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got[0].TechnicianID != b.ID {
		t.Fatalf("expected lower id first, got %+v", got)
	}
}

func TestFinder_FindCandidates_InvalidInput(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// the source must not be queried for invalid input
	source := mock_service.NewMockCandidateSource(ctrl)
	f := service.NewFinder(source, logger.Discard())

	cases := []struct {
		name     string
		lat, lng float64
		sub      uuid.UUID
		radius   float64
	}{
		{"lat_out_of_range", 95, 0, uuid.New(), 5},
		{"lng_out_of_range", 0, -181, uuid.New(), 5},
		{"nil_subcategory", 0, 0, uuid.Nil, 5},
		{"zero_radius", 0, 0, uuid.New(), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.FindCandidates(context.Background(), c.lat, c.lng, c.sub, c.radius)
			if !errors.Is(err, e.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestFinder_FindCandidates_SourceError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("db down")
	source := mock_service.NewMockCandidateSource(ctrl)
	source.EXPECT().ListEligible(gomock.Any(), gomock.Any()).Return(nil, boom)

	_, err := service.NewFinder(source, logger.Discard()).FindCandidates(context.Background(), 0, 0, uuid.New(), 5)
	if !errors.Is(err, boom) {
		t.Fatalf("expected source error, got %v", err)
	}
}
