package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/google/uuid"
)

const earthRadiusKM = 6371.0

// Finder ranks eligible technicians by great-circle distance. It keeps no
// state between calls; radius expansion is the orchestrator's job.
type Finder struct {
	source CandidateSource
	logger *slog.Logger
}

func NewFinder(source CandidateSource, logger *slog.Logger) *Finder {
	return &Finder{source: source, logger: logger}
}

func (f *Finder) FindCandidates(ctx context.Context, lat, lng float64, subcategoryID uuid.UUID, radiusKM float64) ([]domain.Candidate, error) {
	const op = "service.Finder.FindCandidates"

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, fmt.Errorf("%s: %w: %w", op, e.ErrInvalidInput, e.ErrInvalidCoordinates)
	}
	if subcategoryID == uuid.Nil || radiusKM <= 0 || math.IsNaN(radiusKM) {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	technicians, err := f.source.ListEligible(ctx, subcategoryID)
	if err != nil {
		f.logger.Error("list eligible technicians failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}

	candidates := filterWithinRadius(technicians, lat, lng, subcategoryID, radiusKM)

	f.logger.Debug("haversine filter done",
		slog.String("subcategory_id", subcategoryID.String()),
		slog.Float64("radius_km", radiusKM),
		slog.Int("eligible", len(technicians)),
		slog.Int("within_radius", len(candidates)),
	)
	return candidates, nil
}

func filterWithinRadius(technicians []domain.Technician, lat, lng float64, subcategoryID uuid.UUID, radiusKM float64) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(technicians))
	for _, t := range technicians {
		// the source already filters, but a stale cache may not
		if !t.Available || !t.Active || !t.HasLocation() || t.SubcategoryID != subcategoryID {
			continue
		}
		dist := haversine(lat, lng, *t.Lat, *t.Lng)
		if dist > radiusKM {
			continue
		}
		if t.CoverageRadiusKM != nil && *t.CoverageRadiusKM > 0 && dist > *t.CoverageRadiusKM {
			continue
		}
		out = append(out, domain.Candidate{
			TechnicianID:   t.ID,
			DistanceMeters: dist * 1000,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DistanceMeters != out[j].DistanceMeters {
			return out[i].DistanceMeters < out[j].DistanceMeters
		}
		return out[i].TechnicianID.String() < out[j].TechnicianID.String()
	})
	return out
}

// haversine returns the distance in kilometres.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := deg2rad(lat2 - lat1)
	dLon := deg2rad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(lat1))*math.Cos(deg2rad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
