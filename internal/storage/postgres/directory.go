package postgres

import (
	"context"
	"log/slog"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DirectoryRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewDirectoryRepo(pool *pgxpool.Pool, logger *slog.Logger) *DirectoryRepo {
	return &DirectoryRepo{pool: pool, logger: logger}
}

const technicianQuery = `
	SELECT t.id, t.user_id, t.subcategory_id, u.first_name, u.last_name, u.phone,
	       t.lat, t.lng, t.available, t.active AND u.active, t.coverage_radius_km
	FROM technicians t
	JOIN users u ON u.id = t.user_id`

func scanTechnician(row pgx.Row) (*domain.Technician, error) {
	var t domain.Technician
	if err := row.Scan(
		&t.ID, &t.UserID, &t.SubcategoryID, &t.FirstName, &t.LastName, &t.Phone,
		&t.Lat, &t.Lng, &t.Available, &t.Active, &t.CoverageRadiusKM,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *DirectoryRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "postgres.Directory.UserExists"

	var exists bool
	err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND active)`, id).Scan(&exists)
	if err != nil {
		d.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	return exists, nil
}

func (d *DirectoryRepo) GetSubcategory(ctx context.Context, id uuid.UUID) (*domain.Subcategory, error) {
	const op = "postgres.Directory.GetSubcategory"

	var s domain.Subcategory
	err := d.pool.QueryRow(ctx,
		`SELECT id, category_id, name, active FROM subcategories WHERE id = $1`, id,
	).Scan(&s.ID, &s.CategoryID, &s.Name, &s.Active)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return &s, nil
}

func (d *DirectoryRepo) GetTechnician(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	const op = "postgres.Directory.GetTechnician"

	t, err := scanTechnician(d.pool.QueryRow(ctx, technicianQuery+` WHERE t.id = $1`, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return t, nil
}

// ListEligible returns available, active technicians of the subcategory that
// have a known position. Distance filtering happens in the finder.
func (d *DirectoryRepo) ListEligible(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Technician, error) {
	const op = "postgres.Directory.ListEligible"

	rows, err := d.pool.Query(ctx, technicianQuery+`
		WHERE t.subcategory_id = $1
		  AND t.available AND t.active AND u.active
		  AND t.lat IS NOT NULL AND t.lng IS NOT NULL`, subcategoryID)
	if err != nil {
		d.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.Technician, 0, 16)
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (d *DirectoryRepo) CreateUser(ctx context.Context, u *domain.User) error {
	const op = "postgres.Directory.CreateUser"

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	_, err := d.pool.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, phone, lat, lng, active) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.FirstName, u.LastName, u.Phone, u.Lat, u.Lng, u.Active,
	)
	return e.WrapError(ctx, op, err)
}

func (d *DirectoryRepo) CreateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	const op = "postgres.Directory.CreateSubcategory"

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := d.pool.Exec(ctx,
		`INSERT INTO subcategories (id, category_id, name, active) VALUES ($1, $2, $3, $4)`,
		s.ID, s.CategoryID, s.Name, s.Active,
	)
	return e.WrapError(ctx, op, err)
}

func (d *DirectoryRepo) CreateTechnician(ctx context.Context, t *domain.Technician) error {
	const op = "postgres.Directory.CreateTechnician"

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := d.pool.Exec(ctx,
		`INSERT INTO technicians (id, user_id, subcategory_id, lat, lng, available, active, coverage_radius_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.UserID, t.SubcategoryID, t.Lat, t.Lng, t.Available, t.Active, t.CoverageRadiusKM,
	)
	return e.WrapError(ctx, op, err)
}
