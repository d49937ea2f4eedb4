package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/google/uuid"
)

// DirectoryRepo reads the user, subcategory and technician tables. The
// dispatch core never writes them; the Create* methods exist for seeding.
type DirectoryRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewDirectoryRepo(db *sql.DB, logger *slog.Logger) *DirectoryRepo {
	return &DirectoryRepo{db: db, logger: logger}
}

const technicianQuery = `
	SELECT t.id, t.user_id, t.subcategory_id, u.first_name, u.last_name, u.phone,
	       t.lat, t.lng, t.available, t.active AND u.active, t.coverage_radius_km
	FROM technicians t
	JOIN users u ON u.id = t.user_id`

func scanTechnician(row scanner) (*domain.Technician, error) {
	var (
		t             domain.Technician
		lat, lng, cov sql.NullFloat64
	)
	if err := row.Scan(
		&t.ID, &t.UserID, &t.SubcategoryID, &t.FirstName, &t.LastName, &t.Phone,
		&lat, &lng, &t.Available, &t.Active, &cov,
	); err != nil {
		return nil, err
	}
	t.Lat = floatPtr(lat)
	t.Lng = floatPtr(lng)
	t.CoverageRadiusKM = floatPtr(cov)
	return &t, nil
}

func (d *DirectoryRepo) UserExists(ctx context.Context, id uuid.UUID) (bool, error) {
	const op = "sqlite.Directory.UserExists"

	var exists bool
	err := d.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = ? AND active = 1)`, id).Scan(&exists)
	if err != nil {
		d.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	return exists, nil
}

func (d *DirectoryRepo) GetSubcategory(ctx context.Context, id uuid.UUID) (*domain.Subcategory, error) {
	const op = "sqlite.Directory.GetSubcategory"

	var s domain.Subcategory
	err := d.db.QueryRowContext(ctx,
		`SELECT id, category_id, name, active FROM subcategories WHERE id = ?`, id,
	).Scan(&s.ID, &s.CategoryID, &s.Name, &s.Active)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return &s, nil
}

func (d *DirectoryRepo) GetTechnician(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	const op = "sqlite.Directory.GetTechnician"

	t, err := scanTechnician(d.db.QueryRowContext(ctx, technicianQuery+` WHERE t.id = ?`, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return t, nil
}

func (d *DirectoryRepo) ListEligible(ctx context.Context, subcategoryID uuid.UUID) ([]domain.Technician, error) {
	const op = "sqlite.Directory.ListEligible"

	rows, err := d.db.QueryContext(ctx, technicianQuery+`
		WHERE t.subcategory_id = ?
		  AND t.available = 1 AND t.active = 1 AND u.active = 1
		  AND t.lat IS NOT NULL AND t.lng IS NOT NULL`, subcategoryID)
	if err != nil {
		d.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() { _ = rows.Close() }()

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
	const op = "sqlite.Directory.CreateUser"

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO users (id, first_name, last_name, phone, lat, lng, active) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Phone, nullFloat(u.Lat), nullFloat(u.Lng), u.Active,
	)
	return e.WrapError(ctx, op, err)
}

func (d *DirectoryRepo) CreateSubcategory(ctx context.Context, s *domain.Subcategory) error {
	const op = "sqlite.Directory.CreateSubcategory"

	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO subcategories (id, category_id, name, active) VALUES (?, ?, ?, ?)`,
		s.ID, s.CategoryID, s.Name, s.Active,
	)
	return e.WrapError(ctx, op, err)
}

// CreateTechnician inserts the technician row; name and phone come from the
// referenced user.
func (d *DirectoryRepo) CreateTechnician(ctx context.Context, t *domain.Technician) error {
	const op = "sqlite.Directory.CreateTechnician"

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO technicians (id, user_id, subcategory_id, lat, lng, available, active, coverage_radius_km)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.SubcategoryID, nullFloat(t.Lat), nullFloat(t.Lng), t.Available, t.Active, nullFloat(t.CoverageRadiusKM),
	)
	return e.WrapError(ctx, op, err)
}
