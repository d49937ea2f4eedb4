package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Neb-Ur/service-app-backend/internal/config"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	Pool      *pgxpool.Pool
	Emergency *EmergencyRepo
	Directory *DirectoryRepo
}

func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Database,
		cfg.SSLMode,
	)

	logger.Info("Connecting to Postgres",
		slog.String("host", cfg.Host),
		slog.Int("port", cfg.Port),
		slog.String("database", cfg.Database),
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("Failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	logger.Info("Pinging Postgres database")
	if err := pool.Ping(ctx); err != nil {
		logger.Error("Failed to ping Postgres database", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		logger.Error("Failed to migrate Postgres schema", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Migrate", err)
	}
	logger.Info("Connected to Postgres successfully")

	return New(pool, logger), nil
}

// New builds the repositories on an existing pool.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Postgres {
	return &Postgres{
		Pool:      pool,
		Emergency: NewEmergencyRepo(pool, logger),
		Directory: NewDirectoryRepo(pool, logger),
	}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

func (p *Postgres) Close() error {
	p.Pool.Close()
	return nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		first_name text NOT NULL,
		last_name text NOT NULL DEFAULT '',
		phone text NOT NULL DEFAULT '',
		lat double precision,
		lng double precision,
		active boolean NOT NULL DEFAULT true
	);

	CREATE TABLE IF NOT EXISTS subcategories (
		id uuid PRIMARY KEY,
		category_id uuid NOT NULL,
		name text NOT NULL,
		active boolean NOT NULL DEFAULT true
	);

	CREATE TABLE IF NOT EXISTS technicians (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users(id),
		subcategory_id uuid NOT NULL REFERENCES subcategories(id),
		lat double precision,
		lng double precision,
		available boolean NOT NULL DEFAULT true,
		active boolean NOT NULL DEFAULT true,
		coverage_radius_km double precision
	);

	CREATE TABLE IF NOT EXISTS emergency_requests (
		id uuid PRIMARY KEY,
		requester_id uuid NOT NULL REFERENCES users(id),
		subcategory_id uuid NOT NULL REFERENCES subcategories(id),
		title text NOT NULL,
		description text NOT NULL DEFAULT '',
		address text NOT NULL DEFAULT '',
		phone text NOT NULL DEFAULT '',
		notes text NOT NULL DEFAULT '',
		lat double precision NOT NULL,
		lng double precision NOT NULL,
		state text NOT NULL,
		priority text NOT NULL,
		urgent boolean NOT NULL DEFAULT false,
		technician_id uuid REFERENCES technicians(id),
		search_radius_km double precision NOT NULL DEFAULT 0,
		dispatch_round integer NOT NULL DEFAULT 0,
		created_at timestamptz NOT NULL,
		assigned_at timestamptz
	);

	CREATE TABLE IF NOT EXISTS notifications (
		id uuid PRIMARY KEY,
		request_id uuid NOT NULL REFERENCES emergency_requests(id),
		technician_id uuid NOT NULL REFERENCES technicians(id),
		state text NOT NULL,
		round integer NOT NULL,
		contact_order integer NOT NULL,
		distance_meters double precision NOT NULL,
		sent_at timestamptz NOT NULL,
		responded_at timestamptz,
		timeout_at timestamptz NOT NULL,
		responder_lat double precision,
		responder_lng double precision,
		UNIQUE (request_id, technician_id, round)
	);

	CREATE INDEX IF NOT EXISTS idx_technicians_subcategory ON technicians(subcategory_id);
	CREATE INDEX IF NOT EXISTS idx_notifications_request ON notifications(request_id, round, contact_order);
	CREATE INDEX IF NOT EXISTS idx_notifications_pending ON notifications(state, timeout_at);
	CREATE INDEX IF NOT EXISTS idx_notifications_technician ON notifications(technician_id, state);
`

// Migrate applies the schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}

func rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(context.WithoutCancel(ctx))
}

func conflict(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), e.ErrConflict)
}
