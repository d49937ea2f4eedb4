package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Neb-Ur/service-app-backend/pkg/e"

	_ "modernc.org/sqlite"
)

type SQLite struct {
	DB        *sql.DB
	Emergency *EmergencyRepo
	Directory *DirectoryRepo
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// NewSQLite opens the database at path and applies the schema. The pool is
// pinned to one connection: SQLite allows a single writer and ":memory:"
// databases live only as long as their connection.
func NewSQLite(ctx context.Context, path string, logger *slog.Logger) (*SQLite, error) {
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, e.Wrap("storage.sqlite.NewSQLite.Open", err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, e.Wrap("storage.sqlite.NewSQLite.Ping", err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, e.Wrap("storage.sqlite.NewSQLite.Migrate", err)
	}
	logger.Info("SQLite store ready", slog.String("path", path))

	return &SQLite{
		DB:        db,
		Emergency: NewEmergencyRepo(db, logger),
		Directory: NewDirectoryRepo(db, logger),
	}, nil
}

func (s *SQLite) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *SQLite) Close() error {
	return s.DB.Close()
}

func Migrate(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			lat REAL,
			lng REAL,
			active INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS subcategories (
			id TEXT PRIMARY KEY,
			category_id TEXT NOT NULL,
			name TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		);

		CREATE TABLE IF NOT EXISTS technicians (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL REFERENCES users(id),
			subcategory_id TEXT NOT NULL REFERENCES subcategories(id),
			lat REAL,
			lng REAL,
			available INTEGER NOT NULL DEFAULT 1,
			active INTEGER NOT NULL DEFAULT 1,
			coverage_radius_km REAL
		);

		CREATE TABLE IF NOT EXISTS emergency_requests (
			id TEXT PRIMARY KEY,
			requester_id TEXT NOT NULL REFERENCES users(id),
			subcategory_id TEXT NOT NULL REFERENCES subcategories(id),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			lat REAL NOT NULL,
			lng REAL NOT NULL,
			state TEXT NOT NULL,
			priority TEXT NOT NULL,
			urgent INTEGER NOT NULL DEFAULT 0,
			technician_id TEXT REFERENCES technicians(id),
			search_radius_km REAL NOT NULL DEFAULT 0,
			dispatch_round INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			assigned_at INTEGER
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id TEXT PRIMARY KEY,
			request_id TEXT NOT NULL REFERENCES emergency_requests(id),
			technician_id TEXT NOT NULL REFERENCES technicians(id),
			state TEXT NOT NULL,
			round INTEGER NOT NULL,
			contact_order INTEGER NOT NULL,
			distance_meters REAL NOT NULL,
			sent_at INTEGER NOT NULL,
			responded_at INTEGER,
			timeout_at INTEGER NOT NULL,
			responder_lat REAL,
			responder_lng REAL,
			UNIQUE (request_id, technician_id, round)
		);

		CREATE INDEX IF NOT EXISTS idx_technicians_subcategory ON technicians(subcategory_id);
		CREATE INDEX IF NOT EXISTS idx_notifications_request ON notifications(request_id, round, contact_order);
		CREATE INDEX IF NOT EXISTS idx_notifications_pending ON notifications(state, timeout_at);
		CREATE INDEX IF NOT EXISTS idx_notifications_technician ON notifications(technician_id, state);
	`

	_, err := db.ExecContext(ctx, schema)
	return err
}

func toNano(t time.Time) int64 { return t.UTC().UnixNano() }

func fromNano(n int64) time.Time { return time.Unix(0, n).UTC() }

func nullTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toNano(*t), Valid: true}
}

func timePtr(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := fromNano(n.Int64)
	return &t
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}

func conflict(op, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", op, fmt.Sprintf(format, args...), e.ErrConflict)
}
