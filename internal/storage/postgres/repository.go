package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EmergencyRepo persists requests and notifications. Every multi-row change
// runs in one transaction holding the request row lock.
type EmergencyRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewEmergencyRepo(pool *pgxpool.Pool, logger *slog.Logger) *EmergencyRepo {
	return &EmergencyRepo{pool: pool, logger: logger}
}

const requestColumns = `id, requester_id, subcategory_id, title, description, address, phone, notes,
	lat, lng, state, priority, urgent, technician_id, search_radius_km, dispatch_round, created_at, assigned_at`

const notificationColumns = `id, request_id, technician_id, state, round, contact_order, distance_meters,
	sent_at, responded_at, timeout_at, responder_lat, responder_lng`

func scanRequest(row pgx.Row) (*domain.EmergencyRequest, error) {
	var r domain.EmergencyRequest
	if err := row.Scan(
		&r.ID, &r.RequesterID, &r.SubcategoryID, &r.Title, &r.Description, &r.Address, &r.Phone, &r.Notes,
		&r.Lat, &r.Lng, &r.State, &r.Priority, &r.Urgent, &r.TechnicianID, &r.SearchRadiusKM, &r.DispatchRound,
		&r.CreatedAt, &r.AssignedAt,
	); err != nil {
		return nil, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	if r.AssignedAt != nil {
		at := r.AssignedAt.UTC()
		r.AssignedAt = &at
	}
	return &r, nil
}

func scanNotification(row pgx.Row) (*domain.Notification, error) {
	var n domain.Notification
	if err := row.Scan(
		&n.ID, &n.RequestID, &n.TechnicianID, &n.State, &n.Round, &n.ContactOrder, &n.DistanceMeters,
		&n.SentAt, &n.RespondedAt, &n.TimeoutAt, &n.ResponderLat, &n.ResponderLng,
	); err != nil {
		return nil, err
	}
	n.SentAt = n.SentAt.UTC()
	n.TimeoutAt = n.TimeoutAt.UTC()
	if n.RespondedAt != nil {
		at := n.RespondedAt.UTC()
		n.RespondedAt = &at
	}
	return &n, nil
}

func (r *EmergencyRepo) CreateRequest(ctx context.Context, req *domain.EmergencyRequest) error {
	const op = "postgres.Emergency.CreateRequest"

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `INSERT INTO emergency_requests (`+requestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		req.ID, req.RequesterID, req.SubcategoryID, req.Title, req.Description, req.Address, req.Phone, req.Notes,
		req.Lat, req.Lng, req.State, req.Priority, req.Urgent, req.TechnicianID, req.SearchRadiusKM, req.DispatchRound,
		req.CreatedAt, req.AssignedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *EmergencyRepo) GetRequest(ctx context.Context, id uuid.UUID) (*domain.EmergencyRequest, error) {
	const op = "postgres.Emergency.GetRequest"

	req, err := scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM emergency_requests WHERE id = $1`, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return req, nil
}

func (r *EmergencyRepo) RecordRound(ctx context.Context, requestID uuid.UUID, radiusKM float64, notifications []*domain.Notification) (int, error) {
	const op = "postgres.Emergency.RecordRound"

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, e.WrapError(ctx, op, err)
	}
	defer rollback(ctx, tx)

	var (
		state domain.RequestState
		round int
	)
	err = tx.QueryRow(ctx,
		`SELECT state, dispatch_round FROM emergency_requests WHERE id = $1 FOR UPDATE`, requestID,
	).Scan(&state, &round)
	if err != nil {
		return 0, e.WrapError(ctx, op, err)
	}
	if state != domain.RequestPending {
		return 0, conflict(op, "request is %s", state)
	}

	if len(notifications) > 0 {
		round++
	}

	if _, err := tx.Exec(ctx,
		`UPDATE emergency_requests SET search_radius_km = $1, dispatch_round = $2 WHERE id = $3`,
		radiusKM, round, requestID,
	); err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	if len(notifications) > 0 {
		batch := &pgx.Batch{}
		for _, n := range notifications {
			n.RequestID = requestID
			n.Round = round
			if n.ID == uuid.Nil {
				n.ID = uuid.New()
			}
			batch.Queue(`INSERT INTO notifications (`+notificationColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
				n.ID, n.RequestID, n.TechnicianID, n.State, n.Round, n.ContactOrder, n.DistanceMeters,
				n.SentAt, n.RespondedAt, n.TimeoutAt, n.ResponderLat, n.ResponderLng,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			r.logger.Error("insert notifications failed", slog.String("op", op), slog.Any("error", err))
			return 0, e.WrapError(ctx, op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, e.WrapError(ctx, op, err)
	}
	return round, nil
}

func (r *EmergencyRepo) GetNotification(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	const op = "postgres.Emergency.GetNotification"

	n, err := scanNotification(r.pool.QueryRow(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return n, nil
}

func (r *EmergencyRepo) ListNotifications(ctx context.Context, requestID uuid.UUID) ([]*domain.Notification, error) {
	return r.listNotifications(ctx, "postgres.Emergency.ListNotifications",
		`SELECT `+notificationColumns+` FROM notifications WHERE request_id = $1 ORDER BY round, contact_order`,
		requestID)
}

func (r *EmergencyRepo) ListPendingByTechnician(ctx context.Context, technicianID uuid.UUID, asOf time.Time) ([]*domain.Notification, error) {
	return r.listNotifications(ctx, "postgres.Emergency.ListPendingByTechnician",
		`SELECT `+notificationColumns+` FROM notifications
		WHERE technician_id = $1 AND state = $2 AND timeout_at >= $3
		ORDER BY sent_at DESC`,
		technicianID, domain.NotificationPending, asOf)
}

func (r *EmergencyRepo) FindExpiredPending(ctx context.Context, asOf time.Time) ([]*domain.Notification, error) {
	return r.listNotifications(ctx, "postgres.Emergency.FindExpiredPending",
		`SELECT `+notificationColumns+` FROM notifications
		WHERE state = $1 AND timeout_at < $2
		ORDER BY timeout_at`,
		domain.NotificationPending, asOf)
}

func (r *EmergencyRepo) ListStranded(ctx context.Context, createdBefore time.Time, maxRadiusKM float64) ([]uuid.UUID, error) {
	const op = "postgres.Emergency.ListStranded"

	rows, err := r.pool.Query(ctx, `SELECT r.id FROM emergency_requests r
		WHERE r.state = $1 AND r.created_at < $2 AND r.search_radius_km < $3
		AND NOT EXISTS (SELECT 1 FROM notifications n WHERE n.request_id = r.id AND n.state = $4)
		ORDER BY r.created_at`,
		domain.RequestPending, createdBefore, maxRadiusKM, domain.NotificationPending)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, e.WrapError(ctx, op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return ids, nil
}

func (r *EmergencyRepo) listNotifications(ctx context.Context, op, query string, args ...any) ([]*domain.Notification, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]*domain.Notification, 0, 8)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

func (r *EmergencyRepo) Transition(ctx context.Context, t domain.NotificationTransition) (*domain.Notification, error) {
	const op = "postgres.Emergency.Transition"

	// acceptance must also assign the request; it goes through Accept
	if !t.To.IsTerminal() || t.To == domain.NotificationAccepted {
		return nil, fmt.Errorf("%s: target state %q: %w", op, t.To, e.ErrInvalidInput)
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rollback(ctx, tx)

	n, err := r.transition(ctx, tx, op, t)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return n, nil
}

// transition is the compare-and-set on the pending state every terminal move
// goes through.
func (r *EmergencyRepo) transition(ctx context.Context, tx pgx.Tx, op string, t domain.NotificationTransition) (*domain.Notification, error) {
	var respondedAt *time.Time
	if t.RespondedState() {
		at := t.At.UTC()
		respondedAt = &at
	}

	n, err := scanNotification(tx.QueryRow(ctx, `UPDATE notifications
		SET state = $1, responded_at = $2, responder_lat = $3, responder_lng = $4
		WHERE id = $5 AND state = $6
		RETURNING `+notificationColumns,
		t.To, respondedAt, t.ResponderLat, t.ResponderLng,
		t.NotificationID, domain.NotificationPending,
	))
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	var state domain.NotificationState
	if err := tx.QueryRow(ctx, `SELECT state FROM notifications WHERE id = $1`, t.NotificationID).Scan(&state); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return nil, conflict(op, "notification is %s", state)
}

func (r *EmergencyRepo) Accept(ctx context.Context, t domain.NotificationTransition) (*domain.EmergencyRequest, error) {
	const op = "postgres.Emergency.Accept"

	t.To = domain.NotificationAccepted

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rollback(ctx, tx)

	var requestID, technicianID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT request_id, technician_id FROM notifications WHERE id = $1`, t.NotificationID).
		Scan(&requestID, &technicianID)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	req, err := scanRequest(tx.QueryRow(ctx, `UPDATE emergency_requests
		SET state = $1, technician_id = $2, assigned_at = $3
		WHERE id = $4 AND state = $5
		RETURNING `+requestColumns,
		domain.RequestAssigned, technicianID, t.At.UTC(), requestID, domain.RequestPending,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, conflict(op, "request %s already left pending", requestID)
	}
	if err != nil {
		r.logger.Error("assign request failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	if _, err := r.transition(ctx, tx, op, t); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx, `UPDATE notifications SET state = $1
		WHERE request_id = $2 AND state = $3 AND id <> $4`,
		domain.NotificationCancelled, requestID, domain.NotificationPending, t.NotificationID,
	)
	if err != nil {
		r.logger.Error("cancel siblings failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	r.logger.Debug("request assigned",
		slog.String("request_id", requestID.String()),
		slog.String("technician_id", technicianID.String()),
		slog.Int64("cancelled", tag.RowsAffected()),
	)
	return req, nil
}
