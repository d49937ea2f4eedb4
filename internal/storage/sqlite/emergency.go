package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"

	"github.com/google/uuid"
)

type EmergencyRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewEmergencyRepo(db *sql.DB, logger *slog.Logger) *EmergencyRepo {
	return &EmergencyRepo{db: db, logger: logger}
}

const requestColumns = `id, requester_id, subcategory_id, title, description, address, phone, notes,
	lat, lng, state, priority, urgent, technician_id, search_radius_km, dispatch_round, created_at, assigned_at`

const notificationColumns = `id, request_id, technician_id, state, round, contact_order, distance_meters,
	sent_at, responded_at, timeout_at, responder_lat, responder_lng`

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*domain.EmergencyRequest, error) {
	var (
		r          domain.EmergencyRequest
		techID     uuid.NullUUID
		createdAt  int64
		assignedAt sql.NullInt64
	)
	if err := row.Scan(
		&r.ID, &r.RequesterID, &r.SubcategoryID, &r.Title, &r.Description, &r.Address, &r.Phone, &r.Notes,
		&r.Lat, &r.Lng, &r.State, &r.Priority, &r.Urgent, &techID, &r.SearchRadiusKM, &r.DispatchRound,
		&createdAt, &assignedAt,
	); err != nil {
		return nil, err
	}
	if techID.Valid {
		r.TechnicianID = &techID.UUID
	}
	r.CreatedAt = fromNano(createdAt)
	r.AssignedAt = timePtr(assignedAt)
	return &r, nil
}

func scanNotification(row scanner) (*domain.Notification, error) {
	var (
		n                 domain.Notification
		sentAt, timeoutAt int64
		respondedAt       sql.NullInt64
		respLat, respLng  sql.NullFloat64
	)
	if err := row.Scan(
		&n.ID, &n.RequestID, &n.TechnicianID, &n.State, &n.Round, &n.ContactOrder, &n.DistanceMeters,
		&sentAt, &respondedAt, &timeoutAt, &respLat, &respLng,
	); err != nil {
		return nil, err
	}
	n.SentAt = fromNano(sentAt)
	n.TimeoutAt = fromNano(timeoutAt)
	n.RespondedAt = timePtr(respondedAt)
	n.ResponderLat = floatPtr(respLat)
	n.ResponderLng = floatPtr(respLng)
	return &n, nil
}

func (r *EmergencyRepo) CreateRequest(ctx context.Context, req *domain.EmergencyRequest) error {
	const op = "sqlite.Emergency.CreateRequest"

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	var techID uuid.NullUUID
	if req.TechnicianID != nil {
		techID = uuid.NullUUID{UUID: *req.TechnicianID, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO emergency_requests (`+requestColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.RequesterID, req.SubcategoryID, req.Title, req.Description, req.Address, req.Phone, req.Notes,
		req.Lat, req.Lng, req.State, req.Priority, req.Urgent, techID, req.SearchRadiusKM, req.DispatchRound,
		toNano(req.CreatedAt), nullTime(req.AssignedAt),
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *EmergencyRepo) GetRequest(ctx context.Context, id uuid.UUID) (*domain.EmergencyRequest, error) {
	return r.getRequest(ctx, r.db, id)
}

func (r *EmergencyRepo) getRequest(ctx context.Context, q querier, id uuid.UUID) (*domain.EmergencyRequest, error) {
	const op = "sqlite.Emergency.GetRequest"

	req, err := scanRequest(q.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM emergency_requests WHERE id = ?`, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return req, nil
}

func (r *EmergencyRepo) RecordRound(ctx context.Context, requestID uuid.UUID, radiusKM float64, notifications []*domain.Notification) (int, error) {
	const op = "sqlite.Emergency.RecordRound"

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, e.WrapError(ctx, op, err)
	}
	defer rollback(tx)

	var (
		state domain.RequestState
		round int
	)
	err = tx.QueryRowContext(ctx, `SELECT state, dispatch_round FROM emergency_requests WHERE id = ?`, requestID).
		Scan(&state, &round)
	if err != nil {
		return 0, e.WrapError(ctx, op, err)
	}
	if state != domain.RequestPending {
		return 0, conflict(op, "request is %s", state)
	}

	if len(notifications) > 0 {
		round++
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE emergency_requests SET search_radius_km = ?, dispatch_round = ? WHERE id = ? AND state = ?`,
		radiusKM, round, requestID, domain.RequestPending,
	); err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}

	for _, n := range notifications {
		n.RequestID = requestID
		n.Round = round
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO notifications (`+notificationColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, n.RequestID, n.TechnicianID, n.State, n.Round, n.ContactOrder, n.DistanceMeters,
			toNano(n.SentAt), nullTime(n.RespondedAt), toNano(n.TimeoutAt), nullFloat(n.ResponderLat), nullFloat(n.ResponderLng),
		); err != nil {
			r.logger.Error("insert notification failed", slog.String("op", op), slog.Any("error", err))
			return 0, e.WrapError(ctx, op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, e.WrapError(ctx, op, err)
	}
	return round, nil
}

func (r *EmergencyRepo) GetNotification(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	return r.getNotification(ctx, r.db, id)
}

func (r *EmergencyRepo) getNotification(ctx context.Context, q querier, id uuid.UUID) (*domain.Notification, error) {
	const op = "sqlite.Emergency.GetNotification"

	n, err := scanNotification(q.QueryRowContext(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id))
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return n, nil
}

func (r *EmergencyRepo) ListNotifications(ctx context.Context, requestID uuid.UUID) ([]*domain.Notification, error) {
	return r.listNotifications(ctx, "sqlite.Emergency.ListNotifications",
		`SELECT `+notificationColumns+` FROM notifications WHERE request_id = ? ORDER BY round, contact_order`,
		requestID)
}

func (r *EmergencyRepo) ListPendingByTechnician(ctx context.Context, technicianID uuid.UUID, asOf time.Time) ([]*domain.Notification, error) {
	return r.listNotifications(ctx, "sqlite.Emergency.ListPendingByTechnician",
		`SELECT `+notificationColumns+` FROM notifications
		WHERE technician_id = ? AND state = ? AND timeout_at >= ?
		ORDER BY sent_at DESC`,
		technicianID, domain.NotificationPending, toNano(asOf))
}

func (r *EmergencyRepo) FindExpiredPending(ctx context.Context, asOf time.Time) ([]*domain.Notification, error) {
	return r.listNotifications(ctx, "sqlite.Emergency.FindExpiredPending",
		`SELECT `+notificationColumns+` FROM notifications
		WHERE state = ? AND timeout_at < ?
		ORDER BY timeout_at`,
		domain.NotificationPending, toNano(asOf))
}

func (r *EmergencyRepo) ListStranded(ctx context.Context, createdBefore time.Time, maxRadiusKM float64) ([]uuid.UUID, error) {
	const op = "sqlite.Emergency.ListStranded"

	rows, err := r.db.QueryContext(ctx, `SELECT r.id FROM emergency_requests r
		WHERE r.state = ? AND r.created_at < ? AND r.search_radius_km < ?
		AND NOT EXISTS (SELECT 1 FROM notifications n WHERE n.request_id = r.id AND n.state = ?)
		ORDER BY r.created_at`,
		domain.RequestPending, toNano(createdBefore), maxRadiusKM, domain.NotificationPending)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() { _ = rows.Close() }()

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
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer func() { _ = rows.Close() }()

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
	const op = "sqlite.Emergency.Transition"

	// acceptance must also assign the request; it goes through Accept
	if !t.To.IsTerminal() || t.To == domain.NotificationAccepted {
		return nil, fmt.Errorf("%s: target state %q: %w", op, t.To, e.ErrInvalidInput)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rollback(tx)

	if err := r.transition(ctx, tx, op, t); err != nil {
		return nil, err
	}
	n, err := r.getNotification(ctx, tx, t.NotificationID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	return n, nil
}

// transition is the compare-and-set on the pending state every terminal move
// goes through.
func (r *EmergencyRepo) transition(ctx context.Context, tx *sql.Tx, op string, t domain.NotificationTransition) error {
	var respondedAt sql.NullInt64
	if t.RespondedState() {
		respondedAt = sql.NullInt64{Int64: toNano(t.At), Valid: true}
	}

	res, err := tx.ExecContext(ctx, `UPDATE notifications
		SET state = ?, responded_at = ?, responder_lat = ?, responder_lng = ?
		WHERE id = ? AND state = ?`,
		t.To, respondedAt, nullFloat(t.ResponderLat), nullFloat(t.ResponderLng),
		t.NotificationID, domain.NotificationPending,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	if affected == 1 {
		return nil
	}

	var state domain.NotificationState
	err = tx.QueryRowContext(ctx, `SELECT state FROM notifications WHERE id = ?`, t.NotificationID).Scan(&state)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	return conflict(op, "notification is %s", state)
}

func (r *EmergencyRepo) Accept(ctx context.Context, t domain.NotificationTransition) (*domain.EmergencyRequest, error) {
	const op = "sqlite.Emergency.Accept"

	t.To = domain.NotificationAccepted

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, e.WrapError(ctx, op, err)
	}
	defer rollback(tx)

	n, err := r.getNotification(ctx, tx, t.NotificationID)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `UPDATE emergency_requests
		SET state = ?, technician_id = ?, assigned_at = ?
		WHERE id = ? AND state = ?`,
		domain.RequestAssigned, n.TechnicianID, toNano(t.At), n.RequestID, domain.RequestPending,
	)
	if err != nil {
		r.logger.Error("assign request failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	if affected, err := res.RowsAffected(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	} else if affected == 0 {
		return nil, conflict(op, "request %s already left pending", n.RequestID)
	}

	if err := r.transition(ctx, tx, op, t); err != nil {
		return nil, err
	}

	res, err = tx.ExecContext(ctx, `UPDATE notifications SET state = ?
		WHERE request_id = ? AND state = ? AND id <> ?`,
		domain.NotificationCancelled, n.RequestID, domain.NotificationPending, n.ID,
	)
	if err != nil {
		r.logger.Error("cancel siblings failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	cancelled, _ := res.RowsAffected()

	req, err := r.getRequest(ctx, tx, n.RequestID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, e.WrapError(ctx, op, err)
	}

	r.logger.Debug("request assigned",
		slog.String("request_id", n.RequestID.String()),
		slog.String("technician_id", n.TechnicianID.String()),
		slog.Int64("cancelled", cancelled),
	)
	return req, nil
}
