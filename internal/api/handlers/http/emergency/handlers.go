package emergency

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Dispatcher interface {
	CreateEmergency(ctx context.Context, req domain.CreateEmergencyRequest) (*domain.EmergencyStatus, error)
	Respond(ctx context.Context, req domain.RespondRequest) (*domain.EmergencyStatus, error)
	GetStatus(ctx context.Context, requestID uuid.UUID) (*domain.EmergencyStatus, error)
	PendingForTechnician(ctx context.Context, technicianID uuid.UUID) ([]domain.Notification, error)
}

type Handler struct {
	logger     *slog.Logger
	Dispatcher Dispatcher
}

func NewHandler(logger *slog.Logger, dispatcher Dispatcher) *Handler {
	return &Handler{
		logger:     logger,
		Dispatcher: dispatcher,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) EmergencyCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("EmergencyCreate", slog.String("remote", r.RemoteAddr))

	var req domain.CreateEmergencyRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		l.Warn("invalid request", slog.String("error", err.Error()))
		h.handleError(w, r, err)
		return
	}

	status, err := h.Dispatcher.CreateEmergency(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("emergency created",
		slog.String("id", status.Request.ID.String()),
		slog.Int("notified", len(status.Notifications)),
	)
	h.writeJSON(w, http.StatusCreated, status)
}

func (h *Handler) EmergencyRespond(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.RespondRequest
	if err := middleware.DecodeJSON(w, r, &req); err != nil {
		l.Warn("invalid request", slog.String("error", err.Error()))
		h.handleError(w, r, err)
		return
	}

	status, err := h.Dispatcher.Respond(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("emergency response recorded",
		slog.String("notification_id", req.NotificationID.String()),
		slog.Bool("accept", *req.Accept),
		slog.String("state", string(status.Request.State)),
	)
	h.writeJSON(w, http.StatusOK, status)
}

func (h *Handler) EmergencyGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	status, err := h.Dispatcher.GetStatus(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, status)
}

func (h *Handler) TechnicianPending(w http.ResponseWriter, r *http.Request) {
	id, ok := h.uuidParam(w, r, "id")
	if !ok {
		return
	}

	pending, err := h.Dispatcher.PendingForTechnician(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, domain.PendingNotificationsResponse{
		Notifications: pending,
		Count:         len(pending),
	})
}

func (h *Handler) uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", raw), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
