package emergency

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Neb-Ur/service-app-backend/pkg/e"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, e.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrInvalidCoordinates):
		status = http.StatusBadRequest
	case errors.Is(err, e.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, e.ErrDeadline), errors.Is(err, e.ErrLockNotAcquired):
		status = http.StatusServiceUnavailable
	default:
		status = http.StatusInternalServerError
	}

	l := h.log(r)
	if status >= http.StatusInternalServerError {
		l.Error("request failed", slog.Int("status", status), slog.Any("error", err))
		h.writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
		return
	}
	l.Info("request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}
