package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
	"github.com/Neb-Ur/service-app-backend/pkg/e"
)

// PushQueue is the consuming side of the durable push queue.
type PushQueue interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.PushMessage, error)
}

type PushSender struct {
	logger    *slog.Logger
	queue     PushQueue
	transport PushTransport
	metrics   Recorder

	maxRetries int
	backoff    time.Duration
}

func NewPushSender(logger *slog.Logger, queue PushQueue, transport PushTransport, metrics Recorder) *PushSender {
	if metrics == nil {
		metrics = NoopRecorder{}
	}
	return &PushSender{
		logger:     logger,
		queue:      queue,
		transport:  transport,
		metrics:    metrics,
		maxRetries: 3,
		backoff:    time.Second,
	}
}

// WithBackoff sets the base delay between delivery attempts.
func (s *PushSender) WithBackoff(d time.Duration) *PushSender {
	s.backoff = d
	return s
}

// Run drains the queue until ctx is cancelled.
func (s *PushSender) Run(ctx context.Context) {
	s.logger.Info("push sender started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("push sender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		msg, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrPushQueueEmpty) || ctx.Err() != nil {
				continue
			}
			s.logger.Error("push queue pop failed", slog.Any("error", err))
			if !sleepCtx(ctx, 500*time.Millisecond) {
				return
			}
			continue
		}

		_ = s.Send(ctx, msg)
	}
}

// Send delivers one message with linear backoff between attempts. The error
// is only informative; dispatch never waits on it.
func (s *PushSender) Send(ctx context.Context, msg domain.PushMessage) error {
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		lastErr = s.transport.Deliver(ctx, msg)
		if lastErr == nil {
			s.metrics.PushResult(msg.Kind, true)
			return nil
		}

		s.logger.Warn("push delivery failed",
			slog.Int("attempt", attempt),
			slog.String("kind", string(msg.Kind)),
			slog.String("recipient_id", msg.RecipientID.String()),
			slog.String("reason", lastErr.Error()),
		)

		if attempt < s.maxRetries && !sleepCtx(ctx, time.Duration(attempt)*s.backoff) {
			return ctx.Err()
		}
	}

	s.metrics.PushResult(msg.Kind, false)
	s.logger.Error("push dropped after retries",
		slog.String("message_id", msg.ID.String()),
		slog.String("kind", string(msg.Kind)),
	)
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// LogTransport only records the message; used in local runs.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Deliver(_ context.Context, msg domain.PushMessage) error {
	t.logger.Info("push",
		slog.String("kind", string(msg.Kind)),
		slog.String("recipient_id", msg.RecipientID.String()),
		slog.String("request_id", msg.RequestID.String()),
		slog.String("summary", msg.Summary),
	)
	return nil
}

type WebhookTransport struct {
	url  string
	http *http.Client
}

func NewWebhookTransport(url string) *WebhookTransport {
	return &WebhookTransport{
		url:  url,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

func (t *WebhookTransport) Deliver(ctx context.Context, msg domain.PushMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return e.Wrap("marshal push message", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return e.Wrap("create webhook request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.http.Do(req)
	if err != nil {
		return err
	}
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded %s", resp.Status)
	}
	return nil
}
