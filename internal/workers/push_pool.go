package workers

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Neb-Ur/service-app-backend/internal/domain"
)

// PushSink hands one message to its next stage: the Redis queue when it is
// enabled, otherwise the transport directly.
type PushSink func(ctx context.Context, msg domain.PushMessage) error

// PushPool decouples dispatch from push delivery. Dispatch never blocks; a
// full buffer drops the message.
type PushPool struct {
	numWorkers int
	jobs       chan domain.PushMessage
	sink       PushSink
	logger     *slog.Logger

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewPushPool(numWorkers, bufferSize int, sink PushSink, logger *slog.Logger) *PushPool {
	return &PushPool{
		numWorkers: numWorkers,
		jobs:       make(chan domain.PushMessage, bufferSize),
		sink:       sink,
		logger:     logger,
	}
}

func (p *PushPool) Start(ctx context.Context) {
	for i := 1; i <= p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *PushPool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-p.jobs:
			if !ok {
				return
			}
			if err := p.sink(ctx, msg); err != nil {
				p.logger.Error("push sink failed",
					slog.Int("worker", id),
					slog.String("kind", string(msg.Kind)),
					slog.String("recipient_id", msg.RecipientID.String()),
					slog.Any("error", err),
				)
			}
		}
	}
}

func (p *PushPool) Dispatch(msg domain.PushMessage) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		p.logger.Warn("push pool stopped, message dropped", slog.String("kind", string(msg.Kind)))
		return
	}

	select {
	case p.jobs <- msg:
	default:
		p.logger.Warn("push buffer full, message dropped",
			slog.String("kind", string(msg.Kind)),
			slog.String("recipient_id", msg.RecipientID.String()),
		)
	}
}

// Stop closes the buffer and waits for the workers. Messages still buffered
// are delivered unless the Start context is already done.
func (p *PushPool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}
