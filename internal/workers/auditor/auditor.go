package auditor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"tgscope/internal/metrics"
	"tgscope/internal/ports"
)

// Auditor buffers lookup events and writes them to the repository from a
// background goroutine. Submit never blocks: when the buffer is full the
// event is dropped and counted instead.
type Auditor struct {
	repo    ports.AuditRepository
	events  chan ports.LookupEvent
	metrics *metrics.Collector
	logger  *zap.Logger
}

const defaultBuffer = 256

func New(repo ports.AuditRepository, buffer int, m *metrics.Collector, logger *zap.Logger) *Auditor {
	if buffer < 1 {
		buffer = defaultBuffer
	}
	return &Auditor{
		repo:    repo,
		events:  make(chan ports.LookupEvent, buffer),
		metrics: m,
		logger:  logger,
	}
}

// Submit queues an event for persistence, dropping it when the buffer is
// full.
func (a *Auditor) Submit(ev ports.LookupEvent) {
	select {
	case a.events <- ev:
	default:
		a.metrics.AuditDropped.Inc()
		a.logger.Warn("audit buffer full, dropping event", zap.String("handle", ev.Handle))
	}
}

// Run drains events until ctx is canceled, then flushes whatever is still
// buffered before returning.
func (a *Auditor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			a.flush()
			return
		case ev := <-a.events:
			a.write(ev)
		}
	}
}

func (a *Auditor) flush() {
	for {
		select {
		case ev := <-a.events:
			a.write(ev)
		default:
			return
		}
	}
}

func (a *Auditor) write(ev ports.LookupEvent) {
	// Writes run off the request path; cap them independently so a slow
	// repository cannot wedge the drain loop during shutdown.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.repo.Record(ctx, ev); err != nil {
		a.logger.Warn("audit write failed", zap.String("id", ev.ID), zap.Error(err))
		return
	}
	a.metrics.AuditWritten.Inc()
}

// NopRepository satisfies ports.AuditRepository when no database is
// configured; the service then runs fully stateless.
type NopRepository struct{}

func (NopRepository) Record(ctx context.Context, ev ports.LookupEvent) error { return nil }

func (NopRepository) Recent(ctx context.Context, limit int) ([]ports.LookupEvent, error) {
	return nil, nil
}
