package lookup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tgscope/internal/domain"
	"tgscope/internal/metrics"
	"tgscope/internal/ports"
	"tgscope/internal/report"
)

// Classifier resolves a handle to an entity kind.
type Classifier interface {
	Classify(ctx context.Context, handle string) (domain.EntityKind, error)
}

// Aggregator builds the normalized record for a classified handle.
type Aggregator interface {
	Aggregate(ctx context.Context, kind domain.EntityKind, handle string) (domain.Profile, error)
}

// Auditor receives one event per finished lookup. Implementations must
// not block the request path.
type Auditor interface {
	Submit(ev ports.LookupEvent)
}

// Service is the orchestrator: the only entry point the transport calls.
type Service struct {
	classifier Classifier
	aggregator Aggregator
	auditor    Auditor
	metrics    *metrics.Collector
	logger     *zap.Logger
}

func New(c Classifier, a Aggregator, aud Auditor, m *metrics.Collector, logger *zap.Logger) *Service {
	return &Service{classifier: c, aggregator: a, auditor: aud, metrics: m, logger: logger}
}

// Handle runs classify, aggregate and format in sequence and returns the
// report text. Failures of classification or the mandatory fetch come
// back as errors whose message carries the literal "Error: " prefix; that
// prefix is part of the response contract. No call is ever retried.
func (s *Service) Handle(ctx context.Context, handle string) (string, error) {
	start := time.Now()

	kind, err := s.classifier.Classify(ctx, handle)
	if err != nil {
		s.finish(handle, domain.KindUnknown, start, err)
		return "", fmt.Errorf("Error: %w", err)
	}
	if kind == domain.KindUnknown {
		s.finish(handle, kind, start, nil)
		return report.UnknownEntity, nil
	}

	prof, err := s.aggregator.Aggregate(ctx, kind, handle)
	if err != nil {
		s.finish(handle, kind, start, err)
		return "", fmt.Errorf("Error: %w", err)
	}

	s.finish(handle, kind, start, nil)
	return report.Format(prof), nil
}

func (s *Service) finish(handle string, kind domain.EntityKind, start time.Time, err error) {
	elapsed := time.Since(start)
	outcome := "ok"
	errText := ""
	if err != nil {
		outcome = "error"
		errText = err.Error()
	}

	s.metrics.LookupsTotal.WithLabelValues(string(kind), outcome).Inc()
	s.metrics.LookupDuration.Observe(elapsed.Seconds())

	if err != nil {
		s.logger.Warn("lookup failed",
			zap.String("handle", handle),
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	} else {
		s.logger.Info("lookup done",
			zap.String("handle", handle),
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", elapsed))
	}

	s.auditor.Submit(ports.LookupEvent{
		ID:       uuid.NewString(),
		Handle:   handle,
		Kind:     string(kind),
		OK:       err == nil,
		Error:    errText,
		Duration: elapsed,
		At:       start.UTC(),
	})
}
