package auditor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tgscope/internal/metrics"
	"tgscope/internal/ports"
	"tgscope/internal/workers/auditor"
)

type captureRepo struct {
	mu     sync.Mutex
	events []ports.LookupEvent
}

func (r *captureRepo) Record(ctx context.Context, ev ports.LookupEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *captureRepo) Recent(ctx context.Context, limit int) ([]ports.LookupEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.LookupEvent, len(r.events))
	copy(out, r.events)
	return out, nil
}

func (r *captureRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func TestAuditor_WritesSubmittedEvents(t *testing.T) {
	repo := &captureRepo{}
	collector := metrics.NewCollector(prometheus.NewRegistry())
	a := auditor.New(repo, 8, collector, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		a.Run(ctx)
		close(done)
	}()

	a.Submit(ports.LookupEvent{ID: "1", Handle: "alice", Kind: "user", OK: true, At: time.Now()})
	a.Submit(ports.LookupEvent{ID: "2", Handle: "ghost", Kind: "unknown", Error: "not found", At: time.Now()})

	require.Eventually(t, func() bool { return repo.len() == 2 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	events, err := repo.Recent(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "2", events[1].ID)
}

// Submit must never block the request path: with no drain loop running
// and a full buffer, extra events are dropped and counted.
func TestAuditor_DropsWhenBufferFull(t *testing.T) {
	collector := metrics.NewCollector(prometheus.NewRegistry())
	a := auditor.New(&captureRepo{}, 1, collector, zap.NewNop())

	submitted := make(chan struct{})
	go func() {
		a.Submit(ports.LookupEvent{ID: "1"})
		a.Submit(ports.LookupEvent{ID: "2"})
		a.Submit(ports.LookupEvent{ID: "3"})
		close(submitted)
	}()

	select {
	case <-submitted:
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full buffer")
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.AuditDropped))
}

// Canceling the run loop flushes what is still buffered.
func TestAuditor_FlushOnShutdown(t *testing.T) {
	repo := &captureRepo{}
	collector := metrics.NewCollector(prometheus.NewRegistry())
	a := auditor.New(repo, 8, collector, zap.NewNop())

	a.Submit(ports.LookupEvent{ID: "1"})
	a.Submit(ports.LookupEvent{ID: "2"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	a.Run(ctx)

	assert.Equal(t, 2, repo.len())
}
