// Package batch runs many parse requests in the background and keeps their
// results queryable for a while after they finish.
package batch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/use-agent/gridiron/metrics"
	"github.com/use-agent/gridiron/models"
	"github.com/use-agent/gridiron/webhook"
)

// Runner executes one parse request.
type Runner interface {
	Run(ctx context.Context, req models.ParseRequest) (*models.ParseResponse, error)
}

// Manager owns the batch store and the worker limit.
type Manager struct {
	runner        Runner
	workers       int
	retention     time.Duration
	webhookSecret string
	metrics       *metrics.Metrics

	store sync.Map // id -> *models.BatchJob
	stop  chan struct{}
}

// NewManager creates a Manager running at most workers jobs of a batch at
// once. Finished batches are dropped after retention.
func NewManager(runner Runner, workers int, retention time.Duration, webhookSecret string, m *metrics.Metrics) *Manager {
	if workers <= 0 {
		workers = 1
	}
	mgr := &Manager{
		runner:        runner,
		workers:       workers,
		retention:     retention,
		webhookSecret: webhookSecret,
		metrics:       m,
		stop:          make(chan struct{}),
	}
	if retention > 0 {
		go mgr.cleanupLoop()
	}
	return mgr
}

// Submit registers the batch and starts it in the background.
func (m *Manager) Submit(req models.BatchRequest) *models.BatchJob {
	job := &models.BatchJob{
		ID:        "batch-" + uuid.NewString(),
		Status:    models.BatchProcessing,
		Total:     len(req.Jobs),
		Results:   make([]*models.ParseResponse, len(req.Jobs)),
		CreatedAt: time.Now().Unix(),
	}
	m.store.Store(job.ID, job)
	if m.metrics != nil {
		m.metrics.BatchesActive.Inc()
	}
	slog.Info("batch submitted", "id", job.ID, "jobs", job.Total)
	go m.run(job, req)
	return job
}

// Get returns the batch with the given id.
func (m *Manager) Get(id string) (*models.BatchJob, bool) {
	v, ok := m.store.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*models.BatchJob), true
}

// Stop ends the retention sweep.
func (m *Manager) Stop() {
	select {
	case <-m.stop:
	default:
		close(m.stop)
	}
}

func (m *Manager) run(job *models.BatchJob, req models.BatchRequest) {
	sem := make(chan struct{}, m.workers)
	var wg sync.WaitGroup
	for i, r := range req.Jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, r models.ParseRequest) {
			defer wg.Done()
			defer func() { <-sem }()
			resp, _ := m.runner.Run(context.Background(), r)
			job.Record(i, resp)
		}(i, r)
	}
	wg.Wait()
	job.Finish()
	if m.metrics != nil {
		m.metrics.BatchesActive.Dec()
	}

	snap := job.Snapshot()
	slog.Info("batch finished", "id", job.ID, "status", snap.Status, "jobs", snap.Total)
	if req.WebhookURL != "" {
		webhook.DeliverAsync(req.WebhookURL, m.webhookSecret, &webhook.Event{
			Type:      webhook.EventBatchCompleted,
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data:      snap,
		})
	}
}

func (m *Manager) evict(now time.Time) {
	cutoff := now.Add(-m.retention).Unix()
	m.store.Range(func(key, value any) bool {
		job := value.(*models.BatchJob)
		if job.CreatedAt < cutoff && job.Snapshot().Status != models.BatchProcessing {
			m.store.Delete(key)
		}
		return true
	})
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			m.evict(now)
		case <-m.stop:
			return
		}
	}
}
