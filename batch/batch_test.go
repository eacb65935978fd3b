package batch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/gridiron/models"
	"github.com/use-agent/gridiron/webhook"
)

type fakeRunner struct {
	running atomic.Int32
	peak    atomic.Int32
}

func (f *fakeRunner) Run(_ context.Context, req models.ParseRequest) (*models.ParseResponse, error) {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	if strings.HasPrefix(req.Page, "bad") {
		pe := models.NewParseError(models.ErrCodeUnknownPage, "unknown page type", nil)
		return &models.ParseResponse{Page: req.Page, Error: pe.ToDetail()}, pe
	}
	return &models.ParseResponse{Success: true, Page: req.Page}, nil
}

func waitDone(t *testing.T, job *models.BatchJob) models.BatchStatusResponse {
	t.Helper()
	var snap models.BatchStatusResponse
	require.Eventually(t, func() bool {
		snap = job.Snapshot()
		return snap.Status != models.BatchProcessing
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func TestManager_RunsAllJobsInOrder(t *testing.T) {
	r := &fakeRunner{}
	m := NewManager(r, 2, 0, "", nil)
	defer m.Stop()

	job := m.Submit(models.BatchRequest{Jobs: []models.ParseRequest{
		{Page: "hof"}, {Page: "draft"}, {Page: "award"}, {Page: "probowl"}, {Page: "season"},
	}})
	assert.True(t, strings.HasPrefix(job.ID, "batch-"))

	snap := waitDone(t, job)
	assert.Equal(t, models.BatchCompleted, snap.Status)
	assert.Equal(t, 5, snap.Completed)
	require.Len(t, snap.Results, 5)
	assert.Equal(t, "draft", snap.Results[1].Page)
	assert.LessOrEqual(t, r.peak.Load(), int32(2))

	got, ok := m.Get(job.ID)
	require.True(t, ok)
	assert.Same(t, job, got)
	_, ok = m.Get("batch-missing")
	assert.False(t, ok)
}

func TestManager_Status(t *testing.T) {
	m := NewManager(&fakeRunner{}, 4, 0, "", nil)
	defer m.Stop()

	partial := waitDone(t, m.Submit(models.BatchRequest{Jobs: []models.ParseRequest{{Page: "hof"}, {Page: "bad1"}}}))
	assert.Equal(t, models.BatchPartial, partial.Status)

	failed := waitDone(t, m.Submit(models.BatchRequest{Jobs: []models.ParseRequest{{Page: "bad1"}, {Page: "bad2"}}}))
	assert.Equal(t, models.BatchFailed, failed.Status)
	assert.Equal(t, models.ErrCodeUnknownPage, failed.Results[0].Error.Code)
}

func TestManager_WebhookOnCompletion(t *testing.T) {
	events := make(chan webhook.Event, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ev webhook.Event
		_ = json.NewDecoder(r.Body).Decode(&ev)
		assert.NotEmpty(t, r.Header.Get(webhook.SignatureHeader))
		events <- ev
	}))
	defer srv.Close()

	m := NewManager(&fakeRunner{}, 1, 0, "secret", nil)
	defer m.Stop()
	job := m.Submit(models.BatchRequest{Jobs: []models.ParseRequest{{Page: "hof"}}, WebhookURL: srv.URL})

	select {
	case ev := <-events:
		assert.Equal(t, webhook.EventBatchCompleted, ev.Type)
		assert.Equal(t, job.ID, ev.JobID)
	case <-time.After(3 * time.Second):
		t.Fatal("webhook never delivered")
	}
}

func TestManager_EvictsOldFinishedBatches(t *testing.T) {
	m := NewManager(&fakeRunner{}, 1, time.Hour, "", nil)
	defer m.Stop()
	job := m.Submit(models.BatchRequest{Jobs: []models.ParseRequest{{Page: "hof"}}})
	waitDone(t, job)

	m.evict(time.Now())
	_, ok := m.Get(job.ID)
	assert.True(t, ok)

	m.evict(time.Now().Add(2 * time.Hour))
	_, ok = m.Get(job.ID)
	assert.False(t, ok)
}
