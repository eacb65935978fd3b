package models

import "sync"

// BatchRequest is the payload for POST /api/v1/batch.
type BatchRequest struct {
	// Jobs are the pages to fetch and parse. Required.
	Jobs []ParseRequest `json:"jobs" yaml:"jobs" binding:"required,min=1,max=100,dive"`

	// WebhookURL receives a "batch.completed" event when every job is done.
	WebhookURL string `json:"webhook_url,omitempty" yaml:"webhook_url" binding:"omitempty,url"`
}

// BatchResponse is the immediate response for POST /api/v1/batch.
type BatchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// BatchStatusResponse is the response for GET /api/v1/batch/:id.
type BatchStatusResponse struct {
	ID        string           `json:"id"`
	Status    string           `json:"status"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
	Results   []*ParseResponse `json:"results,omitempty"`
}

// Batch job states.
const (
	BatchProcessing = "processing"
	BatchCompleted  = "completed"
	BatchPartial    = "partial"
	BatchFailed     = "failed"
)

// BatchJob tracks an in-progress batch. Results keep the order of the
// request's jobs.
type BatchJob struct {
	ID        string
	Status    string
	Total     int
	Completed int
	Results   []*ParseResponse
	CreatedAt int64 // unix timestamp

	mu sync.Mutex
}

// Record stores the result of job i.
func (j *BatchJob) Record(i int, resp *ParseResponse) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Results[i] = resp
	j.Completed++
}

// Finish sets the final status from the recorded results.
func (j *BatchJob) Finish() {
	j.mu.Lock()
	defer j.mu.Unlock()
	failed := 0
	for _, r := range j.Results {
		if r == nil || !r.Success {
			failed++
		}
	}
	switch {
	case failed == j.Total:
		j.Status = BatchFailed
	case failed > 0:
		j.Status = BatchPartial
	default:
		j.Status = BatchCompleted
	}
}

// Snapshot returns a copy safe to serialise while workers are running.
func (j *BatchJob) Snapshot() BatchStatusResponse {
	j.mu.Lock()
	defer j.mu.Unlock()
	results := make([]*ParseResponse, len(j.Results))
	copy(results, j.Results)
	return BatchStatusResponse{
		ID:        j.ID,
		Status:    j.Status,
		Completed: j.Completed,
		Total:     j.Total,
		Results:   results,
	}
}
