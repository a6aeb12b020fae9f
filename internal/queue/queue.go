package queue

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/John-Akins/jago-backend/internal/biller"
)

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusSuccess    Status = "SUCCESS"
	StatusFailure    Status = "FAILURE"
)

var (
	ErrJobNotFound  = errors.New("payment job not found")
	ErrDuplicateJob = errors.New("payment job with this transaction ID already exists")
)

// Job is one bill-payment attempt, tracked independently of the request that
// created it. TransactionID is the business key supplied by the caller;
// MessageID is assigned by the queue, mirroring broker transport ids.
type Job struct {
	TransactionID string          `json:"transactionId"`
	MessageID     string          `json:"messageId"`
	UserID        string          `json:"userId"`
	BillType      biller.BillType `json:"billType"`
	BillerCode    string          `json:"billerCode"`
	CustomerID    string          `json:"customerId"`
	Amount        float64         `json:"amount"`
	AmountKobo    int64           `json:"amountKobo"`
	Status        Status          `json:"status"`
	ProviderTxnID string          `json:"providerTxnId,omitempty"`
	ErrorMessage  string          `json:"errorMessage,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// UpdateOptions carries the optional fields set alongside a status change.
type UpdateOptions struct {
	ProviderTxnID string
	ErrorMessage  string
}

// Queue is an in-memory store of payment jobs keyed by transaction ID. It is
// the single source of truth for job status: all status reads go through it.
type Queue struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

func New() *Queue {
	return &Queue{jobs: make(map[string]*Job)}
}

// Enqueue stores the job with status PENDING and returns the queue-assigned
// message ID.
func (q *Queue) Enqueue(job Job) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, exists := q.jobs[job.TransactionID]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateJob, job.TransactionID)
	}

	now := time.Now()
	job.MessageID = "msg_" + uuid.NewString()
	job.Status = StatusPending
	job.CreatedAt = now
	job.UpdatedAt = now

	stored := job
	q.jobs[job.TransactionID] = &stored

	return job.MessageID, nil
}

// PendingJobs returns a snapshot of all PENDING jobs, oldest first.
func (q *Queue) PendingJobs() []Job {
	return q.JobsByStatus(StatusPending)
}

// JobsByStatus returns a snapshot of jobs in the given status, ordered by
// creation time, oldest first.
func (q *Queue) JobsByStatus(status Status) []Job {
	q.mu.RLock()
	defer q.mu.RUnlock()

	var out []Job
	for _, j := range q.jobs {
		if j.Status == status {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		return out[i].CreatedAt.Before(out[k].CreatedAt)
	})
	return out
}

// UpdateStatus moves a job to the given status and refreshes its UpdatedAt.
func (q *Queue) UpdateStatus(transactionID string, status Status, opts UpdateOptions) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	j, exists := q.jobs[transactionID]
	if !exists {
		return fmt.Errorf("%w: %s", ErrJobNotFound, transactionID)
	}

	j.Status = status
	j.UpdatedAt = time.Now()
	if opts.ProviderTxnID != "" {
		j.ProviderTxnID = opts.ProviderTxnID
	}
	if opts.ErrorMessage != "" {
		j.ErrorMessage = opts.ErrorMessage
	}

	return nil
}

// GetByTransactionID returns a snapshot of the job.
func (q *Queue) GetByTransactionID(transactionID string) (Job, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	j, exists := q.jobs[transactionID]
	if !exists {
		return Job{}, fmt.Errorf("%w: %s", ErrJobNotFound, transactionID)
	}
	return *j, nil
}

// Depth reports the number of PENDING jobs.
func (q *Queue) Depth() int {
	q.mu.RLock()
	defer q.mu.RUnlock()

	depth := 0
	for _, j := range q.jobs {
		if j.Status == StatusPending {
			depth++
		}
	}
	return depth
}
