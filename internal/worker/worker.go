package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/John-Akins/jago-backend/internal/biller"
	"github.com/John-Akins/jago-backend/internal/logger"
	"github.com/John-Akins/jago-backend/internal/metrics"
	"github.com/John-Akins/jago-backend/internal/notification"
	"github.com/John-Akins/jago-backend/internal/queue"
)

// PaymentResult is handed to the registered ResultSink once a job reaches a
// terminal status.
type PaymentResult struct {
	Success bool
	Error   string
}

// ResultSink receives terminal payment outcomes. The wallet service registers
// itself here to run the compensation path on failures.
type ResultSink interface {
	HandlePaymentResult(ctx context.Context, job queue.Job, result PaymentResult)
}

// Worker polls the job queue on a fixed interval and drives each PENDING job
// through the provider. It is the only component that advances a job past
// PENDING.
type Worker struct {
	queue    *queue.Queue
	gateway  *biller.Gateway
	notifier *notification.Service

	pollInterval time.Duration

	mu   sync.Mutex
	sink ResultSink

	quit    chan struct{}
	done    chan struct{}
	running bool

	stopOnce sync.Once
}

type Options struct {
	PollInterval time.Duration
}

func New(q *queue.Queue, gateway *biller.Gateway, notifier *notification.Service, opts Options) *Worker {
	if opts.PollInterval == 0 {
		opts.PollInterval = 2 * time.Second
	}
	return &Worker{
		queue:        q,
		gateway:      gateway,
		notifier:     notifier,
		pollInterval: opts.PollInterval,
	}
}

// RegisterResultSink wires the component that handles terminal outcomes.
func (w *Worker) RegisterResultSink(sink ResultSink) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sink = sink
}

func (w *Worker) resultSink() ResultSink {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sink
}

// Start launches the polling loop. Ticks run on a single goroutine, so a slow
// tick delays the next one instead of overlapping it: no job can be observed
// PENDING by two ticks at once.
func (w *Worker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.quit = make(chan struct{})
	w.done = make(chan struct{})
	w.stopOnce = sync.Once{}
	w.mu.Unlock()

	logger.Info("payment worker started", "poll_interval", w.pollInterval.String())

	quit, done := w.quit, w.done
	go func() {
		defer close(done)

		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				w.Tick(context.Background())
			}
		}
	}()
}

// Stop cancels future ticks and waits for the loop to finish its current one.
// An in-flight provider call is allowed to complete so no job is left stuck in
// PROCESSING with an ambiguous outcome.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	w.stopOnce.Do(func() {
		close(w.quit)
		<-w.done

		w.mu.Lock()
		w.running = false
		w.mu.Unlock()

		logger.Info("payment worker stopped")
	})
}

func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Tick processes every job currently PENDING, oldest first, sequentially.
// Sequential processing keeps per-user debit and credit ordering trivial.
func (w *Worker) Tick(ctx context.Context) {
	pending := w.queue.PendingJobs()
	metrics.SetQueueDepth(len(pending))
	if len(pending) == 0 {
		return
	}

	logger.Info("processing pending payment jobs", "count", len(pending))

	for _, job := range pending {
		w.processJob(ctx, job)
	}

	metrics.SetQueueDepth(w.queue.Depth())
}

// processJob advances one job to a terminal status. Panics are contained so a
// single bad job cannot abort the rest of the tick.
func (w *Worker) processJob(ctx context.Context, job queue.Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while processing payment job", "transaction_id", job.TransactionID, "panic", r)
		}
	}()

	logger.Info("processing payment job", "transaction_id", job.TransactionID, "bill_type", string(job.BillType))

	if err := w.queue.UpdateStatus(job.TransactionID, queue.StatusProcessing, queue.UpdateOptions{}); err != nil {
		logger.Error("failed to mark job processing", "transaction_id", job.TransactionID, "error", err)
		return
	}

	receipt, err := w.gateway.PayBill(ctx, job.BillType, job.CustomerID, job.Amount)
	if err != nil {
		w.failJob(ctx, job, err)
		return
	}

	if uerr := w.queue.UpdateStatus(job.TransactionID, queue.StatusSuccess, queue.UpdateOptions{ProviderTxnID: receipt.ProviderTxnID}); uerr != nil {
		logger.Error("failed to mark job success", "transaction_id", job.TransactionID, "error", uerr)
	}
	metrics.RecordBillPayment(string(job.BillType), string(queue.StatusSuccess))
	logger.Info("bill payment successful", "transaction_id", job.TransactionID, "provider_txn_id", receipt.ProviderTxnID)

	if _, nerr := w.notifier.BillPaymentSuccess(ctx, job.UserID, job.TransactionID, job.Amount, string(job.BillType), job.CustomerID); nerr != nil {
		logger.Error("failed to send success notification", "transaction_id", job.TransactionID, "error", nerr)
	}

	if sink := w.resultSink(); sink != nil {
		sink.HandlePaymentResult(ctx, job, PaymentResult{Success: true})
	}
}

func (w *Worker) failJob(ctx context.Context, job queue.Job, cause error) {
	if errors.Is(cause, context.Canceled) || errors.Is(cause, context.DeadlineExceeded) {
		// Shutdown race, not a provider outcome. Leave the job for inspection.
		logger.Warn("provider call interrupted", "transaction_id", job.TransactionID, "error", cause)
		return
	}

	if uerr := w.queue.UpdateStatus(job.TransactionID, queue.StatusFailure, queue.UpdateOptions{ErrorMessage: cause.Error()}); uerr != nil {
		logger.Error("failed to mark job failure", "transaction_id", job.TransactionID, "error", uerr)
	}
	metrics.RecordBillPayment(string(job.BillType), string(queue.StatusFailure))
	logger.Error("bill payment failed", "transaction_id", job.TransactionID, "error", cause)

	if _, nerr := w.notifier.BillPaymentFailure(ctx, job.UserID, job.TransactionID, job.Amount, string(job.BillType), job.CustomerID, cause.Error()); nerr != nil {
		logger.Error("failed to send failure notification", "transaction_id", job.TransactionID, "error", nerr)
	}

	if sink := w.resultSink(); sink != nil {
		sink.HandlePaymentResult(ctx, job, PaymentResult{Success: false, Error: cause.Error()})
	}
}
