package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/John-Akins/jago-backend/internal/logger"
	"github.com/John-Akins/jago-backend/internal/metrics"
)

const outboxKey = "notifications:outbox"

type Type string

const (
	TypeSMS   Type = "SMS"
	TypeEmail Type = "EMAIL"
	TypePush  Type = "PUSH"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusSent    Status = "SENT"
	StatusFailed  Status = "FAILED"
)

// Record is one entry in the append-only notification log.
type Record struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	Type           Type                   `json:"type"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	Status         Status                 `json:"status"`
	NotificationID string                 `json:"notificationId,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

type Payload struct {
	UserID   string
	Type     Type
	Title    string
	Message  string
	Metadata map[string]interface{}
}

type Result struct {
	NotificationID string    `json:"notificationId"`
	Status         Status    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
}

// Service delivers user notifications. Delivery is simulated with a short
// delay and always succeeds; rendered messages are additionally pushed onto a
// redis outbox list for downstream senders, best effort.
type Service struct {
	mu      sync.RWMutex
	records []Record

	redis         *redis.Client
	sendDelay     time.Duration
	reversalDelay time.Duration
}

type Options struct {
	SendDelay     time.Duration
	ReversalDelay time.Duration
}

// New builds a Service. redisClient may be nil, in which case the outbox push
// is skipped (tests, local runs without redis).
func New(redisClient *redis.Client, opts Options) *Service {
	if opts.SendDelay == 0 {
		opts.SendDelay = 100 * time.Millisecond
	}
	if opts.ReversalDelay == 0 {
		opts.ReversalDelay = 300 * time.Millisecond
	}
	return &Service{
		redis:         redisClient,
		sendDelay:     opts.SendDelay,
		reversalDelay: opts.ReversalDelay,
	}
}

// Send appends a PENDING record, waits out the simulated delivery delay and
// marks it SENT.
func (s *Service) Send(ctx context.Context, payload Payload) (*Result, error) {
	now := time.Now()
	record := Record{
		ID:        "notif_record_" + uuid.NewString(),
		UserID:    payload.UserID,
		Type:      payload.Type,
		Title:     payload.Title,
		Message:   payload.Message,
		Status:    StatusPending,
		Metadata:  payload.Metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.records = append(s.records, record)
	idx := len(s.records) - 1
	s.mu.Unlock()

	select {
	case <-time.After(s.sendDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	notificationID := "notif_" + uuid.NewString()

	s.mu.Lock()
	s.records[idx].Status = StatusSent
	s.records[idx].NotificationID = notificationID
	s.records[idx].UpdatedAt = time.Now()
	s.mu.Unlock()

	s.pushOutbox(ctx, record, notificationID)

	metrics.RecordNotification(string(payload.Type))
	logger.Info("notification sent", "notification_id", notificationID, "user_id", payload.UserID, "title", payload.Title)

	return &Result{
		NotificationID: notificationID,
		Status:         StatusSent,
		Timestamp:      time.Now(),
	}, nil
}

// pushOutbox hands the rendered message to the redis outbox. Failures are
// logged and swallowed: the in-memory log remains the source of truth and
// delivery retries are out of scope.
func (s *Service) pushOutbox(ctx context.Context, record Record, notificationID string) {
	if s.redis == nil {
		return
	}

	record.Status = StatusSent
	record.NotificationID = notificationID
	data, err := json.Marshal(record)
	if err != nil {
		logger.Error("failed to marshal notification for outbox", "error", err)
		return
	}

	if err := s.redis.LPush(ctx, outboxKey, data).Err(); err != nil {
		logger.Error("failed to push notification to outbox", "error", err, "notification_id", notificationID)
	}
}

// ListByUser returns the user's notifications, newest first.
func (s *Service) ListByUser(userID string) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Record
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, k int) bool {
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	return out
}

// All returns every record, newest first.
func (s *Service) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	sort.Slice(out, func(i, k int) bool {
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	return out
}

// OutboxLength reports the redis outbox depth, 0 when no client is wired.
func (s *Service) OutboxLength(ctx context.Context) int64 {
	if s.redis == nil {
		return 0
	}
	length, _ := s.redis.LLen(ctx, outboxKey).Result()
	return length
}

func (s *Service) Close() error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Close()
}

// --- domain helpers ---

func (s *Service) BillPaymentSuccess(ctx context.Context, userID, transactionID string, amount float64, billType, customerID string) (*Result, error) {
	return s.Send(ctx, Payload{
		UserID:  userID,
		Type:    TypeSMS,
		Title:   "Bill Payment Successful",
		Message: fmt.Sprintf("Your %s payment of %.2f NGN to %s was successful. Transaction ID: %s", billType, amount, customerID, transactionID),
		Metadata: map[string]interface{}{
			"transactionId": transactionID,
			"amount":        amount,
			"billType":      billType,
			"customerId":    customerID,
		},
	})
}

func (s *Service) BillPaymentFailure(ctx context.Context, userID, transactionID string, amount float64, billType, customerID, reason string) (*Result, error) {
	return s.Send(ctx, Payload{
		UserID:  userID,
		Type:    TypeSMS,
		Title:   "Bill Payment Failed",
		Message: fmt.Sprintf("Your %s payment of %.2f NGN to %s failed. Reason: %s. Amount has been reversed to your wallet.", billType, amount, customerID, reason),
		Metadata: map[string]interface{}{
			"transactionId": transactionID,
			"amount":        amount,
			"billType":      billType,
			"customerId":    customerID,
			"reason":        reason,
		},
	})
}

func (s *Service) WalletReversal(ctx context.Context, userID, transactionID string, amount float64, reason string) (*Result, error) {
	return s.Send(ctx, Payload{
		UserID:  userID,
		Type:    TypeSMS,
		Title:   "Wallet Reversal",
		Message: fmt.Sprintf("Your wallet has been credited with %.2f NGN due to failed transaction. Transaction ID: %s. Reason: %s", amount, transactionID, reason),
		Metadata: map[string]interface{}{
			"transactionId": transactionID,
			"amount":        amount,
			"reason":        reason,
		},
	})
}

// WalletReversalProcessed confirms a completed reversal. The extra delay
// models the second-stage confirmation of the reversal pipeline.
func (s *Service) WalletReversalProcessed(ctx context.Context, userID, transactionID string, amount float64, reason string) (*Result, error) {
	select {
	case <-time.After(s.reversalDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	return s.Send(ctx, Payload{
		UserID:  userID,
		Type:    TypeSMS,
		Title:   "Wallet Reversal Processed",
		Message: fmt.Sprintf("Your wallet reversal of %.2f NGN has been processed successfully. Transaction ID: %s. The deducted amount has been restored to your wallet.", amount, transactionID),
		Metadata: map[string]interface{}{
			"transactionId":     transactionID,
			"amount":            amount,
			"reason":            reason,
			"reversalProcessed": true,
		},
	})
}
