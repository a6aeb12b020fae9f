package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/John-Akins/jago-backend/internal/biller"
	"github.com/John-Akins/jago-backend/internal/logger"
	"github.com/John-Akins/jago-backend/internal/metrics"
	"github.com/John-Akins/jago-backend/internal/notification"
	"github.com/John-Akins/jago-backend/internal/queue"
	"github.com/John-Akins/jago-backend/internal/worker"
)

type PayBillInput struct {
	BillType   string
	BillerCode string
	CustomerID string
	Amount     float64
}

type Service interface {
	FundWallet(ctx context.Context, userID string, amount float64, currency string) (*FundReceipt, error)
	PayBill(ctx context.Context, userID string, in PayBillInput) (*PayBillReceipt, error)
	GetBalance(ctx context.Context, userID string) (*Balance, error)
	GetTransactionStatus(ctx context.Context, transactionID string) (queue.Job, error)

	// HandlePaymentResult is the worker's compensation hook: on provider
	// failure the optimistic debit is reversed with a credit.
	HandlePaymentResult(ctx context.Context, job queue.Job, result worker.PaymentResult)
}

type service struct {
	repo     Repository
	queue    *queue.Queue
	notifier *notification.Service
}

func NewService(repo Repository, q *queue.Queue, notifier *notification.Service) Service {
	return &service{
		repo:     repo,
		queue:    q,
		notifier: notifier,
	}
}

// FundWallet credits the ledger synchronously. Funding carries no provider
// risk, so it never goes through the job queue.
func (s *service) FundWallet(ctx context.Context, userID string, amount float64, currency string) (*FundReceipt, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	w, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Credit(ctx, userID, NairaToKobo(amount)); err != nil {
		return nil, err
	}

	metrics.RecordWalletFunding()
	logger.Info("wallet funded", "user_id", userID, "amount", amount, "currency", w.Currency)

	return &FundReceipt{
		TransactionID: "txn_fund_" + uuid.NewString(),
		Status:        "COMPLETED",
		Type:          "FUNDING",
		UserID:        userID,
		Amount:        amount,
		Currency:      w.Currency,
		CompletedAt:   time.Now(),
		Message:       fmt.Sprintf("Successfully funded wallet with %.2f %s", amount, w.Currency),
	}, nil
}

// PayBill debits the wallet optimistically and enqueues the payment job. The
// caller gets PENDING back immediately; the worker reconciles the outcome
// out-of-band.
func (s *service) PayBill(ctx context.Context, userID string, in PayBillInput) (*PayBillReceipt, error) {
	billType := biller.BillType(in.BillType)
	if !billType.Valid() {
		return nil, biller.ErrUnknownBillType
	}
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if err := biller.ValidateCustomer(billType, in.CustomerID); err != nil {
		return nil, err
	}

	amountKobo := NairaToKobo(in.Amount)

	if err := s.repo.Debit(ctx, userID, amountKobo); err != nil {
		return nil, err
	}

	transactionID := "txn_bill_" + uuid.NewString()
	job := queue.Job{
		TransactionID: transactionID,
		UserID:        userID,
		BillType:      billType,
		BillerCode:    in.BillerCode,
		CustomerID:    in.CustomerID,
		Amount:        in.Amount,
		AmountKobo:    amountKobo,
	}

	messageID, err := s.queue.Enqueue(job)
	if err != nil {
		// The debit already landed; give it back before reporting failure.
		if cerr := s.repo.Credit(ctx, userID, amountKobo); cerr != nil {
			logger.Error("failed to compensate debit after enqueue failure", "user_id", userID, "error", cerr)
		}
		return nil, fmt.Errorf("failed to enqueue payment job: %w", err)
	}

	logger.Info("bill payment queued", "transaction_id", transactionID, "message_id", messageID, "user_id", userID, "bill_type", in.BillType)

	return &PayBillReceipt{
		TransactionID: transactionID,
		MessageID:     messageID,
		Status:        string(queue.StatusPending),
		Type:          "BILL_PAYMENT",
		UserID:        userID,
		BillType:      in.BillType,
		BillerCode:    in.BillerCode,
		CustomerID:    in.CustomerID,
		Amount:        in.Amount,
		CreatedAt:     time.Now(),
		Message:       fmt.Sprintf("Bill payment for customer %s is being processed", in.CustomerID),
	}, nil
}

func (s *service) GetBalance(ctx context.Context, userID string) (*Balance, error) {
	w, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Balance{
		UserID:           userID,
		AvailableBalance: KoboToNaira(w.BalanceKobo),
		Currency:         w.Currency,
		LastUpdated:      w.UpdatedAt,
	}, nil
}

func (s *service) GetTransactionStatus(ctx context.Context, transactionID string) (queue.Job, error) {
	return s.queue.GetByTransactionID(transactionID)
}

// HandlePaymentResult runs after the worker settles a job. Success needs no
// ledger action, the optimistic debit stands. Failure credits the original
// amount back and tells the user the money was restored.
func (s *service) HandlePaymentResult(ctx context.Context, job queue.Job, result worker.PaymentResult) {
	if result.Success {
		logger.Info("payment confirmed, debit stands", "transaction_id", job.TransactionID)
		return
	}

	if err := s.repo.Credit(ctx, job.UserID, job.AmountKobo); err != nil {
		logger.Error("reversal credit failed", "transaction_id", job.TransactionID, "user_id", job.UserID, "error", err)
		return
	}

	metrics.RecordReversal()
	logger.Info("wallet reversal credited", "transaction_id", job.TransactionID, "user_id", job.UserID, "amount_kobo", job.AmountKobo)

	if _, err := s.notifier.WalletReversal(ctx, job.UserID, job.TransactionID, job.Amount, result.Error); err != nil {
		logger.Error("failed to send reversal notification", "transaction_id", job.TransactionID, "error", err)
	}
	if _, err := s.notifier.WalletReversalProcessed(ctx, job.UserID, job.TransactionID, job.Amount, result.Error); err != nil {
		logger.Error("failed to send reversal-processed notification", "transaction_id", job.TransactionID, "error", err)
	}
}
