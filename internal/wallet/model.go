package wallet

import "time"

// Wallet holds a user's balance in kobo, the minor unit of NGN. Balances are
// only ever mutated through the repository's Credit and Debit operations.
type Wallet struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	BalanceKobo int64     `db:"balance_kobo" json:"balance_kobo"`
	Currency    string    `db:"currency" json:"currency"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type FundReceipt struct {
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	UserID        string    `json:"userId"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CompletedAt   time.Time `json:"completedAt"`
	Message       string    `json:"message"`
}

type PayBillReceipt struct {
	TransactionID string    `json:"transactionId"`
	MessageID     string    `json:"messageId"`
	Status        string    `json:"status"`
	Type          string    `json:"type"`
	UserID        string    `json:"userId"`
	BillType      string    `json:"billType"`
	BillerCode    string    `json:"billerCode"`
	CustomerID    string    `json:"customerId"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
	Message       string    `json:"message"`
}

type Balance struct {
	UserID           string    `json:"userId"`
	AvailableBalance float64   `json:"availableBalance"`
	Currency         string    `json:"currency"`
	LastUpdated      time.Time `json:"lastUpdated"`
}
