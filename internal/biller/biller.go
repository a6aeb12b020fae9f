package biller

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"
)

type BillType string

const (
	BillTypeAirtime BillType = "AIRTIME"
	BillTypeCableTV BillType = "CABLE_TV"
)

// RejectionAmount is the naira amount the simulated provider always rejects.
// Kept as a named constant so fault injection stays reproducible in tests.
const RejectionAmount float64 = 999

var (
	ErrInvalidCustomerID = errors.New("customer ID must contain only digits")
	ErrInvalidPhone      = errors.New("invalid phone number: must be exactly 11 digits")
	ErrInvalidSmartCard  = errors.New("invalid smartcard number: must be exactly 10 digits")
	ErrUnknownBillType   = errors.New("unknown bill type")
	ErrProviderRejected  = errors.New("external provider rejected the transaction")
)

func (b BillType) Valid() bool {
	return b == BillTypeAirtime || b == BillTypeCableTV
}

type Receipt struct {
	ProviderTxnID string
	Status        string
	Message       string
}

// Gateway simulates the external billing provider API.
type Gateway struct {
	latency time.Duration
}

func New(latency time.Duration) *Gateway {
	return &Gateway{latency: latency}
}

// PayBill validates the customer reference, waits out the simulated network
// latency and settles the payment. Validation failures return before any
// latency is applied, mirroring a synchronous upstream rejection.
func (g *Gateway) PayBill(ctx context.Context, billType BillType, customerID string, amount float64) (*Receipt, error) {
	if err := ValidateCustomer(billType, customerID); err != nil {
		return nil, err
	}

	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if amount == RejectionAmount {
		return nil, ErrProviderRejected
	}

	var message string
	if billType == BillTypeAirtime {
		message = fmt.Sprintf("Airtime sent to %s", customerID)
	} else {
		message = fmt.Sprintf("Cable TV subscription renewed for %s", customerID)
	}

	return &Receipt{
		ProviderTxnID: fmt.Sprintf("ext_%06d", rand.Intn(1000000)),
		Status:        "SUCCESS",
		Message:       message,
	}, nil
}

// ValidateCustomer applies the provider's customer-reference rules: digits
// only, 11 of them for airtime, 10 for cable. Callers run this before
// debiting so malformed requests never create a job.
func ValidateCustomer(billType BillType, customerID string) error {
	if !allDigits(customerID) {
		return ErrInvalidCustomerID
	}
	switch billType {
	case BillTypeAirtime:
		if len(customerID) != 11 {
			return ErrInvalidPhone
		}
	case BillTypeCableTV:
		if len(customerID) != 10 {
			return ErrInvalidSmartCard
		}
	default:
		return ErrUnknownBillType
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
