package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/John-Akins/jago-backend/internal/biller"
	"github.com/John-Akins/jago-backend/internal/notification"
	"github.com/John-Akins/jago-backend/internal/queue"
)

func setupHandler(t *testing.T) (*gin.Engine, *fakeLedger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ledger := newFakeLedger()
	q := queue.New()
	notifier := notification.New(nil, notification.Options{SendDelay: time.Millisecond, ReversalDelay: time.Millisecond})
	svc := NewService(ledger, q, notifier)
	h := NewHandler(svc)

	r := gin.New()
	// Stand-in for the auth middleware.
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "u-1")
		c.Next()
	})
	r.POST("/wallet/fund", h.Fund)
	r.POST("/wallet/pay-bill", h.PayBill)
	r.GET("/wallet/balance", h.Balance)
	r.GET("/wallet/transactions/:transactionID/status", h.TransactionStatus)

	return r, ledger
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFundHandler(t *testing.T) {
	r, ledger := setupHandler(t)
	_, err := ledger.CreateWallet(context.Background(), "u-1", "NGN")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/wallet/fund", gin.H{"amount": 1000, "currency": "NGN"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "COMPLETED")
	assert.Equal(t, int64(100000), ledger.balance("u-1"))
}

func TestFundHandler_BadAmount(t *testing.T) {
	r, _ := setupHandler(t)

	w := doJSON(t, r, http.MethodPost, "/wallet/fund", gin.H{"amount": -5})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPayBillHandler_Accepted(t *testing.T) {
	r, ledger := setupHandler(t)
	_, err := ledger.CreateWallet(context.Background(), "u-1", "NGN")
	require.NoError(t, err)
	require.NoError(t, ledger.Credit(context.Background(), "u-1", NairaToKobo(5000)))

	w := doJSON(t, r, http.MethodPost, "/wallet/pay-bill", gin.H{
		"billType":   "AIRTIME",
		"billerCode": "AIRTEL",
		"customerId": "08012345678",
		"amount":     500,
	})

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "PENDING")
	assert.Equal(t, NairaToKobo(4500), ledger.balance("u-1"))
}

func TestPayBillHandler_InsufficientFunds(t *testing.T) {
	r, ledger := setupHandler(t)
	_, err := ledger.CreateWallet(context.Background(), "u-1", "NGN")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/wallet/pay-bill", gin.H{
		"billType":   "AIRTIME",
		"billerCode": "AIRTEL",
		"customerId": "08012345678",
		"amount":     500,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrInsufficientFunds.Error())
}

func TestPayBillHandler_MalformedCustomerID(t *testing.T) {
	r, ledger := setupHandler(t)
	_, err := ledger.CreateWallet(context.Background(), "u-1", "NGN")
	require.NoError(t, err)
	require.NoError(t, ledger.Credit(context.Background(), "u-1", NairaToKobo(5000)))

	w := doJSON(t, r, http.MethodPost, "/wallet/pay-bill", gin.H{
		"billType":   "CABLE_TV",
		"billerCode": "DSTV",
		"customerId": "123",
		"amount":     500,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), biller.ErrInvalidSmartCard.Error())
	assert.Equal(t, NairaToKobo(5000), ledger.balance("u-1"))
}

func TestBalanceHandler(t *testing.T) {
	r, ledger := setupHandler(t)
	_, err := ledger.CreateWallet(context.Background(), "u-1", "NGN")
	require.NoError(t, err)
	require.NoError(t, ledger.Credit(context.Background(), "u-1", 123450))

	w := doJSON(t, r, http.MethodGet, "/wallet/balance", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var balance Balance
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &balance))
	assert.Equal(t, 1234.5, balance.AvailableBalance)
	assert.Equal(t, "NGN", balance.Currency)
}

func TestBalanceHandler_NoWallet(t *testing.T) {
	r, _ := setupHandler(t)

	w := doJSON(t, r, http.MethodGet, "/wallet/balance", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransactionStatusHandler_NotFound(t *testing.T) {
	r, _ := setupHandler(t)

	w := doJSON(t, r, http.MethodGet, "/wallet/transactions/txn_missing/status", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPayBillHandler_UnknownBillType(t *testing.T) {
	r, ledger := setupHandler(t)
	_, err := ledger.CreateWallet(context.Background(), "u-1", "NGN")
	require.NoError(t, err)
	require.NoError(t, ledger.Credit(context.Background(), "u-1", NairaToKobo(5000)))

	// Rejected at binding time by the billtype validation.
	w := doJSON(t, r, http.MethodPost, "/wallet/pay-bill", gin.H{
		"billType":   "ELECTRICITY",
		"billerCode": "IKEDC",
		"customerId": "1234567890",
		"amount":     500,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, NairaToKobo(5000), ledger.balance("u-1"))
}
