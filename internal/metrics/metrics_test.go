package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("POST", "/wallet/pay-bill", "200", 0.05)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/wallet/pay-bill", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordBillPayment(t *testing.T) {
	BillPaymentsTotal.Reset()

	RecordBillPayment("AIRTIME", "SUCCESS")
	RecordBillPayment("AIRTIME", "SUCCESS")
	RecordBillPayment("CABLE_TV", "FAILURE")

	assert.Equal(t, float64(2), testutil.ToFloat64(BillPaymentsTotal.WithLabelValues("AIRTIME", "SUCCESS")))
	assert.Equal(t, float64(1), testutil.ToFloat64(BillPaymentsTotal.WithLabelValues("CABLE_TV", "FAILURE")))
}

func TestSetQueueDepth(t *testing.T) {
	SetQueueDepth(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(PaymentQueueDepth))

	SetQueueDepth(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(PaymentQueueDepth))
}
