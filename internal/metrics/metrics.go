package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jago_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jago_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BillPaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jago_bill_payments_total",
			Help: "Total number of bill payment jobs by terminal status",
		},
		[]string{"bill_type", "status"},
	)

	ReversalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jago_wallet_reversals_total",
			Help: "Total number of wallet reversal credits",
		},
	)

	WalletFundingsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jago_wallet_fundings_total",
			Help: "Total number of wallet funding transactions",
		},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jago_notifications_sent_total",
			Help: "Total number of notifications sent",
		},
		[]string{"type"},
	)

	PaymentQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "jago_payment_queue_depth",
			Help: "Number of payment jobs currently pending",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBillPayment(billType, status string) {
	BillPaymentsTotal.WithLabelValues(billType, status).Inc()
}

func RecordReversal() {
	ReversalsTotal.Inc()
}

func RecordWalletFunding() {
	WalletFundingsTotal.Inc()
}

func RecordNotification(notificationType string) {
	NotificationsSentTotal.WithLabelValues(notificationType).Inc()
}

func SetQueueDepth(depth int) {
	PaymentQueueDepth.Set(float64(depth))
}
