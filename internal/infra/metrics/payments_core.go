package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		webhooksTotal,
		webhookRevenueTotal,
		checkoutsTotal,
	)
}

var (
	webhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripay_webhooks_total",
			Help: "Callback deliveries by reconciliation outcome.",
		},
		[]string{"outcome"},
	)

	webhookRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripay_webhook_revenue_total",
			Help: "Net amount credited through reconciled callbacks, labeled by currency.",
		},
		[]string{"currency"},
	)

	checkoutsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripay_checkouts_total",
			Help: "Checkout initiations by payment channel and result (created/free/failed).",
		},
		[]string{"method", "result"},
	)
)

func IncWebhook(outcome string) {
	webhooksTotal.WithLabelValues(norm(outcome)).Inc()
}

func AddWebhookRevenue(currency string, amount int64) {
	webhookRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amount))
}

func IncCheckout(method, result string) {
	checkoutsTotal.WithLabelValues(norm(method), norm(result)).Inc()
}
