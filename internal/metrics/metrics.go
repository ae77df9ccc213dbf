package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PurchasesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_purchases_recorded_total",
			Help: "Number of purchases persisted, by provider",
		},
		[]string{"provider"},
	)

	DuplicatePurchases = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_duplicate_purchases_total",
			Help: "Number of purchase recordings resolved as idempotent duplicates",
		},
	)

	WebhookRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_webhook_rejected_total",
			Help: "Number of webhook callbacks rejected before recording",
		},
		[]string{"reason"},
	)

	ProviderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_provider_errors_total",
			Help: "Number of failed outbound provider calls",
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(PurchasesRecorded, DuplicatePurchases, WebhookRejected, ProviderErrors)
}
