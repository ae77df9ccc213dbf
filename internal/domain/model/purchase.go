package model

import "time"

// PaymentStatus describes the recorded outcome of a payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentProvider identifies which processor confirmed the payment.
type PaymentProvider string

const (
	ProviderPayPal   PaymentProvider = "paypal"
	ProviderVerifone PaymentProvider = "verifone"
)

// Purchase is one buyer's paid access to one course. Rows are append-only:
// a purchase is recorded once, after provider-side verification, and never
// mutated afterwards.
type Purchase struct {
	ID          string
	BuyerID     string
	CourseID    string
	Amount      float64
	Currency    string
	Status      PaymentStatus
	Provider    PaymentProvider
	ProviderRef string
	CreatedAt   time.Time
}
