package model

// ProviderOrderStatus is the order state reported by the payment provider.
type ProviderOrderStatus string

const (
	ProviderOrderStatusCompleted ProviderOrderStatus = "COMPLETED"
	ProviderOrderStatusApproved  ProviderOrderStatus = "APPROVED"
)

// Paid reports whether the provider considers the order settled. APPROVED
// counts as paid because the in-page widget captures before invoking us.
func (s ProviderOrderStatus) Paid() bool {
	return s == ProviderOrderStatusCompleted || s == ProviderOrderStatusApproved
}

// ProviderOrder is the authoritative order state fetched from the payment
// provider. Amount and currency come from the provider, never from the
// buyer's browser.
type ProviderOrder struct {
	ID        string
	Status    ProviderOrderStatus
	Amount    float64
	Currency  string
	CustomRef string
}
