package model

import "time"

// Course is a purchasable catalog item. The stored price is the only
// price authority for checkout link generation.
type Course struct {
	ID        string
	Title     string
	Price     float64
	Currency  string
	Active    bool
	CreatedAt time.Time
}
