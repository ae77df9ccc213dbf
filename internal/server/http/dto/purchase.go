package dto

import "time"

// PurchaseResponse describes one entry of a buyer's purchase history.
type PurchaseResponse struct {
	CourseID  string    `json:"course_id"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"payment_status"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}
