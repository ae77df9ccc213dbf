package dto

// BuyLinkRequest asks for a signed hosted-checkout URL.
type BuyLinkRequest struct {
	CourseID string `json:"courseId"`
}

// BuyLinkResponse carries the generated checkout link.
type BuyLinkResponse struct {
	URL string `json:"url"`
}

// CaptureRequest is sent by the browser after the in-page payment widget
// reports approval. Amount is advisory; the server re-verifies with the
// provider before recording anything.
type CaptureRequest struct {
	OrderID  string  `json:"orderId"`
	CourseID string  `json:"courseId"`
	Amount   float64 `json:"amount"`
}

// CaptureResponse reports the outcome of an interactive capture.
type CaptureResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse is the generic error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
