package models

// Feedback is a customer review attached to a completed order.
// The backend field is spelled "desciption"; the typo is part of the wire
// contract and must not be corrected here.
type Feedback struct {
	ID          int64  `json:"id"`
	OrderID     int64  `json:"orderId"`
	Description string `json:"desciption"`
}
