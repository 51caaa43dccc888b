package models

import "time"

// DonationStatus tracks the payment lifecycle of a donation
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

// Donation is a payment order placed by a user (PostgreSQL)
type Donation struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	UserID            string         `json:"user_id" gorm:"index;not null"` // Firebase UID
	Amount            float64        `json:"amount" gorm:"not null"`
	Message           *string        `json:"message,omitempty"`
	Receipt           string         `json:"receipt" gorm:"size:64"`
	RazorpayOrderID   string         `json:"razorpay_order_id" gorm:"uniqueIndex;not null"`
	RazorpayPaymentID *string        `json:"razorpay_payment_id,omitempty"`
	Status            DonationStatus `json:"status" gorm:"size:20;default:pending;index"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// DonationTotals aggregates completed donations
type DonationTotals struct {
	TotalAmount float64 `json:"totalAmount"`
	TotalCount  int64   `json:"totalCount"`
}

// CreateOrderRequest defines the request body for starting a donation
type CreateOrderRequest struct {
	Amount  float64 `json:"amount" validate:"required,gte=1"`
	Message string  `json:"message,omitempty" validate:"max=500"`
}

// VerifyPaymentRequest carries the checkout callback values
type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" validate:"required"`
	PaymentID string `json:"paymentId" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
