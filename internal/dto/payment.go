package dto

import "time"

type PaymentCreateRequest struct {
	Type      string         `json:"type" validate:"required,oneof=paypal coupon credit_refund payment_refund credit_transfer promotion cost_balance"`
	Amount    float64        `json:"amount" validate:"gt=0"`
	Currency  string         `json:"currency" validate:"omitempty,len=3"`
	OrderData map[string]any `json:"order_data"`
}

// PaymentUpdateRequest records the gateway's outcome for an initiated
// payment.
type PaymentUpdateRequest struct {
	Status      string         `json:"status" validate:"required,oneof=initiated pending completed cancelled invalid"`
	PaymentID   string         `json:"payment_id"`
	PaymentData map[string]any `json:"payment_data"`
}

type CouponRedeemRequest struct {
	Code string `json:"code" validate:"required"`
}

type PaymentResponse struct {
	ID        uint      `json:"id"`
	User      string    `json:"user"`
	Type      string    `json:"type"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	PaymentID string    `json:"payment_id"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
