package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentType string

const (
	PaymentTypePaypal         PaymentType = "paypal"
	PaymentTypeCoupon         PaymentType = "coupon"
	PaymentTypeCreditRefund   PaymentType = "credit_refund"
	PaymentTypePaymentRefund  PaymentType = "payment_refund"
	PaymentTypeCreditTransfer PaymentType = "credit_transfer"
	PaymentTypePromotion      PaymentType = "promotion"
	PaymentTypeCostBalance    PaymentType = "cost_balance"
)

type PaymentStatus string

const (
	PaymentInitiated PaymentStatus = "initiated"
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentInvalid   PaymentStatus = "invalid"
)

// CreditDelta returns the signed credit change a completed payment of
// this type applies to the owning user.
func (t PaymentType) CreditDelta(amount float64) float64 {
	switch t {
	case PaymentTypePaymentRefund, PaymentTypeCostBalance:
		return -amount
	default:
		return amount
	}
}

type Payment struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	User        User
	Type        PaymentType   `gorm:"type:varchar(100);default:'paypal'"`
	Status      PaymentStatus `gorm:"type:varchar(100);default:'initiated'"`
	Amount      float64       `gorm:"default:0"`
	PaymentID   string        `gorm:"type:varchar(200)"`
	Currency    string        `gorm:"type:varchar(10);default:'usd'"`
	OrderData   datatypes.JSONMap
	PaymentData datatypes.JSONMap
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

type CouponCode struct {
	ID         uint   `gorm:"primaryKey"`
	Code       string `gorm:"type:varchar(20);uniqueIndex"`
	IsRedeemed bool   `gorm:"default:false"`
	Amount     float64
}

// PromotionPackage is a dashboard offer card, reference data only.
type PromotionPackage struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"type:varchar(100)"`
	Description     string `gorm:"type:varchar(100)"`
	Amount          float64
	Extra           int
	ShowInDashboard bool   `gorm:"default:false"`
	LabelColor      string `gorm:"type:varchar(10);default:'#DF3F60'"`
	TextColor       string `gorm:"type:varchar(10);default:'#FFF'"`
}
