package payment

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/models"
)

// PaymentRepoInterface defines the contract for payment persistence.
type PaymentRepoInterface interface {
	Create(ctx context.Context, payment *models.Payment) error
	Save(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uint) (*models.Payment, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Payment, error)

	CouponByCode(ctx context.Context, code string) (*models.CouponCode, error)
	SaveCoupon(ctx context.Context, coupon *models.CouponCode) error
	Packages(ctx context.Context) ([]models.PromotionPackage, error)
	Settings(ctx context.Context) (*models.Setting, error)
}

// UserAccountInterface is the slice of user persistence payments need:
// identity plus atomic credit arithmetic.
type UserAccountInterface interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	AdjustCredit(ctx context.Context, userID uint, delta float64) error
}

type PaymentServiceInterface interface {
	CreatePayment(ctx context.Context, user *models.User, req *dto.PaymentCreateRequest) (*models.Payment, error)
	UpdatePayment(ctx context.Context, user *models.User, paymentID uint, req *dto.PaymentUpdateRequest) (*models.Payment, error)
	RedeemCoupon(ctx context.Context, user *models.User, code string) (*models.Payment, error)
	ListPayments(ctx context.Context, user *models.User) ([]dto.PaymentResponse, error)
	Packages(ctx context.Context) ([]models.PromotionPackage, error)
}

type PaymentHandlerInterface interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	List(c *gin.Context)
	Redeem(c *gin.Context)
	Packages(c *gin.Context)
}
