package postgres

import (
	"context"
	"fmt"

	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/payment"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

var _ payment.PaymentRepoInterface = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.WithContext(ctx).Preload("User").First(&p, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (r *PaymentRepository) CouponByCode(ctx context.Context, code string) (*models.CouponCode, error) {
	var coupon models.CouponCode
	if err := r.db.WithContext(ctx).First(&coupon, "code = ?", code).Error; err != nil {
		return nil, fmt.Errorf("coupon %q: %w", code, err)
	}
	return &coupon, nil
}

func (r *PaymentRepository) SaveCoupon(ctx context.Context, coupon *models.CouponCode) error {
	if err := r.db.WithContext(ctx).Save(coupon).Error; err != nil {
		return fmt.Errorf("save coupon: %w", err)
	}
	return nil
}

func (r *PaymentRepository) Packages(ctx context.Context) ([]models.PromotionPackage, error) {
	var packages []models.PromotionPackage
	err := r.db.WithContext(ctx).
		Where("show_in_dashboard = ?", true).
		Find(&packages).Error
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}

func (r *PaymentRepository) SaveSetting(ctx context.Context, setting *models.Setting) error {
	if err := r.db.WithContext(ctx).Save(setting).Error; err != nil {
		return fmt.Errorf("save setting: %w", err)
	}
	return nil
}

// Settings returns the active configuration row; system behavior is
// keyed off a single active Setting at a time.
func (r *PaymentRepository) Settings(ctx context.Context) (*models.Setting, error) {
	var setting models.Setting
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id DESC").
		First(&setting).Error
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	return &setting, nil
}
